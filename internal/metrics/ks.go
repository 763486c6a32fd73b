package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/peekknuf/scorekit/internal/dataset"
)

// CurvePoint is one step of the cumulative event/non-event rate curves,
// taken at a distinct score threshold.
type CurvePoint struct {
	Score        float64
	EventRate    float64
	NonEventRate float64
}

// KS computes the Kolmogorov-Smirnov statistic of a score column against
// a binary label column. Both columns must be declared numeric; labels
// must be 0 or 1.
func KS(ds dataset.Dataset, labelCol, scoreCol string) (float64, error) {
	labels, err := binaryLabels(ds, labelCol)
	if err != nil {
		return 0, err
	}
	score, err := ds.Numeric(scoreCol)
	if err != nil {
		return 0, err
	}
	return KSScore(labels, score)
}

// KSScore returns the maximum absolute separation between the cumulative
// event rate and the cumulative non-event rate as the score threshold
// sweeps from highest to lowest. Rows sharing a score are folded into a
// single cumulative step, so the statistic does not depend on the
// incidental order of tied rows. On datasets with duplicated scores this
// can differ from a naive per-row sweep.
func KSScore(labels []int, score []float64) (float64, error) {
	curve, err := RateCurve(labels, score)
	if err != nil {
		return 0, err
	}
	var ks float64
	for _, p := range curve {
		if d := math.Abs(p.EventRate - p.NonEventRate); d > ks {
			ks = d
		}
	}
	return ks, nil
}

// RateCurve builds the cumulative rate curves the KS statistic is the
// maximum separation of, one point per distinct score in descending
// order. It is exported so evaluation output can hand the curve to a
// plotting layer.
func RateCurve(labels []int, score []float64) ([]CurvePoint, error) {
	if len(labels) != len(score) {
		return nil, fmt.Errorf("ks: labels has %d rows, score has %d", len(labels), len(score))
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("ks: empty dataset: %w", dataset.ErrTooFewRows)
	}

	// NaN never compares equal to itself, so a NaN score would both skip
	// the tie-grouping step and sort unpredictably; reject it instead of
	// producing an order-dependent statistic.
	for i, s := range score {
		if math.IsNaN(s) {
			return nil, fmt.Errorf("ks: score row %d: %w", i, dataset.ErrNonFinite)
		}
	}

	var events, nonEvents int
	for _, l := range labels {
		switch l {
		case 1:
			events++
		case 0:
			nonEvents++
		default:
			return nil, fmt.Errorf("ks: label must be 0 or 1, got %d", l)
		}
	}
	if events == 0 {
		return nil, fmt.Errorf("ks: no events in label column: %w", dataset.ErrZeroTotal)
	}
	if nonEvents == 0 {
		return nil, fmt.Errorf("ks: no non-events in label column: %w", dataset.ErrZeroTotal)
	}

	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return score[idx[i]] > score[idx[j]]
	})

	curve := make([]CurvePoint, 0, len(idx))
	var cumEvents, cumNonEvents int
	for pos, i := range idx {
		if labels[i] == 1 {
			cumEvents++
		} else {
			cumNonEvents++
		}
		// Only emit a point once all rows tied at this score are in.
		if pos+1 < len(idx) && score[idx[pos+1]] == score[i] {
			continue
		}
		curve = append(curve, CurvePoint{
			Score:        score[i],
			EventRate:    float64(cumEvents) / float64(events),
			NonEventRate: float64(cumNonEvents) / float64(nonEvents),
		})
	}
	return curve, nil
}

// binaryLabels extracts a numeric column as 0/1 integer labels.
func binaryLabels(ds dataset.Dataset, col string) ([]int, error) {
	vals, err := ds.Numeric(col)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(vals))
	for i, v := range vals {
		switch v {
		case 0:
			labels[i] = 0
		case 1:
			labels[i] = 1
		default:
			return nil, fmt.Errorf("ks: column %q row %d: label must be 0 or 1, got %v", col, i, v)
		}
	}
	return labels, nil
}
