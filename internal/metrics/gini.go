package metrics

import (
	"fmt"
	"math"
	"sort"

	"github.com/peekknuf/scorekit/internal/dataset"
)

// Gini computes the normalized Gini coefficient of a predicted column
// against an actual outcome column. Both columns must be declared numeric.
func Gini(ds dataset.Dataset, actualCol, predictedCol string) (float64, error) {
	actual, err := ds.Numeric(actualCol)
	if err != nil {
		return 0, err
	}
	predicted, err := ds.Numeric(predictedCol)
	if err != nil {
		return 0, err
	}
	return GiniScore(actual, predicted)
}

// GiniScore computes the normalized Gini coefficient of a ranking. Rows
// are ordered by descending predicted value; rows with equal predicted
// values keep their original order, so the result is reproducible for a
// given input ordering. The unnormalized statistic is divided by the
// Gini of a perfect model (actual ranked by itself), giving a value in
// roughly [-1, 1]. Both slices must be finite; NaN or infinite values
// (unimputed missing data) are rejected with dataset.ErrNonFinite.
func GiniScore(actual, predicted []float64) (float64, error) {
	if len(actual) != len(predicted) {
		return 0, fmt.Errorf("gini: actual has %d rows, predicted has %d", len(actual), len(predicted))
	}
	if len(actual) <= 1 {
		return 0, fmt.Errorf("gini: need at least 2 rows, got %d: %w", len(actual), dataset.ErrTooFewRows)
	}

	// A single NaN would flow through the cumulative sums and come back
	// as a NaN statistic with no error, so non-finite input is rejected
	// up front. Missing values belong in imputation, not here.
	var total float64
	for i, a := range actual {
		if math.IsNaN(a) || math.IsInf(a, 0) {
			return 0, fmt.Errorf("gini: actual row %d: %w", i, dataset.ErrNonFinite)
		}
		total += a
	}
	for i, p := range predicted {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return 0, fmt.Errorf("gini: predicted row %d: %w", i, dataset.ErrNonFinite)
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("gini: total of actual column is zero: %w", dataset.ErrZeroTotal)
	}

	unnormalized := lorenzGini(actual, predicted, total)
	perfect := lorenzGini(actual, actual, total)
	if perfect == 0 {
		return 0, fmt.Errorf("gini: perfect-model gini is zero: %w", dataset.ErrZeroTotal)
	}
	return unnormalized / perfect, nil
}

// lorenzGini sums the Lorenz curve of actual ordered by descending rank
// and centers it. total must be the (non-zero) sum of actual.
func lorenzGini(actual, rank []float64, total float64) float64 {
	n := len(actual)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return rank[idx[i]] > rank[idx[j]]
	})

	var cum, lorenzSum float64
	for _, i := range idx {
		cum += actual[i]
		lorenzSum += cum / total
	}
	return (lorenzSum - float64(n+1)/2) / float64(n)
}
