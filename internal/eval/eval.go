package eval

import (
	"fmt"

	"github.com/peekknuf/scorekit/internal/dataset"
	"github.com/peekknuf/scorekit/internal/metrics"
)

// Prediction is one row of model output: the predicted class and the
// positive-class probability.
type Prediction struct {
	Label       int
	Probability float64
}

// Model is an opaque trained estimator. Evaluation only needs its
// transform capability; training, parameters and persistence live with
// the caller.
type Model interface {
	Transform(ds dataset.Dataset) ([]Prediction, error)
}

// ConfusionMatrix counts binary outcomes (positive class is 1).
type ConfusionMatrix struct {
	TruePositives  int
	FalsePositives int
	TrueNegatives  int
	FalseNegatives int
}

func (c ConfusionMatrix) total() int {
	return c.TruePositives + c.FalsePositives + c.TrueNegatives + c.FalseNegatives
}

func (c ConfusionMatrix) Accuracy() float64 {
	if c.total() == 0 {
		return 0
	}
	return float64(c.TruePositives+c.TrueNegatives) / float64(c.total())
}

func (c ConfusionMatrix) Precision() float64 {
	if c.TruePositives+c.FalsePositives == 0 {
		return 0
	}
	return float64(c.TruePositives) / float64(c.TruePositives+c.FalsePositives)
}

func (c ConfusionMatrix) Recall() float64 {
	if c.TruePositives+c.FalseNegatives == 0 {
		return 0
	}
	return float64(c.TruePositives) / float64(c.TruePositives+c.FalseNegatives)
}

func (c ConfusionMatrix) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Result collects the evaluation of a model against a labeled dataset.
// Curve is the cumulative event/non-event rate curve over the model's
// probabilities, small enough to hand to a plotting layer as-is.
type Result struct {
	Confusion ConfusionMatrix
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	Gini      float64
	KS        float64
	Curve     []metrics.CurvePoint
}

// Evaluate runs the model over the dataset and scores its output against
// the target column. The target column must be declared numeric and hold
// 0/1 labels.
func Evaluate(m Model, ds dataset.Dataset, targetCol string) (Result, error) {
	preds, err := m.Transform(ds)
	if err != nil {
		return Result{}, fmt.Errorf("eval: model transform: %w", err)
	}
	if len(preds) != ds.NumRows() {
		return Result{}, fmt.Errorf("eval: model returned %d predictions for %d rows", len(preds), ds.NumRows())
	}

	target, err := ds.Numeric(targetCol)
	if err != nil {
		return Result{}, err
	}
	actual := make([]int, len(target))
	for i, v := range target {
		switch v {
		case 0, 1:
			actual[i] = int(v)
		default:
			return Result{}, fmt.Errorf("eval: column %q row %d: label must be 0 or 1, got %v", targetCol, i, v)
		}
	}

	var result Result
	probs := make([]float64, len(preds))
	for i, p := range preds {
		probs[i] = p.Probability
		switch {
		case p.Label == 1 && actual[i] == 1:
			result.Confusion.TruePositives++
		case p.Label == 1 && actual[i] == 0:
			result.Confusion.FalsePositives++
		case p.Label == 0 && actual[i] == 0:
			result.Confusion.TrueNegatives++
		default:
			result.Confusion.FalseNegatives++
		}
	}

	result.Accuracy = result.Confusion.Accuracy()
	result.Precision = result.Confusion.Precision()
	result.Recall = result.Confusion.Recall()
	result.F1 = result.Confusion.F1()

	result.Gini, err = metrics.GiniScore(target, probs)
	if err != nil {
		return Result{}, err
	}
	result.KS, err = metrics.KSScore(actual, probs)
	if err != nil {
		return Result{}, err
	}
	result.Curve, err = metrics.RateCurve(actual, probs)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

// LabelsFromProbabilities thresholds positive-class probabilities into
// 0/1 labels. It is a caller-side helper for wrapping a probability-only
// estimator into a Model: the wrapper picks the threshold and builds the
// Prediction labels with it. Evaluate itself scores the labels the model
// already chose and never thresholds on its own.
func LabelsFromProbabilities(probs []float64, threshold float64) []int {
	out := make([]int, len(probs))
	for i, p := range probs {
		if p >= threshold {
			out[i] = 1
		}
	}
	return out
}
