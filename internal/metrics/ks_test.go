package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peekknuf/scorekit/internal/dataset"
)

func TestKSScorePerfectSeparation(t *testing.T) {
	t.Parallel()

	labels := []int{1, 1, 0, 0}
	score := []float64{0.9, 0.8, 0.2, 0.1}

	ks, err := KSScore(labels, score)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ks, 1e-9)
}

func TestKSScoreIdenticalDistributions(t *testing.T) {
	t.Parallel()

	// Every score level holds one event and one non-event, so the two
	// cumulative rate curves coincide.
	labels := []int{1, 0, 1, 0}
	score := []float64{0.7, 0.7, 0.3, 0.3}

	ks, err := KSScore(labels, score)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ks, 1e-9)
}

func TestKSScoreMonotonicTransformInvariant(t *testing.T) {
	t.Parallel()

	labels := []int{1, 0, 1, 1, 0, 0, 1, 0}
	score := []float64{0.9, 0.6, 0.8, 0.4, 0.3, 0.7, 0.5, 0.2}

	ks1, err := KSScore(labels, score)
	require.NoError(t, err)

	transformed := make([]float64, len(score))
	for i, s := range score {
		transformed[i] = math.Exp(3*s + 1)
	}
	ks2, err := KSScore(labels, transformed)
	require.NoError(t, err)

	assert.InDelta(t, ks1, ks2, 1e-12)
}

func TestKSScoreGroupsTiedScores(t *testing.T) {
	t.Parallel()

	// One event and one non-event at the same score. A per-row sweep
	// would report 1.0 or 0.0 depending on row order; grouping the tie
	// into a single step pins it at 0.
	labels := []int{1, 0}
	score := []float64{0.5, 0.5}

	ks, err := KSScore(labels, score)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ks, 1e-9)

	ks, err = KSScore([]int{0, 1}, score)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, ks, 1e-9)
}

func TestKSScoreErrors(t *testing.T) {
	t.Parallel()

	_, err := KSScore(nil, nil)
	assert.ErrorIs(t, err, dataset.ErrTooFewRows)

	_, err = KSScore([]int{1, 1}, []float64{0.1, 0.2})
	assert.ErrorIs(t, err, dataset.ErrZeroTotal)

	_, err = KSScore([]int{0, 0}, []float64{0.1, 0.2})
	assert.ErrorIs(t, err, dataset.ErrZeroTotal)

	_, err = KSScore([]int{2, 0}, []float64{0.1, 0.2})
	assert.Error(t, err)

	_, err = KSScore([]int{1, 0}, []float64{0.1})
	assert.Error(t, err)
}

func TestKSScoreRejectsNaNScores(t *testing.T) {
	t.Parallel()

	// A NaN score skips tie grouping (NaN != NaN) and sorts
	// unpredictably, so it is rejected rather than scored.
	ks, err := KSScore([]int{1, 0, 1, 0}, []float64{0.9, math.NaN(), 0.4, 0.1})
	assert.ErrorIs(t, err, dataset.ErrNonFinite)
	assert.False(t, math.IsNaN(ks))

	_, err = RateCurve([]int{1, 0}, []float64{math.NaN(), 0.5})
	assert.ErrorIs(t, err, dataset.ErrNonFinite)
}

func TestRateCurve(t *testing.T) {
	t.Parallel()

	labels := []int{1, 1, 0, 0}
	score := []float64{0.9, 0.8, 0.2, 0.1}

	curve, err := RateCurve(labels, score)
	require.NoError(t, err)
	require.Len(t, curve, 4)

	assert.Equal(t, 0.9, curve[0].Score)
	assert.InDelta(t, 0.5, curve[0].EventRate, 1e-9)
	assert.InDelta(t, 0.0, curve[0].NonEventRate, 1e-9)

	last := curve[len(curve)-1]
	assert.InDelta(t, 1.0, last.EventRate, 1e-9)
	assert.InDelta(t, 1.0, last.NonEventRate, 1e-9)
}

func TestKSFromDataset(t *testing.T) {
	t.Parallel()

	ds, err := dataset.FromRecords([][]string{
		{"label", "score"},
		{"1", "0.9"},
		{"1", "0.8"},
		{"0", "0.2"},
		{"0", "0.1"},
	}, dataset.Schema{"label": dataset.Numeric, "score": dataset.Numeric})
	require.NoError(t, err)

	ks, err := KS(ds, "label", "score")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, ks, 1e-9)

	// Non-binary labels are rejected with the column name.
	ds2, err := dataset.FromRecords([][]string{
		{"label", "score"},
		{"2", "0.9"},
		{"0", "0.1"},
	}, dataset.Schema{"label": dataset.Numeric, "score": dataset.Numeric})
	require.NoError(t, err)

	_, err = KS(ds2, "label", "score")
	assert.ErrorContains(t, err, "label")
}
