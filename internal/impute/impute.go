package impute

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/peekknuf/scorekit/internal/dataset"
)

const (
	// DefaultSentinel is the reserved numeric value source data uses to
	// mean "missing". It is reinterpreted as missing before any mean is
	// computed.
	DefaultSentinel = -1

	// DefaultPlaceholder fills missing categorical values.
	DefaultPlaceholder = "unknown"
)

// Options control sentinel reinterpretation and categorical filling.
// The zero value is not usable; call DefaultOptions.
type Options struct {
	Sentinel    float64
	Placeholder string
}

func DefaultOptions() Options {
	return Options{Sentinel: DefaultSentinel, Placeholder: DefaultPlaceholder}
}

// Report describes what Apply could not fill. A numeric column absent
// from the means table is skipped on purpose, not failed: the caller
// decides whether the gap is worth a warning.
type Report struct {
	// SkippedColumns lists numeric columns that had missing values but no
	// entry in the means table.
	SkippedColumns []string
	// UnfilledValues counts the missing values left in each skipped column.
	UnfilledValues map[string]int
}

// Fit imputes a training dataset and records the means it used. For every
// numeric column the sentinel is first converted to missing, the mean is
// computed over the remaining values, and missing values are replaced by
// that mean. Categorical missing values become the placeholder. The input
// dataset is not modified.
//
// A numeric column with no non-missing values has an undefined mean and
// fails the whole call; substituting NaN or zero would silently corrupt
// anything trained downstream.
func Fit(ds dataset.Dataset, opts Options) (dataset.Dataset, MeansTable, error) {
	if ds.NumRows() == 0 {
		return dataset.Dataset{}, nil, fmt.Errorf("impute: empty dataset: %w", dataset.ErrTooFewRows)
	}

	out := ds
	means := make(MeansTable)
	for _, col := range ds.Columns() {
		kind, ok := ds.Schema()[col]
		if !ok {
			continue
		}
		switch kind {
		case dataset.Numeric:
			vals, err := ds.Numeric(col)
			if err != nil {
				return dataset.Dataset{}, nil, err
			}
			observed := make([]float64, 0, len(vals))
			for _, v := range vals {
				if !missingNumeric(v, opts.Sentinel) {
					observed = append(observed, v)
				}
			}
			if len(observed) == 0 {
				return dataset.Dataset{}, nil, fmt.Errorf("impute: column %q has no non-missing values: %w", col, dataset.ErrZeroTotal)
			}
			mean := stat.Mean(observed, nil)
			means[col] = mean
			out = fillNumeric(out, col, vals, mean, opts.Sentinel)
		case dataset.Categorical:
			recs, err := ds.Categorical(col)
			if err != nil {
				return dataset.Dataset{}, nil, err
			}
			out = fillCategorical(out, col, recs, opts)
		}
	}
	return out, means, nil
}

// Apply imputes a production dataset using means computed at fit time, so
// a value seen in production is filled exactly the way the training data
// was, whatever this batch's own statistics are. Sentinel conversion and
// the categorical placeholder match Fit. A numeric column with no entry
// in the means table is left unfilled and reported, not failed.
func Apply(ds dataset.Dataset, means MeansTable, opts Options) (dataset.Dataset, Report, error) {
	if ds.NumRows() == 0 {
		return dataset.Dataset{}, Report{}, fmt.Errorf("impute: empty dataset: %w", dataset.ErrTooFewRows)
	}

	out := ds
	report := Report{UnfilledValues: make(map[string]int)}
	for _, col := range ds.Columns() {
		kind, ok := ds.Schema()[col]
		if !ok {
			continue
		}
		switch kind {
		case dataset.Numeric:
			vals, err := ds.Numeric(col)
			if err != nil {
				return dataset.Dataset{}, Report{}, err
			}
			mean, ok := means[col]
			if !ok {
				missing := 0
				for _, v := range vals {
					if missingNumeric(v, opts.Sentinel) {
						missing++
					}
				}
				if missing > 0 {
					report.SkippedColumns = append(report.SkippedColumns, col)
					report.UnfilledValues[col] = missing
				}
				continue
			}
			out = fillNumeric(out, col, vals, mean, opts.Sentinel)
		case dataset.Categorical:
			recs, err := ds.Categorical(col)
			if err != nil {
				return dataset.Dataset{}, Report{}, err
			}
			out = fillCategorical(out, col, recs, opts)
		}
	}
	return out, report, nil
}

func missingNumeric(v, sentinel float64) bool {
	return dataset.IsMissing(v) || v == sentinel
}

func fillNumeric(ds dataset.Dataset, col string, vals []float64, mean, sentinel float64) dataset.Dataset {
	filled := make([]float64, len(vals))
	for i, v := range vals {
		if missingNumeric(v, sentinel) {
			filled[i] = mean
		} else {
			filled[i] = v
		}
	}
	return ds.WithColumn(series.New(filled, series.Float, col))
}

func fillCategorical(ds dataset.Dataset, col string, recs []string, opts Options) dataset.Dataset {
	sentinel := strconv.FormatFloat(opts.Sentinel, 'f', -1, 64)
	filled := make([]string, len(recs))
	for i, r := range recs {
		if dataset.MissingRecord(r) || r == sentinel {
			filled[i] = opts.Placeholder
		} else {
			filled[i] = r
		}
	}
	return ds.WithColumn(series.New(filled, series.String, col))
}
