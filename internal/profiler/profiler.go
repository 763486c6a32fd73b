package profiler

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/peekknuf/scorekit/internal/dataset"
)

// ColumnProfile holds per-column metadata: declared kind, null and
// distinct counts, and describe-style statistics for numeric columns.
type ColumnProfile struct {
	Name          string
	Kind          string
	Count         int // non-missing values
	NullCount     int
	DistinctCount int
	Min           string
	Max           string
	SampleValues  []string

	// Numeric columns only.
	Mean float64
	Std  float64
	Q25  float64
	Q50  float64
	Q75  float64
}

// Summary is the dataset-level profile.
type Summary struct {
	Rows             int
	Columns          []ColumnProfile
	NullPercentage   float64
	DistinctRowRatio float64
}

// Summarize profiles every schema column of the dataset. Column order
// follows the dataset's column order.
func Summarize(ds dataset.Dataset) Summary {
	summary := Summary{Rows: ds.NumRows()}

	totalNulls := 0
	totalCells := 0
	for _, col := range ds.Columns() {
		kind, ok := ds.Schema()[col]
		if !ok {
			continue
		}
		var profile ColumnProfile
		if kind == dataset.Numeric {
			vals, _ := ds.Numeric(col)
			profile = profileNumeric(col, vals)
		} else {
			recs, _ := ds.Categorical(col)
			profile = profileCategorical(col, recs)
		}
		totalNulls += profile.NullCount
		totalCells += profile.Count + profile.NullCount
		summary.Columns = append(summary.Columns, profile)
	}

	if totalCells > 0 {
		summary.NullPercentage = float64(totalNulls) / float64(totalCells)
	}
	summary.DistinctRowRatio = distinctRowRatio(ds)
	return summary
}

func profileNumeric(name string, vals []float64) ColumnProfile {
	profile := ColumnProfile{Name: name, Kind: dataset.Numeric.String()}

	observed := make([]float64, 0, len(vals))
	distinct := make(map[float64]struct{})
	for _, v := range vals {
		if dataset.IsMissing(v) {
			profile.NullCount++
			continue
		}
		observed = append(observed, v)
		distinct[v] = struct{}{}
		if len(profile.SampleValues) < 5 {
			profile.SampleValues = append(profile.SampleValues, formatNumber(v))
		}
	}
	profile.Count = len(observed)
	profile.DistinctCount = len(distinct)
	if len(observed) == 0 {
		return profile
	}

	sort.Float64s(observed)
	profile.Min = formatNumber(observed[0])
	profile.Max = formatNumber(observed[len(observed)-1])
	profile.Mean = stat.Mean(observed, nil)
	if len(observed) > 1 {
		profile.Std = stat.StdDev(observed, nil)
	}
	profile.Q25 = stat.Quantile(0.25, stat.Empirical, observed, nil)
	profile.Q50 = stat.Quantile(0.50, stat.Empirical, observed, nil)
	profile.Q75 = stat.Quantile(0.75, stat.Empirical, observed, nil)
	return profile
}

func profileCategorical(name string, recs []string) ColumnProfile {
	profile := ColumnProfile{Name: name, Kind: dataset.Categorical.String()}

	distinct := make(map[string]struct{})
	for _, r := range recs {
		if dataset.MissingRecord(r) {
			profile.NullCount++
			continue
		}
		profile.Count++
		distinct[r] = struct{}{}
		if profile.Min == "" || r < profile.Min {
			profile.Min = r
		}
		if profile.Max == "" || r > profile.Max {
			profile.Max = r
		}
		if len(profile.SampleValues) < 5 {
			profile.SampleValues = append(profile.SampleValues, r)
		}
	}
	profile.DistinctCount = len(distinct)
	return profile
}

// distinctRowRatio estimates row uniqueness with a djb2 hash per row.
func distinctRowRatio(ds dataset.Dataset) float64 {
	if ds.NumRows() == 0 {
		return 0
	}
	records := ds.Frame().Records()
	seen := make(map[uint64]struct{}, len(records))
	for _, row := range records[1:] { // skip header
		seen[rowHash(row)] = struct{}{}
	}
	return float64(len(seen)) / float64(ds.NumRows())
}

func rowHash(row []string) uint64 {
	var hash uint64 = 5381
	for _, col := range row {
		for _, c := range col {
			hash = ((hash << 5) + hash) + uint64(c)
		}
		hash = ((hash << 5) + hash) + '|' // separator
	}
	return hash
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
