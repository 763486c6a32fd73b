package dataset

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind is the declared kind of a column. Routines branch on the declared
// kind resolved from the schema, never on runtime value inspection.
type Kind int

const (
	Numeric Kind = iota
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	}
	return "unknown"
}

// Schema maps column names to their declared kind. It is passed alongside
// the data so every routine resolves column kinds once, up front.
type Schema map[string]Kind

// seriesTypes translates the schema into gota column types for loading.
func (s Schema) seriesTypes() map[string]series.Type {
	types := make(map[string]series.Type, len(s))
	for name, kind := range s {
		if kind == Numeric {
			types[name] = series.Float
		} else {
			types[name] = series.String
		}
	}
	return types
}

// Dataset is an ordered collection of rows with named, typed columns.
// It is treated as immutable: routines that change values return a new
// Dataset and leave the receiver untouched.
type Dataset struct {
	df     dataframe.DataFrame
	schema Schema
}

// New wraps an already loaded frame. Every schema column must exist in
// the frame; a missing one is a SchemaError.
func New(df dataframe.DataFrame, schema Schema) (Dataset, error) {
	if df.Error() != nil {
		return Dataset{}, fmt.Errorf("loading frame: %w", df.Error())
	}
	names := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		names[n] = true
	}
	for col := range schema {
		if !names[col] {
			return Dataset{}, &SchemaError{Column: col, Reason: "not present in dataset"}
		}
	}
	return Dataset{df: df, schema: schema}, nil
}

// FromRecords builds a dataset from in-memory records. The first record
// is the header row.
func FromRecords(records [][]string, schema Schema) (Dataset, error) {
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(schema.seriesTypes()),
	)
	return New(df, schema)
}

// ReadCSV loads a dataset from CSV. Columns named in the schema get their
// declared type; everything else is kept as a string column.
func ReadCSV(r io.Reader, schema Schema) (Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(schema.seriesTypes()),
	)
	return New(df, schema)
}

// DetectCSV loads a dataset letting gota infer column types, then derives
// the schema from the inferred types. Used by profiling, where no schema
// is supplied by the caller.
func DetectCSV(r io.Reader) (Dataset, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
	)
	if df.Error() != nil {
		return Dataset{}, fmt.Errorf("loading csv: %w", df.Error())
	}
	schema := make(Schema, df.Ncol())
	for _, name := range df.Names() {
		switch df.Col(name).Type() {
		case series.Int, series.Float:
			schema[name] = Numeric
		default:
			schema[name] = Categorical
		}
	}
	return Dataset{df: df, schema: schema}, nil
}

func (d Dataset) NumRows() int {
	return d.df.Nrow()
}

func (d Dataset) Columns() []string {
	return d.df.Names()
}

func (d Dataset) Schema() Schema {
	return d.schema
}

// Frame exposes the underlying gota frame for read-only use.
func (d Dataset) Frame() dataframe.DataFrame {
	return d.df
}

// Kind resolves a column's declared kind.
func (d Dataset) Kind(col string) (Kind, error) {
	kind, ok := d.schema[col]
	if !ok {
		return 0, &SchemaError{Column: col, Reason: "not declared in schema"}
	}
	return kind, nil
}

// Numeric returns a copy of a numeric column's values. Missing values
// come back as NaN.
func (d Dataset) Numeric(col string) ([]float64, error) {
	kind, err := d.Kind(col)
	if err != nil {
		return nil, err
	}
	if kind != Numeric {
		return nil, &SchemaError{Column: col, Reason: "declared categorical, numeric access requested"}
	}
	return d.df.Col(col).Float(), nil
}

// Categorical returns a copy of a categorical column's string records.
func (d Dataset) Categorical(col string) ([]string, error) {
	kind, err := d.Kind(col)
	if err != nil {
		return nil, err
	}
	if kind != Categorical {
		return nil, &SchemaError{Column: col, Reason: "declared numeric, categorical access requested"}
	}
	return d.df.Col(col).Records(), nil
}

// WithColumn returns a new dataset with the given column replaced (or
// added). The receiver is not modified.
func (d Dataset) WithColumn(s series.Series) Dataset {
	mutated := d.df.Mutate(s)
	return Dataset{df: mutated, schema: d.schema}
}

// WriteCSV writes the dataset out, header included.
func (d Dataset) WriteCSV(w io.Writer) error {
	if err := d.df.WriteCSV(w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// IsMissing reports whether a numeric value is the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// MissingRecord reports whether a categorical record is missing. Empty
// fields and the usual NA spellings all count.
func MissingRecord(s string) bool {
	switch s {
	case "", "NA", "NaN", "null":
		return true
	}
	return false
}
