package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecords(t *testing.T) {
	t.Parallel()

	ds, err := FromRecords([][]string{
		{"age", "city"},
		{"25", "NY"},
		{"", "LA"},
		{"35", ""},
	}, Schema{"age": Numeric, "city": Categorical})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.NumRows())
	assert.ElementsMatch(t, []string{"age", "city"}, ds.Columns())

	age, err := ds.Numeric("age")
	require.NoError(t, err)
	require.Len(t, age, 3)
	assert.Equal(t, 25.0, age[0])
	assert.True(t, math.IsNaN(age[1]))
	assert.Equal(t, 35.0, age[2])

	city, err := ds.Categorical("city")
	require.NoError(t, err)
	assert.Equal(t, []string{"NY", "LA", ""}, city)
}

func TestSchemaValidation(t *testing.T) {
	t.Parallel()

	_, err := FromRecords([][]string{
		{"age"},
		{"25"},
	}, Schema{"age": Numeric, "income": Numeric})

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "income", schemaErr.Column)
}

func TestKindMismatch(t *testing.T) {
	t.Parallel()

	ds, err := FromRecords([][]string{
		{"age", "city"},
		{"25", "NY"},
	}, Schema{"age": Numeric, "city": Categorical})
	require.NoError(t, err)

	_, err = ds.Numeric("city")
	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)

	_, err = ds.Categorical("age")
	assert.ErrorAs(t, err, &schemaErr)

	_, err = ds.Numeric("undeclared")
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "undeclared", schemaErr.Column)
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	csv := "label,score\n1,0.9\n0,0.1\n"
	ds, err := ReadCSV(strings.NewReader(csv), Schema{"label": Numeric, "score": Numeric})
	require.NoError(t, err)

	assert.Equal(t, 2, ds.NumRows())
	score, err := ds.Numeric("score")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.1}, score)
}

func TestDetectCSV(t *testing.T) {
	t.Parallel()

	csv := "id,amount,city\n1,10.5,NY\n2,20.5,LA\n"
	ds, err := DetectCSV(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, Numeric, ds.Schema()["id"])
	assert.Equal(t, Numeric, ds.Schema()["amount"])
	assert.Equal(t, Categorical, ds.Schema()["city"])
}

func TestMissingRecord(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "NA", "NaN", "null"} {
		assert.True(t, MissingRecord(s), s)
	}
	assert.False(t, MissingRecord("NY"))
	assert.False(t, MissingRecord("0"))
}
