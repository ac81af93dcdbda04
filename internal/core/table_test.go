package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// csvTable loads CSV text or fails the test.
func csvTable(t *testing.T, text string) Table {
	t.Helper()
	tbl, err := LoadCSV(strings.NewReader(text))
	require.NoError(t, err)
	return tbl
}

func TestNewTable_TypesAndShape(t *testing.T) {
	tbl, err := NewTable(
		[]string{"name", "qty", "price", "active"},
		[][]string{
			{"apple", "3", "1.25", "true"},
			{"pear", "5", "0.5", "false"},
		},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Nrow())
	assert.Equal(t, 4, tbl.Ncol())
	assert.Equal(t, []string{"name", "qty", "price", "active"}, tbl.Names())
	assert.Equal(t, []Kind{KindText, KindInt, KindFloat, KindBool}, tbl.Kinds())
	assert.Equal(t, []string{"qty", "price"}, tbl.NumericColumns())
}

func TestNewTable_PadsShortRows(t *testing.T) {
	tbl, err := NewTable([]string{"a", "b", "c"}, [][]string{{"1"}, {"2", "x", "y"}})
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.Nrow())
	assert.True(t, tbl.IsMissing(0, 1))
	assert.True(t, tbl.IsMissing(0, 2))
	assert.Equal(t, []string{"1", "", ""}, tbl.Row(0))
}

func TestNewTable_RejectsLongRows(t *testing.T) {
	_, err := NewTable([]string{"a"}, [][]string{{"1", "2"}})
	assert.ErrorIs(t, err, ErrMalformedCSV)
}

func TestNewTable_EmptyHeader(t *testing.T) {
	_, err := NewTable(nil, nil)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestNewTable_HeaderOnly(t *testing.T) {
	tbl, err := NewTable([]string{"a", "b"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, tbl.Nrow())
	assert.Equal(t, 2, tbl.Ncol())
	assert.False(t, tbl.Empty())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
	assert.Equal(t, []Kind{KindText, KindText}, tbl.Kinds())
	assert.Equal(t, [][]string{{"a", "b"}}, tbl.Records())
}

func TestNewTable_HeaderOnlyFromCSV(t *testing.T) {
	tbl := csvTable(t, "k,v\n")

	assert.Equal(t, 0, tbl.Nrow())
	assert.Equal(t, []string{"k", "v"}, tbl.Names())
}

func TestNewTable_MixedBoolColumnStaysText(t *testing.T) {
	tbl := csvTable(t, "a,b,c\ntrue,1,true\n1,0,\nfalse,x,false\n")

	assert.Equal(t, []Kind{KindText, KindText, KindBool}, tbl.Kinds())
	assert.Equal(t, [][]string{
		{"a", "b", "c"},
		{"true", "1", "true"},
		{"1", "0", ""},
		{"false", "x", "false"},
	}, tbl.Records())
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"unchanged", []string{"a", "b"}, []string{"a", "b"}},
		{"trimmed", []string{" a ", "b"}, []string{"a", "b"}},
		{"blank names", []string{"a", "", " "}, []string{"a", "Unnamed: 1", "Unnamed: 2"}},
		{"duplicates", []string{"x", "x", "x"}, []string{"x", "x.1", "x.2"}},
		{"duplicate collides with existing suffix", []string{"x", "x.1", "x"}, []string{"x", "x.1", "x.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHeader(tt.in))
		})
	}
}

func TestIsMissingValue(t *testing.T) {
	for _, v := range []string{"", " ", "NA", "N/A", "NaN", "nan", "null", "NULL", "<nil>"} {
		assert.True(t, IsMissingValue(v), "IsMissingValue(%q)", v)
	}
	for _, v := range []string{"0", "none", "-", "n"} {
		assert.False(t, IsMissingValue(v), "IsMissingValue(%q)", v)
	}
}

func TestTable_MissingMarkers(t *testing.T) {
	tbl := csvTable(t, "x,y\n1,a\nNA,b\nnull,N/A\n4,d\n")

	kind, ok := tbl.KindOf("x")
	require.True(t, ok)
	assert.Equal(t, KindInt, kind)
	assert.Equal(t, []int{2, 1}, tbl.MissingCount())
}

func TestTable_ValueAndText(t *testing.T) {
	tbl := csvTable(t, "i,f,s\n1,2.5,hi\n,,\n")

	v, ok := tbl.Value(0, 0)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = tbl.Value(0, 1)
	require.True(t, ok)
	assert.Equal(t, 2.5, v)

	assert.Equal(t, "hi", tbl.Text(0, 2))

	_, ok = tbl.Value(1, 0)
	assert.False(t, ok)
	assert.Equal(t, []string{"", "", ""}, tbl.Row(1))
}

func TestTable_Float(t *testing.T) {
	tbl := csvTable(t, "n,s\n7,x\n")

	f, ok := tbl.Float(0, 0)
	require.True(t, ok)
	assert.Equal(t, 7.0, f)

	_, ok = tbl.Float(0, 1)
	assert.False(t, ok, "text cells are not numeric")
}

func TestTable_Head(t *testing.T) {
	tbl := csvTable(t, "n\n1\n2\n3\n")

	assert.Equal(t, 2, tbl.Head(2).Nrow())
	assert.Equal(t, 3, tbl.Head(10).Nrow())
	assert.Equal(t, [][]string{{"n"}, {"1"}, {"2"}}, tbl.Head(2).Records())
}

func TestTable_ZeroValueIsEmpty(t *testing.T) {
	var tbl Table

	assert.True(t, tbl.Empty())
	assert.Equal(t, 0, tbl.Nrow())
	assert.Equal(t, 0, tbl.Ncol())
	assert.Empty(t, tbl.Names())
	assert.Empty(t, tbl.NumericColumns())
	assert.Equal(t, [][]string{{}}, tbl.Records())
}
