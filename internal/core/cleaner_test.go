package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDuplicates(t *testing.T) {
	tbl := csvTable(t, "k,v\na,1\na,1\nb,2\n")

	got, removed := RemoveDuplicates(tbl)

	assert.Equal(t, 1, removed)
	assert.Equal(t, [][]string{{"k", "v"}, {"a", "1"}, {"b", "2"}}, got.Records())
}

func TestRemoveDuplicates_KeepsFirstAndOrder(t *testing.T) {
	tbl := csvTable(t, "k\nc\na\nc\nb\na\n")

	got, removed := RemoveDuplicates(tbl)

	assert.Equal(t, 2, removed)
	assert.Equal(t, [][]string{{"k"}, {"c"}, {"a"}, {"b"}}, got.Records())
}

func TestRemoveDuplicates_MissingEqualsMissing(t *testing.T) {
	tbl := csvTable(t, "a,b\n1,\n1,NA\n1,0\n")

	got, removed := RemoveDuplicates(tbl)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, got.Nrow())
}

func TestRemoveDuplicates_PartialMatchIsKept(t *testing.T) {
	tbl := csvTable(t, "a,b\n1,x\n1,y\n")

	got, removed := RemoveDuplicates(tbl)

	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, got.Nrow())
}

func TestRemoveDuplicates_CellBoundariesMatter(t *testing.T) {
	tbl, err := NewTable([]string{"a", "b"}, [][]string{
		{"x\x1f=y", "z"},
		{"x", "y\x1f=z"},
		{"xy", "z"},
		{"x", "yz"},
		{"-", "z"},
		{"", "z"},
	})
	require.NoError(t, err)

	got, removed := RemoveDuplicates(tbl)

	assert.Equal(t, 0, removed)
	assert.Equal(t, 6, got.Nrow())
}

func TestRemoveDuplicates_Idempotent(t *testing.T) {
	tbl := csvTable(t, "k,v\na,1\na,1\nb,2\nb,2\nc,\n")

	once, _ := RemoveDuplicates(tbl)
	twice, removed := RemoveDuplicates(once)

	assert.Equal(t, 0, removed)
	assert.Equal(t, once.Records(), twice.Records())
}

func TestRemoveDuplicates_EmptyTable(t *testing.T) {
	got, removed := RemoveDuplicates(Table{})
	assert.Equal(t, 0, removed)
	assert.True(t, got.Empty())
}

func TestFillMissing_Mean(t *testing.T) {
	tbl := csvTable(t, "x,label\n1,a\nNaN,b\n3,c\n")

	got, filled := FillMissing(tbl)

	assert.Equal(t, 1, filled)
	for r, want := range []float64{1, 2, 3} {
		v, ok := got.Float(r, 0)
		require.True(t, ok, "row %d", r)
		assert.Equal(t, want, v, "row %d", r)
	}
	assert.Equal(t, [][]string{{"x", "label"}, {"1", "a"}, {"2", "b"}, {"3", "c"}}, got.Records())
}

func TestFillMissing_LeavesTextColumns(t *testing.T) {
	tbl := csvTable(t, "n,s\n2,\n,x\n4,y\n")

	got, filled := FillMissing(tbl)

	assert.Equal(t, 1, filled)
	assert.True(t, got.IsMissing(0, 1), "text column keeps its missing cell")
	v, ok := got.Float(1, 0)
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestFillMissing_AllMissingColumnStaysMissing(t *testing.T) {
	tbl, err := NewTable([]string{"n", "m"}, [][]string{{"1", ""}, {"", ""}})
	require.NoError(t, err)

	got, filled := FillMissing(tbl)

	assert.Equal(t, 1, filled)
	assert.True(t, got.IsMissing(0, 1))
	assert.True(t, got.IsMissing(1, 1))
}

func TestFillMissing_NoMissingKeepsType(t *testing.T) {
	tbl := csvTable(t, "n\n1\n2\n")

	got, filled := FillMissing(tbl)

	assert.Equal(t, 0, filled)
	kind, _ := got.KindOf("n")
	assert.Equal(t, KindInt, kind)
}

func TestFillMissing_Idempotent(t *testing.T) {
	tbl := csvTable(t, "a,b\n1,2.5\n,\n5,0.5\n")

	once, _ := FillMissing(tbl)
	twice, filled := FillMissing(once)

	assert.Equal(t, 0, filled)
	assert.Equal(t, once.Records(), twice.Records())
}

func TestCoerceNumeric(t *testing.T) {
	tbl := csvTable(t, "amount,name\n\"$1,200.50\",a\n(3.50),b\n,c\n")

	amount, _ := tbl.KindOf("amount")
	require.Equal(t, KindText, amount)

	got, coerced := CoerceNumeric(tbl)

	assert.Equal(t, []string{"amount"}, coerced)
	kind, _ := got.KindOf("amount")
	assert.Equal(t, KindFloat, kind)

	v, ok := got.Float(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 1200.5, v, 1e-9)

	v, ok = got.Float(1, 0)
	require.True(t, ok)
	assert.InDelta(t, -3.5, v, 1e-9)

	assert.True(t, got.IsMissing(2, 0))
}

func TestCoerceNumeric_MixedColumnUntouched(t *testing.T) {
	tbl := csvTable(t, "v\n$5\nabc\n")

	got, coerced := CoerceNumeric(tbl)

	assert.Empty(t, coerced)
	kind, _ := got.KindOf("v")
	assert.Equal(t, KindText, kind)
}

func TestClean_Order(t *testing.T) {
	// Duplicate removal runs before the mean is taken: the duplicated 10
	// must count once.
	tbl := csvTable(t, "id,v\na,10\na,10\nb,\nc,40\n")

	got, stats := Clean(tbl, FileOptions{RemoveDuplicates: true, FillMissing: true})

	assert.Equal(t, 1, stats.DuplicatesRemoved)
	assert.Equal(t, 1, stats.ValuesFilled)
	v, ok := got.Float(1, 1)
	require.True(t, ok)
	assert.Equal(t, 25.0, v)
}

func TestClean_CoerceThenFill(t *testing.T) {
	tbl := csvTable(t, "price,k\n$10,a\n,b\n$30,c\n")
	got, stats := Clean(tbl, FileOptions{CoerceNumeric: true, FillMissing: true})

	assert.Equal(t, []string{"price"}, stats.Coerced)
	assert.Equal(t, 1, stats.ValuesFilled)
	assert.Equal(t, "20", got.Text(1, 0))
}

func TestClean_NoOptions(t *testing.T) {
	tbl := csvTable(t, "k\na\na\n")

	got, stats := Clean(tbl, FileOptions{})

	assert.Equal(t, CleanStats{}, stats)
	assert.Equal(t, 2, got.Nrow())
}
