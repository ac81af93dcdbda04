package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelect(t *testing.T) {
	tbl := csvTable(t, "a,b,c\n1,x,true\n2,y,false\n")

	tests := []struct {
		name    string
		columns []string
		want    []string
	}{
		{"nil selects all", nil, []string{"a", "b", "c"}},
		{"all in order is identity", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
		{"subset", []string{"c"}, []string{"c"}},
		{"selection order wins", []string{"c", "a"}, []string{"c", "a"}},
		{"unknown names dropped", []string{"zzz", "b"}, []string{"b"}},
		{"repeats dropped", []string{"a", "a"}, []string{"a"}},
		{"empty selection", []string{}, []string{}},
		{"only unknown names", []string{"nope"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(tbl, tt.columns)
			assert.Equal(t, tt.want, got.Names())
		})
	}
}

func TestSelect_AllIsIdentity(t *testing.T) {
	tbl := csvTable(t, "a,b\n1,\n,y\n")

	got := Select(tbl, tbl.Names())

	assert.Equal(t, tbl.Records(), got.Records())
	assert.Equal(t, tbl.Kinds(), got.Kinds())
}

func TestSelect_EmptyIsEmptyTable(t *testing.T) {
	tbl := csvTable(t, "a\n1\n2\n")

	got := Select(tbl, []string{})

	assert.True(t, got.Empty())
	assert.Equal(t, 0, got.Nrow())
}

func TestSelect_PreservesRows(t *testing.T) {
	tbl := csvTable(t, "a,b\n1,x\n2,y\n3,z\n")

	got := Select(tbl, []string{"b"})

	assert.Equal(t, [][]string{{"b"}, {"x"}, {"y"}, {"z"}}, got.Records())
}
