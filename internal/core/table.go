package core

// table.go wraps a gota DataFrame as the unit of data passed between
// pipeline stages.
//
// Invariants:
//   - every column has Nrow() values
//   - column names are unique and non-empty (normalized at construction)
//   - the zero Table is the empty table: 0 columns, 0 rows

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind is the inferred value type of a column.
type Kind string

const (
	KindInt   Kind = "int"
	KindFloat Kind = "float"
	KindBool  Kind = "bool"
	KindText  Kind = "text"
)

// Numeric reports whether values of this kind take part in imputation and charting.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// missingMarker is the spelling gota uses for NA values.
const missingMarker = "NaN"

// missingValues are the cell spellings treated as missing on load.
// Matching is exact after trimming whitespace.
var missingValues = map[string]bool{
	"":      true,
	"NA":    true,
	"N/A":   true,
	"NaN":   true,
	"nan":   true,
	"null":  true,
	"NULL":  true,
	"<nil>": true,
}

// IsMissingValue reports whether a raw cell spelling denotes a missing value.
func IsMissingValue(s string) bool {
	return missingValues[strings.TrimSpace(s)]
}

// Table is an ordered set of named, typed columns of equal length.
type Table struct {
	df dataframe.DataFrame
}

// NewTable builds a Table from a header and data rows of raw cell text.
// Rows shorter than the header are padded with missing values; longer rows
// are rejected. Column types are inferred from the non-missing values.
func NewTable(header []string, rows [][]string) (Table, error) {
	if len(header) == 0 {
		return Table{}, ErrEmptyFile
	}

	names := normalizeHeader(header)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, names)

	for i, row := range rows {
		if len(row) > len(names) {
			return Table{}, fmt.Errorf("%w: row %d has %d fields, header has %d",
				ErrMalformedCSV, i+2, len(row), len(names))
		}
		rec := make([]string, len(names))
		for j := range rec {
			v := ""
			if j < len(row) {
				v = strings.TrimSpace(row[j])
			}
			if missingValues[v] {
				v = missingMarker
			}
			rec[j] = v
		}
		records = append(records, rec)
	}

	if len(rows) == 0 {
		return emptyTable(names)
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.WithTypes(textColumns(names, records[1:])),
	)
	if df.Err != nil {
		return Table{}, fmt.Errorf("build table: %w", df.Err)
	}
	return Table{df: df}, nil
}

// emptyTable builds a table with the given columns and no rows. gota
// refuses to load records without data rows.
func emptyTable(names []string) (Table, error) {
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = series.New([]string{}, series.String, name)
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return Table{}, fmt.Errorf("build table: %w", df.Err)
	}
	return Table{df: df}, nil
}

// textColumns pins to text every column that mixes the literals true or
// false with other values. gota would otherwise read such a column as bool
// and turn "1" into true.
func textColumns(names []string, rows [][]string) map[string]series.Type {
	types := make(map[string]series.Type)
	for c, name := range names {
		var bools, others bool
		for _, rec := range rows {
			switch rec[c] {
			case missingMarker:
			case "true", "false":
				bools = true
			default:
				others = true
			}
		}
		if bools && others {
			types[name] = series.String
		}
	}
	return types
}

// normalizeHeader trims header cells, names blank ones "Unnamed: <i>" and
// suffixes repeats with ".1", ".2", ... so every name is unique.
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		base := name
		for n := 1; seen[name]; n++ {
			name = fmt.Sprintf("%s.%d", base, n)
		}
		seen[name] = true
		names[i] = name
	}
	return names
}

// Nrow returns the number of rows.
func (t Table) Nrow() int {
	if t.df.Ncol() == 0 {
		return 0
	}
	return t.df.Nrow()
}

// Ncol returns the number of columns.
func (t Table) Ncol() int {
	return t.df.Ncol()
}

// Empty reports whether the table has no columns.
func (t Table) Empty() bool {
	return t.df.Ncol() == 0
}

// Names returns the column names in order.
func (t Table) Names() []string {
	if t.Empty() {
		return []string{}
	}
	return t.df.Names()
}

// Kinds returns the column kinds in column order.
func (t Table) Kinds() []Kind {
	if t.Empty() {
		return []Kind{}
	}
	types := t.df.Types()
	kinds := make([]Kind, len(types))
	for i, typ := range types {
		kinds[i] = kindOf(typ)
	}
	return kinds
}

// KindOf returns the kind of the named column.
func (t Table) KindOf(name string) (Kind, bool) {
	idx := t.index(name)
	if idx < 0 {
		return "", false
	}
	return kindOf(t.df.Types()[idx]), true
}

// NumericColumns returns the names of int and float columns in order.
func (t Table) NumericColumns() []string {
	var cols []string
	names := t.Names()
	for i, k := range t.Kinds() {
		if k.Numeric() {
			cols = append(cols, names[i])
		}
	}
	return cols
}

// IsMissing reports whether the cell at (row, col) holds no value.
func (t Table) IsMissing(row, col int) bool {
	return t.df.Elem(row, col).IsNA()
}

// Float returns the numeric value at (row, col). ok is false for missing
// cells and non-numeric columns.
func (t Table) Float(row, col int) (float64, bool) {
	e := t.df.Elem(row, col)
	if e.IsNA() {
		return 0, false
	}
	switch e.Type() {
	case series.Int, series.Float:
		return e.Float(), true
	}
	return 0, false
}

// Value returns the cell at (row, col) as a Go value: int, float64, bool
// or string. ok is false for missing cells.
func (t Table) Value(row, col int) (any, bool) {
	e := t.df.Elem(row, col)
	if e.IsNA() {
		return nil, false
	}
	switch e.Type() {
	case series.Int:
		v, err := e.Int()
		if err != nil {
			return nil, false
		}
		return v, true
	case series.Float:
		return e.Float(), true
	case series.Bool:
		v, err := e.Bool()
		if err != nil {
			return nil, false
		}
		return v, true
	default:
		return e.String(), true
	}
}

// Text returns the cell at (row, col) formatted for display and CSV output.
// Missing cells are the empty string; floats use the shortest form that
// parses back to the same value.
func (t Table) Text(row, col int) string {
	v, ok := t.Value(row, col)
	if !ok {
		return ""
	}
	return formatValue(v)
}

// Row returns the formatted cells of one row.
func (t Table) Row(row int) []string {
	out := make([]string, t.Ncol())
	for c := range out {
		out[c] = t.Text(row, c)
	}
	return out
}

// Records returns the header followed by every formatted row.
func (t Table) Records() [][]string {
	records := make([][]string, 0, t.Nrow()+1)
	records = append(records, t.Names())
	for r := 0; r < t.Nrow(); r++ {
		records = append(records, t.Row(r))
	}
	return records
}

// Head returns the first n rows, or the table itself when it has no more
// than n rows.
func (t Table) Head(n int) Table {
	if n < 0 || n >= t.Nrow() {
		return t
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.subset(idx)
}

// MissingCount returns the number of missing cells per column, in column order.
func (t Table) MissingCount() []int {
	counts := make([]int, t.Ncol())
	for c := range counts {
		for r := 0; r < t.Nrow(); r++ {
			if t.IsMissing(r, c) {
				counts[c]++
			}
		}
	}
	return counts
}

func (t Table) index(name string) int {
	for i, n := range t.Names() {
		if n == name {
			return i
		}
	}
	return -1
}

func (t Table) subset(rows []int) Table {
	if t.Empty() {
		return t
	}
	return Table{df: t.df.Subset(rows)}
}

func kindOf(typ series.Type) Kind {
	switch typ {
	case series.Int:
		return KindInt
	case series.Float:
		return KindFloat
	case series.Bool:
		return KindBool
	default:
		return KindText
	}
}

func formatValue(v any) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case string:
		return val
	default:
		return fmt.Sprint(v)
	}
}
