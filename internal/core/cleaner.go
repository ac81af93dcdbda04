package core

// cleaner.go implements the user-triggered cleaning stages. Each stage
// returns a new Table; inputs are never modified. All stages are idempotent.

import (
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
)

// Clean applies the enabled stages in pipeline order:
// coerce numeric text, remove duplicates, fill missing values.
func Clean(t Table, opts FileOptions) (Table, CleanStats) {
	var stats CleanStats

	if opts.CoerceNumeric {
		t, stats.Coerced = CoerceNumeric(t)
	}
	if opts.RemoveDuplicates {
		t, stats.DuplicatesRemoved = RemoveDuplicates(t)
	}
	if opts.FillMissing {
		t, stats.ValuesFilled = FillMissing(t)
	}
	return t, stats
}

// RemoveDuplicates drops every row that exactly matches an earlier row
// across all columns. Missing matches missing. The first occurrence is kept
// and row order is preserved. Returns the number of rows dropped.
func RemoveDuplicates(t Table) (Table, int) {
	n := t.Nrow()
	if n < 2 {
		return t, 0
	}

	seen := make(map[string]struct{}, n)
	keep := make([]int, 0, n)
	for r := 0; r < n; r++ {
		key := t.rowKey(r)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, r)
	}

	removed := n - len(keep)
	if removed == 0 {
		return t, 0
	}
	return t.subset(keep), removed
}

// rowKey encodes a row so that two rows share a key only when every cell
// is equal. Present cells are length-prefixed; missing cells are "-".
func (t Table) rowKey(r int) string {
	var b strings.Builder
	for c := 0; c < t.Ncol(); c++ {
		if t.IsMissing(r, c) {
			b.WriteByte('-')
			continue
		}
		v := t.Text(r, c)
		b.WriteString(strconv.Itoa(len(v)))
		b.WriteByte(':')
		b.WriteString(v)
	}
	return b.String()
}

// FillMissing replaces missing cells of each numeric column with the mean
// of that column's present values. Columns without missing cells, and
// columns with no present values, are left as they are. Returns the number
// of cells filled.
func FillMissing(t Table) (Table, int) {
	filled := 0
	df := t.df

	for c, name := range t.Names() {
		kind, _ := t.KindOf(name)
		if !kind.Numeric() {
			continue
		}

		var sum float64
		var present, missing int
		for r := 0; r < t.Nrow(); r++ {
			if v, ok := t.Float(r, c); ok {
				sum += v
				present++
			} else {
				missing++
			}
		}
		if missing == 0 || present == 0 {
			continue
		}

		mean := sum / float64(present)
		values := make([]float64, t.Nrow())
		for r := range values {
			if v, ok := t.Float(r, c); ok {
				values[r] = v
			} else {
				values[r] = mean
			}
		}

		df = df.Mutate(series.New(values, series.Float, name))
		filled += missing
	}

	if filled == 0 {
		return t, 0
	}
	return Table{df: df}, filled
}

// CoerceNumeric converts text columns whose every present value parses as
// a number (currency, separators and accounting negatives allowed) into
// float columns. Returns the names of the converted columns.
func CoerceNumeric(t Table) (Table, []string) {
	var coerced []string
	df := t.df

	for c, name := range t.Names() {
		kind, _ := t.KindOf(name)
		if kind != KindText {
			continue
		}

		values := make([]string, t.Nrow())
		present := 0
		ok := true
		for r := 0; r < t.Nrow() && ok; r++ {
			if t.IsMissing(r, c) {
				values[r] = missingMarker
				continue
			}
			f, parsed := ParseNumeric(t.Text(r, c))
			if !parsed {
				ok = false
				break
			}
			values[r] = strconv.FormatFloat(f, 'f', -1, 64)
			present++
		}
		if !ok || present == 0 {
			continue
		}

		df = df.Mutate(series.New(values, series.Float, name))
		coerced = append(coerced, name)
	}

	if len(coerced) == 0 {
		return t, nil
	}
	return Table{df: df}, coerced
}
