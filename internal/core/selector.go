package core

// Select projects t onto the named columns, in the order given.
//
// A nil selection returns t unchanged. Names that t does not have, and
// repeats, are dropped. When nothing remains the result is the empty table.
func Select(t Table, columns []string) Table {
	if columns == nil {
		return t
	}

	names := ResolveColumns(t, columns)
	if len(names) == 0 {
		return Table{}
	}
	return Table{df: t.df.Select(names)}
}

// ResolveColumns returns the subset of columns that exist in t, in
// selection order and without repeats.
func ResolveColumns(t Table, columns []string) []string {
	have := make(map[string]bool, t.Ncol())
	for _, n := range t.Names() {
		have[n] = true
	}

	names := make([]string, 0, len(columns))
	for _, c := range columns {
		if have[c] {
			names = append(names, c)
			delete(have, c)
		}
	}
	return names
}
