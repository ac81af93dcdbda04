package core

import (
	"fmt"
	"io"
)

// Result is the outcome of one pipeline run over a single file.
type Result struct {
	File    UploadedFile
	Options FileOptions

	// Cleaned is the table after the cleaning stages. Its columns are the
	// ones offered for selection.
	Cleaned Table

	// Table is Cleaned projected onto the selected columns. It is what gets
	// previewed, charted and exported.
	Table Table

	Stats CleanStats
	Err   error
}

// Run loads f and applies opts: coerce, dedupe, fill, then select.
// A file that fails to load yields a Result with Err set and empty tables.
func Run(f UploadedFile, opts FileOptions) Result {
	res := Result{File: f, Options: opts}

	t, err := Load(f)
	if err != nil {
		res.Err = fmt.Errorf("load %s: %w", f.Name, err)
		return res
	}

	res.Cleaned, res.Stats = Clean(t, opts)
	res.Table = Select(res.Cleaned, opts.Columns)
	return res
}

// OK reports whether the file loaded.
func (r Result) OK() bool {
	return r.Err == nil
}

// NoColumns reports whether an explicit selection left no columns.
func (r Result) NoColumns() bool {
	return r.OK() && !r.Options.AllColumns() && r.Table.Empty()
}

// Chart returns the chart model of the selected table.
func (r Result) Chart(maxRows int) (ChartData, bool) {
	if !r.OK() {
		return ChartData{}, false
	}
	return BuildChart(r.Table, maxRows)
}

// Export writes the selected table in format to w.
func (r Result) Export(w io.Writer, format Format) error {
	if !r.OK() {
		return fmt.Errorf("%w: %v", ErrFileNotLoaded, r.Err)
	}
	return Export(w, r.Table, format)
}

// Report summarizes the result for display.
func (r Result) Report() FileReport {
	rep := FileReport{
		ID:      r.File.ID,
		Name:    r.File.Name,
		Size:    r.File.Size,
		Columns: []ColumnInfo{},
		Options: r.Options,
		Stats:   r.Stats,
	}
	if r.Err != nil {
		msg := MapError(r.Err)
		rep.Error = r.Err.Error()
		rep.ErrorCode = msg.Code
		return rep
	}

	rep.Rows = r.Table.Nrow()
	rep.Columns = Columns(r.Table)
	return rep
}
