package core

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExportSheet is the name of the single worksheet written by ExportExcel.
const ExportSheet = "Sheet1"

// Export writes t to w in the given format.
func Export(w io.Writer, t Table, format Format) error {
	switch format {
	case FormatCSV:
		return ExportCSV(w, t)
	case FormatExcel:
		return ExportExcel(w, t)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
}

// ExportBytes is Export into a new buffer.
func ExportBytes(t Table, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Export(&buf, t, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCSV writes a header row and one record per row. Missing cells are
// written as empty fields.
func ExportCSV(w io.Writer, t Table) error {
	if t.Empty() {
		return ErrNothingToExport
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ExportExcel writes t to a single-sheet workbook. Numeric and boolean
// cells keep their type; missing cells are left blank.
func ExportExcel(w io.Writer, t Table) error {
	if t.Empty() {
		return ErrNothingToExport
	}

	wb := excelize.NewFile()
	defer wb.Close()

	header := make([]any, t.Ncol())
	for i, name := range t.Names() {
		header[i] = name
	}
	if err := wb.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]any, t.Ncol())
	for r := 0; r < t.Nrow(); r++ {
		for c := range row {
			v, ok := t.Value(r, c)
			if !ok {
				v = nil
			}
			row[c] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", r, err)
		}
		if err := wb.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	if err := wb.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
