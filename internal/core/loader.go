package core

// loader.go decodes uploaded bytes into a Table.
//
// The file type is decided by extension alone. CSV input is decoded through
// a BOM-aware UTF-8/UTF-16 reader so files saved by Excel on Windows load
// cleanly; invalid UTF-8 bytes become U+FFFD. Excel input is read from the
// first worksheet using raw cell values, with boolean cells spelled
// true or false.

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Load decodes f according to its extension.
func Load(f UploadedFile) (Table, error) {
	switch f.Ext {
	case ExtCSV:
		return LoadCSV(bytes.NewReader(f.Data))
	case ExtExcel:
		return LoadExcel(bytes.NewReader(f.Data))
	default:
		ext := f.Ext
		if ext == "" {
			ext = "(none)"
		}
		return Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}
}

// NewTextReader wraps r so that a leading BOM selects UTF-8 or UTF-16
// decoding; input without a BOM is treated as UTF-8.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

// LoadCSV decodes comma-separated text. The first record is the header.
func LoadCSV(r io.Reader) (Table, error) {
	cr := csv.NewReader(NewTextReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrMalformedCSV, err)
	}
	if len(records) == 0 {
		return Table{}, ErrEmptyFile
	}

	return NewTable(records[0], records[1:])
}

// LoadExcel decodes the first worksheet of an .xlsx workbook. Cells to the
// right of the header get generated column names.
func LoadExcel(r io.Reader) (Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrMalformedExcel, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptyFile
	}

	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("%w: sheet %q: %v", ErrMalformedExcel, sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, ErrEmptyFile
	}
	if err := spellBools(wb, sheets[0], rows); err != nil {
		return Table{}, fmt.Errorf("%w: sheet %q: %v", ErrMalformedExcel, sheets[0], err)
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if width == 0 {
		return Table{}, ErrEmptyFile
	}

	header := make([]string, width)
	copy(header, rows[0])

	return NewTable(header, rows[1:])
}

// spellBools rewrites boolean cells, which raw reads return as 1 or 0,
// to true and false.
func spellBools(wb *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, v := range row {
			if v != "0" && v != "1" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			typ, err := wb.GetCellType(sheet, cell)
			if err != nil {
				return err
			}
			if typ == excelize.CellTypeBool {
				row[c] = strconv.FormatBool(v == "1")
			}
		}
	}
	return nil
}
