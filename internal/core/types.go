package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Recognized upload extensions, compared case-insensitively.
const (
	ExtCSV   = ".csv"
	ExtExcel = ".xlsx"
)

// Format is an export format.
type Format string

const (
	FormatCSV   Format = "CSV"
	FormatExcel Format = "Excel"
)

// Formats lists the export formats in display order.
var Formats = []Format{FormatCSV, FormatExcel}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "excel", "xlsx":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Extension returns the file extension written by this format.
func (f Format) Extension() string {
	if f == FormatExcel {
		return ExtExcel
	}
	return ExtCSV
}

// ContentType returns the MIME type of exported files.
func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv"
}

// UploadedFile is a file as received from the user.
type UploadedFile struct {
	ID         string
	Name       string
	Size       int64
	Data       []byte
	Ext        string // lower-cased, with leading dot
	UploadedAt time.Time
}

// NewUploadedFile wraps raw bytes with a fresh ID and the extension
// derived from name.
func NewUploadedFile(name string, data []byte) UploadedFile {
	return UploadedFile{
		ID:         uuid.NewString(),
		Name:       filepath.Base(name),
		Size:       int64(len(data)),
		Data:       data,
		Ext:        strings.ToLower(filepath.Ext(name)),
		UploadedAt: time.Now(),
	}
}

// Supported reports whether the loader can decode this file.
func (f UploadedFile) Supported() bool {
	return f.Ext == ExtCSV || f.Ext == ExtExcel
}

// ExportName returns the file name with its extension swapped for format.
func (f UploadedFile) ExportName(format Format) string {
	base := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
	return base + format.Extension()
}

// FileOptions is the explicit per-file pipeline configuration.
//
// Cleaning flags only ever go from false to true within a session.
// Columns == nil selects every column; an empty non-nil slice selects none.
type FileOptions struct {
	RemoveDuplicates bool     `json:"remove_duplicates"`
	FillMissing      bool     `json:"fill_missing"`
	CoerceNumeric    bool     `json:"coerce_numeric"`
	Columns          []string `json:"columns"`
	ShowChart        bool     `json:"show_chart"`
	Format           Format   `json:"format"`
}

// DefaultOptions returns the options of a freshly uploaded file.
func DefaultOptions() FileOptions {
	return FileOptions{Format: FormatCSV}
}

// AllColumns reports whether no column selection is in effect.
func (o FileOptions) AllColumns() bool {
	return o.Columns == nil
}

// CleanStats counts what the cleaning stages changed.
type CleanStats struct {
	Coerced           []string `json:"coerced,omitempty"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	ValuesFilled      int      `json:"values_filled"`
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name    string `json:"name"`
	Kind    Kind   `json:"kind"`
	Missing int    `json:"missing"`
}

// FileReport is the per-file summary shown to users and returned by the API.
type FileReport struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Size      int64        `json:"size"`
	Rows      int          `json:"rows"`
	Columns   []ColumnInfo `json:"columns"`
	Options   FileOptions  `json:"options"`
	Stats     CleanStats   `json:"stats"`
	Error     string       `json:"error,omitempty"`
	ErrorCode string       `json:"error_code,omitempty"`
}

// Columns describes every column of t.
func Columns(t Table) []ColumnInfo {
	names := t.Names()
	kinds := t.Kinds()
	missing := t.MissingCount()

	cols := make([]ColumnInfo, len(names))
	for i := range names {
		cols[i] = ColumnInfo{Name: names[i], Kind: kinds[i], Missing: missing[i]}
	}
	return cols
}
