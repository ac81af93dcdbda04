package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_FullPipeline(t *testing.T) {
	f := NewUploadedFile("sales.csv", []byte("region,units,price\nn,1,2\nn,1,2\ns,,4\nw,3,\n"))

	res := Run(f, FileOptions{
		RemoveDuplicates: true,
		FillMissing:      true,
		Columns:          []string{"units", "region"},
		Format:           FormatCSV,
	})
	require.NoError(t, res.Err)

	assert.Equal(t, CleanStats{DuplicatesRemoved: 1, ValuesFilled: 2}, res.Stats)
	assert.Equal(t, []string{"region", "units", "price"}, res.Cleaned.Names())
	assert.Equal(t, [][]string{
		{"units", "region"},
		{"1", "n"},
		{"2", "s"},
		{"3", "w"},
	}, res.Table.Records())
}

func TestRun_UnsupportedFile(t *testing.T) {
	res := Run(NewUploadedFile("notes.txt", []byte("a\n1\n")), DefaultOptions())

	require.ErrorIs(t, res.Err, ErrUnsupportedFileType)
	assert.False(t, res.OK())

	rep := res.Report()
	assert.Equal(t, 0, rep.Rows)
	assert.Empty(t, rep.Columns)
	assert.Equal(t, "FILE002", rep.ErrorCode)
	assert.Contains(t, rep.Error, "unsupported file type: .txt")
}

func TestRun_MalformedFileReported(t *testing.T) {
	res := Run(NewUploadedFile("bad.xlsx", []byte("not a workbook")), DefaultOptions())

	assert.ErrorIs(t, res.Err, ErrMalformedExcel)
	assert.Equal(t, "FILE006", res.Report().ErrorCode)

	var buf bytes.Buffer
	err := res.Export(&buf, FormatCSV)
	assert.ErrorIs(t, err, ErrFileNotLoaded)
}

func TestRun_NoColumns(t *testing.T) {
	res := Run(NewUploadedFile("a.csv", []byte("a,b\n1,2\n")), FileOptions{Columns: []string{}})

	require.NoError(t, res.Err)
	assert.True(t, res.NoColumns())
	assert.Equal(t, 0, res.Report().Rows)

	_, ok := res.Chart(10)
	assert.False(t, ok)

	var buf bytes.Buffer
	assert.ErrorIs(t, res.Export(&buf, FormatExcel), ErrNothingToExport)
}

func TestRun_ChartFollowsSelection(t *testing.T) {
	res := Run(NewUploadedFile("a.csv", []byte("x,y,z\n1,2,3\n")), FileOptions{Columns: []string{"z", "x"}})

	data, ok := res.Chart(10)
	require.True(t, ok)
	require.Len(t, data.Series, 2)
	assert.Equal(t, "z", data.Series[0].Name)
	assert.Equal(t, "x", data.Series[1].Name)
}

func TestResult_Report(t *testing.T) {
	f := NewUploadedFile("data.csv", []byte("a,b\n1,\n2,x\n"))
	rep := Run(f, DefaultOptions()).Report()

	assert.Equal(t, f.ID, rep.ID)
	assert.Equal(t, "data.csv", rep.Name)
	assert.Equal(t, f.Size, rep.Size)
	assert.Equal(t, 2, rep.Rows)
	assert.Equal(t, []ColumnInfo{
		{Name: "a", Kind: KindInt, Missing: 0},
		{Name: "b", Kind: KindText, Missing: 1},
	}, rep.Columns)
	assert.Empty(t, rep.Error)
}

func TestUploadedFile_ExportName(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   string
	}{
		{"report.csv", FormatExcel, "report.xlsx"},
		{"report.xlsx", FormatCSV, "report.csv"},
		{"report.csv", FormatCSV, "report.csv"},
		{"q1.sales.CSV", FormatExcel, "q1.sales.xlsx"},
	}

	for _, tt := range tests {
		f := NewUploadedFile(tt.name, nil)
		assert.Equal(t, tt.want, f.ExportName(tt.format), "%s as %s", tt.name, tt.format)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"CSV":   FormatCSV,
		"csv":   FormatCSV,
		"Excel": FormatExcel,
		"xlsx":  FormatExcel,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, "text/csv", FormatCSV.ContentType())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatExcel.ContentType())
}
