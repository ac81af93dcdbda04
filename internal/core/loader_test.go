package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an .xlsx file whose first sheet holds rows.
func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestLoad_Dispatch(t *testing.T) {
	tests := []struct {
		name    string
		file    UploadedFile
		wantErr error
		wantRow int
	}{
		{
			name:    "csv",
			file:    NewUploadedFile("data.csv", []byte("a,b\n1,2\n")),
			wantRow: 1,
		},
		{
			name:    "upper case extension",
			file:    NewUploadedFile("DATA.CSV", []byte("a,b\n1,2\n3,4\n")),
			wantRow: 2,
		},
		{
			name:    "text file is unsupported",
			file:    NewUploadedFile("notes.txt", []byte("a,b\n1,2\n")),
			wantErr: ErrUnsupportedFileType,
		},
		{
			name:    "legacy excel is unsupported",
			file:    NewUploadedFile("old.xls", []byte{0xd0, 0xcf}),
			wantErr: ErrUnsupportedFileType,
		},
		{
			name:    "no extension",
			file:    NewUploadedFile("README", []byte("x")),
			wantErr: ErrUnsupportedFileType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Load(tt.file)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, tbl.Nrow())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRow, tbl.Nrow())
		})
	}
}

func TestLoad_UnsupportedMessageNamesExtension(t *testing.T) {
	_, err := Load(NewUploadedFile("notes.txt", nil))
	require.Error(t, err)
	assert.Equal(t, "unsupported file type: .txt", err.Error())
}

func TestLoadCSV_CountsMatchSource(t *testing.T) {
	tbl := csvTable(t, "id,name,score\n1,ann,9.5\n2,bob,7\n3,cy,8\n")

	assert.Equal(t, 3, tbl.Nrow())
	assert.Equal(t, 3, tbl.Ncol())
}

func TestLoadCSV_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,name\n1,a\n")...)
	tbl, err := LoadCSV(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, tbl.Names())
}

func TestLoadCSV_UTF16(t *testing.T) {
	// "a,b\n1,2\n" as UTF-16LE with BOM
	text := "a,b\n1,2\n"
	data := []byte{0xFF, 0xFE}
	for _, r := range text {
		data = append(data, byte(r), 0)
	}

	tbl, err := LoadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names())
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, tbl.Records())
}

func TestLoadCSV_InvalidUTF8Replaced(t *testing.T) {
	tbl, err := LoadCSV(bytes.NewReader([]byte("name\nbad\x80byte\n")))
	require.NoError(t, err)
	assert.Equal(t, "bad�byte", tbl.Text(0, 0))
}

func TestLoadCSV_Empty(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadCSV_LongRowIsMalformed(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("a,b\n1,2,3\n"))
	require.ErrorIs(t, err, ErrMalformedCSV)
	assert.Equal(t, "FILE003", MapError(err).Code)
}

func TestLoadCSV_QuotedFields(t *testing.T) {
	tbl := csvTable(t, "name,note\n\"Smith, J\",\"said \"\"hi\"\"\"\n")

	assert.Equal(t, "Smith, J", tbl.Text(0, 0))
	assert.Equal(t, `said "hi"`, tbl.Text(0, 1))
}

func TestLoadExcel(t *testing.T) {
	data := workbook(t, [][]any{
		{"region", "units", "price"},
		{"north", 3, 2.5},
		{"south", 4},
	})

	tbl, err := LoadExcel(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"region", "units", "price"}, tbl.Names())
	assert.Equal(t, []Kind{KindText, KindInt, KindFloat}, tbl.Kinds())
	assert.Equal(t, 2, tbl.Nrow())
	assert.True(t, tbl.IsMissing(1, 2), "short row is padded")
}

func TestLoadExcel_CellsBeyondHeaderGetNames(t *testing.T) {
	data := workbook(t, [][]any{
		{"a"},
		{1, 2},
	})

	tbl, err := LoadExcel(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "Unnamed: 1"}, tbl.Names())
}

func TestLoadExcel_Malformed(t *testing.T) {
	_, err := LoadExcel(strings.NewReader("this is not a zip archive"))
	require.ErrorIs(t, err, ErrMalformedExcel)
	assert.Equal(t, "FILE006", MapError(err).Code)
}

func TestLoadExcel_EmptySheet(t *testing.T) {
	data := workbook(t, nil)

	_, err := LoadExcel(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestLoadExcel_Booleans(t *testing.T) {
	data := workbook(t, [][]any{
		{"flag", "n"},
		{true, 1},
		{false, 0},
	})

	tbl, err := LoadExcel(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []Kind{KindBool, KindInt}, tbl.Kinds())
	assert.Equal(t, []string{"true", "1"}, tbl.Row(0))
	assert.Equal(t, []string{"false", "0"}, tbl.Row(1))
}

func TestLoad_HeaderOnly(t *testing.T) {
	files := []UploadedFile{
		NewUploadedFile("empty.csv", []byte("k,v\n")),
		NewUploadedFile("empty.xlsx", workbook(t, [][]any{{"k", "v"}})),
	}

	for _, f := range files {
		t.Run(f.Name, func(t *testing.T) {
			tbl, err := Load(f)
			require.NoError(t, err)
			assert.Equal(t, 0, tbl.Nrow())
			assert.Equal(t, []string{"k", "v"}, tbl.Names())
		})
	}
}
