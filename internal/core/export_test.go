package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCSV(t *testing.T) {
	tbl := csvTable(t, "name,qty,price\napple,3,1.25\npear,,0.5\n")

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, tbl))

	assert.Equal(t, "name,qty,price\napple,3,1.25\npear,,0.5\n", buf.String())
}

func TestExportCSV_RoundTrip(t *testing.T) {
	src := "id,city,score,ok\n1,Oslo,9.75,true\n2,\"Rio, BR\",,false\n3,,7,true\n"
	tbl := csvTable(t, src)

	data, err := ExportBytes(tbl, FormatCSV)
	require.NoError(t, err)

	back := csvTable(t, string(data))
	assert.Equal(t, tbl.Names(), back.Names())
	assert.Equal(t, tbl.Records(), back.Records())
	assert.Equal(t, tbl.MissingCount(), back.MissingCount())
}

func TestExportExcel_RoundTrip(t *testing.T) {
	tbl := csvTable(t, "region,units,price\nnorth,3,2.5\nsouth,,4.25\n")

	data, err := ExportBytes(tbl, FormatExcel)
	require.NoError(t, err)

	back, err := LoadExcel(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(), back.Records())
	assert.Equal(t, tbl.Kinds(), back.Kinds())
}

func TestExportExcel_RoundTripBooleans(t *testing.T) {
	tbl := csvTable(t, "id,flag\n1,true\n2,false\n3,\n")
	require.Equal(t, KindBool, tbl.Kinds()[1])

	data, err := ExportBytes(tbl, FormatExcel)
	require.NoError(t, err)

	back, err := LoadExcel(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, tbl.Kinds(), back.Kinds())
	assert.Equal(t, tbl.Records(), back.Records())
}

func TestExportExcel_SheetAndNumericCells(t *testing.T) {
	tbl := csvTable(t, "n,s\n42,x\n")

	data, err := ExportBytes(tbl, FormatExcel)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{ExportSheet}, wb.GetSheetList())

	n, err := wb.GetCellValue(ExportSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "42", n)

	typ, err := wb.GetCellType(ExportSheet, "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "numbers are not written as text")
	assert.NotEqual(t, excelize.CellTypeInlineString, typ, "numbers are not written as text")

	v, err := wb.GetCellValue(ExportSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestExport_NothingToExport(t *testing.T) {
	for _, f := range Formats {
		_, err := ExportBytes(Table{}, f)
		assert.ErrorIs(t, err, ErrNothingToExport, "format %s", f)
	}
}

func TestExport_HeaderOnly(t *testing.T) {
	tbl := csvTable(t, "a,b\n")

	data, err := ExportBytes(tbl, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	tbl := csvTable(t, "a\n1\n")

	_, err := ExportBytes(tbl, Format("PDF"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.True(t, strings.Contains(err.Error(), "PDF"))
}
