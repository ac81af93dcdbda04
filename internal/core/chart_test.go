package core

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildChart_FirstTwoNumeric(t *testing.T) {
	tbl := csvTable(t, "name,a,b,c\nx,1,2.5,9\ny,3,,9\n")

	data, ok := BuildChart(tbl, 0)
	require.True(t, ok)

	assert.Equal(t, []string{"0", "1"}, data.Labels)
	require.Len(t, data.Series, 2)
	assert.Equal(t, ChartSeries{Name: "a", Values: []float64{1, 3}}, data.Series[0])
	assert.Equal(t, ChartSeries{Name: "b", Values: []float64{2.5, 0}}, data.Series[1], "missing plots as zero")
}

func TestBuildChart_SingleNumeric(t *testing.T) {
	tbl := csvTable(t, "name,n\nx,4\n")

	data, ok := BuildChart(tbl, 0)
	require.True(t, ok)
	require.Len(t, data.Series, 1)
	assert.Equal(t, "n", data.Series[0].Name)
}

func TestBuildChart_NoNumeric(t *testing.T) {
	tbl := csvTable(t, "name\nx\n")

	_, ok := BuildChart(tbl, 0)
	assert.False(t, ok)

	_, ok = BuildChart(Table{}, 0)
	assert.False(t, ok)
}

func TestBuildChart_MaxRows(t *testing.T) {
	tbl := csvTable(t, "n\n1\n2\n3\n4\n")

	data, ok := BuildChart(tbl, 2)
	require.True(t, ok)
	assert.Equal(t, 2, data.Rows())
	assert.Equal(t, []float64{1, 2}, data.Series[0].Values)
}

func TestRenderChartSVG(t *testing.T) {
	data := ChartData{
		Labels: []string{"0", "1", "2"},
		Series: []ChartSeries{
			{Name: "units", Values: []float64{3, 5, 2}},
			{Name: "price", Values: []float64{1.5, 2, 4}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderChartSVG(&buf, data))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderChartSVG_AllZero(t *testing.T) {
	data := ChartData{
		Labels: []string{"0"},
		Series: []ChartSeries{{Name: "n", Values: []float64{0}}},
	}

	var buf bytes.Buffer
	assert.NoError(t, RenderChartSVG(&buf, data))
}

func TestRenderChartSVG_NoData(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, RenderChartSVG(&buf, ChartData{}))
}

func TestSeriesColor(t *testing.T) {
	assert.Regexp(t, `^#[0-9a-f]{6}$`, SeriesColor(0))
	assert.NotEqual(t, SeriesColor(0), SeriesColor(1))
	assert.Equal(t, SeriesColor(0), SeriesColor(2))
}
