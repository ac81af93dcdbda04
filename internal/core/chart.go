package core

// chart.go builds the bar chart shown for a file: one group of bars per
// row, one bar per plotted column, over at most the first two numeric
// columns. Rendering is done server-side to SVG by go-chart.

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MaxChartColumns is how many numeric columns are plotted.
const MaxChartColumns = 2

// ChartSeries is one plotted column.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ChartData is the renderer-independent chart model.
type ChartData struct {
	Labels []string      `json:"labels"` // row index of each group
	Series []ChartSeries `json:"series"`
}

// Rows returns the number of plotted rows.
func (d ChartData) Rows() int {
	return len(d.Labels)
}

// chartColors are assigned to series in order.
var chartColors = []drawing.Color{chart.ColorBlue, chart.ColorGreen}

// SeriesColor returns the fill color of series i as a CSS hex string.
func SeriesColor(i int) string {
	c := chartColors[i%len(chartColors)]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// BuildChart returns the chart model for t, plotting at most maxRows rows
// (all rows when maxRows <= 0). Missing values plot as 0. ok is false when
// t has no numeric column.
func BuildChart(t Table, maxRows int) (ChartData, bool) {
	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		return ChartData{}, false
	}
	if len(numeric) > MaxChartColumns {
		numeric = numeric[:MaxChartColumns]
	}

	rows := t.Nrow()
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
	}

	data := ChartData{Labels: make([]string, rows)}
	for r := range data.Labels {
		data.Labels[r] = strconv.Itoa(r)
	}

	for _, name := range numeric {
		c := t.index(name)
		s := ChartSeries{Name: name, Values: make([]float64, rows)}
		for r := range s.Values {
			if v, ok := t.Float(r, c); ok {
				s.Values[r] = v
			}
		}
		data.Series = append(data.Series, s)
	}
	return data, true
}

const (
	chartHeight     = 400
	chartMinWidth   = 640
	chartBarWidth   = 14
	chartBarSpacing = 4
	chartPadding    = 96
)

// RenderChartSVG writes data as an SVG bar chart to w.
func RenderChartSVG(w io.Writer, data ChartData) error {
	if len(data.Series) == 0 || data.Rows() == 0 {
		return errors.New("chart has no data")
	}

	bars := make([]chart.Value, 0, data.Rows()*len(data.Series))
	lo, hi := 0.0, 0.0
	for r, label := range data.Labels {
		for i, s := range data.Series {
			v := s.Values[r]
			lo, hi = min(lo, v), max(hi, v)

			bar := chart.Value{
				Value: v,
				Style: chart.Style{
					FillColor:   chartColors[i%len(chartColors)],
					StrokeColor: chartColors[i%len(chartColors)],
				},
			}
			if i == 0 {
				bar.Label = label
			}
			bars = append(bars, bar)
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	width := max(chartMinWidth, chartPadding+len(bars)*(chartBarWidth+chartBarSpacing))

	bc := chart.BarChart{
		Title:      chartTitle(data),
		Width:      width,
		Height:     chartHeight,
		BarWidth:   chartBarWidth,
		BarSpacing: chartBarSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16},
		},
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
	return bc.Render(chart.SVG, w)
}

func chartTitle(data ChartData) string {
	title := data.Series[0].Name
	for _, s := range data.Series[1:] {
		title += " / " + s.Name
	}
	return title
}
