package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default canvas size in pixels
const (
	DefaultWidth  = 800
	DefaultHeight = 400
)

// Draw renders spec as an SVG document
func Draw(spec ChartSpec, width, height int) ([]byte, error) {
	if spec.Empty() {
		return nil, fmt.Errorf("chart %s has no data", spec.Canvas)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	var buf bytes.Buffer
	var err error
	switch spec.Kind {
	case KindLine:
		err = lineChart(spec, width, height).Render(chart.SVG, &buf)
	case KindPie:
		err = pieChart(spec, width, height).Render(chart.SVG, &buf)
	case KindBar:
		err = barChart(spec, width, height).Render(chart.SVG, &buf)
	case KindStackedBar:
		err = stackedBarChart(spec, width, height).Render(chart.SVG, &buf)
	default:
		return nil, fmt.Errorf("unknown chart kind: %q", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to draw %s: %w", spec.Canvas, err)
	}
	return buf.Bytes(), nil
}

func padding() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 30, Left: 16, Right: 16, Bottom: 16}}
}

func lineChart(spec ChartSpec, width, height int) chart.Chart {
	series := spec.Series[0]
	xs := make([]float64, len(series.Values))
	ticks := make([]chart.Tick, len(spec.Labels))
	for i := range xs {
		xs[i] = float64(i)
	}
	for i, label := range spec.Labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	ys := series.Values
	// a single point still needs a two point series to span the range
	if len(xs) == 1 {
		xs = []float64{0, 1}
		ys = []float64{ys[0], ys[0]}
	}

	col := color(series.Color)
	return chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: padding(),
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(float64(len(spec.Labels)-1), 1)},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling(series.Values)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    series.Name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: col,
					StrokeWidth: 3,
					FillColor:   col.WithAlpha(26),
				},
			},
		},
	}
}

func pieChart(spec ChartSpec, width, height int) chart.PieChart {
	series := spec.Series[0]
	values := make([]chart.Value, 0, len(series.Values))
	for i, v := range series.Values {
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: spec.Labels[i],
			Value: v,
			Style: chart.Style{FillColor: color(pointColor(series, i))},
		})
	}
	return chart.PieChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: padding(),
		Values:     values,
	}
}

func barChart(spec ChartSpec, width, height int) chart.BarChart {
	series := spec.Series[0]
	bars := make([]chart.Value, len(series.Values))
	for i, v := range series.Values {
		col := color(pointColor(series, i))
		bars[i] = chart.Value{
			Label: spec.Labels[i],
			Value: v,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		}
	}
	return chart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: padding(),
		BarWidth:   40,
		BarSpacing: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling(series.Values)},
		},
		Bars: bars,
	}
}

func stackedBarChart(spec ChartSpec, width, height int) chart.StackedBarChart {
	bars := make([]chart.StackedBar, len(spec.Labels))
	for i, label := range spec.Labels {
		bar := chart.StackedBar{Name: label, Width: 40}
		for _, series := range spec.Series {
			if i >= len(series.Values) || series.Values[i] <= 0 {
				continue
			}
			col := color(pointColor(series, i))
			bar.Values = append(bar.Values, chart.Value{
				Label: series.Name,
				Value: series.Values[i],
				Style: chart.Style{FillColor: col, StrokeColor: col},
			})
		}
		bars[i] = bar
	}
	return chart.StackedBarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: padding(),
		BarSpacing: 40,
		Bars:       bars,
	}
}

func pointColor(series Series, i int) string {
	if i < len(series.Colors) {
		return series.Colors[i]
	}
	if series.Color != "" {
		return series.Color
	}
	return categoryPalette[i%len(categoryPalette)]
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// ceiling pads the largest value so the top point is not clipped
func ceiling(values []float64) float64 {
	top := 0.0
	for _, v := range values {
		top = math.Max(top, v)
	}
	return math.Max(math.Ceil(top*1.1), 1)
}
