package render

import (
	"sync/atomic"
	"time"

	"legislativo/internal/aggregate"
	"legislativo/internal/formatter"
	"legislativo/internal/models"
)

// ChartKind selects how a ChartSpec is drawn
type ChartKind string

const (
	KindLine       ChartKind = "line"
	KindPie        ChartKind = "pie"
	KindBar        ChartKind = "bar"
	KindStackedBar ChartKind = "stacked_bar"
)

// Palette
const (
	ColorPrimary = "#0039a6"
	ColorSuccess = "#2ecc71"
	ColorDanger  = "#e74c3c"
	ColorNeutral = "#95a5a6"
	ColorWarning = "#f39c12"
	ColorInfo    = "#3498db"
)

var categoryPalette = []string{
	ColorSuccess, ColorDanger, ColorNeutral, ColorWarning, ColorInfo, ColorPrimary,
}

// Series is one data series. Colors, when set, color each point; otherwise
// Color applies to the whole series.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
	Colors []string  `json:"colors,omitempty"`
}

// ChartSpec is a drawable chart description bound to a canvas
type ChartSpec struct {
	Canvas string    `json:"canvas"`
	Kind   ChartKind `json:"kind"`
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Series []Series  `json:"series"`
}

// Empty reports whether the spec has nothing to draw
func (s ChartSpec) Empty() bool {
	if len(s.Labels) == 0 {
		return true
	}
	for _, series := range s.Series {
		for _, v := range series.Values {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

var chartSeq atomic.Uint64

// Chart is a drawn chart instance living on a canvas
type Chart struct {
	Seq       uint64
	Spec      ChartSpec
	SVG       []byte
	destroyed atomic.Bool
}

func newChart(spec ChartSpec, svg []byte) *Chart {
	return &Chart{Seq: chartSeq.Add(1), Spec: spec, SVG: svg}
}

// Destroy releases the chart; a destroyed chart keeps no drawing
func (c *Chart) Destroy() {
	if c.destroyed.CompareAndSwap(false, true) {
		c.SVG = nil
	}
}

// Destroyed reports whether Destroy was called
func (c *Chart) Destroyed() bool {
	return c.destroyed.Load()
}

// ActivitySpec is the votings-per-month line chart
func ActivitySpec(records []models.VotingRecord, f *formatter.Formatter, windowMonths int, now time.Time) ChartSpec {
	months := aggregate.BucketByMonth(records, windowMonths, now)
	labels := make([]string, len(months))
	values := make([]float64, len(months))
	for i, m := range months {
		labels[i] = f.FormatMonthLabel(m.Month)
		values[i] = float64(m.Count)
	}
	return ChartSpec{
		Canvas: CanvasActivity,
		Kind:   KindLine,
		Title:  "Votaciones por mes",
		Labels: labels,
		Series: []Series{{Name: "Votaciones", Values: values, Color: ColorPrimary}},
	}
}

// ResultsSpec is the result breakdown pie chart
func ResultsSpec(records []models.VotingRecord) ChartSpec {
	return categorySpec(CanvasResults, KindPie, "Resultados", "Resultados",
		aggregate.CountByField(records, models.FieldResult, 0))
}

// TypesSpec is the most frequent voting types bar chart
func TypesSpec(records []models.VotingRecord, topN int) ChartSpec {
	return categorySpec(CanvasTypes, KindBar, "Tipos de votación", "Cantidad",
		aggregate.CountByField(records, models.FieldType, topN))
}

func categorySpec(canvas string, kind ChartKind, title, name string, counts []models.CategoryCount) ChartSpec {
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	colors := make([]string, len(counts))
	for i, c := range counts {
		labels[i] = c.Value
		values[i] = float64(c.Count)
		colors[i] = categoryPalette[i%len(categoryPalette)]
	}
	return ChartSpec{
		Canvas: canvas,
		Kind:   kind,
		Title:  title,
		Labels: labels,
		Series: []Series{{Name: name, Values: values, Colors: colors}},
	}
}

// VotesSpec is the average yes/no/abstain bar chart
func VotesSpec(records []models.VotingRecord) ChartSpec {
	avg := aggregate.AverageVoteTotals(records)
	return ChartSpec{
		Canvas: CanvasVotes,
		Kind:   KindBar,
		Title:  "Promedio de votos",
		Labels: []string{"Votos Sí", "Votos No", "Abstenciones"},
		Series: []Series{{
			Name:   "Promedio de Votos",
			Values: []float64{float64(avg.Yes), float64(avg.No), float64(avg.Abstain)},
			Colors: []string{ColorSuccess, ColorDanger, ColorNeutral},
		}},
	}
}

// YearlySpec is the approved/rejected/other stacked bar chart by year
func YearlySpec(records []models.VotingRecord) ChartSpec {
	years := aggregate.SortedYears(aggregate.BucketByYear(records))
	labels := make([]string, len(years))
	approved := make([]float64, len(years))
	rejected := make([]float64, len(years))
	other := make([]float64, len(years))
	for i, y := range years {
		labels[i] = y.Year
		approved[i] = float64(y.Approved)
		rejected[i] = float64(y.Rejected)
		other[i] = float64(y.Total - y.Approved - y.Rejected)
	}
	return ChartSpec{
		Canvas: CanvasYearly,
		Kind:   KindStackedBar,
		Title:  "Resultados por año",
		Labels: labels,
		Series: []Series{
			{Name: "Aprobados", Values: approved, Color: ColorSuccess},
			{Name: "Rechazados", Values: rejected, Color: ColorDanger},
			{Name: "Otros", Values: other, Color: ColorNeutral},
		},
	}
}
