package render

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"legislativo/internal/aggregate"
	"legislativo/internal/formatter"
	"legislativo/internal/loader"
	"legislativo/internal/models"
)

func snapshotOf(records []models.VotingRecord, updatedAt string) *loader.Snapshot {
	state := aggregate.Summarize(records)
	state.LastUpdated = updatedAt
	return &loader.Snapshot{
		ID:         "test",
		Records:    records,
		Statistics: models.Statistics{UpdatedAt: updatedAt},
		State:      state,
	}
}

func sampleRecords() []models.VotingRecord {
	return []models.VotingRecord{
		models.NewVotingRecord(map[string]string{
			"Fecha":       "2024-01-10",
			"Descripcion": strings.Repeat("a", 75),
			"Resultado":   "Aprobado",
			"Tipo":        "Proyecto de ley",
			"TotalSi":     "1200",
			"TotalNo":     "3",
		}),
		models.NewVotingRecord(map[string]string{
			"Fecha":     "2024-02-05",
			"Resultado": "Rechazado",
			"Tipo":      "Resolución",
			"TotalSi":   "40",
		}),
	}
}

func newViewRenderer(t *testing.T) *ViewRenderer {
	return NewViewRenderer(formatter.Default(), zaptest.NewLogger(t), 0, 0)
}

func TestViewSummary(t *testing.T) {
	doc := DefaultDocument()
	newViewRenderer(t).Render(doc, snapshotOf(sampleRecords(), "2024-12-18 10:00:00"))

	get := func(id string) string {
		r, ok := doc.Region(id)
		require.True(t, ok)
		return r.Text
	}
	assert.Equal(t, "2", get(RegionTotal))
	assert.Equal(t, "18 dic 2024", get(RegionUpdated))
	assert.Equal(t, "1", get(RegionApproved))
	assert.Equal(t, "620", get(RegionAverageYes))
}

func TestViewEmptySnapshot(t *testing.T) {
	doc := DefaultDocument()
	newViewRenderer(t).Render(doc, snapshotOf([]models.VotingRecord{}, ""))

	total, _ := doc.Region(RegionTotal)
	assert.Equal(t, "0", total.Text)
	for _, id := range []string{RegionUpdated, RegionApproved, RegionAverageYes, RegionTableHeaders, RegionTableBody} {
		r, _ := doc.Region(id)
		assert.False(t, r.Written(), id)
	}
}

func TestViewTable(t *testing.T) {
	doc := DefaultDocument()
	newViewRenderer(t).Render(doc, snapshotOf(sampleRecords(), ""))

	headers, _ := doc.Region(RegionTableHeaders)
	assert.Equal(t, []string{"Fecha", "Descripcion", "Resultado", "Tipo", "Total Si", "Total No"}, headers.Headers)

	body, _ := doc.Region(RegionTableBody)
	require.Len(t, body.Rows, 2)

	first := body.Rows[0]
	assert.Equal(t, "10-01-2024", first[0].Text)
	assert.Equal(t, strings.Repeat("a", 60)+"...", first[1].Text)
	assert.Equal(t, Cell{Text: "Aprobado", Badge: "badge-success"}, first[2])
	assert.Equal(t, "Proyecto de ley", first[3].Text)
	assert.Equal(t, "1200", first[4].Text)

	second := body.Rows[1]
	assert.Equal(t, Placeholder, second[1].Text)
	assert.Equal(t, Cell{Text: "Rechazado", Badge: "badge-danger"}, second[2])
	assert.Equal(t, Placeholder, second[5].Text)
}

func TestViewTableLimit(t *testing.T) {
	records := make([]models.VotingRecord, 120)
	for i := range records {
		records[i] = models.NewVotingRecord(map[string]string{
			"Descripcion": fmt.Sprintf("votación %d", i),
		})
	}
	doc := DefaultDocument()
	newViewRenderer(t).Render(doc, snapshotOf(records, ""))

	body, _ := doc.Region(RegionTableBody)
	require.Len(t, body.Rows, DefaultTableLimit)
	assert.Equal(t, "votación 0", body.Rows[0][1].Text)
	assert.Equal(t, "votación 49", body.Rows[49][1].Text)
	assert.Equal(t, Placeholder, body.Rows[0][0].Text)
}

func TestViewMissingRegions(t *testing.T) {
	doc := NewDocument([]string{RegionTotal}, nil)
	newViewRenderer(t).Render(doc, snapshotOf(sampleRecords(), "2024-12-18"))

	total, ok := doc.Region(RegionTotal)
	require.True(t, ok)
	assert.Equal(t, "2", total.Text)
	_, ok = doc.Region(RegionTableBody)
	assert.False(t, ok)
}

func TestViewRenderIsIdempotent(t *testing.T) {
	doc := DefaultDocument()
	v := newViewRenderer(t)
	snapshot := snapshotOf(sampleRecords(), "")
	v.Render(doc, snapshot)
	v.Render(doc, snapshot)

	body, _ := doc.Region(RegionTableBody)
	assert.Len(t, body.Rows, 2)
}

func TestViewRenderEmptyAfterFull(t *testing.T) {
	doc := DefaultDocument()
	v := newViewRenderer(t)
	v.Render(doc, snapshotOf(sampleRecords(), "2024-12-18"))
	v.Render(doc, snapshotOf([]models.VotingRecord{}, ""))

	fresh := DefaultDocument()
	v.Render(fresh, snapshotOf([]models.VotingRecord{}, ""))

	for _, id := range DefaultRegions {
		got, _ := doc.Region(id)
		want, _ := fresh.Region(id)
		assert.Equal(t, want.Written(), got.Written(), id)
		assert.Equal(t, want.Text, got.Text, id)
		assert.Empty(t, got.Rows, id)
		assert.Empty(t, got.Headers, id)
	}
}

func TestChartSpecs(t *testing.T) {
	records := sampleRecords()
	f := formatter.Default()

	activity := ActivitySpec(records, f, 0, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"ene 2024", "feb 2024"}, activity.Labels)
	assert.Equal(t, []float64{1, 1}, activity.Series[0].Values)

	results := ResultsSpec(records)
	assert.Equal(t, KindPie, results.Kind)
	assert.Equal(t, []string{"Aprobado", "Rechazado"}, results.Labels)

	votes := VotesSpec(records)
	assert.Equal(t, []float64{620, 2, 0}, votes.Series[0].Values)

	yearly := YearlySpec(records)
	assert.Equal(t, []string{"2024"}, yearly.Labels)
	require.Len(t, yearly.Series, 3)
	assert.Equal(t, []float64{1}, yearly.Series[0].Values)
	assert.Equal(t, []float64{1}, yearly.Series[1].Values)
	assert.Equal(t, []float64{0}, yearly.Series[2].Values)
}

func TestTypesSpecTopN(t *testing.T) {
	var records []models.VotingRecord
	for i, typ := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		for n := 0; n <= i; n++ {
			records = append(records, models.NewVotingRecord(map[string]string{"Tipo": typ}))
		}
	}
	spec := TypesSpec(records, 5)
	assert.Equal(t, []string{"g", "f", "e", "d", "c"}, spec.Labels)
	assert.Equal(t, []float64{7, 6, 5, 4, 3}, spec.Series[0].Values)
}

func TestChartSpecEmpty(t *testing.T) {
	assert.True(t, ChartSpec{}.Empty())
	assert.True(t, VotesSpec(nil).Empty())
	assert.True(t, ActivitySpec(nil, formatter.Default(), 0, time.Now()).Empty())
	assert.False(t, ResultsSpec(sampleRecords()).Empty())
}

func TestDraw(t *testing.T) {
	records := sampleRecords()
	specs := []ChartSpec{
		ActivitySpec(records, formatter.Default(), 0, time.Now()),
		ResultsSpec(records),
		TypesSpec(records, 5),
		VotesSpec(records),
		YearlySpec(records),
	}
	for _, spec := range specs {
		t.Run(spec.Canvas, func(t *testing.T) {
			svg, err := Draw(spec, 0, 0)
			require.NoError(t, err)
			assert.Contains(t, string(svg), "<svg")
		})
	}

	_, err := Draw(ChartSpec{Canvas: "x"}, 0, 0)
	assert.Error(t, err)
	_, err = Draw(ChartSpec{Canvas: "x", Kind: "radar", Labels: []string{"a"}, Series: []Series{{Values: []float64{1}}}}, 0, 0)
	assert.Error(t, err)
}

func TestChartRendererReplacesCharts(t *testing.T) {
	doc := DefaultDocument()
	c := NewChartRenderer(formatter.Default(), zaptest.NewLogger(t), ChartOptions{})
	c.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	snapshot := snapshotOf(sampleRecords(), "")

	require.NoError(t, c.Render(doc, snapshot))
	first := make(map[string]*Chart)
	for _, canvas := range doc.Canvases() {
		first[canvas.ID] = canvas.Chart()
		require.NotNil(t, first[canvas.ID], canvas.ID)
	}

	require.NoError(t, c.Render(doc, snapshot))
	for _, canvas := range doc.Canvases() {
		current := canvas.Chart()
		require.NotNil(t, current)
		assert.NotSame(t, first[canvas.ID], current)
		assert.True(t, first[canvas.ID].Destroyed())
		assert.False(t, current.Destroyed())
		assert.NotEmpty(t, current.SVG)
	}

	live := make([]*Chart, 0, len(first))
	for _, canvas := range doc.Canvases() {
		live = append(live, canvas.Chart())
	}
	require.NoError(t, c.Render(doc, snapshotOf(nil, "")))
	for i, canvas := range doc.Canvases() {
		assert.Nil(t, canvas.Chart(), canvas.ID)
		assert.True(t, live[i].Destroyed(), canvas.ID)
	}
}

func TestChartRendererClearsEmptyChart(t *testing.T) {
	doc := DefaultDocument()
	c := NewChartRenderer(formatter.Default(), zaptest.NewLogger(t), ChartOptions{})
	c.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, c.Render(doc, snapshotOf(sampleRecords(), "")))

	votes, _ := doc.Canvas(CanvasVotes)
	previous := votes.Chart()
	require.NotNil(t, previous)

	records := []models.VotingRecord{
		models.NewVotingRecord(map[string]string{"Resultado": "Aprobado"}),
	}
	require.NoError(t, c.Render(doc, snapshotOf(records, "")))
	assert.Nil(t, votes.Chart())
	assert.True(t, previous.Destroyed())
}

func TestChartRendererSkips(t *testing.T) {
	t.Run("NoRecords", func(t *testing.T) {
		doc := DefaultDocument()
		c := NewChartRenderer(formatter.Default(), zaptest.NewLogger(t), ChartOptions{})
		require.NoError(t, c.Render(doc, snapshotOf(nil, "")))
		for _, canvas := range doc.Canvases() {
			assert.Nil(t, canvas.Chart(), canvas.ID)
		}
	})

	t.Run("MissingCanvas", func(t *testing.T) {
		doc := NewDocument(nil, []string{CanvasResults})
		c := NewChartRenderer(formatter.Default(), zaptest.NewLogger(t), ChartOptions{})
		require.NoError(t, c.Render(doc, snapshotOf(sampleRecords(), "")))
		require.Len(t, doc.Canvases(), 1)
		assert.NotNil(t, doc.Canvases()[0].Chart())
	})

	t.Run("EmptyChart", func(t *testing.T) {
		records := []models.VotingRecord{
			models.NewVotingRecord(map[string]string{"Resultado": "Aprobado"}),
		}
		doc := DefaultDocument()
		c := NewChartRenderer(formatter.Default(), zaptest.NewLogger(t), ChartOptions{})
		require.NoError(t, c.Render(doc, snapshotOf(records, "")))

		votes, _ := doc.Canvas(CanvasVotes)
		assert.Nil(t, votes.Chart())
		activity, _ := doc.Canvas(CanvasActivity)
		assert.Nil(t, activity.Chart())
		results, _ := doc.Canvas(CanvasResults)
		assert.NotNil(t, results.Chart())
	})
}

func TestDocumentError(t *testing.T) {
	doc := DefaultDocument()
	assert.Empty(t, doc.Error())
	doc.ShowError("No se pudieron cargar los datos")
	assert.Equal(t, "No se pudieron cargar los datos", doc.Error())
}
