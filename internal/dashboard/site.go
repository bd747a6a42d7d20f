package dashboard

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pocketbase/pocketbase/tools/template"
	"go.uber.org/zap"

	"legislativo/internal/render"
)

// Title is the page heading
const Title = "Votaciones del Congreso"

// IndexFile and ChartsDir name the generated site layout
const (
	IndexFile = "index.html"
	ChartsDir = "charts"
)

//go:embed templates/index.html
var indexTemplate string

type chartRef struct {
	ID    string
	Title string
	File  string
}

type page struct {
	Title      string
	Error      string
	Total      string
	Approved   string
	AverageYes string
	Updated    string
	Headers    []string
	Rows       [][]render.Cell
	Charts     []chartRef
	SnapshotID string
}

// RenderPage renders the index page for doc
func RenderPage(registry *template.Registry, doc *render.Document, snapshotID string) (string, error) {
	p := page{
		Title:      Title,
		Error:      doc.Error(),
		Total:      regionText(doc, render.RegionTotal),
		Approved:   regionText(doc, render.RegionApproved),
		AverageYes: regionText(doc, render.RegionAverageYes),
		Updated:    regionText(doc, render.RegionUpdated),
		SnapshotID: snapshotID,
	}
	if r, ok := doc.Region(render.RegionTableHeaders); ok {
		p.Headers = r.Headers
	}
	if r, ok := doc.Region(render.RegionTableBody); ok {
		p.Rows = r.Rows
	}
	for _, canvas := range doc.Canvases() {
		chart := canvas.Chart()
		if chart == nil {
			continue
		}
		p.Charts = append(p.Charts, chartRef{
			ID:    canvas.ID,
			Title: chart.Spec.Title,
			File:  ChartsDir + "/" + canvas.ID + ".svg",
		})
	}

	html, err := registry.LoadString(indexTemplate).Render(p)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", IndexFile, err)
	}
	return html, nil
}

func regionText(doc *render.Document, id string) string {
	r, ok := doc.Region(id)
	if !ok || !r.Written() {
		return render.Placeholder
	}
	return r.Text
}

// WriteSite writes index.html and one SVG per drawn chart into dir. SVGs
// left by an earlier write for now empty canvases are removed.
func (d *Dashboard) WriteSite(dir string) error {
	doc := d.Document()
	if doc == nil {
		return ErrNotBuilt
	}

	chartsDir := filepath.Join(dir, ChartsDir)
	if err := os.MkdirAll(chartsDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", chartsDir, err)
	}

	written := 0
	for _, canvas := range doc.Canvases() {
		name := filepath.Join(chartsDir, canvas.ID+".svg")
		chart := canvas.Chart()
		if chart == nil {
			if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove stale %s: %w", name, err)
			}
			continue
		}
		if err := os.WriteFile(name, chart.SVG, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		written++
	}

	snapshotID := ""
	if s := d.Snapshot(); s != nil {
		snapshotID = s.ID
	}
	html, err := RenderPage(template.NewRegistry(), doc, snapshotID)
	if err != nil {
		return err
	}
	index := filepath.Join(dir, IndexFile)
	if err := os.WriteFile(index, []byte(html), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", index, err)
	}

	d.logger.Info("Site written",
		zap.String("dir", dir),
		zap.Int("charts", written))
	return nil
}
