package render

import "sync"

// Named regions written by the view renderer
const (
	RegionTotal        = "total-votaciones"
	RegionUpdated      = "ultima-actualizacion"
	RegionApproved     = "total-aprobados"
	RegionAverageYes   = "promedio-si"
	RegionTableHeaders = "table-headers"
	RegionTableBody    = "table-body"
)

// Named canvases written by the chart renderer
const (
	CanvasActivity = "actividadChart"
	CanvasResults  = "resultadosChart"
	CanvasTypes    = "tiposChart"
	CanvasVotes    = "votosChart"
	CanvasYearly   = "anualChart"
)

// DefaultRegions lists every region of the dashboard page
var DefaultRegions = []string{
	RegionTotal, RegionUpdated, RegionApproved, RegionAverageYes,
	RegionTableHeaders, RegionTableBody,
}

// DefaultCanvases lists every canvas of the dashboard page in display order
var DefaultCanvases = []string{
	CanvasActivity, CanvasResults, CanvasTypes, CanvasVotes, CanvasYearly,
}

// Cell is one table cell. Badge, when set, is the CSS class of a badge
// wrapping the text.
type Cell struct {
	Text  string
	Badge string
}

// Region is a named output target. Each region is written by a single
// renderer.
type Region struct {
	ID      string
	Text    string
	Headers []string
	Rows    [][]Cell
	written bool
}

// SetText replaces the region's text content
func (r *Region) SetText(text string) {
	r.Text = text
	r.written = true
}

// SetHeaders replaces the region's header row
func (r *Region) SetHeaders(headers []string) {
	r.Headers = headers
	r.written = true
}

// SetRows replaces the region's table rows
func (r *Region) SetRows(rows [][]Cell) {
	r.Rows = rows
	r.written = true
}

// Reset returns the region to its unwritten state
func (r *Region) Reset() {
	r.Text = ""
	r.Headers = nil
	r.Rows = nil
	r.written = false
}

// Written reports whether any renderer wrote to the region
func (r *Region) Written() bool {
	return r.written
}

// Canvas is a named chart target holding at most one live chart
type Canvas struct {
	ID    string
	mu    sync.Mutex
	chart *Chart
}

// Replace destroys the current chart, if any, and installs chart. A nil
// chart leaves the canvas empty.
func (c *Canvas) Replace(chart *Chart) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.chart != nil {
		c.chart.Destroy()
	}
	c.chart = chart
}

// Chart returns the live chart, or nil
func (c *Canvas) Chart() *Chart {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chart
}

// Document is the set of output targets a dashboard render writes into.
// Targets are fixed at construction; a render whose target is missing is
// skipped.
type Document struct {
	regions  map[string]*Region
	canvases map[string]*Canvas
	order    []string

	mu       sync.Mutex
	errorMsg string
}

// NewDocument creates a document exposing the given regions and canvases
func NewDocument(regions, canvases []string) *Document {
	d := &Document{
		regions:  make(map[string]*Region, len(regions)),
		canvases: make(map[string]*Canvas, len(canvases)),
	}
	for _, id := range regions {
		d.regions[id] = &Region{ID: id}
	}
	for _, id := range canvases {
		if _, ok := d.canvases[id]; ok {
			continue
		}
		d.canvases[id] = &Canvas{ID: id}
		d.order = append(d.order, id)
	}
	return d
}

// DefaultDocument creates a document with every dashboard target
func DefaultDocument() *Document {
	return NewDocument(DefaultRegions, DefaultCanvases)
}

// Region looks up a region by id
func (d *Document) Region(id string) (*Region, bool) {
	r, ok := d.regions[id]
	return r, ok
}

// Canvas looks up a canvas by id
func (d *Document) Canvas(id string) (*Canvas, bool) {
	c, ok := d.canvases[id]
	return c, ok
}

// Canvases returns the document's canvases in construction order
func (d *Document) Canvases() []*Canvas {
	out := make([]*Canvas, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.canvases[id])
	}
	return out
}

// ShowError records the single user-visible error message
func (d *Document) ShowError(msg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errorMsg = msg
}

// Error returns the user-visible error message, if any
func (d *Document) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errorMsg
}
