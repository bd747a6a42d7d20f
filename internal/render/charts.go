package render

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"legislativo/internal/formatter"
	"legislativo/internal/loader"
	"legislativo/internal/models"
)

// DefaultTopTypes is how many voting types the types chart shows
const DefaultTopTypes = 5

// ChartOptions tunes the chart renderer
type ChartOptions struct {
	Width        int
	Height       int
	WindowMonths int
	TopTypes     int
}

// ChartRenderer draws the dashboard charts into the document's canvases
type ChartRenderer struct {
	format *formatter.Formatter
	logger *zap.Logger
	opts   ChartOptions
	now    func() time.Time
}

// NewChartRenderer creates a chart renderer
func NewChartRenderer(format *formatter.Formatter, logger *zap.Logger, opts ChartOptions) *ChartRenderer {
	if opts.TopTypes <= 0 {
		opts.TopTypes = DefaultTopTypes
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	return &ChartRenderer{
		format: format,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// Specs builds the chart specs for records, in canvas order
func (c *ChartRenderer) Specs(records []models.VotingRecord) []ChartSpec {
	now := c.now().In(c.format.Location())
	return []ChartSpec{
		ActivitySpec(records, c.format, c.opts.WindowMonths, now),
		ResultsSpec(records),
		TypesSpec(records, c.opts.TopTypes),
		VotesSpec(records),
		YearlySpec(records),
	}
}

// Render draws every chart whose canvas exists in doc. Each canvas drops its
// previous chart before receiving the new one; a chart with nothing to draw
// leaves its canvas empty. Draw failures are returned joined; the remaining
// charts are still drawn.
func (c *ChartRenderer) Render(doc *Document, snapshot *loader.Snapshot) error {
	if len(snapshot.Records) == 0 {
		c.logger.Info("No records to chart")
		for _, canvas := range doc.Canvases() {
			canvas.Replace(nil)
		}
		return nil
	}

	var errs []error
	for _, spec := range c.Specs(snapshot.Records) {
		canvas, ok := doc.Canvas(spec.Canvas)
		if !ok {
			c.logger.Debug("Skipping missing canvas", zap.String("canvas", spec.Canvas))
			continue
		}
		if spec.Empty() {
			c.logger.Debug("Skipping empty chart", zap.String("canvas", spec.Canvas))
			canvas.Replace(nil)
			continue
		}

		svg, err := Draw(spec, c.opts.Width, c.opts.Height)
		if err != nil {
			c.logger.Warn("Failed to draw chart", zap.String("canvas", spec.Canvas), zap.Error(err))
			canvas.Replace(nil)
			errs = append(errs, err)
			continue
		}
		canvas.Replace(newChart(spec, svg))
	}
	return errors.Join(errs...)
}
