// Package dashboard composes the loader and the renderers into a
// published dashboard.
package dashboard

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"legislativo/internal/formatter"
	"legislativo/internal/loader"
	"legislativo/internal/render"
)

// ErrorMessage is the single user-visible message shown when loading fails
const ErrorMessage = "Error cargando datos. Por favor, intenta más tarde."

// ErrNotBuilt is returned when the site is requested before a build
var ErrNotBuilt = errors.New("dashboard has not been built")

// Options tunes the renderers
type Options struct {
	TableLimit   int
	TruncateAt   int
	WindowMonths int
	TopTypes     int
	ChartWidth   int
	ChartHeight  int
}

// Dashboard waits for a load and renders it into a Document
type Dashboard struct {
	format *formatter.Formatter
	logger *zap.Logger
	opts   Options
	view   *render.ViewRenderer
	charts *render.ChartRenderer

	mu       sync.RWMutex
	doc      *render.Document
	snapshot *loader.Snapshot
}

// New creates a dashboard
func New(format *formatter.Formatter, logger *zap.Logger, opts Options) *Dashboard {
	return &Dashboard{
		format: format,
		logger: logger,
		opts:   opts,
		view:   render.NewViewRenderer(format, logger, opts.TableLimit, opts.TruncateAt),
		charts: render.NewChartRenderer(format, logger, render.ChartOptions{
			Width:        opts.ChartWidth,
			Height:       opts.ChartHeight,
			WindowMonths: opts.WindowMonths,
			TopTypes:     opts.TopTypes,
		}),
	}
}

// Build blocks until pending resolves and renders the snapshot into doc.
// On a load failure, a deadline included, doc receives ErrorMessage and
// nothing is rendered. When the caller cancels ctx the previous build is
// kept and doc is left untouched.
func (d *Dashboard) Build(ctx context.Context, pending *loader.Pending, doc *render.Document) error {
	snapshot, err := pending.Wait(ctx)
	if err != nil {
		if errors.Is(context.Cause(ctx), context.Canceled) {
			d.logger.Info("Dashboard build cancelled", zap.Error(err))
			return err
		}
		doc.ShowError(ErrorMessage)
		d.store(doc, nil)
		d.logger.Error("Error loading dashboard data", zap.Error(err))
		return err
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.view.Render(doc, snapshot)
		return nil
	})
	g.Go(func() error {
		if err := d.charts.Render(doc, snapshot); err != nil {
			d.logger.Warn("Some charts could not be drawn", zap.Error(err))
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	d.store(doc, snapshot)
	d.logger.Info("Dashboard built",
		zap.String("snapshot", snapshot.ID),
		zap.Int("records", len(snapshot.Records)))
	return nil
}

func (d *Dashboard) store(doc *render.Document, snapshot *loader.Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doc = doc
	d.snapshot = snapshot
}

// Snapshot returns the last built snapshot, or nil
func (d *Dashboard) Snapshot() *loader.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snapshot
}

// Document returns the last built document, or nil
func (d *Dashboard) Document() *render.Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc
}

// View returns the view model of the last built snapshot
func (d *Dashboard) View() (*View, error) {
	snapshot := d.Snapshot()
	if snapshot == nil {
		return nil, ErrNotBuilt
	}
	return NewView(snapshot, d.format, d.opts), nil
}
