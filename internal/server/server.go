// Package server hosts the dashboard in a PocketBase application and adds
// the build and inspect commands to its CLI.
package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"legislativo/internal/config"
	"legislativo/internal/dashboard"
	"legislativo/internal/formatter"
	"legislativo/internal/handlers"
	"legislativo/internal/loader"
	"legislativo/internal/models"
	"legislativo/internal/render"
	"legislativo/internal/storage"
)

// ErrLoadTimeout is the cause of a build that exceeded the configured load timeout
var ErrLoadTimeout = errors.New("load timed out")

// Server owns the data source, the loader and the dashboard
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	sources   *loader.SourceManager
	loader    *loader.Loader
	dashboard *dashboard.Dashboard

	// serializes builds
	mu      sync.Mutex
	history *storage.BuildStore
}

// New wires a server from configuration
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	source, err := loader.NewSource(ctx, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to create source: %w", err)
	}
	return newServer(cfg, logger, source)
}

func newServer(cfg *config.Config, logger *zap.Logger, source loader.Source) (*Server, error) {
	sources := loader.NewSourceManager(logger, source)
	active, err := sources.GetSource(source.Method())
	if err != nil {
		return nil, err
	}

	l, err := loader.New(active, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create loader: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	format, err := formatter.New(cfg.Locale, loc)
	if err != nil {
		return nil, err
	}

	d := dashboard.New(format, logger, dashboard.Options{
		TableLimit:   cfg.Dashboard.TableLimit,
		TruncateAt:   cfg.Dashboard.TruncateLength,
		WindowMonths: cfg.Dashboard.ActivityWindowMonths,
		TopTypes:     cfg.Dashboard.TopTypes,
		ChartWidth:   cfg.Dashboard.ChartWidth,
		ChartHeight:  cfg.Dashboard.ChartHeight,
	})

	return &Server{
		cfg:       cfg,
		logger:    logger,
		sources:   sources,
		loader:    l,
		dashboard: d,
	}, nil
}

// Build loads the resources and renders them without writing anything
func (s *Server) Build(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.build(ctx)
}

func (s *Server) build(ctx context.Context) error {
	ctx, cancel := context.WithTimeoutCause(ctx, s.cfg.LoadTimeout, ErrLoadTimeout)
	defer cancel()
	return s.dashboard.Build(ctx, s.loader.Start(ctx), render.DefaultDocument())
}

// Rebuild loads, renders and writes the site to the output directory. The
// site is written even when the load fails so it shows the error message.
// A rebuild cancelled by the caller leaves the published site as it was.
func (s *Server) Rebuild(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buildErr := s.build(ctx)
	if err := ctx.Err(); err != nil {
		s.logger.Warn("Rebuild cancelled, keeping published site", zap.Error(err))
		if buildErr == nil {
			buildErr = err
		}
		return buildErr
	}
	if err := s.dashboard.WriteSite(s.cfg.OutputDir); err != nil {
		return errors.Join(buildErr, err)
	}
	s.record(buildErr)
	return buildErr
}

func (s *Server) record(buildErr error) {
	if s.history == nil {
		return
	}

	build := &models.BuildRecord{Status: models.BuildStatusOK}
	if buildErr != nil {
		build.Status = models.BuildStatusFailed
		build.Message = buildErr.Error()
	} else if snapshot := s.dashboard.Snapshot(); snapshot != nil {
		build.SnapshotID = snapshot.ID
		build.Records = snapshot.State.Total
		build.Approved = snapshot.State.Approved
		build.LastUpdated = snapshot.State.LastUpdated
	}

	if err := s.history.SaveBuild(build); err != nil {
		s.logger.Warn("Failed to record build", zap.Error(err))
	}
}

// View returns the view model of the last build
func (s *Server) View() (*dashboard.View, error) {
	return s.dashboard.View()
}

func (s *Server) setHistory(store *storage.BuildStore) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = store
}

func (s *Server) buildHistory() handlers.BuildHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history == nil {
		return nil
	}
	return s.history
}

// Close releases the data sources
func (s *Server) Close() {
	s.sources.Cleanup()
}
