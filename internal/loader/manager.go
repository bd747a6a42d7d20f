package loader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"legislativo/internal/models"
)

// SourceManager manages the registered data sources
type SourceManager struct {
	sources map[string]Source
	logger  *zap.Logger
}

// NewSourceManager creates a new source manager with the given sources registered
func NewSourceManager(logger *zap.Logger, sources ...Source) *SourceManager {
	m := &SourceManager{
		sources: make(map[string]Source),
		logger:  logger,
	}
	for _, s := range sources {
		m.RegisterSource(s)
	}
	return m
}

// RegisterSource adds a source to the manager, replacing any with the same method
func (m *SourceManager) RegisterSource(source Source) {
	m.sources[source.Method()] = source
}

// GetSource retrieves a source by method
func (m *SourceManager) GetSource(method string) (Source, error) {
	source, ok := m.sources[method]
	if !ok {
		return nil, fmt.Errorf("no source found for method: %s", method)
	}
	return source, nil
}

// Fetch reads a resource using the source registered for method
func (m *SourceManager) Fetch(ctx context.Context, method, name string) ([]byte, error) {
	source, err := m.GetSource(method)
	if err != nil {
		return nil, err
	}
	return source.Fetch(ctx, name)
}

// Cleanup releases every registered source
func (m *SourceManager) Cleanup() {
	for method, s := range m.sources {
		if err := s.Cleanup(); err != nil {
			m.logger.Warn("Error cleaning up source", zap.String("method", method), zap.Error(err))
		}
	}
}

// NewSource builds the source described by ds
func NewSource(ctx context.Context, ds models.DataSource) (Source, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid data source: %w", err)
	}

	switch ds.Kind {
	case models.SourceKindFile:
		return NewFileSource(ds.Location), nil
	case models.SourceKindHTTP:
		return NewHTTPSource(ds.Location)
	case models.SourceKindS3:
		return NewS3Source(ctx, ds.Location)
	case models.SourceKindZIP:
		return NewZIPSource(ds.Location), nil
	default:
		return nil, fmt.Errorf("unsupported source kind: %s", ds.Kind)
	}
}
