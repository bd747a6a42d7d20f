package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"legislativo/internal/aggregate"
	"legislativo/internal/models"
)

// Resource names, relative to the source root
const (
	StatisticsResource = "estadisticas.json"
	VotingResource     = "votaciones.json"
)

// Snapshot is the immutable result of one load. Callers must treat every
// field as read-only.
type Snapshot struct {
	ID         string
	LoadedAt   time.Time
	Records    []models.VotingRecord
	Statistics models.Statistics
	State      models.AggregateState
}

// Loader fetches and decodes both resources from a Source
type Loader struct {
	source  Source
	logger  *zap.Logger
	schemas *envelopeSchemas
	now     func() time.Time
}

// New creates a Loader reading from source
func New(source Source, logger *zap.Logger) (*Loader, error) {
	schemas, err := compileSchemas()
	if err != nil {
		return nil, err
	}
	return &Loader{
		source:  source,
		logger:  logger.With(zap.String("source", source.Method())),
		schemas: schemas,
		now:     time.Now,
	}, nil
}

// Start begins loading in the background and returns its completion handle
func (l *Loader) Start(ctx context.Context) *Pending {
	p := newPending()
	go func() {
		p.resolve(l.Load(ctx))
	}()
	return p
}

// Load fetches both resources concurrently and builds a Snapshot. A missing
// resource degrades to its empty value; any other failure aborts the load.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	start := l.now()
	l.logger.Info("Loading resources")

	if r, ok := l.source.(Refresher); ok {
		if err := r.Refresh(); err != nil {
			return nil, NewLoadError("refresh", l.source.Method(), err)
		}
	}

	var (
		stats   models.Statistics
		records []models.VotingRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = l.loadStatistics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = l.loadRecords(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		l.logger.Error("Error loading resources", zap.Error(err))
		return nil, err
	}

	state := aggregate.Summarize(records)
	state.LastUpdated = stats.UpdatedAt

	snapshot := &Snapshot{
		ID:         uuid.NewString(),
		LoadedAt:   l.now(),
		Records:    records,
		Statistics: stats,
		State:      state,
	}

	l.logger.Info("Loaded resources",
		zap.String("snapshot", snapshot.ID),
		zap.Int("records", len(records)),
		zap.String("updated_at", stats.UpdatedAt),
		zap.Duration("elapsed", snapshot.LoadedAt.Sub(start)))
	return snapshot, nil
}

func (l *Loader) loadStatistics(ctx context.Context) (models.Statistics, error) {
	var stats models.Statistics

	data, err := l.fetch(ctx, StatisticsResource)
	if err != nil || data == nil {
		return stats, err
	}
	if err := validate(l.schemas.statistics, data); err != nil {
		return stats, NewLoadError("validate", StatisticsResource, err)
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, NewLoadError("decode", StatisticsResource, err)
	}
	return stats, nil
}

func (l *Loader) loadRecords(ctx context.Context) ([]models.VotingRecord, error) {
	data, err := l.fetch(ctx, VotingResource)
	if err != nil || data == nil {
		return []models.VotingRecord{}, err
	}
	if err := validate(l.schemas.voting, data); err != nil {
		return nil, NewLoadError("validate", VotingResource, err)
	}

	var envelope struct {
		Votaciones []json.RawMessage `json:"votaciones"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, NewLoadError("decode", VotingResource, err)
	}

	records := make([]models.VotingRecord, 0, len(envelope.Votaciones))
	for i, raw := range envelope.Votaciones {
		var r models.VotingRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			l.logger.Debug("Skipping malformed record", zap.Int("index", i), zap.Error(err))
			continue
		}
		records = append(records, r)
	}
	return records, nil
}

// fetch returns nil data without error when the resource does not exist
func (l *Loader) fetch(ctx context.Context, resource string) ([]byte, error) {
	data, err := l.source.Fetch(ctx, resource)
	if errors.Is(err, ErrNotFound) {
		l.logger.Warn("Resource not found, using empty value", zap.String("resource", resource))
		return nil, nil
	}
	if err != nil {
		return nil, NewLoadError("fetch", resource, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// String describes the snapshot for logs and CLI output
func (s *Snapshot) String() string {
	return fmt.Sprintf("snapshot %s: %d records, updated %q", s.ID, len(s.Records), s.Statistics.UpdatedAt)
}
