package archiver

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/turbolytics/neoarchive/internal"
	"github.com/turbolytics/neoarchive/internal/asteroids"
	"github.com/turbolytics/neoarchive/internal/catalog"
	"github.com/turbolytics/neoarchive/internal/neows"
	"github.com/turbolytics/neoarchive/internal/preserver"
)

// Source produces the raw feed for a date range.
type Source interface {
	Name() string
	Fetch(ctx context.Context, r neows.DateRange) (*neows.Feed, error)
}

type Option func(*Archiver)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Archiver) {
		a.logger = logger
	}
}

func WithSource(source Source) Option {
	return func(a *Archiver) {
		a.source = source
	}
}

func WithPreserver(p preserver.Preserver) Option {
	return func(a *Archiver) {
		a.preserver = p
	}
}

func WithRepository(r internal.Repository) Option {
	return func(a *Archiver) {
		a.repository = r
	}
}

// Archiver runs snapshots: fetch, transform, then persist.
type Archiver struct {
	logger     *zap.Logger
	source     Source
	preserver  preserver.Preserver
	repository internal.Repository
	now        func() time.Time
}

func New(opts ...Option) *Archiver {
	a := Archiver{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return &a
}

func (a *Archiver) Close(ctx context.Context) error {
	if a.repository == nil {
		return nil
	}
	return a.repository.Flush()
}

// OutputName is the base name, without extension, of the file written for r.
func OutputName(r neows.DateRange) string {
	return fmt.Sprintf("%s_%s", r.From, r.To)
}

// Snapshot archives the feed for r. Nothing is written unless the whole
// feed transforms cleanly.
func (a *Archiver) Snapshot(ctx context.Context, r neows.DateRange) (*catalog.Catalog, error) {
	if a.source == nil || a.preserver == nil {
		return nil, fmt.Errorf("archiver requires a source and a preserver")
	}

	c := &catalog.Catalog{
		ID:            uuid.New(),
		StartTime:     a.now(),
		Source:        a.source.Name(),
		DateRangeFrom: r.From,
		DateRangeTo:   r.To,
	}
	l := a.logger.With(zap.String("snapshot_id", c.ID.String()))

	// 1. Collect data from source
	feed, err := a.source.Fetch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	c.NumSourceRecords = feed.ElementCount

	// 2. Reshape
	doc, err := asteroids.Transform(feed, r)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	c.NumDays = len(doc.AsteroidsByDay)
	c.NumRecordsProcessed = doc.NumAsteroids()
	l.Info("transformed feed",
		zap.Int("days", c.NumDays),
		zap.Int("element_count", c.NumSourceRecords),
		zap.Int("records", c.NumRecordsProcessed),
	)

	// 3. Preserve
	key, err := a.preserver.Preserve(ctx, OutputName(r), doc)
	if err != nil {
		return nil, fmt.Errorf("persist: %w", err)
	}

	c.Output = key
	c.EndTime = a.now()
	c.Completed = true

	l.Info("snapshot complete", c.Field())
	return c, nil
}
