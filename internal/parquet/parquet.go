package parquet

import (
	"bytes"
	"context"
	"fmt"

	pq "github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"

	"github.com/turbolytics/neoarchive/internal"
	"github.com/turbolytics/neoarchive/internal/asteroids"
)

type Option func(*Preserver)

func WithLogger(logger *zap.Logger) Option {
	return func(p *Preserver) {
		p.logger = logger
	}
}

func WithSchema(schema Schema) Option {
	return func(p *Preserver) {
		p.schema = schema
	}
}

func WithRepository(repository internal.Repository) Option {
	return func(p *Preserver) {
		p.repository = repository
	}
}

// Preserver writes one parquet row per asteroid.
type Preserver struct {
	logger     *zap.Logger
	repository internal.Repository
	schema     Schema
}

func New(opts ...Option) (*Preserver, error) {
	p := &Preserver{
		logger: zap.NewNop(),
		schema: AsteroidSchema,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.repository == nil {
		return nil, fmt.Errorf("parquet preserver: repository is required")
	}
	if len(p.schema) == 0 {
		return nil, fmt.Errorf("parquet preserver: schema is required")
	}
	return p, nil
}

// Encode buffers the whole file; feeds are small enough to hold in memory.
func (p *Preserver) Encode(doc *asteroids.Document) ([]byte, error) {
	records, err := doc.Records()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	pw, err := writer.NewCSVWriterFromWriter(p.schema.ToGoParquetSchema(), &buf, 1)
	if err != nil {
		return nil, fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.CompressionType = pq.CompressionCodec_SNAPPY

	for _, r := range records {
		row, err := p.schema.RecordToParquetRow(r)
		if err != nil {
			return nil, err
		}
		if err := pw.Write(row); err != nil {
			return nil, fmt.Errorf("writing parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finishing parquet file: %w", err)
	}

	p.logger.Debug("encoded parquet",
		zap.Int("rows", len(records)),
		zap.Int("bytes", buf.Len()),
	)
	return buf.Bytes(), nil
}

func (p *Preserver) Preserve(ctx context.Context, name string, doc *asteroids.Document) (string, error) {
	bs, err := p.Encode(doc)
	if err != nil {
		return "", err
	}

	key := name + ".parquet"
	if err := p.repository.Write(ctx, key, bytes.NewReader(bs)); err != nil {
		return "", fmt.Errorf("writing %s: %w", key, err)
	}
	return key, nil
}
