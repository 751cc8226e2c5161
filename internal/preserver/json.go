package preserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/turbolytics/neoarchive/internal"
	"github.com/turbolytics/neoarchive/internal/asteroids"
)

type Option func(*JSON)

func WithLogger(logger *zap.Logger) Option {
	return func(j *JSON) {
		j.logger = logger
	}
}

func WithIndent(indent string) Option {
	return func(j *JSON) {
		j.indent = indent
	}
}

// JSON writes documents as indented JSON.
type JSON struct {
	repository internal.Repository
	indent     string
	logger     *zap.Logger
}

func NewJSON(repository internal.Repository, opts ...Option) *JSON {
	j := &JSON{
		repository: repository,
		indent:     "  ",
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

func Encode(doc *asteroids.Document, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (j *JSON) Preserve(ctx context.Context, name string, doc *asteroids.Document) (string, error) {
	bs, err := Encode(doc, j.indent)
	if err != nil {
		return "", fmt.Errorf("encoding document: %w", err)
	}

	key := name + ".json"
	j.logger.Debug("preserving document",
		zap.String("key", key),
		zap.Int("bytes", len(bs)),
	)

	if err := j.repository.Write(ctx, key, bytes.NewReader(bs)); err != nil {
		return "", fmt.Errorf("writing %s: %w", key, err)
	}
	return key, nil
}
