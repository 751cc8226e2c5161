package preserver

import (
	"context"

	"github.com/turbolytics/neoarchive/internal/asteroids"
)

// Preserver encodes a document and stores it under name plus the
// preserver's file extension.
type Preserver interface {
	Preserve(ctx context.Context, name string, doc *asteroids.Document) (string, error)
}
