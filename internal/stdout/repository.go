package stdout

import (
	"context"
	"io"
)

// Repository copies every object to a writer, normally the process stdout.
// Keys are ignored.
type Repository struct {
	w io.Writer
}

func New(w io.Writer) *Repository {
	return &Repository{w: w}
}

func (r *Repository) Write(ctx context.Context, key string, reader io.Reader) error {
	_, err := io.Copy(r.w, reader)
	return err
}

func (r *Repository) Flush() error {
	return nil
}
