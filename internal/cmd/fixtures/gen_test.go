package fixtures

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turbolytics/neoarchive/internal/asteroids"
	"github.com/turbolytics/neoarchive/internal/neows"
)

func TestGenerateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")

	cmd := newGenerateCommand()
	cmd.SetArgs([]string{"--days", "3", "--per-day", "2", "--start", "2019-01-02", "-o", path})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	feed, err := neows.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 6, feed.ElementCount)

	doc, err := asteroids.Transform(feed, neows.DateRange{From: "2019-01-02", To: "2019-01-04"})
	require.NoError(t, err)

	require.Len(t, doc.AsteroidsByDay, 3)
	assert.Equal(t, "2019-01-04", doc.AsteroidsByDay[0].Date)
	assert.Equal(t, "2019-01-02", doc.AsteroidsByDay[2].Date)
	assert.Equal(t, 6, doc.NumAsteroids())
}

func TestGenerateCommandInvalidStart(t *testing.T) {
	cmd := newGenerateCommand()
	cmd.SetArgs([]string{"--start", "01/02/2019"})
	assert.Error(t, cmd.ExecuteContext(context.Background()))
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeWriteError(t *testing.T) {
	f := generate(rand.New(rand.NewSource(1)), time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC), 1, 1)

	err := encode(failingWriter{}, f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestWriteFile(t *testing.T) {
	f := generate(rand.New(rand.NewSource(1)), time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC), 2, 1)

	path := filepath.Join(t.TempDir(), "feed.json")
	require.NoError(t, writeFile(path, f))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	feed, err := neows.Decode(file)
	require.NoError(t, err)
	assert.Equal(t, 2, feed.ElementCount)
}

func TestWriteFileMissingDir(t *testing.T) {
	f := generate(rand.New(rand.NewSource(1)), time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC), 1, 1)

	err := writeFile(filepath.Join(t.TempDir(), "missing", "feed.json"), f)
	assert.Error(t, err)
}
