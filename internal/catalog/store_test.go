package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/metrics"
)

func writeDoc(t *testing.T, path, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
}

func TestLoader_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	writeDoc(t, path, `[{"id": 10, "name": "Local", "timeline": "April 2"}]`)

	c, origin := NewLoader(path, "").Load(context.Background())
	assert.Equal(t, OriginFile, origin)
	require.Equal(t, 1, c.Len())
	p, ok := c.Find(10)
	require.True(t, ok)
	assert.Equal(t, "Local", p.Name)
}

func TestLoader_MissingFileFallsBack(t *testing.T) {
	c, origin := NewLoader(filepath.Join(t.TempDir(), "nope.json"), "").Load(context.Background())
	assert.Equal(t, OriginFallback, origin)
	assert.Equal(t, 6, c.Len())
}

func TestLoader_MalformedFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	writeDoc(t, path, `[{"id": "not a number"}]`)

	_, origin := NewLoader(path, "").Load(context.Background())
	assert.Equal(t, OriginFallback, origin)
}

func TestLoader_EmptySourceFallsBack(t *testing.T) {
	_, origin := NewLoader("", "").Load(context.Background())
	assert.Equal(t, OriginFallback, origin)
}

func TestLoader_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(remoteDoc))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL+"/programs.json", t.TempDir())
	require.True(t, l.Remote())

	c, origin := l.Load(context.Background())
	assert.Equal(t, OriginRemote, origin)
	p, ok := c.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Remote Program", p.Name)
}

func TestStore_ReloadSwapsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	writeDoc(t, path, `[{"id": 1, "name": "v1"}]`)

	rec, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	s := NewStore(NewLoader(path, ""), rec)

	origin, loadedAt := s.Origin()
	assert.Equal(t, OriginFallback, origin)
	assert.True(t, loadedAt.IsZero())
	assert.Equal(t, 6, s.Current().Len())

	assert.Equal(t, OriginFile, s.Reload(context.Background()))
	before := s.Current()

	writeDoc(t, path, `[{"id": 1, "name": "v2"}, {"id": 2, "name": "new"}]`)
	s.Reload(context.Background())

	after := s.Current()
	assert.Equal(t, 1, before.Len())
	assert.Equal(t, 2, after.Len())
	p, _ := after.Find(1)
	assert.Equal(t, "v2", p.Name)
}

func TestStore_WatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	writeDoc(t, path, `[{"id": 1, "name": "v1"}]`)

	s := NewStore(NewLoader(path, ""), nil)
	s.Reload(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeDoc(t, path, `[{"id": 1, "name": "v2"}]`)

	assert.Eventually(t, func() bool {
		p, _ := s.Current().Find(1)
		return p.Name == "v2"
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestStore_WatchRejectsRemote(t *testing.T) {
	s := NewStore(NewLoader("https://example.com/programs.json", t.TempDir()), nil)
	assert.Error(t, s.Watch(context.Background()))
}

func TestStore_Schedule(t *testing.T) {
	s := NewStore(NewLoader(filepath.Join(t.TempDir(), "programs.json"), ""), nil)

	c, err := s.Schedule("*/5 * * * *")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()

	_, err = s.Schedule("not a cron spec")
	assert.Error(t, err)
}
