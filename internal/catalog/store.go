package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	appLog "compass/internal/log"
	"compass/internal/metrics"
)

// Origin records where the current catalog came from.
type Origin string

const (
	OriginFile     Origin = "file"
	OriginRemote   Origin = "remote"
	OriginCache    Origin = "cache"
	OriginFallback Origin = "fallback"
)

// Loader reads programs.json from a local path or an http(s) URL.
type Loader struct {
	source  string
	fetcher *Fetcher
}

// NewLoader creates a Loader for source. cacheDir is only used for remote
// sources.
func NewLoader(source, cacheDir string) *Loader {
	return &Loader{
		source:  source,
		fetcher: NewFetcher(cacheDir),
	}
}

// Source returns the configured data source.
func (l *Loader) Source() string {
	return l.source
}

// Remote reports whether the source is fetched over HTTP.
func (l *Loader) Remote() bool {
	return strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://")
}

// Load reads and decodes the data source. Any failure is logged and the
// embedded fallback catalog is returned instead, so Load always yields a
// usable catalog.
func (l *Loader) Load(ctx context.Context) (*Catalog, Origin) {
	data, origin, err := l.read(ctx)
	if err == nil {
		decoded, derr := Decode(data)
		if derr == nil {
			return New(decoded), origin
		}
		err = derr
	}

	appLog.Error("catalog load failed; using built-in programs", err, "source", l.describe())
	return Fallback(), OriginFallback
}

func (l *Loader) read(ctx context.Context) ([]byte, Origin, error) {
	if l.source == "" {
		return nil, "", fmt.Errorf("catalog: no data source configured")
	}
	if l.Remote() {
		res, err := l.fetcher.Fetch(ctx, l.source)
		if err != nil {
			return nil, "", err
		}
		if res.FromCache {
			return res.Body, OriginCache, nil
		}
		return res.Body, OriginRemote, nil
	}

	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, "", fmt.Errorf("catalog: read %s: %w", l.source, err)
	}
	return data, OriginFile, nil
}

func (l *Loader) describe() string {
	if l.Remote() {
		return redactURL(l.source)
	}
	return l.source
}

// Store owns the catalog currently being served. Reload replaces it
// wholesale; callers hold on to the *Catalog they got from Current.
type Store struct {
	loader  *Loader
	metrics *metrics.Recorder

	mu       sync.RWMutex
	current  *Catalog
	origin   Origin
	loadedAt time.Time
}

// NewStore creates a Store that starts out serving the fallback catalog
// until the first Reload.
func NewStore(loader *Loader, rec *metrics.Recorder) *Store {
	return &Store{
		loader:  loader,
		metrics: rec,
		current: Fallback(),
		origin:  OriginFallback,
	}
}

// Reload loads the data source and swaps in the result.
func (s *Store) Reload(ctx context.Context) Origin {
	c, origin := s.loader.Load(ctx)

	s.mu.Lock()
	s.current = c
	s.origin = origin
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.metrics.CatalogLoaded(string(origin))
	appLog.Info("catalog loaded", "origin", origin, "programs", c.Len())
	return origin
}

// Current returns the catalog snapshot being served.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Origin returns where the current catalog came from and when it was loaded.
// The time is zero before the first Reload.
func (s *Store) Origin() (Origin, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.origin, s.loadedAt
}
