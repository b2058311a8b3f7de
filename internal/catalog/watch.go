package catalog

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	appLog "compass/internal/log"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 250 * time.Millisecond

// Watch reloads the store whenever the local data file changes. It blocks
// until ctx is canceled. Remote sources cannot be watched.
//
// The parent directory is watched rather than the file itself so that
// atomic replace-by-rename saves are picked up.
func (s *Store) Watch(ctx context.Context) error {
	if s.loader.Remote() {
		return errors.New("catalog: watch is only supported for local data files")
	}

	path, err := filepath.Abs(s.loader.Source())
	if err != nil {
		return fmt.Errorf("catalog: resolve data path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(path), err)
	}
	appLog.Info("watching data file", "path", path)

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			appLog.Debug("data file changed", "path", path, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			s.Reload(ctx)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			appLog.Error("data file watcher error", err, "path", path)
		}
	}
}

// Schedule reloads the store on the given cron spec (standard 5-field
// syntax). The returned cron must be stopped by the caller.
func (s *Store) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.Reload(ctx)
	}); err != nil {
		return nil, fmt.Errorf("catalog: invalid refresh schedule %q: %w", spec, err)
	}
	c.Start()
	appLog.Info("catalog refresh scheduled", "cron", spec)
	return c, nil
}
