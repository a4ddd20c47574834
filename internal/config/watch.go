package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events into one reload.
const DefaultDebounce = 100 * time.Millisecond

// ReloadFunc receives the reloaded configuration, or the error that
// prevented loading it.
type ReloadFunc func(cfg *Config, err error)

// Watch reloads the settings file at path whenever it is written or
// created and passes the result to fn. It blocks until ctx is done. The
// parent directory is watched so editors that replace the file are
// followed.
func Watch(ctx context.Context, path string, fn ReloadFunc) error {
	return watch(ctx, path, DefaultDebounce, fn)
}

func watch(ctx context.Context, path string, debounce time.Duration, fn ReloadFunc) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				timer.Reset(debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("config watcher: %w", err))

		case <-timer.C:
			fn(Load(abs))
		}
	}
}
