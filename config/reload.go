package config

import (
	"context"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ReloaderConfig configures a Reloader.
type ReloaderConfig struct {
	// Path is the configuration file to watch. Required.
	Path string

	// Debounce is how long to wait after a change before reloading, so
	// editors that write in several steps produce one reload.
	// Default: 250 milliseconds.
	Debounce time.Duration

	// Logger receives reload diagnostics. Default: no logging.
	Logger zerolog.Logger
}

// Reloader watches a configuration file and delivers each changed, valid
// File. Files that fail to parse are logged and skipped; the previous
// configuration stays in effect. What to do with an update (typically
// stopping the current run and starting a new one) is left to the host.
type Reloader struct {
	config ReloaderConfig
	log    zerolog.Logger

	mu       sync.Mutex
	lastHash uint64
}

// NewReloader creates a reloader for the file at config.Path.
func NewReloader(config ReloaderConfig) (*Reloader, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("config: reloader requires a path")
	}
	if config.Debounce <= 0 {
		config.Debounce = 250 * time.Millisecond
	}
	return &Reloader{config: config, log: config.Logger}, nil
}

// Watch starts watching and returns the channel updates arrive on. The
// channel closes when ctx is cancelled. A slow receiver never blocks the
// reloader: when an update is pending and a newer one arrives, the older
// one is dropped.
func (r *Reloader) Watch(ctx context.Context) (<-chan *File, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: start watcher: %w", err)
	}
	// Watch the directory, not the file: editors often replace the file,
	// which would silently detach a file-level watch.
	if err := watcher.Add(filepath.Dir(r.config.Path)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("config: watch %s: %w", r.config.Path, err)
	}

	updates := make(chan *File, 1)
	go r.loop(ctx, watcher, updates)
	return updates, nil
}

func (r *Reloader) loop(ctx context.Context, watcher *fsnotify.Watcher, updates chan *File) {
	defer watcher.Close()
	defer close(updates)

	file := filepath.Base(r.config.Path)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != file {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(r.config.Debounce)
			} else {
				timer.Stop()
				timer.Reset(r.config.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if f, ok := r.reload(); ok {
				deliver(updates, f)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.log.Warn().Err(err).Str("path", r.config.Path).Msg("config watch error")
		}
	}
}

// reload reads and parses the file, skipping unchanged content and files
// that fail to parse.
func (r *Reloader) reload() (*File, bool) {
	data, err := os.ReadFile(r.config.Path)
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.config.Path).Msg("config reload read failed")
		return nil, false
	}

	h := fnv.New64a()
	_, _ = h.Write(data)
	sum := h.Sum64()

	r.mu.Lock()
	unchanged := sum == r.lastHash && r.lastHash != 0
	r.mu.Unlock()
	if unchanged {
		return nil, false
	}

	f, err := Parse(data)
	if err != nil {
		r.log.Warn().Err(err).Str("path", r.config.Path).Msg("config reload rejected")
		return nil, false
	}

	r.mu.Lock()
	r.lastHash = sum
	r.mu.Unlock()

	r.log.Info().Str("path", r.config.Path).Msg("config reloaded")
	return f, true
}

func deliver(updates chan *File, f *File) {
	select {
	case updates <- f:
	default:
		// Drop the pending update, then push the newest.
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- f:
		default:
		}
	}
}
