package store

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lvim-tech/qp/internal/logging"
)

// DefaultDebounce collapses the burst of events an editor produces on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher calls back when the command file changes on disk.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
}

// Watch starts watching the command file at path. The parent directory is watched so that
// files replaced by rename are picked up too. onChange runs on the watcher goroutine once
// per burst of events, after debounce has passed without a new one.
func (s *Store) Watch(ctx context.Context, path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	resolved := filepath.Clean(s.Resolve(path))
	if err := fsw.Add(filepath.Dir(resolved)); err != nil {
		fsw.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		fsw:      fsw,
		path:     resolved,
		debounce: debounce,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go w.processEvents(ctx, onChange)

	return w, nil
}

// Close stops watching and waits for the event goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.fsw.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) processEvents(ctx context.Context, onChange func()) {
	defer close(w.done)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			logging.Debug().Str("path", w.path).Msg("command file changed")
			onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn().Err(err).Str("path", w.path).Msg("watch command file")
		}
	}
}
