// internal/storage/watcher.go
package storage

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"estate-pipeline/internal/common/logger"
)

// Watcher observes the local media root and signals when new material
// arrives, so a batch run can be triggered without polling. Events are
// debounced: a burst of file copies produces one signal.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   logger.Logger
}

func NewWatcher(log logger.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:  w,
		debounce: 5 * time.Second,
		logger:   log,
	}, nil
}

// Watch monitors dir and emits one signal per settled burst of create and
// write events. The channel closes when ctx is done or the watcher stops.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan struct{}, error) {
	if err := w.watcher.Add(dir); err != nil {
		return nil, err
	}

	signals := make(chan struct{}, 1)

	go func() {
		defer close(signals)
		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(w.debounce)
					fire = timer.C
				} else {
					timer.Reset(w.debounce)
				}
			case <-fire:
				timer = nil
				fire = nil
				select {
				case signals <- struct{}{}:
				default:
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.WithError(err).Warn("storage watcher error", nil)
			}
		}
	}()

	return signals, nil
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
