package syncer

import (
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow absorbs the burst of write events a single cache refresh
// produces, so one refresh triggers one reload.
const debounceWindow = 500 * time.Millisecond

// Watcher watches the cached export file and invokes a callback after it
// is rewritten, letting an externally refreshed cache trigger a snapshot
// reload without a restart.
type Watcher struct {
	fsw      *fsnotify.Watcher
	target   string
	onChange func()
	logger   *slog.Logger
	done     chan struct{}
}

// NewWatcher starts watching the directory containing exportPath. The
// directory rather than the file is watched because atomic replacement
// via rename swaps the inode out from under a file-level watch.
func NewWatcher(exportPath string, onChange func(), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(exportPath)); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		fsw:      fsw,
		target:   filepath.Clean(exportPath),
		onChange: onChange,
		logger:   logger.With(slog.String("component", "watcher")),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case <-fire:
			w.logger.Info("export file changed, triggering reload",
				slog.String("path", w.target))
			w.onChange()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceWindow, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

// Close stops the watcher. Pending debounced callbacks are dropped.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
