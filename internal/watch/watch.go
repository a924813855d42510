// Package watch reports changes to a fixed set of input files.
//
// Files are watched through their parent directories so editors that save by
// writing a temporary file and renaming it over the original are still seen.
// Bursts of events are coalesced into one Change per quiet period.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"subdeck/internal/logging"
)

// DefaultDebounce is the quiet period used when New is given zero.
const DefaultDebounce = 300 * time.Millisecond

// Change lists the watched files touched during one burst, sorted.
type Change struct {
	Paths []string
}

// Watcher monitors a set of files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	logger   *slog.Logger
}

// New prepares a watcher for files. Empty names are skipped. A file whose
// directory cannot be watched, for example because it does not exist yet, is
// logged and dropped; New fails only when nothing is left to watch.
func New(files []string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger = logging.NewComponentLogger(logger, "watch")

	byDir := make(map[string][]string)
	var dirs []string
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", f, err)
		}
		dir := filepath.Dir(abs)
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		if !slices.Contains(byDir[dir], abs) {
			byDir[dir] = append(byDir[dir], abs)
		}
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("watch: no files given")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	set := make(map[string]struct{})
	var firstErr error
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			logger.Warn("cannot watch directory; changes there are ignored",
				logging.String("dir", dir),
				logging.Any("files", byDir[dir]),
				logging.Error(err))
			if firstErr == nil {
				firstErr = fmt.Errorf("watch %s: %w", dir, err)
			}
			continue
		}
		for _, f := range byDir[dir] {
			set[f] = struct{}{}
		}
	}
	if len(set) == 0 {
		_ = fsw.Close()
		return nil, firstErr
	}
	return &Watcher{
		fsw:      fsw,
		files:    set,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Watch emits one Change per burst until ctx is done or the watcher is
// closed. The returned channel is closed when the pump stops.
func (w *Watcher) Watch(ctx context.Context) <-chan Change {
	changes := make(chan Change, 1)

	go func() {
		defer close(changes)

		pending := make(map[string]struct{})
		timer := time.NewTimer(w.debounce)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case event, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if !w.relevant(event) {
					continue
				}
				pending[filepath.Clean(event.Name)] = struct{}{}
				timer.Reset(w.debounce)
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				w.logger.Warn("file watcher error", logging.Error(err))
			case <-timer.C:
				if len(pending) == 0 {
					continue
				}
				paths := make([]string, 0, len(pending))
				for p := range pending {
					paths = append(paths, p)
				}
				slices.Sort(paths)
				clear(pending)
				w.logger.Debug("inputs changed", logging.Any("paths", paths))

				select {
				case changes <- Change{Paths: paths}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return changes
}

// Close stops the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	_, ok := w.files[filepath.Clean(event.Name)]
	return ok
}
