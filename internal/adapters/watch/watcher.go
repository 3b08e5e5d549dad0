package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 100 * time.Millisecond

var defaultSkipDirs = []string{".git", "node_modules"}

// Watcher reports file changes under a set of directories. Bursts of events
// closer together than the debounce window produce a single callback.
type Watcher struct {
	fsw      *fsnotify.Watcher
	roots    []string
	skip     map[string]struct{}
	onChange func(path string)
	logger   *slog.Logger
	debounce time.Duration

	mu         sync.Mutex
	lastChange time.Time
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithSkipDirs excludes directories by base name, e.g. the build output dir.
func WithSkipDirs(names ...string) Option {
	return func(w *Watcher) {
		for _, name := range names {
			if name != "" {
				w.skip[name] = struct{}{}
			}
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		w.logger = logger
	}
}

func New(roots []string, onChange func(path string), opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		roots:    roots,
		skip:     make(map[string]struct{}),
		onChange: onChange,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
	}
	for _, name := range defaultSkipDirs {
		w.skip[name] = struct{}{}
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	for _, root := range w.roots {
		if _, err := os.Stat(root); err != nil {
			w.logger.Debug("watch root missing", "dir", root)
			continue
		}
		if err := w.addRecursive(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
		w.logger.Info("watching", "dir", root)
	}

	go w.loop(ctx)
	return nil
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("cannot access path", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldSkip(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) shouldSkip(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := w.skip[name]
	return ok
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !isWatchEvent(event.Op) {
				continue
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && !w.shouldSkip(info.Name()) {
					if err := w.addRecursive(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
				}
			}

			w.mu.Lock()
			if time.Since(w.lastChange) < w.debounce {
				w.mu.Unlock()
				continue
			}
			w.lastChange = time.Now()
			w.mu.Unlock()

			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())
			if w.onChange != nil {
				w.onChange(event.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
