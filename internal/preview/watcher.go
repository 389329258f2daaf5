// Package preview watches the config and background asset so the preview
// command can re-render the wallpaper whenever either changes.
package preview

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/minicodemonkey/birthday/internal/config"
	"github.com/minicodemonkey/birthday/internal/paths"
	"gopkg.in/yaml.v3"
)

// WatcherEvent carries the config to render, or an error.
type WatcherEvent struct {
	Config *config.Config
	Error  error
}

// LoadFunc loads the effective config.
type LoadFunc func() (*config.Config, error)

// Watcher watches baseDir for changes to the config file or background asset.
// The directory is watched rather than the files so that editors which save
// by rename, and files created after start, are both picked up.
type Watcher struct {
	baseDir string
	load    LoadFunc
	watcher *fsnotify.Watcher
	events  chan WatcherEvent
	done    chan struct{}
	mu      sync.Mutex
	running bool

	lastKey string
	lastBg  fileStamp
}

type fileStamp struct {
	path    string
	size    int64
	modTime time.Time
}

// NewWatcher creates a Watcher for baseDir. load defaults to config.Load(baseDir).
func NewWatcher(baseDir string, load LoadFunc) (*Watcher, error) {
	if load == nil {
		load = func() (*config.Config, error) { return config.Load(baseDir) }
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		baseDir: baseDir,
		load:    load,
		watcher: fsWatcher,
		events:  make(chan WatcherEvent, 10),
		done:    make(chan struct{}),
	}, nil
}

// Start sends the initial config and begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.baseDir); err != nil {
		return err
	}

	w.handleChange(true)
	go w.processEvents()

	return nil
}

// Stop stops watching. The events channel is closed once processing ends.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	w.watcher.Close()
}

// Events returns the channel of configs to render.
func (w *Watcher) Events() <-chan WatcherEvent {
	return w.events
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			close(w.events)
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if w.relevant(event.Name) {
				w.handleChange(false)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(WatcherEvent{Error: err})
		}
	}
}

// relevant reports whether a changed file can affect the rendered preview.
func (w *Watcher) relevant(name string) bool {
	base := filepath.Base(name)
	for _, n := range paths.ConfigNames {
		if base == n {
			return true
		}
	}
	return base == ".env" || base == paths.BackgroundName || (w.lastBg.path != "" && base == filepath.Base(w.lastBg.path))
}

// handleChange reloads the config and emits it when anything that affects
// rendering differs from the last emitted state.
func (w *Watcher) handleChange(force bool) {
	cfg, err := w.load()
	if err != nil {
		w.send(WatcherEvent{Error: err})
		return
	}

	key := renderKey(cfg)
	bg := backgroundStamp(cfg, w.baseDir)
	if !force && key == w.lastKey && bg == w.lastBg {
		return
	}
	w.lastKey, w.lastBg = key, bg
	w.send(WatcherEvent{Config: cfg})
}

func (w *Watcher) send(ev WatcherEvent) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

// renderKey serializes the fields that change the rendered image.
func renderKey(cfg *config.Config) string {
	data, _ := yaml.Marshal(struct {
		Message    string
		Background string
		FontPaths  []string
		Canvas     config.CanvasConfig
	}{cfg.Message, cfg.Background, cfg.FontPaths, cfg.Canvas})
	return string(data)
}

func backgroundStamp(cfg *config.Config, baseDir string) fileStamp {
	path, ok := paths.FirstExisting(paths.BackgroundCandidates(cfg.Background, baseDir))
	if !ok {
		return fileStamp{}
	}
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{path: path}
	}
	return fileStamp{path: path, size: info.Size(), modTime: info.ModTime()}
}
