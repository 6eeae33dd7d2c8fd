package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce drops repeat events for the same file inside this window.
const DefaultDebounce = 100 * time.Millisecond

// DefaultExts are the file types the editor reloads on.
var DefaultExts = []string{".png", ".json", ".yaml", ".yml"}

// Watcher reports changes to tileset and config files. Events carries the
// path of each changed file; both channels are closed by Close.
type Watcher struct {
	watcher  *fsnotify.Watcher
	Events   chan string
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
	match    func(path string) bool
	debounce time.Duration
}

// NewWatcher watches dirs for changes to files with one of DefaultExts.
func NewWatcher(dirs ...string) (*Watcher, error) {
	return newWatcher(dirs, MatchExt(DefaultExts...))
}

// ForFiles watches the given files. Their parent directories are watched so
// that editors replacing a file by rename are still seen.
func ForFiles(files ...string) (*Watcher, error) {
	want := make(map[string]bool, len(files))
	var dirs []string
	seen := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		want[abs] = true
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return newWatcher(dirs, func(path string) bool {
		abs, err := filepath.Abs(path)
		return err == nil && want[abs]
	})
}

func newWatcher(dirs []string, match func(string) bool) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		match:    match,
		debounce: DefaultDebounce,
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Events)
		close(w.Errors)
		close(w.done)
	}()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.match(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- event.Name:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// MatchExt returns a matcher accepting paths with one of exts,
// case-insensitively.
func MatchExt(exts ...string) func(path string) bool {
	return func(path string) bool {
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range exts {
			if ext == strings.ToLower(e) {
				return true
			}
		}
		return false
	}
}
