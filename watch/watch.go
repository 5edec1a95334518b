// Package watch reports changes to LDN files below a directory.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tliron/commonlog"
)

// DefaultDelay is how long a path must stay quiet before it is reported.
const DefaultDelay = 100 * time.Millisecond

var log = commonlog.GetLogger("ldn.watch")

// Watcher calls back when files with one of its extensions are written,
// created or removed. Callbacks for different paths may run concurrently.
type Watcher struct {
	root     string
	exts     []string
	onChange func(path string)
	onRemove func(path string)
	delay    time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan struct{}
}

func New(root string, exts []string, onChange func(path string)) *Watcher {
	return &Watcher{
		root:     root,
		exts:     exts,
		onChange: onChange,
		delay:    DefaultDelay,
		timers:   make(map[string]*time.Timer),
		ready:    make(chan struct{}),
	}
}

// OnRemove sets the callback for removed or renamed files.
func (w *Watcher) OnRemove(fn func(path string)) *Watcher {
	w.onRemove = fn
	return w
}

// WithDelay overrides the debounce delay.
func (w *Watcher) WithDelay(d time.Duration) *Watcher {
	w.delay = d
	return w
}

// Ready is closed once the initial directory tree is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := w.watchDir(watcher, w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	close(w.ready)
	log.Debugf("watching %s", w.root)

	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(watcher, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warningf("watcher error: %s", err)
		}
	}
}

func (w *Watcher) handle(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.watchDir(watcher, event.Name); err != nil {
				log.Warningf("watch %s: %s", event.Name, err)
			}
			return
		}
	}

	if !w.matches(event.Name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.cancel(event.Name)
		if w.onRemove != nil {
			w.onRemove(event.Name)
		}
	case event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create):
		w.schedule(event.Name)
	}
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		log.Debugf("changed: %s", path)
		w.onChange(path)
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

func (w *Watcher) matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range w.exts {
		if ext == e {
			return true
		}
	}
	return false
}

// watchDir adds dir and every non-hidden directory below it.
func (w *Watcher) watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if path != dir && isHidden(info.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
