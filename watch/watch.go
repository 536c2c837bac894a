// Package watch emits debounced file-change notifications filtered
// by extension. The demos use it for the hot-reload paths: the
// session watches its tunables file, the viewer its scene script.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Repeated events for the same file inside this window are dropped;
// editors tend to fire several writes per save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to files under one directory whose
// extension is in the accepted set.
type Watcher struct {
	fsw  *fsnotify.Watcher
	exts map[string]bool

	// Events carries the changed file's path. Errors carries watch
	// backend errors; both are drained non-blocking by the frame loop.
	Events chan string
	Errors chan error

	done chan struct{}
	once sync.Once
}

// New watches dir for changes to files with any of the given
// extensions (".yaml", ".tengo", ...). At least one is required.
func New(dir string, exts ...string) (*Watcher, error) {
	if len(exts) == 0 {
		return nil, fmt.Errorf("watch: no extensions for %s", dir)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:    fsw,
		exts:   make(map[string]bool, len(exts)),
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
		done:   make(chan struct{}),
	}
	for _, ext := range exts {
		w.exts[strings.ToLower(ext)] = true
	}
	go w.loop()
	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop() {
	lastSent := make(map[string]time.Time)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
				continue
			}
			if !w.exts[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			now := time.Now()
			if now.Sub(lastSent[ev.Name]) < debounce {
				continue
			}
			lastSent[ev.Name] = now
			select {
			case w.Events <- ev.Name:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}
