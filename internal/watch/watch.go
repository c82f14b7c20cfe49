// Package watch reloads lexicon sources when their files change on disk.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by rename keep triggering events.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/bastiangx/teny/internal/logger"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the files must stay quiet before a reload.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls onChange once per burst of writes to any watched file.
type Watcher struct {
	fw       *fsnotify.Watcher
	files    map[string]bool
	debounce time.Duration
	onChange func()
	lg       *log.Logger

	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	stopped bool
}

// New watches files. Empty paths are skipped; with nothing left to watch it returns
// a Watcher whose Start does nothing.
func New(files []string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{
		fw:       fw,
		files:    make(map[string]bool),
		debounce: debounce,
		onChange: onChange,
		lg:       logger.New("watch"),
		done:     make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
		w.lg.Debugf("Watching %s", dir)
	}
	return w, nil
}

// Start runs the event loop in the background until Stop.
func (w *Watcher) Start() {
	if len(w.files) == 0 {
		return
	}
	w.wg.Add(1)
	go w.loop()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.lg.Debugf("Change detected: %s", event)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.onChange()

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.lg.Warnf("Watcher error: %v", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Stop ends monitoring and waits for a running callback to return. Safe to call twice.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	w.wg.Wait()
	return w.fw.Close()
}
