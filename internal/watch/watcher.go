// Package watch triggers a refresh when the logs directory changes. Events
// are debounced so a burst of writes causes one re-ingest, not one per write.
// This stays a batch re-ingest of the whole directory, never a tailer.
package watch

import (
	"fmt"
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one directory and invokes a callback after changes settle.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func()
	fsw      *fsnotify.Watcher
}

// New starts watching dir. onChange runs on the watcher goroutine once no
// further events have arrived for the debounce window.
func New(dir string, debounce time.Duration, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: %s: %w", dir, err)
	}

	w := &Watcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		fsw:      fsw,
	}
	go w.loop()
	return w, nil
}

// Stop ends the watch. Pending debounced changes are discarded.
func (w *Watcher) Stop() {
	_ = w.fsw.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
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
			w.onChange()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %s: %v", w.dir, err)
		}
	}
}
