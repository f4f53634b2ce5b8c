package document

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of write events editors emit when
// saving a file into a single reload.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads a document whenever the file behind it changes.
// Re-parsed documents are delivered on Updates; a failed reload keeps the
// previous document and is only logged.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan *Document
	done    chan struct{}
}

// Watch starts watching the file at path. The parent directory is
// watched rather than the file itself so that editors which replace the
// file on save (rename-over) don't silently detach the watch.
func Watch(path string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		updates: make(chan *Document, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Updates delivers re-parsed documents after the underlying file changes
func (w *Watcher) Updates() <-chan *Document {
	return w.updates
}

// Close stops the watcher. Updates is not closed; callers select on done
// channels of their own.
func (w *Watcher) Close() {
	close(w.done)
	w.watcher.Close()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
				fire = timer.C
			} else {
				timer.Reset(debounceDelay)
			}
		case <-fire:
			timer = nil
			fire = nil
			doc, err := Load(w.path)
			if err != nil {
				log.Printf("Reload of %s failed: %v", w.path, err)
				continue
			}
			// Drop a stale pending update so the channel always holds
			// the newest parse
			select {
			case <-w.updates:
			default:
			}
			w.updates <- doc
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}
