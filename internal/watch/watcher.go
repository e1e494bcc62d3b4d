// Package watch reports changes to a single prompt document.
//
// The directory holding the prompt is watched rather than the file itself,
// so editors that save by writing a temporary file and renaming it over the
// original keep producing events.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change seen on the prompt
type Op int

const (
	// Changed means the prompt was written or replaced
	Changed Op = iota
	// Removed means the prompt was deleted or moved away
	Removed
)

// String returns a human-readable representation of the operation
func (op Op) String() string {
	switch op {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is one coalesced change to the watched prompt
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// DefaultDebounceDelay is the default delay for coalescing rapid writes
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher watches one prompt file
type Watcher struct {
	watcher *fsnotify.Watcher
	events  chan Event
	errors  chan error
	done    chan struct{}
	stopped chan struct{}
	target  string

	mu            sync.Mutex
	debounceDelay time.Duration
	timer         *time.Timer
	closed        bool
}

// New starts watching target. The prompt's directory must exist; the prompt
// itself may appear later.
func New(target string) (*Watcher, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("invalid prompt path %q: %w", target, err)
	}

	info, err := os.Stat(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("failed to access prompt directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", filepath.Dir(abs))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		watcher:       fsw,
		events:        make(chan Event, 16),
		errors:        make(chan error, 4),
		done:          make(chan struct{}),
		stopped:       make(chan struct{}),
		target:        abs,
		debounceDelay: DefaultDebounceDelay,
	}

	go w.processEvents()

	return w, nil
}

func (w *Watcher) processEvents() {
	defer close(w.stopped)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Error channel full, drop the error
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.target {
		return
	}

	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		w.debounce()
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// A rename-on-save is followed by a Create for the same name, which
		// supersedes this once the debounce settles.
		if _, err := os.Stat(w.target); err == nil {
			w.debounce()
			return
		}
		w.send(Removed)
	default:
		// Ignore chmod events
	}
}

// debounce coalesces a burst of writes into one Changed event
func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, func() {
		w.send(Changed)
	})
}

func (w *Watcher) send(op Op) {
	event := Event{
		Path:      w.target,
		Op:        op,
		Timestamp: time.Now(),
	}

	select {
	case w.events <- event:
	case <-w.done:
	default:
		// Events channel full, drop the event
	}
}

// Events returns the channel for receiving prompt changes
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel for receiving watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Target returns the absolute path of the watched prompt
func (w *Watcher) Target() string {
	return w.target
}

// SetDebounceDelay sets the delay used to coalesce rapid writes
func (w *Watcher) SetDebounceDelay(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounceDelay = delay
}

// Close stops the watcher and waits for its goroutine to exit
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	<-w.stopped
	return err
}
