package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/richdoc/internal/logging"
)

// DefaultDelay is the debounce delay used when none is configured.
const DefaultDelay = 100 * time.Millisecond

// FileWatcher watches one file using fsnotify.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	path    string
	delay   time.Duration
	logger  *logging.Logger

	events chan Event
	errors chan error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDelay sets the debounce delay. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(w *FileWatcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(w *FileWatcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New starts watching path. The file itself may be missing, but its
// directory must exist.
func New(path string, opts ...Option) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, ErrPathNotExist)
		}
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &FileWatcher{
		watcher: fsw,
		path:    absPath,
		delay:   DefaultDelay,
		logger:  logging.Nop(),
		events:  make(chan Event, 16),
		errors:  make(chan error, 16),
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watch").WithField("path", absPath)

	w.closedWg.Add(1)
	go w.processLoop()

	w.logger.Debug("watching with %s debounce", w.delay)
	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Events returns the debounced event channel. It is closed by Close.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It is closed by Close.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Pending events are dropped.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

// processLoop filters events for the watched file and debounces them.
// Everything runs on this goroutine, so pending needs no locking.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	var (
		pending *Event
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(fsEvent.Name) != w.path {
				continue
			}
			op := convertOp(fsEvent.Op)
			if op == 0 {
				continue
			}
			if pending == nil {
				pending = &Event{Path: w.path, Timestamp: time.Now()}
			}
			pending.Op |= op

			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.delay)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			if pending != nil {
				w.sendEvent(*pending)
				pending = nil
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// convertOp converts an fsnotify.Op, dropping chmod.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

func (w *FileWatcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("change %s", event.Op)
	default:
		w.logger.Warn("event channel full, dropping %s", event.Op)
	}
}

func (w *FileWatcher) sendError(err error) {
	w.logger.Warn("watch error: %v", err)
	select {
	case w.errors <- err:
	default:
	}
}
