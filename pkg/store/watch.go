package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a slot change notification.
type EventType int

const (
	// EventSlotChanged indicates the slot was written, possibly by another
	// process, and readers should reload.
	EventSlotChanged EventType = iota

	// EventSlotRemoved indicates the slot file went away.
	EventSlotRemoved
)

func (t EventType) String() string {
	switch t {
	case EventSlotChanged:
		return "changed"
	case EventSlotRemoved:
		return "removed"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is emitted by Persistence.Watch when the slot changes.
type Event struct {
	Type EventType
	Path string
}

// Watch streams slot change events until ctx is cancelled. Callers should
// drain the returned channel; events are dropped while the consumer is busy.
// The channel is closed once ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	slotPath := filepath.Clean(p.Path())
	events := make(chan Event, 16)

	go func() {
		// The throttle timer may still fire while the loop exits; closed
		// guards the channel against a late send.
		var sendMu sync.Mutex
		closed := false
		defer func() {
			sendMu.Lock()
			closed = true
			close(events)
			sendMu.Unlock()
		}()
		defer closeWatcher()

		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if closed {
				return
			}
			select {
			case events <- ev:
			default:
				// The consumer reloads the whole slot anyway; a dropped
				// event is covered by the next one.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Unknown state, ask for a reload.
				throttle.Enqueue(Event{Type: EventSlotChanged, Path: slotPath}, send)
				fmt.Fprintf(os.Stderr, "store: watcher: %v\n", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(evt.Name) != slotPath {
					continue
				}
				switch {
				case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					if _, err := os.Stat(slotPath); err == nil {
						// Replaced by an atomic rename.
						throttle.Enqueue(Event{Type: EventSlotChanged, Path: slotPath}, send)
					} else {
						throttle.Enqueue(Event{Type: EventSlotRemoved, Path: slotPath}, send)
					}
				case evt.Op&(fsnotify.Create|fsnotify.Write) != 0:
					throttle.Enqueue(Event{Type: EventSlotChanged, Path: slotPath}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so readers reload once
// per burst of writes.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]Event
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]Event),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	t.pending[ev.Type] = ev

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]Event)
	t.timer = nil
	t.mu.Unlock()

	// A removal followed by a write within one burst is reported as changed.
	if ev, ok := pending[EventSlotChanged]; ok {
		send(ev)
		return
	}
	if ev, ok := pending[EventSlotRemoved]; ok {
		send(ev)
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
