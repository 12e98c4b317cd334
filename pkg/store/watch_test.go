package store

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestPersistenceWatchEmitsSlotChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(Seed(time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type != EventSlotChanged {
				continue
			}
			if evt.Path != p.Path() {
				t.Fatalf("expected path %q, got %q", p.Path(), evt.Path)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for slot change event")
		}
	}
}

func TestPersistenceWatchIgnoresOtherFiles(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(base+"/notes.txt", []byte("hello"), 0o644); err != nil {
		t.Fatalf("write unrelated file: %v", err)
	}

	select {
	case evt := <-ch:
		t.Fatalf("unexpected event %v for unrelated file", evt.Type)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestPersistenceWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// Drain a racing event, the close must follow.
			if _, ok := <-ch; ok {
				t.Fatalf("expected channel to close after cancel")
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch channel not closed after cancel")
	}
}

func TestEventTypeString(t *testing.T) {
	if got := EventSlotRemoved.String(); got != "removed" {
		t.Fatalf("unexpected string %q", got)
	}
}
