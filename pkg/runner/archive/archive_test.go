package archive

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

func init() {
	color.NoColor = true
}

func newSeededStore(t *testing.T) *tracker.Store {
	t.Helper()
	cfg, err := store.NewConfig(t.TempDir(), "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("persistence: %v", err)
	}
	s, err := tracker.Open(context.Background(), p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestArchive(t *testing.T) {
	s := newSeededStore(t)
	var buf bytes.Buffer
	a := Archive{ID: "3", Store: s, Out: &buf}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("archive: %v", err)
	}
	got, _ := s.Get("3")
	if got.Status != task.Archived || got.ArchivedAt == nil || got.CompletedAt == nil {
		t.Fatalf("unexpected task %+v", got)
	}
	if !strings.Contains(buf.String(), "Task 3") {
		t.Fatalf("expected task in output:\n%s", buf.String())
	}

	a = Archive{ID: "missing", Store: s, Out: &buf}
	if err := a.Do(context.Background()); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}
