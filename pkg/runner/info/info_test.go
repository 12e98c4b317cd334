package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/tracker"
)

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	cfg, err := store.NewConfig(dir, "chores")
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
	s.Archive("1")

	var buf bytes.Buffer
	i := Info{Config: cfg, Store: s, Out: &buf}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	out := buf.String()
	for _, want := range []string{dir, "chores", "Tasks: 3 (1 archived)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInfoWithoutStore(t *testing.T) {
	cfg, _ := store.NewConfig(t.TempDir(), "")
	i := Info{Config: cfg, Out: &bytes.Buffer{}}
	if err := i.Do(context.Background()); err == nil {
		t.Fatalf("expected error without a store")
	}
}
