package tracker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/task"
)

func openDiskStore(t *testing.T, contents string) (*Store, string) {
	t.Helper()
	base := t.TempDir()
	slotPath := filepath.Join(base, store.DefaultSlot)
	if err := os.WriteFile(slotPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write slot: %v", err)
	}
	cfg, err := store.NewConfig(base, "")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	p, err := store.Load(cfg)
	if err != nil {
		t.Fatalf("persistence: %v", err)
	}
	s, err := Open(context.Background(), p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, slotPath
}

func TestOpenAdoptsDateOnlyTimestamps(t *testing.T) {
	contents := `[` +
		`{"id":"a","title":"water plants","category":"personal","status":"todo","createdAt":"2026-10-01","completedAt":null,"archivedAt":null},` +
		`{"id":"b","title":"send invoice","category":"business","status":"todo","createdAt":"2026-10-02T08:00:00.000Z","completedAt":null,"archivedAt":null}` +
		`]`
	s, slotPath := openDiskStore(t, contents)

	got := s.Tasks()
	if len(got) != 2 || got[0].Title != "water plants" || got[1].Title != "send invoice" {
		t.Fatalf("expected the saved tasks, got %v", got)
	}
	after, err := os.ReadFile(slotPath)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if string(after) != contents {
		t.Fatalf("expected slot untouched by open, got %s", after)
	}
}

func TestOpenLeavesUnreadableSlotOnDisk(t *testing.T) {
	const contents = `[{"id":"a","title":"water plants"`
	s, slotPath := openDiskStore(t, contents)

	if len(s.Tasks()) != 3 {
		t.Fatalf("expected sample tasks in memory, got %v", s.Tasks())
	}
	after, err := os.ReadFile(slotPath)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if string(after) != contents {
		t.Fatalf("expected slot untouched by open, got %s", after)
	}

	if _, ok := s.Add("fresh start", task.Personal); !ok {
		t.Fatalf("add failed")
	}
	if err := s.Err(); err != nil {
		t.Fatalf("save: %v", err)
	}
	backup, err := os.ReadFile(slotPath + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != contents {
		t.Fatalf("expected backup of the unreadable slot, got %s", backup)
	}
	after, err = os.ReadFile(slotPath)
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	if !strings.Contains(string(after), "fresh start") {
		t.Fatalf("expected slot rewritten after the change, got %s", after)
	}
}
