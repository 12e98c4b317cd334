package commands

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/things/pkg/store"
)

func TestCommandTree(t *testing.T) {
	root := New()
	want := []string{"add", "edit", "toggle", "archive", "delete", "list", "stats", "report", "key", "info", "ui", "mcp", "version", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd == root {
			t.Fatalf("expected %s command, got %v", name, err)
		}
	}

	for alias, name := range map[string]string{"done": "toggle", "complete": "toggle", "rm": "delete", "ls": "list"} {
		cmd, _, err := root.Find([]string{alias})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected alias %s to resolve to %s", alias, name)
		}
	}
}

func TestListFlags(t *testing.T) {
	root := New()
	cmd, _, _ := root.Find([]string{"list"})
	for _, flag := range []string{"filter", "show-id", "json"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Fatalf("expected --%s on list", flag)
		}
	}
	if f := cmd.Flags().ShorthandLookup("f"); f == nil || f.Name != "filter" {
		t.Fatalf("expected -f to be --filter")
	}
}

func TestDescribeIDs(t *testing.T) {
	got := describeIDs(store.Seed(time.Now()))
	if len(got) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(got))
	}
	if !strings.HasPrefix(got[2], "3\tTask 3") || !strings.Contains(got[2], "completed") {
		t.Fatalf("unexpected completion %q", got[2])
	}
}

func TestOptionalID(t *testing.T) {
	var id string
	args := optionalID(&id)
	if err := args(nil, nil); err != nil || id != "" {
		t.Fatalf("no args: id %q, err %v", id, err)
	}
	if err := args(nil, []string{"3"}); err != nil || id != "3" {
		t.Fatalf("one arg: id %q, err %v", id, err)
	}
	if err := args(nil, []string{"1", "2"}); err == nil {
		t.Fatalf("expected error for two ids")
	}
}

func TestResolveIDPassesThrough(t *testing.T) {
	got, err := resolveID(nil, nil, "2", "Toggle", nil)
	if err != nil || got != "2" {
		t.Fatalf("got %q, %v", got, err)
	}
}
