package edit

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

func TestEdit(t *testing.T) {
	title := "Renamed"
	business := task.Business
	blank := "  "
	bogus := task.Category("hobby")

	tests := map[string]struct {
		id       string
		title    *string
		category *task.Category
		wantErr  bool
		want     string
	}{
		"title":        {id: "1", title: &title, want: "Updated"},
		"category":     {id: "2", category: &business, want: "Updated"},
		"same values":  {id: "3", category: &business, want: "Unchanged"},
		"unknown id":   {id: "nope", title: &title, wantErr: true},
		"no changes":   {id: "1", wantErr: true},
		"blank title":  {id: "1", title: &blank, wantErr: true},
		"bad category": {id: "1", category: &bogus, wantErr: true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := newSeededStore(t)
			before := s.Tasks()
			var buf bytes.Buffer
			e := Edit{ID: tc.id, Title: tc.title, Category: tc.category, Store: s, Out: &buf}
			err := e.Do(context.Background())
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				after := s.Tasks()
				for i := range before {
					if !before[i].Equal(after[i]) {
						t.Fatalf("task %d changed on error: %+v", i, after[i])
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("edit: %v", err)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("expected %q in output:\n%s", tc.want, buf.String())
			}
		})
	}
}
