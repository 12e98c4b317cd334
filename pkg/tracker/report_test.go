package tracker

import (
	"testing"
	"time"

	"tableflip.dev/things/pkg/task"
)

func TestReport(t *testing.T) {
	base := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)
	at := func(days int) time.Time { return base.AddDate(0, 0, days) }

	s := Initial()
	s = Reduce(s, AddTask{ID: "a", Title: "old chore", Category: task.Personal, At: at(-30)})
	s = Reduce(s, AddTask{ID: "b", Title: "invoice", Category: task.Business, At: at(-2)})
	s = Reduce(s, AddTask{ID: "c", Title: "groceries", Category: task.Personal, At: at(-1)})
	s = Reduce(s, AddTask{ID: "d", Title: "still open", Category: task.Personal, At: at(-1)})
	s = Reduce(s, ToggleTask{ID: "a", At: at(-20)})
	s = Reduce(s, ToggleTask{ID: "c", At: at(0)})
	s = Reduce(s, ToggleTask{ID: "b", At: at(-1)})
	s = Reduce(s, ArchiveTask{ID: "b", At: at(0)})

	r := s.Report(at(1), at(-7))
	if !r.Since.Equal(at(-7)) || !r.Until.Equal(at(1)) {
		t.Fatalf("expected swapped bounds, got %v..%v", r.Since, r.Until)
	}
	if r.Total != 2 {
		t.Fatalf("expected 2 completions, got %d", r.Total)
	}
	if r.Added != 3 {
		t.Fatalf("expected 3 added, got %d", r.Added)
	}
	if len(r.Completed) != 2 {
		t.Fatalf("expected 2 sections, got %+v", r.Completed)
	}
	if r.Completed[0].Category != task.Personal || r.Completed[0].Tasks[0].ID != "c" {
		t.Fatalf("unexpected personal section %+v", r.Completed[0])
	}
	if r.Completed[1].Category != task.Business || r.Completed[1].Tasks[0].ID != "b" {
		t.Fatalf("archived completion should be reported: %+v", r.Completed[1])
	}
}

func TestReportEmpty(t *testing.T) {
	r := Initial().Report(time.Now().Add(-time.Hour), time.Now())
	if r.Total != 0 || len(r.Completed) != 0 {
		t.Fatalf("expected empty report, got %+v", r)
	}
}
