package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/tracker"
)

func init() {
	color.NoColor = true
}

func TestReport(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	s := tracker.New(nil, tracker.WithClock(func() time.Time { return now }))
	s.Dispatch(tracker.SetTasks{Tasks: store.Seed(now.Add(-time.Hour))})
	s.Toggle("1")

	var buf bytes.Buffer
	r := Report{Window: "2d", Store: s, Out: &buf, Now: func() time.Time { return now }}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Completed in the last 2d - 2 tasks", "Task 1", "Task 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Task 2") {
		t.Fatalf("open task should not be reported:\n%s", out)
	}
}

func TestReportJSON(t *testing.T) {
	now := time.Date(2026, time.October, 15, 12, 0, 0, 0, time.UTC)
	s := tracker.New(nil)
	s.Dispatch(tracker.SetTasks{Tasks: store.Seed(now.AddDate(0, 0, -10))})

	var buf bytes.Buffer
	r := Report{JSON: true, Store: s, Out: &buf, Now: func() time.Time { return now }}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	var got tracker.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if got.Total != 0 {
		t.Fatalf("seed completed ten days ago is outside the default week: %+v", got)
	}
}

func TestReportBadWindow(t *testing.T) {
	r := Report{Window: "soon", Store: tracker.New(nil), Out: &bytes.Buffer{}}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected error for bad window")
	}
}
