package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/tracker"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	counter := 0
	s := tracker.New(nil, tracker.WithIDs(func() string {
		counter++
		return "mcp-" + strconv.Itoa(counter)
	}))
	s.Dispatch(tracker.SetTasks{Tasks: store.Seed(time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC))})
	return NewService(s)
}

func TestServiceAddTaskDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	dto, err := svc.AddTask(ctx, "  Write report ", "")
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	if dto.ID != "mcp-1" {
		t.Fatalf("expected generated id, got %s", dto.ID)
	}
	if dto.Title != "Write report" {
		t.Fatalf("expected trimmed title, got %q", dto.Title)
	}
	if dto.Category != string(task.Personal) || dto.Status != string(task.Todo) {
		t.Fatalf("unexpected defaults %+v", dto)
	}
	if dto.CompletedISO != "" || dto.ArchivedISO != "" {
		t.Fatalf("expected no completion or archive stamps, got %+v", dto)
	}

	if _, err := svc.AddTask(ctx, " ", "business"); err == nil {
		t.Fatalf("expected error for blank title")
	}
	if _, err := svc.AddTask(ctx, "x", "hobby"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestServiceToggleTask(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	done, err := svc.ToggleTask(ctx, "1")
	if err != nil {
		t.Fatalf("ToggleTask failed: %v", err)
	}
	if done.Status != string(task.Completed) || done.CompletedISO == "" {
		t.Fatalf("expected completed task, got %+v", done)
	}

	if _, err := svc.ArchiveTask(ctx, "1"); err != nil {
		t.Fatalf("ArchiveTask failed: %v", err)
	}
	if _, err := svc.ToggleTask(ctx, "1"); !errors.Is(err, ErrArchived) {
		t.Fatalf("expected ErrArchived, got %v", err)
	}
	if _, err := svc.ToggleTask(ctx, "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestServiceUpdateTask(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	title := "Renamed"
	business := "business"
	dto, err := svc.UpdateTask(ctx, UpdateTaskOptions{ID: "2", Title: &title, Category: &business})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if dto.Title != "Renamed" || dto.Category != "business" || dto.Status != string(task.Todo) {
		t.Fatalf("unexpected task %+v", dto)
	}

	if _, err := svc.UpdateTask(ctx, UpdateTaskOptions{ID: "2"}); err == nil {
		t.Fatalf("expected error for empty update")
	}
	blank := " "
	if _, err := svc.UpdateTask(ctx, UpdateTaskOptions{ID: "2", Title: &blank}); err == nil {
		t.Fatalf("expected error for blank title")
	}
	got, _ := svc.TaskByID(ctx, "2")
	if got.Title != "Renamed" {
		t.Fatalf("rejected update changed the task: %+v", got)
	}
}

func TestServiceListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	if _, err := svc.ArchiveTask(ctx, "2"); err != nil {
		t.Fatalf("ArchiveTask failed: %v", err)
	}

	all, f, err := svc.ListTasks(ctx, "")
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if f != task.All || len(all) != 2 {
		t.Fatalf("expected 2 unarchived tasks under all, got %d (%s)", len(all), f)
	}
	archived, _, err := svc.ListTasks(ctx, "archived")
	if err != nil || len(archived) != 1 || archived[0].ID != "2" {
		t.Fatalf("unexpected archived list %+v (%v)", archived, err)
	}
	if _, _, err := svc.ListTasks(ctx, "someday"); err == nil {
		t.Fatalf("expected error for unknown filter")
	}

	removed, err := svc.DeleteTask(ctx, "2")
	if err != nil || removed.ID != "2" {
		t.Fatalf("DeleteTask: %+v %v", removed, err)
	}
	if _, err := svc.TaskByID(ctx, "2"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected deleted task to be gone, got %v", err)
	}

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	if sum.Total != 2 || sum.CompletionRate != 50 {
		t.Fatalf("unexpected summary %+v", sum)
	}
}

func TestServiceToggleRacingArchive(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	var wg sync.WaitGroup
	results := make(chan *TaskDTO, 50)
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if dto, err := svc.ToggleTask(ctx, "2"); err == nil {
				results <- dto
			} else if !errors.Is(err, ErrArchived) {
				t.Errorf("toggle: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.ArchiveTask(ctx, "2"); err != nil {
				t.Errorf("archive: %v", err)
			}
		}()
	}
	wg.Wait()
	close(results)

	for dto := range results {
		if dto.Status == string(task.Archived) {
			t.Fatalf("toggle reported success on an archived task: %+v", dto)
		}
	}
}

func TestServiceReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	r, err := svc.Report(ctx, "1d", now)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if r.Window != "1d" || r.Total != 1 || r.Added != 3 {
		t.Fatalf("unexpected report %+v", r)
	}
	if got := r.Completed["business"]; len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("expected seed task 3 under business, got %+v", r.Completed)
	}
	if r.Until != "2026-10-15T12:00:00.000Z" {
		t.Fatalf("unexpected until %q", r.Until)
	}

	if _, err := svc.Report(ctx, "forever", now); err == nil {
		t.Fatalf("expected error for bad window")
	}
}

func TestServerToolCall(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	srv := newServer("things", "test", svc.Store)

	call := func(id int, method string, params any) string {
		t.Helper()
		msg, err := json.Marshal(map[string]any{
			"jsonrpc": "2.0",
			"id":      id,
			"method":  method,
			"params":  params,
		})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		resp := srv.HandleMessage(ctx, msg)
		b, err := json.Marshal(resp)
		if err != nil {
			t.Fatalf("marshal response: %v", err)
		}
		return string(b)
	}

	call(1, "initialize", map[string]any{
		"protocolVersion": "2025-03-26",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0"},
	})

	out := call(2, "tools/list", map[string]any{})
	for _, name := range []string{"list_tasks", "get_task", "add_task", "update_task", "toggle_task", "archive_task", "delete_task", "task_stats", "completed_report"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected tool %s in %s", name, out)
		}
	}

	out = call(3, "tools/call", map[string]any{
		"name":      "add_task",
		"arguments": map[string]any{"title": "From agent", "category": "business"},
	})
	if !strings.Contains(out, "From agent") {
		t.Fatalf("unexpected add_task response %s", out)
	}
	if got := svc.Store.Tasks(); got[len(got)-1].Title != "From agent" {
		t.Fatalf("expected task to be stored, got %+v", got)
	}

	out = call(4, "tools/call", map[string]any{
		"name":      "toggle_task",
		"arguments": map[string]any{"id": "missing"},
	})
	if !strings.Contains(out, `"isError":true`) {
		t.Fatalf("expected tool error, got %s", out)
	}
}

func TestTemplateArg(t *testing.T) {
	if got := templateArg(map[string]any{"id": "7"}, "id"); got != "7" {
		t.Fatalf("string arg: got %q", got)
	}
	if got := templateArg(map[string]any{"id": []string{"8"}}, "id"); got != "8" {
		t.Fatalf("list arg: got %q", got)
	}
	if got := templateArg(map[string]any{}, "id"); got != "" {
		t.Fatalf("missing arg: got %q", got)
	}
}
