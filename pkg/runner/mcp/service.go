// Package mcp provides the Model Context Protocol server integration for things.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/things/pkg/glyph"
	"tableflip.dev/things/pkg/task"
	"tableflip.dev/things/pkg/timeutil"
	"tableflip.dev/things/pkg/tracker"
)

// Service coordinates store-backed operations that are shared by the MCP server.
type Service struct {
	Store *tracker.Store
}

var (
	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = tracker.ErrNotFound
	// ErrArchived is returned when toggling an archived task.
	ErrArchived = tracker.ErrArchived
)

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Category       string `json:"category"`
	CategorySymbol string `json:"categorySymbol"`
	Status         string `json:"status"`
	StatusSymbol   string `json:"statusSymbol"`
	CreatedISO     string `json:"createdAt"`
	CompletedISO   string `json:"completedAt,omitempty"`
	ArchivedISO    string `json:"archivedAt,omitempty"`
}

// UpdateTaskOptions captures the optional fields of an edit.
type UpdateTaskOptions struct {
	ID       string
	Title    *string
	Category *string
}

// NewService builds a service wrapper around the provided store.
func NewService(s *tracker.Store) *Service {
	return &Service{Store: s}
}

// refresh picks up writes made by other processes since the last call.
func (s *Service) refresh(ctx context.Context) error {
	if s.Store == nil {
		return errors.New("store is not configured")
	}
	return s.Store.Reload(ctx)
}

// ListTasks returns the tasks matching filter, which defaults to all.
func (s *Service) ListTasks(ctx context.Context, filter string) ([]TaskDTO, task.Filter, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, "", err
	}
	f, err := task.ParseFilter(filter)
	if err != nil {
		return nil, "", err
	}
	return toDTOs(tracker.FilterTasks(s.Store.Tasks(), f)), f, nil
}

// TaskByID fetches one task, archived ones included.
func (s *Service) TaskByID(ctx context.Context, id string) (*TaskDTO, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	return s.lookup(id)
}

// AddTask creates a todo task. An empty category means personal.
func (s *Service) AddTask(ctx context.Context, title, category string) (*TaskDTO, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	c, err := task.ParseCategory(category, task.Personal)
	if err != nil {
		return nil, err
	}
	t, ok := s.Store.Add(title, c)
	if !ok {
		return nil, errors.New("title must not be empty")
	}
	if err := s.Store.Err(); err != nil {
		return nil, err
	}
	dto := toDTO(t)
	return &dto, nil
}

// UpdateTask changes the title and/or category of a task.
func (s *Service) UpdateTask(ctx context.Context, opts UpdateTaskOptions) (*TaskDTO, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	if _, err := s.lookup(opts.ID); err != nil {
		return nil, err
	}

	var patch tracker.Patch
	if opts.Title != nil {
		if _, ok := task.NormalizeTitle(*opts.Title); !ok {
			return nil, errors.New("title must not be empty")
		}
		patch.Title = opts.Title
	}
	if opts.Category != nil {
		c, err := task.ParseCategory(*opts.Category, "")
		if err != nil {
			return nil, err
		}
		if c != "" {
			patch.Category = &c
		}
	}
	if patch.Title == nil && patch.Category == nil {
		return nil, errors.New("nothing to update, provide title or category")
	}

	s.Store.Update(opts.ID, patch)
	if err := s.Store.Err(); err != nil {
		return nil, err
	}
	return s.lookup(opts.ID)
}

// ToggleTask flips a task between todo and completed.
func (s *Service) ToggleTask(ctx context.Context, id string) (*TaskDTO, error) {
	return s.checked(ctx, id, s.Store.CheckedToggle)
}

// ArchiveTask archives a task, stamping archivedAt again if it already was.
func (s *Service) ArchiveTask(ctx context.Context, id string) (*TaskDTO, error) {
	return s.checked(ctx, id, s.Store.CheckedArchive)
}

// DeleteTask removes a task and returns what was removed.
func (s *Service) DeleteTask(ctx context.Context, id string) (*TaskDTO, error) {
	return s.checked(ctx, id, s.Store.CheckedDelete)
}

func (s *Service) checked(ctx context.Context, id string, op func(string) (task.Task, error)) (*TaskDTO, error) {
	if err := s.refresh(ctx); err != nil {
		return nil, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("task id is required")
	}
	t, err := op(id)
	switch {
	case errors.Is(err, tracker.ErrNotFound), errors.Is(err, tracker.ErrArchived):
		return nil, fmt.Errorf("%w: %s", err, id)
	case err != nil:
		return nil, err
	}
	dto := toDTO(t)
	return &dto, nil
}

// Summary returns category counts and completion figures.
func (s *Service) Summary(ctx context.Context) (tracker.Summary, error) {
	if err := s.refresh(ctx); err != nil {
		return tracker.Summary{}, err
	}
	return s.Store.Summary(), nil
}

// ReportDTO is the transport shape of a completion report.
type ReportDTO struct {
	Window    string               `json:"window"`
	Since     string               `json:"since"`
	Until     string               `json:"until"`
	Completed map[string][]TaskDTO `json:"completed"`
	Added     int                  `json:"added"`
	Total     int                  `json:"total"`
}

// Report lists the tasks completed within window before now.
func (s *Service) Report(ctx context.Context, window string, now time.Time) (ReportDTO, error) {
	d, label, err := timeutil.ParseWindow(window)
	if err != nil {
		return ReportDTO{}, err
	}
	if err := s.refresh(ctx); err != nil {
		return ReportDTO{}, err
	}
	r := s.Store.Report(now.Add(-d), now)
	out := ReportDTO{
		Window:    label,
		Since:     task.FormatTime(r.Since),
		Until:     task.FormatTime(r.Until),
		Completed: make(map[string][]TaskDTO, len(r.Completed)),
		Added:     r.Added,
		Total:     r.Total,
	}
	for _, sec := range r.Completed {
		out.Completed[string(sec.Category)] = toDTOs(sec.Tasks)
	}
	return out, nil
}

func (s *Service) lookup(id string) (*TaskDTO, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("task id is required")
	}
	t, ok := s.Store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	dto := toDTO(t)
	return &dto, nil
}

func toDTOs(tasks []task.Task) []TaskDTO {
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toDTO(t))
	}
	return out
}

func toDTO(t task.Task) TaskDTO {
	dto := TaskDTO{
		ID:             t.ID,
		Title:          t.Title,
		Category:       string(t.Category),
		CategorySymbol: glyph.Category(t.Category).Symbol,
		Status:         string(t.Status),
		StatusSymbol:   glyph.Status(t.Status).Symbol,
		CreatedISO:     t.CreatedAt.String(),
	}
	if t.CompletedAt != nil {
		dto.CompletedISO = t.CompletedAt.String()
	}
	if t.ArchivedAt != nil {
		dto.ArchivedISO = t.ArchivedAt.String()
	}
	return dto
}
