// Package task defines the task record shared by the tracker, its
// persistence slot and every presentation layer.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category tags a task for filtering and statistics.
type Category string

const (
	Personal Category = "personal"
	Business Category = "business"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{Personal, Business}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == Personal || c == Business
}

// ParseCategory resolves user input to a Category. Empty input yields the
// fallback.
func ParseCategory(input string, fallback Category) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return fallback, nil
	case "personal", "p":
		return Personal, nil
	case "business", "b", "work":
		return Business, nil
	}
	return "", fmt.Errorf("unknown category %q (expected personal or business)", input)
}

// Status is the lifecycle state of a task. Exactly one holds at a time.
type Status string

const (
	Todo      Status = "todo"
	Completed Status = "completed"
	Archived  Status = "archived"
)

// Filter selects a view over the task sequence.
type Filter string

const (
	All           Filter = "all"
	TodosOnly     Filter = "todos"
	CompletedOnly Filter = "completed"
	ArchivedOnly  Filter = "archived"
)

// Filters lists every filter in display order.
func Filters() []Filter {
	return []Filter{All, TodosOnly, CompletedOnly, ArchivedOnly}
}

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	switch f {
	case All, TodosOnly, CompletedOnly, ArchivedOnly:
		return true
	}
	return false
}

// Title is the section heading used when the filter is active.
func (f Filter) Title() string {
	switch f {
	case TodosOnly:
		return "Todo Tasks"
	case CompletedOnly:
		return "Completed Tasks"
	case ArchivedOnly:
		return "Archived Tasks"
	default:
		return "All Tasks"
	}
}

// Match reports whether a task with status s belongs in the filtered view.
// The all filter deliberately leaves archived tasks out.
func (f Filter) Match(s Status) bool {
	switch f {
	case TodosOnly:
		return s == Todo
	case CompletedOnly:
		return s == Completed
	case ArchivedOnly:
		return s == Archived
	default:
		return s != Archived
	}
}

// ParseFilter resolves user input to a Filter. Empty input yields All.
func ParseFilter(input string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "all":
		return All, nil
	case "todos", "todo", "open":
		return TodosOnly, nil
	case "completed", "done":
		return CompletedOnly, nil
	case "archived", "archive":
		return ArchivedOnly, nil
	}
	return "", fmt.Errorf("unknown filter %q (expected all, todos, completed or archived)", input)
}

// Task is a single trackable to-do item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Category    Category   `json:"category"`
	Status      Status     `json:"status"`
	CreatedAt   Timestamp  `json:"createdAt"`
	CompletedAt *Timestamp `json:"completedAt"`
	ArchivedAt  *Timestamp `json:"archivedAt"`
}

// UnmarshalJSON decodes a slot record. An empty string in a nullable
// timestamp reads as null.
func (t *Task) UnmarshalJSON(b []byte) error {
	type record Task
	var r record
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	r.CompletedAt = nilIfUnset(r.CompletedAt)
	r.ArchivedAt = nilIfUnset(r.ArchivedAt)
	*t = Task(r)
	return nil
}

func nilIfUnset(ts *Timestamp) *Timestamp {
	if ts == nil || ts.Unset() {
		return nil
	}
	return ts
}

// NormalizeTitle trims the title and reports whether anything is left.
func NormalizeTitle(title string) (string, bool) {
	t := strings.TrimSpace(title)
	return t, t != ""
}

// Clone returns a copy that shares no timestamp pointers with t.
func (t Task) Clone() Task {
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	if t.ArchivedAt != nil {
		a := *t.ArchivedAt
		t.ArchivedAt = &a
	}
	return t
}

// Equal compares every field, timestamps by instant.
func (t Task) Equal(o Task) bool {
	return t.ID == o.ID &&
		t.Title == o.Title &&
		t.Category == o.Category &&
		t.Status == o.Status &&
		t.CreatedAt.Same(o.CreatedAt) &&
		equalStamp(t.CompletedAt, o.CompletedAt) &&
		equalStamp(t.ArchivedAt, o.ArchivedAt)
}

func equalStamp(a, b *Timestamp) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Same(*b)
}

func (t Task) String() string {
	return fmt.Sprintf("%s [%s/%s] %s", t.ID, t.Category, t.Status, t.Title)
}
