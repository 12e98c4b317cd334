// Package tracker holds the task state model: a closed set of commands, the
// pure Reduce transition, derived views and the Store that owns the state
// and saves it after every change to the task sequence.
package tracker

import (
	"tableflip.dev/things/pkg/task"
)

// State is everything the presentation layers read. Only Tasks is persisted.
type State struct {
	Tasks       []task.Task
	Filter      task.Filter
	SelectedID  string
	ShowFilters bool
	ShowNav     bool
}

// Initial returns the default selection state with no tasks.
func Initial() State {
	return State{Filter: task.All}
}

// Reduce applies cmd to s and returns the next state. s is never modified;
// unknown ids, blank titles and unknown enum values leave the state as is.
func Reduce(s State, cmd Command) State {
	switch c := cmd.(type) {
	case SetTasks:
		s.Tasks = cloneTasks(c.Tasks)
		if s.SelectedID != "" && indexOf(s.Tasks, s.SelectedID) < 0 {
			s.SelectedID = ""
		}

	case AddTask:
		title, ok := task.NormalizeTitle(c.Title)
		if !ok || c.ID == "" || indexOf(s.Tasks, c.ID) >= 0 {
			return s
		}
		category := c.Category
		if category == "" {
			category = task.Personal
		}
		if !category.Valid() {
			return s
		}
		next := make([]task.Task, len(s.Tasks), len(s.Tasks)+1)
		copy(next, s.Tasks)
		s.Tasks = append(next, task.Task{
			ID:        c.ID,
			Title:     title,
			Category:  category,
			Status:    task.Todo,
			CreatedAt: task.Timestamp{Time: c.At},
		})

	case UpdateTask:
		i := indexOf(s.Tasks, c.ID)
		if i < 0 {
			return s
		}
		t := s.Tasks[i].Clone()
		if c.Patch.Title != nil {
			title, ok := task.NormalizeTitle(*c.Patch.Title)
			if !ok {
				return s
			}
			t.Title = title
		}
		if c.Patch.Category != nil {
			if !c.Patch.Category.Valid() {
				return s
			}
			t.Category = *c.Patch.Category
		}
		s.Tasks = replaceAt(s.Tasks, i, t)

	case ToggleTask:
		i := indexOf(s.Tasks, c.ID)
		if i < 0 {
			return s
		}
		t := s.Tasks[i].Clone()
		switch t.Status {
		case task.Completed:
			t.Status = task.Todo
			t.CompletedAt = nil
		case task.Todo:
			t.Status = task.Completed
			t.CompletedAt = task.Stamp(c.At)
		default:
			// Archived tasks cannot be revived through toggle.
			return s
		}
		s.Tasks = replaceAt(s.Tasks, i, t)

	case ArchiveTask:
		i := indexOf(s.Tasks, c.ID)
		if i < 0 {
			return s
		}
		t := s.Tasks[i].Clone()
		t.Status = task.Archived
		t.ArchivedAt = task.Stamp(c.At)
		s.Tasks = replaceAt(s.Tasks, i, t)

	case DeleteTask:
		i := indexOf(s.Tasks, c.ID)
		if i < 0 {
			return s
		}
		next := make([]task.Task, 0, len(s.Tasks)-1)
		next = append(next, s.Tasks[:i]...)
		s.Tasks = append(next, s.Tasks[i+1:]...)
		if s.SelectedID == c.ID {
			s.SelectedID = ""
		}

	case SetFilter:
		if c.Filter.Valid() {
			s.Filter = c.Filter
		}

	case SelectTask:
		if c.ID == "" {
			s.SelectedID = ""
		} else if indexOf(s.Tasks, c.ID) >= 0 {
			s.SelectedID = c.ID
		}

	case ClearSelection:
		s.SelectedID = ""

	case ToggleFilterPanel:
		s.ShowFilters = !s.ShowFilters

	case ToggleNavPanel:
		s.ShowNav = !s.ShowNav
	}
	return s
}

func indexOf(tasks []task.Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func replaceAt(tasks []task.Task, i int, t task.Task) []task.Task {
	next := make([]task.Task, len(tasks))
	copy(next, tasks)
	next[i] = t
	return next
}

func cloneTasks(tasks []task.Task) []task.Task {
	if tasks == nil {
		return nil
	}
	out := make([]task.Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}

func sameTasks(a, b []task.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
