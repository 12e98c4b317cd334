package tracker

import (
	"time"

	"tableflip.dev/things/pkg/task"
)

// Command is one state transition request. The set of commands is closed;
// Reduce is the only consumer.
type Command interface {
	// touchesTasks reports whether the command can change the task
	// sequence, and therefore whether the store has to save after it.
	touchesTasks() bool
}

// SetTasks replaces the whole task sequence, as on load.
type SetTasks struct {
	Tasks []task.Task
}

// AddTask appends a new todo. ID and At are chosen by the caller so Reduce
// stays free of clocks and random sources.
type AddTask struct {
	ID       string
	Title    string
	Category task.Category
	At       time.Time
}

// Patch holds the editable fields of a task; nil fields are left alone.
type Patch struct {
	Title    *string
	Category *task.Category
}

// UpdateTask merges Patch into the task with ID.
type UpdateTask struct {
	ID    string
	Patch Patch
}

// ToggleTask flips a task between todo and completed.
type ToggleTask struct {
	ID string
	At time.Time
}

// ArchiveTask moves a task to archived.
type ArchiveTask struct {
	ID string
	At time.Time
}

// DeleteTask removes a task.
type DeleteTask struct {
	ID string
}

// SetFilter changes the active view.
type SetFilter struct {
	Filter task.Filter
}

// SelectTask highlights a task for the detail view. An empty ID clears.
type SelectTask struct {
	ID string
}

// ClearSelection closes the detail view.
type ClearSelection struct{}

// ToggleFilterPanel flips the filter panel visibility.
type ToggleFilterPanel struct{}

// ToggleNavPanel flips the navigation panel visibility.
type ToggleNavPanel struct{}

func (SetTasks) touchesTasks() bool          { return true }
func (AddTask) touchesTasks() bool           { return true }
func (UpdateTask) touchesTasks() bool        { return true }
func (ToggleTask) touchesTasks() bool        { return true }
func (ArchiveTask) touchesTasks() bool       { return true }
func (DeleteTask) touchesTasks() bool        { return true }
func (SetFilter) touchesTasks() bool         { return false }
func (SelectTask) touchesTasks() bool        { return false }
func (ClearSelection) touchesTasks() bool    { return false }
func (ToggleFilterPanel) touchesTasks() bool { return false }
func (ToggleNavPanel) touchesTasks() bool    { return false }
