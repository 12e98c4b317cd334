package tracker

import (
	"math"

	"tableflip.dev/things/pkg/task"
)

// Stats counts non-archived tasks per category.
type Stats struct {
	Personal int `json:"personal"`
	Business int `json:"business"`
}

// Count returns the count for c.
func (s Stats) Count(c task.Category) int {
	switch c {
	case task.Personal:
		return s.Personal
	case task.Business:
		return s.Business
	}
	return 0
}

// Summary backs the filter panel: a count per filter plus completion figures
// over every task, archived ones included.
type Summary struct {
	All            int   `json:"all"`
	Todos          int   `json:"todos"`
	Completed      int   `json:"completed"`
	Archived       int   `json:"archived"`
	Total          int   `json:"total"`
	CompletionRate int   `json:"completionRate"`
	Stats          Stats `json:"stats"`
}

// Count returns the number of tasks the filter f would show.
func (s Summary) Count(f task.Filter) int {
	switch f {
	case task.TodosOnly:
		return s.Todos
	case task.CompletedOnly:
		return s.Completed
	case task.ArchivedOnly:
		return s.Archived
	}
	return s.All
}

// Filtered returns the tasks visible under the active filter, in insertion
// order.
func (s State) Filtered() []task.Task {
	return FilterTasks(s.Tasks, s.Filter)
}

// FilterTasks returns copies of the tasks matching f.
func FilterTasks(tasks []task.Task, f task.Filter) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t.Status) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// Stats counts non-archived tasks per category.
func (s State) Stats() Stats {
	var st Stats
	for _, t := range s.Tasks {
		if t.Status == task.Archived {
			continue
		}
		switch t.Category {
		case task.Personal:
			st.Personal++
		case task.Business:
			st.Business++
		}
	}
	return st
}

// Summary computes the per-filter counts and completion rate.
func (s State) Summary() Summary {
	sum := Summary{Total: len(s.Tasks), Stats: s.Stats()}
	for _, t := range s.Tasks {
		switch t.Status {
		case task.Todo:
			sum.Todos++
		case task.Completed:
			sum.Completed++
		case task.Archived:
			sum.Archived++
		}
	}
	sum.All = sum.Total - sum.Archived
	if sum.Total > 0 {
		sum.CompletionRate = int(math.Round(float64(sum.Completed) * 100 / float64(sum.Total)))
	}
	return sum
}

// Selected resolves the selected task, if any.
func (s State) Selected() (task.Task, bool) {
	if s.SelectedID == "" {
		return task.Task{}, false
	}
	return s.Get(s.SelectedID)
}

// Get returns a copy of the task with id.
func (s State) Get(id string) (task.Task, bool) {
	if i := indexOf(s.Tasks, id); i >= 0 {
		return s.Tasks[i].Clone(), true
	}
	return task.Task{}, false
}
