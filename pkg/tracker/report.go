package tracker

import (
	"sort"
	"time"

	"tableflip.dev/things/pkg/task"
)

// ReportSection groups the tasks of one category.
type ReportSection struct {
	Category task.Category `json:"category"`
	Tasks    []task.Task   `json:"tasks"`
}

// Report lists what got done, and what got added, between two instants.
type Report struct {
	Since     time.Time       `json:"since"`
	Until     time.Time       `json:"until"`
	Completed []ReportSection `json:"completed"`
	Added     int             `json:"added"`
	Total     int             `json:"total"`
}

// Report collects the tasks whose completedAt falls within [since, until],
// archived ones included, ordered by completion time. Swapped bounds are
// accepted.
func (s State) Report(since, until time.Time) Report {
	if since.After(until) {
		since, until = until, since
	}
	within := func(t time.Time) bool {
		return !t.Before(since) && !t.After(until)
	}

	r := Report{Since: since, Until: until}
	byCategory := map[task.Category][]task.Task{}
	for _, t := range s.Tasks {
		if within(t.CreatedAt.Time) {
			r.Added++
		}
		if t.CompletedAt == nil || !within(t.CompletedAt.Time) {
			continue
		}
		byCategory[t.Category] = append(byCategory[t.Category], t.Clone())
		r.Total++
	}

	for _, c := range task.Categories() {
		tasks := byCategory[c]
		if len(tasks) == 0 {
			continue
		}
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CompletedAt.Before(tasks[j].CompletedAt.Time)
		})
		r.Completed = append(r.Completed, ReportSection{Category: c, Tasks: tasks})
	}
	return r
}
