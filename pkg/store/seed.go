package store

import (
	"time"

	"tableflip.dev/things/pkg/task"
)

// Seed returns the sample tasks written into an empty slot.
func Seed(now time.Time) []task.Task {
	created := task.Timestamp{Time: now}
	return []task.Task{
		{
			ID:        "1",
			Title:     "Task 1",
			Category:  task.Personal,
			Status:    task.Todo,
			CreatedAt: created,
		},
		{
			ID:        "2",
			Title:     "Task 2",
			Category:  task.Personal,
			Status:    task.Todo,
			CreatedAt: created,
		},
		{
			ID:          "3",
			Title:       "Task 3",
			Category:    task.Business,
			Status:      task.Completed,
			CreatedAt:   created,
			CompletedAt: task.Stamp(now),
		},
	}
}
