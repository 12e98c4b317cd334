package tracker

import (
	"testing"

	"tableflip.dev/things/pkg/task"
)

func mixedState() State {
	s := stateWith(
		todo("1", task.Personal),
		todo("2", task.Personal),
		todo("3", task.Business),
		todo("4", task.Business),
		todo("5", task.Personal),
	)
	s = Reduce(s, ToggleTask{ID: "3", At: t0})
	s = Reduce(s, ToggleTask{ID: "4", At: t0})
	s = Reduce(s, ArchiveTask{ID: "4", At: t0})
	s = Reduce(s, ArchiveTask{ID: "5", At: t0})
	return s
}

func ids(tasks []task.Task) map[string]bool {
	out := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		out[t.ID] = true
	}
	return out
}

func TestFilteredViews(t *testing.T) {
	s := mixedState()
	tests := []struct {
		filter task.Filter
		want   []string
	}{
		{task.All, []string{"1", "2", "3"}},
		{task.TodosOnly, []string{"1", "2"}},
		{task.CompletedOnly, []string{"3"}},
		{task.ArchivedOnly, []string{"4", "5"}},
	}
	for _, tt := range tests {
		s.Filter = tt.filter
		got := s.Filtered()
		if len(got) != len(tt.want) {
			t.Fatalf("%s: expected %v, got %v", tt.filter, tt.want, got)
		}
		for i, id := range tt.want {
			if got[i].ID != id {
				t.Fatalf("%s: expected %v in order, got %v", tt.filter, tt.want, got)
			}
		}
	}
}

func TestFilteredPartition(t *testing.T) {
	s := mixedState()
	todos := ids(FilterTasks(s.Tasks, task.TodosOnly))
	completed := ids(FilterTasks(s.Tasks, task.CompletedOnly))
	archived := ids(FilterTasks(s.Tasks, task.ArchivedOnly))
	all := ids(FilterTasks(s.Tasks, task.All))

	for id := range todos {
		if completed[id] || archived[id] {
			t.Fatalf("task %s in more than one status view", id)
		}
	}
	for id := range completed {
		if archived[id] {
			t.Fatalf("task %s both completed and archived", id)
		}
	}
	if len(todos)+len(completed)+len(archived) != len(s.Tasks) {
		t.Fatalf("status views do not cover every task")
	}
	for id := range archived {
		if all[id] {
			t.Fatalf("all view includes archived task %s", id)
		}
	}
	if len(all)+len(archived) != len(s.Tasks) {
		t.Fatalf("all and archived do not cover every task")
	}
}

func TestStatsExcludeArchived(t *testing.T) {
	s := mixedState()
	st := s.Stats()
	if st.Personal != 2 || st.Business != 1 {
		t.Fatalf("unexpected stats %+v", st)
	}

	var want Stats
	for _, tk := range append(FilterTasks(s.Tasks, task.TodosOnly), FilterTasks(s.Tasks, task.CompletedOnly)...) {
		switch tk.Category {
		case task.Personal:
			want.Personal++
		case task.Business:
			want.Business++
		}
	}
	if st != want {
		t.Fatalf("expected stats %+v to equal todos+completed %+v", st, want)
	}
	if st.Count(task.Business) != 1 {
		t.Fatalf("unexpected business count %d", st.Count(task.Business))
	}
}

func TestSummary(t *testing.T) {
	sum := mixedState().Summary()
	if sum.Total != 5 || sum.All != 3 || sum.Todos != 2 || sum.Completed != 1 || sum.Archived != 2 {
		t.Fatalf("unexpected summary %+v", sum)
	}
	if sum.CompletionRate != 20 {
		t.Fatalf("expected 20%% completion, got %d", sum.CompletionRate)
	}
	if sum.Count(task.ArchivedOnly) != 2 || sum.Count(task.All) != 3 {
		t.Fatalf("unexpected per-filter counts %+v", sum)
	}
}

func TestSummaryEmpty(t *testing.T) {
	sum := Initial().Summary()
	if sum.Total != 0 || sum.CompletionRate != 0 {
		t.Fatalf("unexpected empty summary %+v", sum)
	}
}

func TestSummaryRounds(t *testing.T) {
	s := stateWith(todo("1", task.Personal), todo("2", task.Personal), todo("3", task.Personal))
	s = Reduce(s, ToggleTask{ID: "1", At: t0})
	s = Reduce(s, ToggleTask{ID: "2", At: t0})
	if got := s.Summary().CompletionRate; got != 67 {
		t.Fatalf("expected 67%%, got %d", got)
	}
}

func TestFilteredReturnsCopies(t *testing.T) {
	s := mixedState()
	got := s.Filtered()
	got[0].Title = "mutated"
	if s.Tasks[0].Title == "mutated" {
		t.Fatalf("filtered view shares tasks with state")
	}
}
