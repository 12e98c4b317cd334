package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/task"
)

// Store owns the task state and funnels every change through Reduce. After a
// command that changed the task sequence it saves the whole sequence.
//
// Operations never fail: unknown ids and blank titles are no-ops. Save
// errors are kept on the store (see Err) and handed to the save error
// handler when one is configured.
type Store struct {
	mu    sync.Mutex
	state State

	persistence store.Persistence
	now         func() time.Time
	newID       func() string
	onSaveError func(error)
	err         error
	// unreadable is set while the slot holds contents that did not decode;
	// they are backed up before the first save replaces them.
	unreadable bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the random UUID generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithSaveErrorHandler is called, with the store locked, whenever a save
// fails.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(s *Store) { s.onSaveError = fn }
}

// New creates an empty store. A nil persistence keeps everything in memory.
func New(p store.Persistence, opts ...Option) *Store {
	s := &Store{
		state:       Initial(),
		persistence: p,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open creates a store and loads the slot into it.
func Open(ctx context.Context, p store.Persistence, opts ...Option) (*Store, error) {
	s := New(p, opts...)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the slot and resets the selection state to its defaults. An
// absent or empty slot is seeded and saved. An unreadable slot is left alone
// on disk while the seed tasks are used in memory.
func (s *Store) Load(ctx context.Context) error {
	return s.load(ctx, true)
}

// Reload re-reads the slot, keeping filter and panel state. A selection
// whose task disappeared is dropped.
func (s *Store) Reload(ctx context.Context) error {
	return s.load(ctx, false)
}

func (s *Store) load(ctx context.Context, reset bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if reset {
		s.state = Initial()
	}
	if s.persistence == nil {
		return nil
	}

	tasks, err := s.persistence.Load(ctx)
	seeded := false
	s.unreadable = false
	switch {
	case err == nil:
	case errors.Is(err, store.ErrSlotEmpty):
		tasks, seeded = store.Seed(s.now()), true
	case errors.Is(err, store.ErrMalformed):
		fmt.Fprintf(os.Stderr, "tracker: %v, showing sample tasks; %s is kept until the next change\n", err, s.persistence.Path())
		tasks, s.unreadable = store.Seed(s.now()), true
	default:
		return fmt.Errorf("tracker: load tasks: %w", err)
	}

	s.state = Reduce(s.state, SetTasks{Tasks: tasks})
	if seeded {
		return s.save()
	}
	return nil
}

// Dispatch applies cmd and saves when the task sequence changed. It reports
// whether the command changed anything at all.
func (s *Store) Dispatch(cmd Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(cmd)
}

func (s *Store) dispatch(cmd Command) bool {
	prev := s.state
	s.state = Reduce(prev, cmd)
	if cmd.touchesTasks() {
		if sameTasks(prev.Tasks, s.state.Tasks) {
			return prev.SelectedID != s.state.SelectedID
		}
		_ = s.save()
		return true
	}
	return !sameSelection(prev, s.state)
}

func sameSelection(a, b State) bool {
	return a.Filter == b.Filter &&
		a.SelectedID == b.SelectedID &&
		a.ShowFilters == b.ShowFilters &&
		a.ShowNav == b.ShowNav
}

func (s *Store) save() error {
	if s.persistence == nil {
		return nil
	}
	if s.unreadable {
		path, err := s.persistence.Backup()
		if err != nil && !errors.Is(err, store.ErrSlotEmpty) {
			return s.fail(fmt.Errorf("tracker: back up unreadable slot: %w", err))
		}
		if err == nil {
			fmt.Fprintf(os.Stderr, "tracker: unreadable tasks copied to %s\n", path)
		}
		s.unreadable = false
	}
	if err := s.persistence.Save(s.state.Tasks); err != nil {
		return s.fail(fmt.Errorf("tracker: save tasks: %w", err))
	}
	s.err = nil
	return nil
}

func (s *Store) fail(err error) error {
	s.err = err
	if s.onSaveError != nil {
		s.onSaveError(err)
	}
	return err
}

// Err returns the error from the most recent save, nil once a save succeeds.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Add appends a todo. It returns the new task, or false when the title is
// blank or the category unknown.
func (s *Store) Add(title string, category task.Category) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.newID()
	if !s.dispatch(AddTask{ID: id, Title: title, Category: category, At: s.now()}) {
		return task.Task{}, false
	}
	return s.state.Get(id)
}

// Update merges the patch into the task with id.
func (s *Store) Update(id string, p Patch) bool {
	return s.Dispatch(UpdateTask{ID: id, Patch: p})
}

// Toggle flips the task between todo and completed.
func (s *Store) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ToggleTask{ID: id, At: s.now()})
}

// Archive moves the task to archived, re-stamping archivedAt if it already
// was.
func (s *Store) Archive(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatch(ArchiveTask{ID: id, At: s.now()})
}

// Delete removes the task.
func (s *Store) Delete(id string) bool {
	return s.Dispatch(DeleteTask{ID: id})
}

var (
	// ErrNotFound is returned by the checked operations for unknown ids.
	ErrNotFound = errors.New("task not found")
	// ErrArchived is returned by CheckedToggle for archived tasks.
	ErrArchived = errors.New("task is archived")
)

// CheckedToggle is Toggle for callers that must report why nothing
// happened. The check, the change and the returned task are read under one
// lock.
func (s *Store) CheckedToggle(id string) (task.Task, error) {
	return s.checked(id, func(t task.Task) (Command, error) {
		if t.Status == task.Archived {
			return nil, ErrArchived
		}
		return ToggleTask{ID: id, At: s.now()}, nil
	})
}

// CheckedArchive is Archive returning the archived task or ErrNotFound.
func (s *Store) CheckedArchive(id string) (task.Task, error) {
	return s.checked(id, func(task.Task) (Command, error) {
		return ArchiveTask{ID: id, At: s.now()}, nil
	})
}

// CheckedDelete is Delete returning the removed task or ErrNotFound.
func (s *Store) CheckedDelete(id string) (task.Task, error) {
	return s.checked(id, func(task.Task) (Command, error) {
		return DeleteTask{ID: id}, nil
	})
}

// checked runs the command built for the current task with id and returns
// the task afterwards, or as it was when the command removed it. A failed
// save is returned alongside the task.
func (s *Store) checked(id string, build func(task.Task) (Command, error)) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, ok := s.state.Get(id)
	if !ok {
		return task.Task{}, ErrNotFound
	}
	cmd, err := build(before)
	if err != nil {
		return before, err
	}
	if s.dispatch(cmd) && cmd.touchesTasks() && s.err != nil {
		return before, s.err
	}
	if after, ok := s.state.Get(id); ok {
		return after, nil
	}
	return before, nil
}

// SetFilter changes the active view.
func (s *Store) SetFilter(f task.Filter) bool {
	return s.Dispatch(SetFilter{Filter: f})
}

// Select highlights the task with id for the detail view.
func (s *Store) Select(id string) bool {
	return s.Dispatch(SelectTask{ID: id})
}

// ClearSelection closes the detail view.
func (s *Store) ClearSelection() {
	s.Dispatch(ClearSelection{})
}

// ToggleFilterPanel flips the filter panel.
func (s *Store) ToggleFilterPanel() {
	s.Dispatch(ToggleFilterPanel{})
}

// ToggleNavPanel flips the navigation panel.
func (s *Store) ToggleNavPanel() {
	s.Dispatch(ToggleNavPanel{})
}

// State returns a snapshot that shares nothing with the store.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Tasks = cloneTasks(s.state.Tasks)
	return st
}

// Tasks returns every task in insertion order.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.state.Tasks)
}

// Get returns the task with id.
func (s *Store) Get(id string) (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Get(id)
}

// Filtered returns the tasks visible under the active filter.
func (s *Store) Filtered() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Filtered()
}

// Stats counts non-archived tasks per category.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stats()
}

// Summary returns per-filter counts and the completion rate.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Summary()
}

// Selected returns the task shown in the detail view.
func (s *Store) Selected() (task.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Selected()
}

// Report summarizes completions between since and until.
func (s *Store) Report(since, until time.Time) Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Report(since, until)
}
