package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tableflip.dev/things/pkg/store"
	"tableflip.dev/things/pkg/task"
)

type memoryPersistence struct {
	mu      sync.Mutex
	tasks   []task.Task
	loadErr error
	saveErr error
	saves   int
	backups int
}

func (m *memoryPersistence) Load(_ context.Context) ([]task.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.tasks == nil {
		return nil, store.ErrSlotEmpty
	}
	return cloneTasks(m.tasks), nil
}

func (m *memoryPersistence) Save(tasks []task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.tasks = cloneTasks(tasks)
	if m.tasks == nil {
		m.tasks = []task.Task{}
	}
	return nil
}

func (m *memoryPersistence) Backup() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backups++
	return "memory.bak", nil
}

func (m *memoryPersistence) Watch(_ context.Context) (<-chan store.Event, error) {
	return nil, errors.New("memory persistence does not watch")
}

func (m *memoryPersistence) Path() string { return "memory" }

func (m *memoryPersistence) saved() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneTasks(m.tasks)
}

// testClock hands out strictly increasing instants.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Minute)
	return c.now
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(p store.Persistence) (*Store, *testClock) {
	clock := newTestClock()
	return New(p, WithClock(clock.Now), WithIDs(sequentialIDs())), clock
}
