package client

import (
	"sync"

	"github.com/taskhive/backend/domain"
)

type taskAPI interface {
	ListTasks(token string) ([]domain.Task, error)
	CreateTask(token string, in TaskInput) (domain.Task, error)
	UpdateTask(token, id string, patch domain.TaskPatch) error
	DeleteTask(token, id string) error
}

type tokenProvider interface {
	Token() string
}

// TaskList caches the user's tasks and applies mutations optimistically:
// create prepends the server-returned row, update merges the patch into the
// cached copy (the server only confirms), delete drops it. No refetch after
// a mutation.
type TaskList struct {
	api    taskAPI
	tokens tokenProvider

	mu      sync.RWMutex
	tasks   []domain.Task
	loading bool
	err     error
}

func NewTaskList(api taskAPI, tokens tokenProvider) *TaskList {
	return &TaskList{api: api, tokens: tokens}
}

// Fetch replaces the cached collection with the server's. Two overlapping
// fetches race last-write-wins, which is harmless for an idempotent read.
func (l *TaskList) Fetch() error {
	l.setLoading(true)
	defer l.setLoading(false)

	tasks, err := l.api.ListTasks(l.tokens.Token())
	if err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	l.tasks = tasks
	l.err = nil
	l.mu.Unlock()
	return nil
}

func (l *TaskList) Create(in TaskInput) (domain.Task, error) {
	l.setLoading(true)
	defer l.setLoading(false)

	task, err := l.api.CreateTask(l.tokens.Token(), in)
	if err != nil {
		return domain.Task{}, l.fail(err)
	}

	l.mu.Lock()
	l.tasks = append([]domain.Task{task}, l.tasks...)
	l.err = nil
	l.mu.Unlock()
	return task, nil
}

func (l *TaskList) Update(id string, patch domain.TaskPatch) error {
	l.setLoading(true)
	defer l.setLoading(false)

	if err := l.api.UpdateTask(l.tokens.Token(), id, patch); err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			patch.Apply(&l.tasks[i])
			break
		}
	}
	l.err = nil
	l.mu.Unlock()
	return nil
}

func (l *TaskList) Delete(id string) error {
	l.setLoading(true)
	defer l.setLoading(false)

	if err := l.api.DeleteTask(l.tokens.Token(), id); err != nil {
		return l.fail(err)
	}

	l.mu.Lock()
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			break
		}
	}
	l.err = nil
	l.mu.Unlock()
	return nil
}

// Tasks returns a snapshot of the cached collection.
func (l *TaskList) Tasks() []domain.Task {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Err returns the last failed operation's error, nil after any success.
func (l *TaskList) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Loading reports whether an operation is in flight.
func (l *TaskList) Loading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

func (l *TaskList) fail(err error) error {
	l.mu.Lock()
	l.err = err
	l.mu.Unlock()
	return err
}

func (l *TaskList) setLoading(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loading = v
}
