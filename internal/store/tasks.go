package store

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"taskdeck/internal/api"
)

// TaskState is a snapshot of the task collection store. Tasks is the
// authoritative in-memory copy, in server order except that freshly
// created tasks are prepended (most recent action first).
type TaskState struct {
	Tasks     []api.Task
	Loading   bool
	LastError string
}

// TaskStore owns the in-memory task collection. Every mutation goes
// through the server; state only ever reflects confirmed server payloads
// (no optimistic inserts or flips).
type TaskStore struct {
	client  *api.Client
	session *SessionStore
	notifier

	mu    sync.Mutex
	state TaskState

	// taskLocks serializes mutations per task so each checklist item
	// converges to the last user-intended value regardless of network
	// completion order.
	lockMu    sync.Mutex
	taskLocks map[string]*sync.Mutex
}

// NewTaskStore creates a task store bound to the given session.
func NewTaskStore(client *api.Client, session *SessionStore) *TaskStore {
	return &TaskStore{
		client:    client,
		session:   session,
		taskLocks: make(map[string]*sync.Mutex),
	}
}

// State returns a snapshot of the task collection state. The contained
// tasks are shared read-only data; callers must not mutate them.
func (s *TaskStore) State() TaskState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Tasks = make([]api.Task, len(s.state.Tasks))
	copy(st.Tasks, s.state.Tasks)
	return st
}

// Subscribe registers fn to run after every task state change.
func (s *TaskStore) Subscribe(fn func()) (cancel func()) {
	return s.subscribe(fn)
}

// ClearError clears the recorded error.
func (s *TaskStore) ClearError() {
	s.mu.Lock()
	s.state.LastError = ""
	s.mu.Unlock()
	s.publish()
}

// Fetch requests the full task collection and replaces the in-memory copy
// wholesale, preserving server order. On failure the prior tasks are left
// untouched and the error is recorded.
func (s *TaskStore) Fetch(ctx context.Context) error {
	owner, ok := s.session.CurrentUser()
	if !ok {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()
	s.publish()

	var tasks []api.Task
	err := s.client.Do(ctx, http.MethodGet, "/tasks", nil, &tasks)
	if stale := s.sessionChanged(owner); stale != nil {
		return stale
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.state = TaskState{Tasks: tasks}
	s.mu.Unlock()
	s.publish()
	return nil
}

// Create submits a new task. Whitespace-only checklist items are filtered
// out before submission and each surviving item is assigned a stable id.
// The server-returned task is prepended so the newest action lists first.
func (s *TaskStore) Create(ctx context.Context, title, description string, items []string) (api.Task, error) {
	if strings.TrimSpace(title) == "" {
		err := &ValidationError{Msg: "title required"}
		s.fail(err)
		return api.Task{}, err
	}

	checklist := make([]api.ChecklistItem, 0, len(items))
	for _, text := range items {
		if strings.TrimSpace(text) == "" {
			continue
		}
		checklist = append(checklist, api.ChecklistItem{
			ID:   uuid.NewString(),
			Text: text,
		})
	}

	owner, ok := s.session.CurrentUser()
	if !ok {
		return api.Task{}, ErrNotAuthenticated
	}

	var created api.Task
	err := s.client.Do(ctx, http.MethodPost, "/tasks", api.CreateTaskRequest{
		Title:       title,
		Description: description,
		Checklist:   checklist,
	}, &created)
	if stale := s.sessionChanged(owner); stale != nil {
		return api.Task{}, stale
	}
	if err != nil {
		s.fail(err)
		return api.Task{}, err
	}

	s.mu.Lock()
	s.state.Tasks = append([]api.Task{created}, s.state.Tasks...)
	s.state.LastError = ""
	s.mu.Unlock()
	s.publish()
	return created, nil
}

// ToggleItem sends the desired completed state for a checklist item and,
// on success, replaces the matching task with the full server-returned
// task so the client never diverges from server-computed fields.
func (s *TaskStore) ToggleItem(ctx context.Context, taskID, itemID string, completed bool) (api.Task, error) {
	owner, ok := s.session.CurrentUser()
	if !ok {
		return api.Task{}, ErrNotAuthenticated
	}

	lock := s.lockFor(taskID)
	lock.Lock()
	defer lock.Unlock()

	var updated api.Task
	err := s.client.Do(ctx, http.MethodPatch,
		"/tasks/"+taskID+"/checklist/"+itemID,
		api.ToggleItemRequest{Completed: completed}, &updated)
	if stale := s.sessionChanged(owner); stale != nil {
		return api.Task{}, stale
	}
	if err != nil {
		s.fail(err)
		return api.Task{}, err
	}

	s.mu.Lock()
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == updated.ID {
			s.state.Tasks[i] = updated
			break
		}
	}
	s.state.LastError = ""
	s.mu.Unlock()
	s.publish()
	return updated, nil
}

// Remove deletes a task by id. Confirmation is the caller's responsibility
// and must happen before this intent is dispatched. On failure the
// collection is unchanged.
func (s *TaskStore) Remove(ctx context.Context, taskID string) error {
	owner, ok := s.session.CurrentUser()
	if !ok {
		return ErrNotAuthenticated
	}

	lock := s.lockFor(taskID)
	lock.Lock()
	defer lock.Unlock()

	err := s.client.Do(ctx, http.MethodDelete, "/tasks/"+taskID, nil, nil)
	if stale := s.sessionChanged(owner); stale != nil {
		return stale
	}
	if err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	kept := s.state.Tasks[:0]
	for _, t := range s.state.Tasks {
		if t.ID != taskID {
			kept = append(kept, t)
		}
	}
	s.state.Tasks = kept
	s.state.LastError = ""
	s.mu.Unlock()
	s.publish()
	return nil
}

// Reset drops the cached collection and any recorded error. Wired to run
// when the session ends so tasks never outlive their owner.
func (s *TaskStore) Reset() {
	s.mu.Lock()
	s.state = TaskState{}
	s.mu.Unlock()
	s.publish()
}

// sessionChanged returns ErrSessionChanged when the session no longer holds
// the user a request started under. Late completions after logout (or a
// re-login as someone else) are discarded rather than applied.
func (s *TaskStore) sessionChanged(owner string) error {
	current, ok := s.session.CurrentUser()
	if !ok || current != owner {
		return ErrSessionChanged
	}
	return nil
}

func (s *TaskStore) fail(err error) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.LastError = err.Error()
	s.mu.Unlock()
	s.publish()
}

func (s *TaskStore) lockFor(taskID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.taskLocks[taskID]
	if !ok {
		lock = &sync.Mutex{}
		s.taskLocks[taskID] = lock
	}
	return lock
}
