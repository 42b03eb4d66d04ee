package store

import (
	"sync"

	"taskdeck/internal/api"
	"taskdeck/internal/storage"
)

// Stores bundles the session and task stores sharing one API client.
type Stores struct {
	Session *SessionStore
	Tasks   *TaskStore
}

// Open wires the stores together: the session store hydrates from the
// durable records, and the task collection is dropped whenever the
// session owner changes (logout, or a direct re-login as someone else)
// so cached tasks never outlive the identity they belong to.
func Open(client *api.Client, records storage.Records) *Stores {
	session := NewSessionStore(client, records)
	tasks := NewTaskStore(client, session)

	var mu sync.Mutex
	owner, _ := session.CurrentUser()
	session.Subscribe(func() {
		current, _ := session.CurrentUser()
		mu.Lock()
		changed := current != owner
		owner = current
		mu.Unlock()
		if changed {
			tasks.Reset()
		}
	})
	return &Stores{Session: session, Tasks: tasks}
}
