// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/api"
)

// baseTime anchors the deterministic clock used for task timestamps.
var baseTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// Server is an in-memory task server implementing the HTTP/JSON surface
// the remote store client consumes. Timestamps are deterministic and
// UpdatedAt only moves when a mutation actually changes something, so
// idempotent requests return identical payloads.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	passwords map[string]string   // username -> password
	users     map[string]api.User // username -> user
	tokens    map[string]string   // token -> userID
	tasks     map[string][]api.Task
	seq       int

	// FailNextStatus makes the next request fail once with this status
	// and FailNextMessage as the server message.
	FailNextStatus  int
	FailNextMessage string

	// Hook, when set, runs at the start of every request, before the
	// server lock is taken. Tests use it to change session state while
	// a request is in flight.
	Hook func(r *http.Request)
}

// NewServer starts an in-memory task server. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		passwords: make(map[string]string),
		users:     make(map[string]api.User),
		tokens:    make(map[string]string),
		tasks:     make(map[string][]api.Task),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// SeedUser registers an account directly and returns the identity.
func (s *Server) SeedUser(username, password string) api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUser(username, password)
}

// MintToken issues a bearer token for an existing user id.
func (s *Server) MintToken(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

// SeedTask inserts a task for the given owner and returns it.
func (s *Server) SeedTask(ownerID, title string, items ...api.ChecklistItem) api.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := s.newTask(ownerID, api.CreateTaskRequest{Title: title, Checklist: items})
	s.tasks[ownerID] = append([]api.Task{task}, s.tasks[ownerID]...)
	return task
}

// Tasks returns the server-side collection for an owner, newest first.
func (s *Server) Tasks(ownerID string) []api.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Task, len(s.tasks[ownerID]))
	copy(out, s.tasks[ownerID])
	return out
}

func (s *Server) addUser(username, password string) api.User {
	s.seq++
	user := api.User{ID: fmt.Sprintf("u%d", s.seq), Username: username}
	s.users[username] = user
	s.passwords[username] = password
	return user
}

func (s *Server) newTask(ownerID string, req api.CreateTaskRequest) api.Task {
	s.seq++
	now := baseTime.Add(time.Duration(s.seq) * time.Second)
	checklist := req.Checklist
	if checklist == nil {
		checklist = []api.ChecklistItem{}
	}
	return api.Task{
		ID:          fmt.Sprintf("t%d", s.seq),
		Title:       req.Title,
		Description: req.Description,
		Checklist:   checklist,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if s.Hook != nil {
		s.Hook(r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNextStatus != 0 {
		status, msg := s.FailNextStatus, s.FailNextMessage
		s.FailNextStatus, s.FailNextMessage = 0, ""
		writeJSON(w, status, map[string]string{"message": msg})
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodPost && len(parts) == 2 && parts[0] == "auth":
		s.handleAuth(w, r, parts[1])
	case len(parts) >= 1 && parts[0] == "tasks":
		s.handleTasks(w, r, parts)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request, action string) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}

	var user api.User
	switch action {
	case "login":
		stored, ok := s.passwords[creds.Username]
		if !ok || stored != creds.Password {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		user = s.users[creds.Username]
	case "register":
		if _, exists := s.users[creds.Username]; exists {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "username already taken"})
			return
		}
		user = s.addUser(creds.Username, creds.Password)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}

	token := uuid.NewString()
	s.tokens[token] = user.ID
	writeJSON(w, http.StatusOK, api.AuthResponse{User: user, Token: token})
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request, parts []string) {
	ownerID, ok := s.authorize(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "missing or invalid token"})
		return
	}

	switch {
	case r.Method == http.MethodGet && len(parts) == 1:
		writeJSON(w, http.StatusOK, s.tasks[ownerID])

	case r.Method == http.MethodPost && len(parts) == 1:
		var req api.CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Title) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "title required"})
			return
		}
		task := s.newTask(ownerID, req)
		s.tasks[ownerID] = append([]api.Task{task}, s.tasks[ownerID]...)
		writeJSON(w, http.StatusCreated, task)

	case r.Method == http.MethodPatch && len(parts) == 4 && parts[2] == "checklist":
		s.handleToggle(w, r, ownerID, parts[1], parts[3])

	case r.Method == http.MethodDelete && len(parts) == 2:
		for i, t := range s.tasks[ownerID] {
			if t.ID == parts[1] {
				s.tasks[ownerID] = append(s.tasks[ownerID][:i], s.tasks[ownerID][i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "task not found"})

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
	}
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request, ownerID, taskID, itemID string) {
	var req api.ToggleItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
		return
	}

	tasks := s.tasks[ownerID]
	for i := range tasks {
		if tasks[i].ID != taskID {
			continue
		}
		for j := range tasks[i].Checklist {
			if tasks[i].Checklist[j].ID != itemID {
				continue
			}
			if tasks[i].Checklist[j].Completed != req.Completed {
				tasks[i].Checklist[j].Completed = req.Completed
				s.seq++
				tasks[i].UpdatedAt = baseTime.Add(time.Duration(s.seq) * time.Second)
			}
			writeJSON(w, http.StatusOK, tasks[i])
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "checklist item not found"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "task not found"})
}

func (s *Server) authorize(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return "", false
	}
	ownerID, ok := s.tokens[token]
	return ownerID, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
