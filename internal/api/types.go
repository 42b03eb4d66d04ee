// Package api implements the typed HTTP client for the task server.
package api

import "time"

// User is the authenticated identity issued by the server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ChecklistItem is one entry in a task's checklist. The id is assigned
// client-side at creation and is the stable address for toggles.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is a task as held by the server. Checklist order is meaningful
// and preserved end-to-end.
type Task struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Checklist   []ChecklistItem `json:"checklist"`
	OwnerID     string          `json:"userId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Credentials is the request body for login and register.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the payload returned by login and register.
// User and Token are always issued together.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Checklist   []ChecklistItem `json:"checklist"`
}

// ToggleItemRequest is the request body for updating a checklist item.
type ToggleItemRequest struct {
	Completed bool `json:"completed"`
}
