// Package store implements the session and task collection stores. Each
// store exclusively owns its state; presentation reads snapshots and
// dispatches intents, never mutating state directly.
package store

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"unicode/utf8"

	"taskdeck/internal/api"
	"taskdeck/internal/storage"
)

// Durable record keys. Written and cleared only as a pair.
const (
	tokenKey = "token"
	userKey  = "user"
)

// Registration guards, applied before dispatch. The server remains the
// source of truth for uniqueness and final acceptance.
const (
	minUsernameLen = 3
	minPasswordLen = 6
)

// SessionState is a snapshot of the session store. User and Token are
// always set or cleared together; Loading is true exactly while a
// login/register request is in flight.
type SessionState struct {
	User      *api.User
	Token     string
	Loading   bool
	LastError string
}

// Authenticated reports whether the snapshot holds an identity.
func (s SessionState) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// SessionStore owns the authenticated identity and credential. It persists
// the pair across restarts and installs the credential on the API client.
type SessionStore struct {
	client  *api.Client
	records storage.Records
	notifier

	mu    sync.Mutex
	state SessionState
}

// NewSessionStore creates a session store and hydrates it from the durable
// records. With a valid (user, token) pair it starts authenticated; with a
// missing or malformed pair it starts anonymous, ignoring the partial value.
func NewSessionStore(client *api.Client, records storage.Records) *SessionStore {
	s := &SessionStore{client: client, records: records}
	s.hydrate()
	return s
}

func (s *SessionStore) hydrate() {
	tokenData, err := s.records.Get(tokenKey)
	if err != nil {
		return
	}
	userData, err := s.records.Get(userKey)
	if err != nil {
		return
	}

	var token string
	if err := json.Unmarshal(tokenData, &token); err != nil || token == "" {
		return
	}
	var user api.User
	if err := json.Unmarshal(userData, &user); err != nil || user.ID == "" {
		return
	}

	s.state.User = &user
	s.state.Token = token
	s.client.SetToken(token)
}

// State returns a snapshot of the session state.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *SessionStore) snapshot() SessionState {
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Authenticated reports whether a user is logged in.
func (s *SessionStore) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated()
}

// CurrentUser returns the authenticated user id, if any. Task operations
// use it to discard completions that outlive the session they started in.
func (s *SessionStore) CurrentUser() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Authenticated() {
		return "", false
	}
	return s.state.User.ID, true
}

// Subscribe registers fn to run after every session state change.
func (s *SessionStore) Subscribe(fn func()) (cancel func()) {
	return s.subscribe(fn)
}

// ClearError clears the recorded error. Presentation calls this after
// displaying it.
func (s *SessionStore) ClearError() {
	s.mu.Lock()
	s.state.LastError = ""
	s.mu.Unlock()
	s.publish()
}

// Login authenticates with the server and, on success, persists the
// (user, token) pair and installs the credential on the API client.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password, false); err != nil {
		s.fail(err)
		return err
	}
	return s.authenticate(ctx, "/auth/login", username, password)
}

// Register creates an account and logs in with the issued identity.
func (s *SessionStore) Register(ctx context.Context, username, password string) error {
	if err := validateCredentials(username, password, true); err != nil {
		s.fail(err)
		return err
	}
	return s.authenticate(ctx, "/auth/register", username, password)
}

func (s *SessionStore) authenticate(ctx context.Context, path, username, password string) error {
	s.mu.Lock()
	s.state.Loading = true
	s.state.LastError = ""
	s.mu.Unlock()
	s.publish()

	var resp api.AuthResponse
	err := s.client.Do(ctx, http.MethodPost, path, api.Credentials{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		s.fail(err)
		return err
	}
	if resp.User.ID == "" || resp.Token == "" {
		err := &api.DecodeError{Err: errIncompleteAuth}
		s.fail(err)
		return err
	}

	if err := s.persistPair(resp.User, resp.Token); err != nil {
		s.fail(err)
		return err
	}

	s.client.SetToken(resp.Token)

	s.mu.Lock()
	user := resp.User
	s.state = SessionState{User: &user, Token: resp.Token}
	s.mu.Unlock()
	s.publish()
	return nil
}

// persistPair writes both records or neither; a failed user write rolls
// the token record back.
func (s *SessionStore) persistPair(user api.User, token string) error {
	tokenData, err := json.Marshal(token)
	if err != nil {
		return err
	}
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.records.Set(tokenKey, tokenData); err != nil {
		return err
	}
	if err := s.records.Set(userKey, userData); err != nil {
		s.records.Delete(tokenKey)
		return err
	}
	return nil
}

// fail records the error and leaves identity and storage untouched.
func (s *SessionStore) fail(err error) {
	s.mu.Lock()
	s.state.Loading = false
	s.state.LastError = err.Error()
	s.mu.Unlock()
	s.publish()
}

// Logout clears the in-memory identity, the credential on the API client,
// and both durable records. Local-only; no network call is made, and any
// in-flight request completions are discarded by the session guard.
func (s *SessionStore) Logout() error {
	err := s.records.Delete(tokenKey)
	if derr := s.records.Delete(userKey); err == nil {
		err = derr
	}

	s.client.ClearToken()

	s.mu.Lock()
	s.state = SessionState{}
	s.mu.Unlock()
	s.publish()
	return err
}

func validateCredentials(username, password string, register bool) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Msg: "username required"}
	}
	if password == "" {
		return &ValidationError{Msg: "password required"}
	}
	if register {
		if utf8.RuneCountInString(username) < minUsernameLen {
			return &ValidationError{Msg: "username must be at least 3 characters"}
		}
		if utf8.RuneCountInString(password) < minPasswordLen {
			return &ValidationError{Msg: "password must be at least 6 characters"}
		}
	}
	return nil
}
