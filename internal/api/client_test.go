package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/api"
)

func TestClient_OmitsAuthHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	var out struct{}
	if err := client.Do(context.Background(), http.MethodGet, "/tasks", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	client.SetToken("t1")

	var out struct{}
	if err := client.Do(context.Background(), http.MethodGet, "/tasks", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer t1" {
		t.Errorf("expected 'Bearer t1', got %q", gotAuth)
	}

	client.ClearToken()
	if err := client.Do(context.Background(), http.MethodGet, "/tasks", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header after ClearToken, got %q", gotAuth)
	}
}

func TestClient_ServerErrorCarriesStatusAndMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"title required"}`))
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	err := client.Do(context.Background(), http.MethodPost, "/tasks", map[string]string{}, nil)

	var serr *api.ServerError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *ServerError, got %T: %v", err, err)
	}
	if serr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", serr.StatusCode)
	}
	if serr.Error() != "title required" {
		t.Errorf("expected server message, got %q", serr.Error())
	}
}

func TestClient_ServerErrorWithoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	err := client.Do(context.Background(), http.MethodGet, "/tasks", nil, nil)

	var serr *api.ServerError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *ServerError, got %T: %v", err, err)
	}
	if serr.Error() != "server returned status 500" {
		t.Errorf("unexpected message: %q", serr.Error())
	}
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	err := client.Do(context.Background(), http.MethodGet, "/tasks", nil, nil)

	var serr *api.ServerError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *ServerError, got %T: %v", err, err)
	}
	if !serr.Unauthorized() {
		t.Error("expected Unauthorized() to be true for 401")
	}
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	var out struct{}
	err := client.Do(context.Background(), http.MethodGet, "/tasks", nil, &out)

	var derr *api.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // unreachable from here on

	client := api.New(srv.URL)
	err := client.Do(context.Background(), http.MethodGet, "/tasks", nil, nil)

	var terr *api.TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
}

func TestClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := api.New(srv.URL)
	if err := client.Do(context.Background(), http.MethodDelete, "/tasks/t1", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
