package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskdeck/internal/storage"
)

func TestFileRecords_SetGetRoundTrip(t *testing.T) {
	s := storage.NewFileRecords(t.TempDir())

	if err := s.Set("token", []byte(`"abc"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := s.Get("token")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != `"abc"` {
		t.Errorf("expected %q, got %q", `"abc"`, got)
	}
}

func TestFileRecords_GetMissingKey(t *testing.T) {
	s := storage.NewFileRecords(t.TempDir())

	_, err := s.Get("token")
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestFileRecords_DeleteIsIdempotent(t *testing.T) {
	s := storage.NewFileRecords(t.TempDir())

	if err := s.Delete("token"); err != nil {
		t.Errorf("deleting a missing key should not fail, got %v", err)
	}

	if err := s.Set("token", []byte(`"abc"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete("token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("token"); !os.IsNotExist(err) {
		t.Errorf("expected key gone after delete, got %v", err)
	}
}

func TestFileRecords_CreatesDirLazily(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s := storage.NewFileRecords(dir)

	if err := s.Set("user", []byte(`{}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "user.json")); err != nil {
		t.Errorf("expected user.json on disk: %v", err)
	}
}

func TestFileRecords_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := storage.NewFileRecords(dir)

	if err := s.Set("token", []byte(`"abc"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}
