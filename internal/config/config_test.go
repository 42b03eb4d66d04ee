package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"taskdeck/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(config.ServerURLEnv, "")

	dir := t.TempDir()
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.ServerURL != config.DefaultServerURL {
		t.Errorf("expected default server URL, got %q", cfg.ServerURL)
	}
}

func TestNew_SettingsFile(t *testing.T) {
	t.Setenv(config.ServerURLEnv, "")

	dir := t.TempDir()
	settings := "server_url: https://tasks.example.com/api\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(settings), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.ServerURL != "https://tasks.example.com/api" {
		t.Errorf("expected settings-file URL, got %q", cfg.ServerURL)
	}
}

func TestNew_EnvOverridesSettings(t *testing.T) {
	dir := t.TempDir()
	settings := "server_url: https://tasks.example.com/api\n"
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(settings), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(config.ServerURLEnv, "http://127.0.0.1:9999/api")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if cfg.ServerURL != "http://127.0.0.1:9999/api" {
		t.Errorf("expected env URL, got %q", cfg.ServerURL)
	}
}

func TestNew_MalformedSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte(":\tnot yaml"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := config.New(dir); err == nil {
		t.Error("expected error for malformed settings file")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	want := filepath.Join("/tmp/xdg", config.AppName)
	if got := config.DefaultConfigDir(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
