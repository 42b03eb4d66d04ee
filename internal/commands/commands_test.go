package commands_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"taskdeck/internal/api"
	"taskdeck/internal/cli"
	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/storage"
	"taskdeck/internal/store"
	"taskdeck/internal/testutil"
)

// newEnv returns a test server, a dispatcher whose store factory targets
// it, and the config dir holding the durable session records.
func newEnv(t *testing.T) (*testutil.Server, *cli.Dispatcher, string) {
	t.Helper()
	srv := testutil.NewServer()
	t.Cleanup(srv.Close)

	factory := func(ctx context.Context, cfg *config.Config) (*store.Stores, error) {
		client := api.New(srv.URL)
		return store.Open(client, storage.NewFileRecords(cfg.Dir)), nil
	}
	return srv, cli.NewDispatcher(commands.DefaultRegistry, factory), t.TempDir()
}

// run dispatches a command with --config injected ahead of the
// positional arguments (the flag package stops at the first non-flag).
func run(t *testing.T, d *cli.Dispatcher, dir string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	full := args
	if len(args) > 0 {
		full = append([]string{args[0], "--config", dir}, args[1:]...)
	}
	code = d.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func mustRun(t *testing.T, d *cli.Dispatcher, dir string, args ...string) string {
	t.Helper()
	stdout, stderr, code := run(t, d, dir, args...)
	if code != exitcode.Success {
		t.Fatalf("%v failed with code %d: %s", args, code, stderr)
	}
	return stdout
}

func TestVersionCommand(t *testing.T) {
	_, d, dir := newEnv(t)

	stdout, stderr, code := run(t, d, dir, "version")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskdeck 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

func TestHelpCommand(t *testing.T) {
	_, d, dir := newEnv(t)

	stdout, _, code := run(t, d, dir, "help")
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
}

func TestListCommand_Rendering(t *testing.T) {
	_, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")

	mustRun(t, d, dir, "add", "--item", "milk", "--item", "eggs", "Groceries")
	mustRun(t, d, dir, "add", "--desc", "weekly", "--item", "write changelog",
		"--item", "tag release", "--item", "publish", "Ship release")
	mustRun(t, d, dir, "check", "1", "2")

	stdout := mustRun(t, d, dir, "list")
	testutil.Golden(t, "list_tasks", []byte(stdout))
}

func TestListCommand_Empty(t *testing.T) {
	_, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")

	stdout := mustRun(t, d, dir, "list")
	if stdout != "no tasks found\n" {
		t.Errorf("expected empty message, got %q", stdout)
	}
}

func TestAddCommand_TitleRequired(t *testing.T) {
	_, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")

	_, stderr, code := run(t, d, dir, "add")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: title required\n" {
		t.Errorf("expected title error, got %q", stderr)
	}
}

func TestCheckCommand_OutOfRange(t *testing.T) {
	_, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")
	mustRun(t, d, dir, "add", "--item", "milk", "Groceries")

	_, stderr, code := run(t, d, dir, "check", "5", "1")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task number out of range: 5\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}

	_, stderr, code = run(t, d, dir, "check", "1", "3")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: item number out of range: 3\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestCheckCommand_BadReference(t *testing.T) {
	_, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")

	_, stderr, code := run(t, d, dir, "check", "one", "1")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid reference: one\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestUncheckCommand(t *testing.T) {
	_, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")
	mustRun(t, d, dir, "add", "--item", "milk", "Groceries")
	mustRun(t, d, dir, "check", "1", "1")
	mustRun(t, d, dir, "uncheck", "1", "1")

	stdout := mustRun(t, d, dir, "list")
	if !strings.Contains(stdout, "[ ] 1  milk") {
		t.Errorf("expected item unchecked, got %q", stdout)
	}
}

func TestRmCommand_RequiresConfirmation(t *testing.T) {
	srv, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")
	mustRun(t, d, dir, "add", "Groceries")

	_, stderr, code := run(t, d, dir, "rm", "1")
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: confirm deletion of \"Groceries\" with --yes\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if len(srv.Tasks("u1")) != 1 {
		t.Error("task must not be deleted without confirmation")
	}
}

func TestRmCommand_Confirmed(t *testing.T) {
	srv, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")
	mustRun(t, d, dir, "add", "Groceries")

	mustRun(t, d, dir, "rm", "--yes", "1")
	if len(srv.Tasks("u1")) != 0 {
		t.Error("expected task deleted")
	}

	stdout := mustRun(t, d, dir, "list")
	if stdout != "no tasks found\n" {
		t.Errorf("expected empty list after delete, got %q", stdout)
	}
}

func TestQuietSuppressesInformationalOutput(t *testing.T) {
	_, d, dir := newEnv(t)
	mustRun(t, d, dir, "register", "bob", "secret1")

	var outBuf, errBuf bytes.Buffer
	code := d.Run(context.Background(),
		[]string{"add", "--config", dir, "--quiet", "Groceries"}, &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("add failed: %s", errBuf.String())
	}
	if outBuf.String() != "" {
		t.Errorf("expected no output with --quiet, got %q", outBuf.String())
	}
}
