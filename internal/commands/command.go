// Package commands provides the command interface and implementations.
// Commands are the presentation collaborator: they read store snapshots
// and dispatch intents, never touching store internals or the network.
package commands

import (
	"context"
	"flag"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/store"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the command name.
	Name() string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires an authenticated
	// session. help, version, login, register and logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command and returns an exit code. st is always
	// provided; the dispatcher has already verified authentication when
	// NeedsAuth is true.
	Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int
}
