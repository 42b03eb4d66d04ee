package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/store"
)

func init() {
	Register(&LogoutCmd{})
	Register(&WhoamiCmd{})
}

// LogoutCmd implements the logout command. Logout is a local-only intent:
// it clears the identity and credential without a network call.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string     { return "logout" }
func (c *LogoutCmd) Synopsis() string { return "Clear the stored session" }
func (c *LogoutCmd) Usage() string    { return "taskdeck logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool  { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if !st.Session.Authenticated() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := st.Session.Logout(); err != nil {
		fmt.Fprintf(errOut, "error: failed to clear session: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// WhoamiCmd prints the authenticated identity.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string     { return "whoami" }
func (c *WhoamiCmd) Synopsis() string { return "Print the logged-in username" }
func (c *WhoamiCmd) Usage() string    { return "taskdeck whoami" }
func (c *WhoamiCmd) NeedsAuth() bool  { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	state := st.Session.State()
	fmt.Fprintln(out, state.User.Username)
	return exitcode.Success
}
