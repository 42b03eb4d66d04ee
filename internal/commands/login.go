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
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string     { return "login" }
func (c *LoginCmd) Synopsis() string { return "Log in to the task server" }
func (c *LoginCmd) Usage() string    { return "taskdeck login <username> <password>" }
func (c *LoginCmd) NeedsAuth() bool  { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: username and password required")
		return exitcode.UserError
	}

	if err := st.Session.Login(ctx, args[0], args[1]); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		state := st.Session.State()
		fmt.Fprintf(out, "logged in as %s\n", state.User.Username)
	}
	return exitcode.Success
}

// RegisterCmd implements the register command.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string     { return "register" }
func (c *RegisterCmd) Synopsis() string { return "Create an account and log in" }
func (c *RegisterCmd) Usage() string    { return "taskdeck register <username> <password>" }
func (c *RegisterCmd) NeedsAuth() bool  { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: username and password required")
		return exitcode.UserError
	}

	if err := st.Session.Register(ctx, args[0], args[1]); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		state := st.Session.State()
		fmt.Fprintf(out, "registered as %s\n", state.User.Username)
	}
	return exitcode.Success
}
