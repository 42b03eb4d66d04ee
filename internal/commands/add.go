package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/store"
)

func init() {
	Register(&AddCmd{})
}

// itemFlags collects repeated --item flags in order.
type itemFlags []string

func (i *itemFlags) String() string { return strings.Join(*i, ", ") }

func (i *itemFlags) Set(v string) error {
	*i = append(*i, v)
	return nil
}

// AddCmd implements the add command.
type AddCmd struct {
	desc  string
	items itemFlags
}

// SetItems sets checklist items (for testing).
func (c *AddCmd) SetItems(items []string) {
	c.items = items
}

func (c *AddCmd) Name() string     { return "add" }
func (c *AddCmd) Synopsis() string { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskdeck add [--desc <text>] [--item <text>]... <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	// Commands are registered once and dispatched many times; flag.Var
	// keeps the previous value, so clear collected items explicitly.
	c.items = nil
	fs.StringVar(&c.desc, "desc", "", "")
	fs.Var(&c.items, "item", "")
	fs.Var(&c.items, "i", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if _, err := st.Tasks.Create(ctx, title, c.desc, c.items); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
