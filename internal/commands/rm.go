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
	Register(&RmCmd{})
}

// RmCmd implements the rm command. Deletion requires explicit confirmation
// via --yes; the store itself never prompts.
type RmCmd struct {
	yes bool
}

// SetYes sets the confirmation flag (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string     { return "rm" }
func (c *RmCmd) Synopsis() string { return "Delete a task" }
func (c *RmCmd) Usage() string    { return "taskdeck rm [--yes] <task>" }
func (c *RmCmd) NeedsAuth() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(errOut, "error: task reference required")
		return exitcode.UserError
	}

	num, err := parseRef(args[0])
	if err != nil {
		return reportError(errOut, err)
	}

	task, err := taskByNumber(ctx, st, num)
	if err != nil {
		return reportError(errOut, err)
	}

	if !c.yes {
		fmt.Fprintf(errOut, "error: confirm deletion of %q with --yes\n", task.Title)
		return exitcode.UserError
	}

	if err := st.Tasks.Remove(ctx, task.ID); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
