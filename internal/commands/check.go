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
	Register(&CheckCmd{})
	Register(&UncheckCmd{})
}

// CheckCmd marks a checklist item completed.
type CheckCmd struct{}

func (c *CheckCmd) Name() string     { return "check" }
func (c *CheckCmd) Synopsis() string { return "Mark a checklist item done" }
func (c *CheckCmd) Usage() string    { return "taskdeck check <task> <item>" }
func (c *CheckCmd) NeedsAuth() bool  { return true }

func (c *CheckCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CheckCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, st, args, true, out, errOut)
}

// UncheckCmd marks a checklist item open again.
type UncheckCmd struct{}

func (c *UncheckCmd) Name() string     { return "uncheck" }
func (c *UncheckCmd) Synopsis() string { return "Mark a checklist item not done" }
func (c *UncheckCmd) Usage() string    { return "taskdeck uncheck <task> <item>" }
func (c *UncheckCmd) NeedsAuth() bool  { return true }

func (c *UncheckCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UncheckCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, st, args, false, out, errOut)
}

// runToggle is the shared implementation for check and uncheck. It sends
// the desired state rather than an inversion, so repeating the command is
// idempotent.
func runToggle(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, completed bool, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintln(errOut, "error: task and item reference required")
		return exitcode.UserError
	}

	taskNum, err := parseRef(args[0])
	if err != nil {
		return reportError(errOut, err)
	}
	itemNum, err := parseRef(args[1])
	if err != nil {
		return reportError(errOut, err)
	}

	task, err := taskByNumber(ctx, st, taskNum)
	if err != nil {
		return reportError(errOut, err)
	}

	item, err := itemByNumber(task, itemNum)
	if err != nil {
		return reportError(errOut, err)
	}

	if _, err := st.Tasks.ToggleItem(ctx, task.ID, item.ID, completed); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
