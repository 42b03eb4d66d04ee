package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command. Handles `taskdeck` with no args too.
type ListCmd struct{}

func (c *ListCmd) Name() string     { return "list" }
func (c *ListCmd) Synopsis() string { return "List tasks with checklist progress" }
func (c *ListCmd) Usage() string    { return "taskdeck list [common flags]" }
func (c *ListCmd) NeedsAuth() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	if err := st.Tasks.Fetch(ctx); err != nil {
		return reportError(errOut, err)
	}

	state := st.Tasks.State()
	if len(state.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, task := range state.Tasks {
		output.FormatTask(out, i+1, task)
		if task.Description != "" {
			output.FormatDescription(out, task.Description)
		}
		for j, item := range task.Checklist {
			output.FormatChecklistItem(out, j+1, item)
		}
	}
	return exitcode.Success
}
