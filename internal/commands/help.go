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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string     { return "help" }
func (c *HelpCmd) Synopsis() string { return "Print usage" }
func (c *HelpCmd) Usage() string    { return "taskdeck help" }
func (c *HelpCmd) NeedsAuth() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Stores, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                      List tasks with checklist progress
  taskdeck list [common flags]
  taskdeck add [common flags] [--desc <text>] [--item <text>]... <title...>
  taskdeck check [common flags] <task> <item>   Mark a checklist item done
  taskdeck uncheck [common flags] <task> <item> Mark a checklist item not done
  taskdeck rm [common flags] [--yes] <task>
  taskdeck login [common flags] <username> <password>
  taskdeck register [common flags] <username> <password>
  taskdeck logout [common flags]
  taskdeck whoami [common flags]
  taskdeck help
  taskdeck version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override task server base URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
