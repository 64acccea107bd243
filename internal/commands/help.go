package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-20s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  todo                                          List todo and done tasks
  todo list [common flags] [--pending | --done]
  todo add [common flags] [--remark <text>] <title...>
  todo done [common flags] [--all] <ref...>
  todo undo [common flags] [--all] <ref...>
  todo rm [common flags] [--done] [--force] [--all] <ref...>
  todo export [common flags] [--format json|yaml]
  todo watch [common flags]
  todo login [common flags]
  todo logout [common flags]
  todo help
  todo version

Task references:
  3        task number 3 of the list (todo, or done for undo and rm --done)
  2-5      tasks 2 through 5
  #<key>   a task by key; unknown keys are ignored

Common flags:
  --config <dir>    Override config directory
  --backend <name>  Storage backend: file, sqlite or gtasks
  --quiet           Suppress informational output
  --debug           Print debug logs to stderr
`
