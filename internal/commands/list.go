package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	pendingOnly bool
	doneOnly    bool
}

// SetFilter restricts output to one section (for testing).
func (c *ListCmd) SetFilter(pendingOnly, doneOnly bool) {
	c.pendingOnly = pendingOnly
	c.doneOnly = doneOnly
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--pending | --done]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.pendingOnly, "pending", false, "")
	fs.BoolVar(&c.doneOnly, "done", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.pendingOnly && c.doneOnly {
		fmt.Fprintln(errOut, "error: cannot use both --pending and --done")
		return exitcode.UserError
	}

	printList(cfg, svc, !c.doneOnly, !c.pendingOnly, out)
	return exitcode.Success
}

// printList prints the requested sections, or "no tasks found".
func printList(cfg *config.Config, svc service.Service, showPending, showDone bool, out io.Writer) {
	f := output.NewFormatter(cfg.Color)
	if !f.State(out, svc.State(), showPending, showDone) && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
}
