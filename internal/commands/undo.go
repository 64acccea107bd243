package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&UndoCmd{})
}

// UndoCmd implements the undo command: completed tasks go back to the todo list.
type UndoCmd struct {
	all bool
}

// SetAll sets the --all flag (for testing).
func (c *UndoCmd) SetAll(all bool) {
	c.all = all
}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"revoke"} }
func (c *UndoCmd) Synopsis() string  { return "Move completed tasks back to todo" }
func (c *UndoCmd) Usage() string     { return "todo undo [--all] <ref...>" }
func (c *UndoCmd) NeedsStore() bool  { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "")
}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	keys, code := selectKeys(args, c.all, svc.State().Completed, errOut)
	if code != exitcode.Success {
		return code
	}
	return finish(cfg, svc.Revoke(ctx, keys), out, errOut)
}
