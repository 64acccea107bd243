package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	done  bool
	all   bool
	force bool
	in    io.Reader
}

// SetDone selects the completed list (for testing).
func (c *RmCmd) SetDone(done bool) {
	c.done = done
}

// SetForce skips the confirmation prompt (for testing).
func (c *RmCmd) SetForce(force bool) {
	c.force = force
}

// SetInput sets where the confirmation answer is read from (for testing).
func (c *RmCmd) SetInput(in io.Reader) {
	c.in = in
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete tasks permanently" }
func (c *RmCmd) Usage() string     { return "todo rm [--done] [--force] [--all] <ref...>" }
func (c *RmCmd) NeedsStore() bool  { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	section := svc.State().Pending
	if c.done {
		section = svc.State().Completed
	}

	keys, code := selectKeys(args, c.all, section, errOut)
	if code != exitcode.Success {
		return code
	}

	n := countMatching(section, keys)
	if n == 0 {
		return finish(cfg, nil, out, errOut)
	}

	if !c.force && !c.confirm(n, errOut) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitcode.Success
	}

	if c.done {
		return finish(cfg, svc.DeleteCompleted(ctx, keys), out, errOut)
	}
	return finish(cfg, svc.DeletePending(ctx, keys), out, errOut)
}

// confirm asks on errOut and reads a y/yes answer from the input.
func (c *RmCmd) confirm(n int, errOut io.Writer) bool {
	in := c.in
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprintf(errOut, "delete %d task(s)? [y/N] ", n)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func countMatching(tasks []task.Task, keys task.KeySet) int {
	n := 0
	for _, t := range tasks {
		if keys.Has(t.Key) {
			n++
		}
	}
	return n
}
