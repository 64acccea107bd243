package commands

import (
	"errors"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/persist"
	"todo/internal/storage"
	"todo/internal/task"
)

// selectKeys turns positional args (or --all) into the keys of tasks in section.
// On failure it prints the error and returns a non-zero exit code.
func selectKeys(args []string, all bool, section []task.Task, errOut io.Writer) (task.KeySet, int) {
	if all {
		if len(args) > 0 {
			fmt.Fprintln(errOut, "error: cannot use both --all and task references")
			return nil, exitcode.UserError
		}
		return task.NewKeySet(task.Keys(section)...), exitcode.Success
	}

	sel, err := ParseSelection(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	keys, err := sel.Resolve(section)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return nil, exitcode.UserError
	}
	return keys, exitcode.Success
}

// finish reports the outcome of a mutation. Save failures are warnings: the
// change already applies to this session, so the exit code stays Success.
func finish(cfg *config.Config, err error, out, errOut io.Writer) int {
	if err != nil {
		// Checked first: a rejected token is not fixed by retrying later.
		if errors.Is(err, storage.ErrUnauthorized) {
			fmt.Fprintf(errOut, "error: auth error: %v\n", err)
			return exitcode.AuthError
		}
		if errors.Is(err, persist.ErrSaveFailed) {
			fmt.Fprintf(errOut, "warning: %v\n", err)
			return exitcode.Success
		}
		if errors.Is(err, task.ErrTitleRequired) {
			fmt.Fprintln(errOut, "error: title required")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
