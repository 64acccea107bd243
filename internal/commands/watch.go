package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/storage"
)

// watchDebounce coalesces the burst of events produced by one save.
const watchDebounce = 100 * time.Millisecond

func init() {
	Register(&WatchCmd{})
}

// WatchCmd re-prints the lists whenever the local data file changes.
type WatchCmd struct{}

func (c *WatchCmd) Name() string      { return "watch" }
func (c *WatchCmd) Aliases() []string { return nil }
func (c *WatchCmd) Synopsis() string  { return "Print tasks again whenever they change" }
func (c *WatchCmd) Usage() string     { return "todo watch" }
func (c *WatchCmd) NeedsStore() bool  { return true }

func (c *WatchCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WatchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	var path string
	switch cfg.Backend {
	case config.BackendFile:
		path = cfg.DataPath()
	case config.BackendSQLite:
		path = cfg.DBPath()
	default:
		fmt.Fprintf(errOut, "error: watch is not supported by the %s backend\n", cfg.Backend)
		return exitcode.UserError
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	defer watcher.Close()

	// Watch the directory: atomic saves replace the file, dropping a file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fmt.Fprintf(errOut, "error: cannot watch %s: %v\n", filepath.Dir(path), err)
		return exitcode.StorageError
	}
	cfg.Logger.Debug("watching", "path", path)

	printList(cfg, svc, true, true, out)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return exitcode.Success
		case ev, ok := <-watcher.Events:
			if !ok {
				return exitcode.Success
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return exitcode.Success
			}
			cfg.Logger.Warn("watch error", "err", err)
		case <-pending:
			pending = nil
			if err := svc.Reload(ctx); err != nil {
				if errors.Is(err, storage.ErrUnauthorized) {
					fmt.Fprintf(errOut, "error: auth error: %v\n", err)
					return exitcode.AuthError
				}
				fmt.Fprintf(errOut, "error: storage error: %v\n", err)
				continue
			}
			fmt.Fprintln(out)
			printList(cfg, svc, true, true, out)
		}
	}
}
