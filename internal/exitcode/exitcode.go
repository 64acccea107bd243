// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty title, bad selection).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// StorageError indicates the task store could not be opened or read.
	StorageError = 3
)
