// Package exitcode defines process exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments or an invalid reference.
	UserError = 1

	// AuthError indicates a missing, rejected, or changed session.
	AuthError = 2

	// BackendError indicates a server, network, or decode failure.
	BackendError = 3
)
