package commands

import (
	"errors"
	"fmt"
	"io"

	"taskdeck/internal/api"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/store"
)

// reportError prints an intent failure and maps it onto an exit code.
// Validation guards are user errors; credential rejections and session
// loss are auth errors; everything else is a backend error.
func reportError(errOut io.Writer, err error) int {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(errOut, "error: %s\n", verr.Msg)
		return exitcode.UserError
	}

	var rerr *refError
	if errors.As(err, &rerr) {
		fmt.Fprintf(errOut, "error: %s\n", rerr.msg)
		return exitcode.UserError
	}

	if errors.Is(err, store.ErrNotAuthenticated) {
		fmt.Fprintln(errOut, "error: not logged in (run: taskdeck login)")
		return exitcode.AuthError
	}
	if errors.Is(err, store.ErrSessionChanged) {
		fmt.Fprintln(errOut, "error: session changed, result discarded")
		return exitcode.AuthError
	}

	var serr *api.ServerError
	if errors.As(err, &serr) && serr.Unauthorized() {
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	}

	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
