package balrainerr

import (
	xos "github.com/frantjc/x/os"
)

const (
	ExitCodeFailure = 1
	ExitCodeUsage   = 2
)

// ExitCodeError wraps err so that xos.ExitFromError exits
// with exitCode when err reaches main.
func ExitCodeError(err error, exitCode int) error {
	if err == nil {
		return nil
	}

	if exitCode <= 0 || 125 < exitCode {
		exitCode = ExitCodeFailure
	}

	// xos.NewExitCodeError would rewrite an *xos.ExitCodeError found
	// anywhere inside err, dropping the rest of a joined error.
	return &xos.ExitCodeError{
		Err:      err,
		ExitCode: exitCode,
	}
}

// ExitCode returns the exit code carried by err, 0 for
// a nil err and ExitCodeFailure for any other error.
func ExitCode(err error) int {
	return xos.ErrorExitCode(err)
}
