package balrainerr_test

import (
	"errors"
	"fmt"
	"testing"

	xos "github.com/frantjc/x/os"
	"github.com/stretchr/testify/assert"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, balrainerr.ExitCode(nil))
	assert.Nil(t, balrainerr.ExitCodeError(nil, balrainerr.ExitCodeUsage))
	assert.Equal(t, balrainerr.ExitCodeFailure, balrainerr.ExitCode(errors.New("plain")))

	err := balrainerr.ExitCodeError(errors.New("bad flag"), balrainerr.ExitCodeUsage)
	assert.Equal(t, balrainerr.ExitCodeUsage, balrainerr.ExitCode(err))
	assert.Equal(t, balrainerr.ExitCodeUsage, balrainerr.ExitCode(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, "bad flag", err.Error())
}

func TestExitCodeSeenByExitFromError(t *testing.T) {
	err := balrainerr.ExitCodeError(errors.New("bad flag"), balrainerr.ExitCodeUsage)
	assert.Equal(t, balrainerr.ExitCodeUsage, xos.ErrorExitCode(err))
	assert.Equal(t, balrainerr.ExitCodeUsage, xos.ErrorExitCode(fmt.Errorf("wrapped: %w", err)))
}

func TestExitCodeOutOfRange(t *testing.T) {
	err := balrainerr.ExitCodeError(errors.New("x"), 300)
	assert.Equal(t, balrainerr.ExitCodeFailure, balrainerr.ExitCode(err))
}

func TestExitCodeJoined(t *testing.T) {
	err := errors.Join(
		errors.New("first"),
		balrainerr.ExitCodeError(errors.New("second"), balrainerr.ExitCodeUsage),
	)
	assert.Equal(t, balrainerr.ExitCodeUsage, balrainerr.ExitCode(err))
}

func TestExitCodeKeepsJoinedErrors(t *testing.T) {
	joined := errors.Join(
		balrainerr.ExitCodeError(errors.New("first"), balrainerr.ExitCodeFailure),
		balrainerr.ExitCodeError(errors.New("second"), balrainerr.ExitCodeFailure),
	)

	err := balrainerr.ExitCodeError(joined, balrainerr.ExitCodeUsage)
	assert.Equal(t, balrainerr.ExitCodeUsage, xos.ErrorExitCode(err))
	assert.Equal(t, "first\nsecond", err.Error())
}
