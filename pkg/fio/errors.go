package fio

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnexpected marks a run that ended for a reason other than fio exiting.
var ErrUnexpected = errors.New("Unexpected error while running fio")

// SubprocessError reports a fio run that exited non-zero.
type SubprocessError struct {
	ExitCode int
	Stderr   string
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("fio exited with status %d: %s", e.ExitCode, e.Stderr)
}

// unexpected wraps err so that errors.Is(err, ErrUnexpected) holds while the
// original message is kept.
func unexpected(err error, msg string) error {
	return &unexpectedError{cause: errors.Wrap(err, msg)}
}

type unexpectedError struct {
	cause error
}

func (e *unexpectedError) Error() string { return e.cause.Error() }

func (e *unexpectedError) Unwrap() error { return e.cause }

func (e *unexpectedError) Is(target error) bool { return target == ErrUnexpected }
