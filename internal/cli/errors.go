package cli

import (
	"errors"
	"fmt"

	"tasklist-cli/internal/tasklist"
)

type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

type invalidPositionError struct {
	arg string
}

func (e invalidPositionError) Error() string {
	return fmt.Sprintf("invalid task position: %q (want a number starting at 1)", e.arg)
}

func errInvalidPosition(arg string) error {
	return invalidPositionError{arg: arg}
}

type noTaskError struct {
	pos int
}

func (e noTaskError) Error() string {
	return fmt.Sprintf("no task at position %d", e.pos)
}

// alertedErrors are shown to the user by the alerter before the operation returns.
var alertedErrors = []error{
	tasklist.ErrEmptyInput,
	tasklist.ErrDuplicateText,
	tasklist.ErrNoSelection,
}

func wasAlerted(err error) bool {
	for _, a := range alertedErrors {
		if errors.Is(err, a) {
			return true
		}
	}
	return false
}
