package script

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand is returned for a command name the runner does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a command has the wrong number or kind of arguments.
	ErrUsage = errors.New("invalid arguments")
)

// LineError ties a command failure to its position in a script.
type LineError struct {
	Line    int
	Command string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Command, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }
