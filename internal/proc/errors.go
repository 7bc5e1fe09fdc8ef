package proc

import (
	"errors"
	"fmt"
)

// ErrLaunch matches every *LaunchError via errors.Is.
var ErrLaunch = errors.New("command failed to launch")

// ErrCommandNotFound is the cause recorded when the shell started but could
// not find the program it was asked to run.
var ErrCommandNotFound = errors.New("command not found")

// LaunchError reports a command that could not be started or did not finish
// before its deadline.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %q: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

func (e *LaunchError) Is(target error) bool { return target == ErrLaunch }
