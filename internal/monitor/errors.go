package monitor

import (
	"errors"
	"fmt"
)

// ErrKillFailed matches every *KillError via errors.Is.
var ErrKillFailed = errors.New("kill command failed")

// KillError reports a kill command that ran but did not terminate the
// process. Output is what the command printed.
type KillError struct {
	PID    string
	Output string
}

func (e *KillError) Error() string {
	return fmt.Sprintf("kill %s: %s", e.PID, e.Output)
}

func (e *KillError) Is(target error) bool { return target == ErrKillFailed }
