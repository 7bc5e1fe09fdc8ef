//go:build windows

package proc

import (
	"context"
	"os/exec"
	"syscall"
	"time"
)

// notFoundExitCode is what cmd exits with when the program is missing.
const notFoundExitCode = 9009

// shellCommand hands line to cmd verbatim. exec's default argument quoting
// escapes inner quotes with backslashes, which cmd does not understand.
func shellCommand(ctx context.Context, line string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "cmd")
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: `cmd /c "` + line + `"`}
	cmd.WaitDelay = time.Second
	return cmd
}
