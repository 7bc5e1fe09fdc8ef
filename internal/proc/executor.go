package proc

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pranshuparmar/renderwatch/internal/events"
	"github.com/pranshuparmar/renderwatch/internal/logging"
	"github.com/pranshuparmar/renderwatch/internal/platform"
)

// CaptureMode selects how command output is collected.
type CaptureMode string

const (
	// CaptureTempFile redirects output into a uniquely named file that is
	// read back and removed. Some hosts mangle direct capture for piped or
	// compound command lines; the file round trip does not.
	CaptureTempFile CaptureMode = "tempfile"
	// CaptureDirect reads combined stdout and stderr from the child.
	CaptureDirect CaptureMode = "direct"
)

// ParseCaptureMode accepts "tempfile", "direct" or "" (tempfile).
func ParseCaptureMode(s string) (CaptureMode, error) {
	switch CaptureMode(s) {
	case "", CaptureTempFile:
		return CaptureTempFile, nil
	case CaptureDirect:
		return CaptureDirect, nil
	default:
		return "", errors.New("unknown capture mode " + s)
	}
}

// ShellExecutor runs command lines through the host shell, one at a time
// per call. Calls are safe to make concurrently.
type ShellExecutor struct {
	profile platform.Profile
	capture CaptureMode
	tempDir string
	timeout time.Duration
	logger  *slog.Logger
	bus     *events.Bus
}

// Option configures a ShellExecutor.
type Option func(*ShellExecutor)

// WithCapture sets the capture mode. Default is CaptureTempFile.
func WithCapture(mode CaptureMode) Option {
	return func(e *ShellExecutor) {
		e.capture = mode
	}
}

// WithTempDir sets where output artifacts are written. Default is os.TempDir().
func WithTempDir(dir string) Option {
	return func(e *ShellExecutor) {
		if dir != "" {
			e.tempDir = dir
		}
	}
}

// WithTimeout bounds every command. Zero means wait forever.
func WithTimeout(d time.Duration) Option {
	return func(e *ShellExecutor) {
		e.timeout = d
	}
}

// WithEvents publishes a CommandExecutedEvent for every command.
func WithEvents(bus *events.Bus) Option {
	return func(e *ShellExecutor) {
		e.bus = bus
	}
}

// WithLogger overrides the module logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *ShellExecutor) {
		e.logger = logger
	}
}

// NewShellExecutor creates an executor for the given profile.
func NewShellExecutor(profile platform.Profile, opts ...Option) *ShellExecutor {
	e := &ShellExecutor{
		profile: profile,
		capture: CaptureTempFile,
		tempDir: os.TempDir(),
		logger:  logging.GetLogger("executor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes command and blocks until it exits.
func (e *ShellExecutor) Run(ctx context.Context, command string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	var (
		out string
		err error
	)
	if e.capture == CaptureDirect {
		out, err = e.runDirect(ctx, command)
	} else {
		out, err = e.runTempFile(ctx, command)
	}
	elapsed := time.Since(start)

	e.bus.Publish(events.CommandExecutedEvent{
		Command:  command,
		Seconds:  elapsed.Seconds(),
		Launched: err == nil,
	})
	if err != nil {
		e.logger.Warn("Command failed to launch", "command", command, "error", err)
		return "", err
	}
	e.logger.Debug("Command finished", "command", command, "bytes", len(out), "elapsed", elapsed)
	return out, nil
}

func (e *ShellExecutor) runDirect(ctx context.Context, command string) (string, error) {
	out, err := shellCommand(ctx, command).CombinedOutput()
	if err := e.classify(ctx, command, err); err != nil {
		return "", err
	}
	return string(out), nil
}

func (e *ShellExecutor) runTempFile(ctx context.Context, command string) (string, error) {
	artifact := e.artifactPath()
	defer os.Remove(artifact)

	line := e.profile.Redirect(command, artifact)
	if err := e.classify(ctx, command, shellCommand(ctx, line).Run()); err != nil {
		return "", err
	}

	data, err := os.ReadFile(artifact)
	if err != nil {
		e.logger.Debug("Output artifact unreadable, treating as empty", "path", artifact, "error", err)
		return "", nil
	}
	return string(data), nil
}

// artifactPath returns a path no other call will use.
func (e *ShellExecutor) artifactPath() string {
	return filepath.Join(e.tempDir, "renderwatch_"+uuid.NewString()+".out")
}

// classify separates "did not run" from "ran and failed". Only the former
// is an error; a non-zero exit still produced output worth parsing.
func (e *ShellExecutor) classify(ctx context.Context, command string, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &LaunchError{Command: command, Err: ctxErr}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == notFoundExitCode {
			return &LaunchError{Command: command, Err: ErrCommandNotFound}
		}
		return nil
	}
	return &LaunchError{Command: command, Err: err}
}
