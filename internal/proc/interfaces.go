package proc

import "context"

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/pranshuparmar/renderwatch/internal/proc Executor

// Executor runs one shell command line and returns everything it printed.
// A *LaunchError means the command never ran; any other outcome, including
// a non-zero exit, is reported through the returned text.
type Executor interface {
	Run(ctx context.Context, command string) (string, error)
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(ctx context.Context, command string) (string, error)

func (f ExecutorFunc) Run(ctx context.Context, command string) (string, error) {
	return f(ctx, command)
}
