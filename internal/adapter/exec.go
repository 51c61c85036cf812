package adapter

import (
	"context"
	"os/exec"
)

// CommandRunner defines an interface for running external binaries (ffmpeg,
// ffprobe) to enable mocking. The transcoder itself is an external
// collaborator; this is only the process boundary.
//
//go:generate mockgen -source=exec.go -destination=../mocks/exec.go -package=mocks -mock_names=CommandRunner=MockCommandRunner
type CommandRunner interface {
	// Run executes the named binary with args and returns combined output
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealCommandRunner implements CommandRunner using os/exec
type RealCommandRunner struct{}

// NewCommandRunner creates a new real command runner
func NewCommandRunner() CommandRunner {
	return &RealCommandRunner{}
}

// Run executes the named binary with args and returns combined output
func (r *RealCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec,G204
}
