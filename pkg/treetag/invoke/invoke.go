package invoke

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/cognicore/treetag/pkg/treetag/internalerr"
)

// ToolError reports a tagger process that ran but exited nonzero. The
// captured stderr usually names the misconfigured resource file.
type ToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return fmt.Sprintf("tagger exited with code %d", e.ExitCode)
	}
	return fmt.Sprintf("tagger exited with code %d: %s", e.ExitCode, msg)
}

// Runner executes the external tagger. The zero value runs with no
// timeout and UTF-8 text.
type Runner struct {
	Encoding Encoding
	// Timeout bounds one invocation; zero means the caller's context
	// alone governs cancellation.
	Timeout time.Duration
}

// Run spawns exe with the given argv, writes the encoded input to its
// stdin, and returns its decoded stdout. Exactly one child process is
// started per call; it never outlives the call, timeout included.
//
// Stdin and stdout are pumped concurrently by os/exec, so large inputs
// cannot deadlock against a full output pipe.
func (r Runner) Run(ctx context.Context, exe string, args []string, input string) (string, error) {
	encoded, err := r.Encoding.Encode(input)
	if err != nil {
		return "", err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Stdin = bytes.NewReader(encoded)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// The tagger is often a wrapper script whose subprocess inherits
	// the output pipe; cancellation must kill the whole process group
	// or the grandchild survives and Wait blocks on the pipe copies
	// until it exits.
	setProcessGroup(cmd)
	cmd.WaitDelay = time.Second

	runErr := cmd.Run()
	if ctx.Err() != nil {
		// Cancellation has already killed the process group.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			if r.Timeout > 0 {
				return "", fmt.Errorf("%s after %s: %w", exe, r.Timeout, internalerr.ErrTimeout)
			}
			return "", fmt.Errorf("%s: %w", exe, internalerr.ErrTimeout)
		}
		return "", fmt.Errorf("%s: %w", exe, ctx.Err())
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			return "", &ToolError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return "", fmt.Errorf("%s: %v: %w", exe, runErr, internalerr.ErrLaunch)
	}

	out, err := r.Encoding.Decode(stdout.Bytes())
	if err != nil {
		return "", fmt.Errorf("%s: %w", exe, err)
	}
	return out, nil
}
