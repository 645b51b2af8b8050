package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes the ffmpeg binary. The default runs a real process; tests
// substitute their own.
type Runner interface {
	// Run executes bin with args in dir and returns its combined output.
	Run(ctx context.Context, dir, bin string, args ...string) ([]byte, error)
}

// ExecRunner runs ffmpeg as a child process.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, bin string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return out.Bytes(), fmt.Errorf("ffmpeg command failed: %w", ctxErr)
		}
		return out.Bytes(), fmt.Errorf("ffmpeg command failed: %w: %s", err, tail(out.String(), 4))
	}
	return out.Bytes(), nil
}

// tail keeps the last n non-empty lines of ffmpeg's output, where the
// actual error is.
func tail(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(s), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
