package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/bump-fr/yt-dlp-api/internal/config"
	"github.com/bump-fr/yt-dlp-api/internal/utils"
)

var (
	ErrTimeout        = errors.New("yt-dlp timed out")
	ErrOutputTooLarge = errors.New("yt-dlp output exceeded limit")
	ErrInvalidOutput  = errors.New("yt-dlp returned invalid output")
	ErrInvalidURL     = errors.New("invalid media URL")
	ErrNoOutputLimit  = errors.New("yt-dlp output limit must be positive")
)

// stderrTailLimit bounds how much of yt-dlp's stderr is kept for errors.
const stderrTailLimit = 4 * 1024

// ExitError is returned when yt-dlp exits with a non-zero status.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("yt-dlp exited with status %d", e.Code)
	}
	return fmt.Sprintf("yt-dlp exited with status %d: %s", e.Code, e.Stderr)
}

type runTimeoutKey struct{}

// WithRunTimeout caps the run time of tool calls made with the returned
// context. It can only shorten the runner's own Timeout.
func WithRunTimeout(ctx context.Context, d time.Duration) context.Context {
	return context.WithValue(ctx, runTimeoutKey{}, d)
}

func runTimeout(ctx context.Context, fallback time.Duration) time.Duration {
	if d, ok := ctx.Value(runTimeoutKey{}).(time.Duration); ok && d > 0 && d < fallback {
		return d
	}
	return fallback
}

// ExecRunner runs the yt-dlp binary as a subprocess.
type ExecRunner struct {
	Path      string
	Timeout   time.Duration
	MaxOutput int64
}

func NewExecRunner(cfg *config.YtDlpConfig) *ExecRunner {
	return &ExecRunner{
		Path:      cfg.Path,
		Timeout:   cfg.Timeout,
		MaxOutput: cfg.MaxOutputBytes,
	}
}

// Run executes yt-dlp and returns its stdout. Cancelling ctx does not stop
// the process: it runs until it exits, hits Timeout (or a shorter
// WithRunTimeout) or writes more than MaxOutput bytes.
func (r *ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.MaxOutput <= 0 {
		return nil, ErrNoOutputLimit
	}

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), runTimeout(ctx, r.Timeout))
	defer cancel()

	stdout := &limitedBuffer{limit: r.MaxOutput, onOverflow: cancel}
	stderr := &tailBuffer{limit: stderrTailLimit}

	cmd := exec.CommandContext(runCtx, r.Path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = 5 * time.Second

	utils.LogDebug(ctx, "Running yt-dlp", utils.Fields{
		"path": r.Path,
		"args": args,
	})

	start := time.Now()
	err := cmd.Run()
	fields := utils.Fields{
		"duration_ms":  time.Since(start).Milliseconds(),
		"stdout_bytes": stdout.buf.Len(),
	}

	switch {
	case stdout.overflowed:
		utils.LogWarn(ctx, "yt-dlp output exceeded limit", fields)
		return nil, ErrOutputTooLarge
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		utils.LogWarn(ctx, "yt-dlp timed out", fields)
		return nil, ErrTimeout
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			fields["exit_code"] = exitErr.ExitCode()
			utils.LogWarn(ctx, "yt-dlp exited with error", fields)
			return nil, &ExitError{
				Code:   exitErr.ExitCode(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		utils.LogError(ctx, "Failed to run yt-dlp", err, fields)
		return nil, fmt.Errorf("failed to run yt-dlp: %w", err)
	}

	utils.LogInfo(ctx, "yt-dlp completed", fields)
	return stdout.buf.Bytes(), nil
}

// limitedBuffer collects output up to limit bytes. The first write past the
// limit marks the buffer, calls onOverflow and fails, which stops the copy.
type limitedBuffer struct {
	buf        bytes.Buffer
	limit      int64
	overflowed bool
	onOverflow func()
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if b.overflowed {
		return 0, ErrOutputTooLarge
	}
	if int64(b.buf.Len()+len(p)) > b.limit {
		b.overflowed = true
		if b.onOverflow != nil {
			b.onOverflow()
		}
		return 0, ErrOutputTooLarge
	}
	return b.buf.Write(p)
}

// tailBuffer keeps only the last limit bytes written to it.
type tailBuffer struct {
	buf   []byte
	limit int
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if len(b.buf) > b.limit {
		b.buf = append(b.buf[:0], b.buf[len(b.buf)-b.limit:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	return string(b.buf)
}
