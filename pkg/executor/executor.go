package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/classroom-report/pkg/errors"
)

var execCommand = exec.CommandContext // mockable

// Command describes one invocation of an external program.
type Command struct {
	Args []string
	// Env is overlaid on the parent environment.
	Env map[string]string
	// DecodeJSON asks for stdout to be decoded as JSON.
	DecodeJSON bool
	// Paginated marks stdout as a stream of one JSON array per page.
	Paginated bool
}

// Result is the outcome of a successful run. JSON is set only when decoding was requested.
type Result struct {
	Stdout string
	Stderr string
	Status int
	JSON   []byte
}

// Runner executes commands to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// ProcessRunner runs commands as child processes.
type ProcessRunner struct {
	logger *zap.Logger
}

// NewProcessRunner constructs a ProcessRunner.
func NewProcessRunner(logger *zap.Logger) *ProcessRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessRunner{logger: logger}
}

// Run starts the command, waits for it and captures both output streams. A start
// failure or nonzero exit yields an EXECUTION_ERROR carrying stderr; undecodable
// stdout yields a DECODE_ERROR. No partial result is returned with an error.
func (r *ProcessRunner) Run(ctx context.Context, cmd Command) (*Result, error) {
	if len(cmd.Args) == 0 {
		return nil, appErrors.Clone(appErrors.ErrExecution, "cannot run program: empty command")
	}

	c := execCommand(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Env = mergeEnv(os.Environ(), cmd.Env)
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	start := time.Now()
	err := c.Run()
	elapsed := time.Since(start)

	res := &Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.logger.Debug("command did not start", zap.Strings("args", cmd.Args), zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrExecution.Code, appErrors.StatusNotStarted, "cannot run program")
		}
		res.Status = exitErr.ExitCode()
		r.logger.Debug("command failed",
			zap.Strings("args", cmd.Args),
			zap.Int("status", res.Status),
			zap.Duration("elapsed", elapsed),
		)
		return nil, exitError(res)
	}

	r.logger.Debug("command finished",
		zap.Strings("args", cmd.Args),
		zap.Int("stdout_bytes", stdout.Len()),
		zap.Duration("elapsed", elapsed),
	)

	if cmd.DecodeJSON {
		raw, err := DecodeJSON(stdout.Bytes(), cmd.Paginated)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrDecode.Code, appErrors.StatusBadJSON, "cannot decode JSON")
		}
		res.JSON = raw
	}
	return res, nil
}

func exitError(res *Result) *appErrors.Error {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("command exited with status %d", res.Status)
	}
	e := appErrors.Clone(appErrors.ErrExecution, msg)
	e.ExitStatus = res.Status
	return e
}

// mergeEnv overlays extra on base. Overlay keys replace existing entries; output is
// deterministic.
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		key := kv
		if i := strings.IndexByte(kv, '='); i >= 0 {
			key = kv[:i]
		}
		if _, replaced := extra[key]; replaced {
			continue
		}
		out = append(out, kv)
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}
