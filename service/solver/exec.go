package solver

import (
	"bytes"
	"context"
	"os/exec"
	"syscall"
	"time"

	"tourjudge/utils"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ExecConfig bounds solver child processes.
type ExecConfig struct {
	CompileTimeout time.Duration
	RunTimeout     time.Duration

	// LogLimit caps the size of captured compile logs and stderr.
	LogLimit int64
}

// Compile runs the solver's compile step, if any, and returns its combined
// output. The caller persists the log regardless of success.
func (s *Solver) Compile(ctx context.Context, cfg ExecConfig) ([]byte, error) {
	if !s.HasCompile {
		return nil, nil
	}
	log.WithField("solver", s.Name).Info("Compiling solver")
	out, _, err := s.execute(ctx, "./compile", nil, cfg.CompileTimeout, true)
	if err != nil {
		return truncate(out, cfg.LogLimit), errors.Wrapf(err, "compile solver %s", s.Name)
	}
	return truncate(out, cfg.LogLimit), nil
}

// Run feeds stdin to the solver's run executable and returns its stdout
// and stderr. Stdout is never truncated: it is the candidate tour to be
// scored. Stderr is capped at LogLimit.
func (s *Solver) Run(ctx context.Context, cfg ExecConfig, stdin []byte) ([]byte, []byte, error) {
	stdout, stderr, err := s.execute(ctx, "./run", stdin, cfg.RunTimeout, false)
	if err != nil {
		return stdout, truncate(stderr, cfg.LogLimit), errors.Wrapf(err, "run solver %s", s.Name)
	}
	return stdout, truncate(stderr, cfg.LogLimit), nil
}

// execute starts name in the solver directory in its own process group and
// waits for it, killing the whole process tree on timeout. Solvers are
// trusted enough to run unsandboxed; the wall timeout is the only limit.
func (s *Solver) execute(
	ctx context.Context, name string, stdin []byte, timeout time.Duration, combined bool,
) ([]byte, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command(name)
	cmd.Dir = s.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	if combined {
		cmd.Stderr = &outBuf
	} else {
		cmd.Stderr = &errBuf
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, errors.Wrapf(err, "start %s", name)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		utils.KillProcessTree(cmd.Process.Pid)
		if err != nil {
			return outBuf.Bytes(), errBuf.Bytes(), err
		}
		return outBuf.Bytes(), errBuf.Bytes(), nil
	case <-ctx.Done():
		utils.KillProcessTree(cmd.Process.Pid)
		<-done
		return outBuf.Bytes(), errBuf.Bytes(), errors.Errorf("%s timed out", name)
	}
}

func truncate(b []byte, limit int64) []byte {
	if limit > 0 && int64(len(b)) > limit {
		return b[:limit]
	}
	return b
}
