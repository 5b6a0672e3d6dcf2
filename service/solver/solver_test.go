package solver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testExecConfig() ExecConfig {
	return ExecConfig{
		CompileTimeout: 5 * time.Second,
		RunTimeout:     5 * time.Second,
		LogLimit:       1024,
	}
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
}

func newSolverDir(t *testing.T, name, runBody string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeScript(t, dir, "run", runBody)
	return dir
}

func TestLoad(t *testing.T) {
	dir := newSolverDir(t, "greedy", "cat")
	s, err := Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Name != "greedy" {
		t.Errorf("unexpected name %q", s.Name)
	}
	if s.HasCompile {
		t.Error("solver should have no compile step")
	}

	writeScript(t, dir, "compile", "true")
	s, err = Load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !s.HasCompile {
		t.Error("compile step not detected")
	}
}

func TestLoadRejectsBrokenDirs(t *testing.T) {
	empty := t.TempDir()
	if _, err := Load(filepath.Join(empty, "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}

	noRun := filepath.Join(t.TempDir(), "norun")
	if err := os.Mkdir(noRun, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(noRun); err == nil {
		t.Error("expected an error for a solver without run")
	}

	// A run file without the executable bit is rejected.
	notExec := filepath.Join(t.TempDir(), "notexec")
	if err := os.Mkdir(notExec, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(notExec, "run"), []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(notExec); err == nil {
		t.Error("expected an error for a non-executable run")
	}
}

func TestDiscoverSkipsInvalid(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good")
	if err := os.Mkdir(good, 0o755); err != nil {
		t.Fatal(err)
	}
	writeScript(t, good, "run", "cat")
	if err := os.Mkdir(filepath.Join(root, "bad"), 0o755); err != nil {
		t.Fatal(err)
	}

	solvers, err := Discover(root)
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}
	if len(solvers) != 1 || solvers[0].Name != "good" {
		t.Errorf("unexpected solvers: %+v", solvers)
	}
}

func TestRunEchoesStdin(t *testing.T) {
	dir := newSolverDir(t, "echo", "cat")
	s, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := s.Run(context.Background(), testExecConfig(), []byte("1 2\n"))
	if err != nil {
		t.Fatalf("run failed: %v (stderr %q)", err, stderr)
	}
	if string(stdout) != "1 2\n" {
		t.Errorf("unexpected stdout %q", stdout)
	}
}

func TestRunCapturesStderr(t *testing.T) {
	dir := newSolverDir(t, "noisy", "echo out; echo log >&2")
	s, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	stdout, stderr, err := s.Run(context.Background(), testExecConfig(), nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if strings.TrimSpace(string(stdout)) != "out" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if strings.TrimSpace(string(stderr)) != "log" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRunNonZeroExitIsError(t *testing.T) {
	dir := newSolverDir(t, "crash", "exit 3")
	s, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Run(context.Background(), testExecConfig(), nil); err == nil {
		t.Error("expected an error for a non-zero exit")
	}
}

func TestRunTimeout(t *testing.T) {
	dir := newSolverDir(t, "slow", "sleep 30")
	s, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := testExecConfig()
	cfg.RunTimeout = 200 * time.Millisecond
	start := time.Now()
	_, _, err = s.Run(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestCompile(t *testing.T) {
	dir := newSolverDir(t, "compiled", "cat")
	writeScript(t, dir, "compile", "echo building")
	s, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	out, err := s.Compile(context.Background(), testExecConfig())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if strings.TrimSpace(string(out)) != "building" {
		t.Errorf("unexpected compile log %q", out)
	}

	// No compile step is a no-op.
	plain, err := Load(newSolverDir(t, "plain", "cat"))
	if err != nil {
		t.Fatal(err)
	}
	if out, err := plain.Compile(context.Background(), testExecConfig()); err != nil || out != nil {
		t.Errorf("expected no-op compile, got %q, %v", out, err)
	}
}
