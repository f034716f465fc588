package tools

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
)

const (
	// ExitNotFound is reported when the program could not be located.
	ExitNotFound = 127
	// ExitFailure is reported for start failures without an exit status.
	ExitFailure = 1
)

// Invocation is one fully resolved child process.
type Invocation struct {
	Program string
	Args    []string
}

// String renders the invocation for trace logs.
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Program}, i.Args...), " ")
}

// CommandRunner abstracts process execution for the dispatcher.
type CommandRunner interface {
	Run(ctx context.Context, inv Invocation) (int, error)
}

// ExecRunner executes invocations on the local host, blocking until exit.
// Nil streams default to the current process's stdio.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// tools command-runner implementation backed by os/exec.
//
// While the child runs, SIGINT and SIGTERM no longer terminate this process.
// A terminal interrupt already reaches the child through the foreground
// process group; SIGTERM is relayed to the child. Either way the runner waits
// and reports the child's own status.
func (r ExecRunner) Run(ctx context.Context, inv Invocation) (int, error) {
	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Stdin = pickReader(r.Stdin, os.Stdin)
	cmd.Stdout = pickWriter(r.Stdout, os.Stdout)
	cmd.Stderr = pickWriter(r.Stderr, os.Stderr)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	if err := cmd.Start(); err != nil {
		return ExitCode(err), err
	}

	done := make(chan struct{})
	defer close(done)
	go relaySignals(cmd.Process, sigs, done)

	err := cmd.Wait()
	return ExitCode(err), err
}

func relaySignals(proc *os.Process, sigs <-chan os.Signal, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case sig := <-sigs:
			if sig == syscall.SIGTERM {
				_ = proc.Signal(sig)
			}
		}
	}
}

// ExitCode maps a process error to the status the caller should exit with.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			return 128 + int(status.Signal())
		}
		return ExitFailure
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return ExitNotFound
	}
	return ExitFailure
}

func pickReader(r io.Reader, fallback io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func pickWriter(w io.Writer, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
