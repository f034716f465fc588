package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/danmuck/atlas/internal/tools"
	"github.com/rs/zerolog/log"
)

// ExitUsage is returned when no recognized command was given.
const ExitUsage = 2

// ErrWorkingDir is returned when a command needs the working directory and
// it cannot be determined.
var ErrWorkingDir = errors.New("working directory unavailable")

// Dispatcher maps a command name to exactly one external invocation.
type Dispatcher struct {
	Program  string
	Registry *Registry
	Runner   tools.CommandRunner
	Stderr   io.Writer
	Getwd    func() (string, error)
}

// NewDispatcher wires a dispatcher over the embedded command table.
func NewDispatcher(runner tools.CommandRunner, stderr io.Writer) *Dispatcher {
	return &Dispatcher{
		Program:  "atlas",
		Registry: Default(),
		Runner:   runner,
		Stderr:   stderr,
		Getwd:    os.Getwd,
	}
}

// Resolve builds the invocation for name without running it.
func (d *Dispatcher) Resolve(name string, trailingArgs []string) (tools.Invocation, error) {
	cmd, ok := d.Registry.Resolve(name)
	if !ok {
		return tools.Invocation{}, fmt.Errorf("%w: %q", ErrUnrecognizedCommand, name)
	}

	cwd := ""
	if cmd.NeedsCwd() {
		dir, err := d.workingDir()
		if err != nil {
			return tools.Invocation{}, fmt.Errorf("%w: %v", ErrWorkingDir, err)
		}
		cwd = dir
	}
	log.Debug().Str("command", cmd.Name).Str("description", cmd.Description).Msg("resolved command")

	args := make([]string, 0, len(cmd.Args)+len(trailingArgs))
	for _, arg := range cmd.Args {
		if arg == ArgsMarker {
			args = append(args, trailingArgs...)
			continue
		}
		args = append(args, strings.ReplaceAll(arg, CwdMarker, cwd))
	}
	if !cmd.ForwardArgs && len(trailingArgs) > 0 {
		log.Debug().Str("command", name).Strs("dropped", trailingArgs).Msg("command does not forward arguments")
	}
	return tools.Invocation{Program: cmd.Program, Args: args}, nil
}

// Dispatch runs the command named name and returns the exit status the
// process should report. Unrecognized names spawn nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, trailingArgs []string) int {
	inv, err := d.Resolve(name, trailingArgs)
	if errors.Is(err, ErrUnrecognizedCommand) {
		log.Debug().Str("command", name).Msg("unrecognized command")
		d.Usage()
		return ExitUsage
	}
	if err != nil {
		fmt.Fprintf(d.Stderr, "%s: %v\n", d.Program, err)
		return tools.ExitFailure
	}

	log.Debug().Str("command", name).Msgf("+ %s", inv)
	code, err := d.Runner.Run(ctx, inv)
	if err != nil {
		log.Debug().Err(err).Str("command", name).Int("exit_code", code).Msg("command failed")
		if code == tools.ExitNotFound {
			// No child ran, so nothing else will explain the failure.
			fmt.Fprintf(d.Stderr, "%s: %v\n", d.Program, err)
		}
	}
	return code
}

// Usage writes the two-line usage message to the error stream.
func (d *Dispatcher) Usage() {
	fmt.Fprintf(d.Stderr, "usage: %s <command> [ARGS...]\n", d.Program)
	fmt.Fprintf(d.Stderr, "commands: %s\n", strings.Join(d.Registry.Names(), ", "))
}

func (d *Dispatcher) workingDir() (string, error) {
	getwd := d.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	dir, err := getwd()
	if err != nil {
		return "", err
	}
	return filepath.Abs(dir)
}
