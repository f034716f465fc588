package main

import (
	"context"
	"io"
	"os"

	"github.com/danmuck/atlas/internal/logging"
	"github.com/danmuck/atlas/internal/tasks"
	"github.com/danmuck/atlas/internal/tools"
)

func main() {
	logging.ConfigureRuntime()
	os.Exit(run(context.Background(), os.Args[1:], tools.ExecRunner{}, os.Stderr))
}

// run dispatches argv (without the program name) and returns the exit status.
func run(ctx context.Context, argv []string, runner tools.CommandRunner, stderr io.Writer) int {
	d := tasks.NewDispatcher(runner, stderr)
	req, ok := tasks.ParseRequest(argv)
	if !ok {
		d.Usage()
		return tasks.ExitUsage
	}
	return d.Dispatch(ctx, req.Name, req.Args)
}
