// Command albayan browses an assessment platform's candidates, tests and
// question bank from the terminal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mannit-co/albayan/internal/cli"
	"github.com/mannit-co/albayan/pkg/version"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.String())
	return root.ExecuteContext(ctx)
}

// exitCode maps an error returned by run to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
