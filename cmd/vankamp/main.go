// Command vankamp refines planar drawings of Van Kampen diagrams.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matzehuels/vankamp/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.New(os.Stderr, cli.LogInfo).Execute(ctx, os.Args[1:])
	stop()

	code := cli.ExitCode(err)
	if err != nil && code != cli.ExitInterrupted {
		fmt.Fprintln(os.Stderr, "vankamp:", err)
	}
	os.Exit(code)
}
