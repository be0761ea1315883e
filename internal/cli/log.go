// Package cli implements the vankamp command-line interface.
//
// This package provides commands for refining planar drawings of edge lists,
// listing their cells, rendering saved layouts and managing the local cache.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - refine: Embed an edge list, run the optimizer and write the results
//   - cells: Print the bounded faces of the initial drawing
//   - render: Draw a layout.json as SVG, DOT, Graphviz SVG, PNG or PDF
//   - cache: Clear or locate the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which
// includes one line per optimizer pass.
//
// # Example
//
//	err := cli.New(os.Stderr, cli.LogInfo).Execute(ctx, os.Args[1:])
//	os.Exit(cli.ExitCode(err))
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w with "15:04:05.00" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of a step with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg followed by the elapsed time, e.g. "Extracted 12 cells (4ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
