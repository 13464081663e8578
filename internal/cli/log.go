// Package cli implements the figx command-line interface: commands to
// inspect a workspace, fetch and import design assets from a remote
// design service, and manage the local evaluation cache.
//
// # Commands
//
// The main commands are:
//   - info: describe the workspace or a single package
//   - query: list resources matching a label pattern
//   - explain: print the Action Dependency Graph for a pattern
//   - fetch: warm the remote node index without materializing files
//   - import: run the full pipeline and write files to disk
//   - clean: remove cached entries
//   - auth: manage the resolved Figma access token
//
// # Logging
//
// All commands support --verbose (-v, repeatable) for debug-level logging.
// Loggers are passed through context.Context so nested operations can log
// without a package-level global (spec §7: "the core never prints
// directly" - only this package owns a logger instance).
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting. Timestamps are
// formatted as "HH:MM:SS.ms" (e.g. "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. Safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time since progress was created, rounded
// to the nearest millisecond. Example: "Imported 12 resources (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with l attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to
// log.Default() so commands always have a valid logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
