// Package cli implements the libpanel command-line interface.
//
// The CLI stands in for a host launcher: it renders the detail panel of a
// library record in the terminal, resolves the package author from the npm
// registry, serves panels to other hosts over HTTP, and manages the registry
// response cache. Commands are built with cobra and log through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - show: Render a library record, interactively or once with --plain
//   - lookup: Resolve the author of an npm package
//   - serve: Serve panels and author lookups over HTTP
//   - cache: Manage the registry response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
//
// # Example
//
//	import "github.com/matzehuels/libpanel/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// startTimer returns a func that logs msg at info level with the time
// elapsed since startTimer was called.
func startTimer(l *log.Logger) func(msg string, keyvals ...any) {
	start := time.Now()
	return func(msg string, keyvals ...any) {
		keyvals = append(keyvals, "elapsed", time.Since(start).Round(time.Millisecond))
		l.Info(msg, keyvals...)
	}
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
