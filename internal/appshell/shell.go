package appshell

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Process exit codes shared by the lamp tools.
const (
	ExitOK          = 0
	ExitNoResult    = 1 // no primer set could be designed
	ExitUsage       = 2 // bad flags, config or input
	ExitOutput      = 3 // writing results failed
	ExitInterrupted = 130
)

// Main runs an app with a context cancelled on SIGINT/SIGTERM and exits
// with its code.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"--help"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	if ctx.Err() != nil && code == ExitOK {
		code = ExitInterrupted
	}

	stop()
	os.Exit(code)
}

// NewLogger returns a text logger on w. verbose selects Debug, quiet Warn;
// the default level is Info.
func NewLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
