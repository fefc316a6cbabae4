// Package thermoapp runs lamp-thermo.
package thermoapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"lamp/internal/appshell"
	"lamp/internal/pretty"
	"lamp/internal/thermocli"
	"lamp/internal/writers"

	"lamp-core/seq"
	"lamp-core/thermo"
)

const toolName = "lamp-thermo"

// RunContext characterizes one oligo, or the duplexes of two, and returns
// the process exit code.
func RunContext(_ context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	opts, err := thermocli.Parse(toolName, argv, outw)
	if errors.Is(err, thermocli.ErrHandled) {
		return flush(outw, stderr, appshell.ExitOK)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun '%s --help' for usage.\n", err, toolName)
		return appshell.ExitUsage
	}

	seqs := make([]string, len(opts.Seqs))
	for i, raw := range opts.Seqs {
		s, err := seq.Validate(raw)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: oligo %d: %v\n", i+1, err)
			return appshell.ExitUsage
		}
		seqs[i] = s
	}

	calc := thermo.NewCalculator(opts.Conditions, thermo.WithEndLength(opts.EndLength))
	var t writers.Thermo
	if len(seqs) == 1 {
		rep, err := calc.Report(seqs[0])
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return appshell.ExitUsage
		}
		t.Report = &rep
	} else {
		t.A, t.B = seqs[0], seqs[1]
		t.Dimers = calc.Dimers(t.A, t.B)
		if len(t.Dimers) > opts.MaxDimers {
			t.Dimers = t.Dimers[:opts.MaxDimers]
		}
	}

	wopt := writers.Options{Pretty: pretty.Options{Color: opts.Color}}
	if err := writers.WriteThermo(outw, opts.Output, t, wopt); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appshell.ExitOutput
	}
	return flush(outw, stderr, appshell.ExitOK)
}

func flush(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); err != nil && !writers.IsBrokenPipe(err) {
		_, _ = fmt.Fprintln(stderr, err)
		return appshell.ExitOutput
	}
	return code
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
