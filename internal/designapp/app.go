// Package designapp runs lamp-design: FASTA in, ranked primer sets out.
package designapp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"lamp/internal/appshell"
	"lamp/internal/config"
	"lamp/internal/designcli"
	"lamp/internal/metrics"
	"lamp/internal/pipeline"
	"lamp/internal/pretty"
	"lamp/internal/store"
	"lamp/internal/tracing"
	"lamp/internal/version"
	"lamp/internal/writers"

	"lamp-core/lamp"
	"lamp-core/seq"
	"lamp-core/thermo"
)

const toolName = "lamp-design"

// outcome is the result of designing one target.
type outcome struct {
	sets    []lamp.PrimerSet
	err     error
	began   time.Time
	elapsed time.Duration
}

// RunContext parses argv, designs every input record and writes the
// results to stdout. It returns the process exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	opts, err := designcli.Parse(toolName, argv, outw)
	if errors.Is(err, designcli.ErrHandled) {
		return flush(outw, stderr, appshell.ExitOK)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\nRun '%s --help' for usage.\n", err, toolName)
		return appshell.ExitUsage
	}
	log := appshell.NewLogger(stderr, opts.Verbose, opts.Quiet)

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		return appshell.ExitUsage
	}
	if opts.PrintConfig {
		if err := config.Write(outw, cfg); err != nil {
			log.Error("print config", "err", err)
			return appshell.ExitOutput
		}
		return flush(outw, stderr, appshell.ExitOK)
	}

	rec := metrics.New()
	designer, err := lamp.NewDesigner(cfg.Constraints,
		lamp.WithLogger(log),
		lamp.WithSearchBounds(cfg.Search),
		lamp.WithObserver(rec.Observe),
		lamp.WithCalculator(thermo.NewCalculator(cfg.Constraints.Conditions)),
	)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		return appshell.ExitUsage
	}

	var db *store.Store
	if opts.DB != "" {
		if db, err = store.Open(ctx, opts.DB); err != nil {
			log.Error("open run store", "path", opts.DB, "err", err)
			return appshell.ExitOutput
		}
		defer func() { _ = db.Close() }()
	}
	cfgJSON, _ := json.Marshal(cfg)

	var traceFile io.Writer
	if opts.TraceOut != "" {
		f, err := os.Create(opts.TraceOut)
		if err != nil {
			log.Error("open trace output", "path", opts.TraceOut, "err", err)
			return appshell.ExitOutput
		}
		defer func() { _ = f.Close() }()
		traceFile = f
	}
	tracer, stopTracing, err := tracing.Setup(traceFile, toolName, version.Version)
	if err != nil {
		log.Error("start tracing", "err", err)
		return appshell.ExitOutput
	}
	defer func() {
		if err := stopTracing(context.Background()); err != nil {
			log.Warn("stop tracing", "err", err)
		}
	}()

	in, done := writers.StartDesignWriter(stdout, opts.Output, writers.Options{
		Header:  opts.Header,
		Pretty:  pretty.Options{Color: opts.Color},
		Tool:    toolName,
		Version: version.Version,
	}, 4)

	var targets, designed int
	storeFailed := false
	work := func(ctx context.Context, t seq.Sequence) outcome {
		ctx, span := tracer.Start(ctx, "design", trace.WithAttributes(
			attribute.String("target", t.Header),
			attribute.Int("length", t.Len()),
		))
		defer span.End()
		began := time.Now()
		sets, err := designer.Design(ctx, t, opts.Loops, opts.MaxSets)
		span.SetAttributes(
			attribute.Int("sets", len(sets)),
			attribute.String("status", metrics.Status(err)),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return outcome{sets: sets, err: err, began: began, elapsed: time.Since(began)}
	}
	visit := func(t seq.Sequence, o outcome) error {
		if errors.Is(o.err, context.Canceled) || errors.Is(o.err, context.DeadlineExceeded) {
			return o.err
		}
		targets++
		res := writers.Result{TargetID: t.Header, Length: t.Len()}
		if o.err != nil {
			res.Err = o.err
			log.Warn("no primer set", "target", t.Header, "length", t.Len(), "err", o.err)
		} else {
			res.Reports = lamp.Reports(t.Header, o.sets, cfg.Constraints)
			designed++
		}
		in <- res

		if db != nil {
			run := store.Run{
				Target:    t.Header,
				Length:    t.Len(),
				Status:    metrics.Status(o.err),
				Preset:    cfg.Preset,
				Config:    cfgJSON,
				CreatedAt: o.began,
				Elapsed:   o.elapsed,
			}
			if o.err != nil {
				run.Error = o.err.Error()
			}
			if _, err := db.SaveRun(ctx, run, res.Reports); err != nil {
				log.Error("store run", "target", t.Header, "err", err)
				storeFailed = true
			}
		}
		return nil
	}
	perr := pipeline.ForEachTarget(ctx, pipeline.Config{Threads: opts.Threads}, opts.Inputs, work, visit)
	close(in)
	werr := <-done

	if opts.MetricsOut != "" {
		if err := rec.WriteTextfile(opts.MetricsOut); err != nil {
			log.Error("write metrics", "path", opts.MetricsOut, "err", err)
			storeFailed = true
		}
	}

	var ie *pipeline.InputError
	switch {
	case errors.As(perr, &ie):
		log.Error("read input", "path", ie.Path, "err", ie.Err)
		return appshell.ExitUsage
	case perr != nil:
		log.Warn("interrupted", "designed", designed, "targets", targets, "err", perr)
		return appshell.ExitInterrupted
	case werr != nil:
		log.Error("write output", "err", werr)
		return appshell.ExitOutput
	case storeFailed:
		return appshell.ExitOutput
	case designed == 0:
		return appshell.ExitNoResult
	}
	log.Debug("run complete", "targets", targets, "designed", designed)
	return appshell.ExitOK
}

// loadConfig merges the config file, preset and environment, then applies
// the flag overrides.
func loadConfig(o designcli.Options) (config.Config, error) {
	cfg, err := config.Load(o.ConfigPath, o.Preset)
	if err != nil {
		return cfg, err
	}
	cond := &cfg.Constraints.Conditions
	for _, f := range []struct {
		flag  string
		value string
		dst   *float64
	}{
		{"--na", o.Na, &cond.NaM},
		{"--mg", o.Mg, &cond.MgM},
		{"--primer-conc", o.PrimerConc, &cond.PrimerM},
	} {
		if f.value == "" {
			continue
		}
		v, err := thermo.ParseConc(f.value)
		if err != nil {
			return cfg, fmt.Errorf("%s %q: %w", f.flag, f.value, err)
		}
		*f.dst = v
	}
	if o.NoParallel {
		cfg.Search.Parallel = false
	}
	return cfg, cfg.Validate()
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
