// Package designcli parses the lamp-design command line.
package designcli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lamp/internal/version"
	"lamp/internal/writers"

	"lamp-core/lamp"
)

// ErrHandled is returned when help or version output was printed and the
// run should stop with success.
var ErrHandled = errors.New("handled")

// Options is the parsed lamp-design command line.
type Options struct {
	Inputs     []string // FASTA paths; "-" is stdin
	ConfigPath string
	Preset     string

	MaxSets    int
	Loops      bool
	NoParallel bool
	Threads    int // targets designed concurrently; 0 means all CPUs

	// Reaction overrides; empty keeps the configured value.
	Na         string
	Mg         string
	PrimerConc string

	Output string
	Header bool
	Color  bool

	DB         string
	MetricsOut string
	TraceOut   string

	PrintConfig bool
	Verbose     bool
	Quiet       bool
}

// DefaultMaxSets is the --max-sets default.
const DefaultMaxSets = 5

// NewCommand builds the cobra command of name. run is invoked with the
// validated options.
func NewCommand(name string, run func(cmd *cobra.Command, o Options) error) *cobra.Command {
	var o Options
	cmd := &cobra.Command{
		Use:   name + " [flags] [target.fa[.gz] ...]",
		Short: "Design RT-LAMP primer sets (F3, B3, FIP, BIP, optional LF/LB) for FASTA targets",
		Long: name + ` designs ranked RT-LAMP primer sets for every record of the input
FASTA files. Records are searched in overlapping regions; each set is checked
against the geometric rules of the LAMP amplicon and scored on Tm uniformity,
primer quality and amplicon size.

Configuration priority: flags, LAMP_* environment, --config file, --preset,
built-in defaults.`,
		Example: "  " + name + " --loops -o tsv --header target.fa\n" +
			"  " + name + " --preset gene_expression --config rules.yaml -n 10 genes.fa.gz\n" +
			"  cat target.fa | " + name + " -o json -",
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Inputs = append(o.Inputs, args...)
			if err := o.validate(); err != nil {
				return err
			}
			return run(cmd, o)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	f := cmd.Flags()
	f.SortFlags = false
	f.StringArrayVarP(&o.Inputs, "input", "i", nil, "FASTA input (repeatable; - for stdin)")
	f.StringVarP(&o.ConfigPath, "config", "c", "", "YAML or JSON config file")
	f.StringVarP(&o.Preset, "preset", "p", "", "rule preset: "+strings.Join(lamp.PresetNames(), " | "))
	f.IntVarP(&o.MaxSets, "max-sets", "n", DefaultMaxSets, "primer sets reported per target")
	f.BoolVar(&o.Loops, "loops", false, "also design loop primers (LF/LB)")
	f.BoolVar(&o.NoParallel, "no-parallel", false, "generate candidates on one goroutine")
	f.IntVarP(&o.Threads, "threads", "t", 0, "targets designed concurrently (0 = all CPUs)")
	f.StringVar(&o.Na, "na", "", "monovalent salt, e.g. 50mM (overrides config)")
	f.StringVar(&o.Mg, "mg", "", "Mg2+, e.g. 8mM (overrides config)")
	f.StringVar(&o.PrimerConc, "primer-conc", "", "primer concentration, e.g. 250nM (overrides config)")
	f.StringVarP(&o.Output, "output", "o", "text", "output format: "+strings.Join(writers.DesignWriters.Formats(), " | "))
	f.BoolVar(&o.Header, "header", false, "print the TSV header row")
	f.BoolVar(&o.Color, "color", false, "colour the text report")
	f.StringVar(&o.DB, "db", "", "record runs in this SQLite database")
	f.StringVar(&o.MetricsOut, "metrics-out", "", "write Prometheus textfile metrics here")
	f.StringVar(&o.TraceOut, "trace-out", "", "write one JSON trace span per target here")
	f.BoolVar(&o.PrintConfig, "print-config", false, "print the effective config as YAML and exit")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "debug logging")
	f.BoolVarP(&o.Quiet, "quiet", "q", false, "warnings and errors only")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	return cmd
}

func (o Options) validate() error {
	if len(o.Inputs) == 0 && !o.PrintConfig {
		return errors.New("at least one FASTA input is required (positional or --input)")
	}
	if o.MaxSets < 1 {
		return fmt.Errorf("--max-sets must be >= 1 (got %d)", o.MaxSets)
	}
	if o.Threads < 0 {
		return fmt.Errorf("--threads must be >= 0 (got %d)", o.Threads)
	}
	if _, err := writers.DesignWriters.Lookup(o.Output); err != nil {
		return err
	}
	if o.Header && o.Output != "tsv" {
		return errors.New("--header only applies to -o tsv")
	}
	return nil
}

// Parse parses argv. Help and version text go to out and yield ErrHandled.
func Parse(name string, argv []string, out io.Writer) (Options, error) {
	var got *Options
	cmd := NewCommand(name, func(_ *cobra.Command, o Options) error {
		got = &o
		return nil
	})
	cmd.SetArgs(argv)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err != nil {
		return Options{}, err
	}
	if got == nil {
		return Options{}, ErrHandled
	}
	return *got, nil
}
