// Package thermocli parses the lamp-thermo command line.
package thermocli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"lamp/internal/version"
	"lamp/internal/writers"

	"lamp-core/thermo"
)

// ErrHandled is returned when help or version output was printed.
var ErrHandled = errors.New("handled")

// Options is the parsed lamp-thermo command line.
type Options struct {
	Seqs []string // one oligo, or two for the duplex table

	Conditions thermo.Conditions
	EndLength  int
	MaxDimers  int

	Output string
	Color  bool
}

// Parse parses argv. Help and version text go to out and yield ErrHandled.
func Parse(name string, argv []string, out io.Writer) (Options, error) {
	var (
		o                 Options
		na, mg, primerStr string
		ran               bool
	)
	def := thermo.DefaultConditions()
	cmd := &cobra.Command{
		Use:   name + " [flags] SEQ [SEQ2]",
		Short: "Thermodynamic report of an oligo, or the duplexes between two",
		Long: name + ` reports Tm, ΔG37, 3' end stability, hairpins and self-dimers of
one oligo under SantaLucia nearest-neighbour parameters. With two oligos it
lists the most stable duplexes between them.`,
		Example:       "  " + name + " ACGTGCGCATTTGACCTAGC\n  " + name + " --mg 8mM -o json ACGTGCGCATTT GGGAATGCGCAC",
		Version:       version.Version,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.Seqs = args
			c, err := conditions(na, mg, primerStr)
			if err != nil {
				return err
			}
			o.Conditions = c
			if o.EndLength < 2 {
				return fmt.Errorf("--end-length must be >= 2 (got %d)", o.EndLength)
			}
			if o.MaxDimers < 1 {
				return fmt.Errorf("--max-dimers must be >= 1 (got %d)", o.MaxDimers)
			}
			if _, err := writers.ThermoWriters.Lookup(o.Output); err != nil {
				return err
			}
			ran = true
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Name}} version {{.Version}}\n")

	f := cmd.Flags()
	f.SortFlags = false
	f.StringVar(&na, "na", formatConc(def.NaM), "monovalent salt, e.g. 50mM")
	f.StringVar(&mg, "mg", formatConc(def.MgM), "Mg2+, e.g. 2mM")
	f.StringVar(&primerStr, "primer-conc", formatConc(def.PrimerM), "primer concentration, e.g. 250nM")
	f.IntVar(&o.EndLength, "end-length", thermo.DefaultEndLength, "3' window for end stability")
	f.IntVar(&o.MaxDimers, "max-dimers", 3, "duplexes listed for two oligos")
	f.StringVarP(&o.Output, "output", "o", "text", "output format: "+strings.Join(writers.ThermoWriters.Formats(), " | "))
	f.BoolVar(&o.Color, "color", false, "colour the text report")

	cmd.SetArgs(argv)
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err != nil {
		return Options{}, err
	}
	if !ran {
		return Options{}, ErrHandled
	}
	return o, nil
}

func conditions(na, mg, primer string) (thermo.Conditions, error) {
	var c thermo.Conditions
	for _, f := range []struct {
		flag  string
		value string
		dst   *float64
	}{
		{"--na", na, &c.NaM},
		{"--mg", mg, &c.MgM},
		{"--primer-conc", primer, &c.PrimerM},
	} {
		v, err := thermo.ParseConc(f.value)
		if err != nil {
			return c, fmt.Errorf("%s %q: %w", f.flag, f.value, err)
		}
		*f.dst = v
	}
	if c.PrimerM <= 0 {
		return c, errors.New("--primer-conc must be > 0")
	}
	if thermo.EffectiveMonovalent(c.NaM, c.MgM) <= 0 {
		return c, errors.New("--na and --mg cannot both be zero")
	}
	return c, nil
}

// formatConc renders mol/L with the largest unit that keeps an integer-ish value.
func formatConc(m float64) string {
	switch {
	case m >= 1e-3:
		return fmt.Sprintf("%gmM", m*1e3)
	case m >= 1e-6:
		return fmt.Sprintf("%guM", m*1e6)
	default:
		return fmt.Sprintf("%gnM", m*1e9)
	}
}
