package writers

import (
	"io"
	"strings"

	"lamp/internal/encode"
	"lamp/internal/pretty"
	"lamp/pkg/api"

	"lamp-core/thermo"
)

// Thermo is the payload of lamp-thermo: either a single-oligo Report, or
// the duplexes between oligos A and B.
type Thermo struct {
	Report *thermo.Report
	A, B   string
	Dimers []thermo.Dimer
}

func (t Thermo) wire() any {
	if t.Report != nil {
		return ToAPIThermo(*t.Report)
	}
	ds := ToAPIDuplexes(t.A, t.B, t.Dimers)
	if ds == nil {
		ds = []api.DuplexV1{}
	}
	return ds
}

// WriteThermo writes t in format.
func WriteThermo(out io.Writer, format string, t Thermo, opt Options) error {
	fn, err := ThermoWriters.Lookup(format)
	if err != nil {
		return err
	}
	return quiet(fn(out, t, opt))
}

func init() {
	ThermoWriters.Register("text", func(w io.Writer, t Thermo, opt Options) error {
		if t.Report != nil {
			_, err := io.WriteString(w, pretty.RenderThermo(*t.Report, opt.Pretty))
			return err
		}
		if len(t.Dimers) == 0 {
			_, err := io.WriteString(w, "no duplex with dG < 0\n")
			return err
		}
		parts := make([]string, 0, len(t.Dimers))
		for _, d := range t.Dimers {
			parts = append(parts, pretty.RenderDuplex(t.A, t.B, d, opt.Pretty))
		}
		_, err := io.WriteString(w, strings.Join(parts, "\n"))
		return err
	})
	ThermoWriters.Register("json", func(w io.Writer, t Thermo, _ Options) error { return encode.JSON(w, t.wire()) })
	ThermoWriters.Register("yaml", func(w io.Writer, t Thermo, _ Options) error { return encode.YAML(w, t.wire()) })
}
