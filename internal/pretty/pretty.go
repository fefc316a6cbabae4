// Package pretty renders design and thermodynamic reports for terminals.
package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lamp-core/lamp"
)

// Options control the rendering.
type Options struct {
	// Color enables lipgloss styling. Plain output is stable for goldens and pipes.
	Color bool

	// Width of the binding-site map in columns. If <=0, use default (72).
	MapWidth int

	// Glyphs
	SiteGlyph string // default "="
	LoopGlyph string // default "~"
	LineGlyph string // default "-"
	PairGlyph string // default "|"
}

// DefaultOptions renders plain text.
var DefaultOptions = Options{
	MapWidth:  72,
	SiteGlyph: "=",
	LoopGlyph: "~",
	LineGlyph: "-",
	PairGlyph: "|",
}

func (o Options) withDefaults() Options {
	if o.MapWidth <= 0 {
		o.MapWidth = DefaultOptions.MapWidth
	}
	if o.SiteGlyph == "" {
		o.SiteGlyph = DefaultOptions.SiteGlyph
	}
	if o.LoopGlyph == "" {
		o.LoopGlyph = DefaultOptions.LoopGlyph
	}
	if o.LineGlyph == "" {
		o.LineGlyph = DefaultOptions.LineGlyph
	}
	if o.PairGlyph == "" {
		o.PairGlyph = DefaultOptions.PairGlyph
	}
	return o
}

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorWarning = lipgloss.Color("#F4D03F")
	colorMuted   = lipgloss.Color("#6C7A89")
)

type styles struct {
	title, header, muted, warning, box lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		header:  lipgloss.NewStyle().Bold(true),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
		warning: lipgloss.NewStyle().Foreground(colorWarning),
		box:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1),
	}
}

// RenderReport prints one ranked primer set: a summary line, the primer
// table, the binding-site map, then warnings and recommendations.
func RenderReport(targetID string, r lamp.Report, opt Options) string {
	opt = opt.withDefaults()
	st := newStyles(opt.Color)
	var b strings.Builder

	title := fmt.Sprintf("%s  set %d  score %.2f  amplicon %d bp  Tm %.1f-%.1f °C",
		targetID, r.Rank, r.OverallScore, r.AmpliconSize, r.TmMin, r.TmMax)
	b.WriteString(st.box.Render(st.title.Render(title)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n", st.muted.Render("id "+r.ID))

	b.WriteString(st.header.Render(fmt.Sprintf("%-4s %-52s %-11s %1s %6s %5s %7s %7s",
		"role", "sequence (5'->3')", "position", "", "Tm", "GC%", "dG37", "3'dG")))
	b.WriteString("\n")
	for _, p := range r.Primers {
		fmt.Fprintf(&b, "%-4s %-52s %-11s %1s %6.1f %5.1f %7.2f %7.2f\n",
			p.Role, p.Sequence, fmt.Sprintf("%d-%d", p.Start+1, p.End+1), p.Strand,
			p.Tm, p.GC, p.DeltaG, p.EndStability)
		for _, part := range p.Parts {
			fmt.Fprintf(&b, "  %s\n", st.muted.Render(fmt.Sprintf("%-3s %-50s %-11s %1s %6.1f %5.1f",
				part.Name, part.Seq, fmt.Sprintf("%d-%d", part.Start+1, part.End+1), part.Strand, part.Tm, part.GC)))
		}
	}
	b.WriteString("\n")
	b.WriteString(SiteMap(r.Primers, opt))

	sp := r.Spacing
	fmt.Fprintf(&b, "%s\n", st.muted.Render(fmt.Sprintf("gaps F3-F2 %d  F2-F1c %d  F1c-B1c %d  B1c-B2 %d  B2-B3 %d",
		sp.F3F2, sp.F2F1c, sp.F1cB1c, sp.B1cB2, sp.B2B3)))
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "%s\n", st.warning.Render("! "+w))
	}
	for _, p := range r.Primers {
		for _, w := range p.Warnings {
			fmt.Fprintf(&b, "%s\n", st.warning.Render(fmt.Sprintf("! %s: %s", p.Role, w)))
		}
	}
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&b, "* %s\n", rec)
	}
	return b.String()
}

type site struct {
	name       string
	start, end int
	loop       bool
}

func sitesOf(primers []lamp.PrimerReport) []site {
	var out []site
	for _, p := range primers {
		switch {
		case len(p.Parts) > 0:
			for _, part := range p.Parts {
				out = append(out, site{part.Name, part.Start, part.End, false})
			}
		default:
			out = append(out, site{p.Role.String(), p.Start, p.End, p.Role.IsLoop()})
		}
	}
	return out
}

// SiteMap draws the binding sites of a set on a scaled target line, with
// loop primers on a second track:
//
//	===      =====       ====            ====       =====      ===
//	F3       F2          F1c             B1c        B2         B3
func SiteMap(primers []lamp.PrimerReport, opt Options) string {
	opt = opt.withDefaults()
	sites := sitesOf(primers)
	if len(sites) == 0 {
		return ""
	}
	lo, hi := sites[0].start, sites[0].end
	for _, s := range sites {
		lo, hi = min(lo, s.start), max(hi, s.end)
	}
	w := opt.MapWidth
	scale := func(pos int) int {
		if hi == lo {
			return 0
		}
		return (pos - lo) * (w - 1) / (hi - lo)
	}

	track := []rune(strings.Repeat(opt.LineGlyph, w))
	labels := []rune(strings.Repeat(" ", w+4))
	loops := []rune(strings.Repeat(" ", w))
	loopLabels := []rune(strings.Repeat(" ", w+4))
	hasLoops := false
	for _, s := range sites {
		a, z := scale(s.start), scale(s.end)
		dst, lab, glyph := track, labels, []rune(opt.SiteGlyph)[0]
		if s.loop {
			dst, lab, glyph, hasLoops = loops, loopLabels, []rune(opt.LoopGlyph)[0], true
		}
		for i := a; i <= z; i++ {
			dst[i] = glyph
		}
		placeLabel(lab, a, s.name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n", string(track), strings.TrimRight(string(labels), " "))
	if hasLoops {
		fmt.Fprintf(&b, "%s\n%s\n", strings.TrimRight(string(loops), " "), strings.TrimRight(string(loopLabels), " "))
	}
	fmt.Fprintf(&b, "%d%s%d\n", lo+1, strings.Repeat(" ", max(1, w-len(fmt.Sprint(lo+1))-len(fmt.Sprint(hi+1)))), hi+1)
	return b.String()
}

// placeLabel writes name at col, shifted right past any earlier label.
func placeLabel(row []rune, col int, name string) {
	for col > 0 && row[col-1] != ' ' {
		col++
	}
	for col+len(name) <= len(row) {
		free := true
		for i := 0; i < len(name); i++ {
			if row[col+i] != ' ' {
				free = false
				break
			}
		}
		if free {
			copy(row[col:], []rune(name))
			return
		}
		col++
	}
}
