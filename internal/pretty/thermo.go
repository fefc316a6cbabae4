package pretty

import (
	"fmt"
	"strings"

	"lamp-core/thermo"
)

// RenderThermo prints the thermodynamic report of one oligo.
func RenderThermo(r thermo.Report, opt Options) string {
	opt = opt.withDefaults()
	st := newStyles(opt.Color)
	var b strings.Builder
	b.WriteString(st.title.Render(fmt.Sprintf("5'-%s-3'", r.Sequence)))
	b.WriteString("\n")
	rows := [][2]string{
		{"length", fmt.Sprintf("%d nt", r.Length)},
		{"GC", fmt.Sprintf("%.1f %%", r.GCContent)},
		{"Tm", fmt.Sprintf("%.2f °C", r.TmC)},
		{"dG37", fmt.Sprintf("%.2f kcal/mol", r.DeltaG37)},
		{"3' end dG", fmt.Sprintf("%.2f kcal/mol", r.EndStability)},
		{"palindromic", fmt.Sprint(r.Palindromic)},
		{"conditions", fmt.Sprintf("Na %.4g M, Mg %.4g M, primer %.4g M",
			r.Conditions.NaM, r.Conditions.MgM, r.Conditions.PrimerM)},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "%-12s %s\n", st.header.Render(row[0]), row[1])
	}
	if len(r.Hairpins) > 0 {
		b.WriteString("\n" + st.header.Render("hairpins") + "\n")
		for _, h := range r.Hairpins {
			fmt.Fprintf(&b, "%s\n", hairpinLine(r.Sequence, h))
		}
	}
	if len(r.SelfDimers) > 0 {
		b.WriteString("\n" + st.header.Render("self-dimers") + "\n")
		b.WriteString(RenderDuplex(r.Sequence, r.Sequence, r.SelfDimers[0], opt))
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "%s\n", st.warning.Render("! "+w))
	}
	return b.String()
}

// hairpinLine marks the stem arms with parentheses and the loop with dots.
func hairpinLine(s string, h thermo.Hairpin) string {
	mask := []byte(strings.Repeat(" ", len(s)))
	for i := 0; i < h.Stem; i++ {
		mask[h.Start+i] = '('
		mask[h.End()-i] = ')'
	}
	for i := h.Start + h.Stem; i < h.Start+h.Stem+h.Loop; i++ {
		mask[i] = '.'
	}
	tail := ""
	if h.Anchored3 {
		tail = "  3'-anchored"
	}
	return fmt.Sprintf("%s\n%s  stem %d loop %d  %.2f kcal/mol%s", s, string(mask), h.Stem, h.Loop, h.DeltaG, tail)
}

// RenderDuplex draws a 5'->3' over b 3'->5' with pair bars on the
// paired run of d.
//
//	5'-ACGTTGCA-3'
//	     ||||
//	  3'-ACGTTGCA-5'
func RenderDuplex(a, b string, d thermo.Dimer, opt Options) string {
	opt = opt.withDefaults()
	rb := reverse(b)
	// a[StartA] pairs with b[EndB], which sits at column len(b)-1-EndB of rb.
	offA, offB := 0, 0
	if shift := d.StartA - (len(b) - 1 - d.EndB); shift >= 0 {
		offB = shift
	} else {
		offA = -shift
	}
	bars := []byte(strings.Repeat(" ", offA+len(a)))
	for i := d.StartA; i <= d.EndA; i++ {
		j := len(b) - 1 - (d.EndB - (i - d.StartA))
		if j >= 0 && j < len(rb) && thermoPairs(a[i], rb[j]) {
			bars[offA+i] = opt.PairGlyph[0]
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "5'-%s%s-3'\n", strings.Repeat(" ", offA), a)
	fmt.Fprintf(&sb, "   %s\n", strings.TrimRight(string(bars), " "))
	fmt.Fprintf(&sb, "3'-%s%s-5'\n", strings.Repeat(" ", offB), rb)
	fmt.Fprintf(&sb, "dG %.2f kcal/mol  a %d-%d  b %d-%d", d.DeltaG, d.StartA+1, d.EndA+1, d.StartB+1, d.EndB+1)
	if d.Mismatches > 0 {
		fmt.Fprintf(&sb, "  %d mismatch", d.Mismatches)
	}
	if d.Anchored3 {
		sb.WriteString("  3'-anchored")
	}
	sb.WriteString("\n")
	return sb.String()
}

func thermoPairs(x, y byte) bool {
	switch x {
	case 'A':
		return y == 'T'
	case 'T':
		return y == 'A'
	case 'C':
		return y == 'G'
	case 'G':
		return y == 'C'
	}
	return false
}

func reverse(s string) string {
	rs := []byte(s)
	for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
		rs[i], rs[j] = rs[j], rs[i]
	}
	return string(rs)
}
