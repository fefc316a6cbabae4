package pretty

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lamp-core/lamp"
	"lamp-core/thermo"
)

func writeIfMissingOrUpdate(path string, got string) (created bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	if os.Getenv("UPDATE_GOLDEN") == "1" {
		return true, os.WriteFile(path, []byte(got), 0644)
	}
	if _, e := os.Stat(path); os.IsNotExist(e) {
		return true, os.WriteFile(path, []byte(got), 0644)
	}
	return false, nil
}

func mustRead(path string, t *testing.T) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", path, err)
	}
	return string(b)
}

func golden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name)
	if created, err := writeIfMissingOrUpdate(path, got); err != nil {
		t.Fatalf("write golden: %v", err)
	} else if created {
		t.Logf("wrote %s", path)
		return
	}
	if want := mustRead(path, t); got != want {
		t.Fatalf("mismatch:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func sampleReport() lamp.Report {
	return lamp.Report{
		ID:           "00000000-0000-5000-8000-000000000000",
		Rank:         1,
		OverallScore: -3.25,
		TmMin:        59.5,
		TmMax:        62.25,
		AmpliconSize: 130,
		Spacing:      lamp.Geometry{F3F2: 5, F2F1c: 25, F1cB1c: 40, B1cB2: 25, B2B3: 5, Amplicon: 130},
		Primers: []lamp.PrimerReport{
			{Role: lamp.RoleF3, Sequence: "ACGTACGTACGTACGTACGT", Start: 30, End: 49, Strand: lamp.Plus, Tm: 60},
			{Role: lamp.RoleB3, Sequence: "TTGCATTGCATTGCATTGCA", Start: 230, End: 249, Strand: lamp.Minus, Tm: 61},
			{Role: lamp.RoleFIP, Sequence: "GGGG", Start: 55, End: 119, Strand: lamp.Plus, Tm: 62, Parts: []lamp.Part{
				{Name: "F1c", Start: 100, End: 119, Strand: lamp.Minus, Seq: "GG"},
				{Name: "F2", Start: 55, End: 74, Strand: lamp.Plus, Seq: "GG"},
			}},
			{Role: lamp.RoleBIP, Sequence: "CCCC", Start: 160, End: 224, Strand: lamp.Plus, Tm: 59.5, Parts: []lamp.Part{
				{Name: "B1c", Start: 160, End: 179, Strand: lamp.Minus, Seq: "CC"},
				{Name: "B2", Start: 205, End: 224, Strand: lamp.Plus, Seq: "CC"},
			}},
			{Role: lamp.RoleLF, Sequence: "AAAA", Start: 77, End: 94, Strand: lamp.Minus, Tm: 60},
		},
		Warnings:        []string{"No LB candidate fits the B1c-B2 loop"},
		Recommendations: []string{"Primer set meets all design criteria"},
	}
}

func TestSiteMap_Golden(t *testing.T) {
	golden(t, "sitemap.golden", SiteMap(sampleReport().Primers, DefaultOptions))
}

func TestSiteMapLayout(t *testing.T) {
	got := SiteMap(sampleReport().Primers, Options{MapWidth: 44})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("want site track, labels, loop track, loop labels, scale; got:\n%s", got)
	}
	if len([]rune(lines[0])) != 44 {
		t.Fatalf("track width %d", len([]rune(lines[0])))
	}
	if !strings.HasPrefix(lines[0], "=") || !strings.HasSuffix(lines[0], "=") {
		t.Fatalf("outer sites should touch both ends: %q", lines[0])
	}
	for _, name := range []string{"F3", "F2", "F1c", "B1c", "B2", "B3"} {
		if !strings.Contains(lines[1], name) {
			t.Fatalf("label %s missing: %q", name, lines[1])
		}
	}
	if !strings.Contains(lines[2], "~") || !strings.Contains(lines[3], "LF") {
		t.Fatalf("loop track missing:\n%s", got)
	}
	if !strings.HasPrefix(lines[4], "31") || !strings.HasSuffix(lines[4], "250") {
		t.Fatalf("scale should show 1-based ends: %q", lines[4])
	}
}

func TestRenderReport(t *testing.T) {
	got := RenderReport("target1", sampleReport(), DefaultOptions)
	for _, want := range []string{
		"target1  set 1  score -3.25  amplicon 130 bp",
		"ACGTACGTACGTACGTACGT",
		"31-50",
		"F1c",
		"! No LB candidate",
		"* Primer set meets all design criteria",
		"gaps F3-F2 5",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderDuplex_Golden(t *testing.T) {
	calc := thermo.NewCalculator(thermo.DefaultConditions())
	a, b := "ACGTGCGCATTT", "GGGAATGCGCAC"
	ds := calc.Dimers(a, b)
	if len(ds) == 0 {
		t.Fatal("expected a duplex")
	}
	got := RenderDuplex(a, b, ds[0], DefaultOptions)
	if !strings.Contains(got, "||||") {
		t.Fatalf("pair bars missing:\n%s", got)
	}
	golden(t, "duplex.golden", got)
}

func TestRenderThermo(t *testing.T) {
	calc := thermo.NewCalculator(thermo.DefaultConditions())
	r, err := calc.Report("GCGCAAAAAGCGCTTT")
	if err != nil {
		t.Fatal(err)
	}
	got := RenderThermo(r, DefaultOptions)
	for _, want := range []string{"5'-GCGCAAAAAGCGCTTT-3'", "length", "16 nt", "Tm"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	if len(r.Hairpins) > 0 && !strings.Contains(got, "((((") {
		t.Fatalf("hairpin mask missing:\n%s", got)
	}
}
