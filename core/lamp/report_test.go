package lamp

import (
	"strings"
	"testing"
)

func TestSetID(t *testing.T) {
	a := validLayout.set()
	b := validLayout.set()
	if SetID(a) != SetID(b) {
		t.Fatal("SetID not stable")
	}
	if len(SetID(a)) != 36 {
		t.Fatalf("SetID = %q, want a UUID", SetID(a))
	}
	b.F3.Seq = "ACGTACGTACGTACGTACGT"
	if SetID(a) == SetID(b) {
		t.Fatal("SetID ignores primer sequences")
	}
}

func TestNewReport(t *testing.T) {
	set := validLayout.set()
	set.Geometry, _ = Validate(set, DefaultConfig())
	set.F3.Tm, set.B3.Tm, set.FIP.Tm, set.BIP.Tm = 60, 61, 62, 64.5
	set.Score = -2
	r := GenerateReport(set, DefaultConfig())

	if r.TmMin != 60 || r.TmMax != 64.5 || r.TmUniformity != 4.5 {
		t.Fatalf("Tm summary = %g/%g/%g", r.TmMin, r.TmMax, r.TmUniformity)
	}
	if r.AmpliconSize != 130 || r.Spacing.F2F1c != 25 {
		t.Fatalf("geometry = %+v", r.Spacing)
	}
	if len(r.Primers) != 4 || r.Primers[2].Role != RoleFIP || len(r.Primers[2].Parts) != 2 {
		t.Fatalf("primers = %+v", r.Primers)
	}
	recs := strings.Join(r.Recommendations, "\n")
	for _, want := range []string{"Tm uniformity", "weak 3' end", "Loop primers"} {
		if !strings.Contains(recs, want) {
			t.Fatalf("recommendations missing %q:\n%s", want, recs)
		}
	}
	if strings.Contains(recs, "alternative primer sets") {
		t.Fatalf("score -2 should not trigger the low-score advice:\n%s", recs)
	}
}

func TestNewReport_AllCriteriaMet(t *testing.T) {
	set := validLayout.set()
	lf := simple(RoleLF, 77, 94, Minus)
	set.LF = &lf
	for _, c := range []*Candidate{&set.F3, &set.B3, &set.FIP, &set.BIP, set.LF} {
		c.Tm = 61
		c.EndStability = -4
	}
	r := GenerateReport(set, DefaultConfig())
	if len(r.Recommendations) != 1 || r.Recommendations[0] != "Primer set meets all design criteria" {
		t.Fatalf("recommendations = %v", r.Recommendations)
	}
}

func TestReports_Ranked(t *testing.T) {
	sets := []PrimerSet{validLayout.set(), validLayout.set()}
	rs := Reports("target1", sets, DefaultConfig())
	if len(rs) != 2 || rs[0].Rank != 1 || rs[1].Rank != 2 || rs[1].Target != "target1" {
		t.Fatalf("reports = %+v", rs)
	}
}
