package writers

import (
	"lamp/pkg/api"

	"lamp-core/lamp"
	"lamp-core/thermo"
)

// ToAPISet converts a domain report into the v1 wire schema.
func ToAPISet(targetID string, r lamp.Report) api.SetV1 {
	out := api.SetV1{
		SetID:        r.ID,
		TargetID:     targetID,
		Rank:         r.Rank,
		Score:        r.OverallScore,
		TmMin:        r.TmMin,
		TmMax:        r.TmMax,
		TmUniformity: r.TmUniformity,
		AmpliconSize: r.AmpliconSize,
		Spacing: api.SpacingV1{
			F3F2:   r.Spacing.F3F2,
			F2F1c:  r.Spacing.F2F1c,
			F1cB1c: r.Spacing.F1cB1c,
			B1cB2:  r.Spacing.B1cB2,
			B2B3:   r.Spacing.B2B3,
		},
		Warnings:        r.Warnings,
		Recommendations: r.Recommendations,
	}
	for _, p := range r.Primers {
		pv := api.PrimerV1{
			Role:         p.Role.String(),
			Sequence:     p.Sequence,
			Length:       p.Length,
			Start:        p.Start,
			End:          p.End,
			Strand:       p.Strand.String(),
			Tm:           p.Tm,
			GC:           p.GC,
			DeltaG:       p.DeltaG,
			EndStability: p.EndStability,
			HairpinDG:    p.HairpinDG,
			DimerDG:      p.DimerDG,
			Score:        p.Score,
			Warnings:     p.Warnings,
		}
		for _, part := range p.Parts {
			pv.Regions = append(pv.Regions, api.RegionV1{
				Name:     part.Name,
				Sequence: part.Seq,
				Start:    part.Start,
				End:      part.End,
				Strand:   part.Strand.String(),
				Tm:       part.Tm,
				GC:       part.GC,
			})
		}
		out.Primers = append(out.Primers, pv)
	}
	return out
}

// ToAPITarget converts one design result.
func ToAPITarget(r Result) api.TargetV1 {
	t := api.TargetV1{TargetID: r.TargetID, Length: r.Length, Sets: []api.SetV1{}}
	if r.Err != nil {
		t.Error = r.Err.Error()
	}
	for _, rep := range r.Reports {
		t.Sets = append(t.Sets, ToAPISet(r.TargetID, rep))
	}
	return t
}

// ToAPIThermo converts a thermodynamic report.
func ToAPIThermo(r thermo.Report) api.ThermoV1 {
	out := api.ThermoV1{
		Schema:       api.SchemaVersion,
		Sequence:     r.Sequence,
		Length:       r.Length,
		GC:           r.GCContent,
		Tm:           r.TmC,
		DeltaG37:     r.DeltaG37,
		EndStability: r.EndStability,
		Palindromic:  r.Palindromic,
		NaM:          r.Conditions.NaM,
		MgM:          r.Conditions.MgM,
		PrimerM:      r.Conditions.PrimerM,
		Dimers:       ToAPIDuplexes("", "", r.SelfDimers),
		Warnings:     r.Warnings,
	}
	for _, h := range r.Hairpins {
		out.Hairpins = append(out.Hairpins, api.HairpinV1{
			Start:     h.Start,
			Stem:      h.Stem,
			Loop:      h.Loop,
			DeltaG:    h.DeltaG,
			Anchored3: h.Anchored3,
		})
	}
	return out
}

// ToAPIDuplexes converts duplexes between a and b; a and b may be empty.
func ToAPIDuplexes(a, b string, ds []thermo.Dimer) []api.DuplexV1 {
	var out []api.DuplexV1
	for _, d := range ds {
		out = append(out, api.DuplexV1{
			A:          a,
			B:          b,
			StartA:     d.StartA,
			EndA:       d.EndA,
			StartB:     d.StartB,
			EndB:       d.EndB,
			Mismatches: d.Mismatches,
			DeltaG:     d.DeltaG,
			Anchored3:  d.Anchored3,
		})
	}
	return out
}
