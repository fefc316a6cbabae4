package lamp

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"lamp-core/seq"
	"lamp-core/thermo"
)

// DefaultMaxSets is used when Design is asked for zero sets.
const DefaultMaxSets = 10

// RunStats summarizes one Design call.
type RunStats struct {
	Target          string
	Length          int
	Regions         int            // regions visited
	RegionsDesigned int            // regions with enough candidates to combine
	Candidates      map[string]int // ranked candidates per role, summed over regions
	Combinations    int            // combinations validated
	Rejections      map[string]int // geometry rejections per rule
	Accepted        int
	Elapsed         time.Duration
	Err             error
}

// Designer searches a target for ranked RT-LAMP primer sets.
// It is safe for concurrent use.
type Designer struct {
	cfg      ConstraintConfig
	bounds   SearchBounds
	calc     *thermo.Calculator
	log      *slog.Logger
	observer func(RunStats)
}

// Option configures a Designer.
type Option func(*Designer)

// WithLogger sets the logger. Skipped windows are logged at Debug.
func WithLogger(l *slog.Logger) Option {
	return func(d *Designer) {
		if l != nil {
			d.log = l
		}
	}
}

// WithSearchBounds replaces the default search limits.
func WithSearchBounds(b SearchBounds) Option { return func(d *Designer) { d.bounds = b } }

// WithObserver receives the statistics of every Design call.
func WithObserver(fn func(RunStats)) Option { return func(d *Designer) { d.observer = fn } }

// WithCalculator shares a thermodynamics calculator (and its memo).
// Its conditions should match the configuration's.
func WithCalculator(c *thermo.Calculator) Option {
	return func(d *Designer) {
		if c != nil {
			d.calc = c
		}
	}
}

// NewDesigner validates cfg and builds a Designer.
func NewDesigner(cfg ConstraintConfig, opts ...Option) (*Designer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Designer{
		cfg:    cfg,
		bounds: DefaultSearchBounds(),
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(d)
	}
	if err := d.bounds.Validate(); err != nil {
		return nil, err
	}
	if d.calc == nil {
		d.calc = thermo.NewCalculator(cfg.Conditions)
	}
	return d, nil
}

// Config returns the design rules in effect.
func (d *Designer) Config() ConstraintConfig { return d.cfg }

// Bounds returns the search limits in effect.
func (d *Designer) Bounds() SearchBounds { return d.bounds }

// Calculator returns the thermodynamics calculator in use.
func (d *Designer) Calculator() *thermo.Calculator { return d.calc }

// Regions tiles a target of length n into overlapping search regions.
// The last region is aligned to the target end.
func (d *Designer) Regions(n int) []Region {
	size := d.bounds.RegionLength
	if size <= 0 || size >= n {
		return []Region{{0, n - 1}}
	}
	size = max(size, d.cfg.Footprint())
	if size >= n {
		return []Region{{0, n - 1}}
	}
	stride := d.bounds.RegionStride
	if stride <= 0 {
		stride = size / 2
	}
	var out []Region
	start := 0
	for ; start+size <= n; start += stride {
		out = append(out, Region{start, start + size - 1})
	}
	if last := out[len(out)-1]; last.End < n-1 {
		out = append(out, Region{n - size, n - 1})
	}
	return out
}

// Design searches target for up to maxSets primer sets, best first.
//
// Each search region is designed independently: candidates are generated
// per role, the bounded Cartesian product of the four mandatory lists is
// validated and scored, and the search stops once maxSets sets are kept.
// Loop primers are attached when includeLoops is set and a candidate fits.
//
// Errors: *InsufficientCandidatesError when the target is too short, when
// no region yields enough candidates, or when no combination is valid;
// ctx.Err() on cancellation.
func (d *Designer) Design(ctx context.Context, target seq.Sequence, includeLoops bool, maxSets int) (sets []PrimerSet, err error) {
	began := time.Now()
	stats := RunStats{
		Target:     target.Header,
		Length:     target.Len(),
		Candidates: map[string]int{},
		Rejections: map[string]int{},
	}
	defer func() {
		stats.Accepted = len(sets)
		stats.Elapsed = time.Since(began)
		stats.Err = err
		if d.observer != nil {
			d.observer(stats)
		}
	}()
	if maxSets <= 0 {
		maxSets = DefaultMaxSets
	}
	bases := target.Bases
	if fp := d.cfg.Footprint(); len(bases) < fp {
		return nil, &InsufficientCandidatesError{Stage: "target", Found: len(bases), Required: fp}
	}

	var shortfall *InsufficientCandidatesError
	seen := map[string]bool{}
	for _, reg := range d.Regions(len(bases)) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats.Regions++
		lists, err := d.regionCandidates(ctx, bases, reg)
		if err != nil {
			return nil, err
		}
		for i, role := range MandatoryRoles {
			stats.Candidates[role.String()] += len(lists[i])
		}
		if short := d.shortfall(lists); short != nil {
			d.log.Debug("region skipped", "target", target.Header, "region", reg.String(), "stage", short.Stage, "found", short.Found)
			if shortfall == nil || short.Found > shortfall.Found {
				shortfall = short
			}
			continue
		}
		stats.RegionsDesigned++

		var lf, lb []Candidate
		if includeLoops {
			lf, lb = d.loopCandidates(bases, lists[2], lists[3])
			stats.Candidates[RoleLF.String()] += len(lf)
			stats.Candidates[RoleLB.String()] += len(lb)
		}
		before := len(sets)
		sets, err = d.combine(ctx, lists, lf, lb, includeLoops, maxSets, seen, sets, &stats)
		if err != nil {
			return nil, err
		}
		d.log.Debug("region designed", "target", target.Header, "region", reg.String(), "sets", len(sets)-before)
		if len(sets) >= maxSets {
			break
		}
	}

	if len(sets) == 0 {
		if stats.RegionsDesigned == 0 && shortfall != nil {
			return nil, shortfall
		}
		return nil, &InsufficientCandidatesError{Stage: "primer_sets", Found: 0, Required: 1}
	}
	rankSets(sets)
	d.log.Info("design complete",
		"target", target.Header,
		"length", len(bases),
		"regions", stats.Regions,
		"combinations", stats.Combinations,
		"sets", len(sets),
		"best_score", sets[0].Score,
	)
	return sets, nil
}

// regionCandidates generates the four mandatory lists, in MandatoryRoles
// order, optionally in parallel. Lists are ranked deterministically so the
// result does not depend on scheduling.
func (d *Designer) regionCandidates(ctx context.Context, target string, reg Region) ([][]Candidate, error) {
	lists := make([][]Candidate, len(MandatoryRoles))
	if !d.bounds.Parallel {
		for i, role := range MandatoryRoles {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			lists[i] = d.GenerateCandidates(target, role, &reg)
		}
		return lists, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for i, role := range MandatoryRoles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lists[i] = d.GenerateCandidates(target, role, &reg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lists, nil
}

// shortfall reports the first mandatory role below the minimum.
func (d *Designer) shortfall(lists [][]Candidate) *InsufficientCandidatesError {
	for i, role := range MandatoryRoles {
		if len(lists[i]) < d.bounds.MinCandidates {
			return &InsufficientCandidatesError{Stage: role.String(), Found: len(lists[i]), Required: d.bounds.MinCandidates}
		}
	}
	return nil
}

// loopCandidates generates LF and LB inside the loop spans of the region's
// FIP and BIP candidates.
func (d *Designer) loopCandidates(target string, fips, bips []Candidate) (lf, lb []Candidate) {
	if span, ok := loopSpan(fips, "F2", "F1c"); ok {
		lf = d.GenerateCandidates(target, RoleLF, &span)
	}
	if span, ok := loopSpan(bips, "B1c", "B2"); ok {
		lb = d.GenerateCandidates(target, RoleLB, &span)
	}
	return lf, lb
}

// combine walks F3 × B3 × FIP × BIP, each list cut to the combination
// depth, and keeps valid, previously unseen sets until maxSets is reached.
func (d *Designer) combine(
	ctx context.Context,
	lists [][]Candidate,
	lf, lb []Candidate,
	includeLoops bool,
	maxSets int,
	seen map[string]bool,
	sets []PrimerSet,
	stats *RunStats,
) ([]PrimerSet, error) {
	depth := d.bounds.CombinationDepth
	f3s, b3s := head(lists[0], depth), head(lists[1], depth)
	fips, bips := head(lists[2], depth), head(lists[3], depth)
	for _, f3 := range f3s {
		for _, b3 := range b3s {
			for _, fip := range fips {
				for _, bip := range bips {
					stats.Combinations++
					if stats.Combinations%4096 == 0 {
						if err := ctx.Err(); err != nil {
							return sets, err
						}
					}
					set := PrimerSet{F3: f3, B3: b3, FIP: fip, BIP: bip}
					geo, err := Validate(set, d.cfg)
					if err != nil {
						var ge *GeometricConstraintError
						if errors.As(err, &ge) {
							stats.Rejections[ge.Rule]++
						}
						continue
					}
					key := set.Key()
					if seen[key] {
						continue
					}
					seen[key] = true
					set.Geometry = geo
					if includeLoops {
						d.attachLoops(&set, lf, lb)
					}
					d.ScoreSet(&set)
					sets = append(sets, set)
					if len(sets) >= maxSets {
						return sets, nil
					}
				}
			}
		}
	}
	return sets, nil
}
