package breakeven

import (
	"context"
	"sort"

	"github.com/rgehrsitz/rtgo/internal/domain"
)

// MultiResult holds the crossovers of one regime against every other regime in the report
type MultiResult struct {
	Regime    domain.RegimeKind `json:"regime"`
	Dimension Dimension         `json:"dimension"`
	Results   []Result          `json:"results"`
}

// Crossovers runs Solve against every regime the engine reports besides req.Regime.
// Found crossovers come first, nearest first; the rest keep display order.
func (s *Solver) Crossovers(ctx context.Context, req Request) (*MultiResult, error) {
	req.Against = ""
	if err := req.Validate(); err != nil {
		return nil, err
	}

	lo, _ := bounds(req)
	probe := req.Input
	if req.Dimension == DimensionRevenue {
		probe = withRevenue(probe, lo)
	}
	report, err := s.Engine.Evaluate(ctx, probe)
	if err != nil {
		return nil, &BreakEvenError{Operation: "crossovers", Message: "failed to calculate base report", Cause: err}
	}
	if _, ok := lookup(report, req.Regime); !ok {
		return nil, &BreakEvenError{Operation: "crossovers", Message: "regime not in report: " + string(req.Regime)}
	}

	multi := &MultiResult{Regime: req.Regime, Dimension: req.Dimension}
	for _, kind := range domain.AllRegimeKinds() {
		if family(kind) == family(req.Regime) {
			continue
		}
		if _, ok := report.Find(kind); !ok {
			continue
		}

		single := req
		single.Against = kind
		result, err := s.Solve(ctx, single)
		if err != nil {
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
	}

	sort.SliceStable(multi.Results, func(i, j int) bool {
		a, b := multi.Results[i], multi.Results[j]
		if a.Found != b.Found {
			return a.Found
		}
		if a.Found {
			return a.Value.LessThan(b.Value)
		}
		return false
	})
	return multi, nil
}
