package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the point where two regimes swap places in the ranking
type Solver struct {
	Engine  Evaluator
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine Evaluator, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine Evaluator) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve bisects the requested range for the value at which the tax difference between
// req.Regime and req.Against changes sign. Totals are compared whether or not the
// regimes are eligible at that point.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Against == "" {
		return nil, &BreakEvenError{Operation: "solve", Message: "a regime to compare against is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	lo, hi := bounds(req)
	if hi.LessThanOrEqual(lo) {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("empty range %s..%s", lo.StringFixed(2), hi.StringFixed(2)),
		}
	}

	result := &Result{
		Dimension: req.Dimension,
		Regime:    req.Regime,
		Against:   req.Against,
		Min:       lo,
		Max:       hi,
	}

	loA, loB, err := s.taxesAt(ctx, req, lo)
	if err != nil {
		return nil, err
	}
	hiA, hiB, err := s.taxesAt(ctx, req, hi)
	if err != nil {
		return nil, err
	}
	result.Iterations = 2

	loDiff := loA.Sub(loB)
	hiDiff := hiA.Sub(hiB)
	result.CheaperBelow = cheaper(req, loDiff)

	if loDiff.Sign() == hiDiff.Sign() || loDiff.IsZero() {
		result.Value = hi
		result.RegimeTax, result.AgainstTax = hiA, hiB
		if loDiff.IsZero() && hiDiff.IsZero() {
			result.ConvergenceInfo = "regimes have the same total across the range"
		} else {
			result.ConvergenceInfo = "no crossover in range"
		}
		return result, nil
	}

	exact := false
	for result.Iterations < s.Options.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if hi.Sub(lo).LessThanOrEqual(s.Options.Tolerance) {
			break
		}

		mid := lo.Add(hi).Div(two)
		a, b, err := s.taxesAt(ctx, req, mid)
		if err != nil {
			return nil, err
		}
		result.Iterations++

		d := a.Sub(b)
		if d.IsZero() {
			hi, hiA, hiB = mid, a, b
			exact = true
			break
		}
		if d.Sign() == loDiff.Sign() {
			lo = mid
		} else {
			hi, hiA, hiB = mid, a, b
		}
	}

	result.Found = true
	result.Value = hi.Round(2)
	result.RegimeTax, result.AgainstTax = hiA, hiB
	switch {
	case exact:
		result.ConvergenceInfo = "exact crossover"
	case hi.Sub(lo).LessThanOrEqual(s.Options.Tolerance):
		result.ConvergenceInfo = fmt.Sprintf("converged within R$ %s", s.Options.Tolerance.StringFixed(2))
	default:
		result.ConvergenceInfo = fmt.Sprintf("max iterations (%d) reached", s.Options.MaxIterations)
	}
	return result, nil
}

// taxesAt evaluates the input moved to v and returns the totals of both regimes
func (s *Solver) taxesAt(ctx context.Context, req Request, v decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	in := req.Input
	switch req.Dimension {
	case DimensionPayroll:
		in.PayrollExpenses = v
	default:
		in = withRevenue(in, v)
	}

	report, err := s.Engine.Evaluate(ctx, in)
	if err != nil {
		return decimal.Zero, decimal.Zero, &BreakEvenError{
			Operation: "evaluate",
			Message:   fmt.Sprintf("failed to calculate at %s", v.StringFixed(2)),
			Cause:     err,
		}
	}

	a, ok := lookup(report, req.Regime)
	if !ok {
		return decimal.Zero, decimal.Zero, &BreakEvenError{Operation: "evaluate", Message: "regime not in report: " + string(req.Regime)}
	}
	b, ok := lookup(report, req.Against)
	if !ok {
		return decimal.Zero, decimal.Zero, &BreakEvenError{Operation: "evaluate", Message: "regime not in report: " + string(req.Against)}
	}
	return a.TotalTax, b.TotalTax, nil
}

// bounds applies the default range for zero Min/Max: a tenth to ten times the current
// revenue, or zero to the full revenue for payroll.
func bounds(req Request) (decimal.Decimal, decimal.Decimal) {
	lo, hi := req.Min, req.Max
	revenue := req.Input.MonthlyRevenue
	switch req.Dimension {
	case DimensionPayroll:
		if hi.IsZero() {
			hi = revenue
		}
	default:
		if lo.IsZero() {
			lo = revenue.Div(decimal.NewFromInt(10)).Round(2)
		}
		if hi.IsZero() {
			hi = revenue.Mul(decimal.NewFromInt(10))
		}
	}
	return lo, hi
}

// withRevenue rescales every activity so that the total is v. RBT12 moves by the same factor.
func withRevenue(in domain.ScenarioInput, v decimal.Decimal) domain.ScenarioInput {
	activities := make([]domain.Activity, len(in.Activities))
	copy(activities, in.Activities)

	switch {
	case len(activities) == 0:
		activities = []domain.Activity{domain.DefaultActivity(v)}
	case in.MonthlyRevenue.IsZero():
		share := v.Div(decimal.NewFromInt(int64(len(activities))))
		for i := range activities {
			activities[i].MonthlyRevenue = share
		}
	default:
		factor := v.Div(in.MonthlyRevenue)
		for i := range activities {
			activities[i].MonthlyRevenue = activities[i].MonthlyRevenue.Mul(factor).Round(2)
		}
	}

	// the last activity absorbs rounding so the total is exact
	rest := v
	for _, a := range activities[:len(activities)-1] {
		rest = rest.Sub(a.MonthlyRevenue)
	}
	activities[len(activities)-1].MonthlyRevenue = rest

	if in.MonthlyRevenue.IsZero() {
		in.RBT12 = v.Mul(decimal.NewFromInt(12))
	} else {
		in.RBT12 = in.RBT12.Mul(v.Div(in.MonthlyRevenue)).Round(2)
	}
	in.Activities = activities
	in.MonthlyRevenue = v
	return in
}

func cheaper(req Request, diff decimal.Decimal) domain.RegimeKind {
	switch diff.Sign() {
	case -1:
		return req.Regime
	case 1:
		return req.Against
	}
	return ""
}

// family maps the single and mixed variants of a regime to one key
func family(k domain.RegimeKind) domain.RegimeKind {
	switch k {
	case domain.RegimeSimplesMixed:
		return domain.RegimeSimplesSingle
	case domain.RegimePresumedMixed:
		return domain.RegimePresumed
	}
	return k
}

// lookup finds kind in the report, falling back to its single/mixed sibling since the
// engine emits only one of them depending on the activities.
func lookup(report *domain.ScenarioReport, kind domain.RegimeKind) (domain.RankedScenario, bool) {
	if s, ok := report.Find(kind); ok {
		return s, true
	}
	for _, s := range report.Scenarios {
		if family(s.Kind) == family(kind) {
			return s, true
		}
	}
	return domain.RankedScenario{}, false
}
