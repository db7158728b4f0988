package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// maxSweepPoints bounds a payroll sweep
const maxSweepPoints = 500

// SweepPoint is the engine outcome for one payroll value
type SweepPoint struct {
	Payroll    decimal.Decimal     `json:"payroll" yaml:"payroll"`
	FatorR     domain.FatorRResult `json:"fatorR" yaml:"fator_r"`
	SimplesTax decimal.Decimal     `json:"simplesTax" yaml:"simples_tax"`
	BestName   string              `json:"bestName" yaml:"best_name"`
	BestKind   domain.RegimeKind   `json:"bestKind" yaml:"best_kind"`
	BestTax    decimal.Decimal     `json:"bestTax" yaml:"best_tax"`
}

// SweepPayroll re-runs the engine for payroll values from..to (inclusive) in steps,
// showing where Fator R starts to pay off
func (ce *CalculationEngine) SweepPayroll(ctx context.Context, req *domain.ScenarioRequest, from, to, step decimal.Decimal) ([]SweepPoint, error) {
	if !step.IsPositive() {
		return nil, fmt.Errorf("sweep step must be positive, got %s", step.String())
	}
	if from.IsNegative() || to.LessThan(from) {
		return nil, fmt.Errorf("invalid sweep range %s..%s", from.String(), to.String())
	}
	count := to.Sub(from).Div(step).IntPart() + 1
	if count > maxSweepPoints {
		return nil, fmt.Errorf("sweep of %d points exceeds the maximum of %d", count, maxSweepPoints)
	}

	base, err := ce.Normalizer.Normalize(req)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario request: %w", err)
	}

	points := make([]SweepPoint, 0, count)
	for payroll := from; payroll.LessThanOrEqual(to); payroll = payroll.Add(step) {
		in := base
		in.PayrollExpenses = payroll

		report, err := ce.Evaluate(ctx, in)
		if err != nil {
			return nil, err
		}

		p := SweepPoint{Payroll: payroll, FatorR: report.FatorR}
		for _, s := range report.Scenarios {
			if s.Kind == domain.RegimeSimplesSingle || s.Kind == domain.RegimeSimplesMixed {
				p.SimplesTax = s.TotalTax
			}
		}
		if best, ok := report.Best(); ok {
			p.BestName = best.Name
			p.BestKind = best.Kind
			p.BestTax = best.TotalTax
		}
		points = append(points, p)
	}
	return points, nil
}
