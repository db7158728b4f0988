package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CalculationEngine orchestrates every regime calculator for one fiscal year
type CalculationEngine struct {
	Constants  *domain.LegalConstants
	Normalizer *Normalizer
	FatorR     *FatorRCalculator
	MEI        *MEICalculator
	Simples    *SimplesCalculator
	Presumido  *PresumidoCalculator
	Real       *RealCalculator
	Personal   *PersonalCalculator
	Logger     Logger
	Parallel   bool // Evaluate regimes concurrently
}

// NewCalculationEngine creates an engine bound to one set of legal constants
func NewCalculationEngine(lc *domain.LegalConstants) *CalculationEngine {
	return &CalculationEngine{
		Constants:  lc,
		Normalizer: NewNormalizer(lc, nil),
		FatorR:     NewFatorRCalculator(lc),
		MEI:        NewMEICalculator(lc),
		Simples:    NewSimplesCalculator(lc),
		Presumido:  NewPresumidoCalculator(lc),
		Real:       NewRealCalculator(lc),
		Personal:   NewPersonalCalculator(lc),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger; nil resets it to a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SetISSLookup sets the ISS-fixo source used for uniprofessional societies
func (ce *CalculationEngine) SetISSLookup(l ISSLookup) {
	ce.Normalizer.ISS = l
}

type regimeFunc func(domain.ScenarioInput) domain.ScenarioResult

func (ce *CalculationEngine) regimes() []regimeFunc {
	return []regimeFunc{
		ce.MEI.Evaluate,
		ce.Simples.Scenario,
		ce.Presumido.Scenario,
		ce.Real.Scenario,
		ce.Personal.CarneLeao,
		ce.Personal.CLT,
	}
}

// Run normalizes the request and evaluates it
func (ce *CalculationEngine) Run(ctx context.Context, req *domain.ScenarioRequest) (*domain.ScenarioReport, error) {
	in, err := ce.Normalizer.Normalize(req)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario request: %w", err)
	}
	return ce.Evaluate(ctx, in)
}

// Evaluate runs every regime calculator on an already normalized input and ranks the results
func (ce *CalculationEngine) Evaluate(ctx context.Context, in domain.ScenarioInput) (*domain.ScenarioReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ce.Logger.Debugf("evaluating %d activities, monthly revenue %s, rbt12 %s (fiscal year %d)",
		len(in.Activities), in.MonthlyRevenue.StringFixed(2), in.RBT12.StringFixed(2), ce.Constants.Metadata.FiscalYear)

	regimes := ce.regimes()
	results := make([]domain.ScenarioResult, len(regimes))

	if ce.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, regime := range regimes {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = regime(in)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, regime := range regimes {
			results[i] = regime(in)
		}
	}

	for _, r := range results {
		ce.Logger.Debugf("%s: total %s, eligible=%t", r.Name, r.TotalTax.StringFixed(2), r.IsEligible)
	}

	report := &domain.ScenarioReport{
		FiscalYear: ce.Constants.Metadata.FiscalYear,
		Input:      in,
		FatorR:     ce.FatorR.Resolve(in.PayrollExpenses, in.MonthlyRevenue),
		Scenarios:  RankScenarios(results),
	}
	if best, ok := report.Best(); ok {
		ce.Logger.Infof("best scenario: %s (R$ %s)", best.Name, best.TotalTax.StringFixed(2))
	} else {
		ce.Logger.Warnf("no eligible scenario for monthly revenue %s", in.MonthlyRevenue.StringFixed(2))
	}
	return report, nil
}
