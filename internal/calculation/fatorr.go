package calculation

import (
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// FatorRCalculator resolves the payroll-to-revenue test that moves Annex V activities to Annex III
type FatorRCalculator struct {
	MinimumWage decimal.Decimal
	Threshold   decimal.Decimal
}

// NewFatorRCalculator creates a Fator R calculator from the legal constants
func NewFatorRCalculator(lc *domain.LegalConstants) *FatorRCalculator {
	return &FatorRCalculator{
		MinimumWage: lc.MinimumWage,
		Threshold:   lc.Simples.FatorRThreshold,
	}
}

// Resolve computes the ratio for a monthly payroll and revenue. Payroll below one minimum
// wage is raised to it; zero revenue yields a zero ratio.
func (fc *FatorRCalculator) Resolve(payroll, monthlyRevenue decimal.Decimal) domain.FatorRResult {
	effective := decimal.Max(payroll, fc.MinimumWage)
	r := ratio(effective, monthlyRevenue)

	target := fc.TargetPayroll(monthlyRevenue)
	shortfall := target.Sub(effective)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}

	return domain.FatorRResult{
		EffectivePayroll:     money(effective),
		Ratio:                r.Round(4),
		QualifiesForAnnexIII: monthlyRevenue.IsPositive() && r.GreaterThanOrEqual(fc.Threshold),
		TargetPayroll:        money(target),
		Shortfall:            money(shortfall),
	}
}

// TargetPayroll is the smallest payroll that satisfies the threshold, never below one minimum wage
func (fc *FatorRCalculator) TargetPayroll(monthlyRevenue decimal.Decimal) decimal.Decimal {
	return decimal.Max(monthlyRevenue.Mul(fc.Threshold), fc.MinimumWage)
}

// AdjustAnnex reclassifies Annex V to Annex III when the test passes. No other annex moves.
func AdjustAnnex(annex domain.Annex, fr domain.FatorRResult) domain.Annex {
	if annex == domain.AnnexV && fr.QualifiesForAnnexIII {
		return domain.AnnexIII
	}
	return annex
}
