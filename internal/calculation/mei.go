package calculation

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// MEICalculator computes the fixed MEI DAS and its eligibility
type MEICalculator struct {
	Rules       domain.MEIRules
	MinimumWage decimal.Decimal
}

// NewMEICalculator creates an MEI calculator from the legal constants
func NewMEICalculator(lc *domain.LegalConstants) *MEICalculator {
	return &MEICalculator{Rules: lc.MEI, MinimumWage: lc.MinimumWage}
}

// MonthlyINSS is the contribution portion of the DAS-MEI
func (mc *MEICalculator) MonthlyINSS() decimal.Decimal {
	return mc.MinimumWage.Mul(mc.Rules.INSSRate)
}

// Evaluate always returns a result; ineligibility is reported on the result.
// The annual revenue checked against the limit is the larger of RBT12 and the
// monthly revenue annualized.
func (mc *MEICalculator) Evaluate(in domain.ScenarioInput) domain.ScenarioResult {
	b := newResultBuilder("MEI", domain.RegimeMEI)

	b.add("INSS (5% do salário mínimo)", mc.Rules.INSSRate, mc.MonthlyINSS())
	if in.HasGoods() {
		b.add("ICMS (valor fixo)", decimal.Zero, mc.Rules.ICMSAmount)
	}
	if in.HasService() {
		b.add("ISS (valor fixo)", decimal.Zero, mc.Rules.ISSAmount)
	}

	projected := decimal.Max(in.RBT12, in.MonthlyRevenue.Mul(decimal.NewFromInt(12)))

	var blocked []string
	if projected.GreaterThan(mc.Rules.AnnualLimit) {
		blocked = append(blocked, fmt.Sprintf("faturamento anual de R$ %s excede o limite do MEI de R$ %s",
			projected.StringFixed(2), mc.Rules.AnnualLimit.StringFixed(2)))
	}
	for _, a := range in.Activities {
		if !a.MEIEligible {
			blocked = append(blocked, fmt.Sprintf("atividade %q não é permitida ao MEI", a.Name))
		}
	}
	if in.NumberOfPartners > 1 {
		blocked = append(blocked, "o MEI não admite sócios")
	}

	if len(blocked) > 0 {
		b.ineligible("Não elegível: " + strings.Join(blocked, "; "))
	} else {
		b.eligibilityNote(fmt.Sprintf("Elegível: faturamento anual até R$ %s e todas as atividades permitidas",
			mc.Rules.AnnualLimit.StringFixed(2)))
	}
	b.notes("Valor mensal fixo do DAS-MEI, independente do faturamento")

	return b.build(in.MonthlyRevenue)
}
