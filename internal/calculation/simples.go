package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// SimplesQuote is the DAS computation for one revenue amount under one annex
type SimplesQuote struct {
	Annex                domain.Annex
	Revenue              decimal.Decimal
	Tax                  decimal.Decimal
	EffectiveRate        decimal.Decimal
	EffectiveRatePercent decimal.Decimal
	NominalRatePercent   decimal.Decimal
	Deduction            decimal.Decimal
}

// SimplesCalculator computes Simples Nacional DAS amounts
type SimplesCalculator struct {
	Rules       domain.SimplesRules
	MinimumWage decimal.Decimal
	Payroll     *PayrollCalculator
	FatorR      *FatorRCalculator
}

// NewSimplesCalculator creates a Simples Nacional calculator from the legal constants
func NewSimplesCalculator(lc *domain.LegalConstants) *SimplesCalculator {
	return &SimplesCalculator{
		Rules:       lc.Simples,
		MinimumWage: lc.MinimumWage,
		Payroll:     NewPayrollCalculator(lc),
		FatorR:      NewFatorRCalculator(lc),
	}
}

// EffectiveRate is (rbt12 x nominal - deduction) / rbt12 for the bracket selected by rbt12.
// A company with no revenue history pays the first bracket's nominal rate.
func (sc *SimplesCalculator) EffectiveRate(rbt12 decimal.Decimal, annex domain.Annex) decimal.Decimal {
	table := sc.Rules.Table(annex)
	if len(table) == 0 {
		return decimal.Zero
	}
	if !rbt12.IsPositive() {
		return table[0].NominalRate
	}
	return EvaluateBracket(rbt12, table).Div(rbt12)
}

// Evaluate quotes a single annex. The bracket is chosen by the company-wide rbt12
// while the tax applies to monthlyRevenue.
func (sc *SimplesCalculator) Evaluate(rbt12, monthlyRevenue decimal.Decimal, annex domain.Annex) SimplesQuote {
	table := sc.Rules.Table(annex)
	bracket := SelectBracket(rbt12, table)
	if !rbt12.IsPositive() && len(table) > 0 {
		bracket = table[0]
	}
	rate := sc.EffectiveRate(rbt12, annex)
	return SimplesQuote{
		Annex:                annex,
		Revenue:              monthlyRevenue,
		Tax:                  monthlyRevenue.Mul(rate),
		EffectiveRate:        rate,
		EffectiveRatePercent: percent(rate),
		NominalRatePercent:   percent(bracket.NominalRate),
		Deduction:            bracket.Deduction,
	}
}

// MixedEvaluation is the per-activity segregation of a Simples Nacional DAS
type MixedEvaluation struct {
	Quotes   []SimplesQuote
	TotalTax decimal.Decimal
	FatorR   domain.FatorRResult
}

// Annexes returns the distinct annexes in activity order
func (me MixedEvaluation) Annexes() []domain.Annex {
	var out []domain.Annex
	seen := make(map[domain.Annex]bool)
	for _, q := range me.Quotes {
		if !seen[q.Annex] {
			seen[q.Annex] = true
			out = append(out, q.Annex)
		}
	}
	return out
}

// EvaluateMixed segregates revenue by activity, applying the Fator R adjusted annex of each
func (sc *SimplesCalculator) EvaluateMixed(rbt12 decimal.Decimal, activities []domain.Activity, fr domain.FatorRResult) MixedEvaluation {
	me := MixedEvaluation{TotalTax: decimal.Zero, FatorR: fr}
	for _, a := range activities {
		q := sc.Evaluate(rbt12, a.MonthlyRevenue, AdjustAnnex(a.SimplesAnnex, fr))
		me.Quotes = append(me.Quotes, q)
		me.TotalTax = me.TotalTax.Add(q.Tax)
	}
	return me
}

// Scenario builds the Simples Nacional scenario, including the cost of the pró-labore that
// Fator R asks for
func (sc *SimplesCalculator) Scenario(in domain.ScenarioInput) domain.ScenarioResult {
	fr := sc.FatorR.Resolve(in.PayrollExpenses, in.MonthlyRevenue)
	me := sc.EvaluateMixed(in.RBT12, in.Activities, fr)
	annexes := me.Annexes()

	var b *resultBuilder
	if len(annexes) > 1 {
		b = newResultBuilder("Simples Nacional (misto/segregado)", domain.RegimeSimplesMixed)
	} else {
		name := "Simples Nacional"
		if len(annexes) == 1 {
			name = fmt.Sprintf("Simples Nacional (Anexo %s)", annexes[0])
		}
		b = newResultBuilder(name, domain.RegimeSimplesSingle)
	}

	for i, q := range me.Quotes {
		b.add(fmt.Sprintf("DAS Anexo %s - %s", q.Annex, in.Activities[i].Name), q.EffectiveRate, q.Tax)
	}

	proLabore := sc.Payroll.withhold(sc.FatorR.TargetPayroll(in.MonthlyRevenue), in.Dependents)
	b.add("INSS sobre pró-labore", ratio(proLabore.inss, proLabore.base), proLabore.inss)
	b.add("IRRF sobre pró-labore", ratio(proLabore.irrf, proLabore.base), proLabore.irrf)
	for _, a := range annexes {
		if a == domain.AnnexIV {
			cpp := sc.Payroll.EmployerCPP(proLabore.base)
			b.add("CPP patronal (Anexo IV)", sc.Payroll.Charges.CPPRate, cpp)
			break
		}
	}
	b.proLabore(proLabore.analysis())

	if in.RBT12.GreaterThan(sc.Rules.AnnualLimit) {
		b.ineligible(fmt.Sprintf("Não elegível: RBT12 de R$ %s excede o limite do Simples Nacional de R$ %s",
			in.RBT12.StringFixed(2), sc.Rules.AnnualLimit.StringFixed(2)))
	} else {
		b.eligibilityNote("Elegível ao Simples Nacional")
	}

	notes := fmt.Sprintf("Fator R: %s%% (mínimo %s%%)", percent(fr.Ratio).StringFixed(2), percent(sc.FatorR.Threshold).StringFixed(2))
	if fr.QualifiesForAnnexIII {
		notes += "; atividades do Anexo V tributadas pelo Anexo III"
	}
	b.notes(notes)

	return b.build(in.MonthlyRevenue)
}
