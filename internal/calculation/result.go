package calculation

import (
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// resultBuilder accumulates tax lines at full precision and rounds only when the
// ScenarioResult is built
type resultBuilder struct {
	result domain.ScenarioResult
	total  decimal.Decimal
}

func newResultBuilder(name string, kind domain.RegimeKind) *resultBuilder {
	return &resultBuilder{
		result: domain.ScenarioResult{
			Name:         name,
			Category:     kind.Category(),
			Kind:         kind,
			IsEligible:   true,
			TaxLineItems: []domain.TaxLineItem{},
		},
		total: decimal.Zero,
	}
}

// add appends a line. rate is a fraction and may be zero for fixed amounts.
func (b *resultBuilder) add(label string, rate, amount decimal.Decimal) {
	b.total = b.total.Add(amount)
	b.result.TaxLineItems = append(b.result.TaxLineItems, domain.TaxLineItem{
		Label:       label,
		RatePercent: percent(rate),
		Amount:      money(amount),
	})
}

func (b *resultBuilder) ineligible(note string) {
	b.result.IsEligible = false
	b.result.EligibilityNote = note
}

func (b *resultBuilder) eligibilityNote(note string) {
	b.result.EligibilityNote = note
}

func (b *resultBuilder) notes(n string) {
	b.result.Notes = n
}

func (b *resultBuilder) proLabore(p domain.ProLaboreAnalysis) {
	b.result.ProLabore = &p
}

// build finalizes totals against the monthly revenue. Net distributable profit is
// revenue minus total tax.
func (b *resultBuilder) build(revenue decimal.Decimal) domain.ScenarioResult {
	r := b.result
	r.TotalTax = money(b.total)
	r.EffectiveRatePercent = percent(ratio(b.total, revenue))
	r.NetDistributableProfit = money(revenue.Sub(b.total))
	return r
}
