package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// IncomeTax is the IRPJ/CSLL split on monthly profit bases
type IncomeTax struct {
	IRPJ   decimal.Decimal
	Surtax decimal.Decimal
	CSLL   decimal.Decimal
}

// computeIncomeTax applies the flat rates once to each aggregate base. The surtax applies
// to the part of the IRPJ base above the monthly threshold.
func computeIncomeTax(rules domain.IncomeTaxRules, irpjBase, csllBase decimal.Decimal) IncomeTax {
	excess := irpjBase.Sub(rules.MonthlySurtaxCap)
	if excess.IsNegative() {
		excess = decimal.Zero
	}
	return IncomeTax{
		IRPJ:   irpjBase.Mul(rules.IRPJRate),
		Surtax: excess.Mul(rules.IRPJSurtaxRate),
		CSLL:   csllBase.Mul(rules.CSLLRate),
	}
}

func (it IncomeTax) addTo(b *resultBuilder, rules domain.IncomeTaxRules) {
	b.add("IRPJ", rules.IRPJRate, it.IRPJ)
	if it.Surtax.IsPositive() {
		b.add("Adicional de IRPJ", rules.IRPJSurtaxRate, it.Surtax)
	}
	b.add("CSLL", rules.CSLLRate, it.CSLL)
}

// addMunicipalTaxes adds ISS on service revenue and the ICMS placeholder on goods revenue.
// A uniprofessional society with a known ISS-fixo pays the fixed amount per partner instead.
func addMunicipalTaxes(b *resultBuilder, in domain.ScenarioInput, icmsRate decimal.Decimal) {
	if in.HasService() {
		if in.IsUniprofessionalSociety && in.FixedISSPerPartner.IsPositive() {
			fixed := in.FixedISSPerPartner.Mul(decimal.NewFromInt(int64(in.NumberOfPartners)))
			b.add(fmt.Sprintf("ISS fixo (%d sócio(s))", in.NumberOfPartners), decimal.Zero, fixed)
		} else {
			b.add("ISS", in.ISSRate, in.ServiceRevenue().Mul(in.ISSRate))
		}
	}
	if in.HasGoods() {
		b.add("ICMS (estimativa)", icmsRate, in.GoodsRevenue().Mul(icmsRate))
	}
}

// addMinimumProLabore adds the employer CPP and the withholding of a one minimum wage pró-labore
func addMinimumProLabore(b *resultBuilder, pc *PayrollCalculator, minimumWage decimal.Decimal, dependents int) {
	w := pc.withhold(minimumWage, dependents)
	b.add("CPP patronal sobre pró-labore", pc.Charges.CPPRate, pc.EmployerCPP(w.base))
	b.add("INSS sobre pró-labore", ratio(w.inss, w.base), w.inss)
	b.add("IRRF sobre pró-labore", ratio(w.irrf, w.base), w.irrf)
	b.proLabore(w.analysis())
}

// PresumidoCalculator computes Lucro Presumido
type PresumidoCalculator struct {
	Rules       domain.PresumidoRules
	MinimumWage decimal.Decimal
	ICMSRate    decimal.Decimal
	Payroll     *PayrollCalculator
}

// NewPresumidoCalculator creates a Lucro Presumido calculator from the legal constants
func NewPresumidoCalculator(lc *domain.LegalConstants) *PresumidoCalculator {
	return &PresumidoCalculator{
		Rules:       lc.Presumido,
		MinimumWage: lc.MinimumWage,
		ICMSRate:    lc.Municipal.ICMSRate,
		Payroll:     NewPayrollCalculator(lc),
	}
}

// PresumedBases returns the aggregate monthly IRPJ and CSLL presumed profit bases
func (pc *PresumidoCalculator) PresumedBases(in domain.ScenarioInput) (irpjBase, csllBase decimal.Decimal) {
	irpjBase, csllBase = decimal.Zero, decimal.Zero
	for _, a := range in.Activities {
		irpjRate, csllRate := pc.presumptionRates(a.Kind, in.IsHospitalEquivalent)
		irpjBase = irpjBase.Add(a.MonthlyRevenue.Mul(irpjRate))
		csllBase = csllBase.Add(a.MonthlyRevenue.Mul(csllRate))
	}
	return irpjBase, csllBase
}

func (pc *PresumidoCalculator) presumptionRates(kind domain.ActivityKind, hospital bool) (irpj, csll decimal.Decimal) {
	switch {
	case kind.SellsGoods():
		return pc.Rules.GoodsIRPJBase, pc.Rules.GoodsCSLLBase
	case hospital:
		return pc.Rules.HospitalIRPJBase, pc.Rules.HospitalCSLLBase
	default:
		return pc.Rules.ServiceIRPJBase, pc.Rules.ServiceCSLLBase
	}
}

// Scenario builds the Lucro Presumido scenario
func (pc *PresumidoCalculator) Scenario(in domain.ScenarioInput) domain.ScenarioResult {
	var b *resultBuilder
	if in.HasService() && in.HasGoods() {
		b = newResultBuilder("Lucro Presumido (misto)", domain.RegimePresumedMixed)
	} else {
		b = newResultBuilder("Lucro Presumido", domain.RegimePresumed)
	}

	revenue := in.MonthlyRevenue
	b.add("PIS (cumulativo)", pc.Rules.PISRate, revenue.Mul(pc.Rules.PISRate))
	b.add("COFINS (cumulativo)", pc.Rules.COFINSRate, revenue.Mul(pc.Rules.COFINSRate))

	irpjBase, csllBase := pc.PresumedBases(in)
	computeIncomeTax(pc.Rules.IncomeTax, irpjBase, csllBase).addTo(b, pc.Rules.IncomeTax)

	addMunicipalTaxes(b, in, pc.ICMSRate)
	addMinimumProLabore(b, pc.Payroll, pc.MinimumWage, in.Dependents)

	annual := decimal.Max(in.RBT12, revenue.Mul(decimal.NewFromInt(12)))
	if annual.GreaterThan(pc.Rules.AnnualLimit) {
		b.ineligible(fmt.Sprintf("Não elegível: faturamento anual de R$ %s excede o limite do Lucro Presumido de R$ %s",
			annual.StringFixed(2), pc.Rules.AnnualLimit.StringFixed(2)))
	} else {
		b.eligibilityNote("Elegível ao Lucro Presumido")
	}
	b.notes(fmt.Sprintf("Base presumida mensal: IRPJ R$ %s, CSLL R$ %s", money(irpjBase).StringFixed(2), money(csllBase).StringFixed(2)))

	return b.build(revenue)
}

// RealCalculator estimates Lucro Real from an assumed profit margin
type RealCalculator struct {
	Rules       domain.RealRules
	MinimumWage decimal.Decimal
	ICMSRate    decimal.Decimal
	Payroll     *PayrollCalculator
}

// NewRealCalculator creates a Lucro Real calculator from the legal constants
func NewRealCalculator(lc *domain.LegalConstants) *RealCalculator {
	return &RealCalculator{
		Rules:       lc.Real,
		MinimumWage: lc.MinimumWage,
		ICMSRate:    lc.Municipal.ICMSRate,
		Payroll:     NewPayrollCalculator(lc),
	}
}

// Scenario builds the Lucro Real estimate using in.AssumedMargin as the profit margin
func (rc *RealCalculator) Scenario(in domain.ScenarioInput) domain.ScenarioResult {
	b := newResultBuilder("Lucro Real (estimativa)", domain.RegimeReal)

	revenue := in.MonthlyRevenue
	b.add("PIS (não cumulativo)", rc.Rules.PISRate, revenue.Mul(rc.Rules.PISRate))
	b.add("COFINS (não cumulativo)", rc.Rules.COFINSRate, revenue.Mul(rc.Rules.COFINSRate))

	profit := revenue.Mul(in.AssumedMargin)
	computeIncomeTax(rc.Rules.IncomeTax, profit, profit).addTo(b, rc.Rules.IncomeTax)

	addMunicipalTaxes(b, in, rc.ICMSRate)
	addMinimumProLabore(b, rc.Payroll, rc.MinimumWage, in.Dependents)

	b.eligibilityNote("Elegível: qualquer empresa pode optar pelo Lucro Real")
	b.notes(fmt.Sprintf("Estimativa com margem de lucro de %s%% sem créditos de PIS/COFINS", percent(in.AssumedMargin).StringFixed(2)))

	return b.build(revenue)
}
