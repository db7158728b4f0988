package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// PersonalCalculator computes the two individual (PF) baselines
type PersonalCalculator struct {
	Payroll *PayrollCalculator
}

// NewPersonalCalculator creates the PF baseline calculator from the legal constants
func NewPersonalCalculator(lc *domain.LegalConstants) *PersonalCalculator {
	return &PersonalCalculator{Payroll: NewPayrollCalculator(lc)}
}

// CarneLeao taxes the revenue as autonomous income: 20% INSS capped at the ceiling,
// then the monthly IRPF table on what remains
func (pc *PersonalCalculator) CarneLeao(in domain.ScenarioInput) domain.ScenarioResult {
	b := newResultBuilder("Pessoa Física (Carnê-Leão)", domain.RegimeCarneLeao)

	base := in.MonthlyRevenue.Sub(in.DeductibleExpenses)
	if base.IsNegative() {
		base = decimal.Zero
	}

	rules := pc.Payroll.INSS
	inss := decimal.Min(base, rules.Ceiling).Mul(rules.AutonomousRate)
	irpf := pc.Payroll.IRRFWithholding(base.Sub(inss), in.Dependents)

	b.add("INSS contribuinte individual", rules.AutonomousRate, inss)
	b.add("IRPF (Carnê-Leão)", ratio(irpf, base), irpf)

	b.eligibilityNote("Elegível: atuação como profissional autônomo")
	b.notes(fmt.Sprintf("Base tributável R$ %s após despesas dedutíveis de R$ %s",
		money(base).StringFixed(2), money(in.DeductibleExpenses).StringFixed(2)))

	return b.build(in.MonthlyRevenue)
}

// CLT treats the revenue as a gross salary. Total tax covers both the employee withholding
// and the employer charges; net distributable profit is the employee's net pay.
func (pc *PersonalCalculator) CLT(in domain.ScenarioInput) domain.ScenarioResult {
	b := newResultBuilder("CLT (baseline)", domain.RegimeCLT)

	gross := in.MonthlyRevenue
	w := pc.Payroll.withhold(gross, in.Dependents)
	charges := pc.Payroll.EmployerChargesFor(gross)
	rules := pc.Payroll.Charges

	b.add("INSS empregado", ratio(w.inss, gross), w.inss)
	b.add("IRRF empregado", ratio(w.irrf, gross), w.irrf)
	b.add("INSS patronal", rules.CPPRate, charges.CPP)
	b.add("FGTS", rules.FGTSRate, charges.FGTS)
	b.add("RAT", rules.RATRate, charges.RAT)
	b.add("Terceiros (Sistema S)", rules.ThirdPartyRate, charges.ThirdParty)
	b.proLabore(w.analysis())

	b.eligibilityNote("Comparativo: simulação de vínculo empregatício, não é uma opção da empresa")
	b.notes(fmt.Sprintf("Custo total do empregador R$ %s", money(gross.Add(charges.Total())).StringFixed(2)))

	r := b.build(gross)
	r.NetDistributableProfit = money(w.net())
	return r
}
