package calculation

import (
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// PayrollCalculator computes withholding and employer charges on a salary or pró-labore
type PayrollCalculator struct {
	INSS    domain.INSSRules
	IRPF    domain.IRPFRules
	Charges domain.PayrollChargeRules
}

// NewPayrollCalculator creates a payroll calculator from the legal constants
func NewPayrollCalculator(lc *domain.LegalConstants) *PayrollCalculator {
	return &PayrollCalculator{
		INSS:    lc.INSS,
		IRPF:    lc.IRPF,
		Charges: lc.Payroll,
	}
}

// INSSWithholding is the employee contribution. Above the ceiling the fixed ceiling
// contribution applies instead of the table.
func (pc *PayrollCalculator) INSSWithholding(base decimal.Decimal) decimal.Decimal {
	if base.GreaterThan(pc.INSS.Ceiling) {
		return pc.INSS.CeilingContribution
	}
	return EvaluateBracket(base, pc.INSS.Brackets)
}

// IRRFWithholding is the monthly income tax on the base already net of INSS
func (pc *PayrollCalculator) IRRFWithholding(baseAfterINSS decimal.Decimal, dependents int) decimal.Decimal {
	base := baseAfterINSS
	if dependents > 0 {
		base = base.Sub(pc.IRPF.DeductionPerDependent.Mul(decimal.NewFromInt(int64(dependents))))
	}
	return EvaluateBracket(base, pc.IRPF.Brackets)
}

// EmployerCPP is the patronal social contribution on base
func (pc *PayrollCalculator) EmployerCPP(base decimal.Decimal) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	return base.Mul(pc.Charges.CPPRate)
}

// EmployerCharges are the remaining employer-side charges of a CLT payroll
type EmployerCharges struct {
	CPP        decimal.Decimal
	FGTS       decimal.Decimal
	RAT        decimal.Decimal
	ThirdParty decimal.Decimal
}

// Total sums every charge
func (ec EmployerCharges) Total() decimal.Decimal {
	return ec.CPP.Add(ec.FGTS).Add(ec.RAT).Add(ec.ThirdParty)
}

// EmployerChargesFor computes every employer charge on a gross salary
func (pc *PayrollCalculator) EmployerChargesFor(gross decimal.Decimal) EmployerCharges {
	return EmployerCharges{
		CPP:        gross.Mul(pc.Charges.CPPRate),
		FGTS:       gross.Mul(pc.Charges.FGTSRate),
		RAT:        gross.Mul(pc.Charges.RATRate),
		ThirdParty: gross.Mul(pc.Charges.ThirdPartyRate),
	}
}

// withholding holds unrounded pró-labore figures so callers can add them to a scenario total
type withholding struct {
	base decimal.Decimal
	inss decimal.Decimal
	irrf decimal.Decimal
}

func (w withholding) net() decimal.Decimal {
	return w.base.Sub(w.inss).Sub(w.irrf)
}

func (w withholding) analysis() domain.ProLaboreAnalysis {
	return domain.ProLaboreAnalysis{
		BaseAmount: money(w.base),
		INSSAmount: money(w.inss),
		IRRFAmount: money(w.irrf),
		NetAmount:  money(w.net()),
	}
}

// ProLabore computes INSS and IRRF on an owner's compensation
func (pc *PayrollCalculator) ProLabore(base decimal.Decimal, dependents int) domain.ProLaboreAnalysis {
	return pc.withhold(base, dependents).analysis()
}

func (pc *PayrollCalculator) withhold(base decimal.Decimal, dependents int) withholding {
	inss := pc.INSSWithholding(base)
	return withholding{
		base: base,
		inss: inss,
		irrf: pc.IRRFWithholding(base.Sub(inss), dependents),
	}
}
