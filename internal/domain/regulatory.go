package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// LegalConstants contains every legal table and rate the engine reads for one fiscal year.
// A value is built once (compiled in or loaded from YAML) and never mutated afterwards.
type LegalConstants struct {
	Metadata    RegulatoryMetadata   `yaml:"metadata" json:"metadata"`
	MinimumWage decimal.Decimal      `yaml:"minimum_wage" json:"minimumWage"`
	INSS        INSSRules            `yaml:"inss" json:"inss"`
	IRPF        IRPFRules            `yaml:"irpf" json:"irpf"`
	Simples     SimplesRules         `yaml:"simples_nacional" json:"simplesNacional"`
	MEI         MEIRules             `yaml:"mei" json:"mei"`
	Presumido   PresumidoRules       `yaml:"lucro_presumido" json:"lucroPresumido"`
	Real        RealRules            `yaml:"lucro_real" json:"lucroReal"`
	Payroll     PayrollChargeRules   `yaml:"payroll_charges" json:"payrollCharges"`
	Municipal   MunicipalTaxDefaults `yaml:"municipal" json:"municipal"`
}

// RegulatoryMetadata describes the table snapshot
type RegulatoryMetadata struct {
	FiscalYear  int    `yaml:"fiscal_year" json:"fiscalYear"`
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	Description string `yaml:"description" json:"description"`
}

// Bracket is one row of a progressive table. The last row of a table is a catch-all.
type Bracket struct {
	UpperLimit  decimal.Decimal `yaml:"upper_limit" json:"upperLimit"`
	NominalRate decimal.Decimal `yaml:"rate" json:"rate"`
	Deduction   decimal.Decimal `yaml:"deduction" json:"deduction"`
}

// BracketTable is an ordered list of brackets, ascending by UpperLimit
type BracketTable []Bracket

// Validate checks that the table is non-empty, strictly ascending by limit, and that
// rates never decrease as the limit grows
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: table is empty", ErrInvalidBracketTable)
	}
	for i, b := range t {
		if b.NominalRate.IsNegative() || b.Deduction.IsNegative() {
			return fmt.Errorf("%w: bracket %d has a negative rate or deduction", ErrInvalidBracketTable, i)
		}
		if i == 0 {
			if !b.UpperLimit.IsPositive() {
				return fmt.Errorf("%w: first limit must be positive", ErrInvalidBracketTable)
			}
			continue
		}
		prev := t[i-1]
		if !b.UpperLimit.GreaterThan(prev.UpperLimit) {
			return fmt.Errorf("%w: limit %s at bracket %d is not above %s", ErrInvalidBracketTable,
				b.UpperLimit.String(), i, prev.UpperLimit.String())
		}
		if b.NominalRate.LessThan(prev.NominalRate) {
			return fmt.Errorf("%w: rate decreases at bracket %d", ErrInvalidBracketTable, i)
		}
	}
	return nil
}

// INSSRules holds the employee/pró-labore contribution table
type INSSRules struct {
	Brackets BracketTable `yaml:"brackets" json:"brackets"`
	// Ceiling is the contribution salary cap ("teto")
	Ceiling decimal.Decimal `yaml:"ceiling" json:"ceiling"`
	// CeilingContribution is the fixed contribution owed at or above the cap
	CeilingContribution decimal.Decimal `yaml:"ceiling_contribution" json:"ceilingContribution"`
	// AutonomousRate is the contribuinte individual rate used by Carnê-Leão
	AutonomousRate decimal.Decimal `yaml:"autonomous_rate" json:"autonomousRate"`
}

// IRPFRules holds the monthly withholding table
type IRPFRules struct {
	Brackets              BracketTable    `yaml:"brackets" json:"brackets"`
	DeductionPerDependent decimal.Decimal `yaml:"deduction_per_dependent" json:"deductionPerDependent"`
}

// SimplesRules holds the five annex tables and the regime ceiling
type SimplesRules struct {
	AnnexI          BracketTable    `yaml:"annex_i" json:"annexI"`
	AnnexII         BracketTable    `yaml:"annex_ii" json:"annexII"`
	AnnexIII        BracketTable    `yaml:"annex_iii" json:"annexIII"`
	AnnexIV         BracketTable    `yaml:"annex_iv" json:"annexIV"`
	AnnexV          BracketTable    `yaml:"annex_v" json:"annexV"`
	AnnualLimit     decimal.Decimal `yaml:"annual_limit" json:"annualLimit"`
	FatorRThreshold decimal.Decimal `yaml:"fator_r_threshold" json:"fatorRThreshold"`
}

// Table returns the bracket table for an annex
func (s SimplesRules) Table(a Annex) BracketTable {
	switch a {
	case AnnexI:
		return s.AnnexI
	case AnnexII:
		return s.AnnexII
	case AnnexIII:
		return s.AnnexIII
	case AnnexIV:
		return s.AnnexIV
	case AnnexV:
		return s.AnnexV
	default:
		return nil
	}
}

// MEIRules holds the MEI ceiling and the fixed monthly DAS components
type MEIRules struct {
	AnnualLimit decimal.Decimal `yaml:"annual_limit" json:"annualLimit"`
	// INSSRate applies to the minimum wage
	INSSRate   decimal.Decimal `yaml:"inss_rate" json:"inssRate"`
	ICMSAmount decimal.Decimal `yaml:"icms_amount" json:"icmsAmount"`
	ISSAmount  decimal.Decimal `yaml:"iss_amount" json:"issAmount"`
}

// PresumidoRules holds presumption bases and federal rates for Lucro Presumido
type PresumidoRules struct {
	ServiceIRPJBase  decimal.Decimal `yaml:"service_irpj_base" json:"serviceIrpjBase"`
	ServiceCSLLBase  decimal.Decimal `yaml:"service_csll_base" json:"serviceCsllBase"`
	GoodsIRPJBase    decimal.Decimal `yaml:"goods_irpj_base" json:"goodsIrpjBase"`
	GoodsCSLLBase    decimal.Decimal `yaml:"goods_csll_base" json:"goodsCsllBase"`
	HospitalIRPJBase decimal.Decimal `yaml:"hospital_irpj_base" json:"hospitalIrpjBase"`
	HospitalCSLLBase decimal.Decimal `yaml:"hospital_csll_base" json:"hospitalCsllBase"`
	PISRate          decimal.Decimal `yaml:"pis_rate" json:"pisRate"`
	COFINSRate       decimal.Decimal `yaml:"cofins_rate" json:"cofinsRate"`
	AnnualLimit      decimal.Decimal `yaml:"annual_limit" json:"annualLimit"`
	IncomeTax        IncomeTaxRules  `yaml:"income_tax" json:"incomeTax"`
}

// RealRules holds the non-cumulative contribution rates and the default margin for Lucro Real
type RealRules struct {
	PISRate       decimal.Decimal `yaml:"pis_rate" json:"pisRate"`
	COFINSRate    decimal.Decimal `yaml:"cofins_rate" json:"cofinsRate"`
	DefaultMargin decimal.Decimal `yaml:"default_margin" json:"defaultMargin"`
	IncomeTax     IncomeTaxRules  `yaml:"income_tax" json:"incomeTax"`
}

// IncomeTaxRules holds the corporate IRPJ/CSLL rates shared by Presumido and Real
type IncomeTaxRules struct {
	IRPJRate         decimal.Decimal `yaml:"irpj_rate" json:"irpjRate"`
	IRPJSurtaxRate   decimal.Decimal `yaml:"irpj_surtax_rate" json:"irpjSurtaxRate"`
	MonthlySurtaxCap decimal.Decimal `yaml:"monthly_surtax_threshold" json:"monthlySurtaxThreshold"`
	CSLLRate         decimal.Decimal `yaml:"csll_rate" json:"csllRate"`
}

// PayrollChargeRules holds employer-side charges
type PayrollChargeRules struct {
	CPPRate        decimal.Decimal `yaml:"cpp_rate" json:"cppRate"`
	FGTSRate       decimal.Decimal `yaml:"fgts_rate" json:"fgtsRate"`
	RATRate        decimal.Decimal `yaml:"rat_rate" json:"ratRate"`
	ThirdPartyRate decimal.Decimal `yaml:"third_party_rate" json:"thirdPartyRate"`
}

// MunicipalTaxDefaults holds fallbacks used when the caller gives no municipal rate
type MunicipalTaxDefaults struct {
	DefaultISSRate decimal.Decimal `yaml:"default_iss_rate" json:"defaultIssRate"`
	// ICMSRate is a placeholder; ICMS depends on the state and product and is not estimated
	ICMSRate decimal.Decimal `yaml:"icms_rate" json:"icmsRate"`
}

// Validate checks every bracket table and the scalar values the engine divides by or caps with
func (lc *LegalConstants) Validate() error {
	tables := []struct {
		name  string
		table BracketTable
	}{
		{"inss", lc.INSS.Brackets},
		{"irpf", lc.IRPF.Brackets},
		{"simples annex I", lc.Simples.AnnexI},
		{"simples annex II", lc.Simples.AnnexII},
		{"simples annex III", lc.Simples.AnnexIII},
		{"simples annex IV", lc.Simples.AnnexIV},
		{"simples annex V", lc.Simples.AnnexV},
	}
	for _, t := range tables {
		if err := t.table.Validate(); err != nil {
			return fmt.Errorf("%s: %w", t.name, err)
		}
	}
	if !lc.MinimumWage.IsPositive() {
		return fmt.Errorf("minimum wage must be positive")
	}
	if !lc.INSS.Ceiling.IsPositive() {
		return fmt.Errorf("INSS ceiling must be positive")
	}
	if !lc.MEI.AnnualLimit.IsPositive() {
		return fmt.Errorf("MEI annual limit must be positive")
	}
	if !lc.Simples.FatorRThreshold.IsPositive() {
		return fmt.Errorf("Fator R threshold must be positive")
	}
	return nil
}
