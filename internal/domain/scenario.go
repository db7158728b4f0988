package domain

import (
	"github.com/shopspring/decimal"
)

// ClientType is the caller's declared profile. It does not change which regimes are computed.
type ClientType string

const (
	ClientPessoaFisica   ClientType = "pf"
	ClientPessoaJuridica ClientType = "pj"
)

// ScenarioRequest is the raw caller payload (web form, YAML/JSON file or HTTP body).
// Optional fields are pointers so that "absent" differs from an explicit zero.
// Keys are identical in YAML and JSON so either format can be loaded with the same parser.
type ScenarioRequest struct {
	ClientType               ClientType        `yaml:"clientType" json:"clientType"`
	MonthlyRevenue           *decimal.Decimal  `yaml:"monthlyRevenue,omitempty" json:"monthlyRevenue,omitempty"`
	RBT12                    *decimal.Decimal  `yaml:"rbt12,omitempty" json:"rbt12,omitempty"`
	PayrollExpenses          *decimal.Decimal  `yaml:"payrollExpenses,omitempty" json:"payrollExpenses,omitempty"`
	ISSRate                  *decimal.Decimal  `yaml:"issRate,omitempty" json:"issRate,omitempty"` // percent
	NumberOfPartners         *int              `yaml:"numberOfPartners,omitempty" json:"numberOfPartners,omitempty"`
	IsHospitalEquivalent     *bool             `yaml:"isHospitalEquivalent,omitempty" json:"isHospitalEquivalent,omitempty"`
	IsUniprofessionalSociety *bool             `yaml:"isUniprofessionalSociety,omitempty" json:"isUniprofessionalSociety,omitempty"`
	Municipality             string            `yaml:"municipality,omitempty" json:"municipality,omitempty"`
	AssumedMarginPercent     *decimal.Decimal  `yaml:"assumedMarginPercent,omitempty" json:"assumedMarginPercent,omitempty"`
	DeductibleExpenses       *decimal.Decimal  `yaml:"deductibleExpenses,omitempty" json:"deductibleExpenses,omitempty"`
	Dependents               *int              `yaml:"dependents,omitempty" json:"dependents,omitempty"`
	Activities               []ActivityRequest `yaml:"activities,omitempty" json:"activities,omitempty"`
}

// ActivityRequest is one activity as the caller sends it
type ActivityRequest struct {
	Name          string           `yaml:"name" json:"name"`
	Revenue       *decimal.Decimal `yaml:"revenue,omitempty" json:"revenue,omitempty"`
	Type          string           `yaml:"type" json:"type"`
	SimplesAnnex  string           `yaml:"simplesAnnex" json:"simplesAnnex"`
	IsMEIEligible *bool            `yaml:"isMeiEligible,omitempty" json:"isMeiEligible,omitempty"`
}

// ScenarioInput is the fully populated engine input. Every default has already been applied;
// calculators read it as-is and never re-default.
type ScenarioInput struct {
	ClientType               ClientType      `json:"clientType"`
	Activities               []Activity      `json:"activities"`
	MonthlyRevenue           decimal.Decimal `json:"monthlyRevenue"`
	RBT12                    decimal.Decimal `json:"rbt12"`
	PayrollExpenses          decimal.Decimal `json:"payrollExpenses"`
	ISSRate                  decimal.Decimal `json:"issRate"` // fraction
	NumberOfPartners         int             `json:"numberOfPartners"`
	IsHospitalEquivalent     bool            `json:"isHospitalEquivalent"`
	IsUniprofessionalSociety bool            `json:"isUniprofessionalSociety"`
	FixedISSPerPartner       decimal.Decimal `json:"fixedIssPerPartner"`
	AssumedMargin            decimal.Decimal `json:"assumedMargin"` // fraction
	DeductibleExpenses       decimal.Decimal `json:"deductibleExpenses"`
	Dependents               int             `json:"dependents"`
}

// ServiceRevenue sums revenue of service activities
func (in ScenarioInput) ServiceRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, a := range in.Activities {
		if a.Kind == KindService {
			total = total.Add(a.MonthlyRevenue)
		}
	}
	return total
}

// GoodsRevenue sums revenue of commerce and industry activities
func (in ScenarioInput) GoodsRevenue() decimal.Decimal {
	total := decimal.Zero
	for _, a := range in.Activities {
		if a.Kind.SellsGoods() {
			total = total.Add(a.MonthlyRevenue)
		}
	}
	return total
}

// HasService reports whether any activity is a service
func (in ScenarioInput) HasService() bool {
	for _, a := range in.Activities {
		if a.Kind == KindService {
			return true
		}
	}
	return false
}

// HasGoods reports whether any activity is commerce or industry
func (in ScenarioInput) HasGoods() bool {
	for _, a := range in.Activities {
		if a.Kind.SellsGoods() {
			return true
		}
	}
	return false
}

// Category separates individual (PF) baselines from company (PJ) regimes
type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryCorporate Category = "corporate"
)

// RegimeKind is the closed set of scenario variants the engine produces
type RegimeKind string

const (
	RegimeMEI           RegimeKind = "mei"
	RegimeSimplesSingle RegimeKind = "simples_single"
	RegimeSimplesMixed  RegimeKind = "simples_mixed"
	RegimePresumed      RegimeKind = "presumed"
	RegimePresumedMixed RegimeKind = "presumed_mixed"
	RegimeReal          RegimeKind = "real"
	RegimeCarneLeao     RegimeKind = "carne_leao"
	RegimeCLT           RegimeKind = "clt"
)

// AllRegimeKinds lists every variant in a fixed display order
func AllRegimeKinds() []RegimeKind {
	return []RegimeKind{
		RegimeMEI,
		RegimeSimplesSingle,
		RegimeSimplesMixed,
		RegimePresumed,
		RegimePresumedMixed,
		RegimeReal,
		RegimeCarneLeao,
		RegimeCLT,
	}
}

// Category returns which side of the PF/PJ split a kind belongs to
func (k RegimeKind) Category() Category {
	switch k {
	case RegimeCarneLeao, RegimeCLT:
		return CategoryPersonal
	case RegimeMEI, RegimeSimplesSingle, RegimeSimplesMixed,
		RegimePresumed, RegimePresumedMixed, RegimeReal:
		return CategoryCorporate
	default:
		return ""
	}
}

// IsValid reports whether k is one of the declared variants
func (k RegimeKind) IsValid() bool {
	return k.Category() != ""
}

// Order is the position of k in AllRegimeKinds, used as the last ranking tie-breaker
func (k RegimeKind) Order() int {
	for i, kind := range AllRegimeKinds() {
		if kind == k {
			return i
		}
	}
	return len(AllRegimeKinds())
}

// TaxLineItem is one row of a scenario's tax breakdown
type TaxLineItem struct {
	Label       string          `json:"label" yaml:"label"`
	RatePercent decimal.Decimal `json:"ratePercent" yaml:"rate_percent"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount"`
}

// ProLaboreAnalysis details the withholding on the owner's compensation (or CLT salary)
type ProLaboreAnalysis struct {
	BaseAmount decimal.Decimal `json:"baseAmount" yaml:"base_amount"`
	INSSAmount decimal.Decimal `json:"inssAmount" yaml:"inss_amount"`
	IRRFAmount decimal.Decimal `json:"irrfAmount" yaml:"irrf_amount"`
	NetAmount  decimal.Decimal `json:"netAmount" yaml:"net_amount"`
}

// ScenarioResult is the outcome of one regime calculator. It is built once and not modified.
type ScenarioResult struct {
	Name                   string             `json:"name" yaml:"name"`
	Category               Category           `json:"category" yaml:"category"`
	Kind                   RegimeKind         `json:"regimeKind" yaml:"regime_kind"`
	IsEligible             bool               `json:"isEligible" yaml:"is_eligible"`
	EligibilityNote        string             `json:"eligibilityNote" yaml:"eligibility_note"`
	TotalTax               decimal.Decimal    `json:"totalTax" yaml:"total_tax"`
	EffectiveRatePercent   decimal.Decimal    `json:"effectiveRatePercent" yaml:"effective_rate_percent"`
	NetDistributableProfit decimal.Decimal    `json:"netDistributableProfit" yaml:"net_distributable_profit"`
	TaxLineItems           []TaxLineItem      `json:"taxLineItems" yaml:"tax_line_items"`
	ProLabore              *ProLaboreAnalysis `json:"proLaboreAnalysis,omitempty" yaml:"pro_labore_analysis,omitempty"`
	Notes                  string             `json:"notes" yaml:"notes"`
}

// RankedScenario wraps a result with its position after ranking
type RankedScenario struct {
	ScenarioResult `yaml:",inline"`
	Rank           int  `json:"rank" yaml:"rank"`
	IsBest         bool `json:"isBest" yaml:"is_best"`
	IsWorst        bool `json:"isWorst" yaml:"is_worst"`
}

// ScenarioReport is the engine output for one request
type ScenarioReport struct {
	FiscalYear int              `json:"fiscalYear" yaml:"fiscal_year"`
	Input      ScenarioInput    `json:"input" yaml:"-"`
	FatorR     FatorRResult     `json:"fatorR" yaml:"fator_r"`
	Scenarios  []RankedScenario `json:"scenarios" yaml:"scenarios"`
}

// Best returns the scenario flagged best, if any
func (r *ScenarioReport) Best() (RankedScenario, bool) {
	for _, s := range r.Scenarios {
		if s.IsBest {
			return s, true
		}
	}
	return RankedScenario{}, false
}

// Find returns the first scenario of the given kind
func (r *ScenarioReport) Find(kind RegimeKind) (RankedScenario, bool) {
	for _, s := range r.Scenarios {
		if s.Kind == kind {
			return s, true
		}
	}
	return RankedScenario{}, false
}

// FatorRResult is the payroll-to-revenue test outcome shared with callers
type FatorRResult struct {
	EffectivePayroll     decimal.Decimal `json:"effectivePayroll" yaml:"effective_payroll"`
	Ratio                decimal.Decimal `json:"ratio" yaml:"ratio"`
	QualifiesForAnnexIII bool            `json:"qualifiesForAnnexIII" yaml:"qualifies_for_annex_iii"`
	TargetPayroll        decimal.Decimal `json:"targetPayroll" yaml:"target_payroll"`
	Shortfall            decimal.Decimal `json:"shortfall" yaml:"shortfall"`
}
