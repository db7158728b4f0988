package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Normalizer turns a raw ScenarioRequest into a fully populated ScenarioInput.
// Every default is applied here and nowhere else.
type Normalizer struct {
	Constants *domain.LegalConstants
	ISS       ISSLookup
}

// NewNormalizer creates a normalizer. iss may be nil when no ISS-fixo table is available.
func NewNormalizer(lc *domain.LegalConstants, iss ISSLookup) *Normalizer {
	return &Normalizer{Constants: lc, ISS: iss}
}

// defaultAnnex is used when an activity omits its Simples Nacional annex
func defaultAnnex(kind domain.ActivityKind) domain.Annex {
	switch kind {
	case domain.KindCommerce:
		return domain.AnnexI
	case domain.KindIndustry:
		return domain.AnnexII
	default:
		return domain.AnnexIII
	}
}

func nonNegative(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is %s", domain.ErrNegativeAmount, field, v.String())
	}
	return *v, nil
}

// Normalize validates req and applies defaults
func (n *Normalizer) Normalize(req *domain.ScenarioRequest) (domain.ScenarioInput, error) {
	if req == nil {
		return domain.ScenarioInput{}, fmt.Errorf("request is nil")
	}

	in := domain.ScenarioInput{ClientType: req.ClientType}
	switch in.ClientType {
	case "":
		in.ClientType = domain.ClientPessoaJuridica
	case domain.ClientPessoaFisica, domain.ClientPessoaJuridica:
	default:
		return domain.ScenarioInput{}, fmt.Errorf("invalid client type %q", req.ClientType)
	}

	topRevenue, err := nonNegative("monthlyRevenue", req.MonthlyRevenue)
	if err != nil {
		return domain.ScenarioInput{}, err
	}

	activities, err := n.normalizeActivities(req.Activities)
	if err != nil {
		return domain.ScenarioInput{}, err
	}
	if len(activities) == 0 {
		activities = []domain.Activity{domain.DefaultActivity(topRevenue)}
	}
	in.Activities = activities

	in.MonthlyRevenue = decimal.Zero
	for _, a := range activities {
		in.MonthlyRevenue = in.MonthlyRevenue.Add(a.MonthlyRevenue)
	}

	if in.RBT12, err = nonNegative("rbt12", req.RBT12); err != nil {
		return domain.ScenarioInput{}, err
	}
	if in.RBT12.IsZero() {
		in.RBT12 = in.MonthlyRevenue.Mul(decimal.NewFromInt(12))
	}

	if in.PayrollExpenses, err = nonNegative("payrollExpenses", req.PayrollExpenses); err != nil {
		return domain.ScenarioInput{}, err
	}
	if in.DeductibleExpenses, err = nonNegative("deductibleExpenses", req.DeductibleExpenses); err != nil {
		return domain.ScenarioInput{}, err
	}

	in.ISSRate = n.Constants.Municipal.DefaultISSRate
	if req.ISSRate != nil {
		rate, err := nonNegative("issRate", req.ISSRate)
		if err != nil {
			return domain.ScenarioInput{}, err
		}
		in.ISSRate = rate.Div(hundred)
	}

	in.AssumedMargin = n.Constants.Real.DefaultMargin
	if req.AssumedMarginPercent != nil {
		margin, err := nonNegative("assumedMarginPercent", req.AssumedMarginPercent)
		if err != nil {
			return domain.ScenarioInput{}, err
		}
		in.AssumedMargin = margin.Div(hundred)
	}

	in.NumberOfPartners = 1
	if req.NumberOfPartners != nil && *req.NumberOfPartners > 1 {
		in.NumberOfPartners = *req.NumberOfPartners
	}
	if req.Dependents != nil {
		if *req.Dependents < 0 {
			return domain.ScenarioInput{}, fmt.Errorf("dependents cannot be negative: %d", *req.Dependents)
		}
		in.Dependents = *req.Dependents
	}

	in.IsHospitalEquivalent = req.IsHospitalEquivalent != nil && *req.IsHospitalEquivalent
	in.IsUniprofessionalSociety = req.IsUniprofessionalSociety != nil && *req.IsUniprofessionalSociety

	in.FixedISSPerPartner = decimal.Zero
	if in.IsUniprofessionalSociety && n.ISS != nil && req.Municipality != "" {
		if amount, ok := n.ISS.FixedISSPerPartner(req.Municipality); ok {
			in.FixedISSPerPartner = amount
		}
	}

	return in, nil
}

func (n *Normalizer) normalizeActivities(reqs []domain.ActivityRequest) ([]domain.Activity, error) {
	activities := make([]domain.Activity, 0, len(reqs))
	for i, ar := range reqs {
		name := ar.Name
		if name == "" {
			name = fmt.Sprintf("Atividade %d", i+1)
		}

		revenue, err := nonNegative(fmt.Sprintf("activities[%d].revenue", i), ar.Revenue)
		if err != nil {
			return nil, err
		}

		kind := domain.KindService
		if ar.Type != "" {
			if kind, err = domain.ParseActivityKind(ar.Type); err != nil {
				return nil, fmt.Errorf("activity %q: %w", name, err)
			}
		}

		annex := defaultAnnex(kind)
		if ar.SimplesAnnex != "" {
			if annex, err = domain.ParseAnnex(ar.SimplesAnnex); err != nil {
				return nil, fmt.Errorf("activity %q: %w", name, err)
			}
		}

		activities = append(activities, domain.Activity{
			Name:           name,
			MonthlyRevenue: revenue,
			Kind:           kind,
			SimplesAnnex:   annex,
			MEIEligible:    ar.IsMEIEligible != nil && *ar.IsMEIEligible,
		})
	}
	return activities, nil
}
