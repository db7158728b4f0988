package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ActivityKind classifies an activity for tax purposes
type ActivityKind string

const (
	KindCommerce ActivityKind = "commerce"
	KindService  ActivityKind = "service"
	KindIndustry ActivityKind = "industry"
)

// IsValid reports whether the kind is one of the known activity kinds
func (k ActivityKind) IsValid() bool {
	switch k {
	case KindCommerce, KindService, KindIndustry:
		return true
	default:
		return false
	}
}

// SellsGoods reports whether revenue of this kind is goods circulation (ICMS side)
func (k ActivityKind) SellsGoods() bool {
	return k == KindCommerce || k == KindIndustry
}

// ParseActivityKind accepts the English names plus the Portuguese labels used by the web form
func ParseActivityKind(s string) (ActivityKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "commerce", "comercio", "comércio":
		return KindCommerce, nil
	case "service", "servico", "serviço", "servicos", "serviços":
		return KindService, nil
	case "industry", "industria", "indústria":
		return KindIndustry, nil
	}
	return "", fmt.Errorf("%w: unknown activity type %q", ErrInvalidActivity, s)
}

// Annex identifies one of the five Simples Nacional annexes
type Annex int

const (
	AnnexI Annex = iota + 1
	AnnexII
	AnnexIII
	AnnexIV
	AnnexV
)

func (a Annex) String() string {
	switch a {
	case AnnexI:
		return "I"
	case AnnexII:
		return "II"
	case AnnexIII:
		return "III"
	case AnnexIV:
		return "IV"
	case AnnexV:
		return "V"
	default:
		return "?"
	}
}

// MarshalText renders the annex as its roman numeral
func (a Annex) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, fmt.Errorf("%w: annex %d", ErrInvalidActivity, int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText accepts anything ParseAnnex accepts
func (a *Annex) UnmarshalText(text []byte) error {
	parsed, err := ParseAnnex(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// IsValid reports whether a is within I..V
func (a Annex) IsValid() bool {
	return a >= AnnexI && a <= AnnexV
}

// ParseAnnex accepts roman numerals ("III", "Anexo III") or digits ("3")
func ParseAnnex(s string) (Annex, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "ANEXO")
	v = strings.TrimPrefix(v, "ANNEX")
	v = strings.TrimSpace(v)
	switch v {
	case "I", "1":
		return AnnexI, nil
	case "II", "2":
		return AnnexII, nil
	case "III", "3":
		return AnnexIII, nil
	case "IV", "4":
		return AnnexIV, nil
	case "V", "5":
		return AnnexV, nil
	}
	return 0, fmt.Errorf("%w: unknown Simples Nacional annex %q", ErrInvalidActivity, s)
}

// Activity is one revenue line of the business, already normalized
type Activity struct {
	Name           string          `yaml:"name" json:"name"`
	MonthlyRevenue decimal.Decimal `yaml:"monthly_revenue" json:"monthlyRevenue"`
	Kind           ActivityKind    `yaml:"kind" json:"kind"`
	SimplesAnnex   Annex           `yaml:"simples_annex" json:"simplesAnnex"`
	MEIEligible    bool            `yaml:"mei_eligible" json:"meiEligible"`
}

// DefaultActivity is synthesized when a request carries no activities
func DefaultActivity(monthlyRevenue decimal.Decimal) Activity {
	return Activity{
		Name:           "Serviço genérico",
		MonthlyRevenue: monthlyRevenue,
		Kind:           KindService,
		SimplesAnnex:   AnnexIII,
		MEIEligible:    true,
	}
}
