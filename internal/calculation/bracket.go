package calculation

import (
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// SelectBracket returns the first bracket whose upper limit is at or above base.
// Bases above the last explicit limit fall into the last bracket.
func SelectBracket(base decimal.Decimal, table domain.BracketTable) domain.Bracket {
	for _, b := range table {
		if base.LessThanOrEqual(b.UpperLimit) {
			return b
		}
	}
	if len(table) == 0 {
		return domain.Bracket{}
	}
	return table[len(table)-1]
}

// EvaluateBracket applies "base x rate - deduction" from the selected bracket, floored at zero.
// INSS, IRRF and the Simples Nacional effective rate all go through here.
func EvaluateBracket(base decimal.Decimal, table domain.BracketTable) decimal.Decimal {
	if !base.IsPositive() {
		return decimal.Zero
	}
	b := SelectBracket(base, table)
	tax := base.Mul(b.NominalRate).Sub(b.Deduction)
	if tax.IsNegative() {
		return decimal.Zero
	}
	return tax
}

// money rounds a currency amount for output. Intermediate values are never rounded.
func money(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// percent converts a fraction to a rounded percentage
func percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred).Round(2)
}

// ratio divides a by b, returning zero when b is zero
func ratio(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b)
}
