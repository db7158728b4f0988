package breakeven

import (
	"context"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Dimension is the input the solver moves while looking for a crossover
type Dimension string

const (
	DimensionRevenue Dimension = "revenue" // monthly revenue, activities scaled proportionally
	DimensionPayroll Dimension = "payroll" // monthly payroll expenses
)

// IsValid reports whether d is a known dimension
func (d Dimension) IsValid() bool {
	return d == DimensionRevenue || d == DimensionPayroll
}

// Label is the Portuguese name used in reports
func (d Dimension) Label() string {
	if d == DimensionPayroll {
		return "folha de pagamento mensal"
	}
	return "faturamento mensal"
}

// Evaluator is the part of the calculation engine the solver needs
type Evaluator interface {
	Evaluate(ctx context.Context, in domain.ScenarioInput) (*domain.ScenarioReport, error)
}

// Request describes one crossover search between two regimes
type Request struct {
	Input     domain.ScenarioInput
	Dimension Dimension
	Regime    domain.RegimeKind
	Against   domain.RegimeKind // empty means every other regime
	Min       decimal.Decimal   // zero picks a default from the input
	Max       decimal.Decimal
}

// Result is the outcome of one search. When Found is false the two regimes keep the
// same order over the whole range.
type Result struct {
	Dimension       Dimension         `json:"dimension"`
	Regime          domain.RegimeKind `json:"regime"`
	Against         domain.RegimeKind `json:"against"`
	Min             decimal.Decimal   `json:"min"`
	Max             decimal.Decimal   `json:"max"`
	Found           bool              `json:"found"`
	Value           decimal.Decimal   `json:"value"`
	RegimeTax       decimal.Decimal   `json:"regimeTax"`
	AgainstTax      decimal.Decimal   `json:"againstTax"`
	CheaperBelow    domain.RegimeKind `json:"cheaperBelow"`
	Iterations      int               `json:"iterations"`
	ConvergenceInfo string            `json:"convergenceInfo"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal // width of the final bracket, in reais
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromInt(1),
		MaxIterations: 60,
	}
}

// Validate checks the request before any evaluation happens
func (r *Request) Validate() error {
	if !r.Dimension.IsValid() {
		return &BreakEvenError{Operation: "validate", Message: "unknown dimension " + string(r.Dimension)}
	}
	if !r.Regime.IsValid() {
		return &BreakEvenError{Operation: "validate", Message: "unknown regime " + string(r.Regime)}
	}
	if r.Against != "" {
		if !r.Against.IsValid() {
			return &BreakEvenError{Operation: "validate", Message: "unknown regime " + string(r.Against)}
		}
		if family(r.Against) == family(r.Regime) {
			return &BreakEvenError{Operation: "validate", Message: "a regime cannot be compared with itself"}
		}
	}
	if r.Min.IsNegative() {
		return &BreakEvenError{Operation: "validate", Message: "min cannot be negative"}
	}
	if !r.Max.IsZero() && r.Max.LessThanOrEqual(r.Min) {
		return &BreakEvenError{Operation: "validate", Message: "max must be greater than min"}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
