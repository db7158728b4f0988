package calculation

import (
	"sort"

	"github.com/rgehrsitz/rtgo/internal/domain"
)

// LessScenario is the ranking order: eligible before ineligible, then ascending total tax.
// Ties fall back to the regime display order and then the name so the order is total.
func LessScenario(a, b domain.ScenarioResult) bool {
	if a.IsEligible != b.IsEligible {
		return a.IsEligible
	}
	if c := a.TotalTax.Cmp(b.TotalTax); c != 0 {
		return c < 0
	}
	if a.Kind.Order() != b.Kind.Order() {
		return a.Kind.Order() < b.Kind.Order()
	}
	return a.Name < b.Name
}

// RankScenarios orders results and flags the best and worst. The first entry is best only
// when it is eligible; the last entry is always worst.
func RankScenarios(results []domain.ScenarioResult) []domain.RankedScenario {
	sorted := make([]domain.ScenarioResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return LessScenario(sorted[i], sorted[j])
	})

	ranked := make([]domain.RankedScenario, len(sorted))
	for i, r := range sorted {
		ranked[i] = domain.RankedScenario{ScenarioResult: r, Rank: i + 1}
	}
	if len(ranked) > 0 {
		ranked[0].IsBest = ranked[0].IsEligible
		ranked[len(ranked)-1].IsWorst = true
	}
	return ranked
}
