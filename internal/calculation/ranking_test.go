package calculation

import (
	"testing"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario(name string, kind domain.RegimeKind, eligible bool, tax string) domain.ScenarioResult {
	return domain.ScenarioResult{Name: name, Kind: kind, Category: kind.Category(), IsEligible: eligible, TotalTax: d(tax)}
}

func TestLessScenario(t *testing.T) {
	cheapIneligible := scenario("MEI", domain.RegimeMEI, false, "80")
	expensiveEligible := scenario("CLT", domain.RegimeCLT, true, "5000")

	assert.True(t, LessScenario(expensiveEligible, cheapIneligible), "eligibility wins over tax")
	assert.False(t, LessScenario(cheapIneligible, expensiveEligible))

	a := scenario("A", domain.RegimeReal, true, "100")
	b := scenario("B", domain.RegimeReal, true, "200")
	assert.True(t, LessScenario(a, b))
	assert.False(t, LessScenario(b, a))

	tieSimples := scenario("Simples", domain.RegimeSimplesSingle, true, "100")
	tiePresumido := scenario("Presumido", domain.RegimePresumed, true, "100")
	assert.True(t, LessScenario(tieSimples, tiePresumido), "ties use the regime order")
	assert.False(t, LessScenario(a, a))
}

func TestRankScenarios(t *testing.T) {
	input := []domain.ScenarioResult{
		scenario("CLT", domain.RegimeCLT, true, "2500"),
		scenario("MEI", domain.RegimeMEI, false, "80"),
		scenario("Simples", domain.RegimeSimplesSingle, true, "840"),
		scenario("Presumido", domain.RegimePresumed, true, "1950"),
	}

	ranked := RankScenarios(input)
	require.Len(t, ranked, 4)

	names := make([]string, len(ranked))
	for i, r := range ranked {
		names[i] = r.Name
		assert.Equal(t, i+1, r.Rank)
	}
	assert.Equal(t, []string{"Simples", "Presumido", "CLT", "MEI"}, names)
	assert.True(t, ranked[0].IsBest)
	assert.True(t, ranked[3].IsWorst)
	assert.False(t, ranked[1].IsBest || ranked[1].IsWorst)

	assert.Equal(t, "CLT", input[0].Name, "input slice is not reordered")
}

func TestRankScenariosNoEligible(t *testing.T) {
	ranked := RankScenarios([]domain.ScenarioResult{
		scenario("MEI", domain.RegimeMEI, false, "80"),
		scenario("Simples", domain.RegimeSimplesSingle, false, "50"),
	})
	assert.False(t, ranked[0].IsBest, "an ineligible scenario is never best")
	assert.Equal(t, "Simples", ranked[0].Name)
	assert.True(t, ranked[1].IsWorst)

	assert.Empty(t, RankScenarios(nil))
}
