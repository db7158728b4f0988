package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/compare"
	"github.com/rgehrsitz/rtgo/internal/config"
	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/legal"
)

// sweepSteps is the number of intervals in the payroll sweep shown on the chart
const sweepSteps = 20

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Inputs
	configPath string
	registry   *legal.Registry
	iss        calculation.ISSLookup
	year       int

	// Results
	request    *domain.ScenarioRequest
	report     *domain.ScenarioReport
	comparison *compare.ComparisonSet
	sweep      []calculation.SweepPoint

	table table.Model

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model for a scenario file
func NewModel(configPath string, registry *legal.Registry, year int) Model {
	if registry == nil {
		registry = legal.Default()
	}
	return Model{
		currentScene:   SceneRanking,
		configPath:     configPath,
		registry:       registry,
		year:           year,
		table:          newRankingTable(),
		width:          100,
		height:         30,
		loading:        true,
		loadingMessage: "Carregando cenário...",
	}
}

// WithISSLookup sets the ISS-fixo table used for uniprofessional societies
func (m Model) WithISSLookup(l calculation.ISSLookup) Model {
	m.iss = l
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadRequestCmd(m.configPath)
}

// Report returns the report currently displayed
func (m Model) Report() *domain.ScenarioReport {
	return m.report
}

// loadRequestCmd returns a command that loads the scenario file
func loadRequestCmd(path string) tea.Cmd {
	return func() tea.Msg {
		req, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return RequestLoadedMsg{Request: req}
	}
}

// calculateCmd runs the engine, the comparison and a payroll sweep for one fiscal year
func calculateCmd(req *domain.ScenarioRequest, registry *legal.Registry, iss calculation.ISSLookup, year int) tea.Cmd {
	return func() tea.Msg {
		lc, err := registry.Get(year)
		if err != nil {
			return CalculationCompleteMsg{Year: year, Err: err}
		}

		engine := calculation.NewCalculationEngine(lc)
		if iss != nil {
			engine.SetISSLookup(iss)
		}

		ctx := context.Background()
		report, err := engine.Run(ctx, req)
		if err != nil {
			return CalculationCompleteMsg{Year: year, Err: err}
		}

		comparison, err := compare.NewCompareEngine(engine).FromReport(report, compare.CompareOptions{})
		if err != nil {
			return CalculationCompleteMsg{Year: year, Err: err}
		}

		var sweep []calculation.SweepPoint
		upper := report.Input.MonthlyRevenue.Mul(decimal.RequireFromString("0.4")).Round(0)
		if upper.IsPositive() {
			sweep, err = engine.SweepPayroll(ctx, req, decimal.Zero, upper, upper.Div(decimal.NewFromInt(sweepSteps)))
			if err != nil {
				return CalculationCompleteMsg{Year: year, Err: fmt.Errorf("payroll sweep: %w", err)}
			}
		}

		return CalculationCompleteMsg{
			Year:       year,
			Report:     report,
			Comparison: comparison,
			Sweep:      sweep,
		}
	}
}

// selectedScenario returns the scenario under the table cursor
func (m Model) selectedScenario() (domain.RankedScenario, bool) {
	if m.report == nil {
		return domain.RankedScenario{}, false
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(m.report.Scenarios) {
		return domain.RankedScenario{}, false
	}
	return m.report.Scenarios[i], true
}

// adjacentYear returns the registered fiscal year next to the current one
func (m Model) adjacentYear(delta int) (int, bool) {
	years := m.registry.Years()
	for i, y := range years {
		if y == m.year {
			j := i + delta
			if j < 0 || j >= len(years) {
				return 0, false
			}
			return years[j], true
		}
	}
	return 0, false
}
