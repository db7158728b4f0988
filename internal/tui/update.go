package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/tui/tuistyles"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(max(40, msg.Width-4))
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case RequestLoadedMsg:
		m.request = msg.Request
		return m.recalculate(m.year)

	case CalculationCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.year = msg.Year
		m.report = msg.Report
		m.comparison = msg.Comparison
		m.sweep = msg.Sweep
		m.table.SetRows(rankingRows(msg.Report))
		m.table.SetHeight(len(msg.Report.Scenarios) + 2)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// recalculate starts a calculation for the given fiscal year
func (m Model) recalculate(year int) (tea.Model, tea.Cmd) {
	if m.request == nil {
		return m, nil
	}
	m.loading = true
	m.loadingMessage = fmt.Sprintf("Calculando cenários de %d...", year)
	return m, calculateCmd(m.request, m.registry, m.iss, year)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key dismisses an error
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "?":
		return m, navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneRanking {
			return m, navigate(SceneRanking)
		}
		return m, nil

	case "enter":
		if m.currentScene == SceneRanking {
			if _, ok := m.selectedScenario(); ok {
				return m, navigate(SceneDetail)
			}
		}
		return m, nil

	case "r":
		return m, navigate(SceneRanking)

	case "f":
		return m, navigate(SceneSweep)

	case "[":
		if y, ok := m.adjacentYear(-1); ok {
			return m.recalculate(y)
		}
		return m, nil

	case "]":
		if y, ok := m.adjacentYear(1); ok {
			return m.recalculate(y)
		}
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates to the widget of the current scene
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene != SceneRanking {
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: s}
	}
}

func newRankingTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Regime", Width: 36},
		{Title: "Imposto/mês", Width: 16},
		{Title: "Alíquota", Width: 9},
		{Title: "Lucro líquido", Width: 16},
		{Title: "Elegível", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(7),
	)

	s := table.DefaultStyles()
	s.Header = tuistyles.TableHeaderStyle
	s.Selected = tuistyles.TableHighlightStyle
	t.SetStyles(s)
	return t
}

func rankingRows(report *domain.ScenarioReport) []table.Row {
	rows := make([]table.Row, 0, len(report.Scenarios))
	for _, s := range report.Scenarios {
		eligible := "sim"
		if !s.IsEligible {
			eligible = "não"
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", s.Rank),
			s.Name,
			tuistyles.FormatCurrency(s.TotalTax),
			tuistyles.FormatPercent(s.EffectiveRatePercent),
			tuistyles.FormatCurrency(s.NetDistributableProfit),
			eligible,
		})
	}
	return rows
}
