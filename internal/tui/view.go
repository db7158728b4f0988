package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rtgo/internal/domain"
	"github.com/rgehrsitz/rtgo/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(m.renderError())
	}
	if m.loading || m.report == nil {
		return m.renderApp(m.renderLoading())
	}

	var content string
	switch m.currentScene {
	case SceneRanking:
		content = m.renderRanking()
	case SceneDetail:
		content = m.renderDetail()
	case SceneSweep:
		content = m.renderSweep()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := TitleStyle.Render(fmt.Sprintf("RTGO - Regimes Tributários %d", m.year))

	breadcrumb := m.currentScene.String()
	if m.currentScene == SceneDetail {
		if s, ok := m.selectedScenario(); ok {
			breadcrumb += " / " + s.Name
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("↑/↓", "navegar"),
		formatShortcut("enter", "detalhe"),
		formatShortcut("r", "ranking"),
		formatShortcut("f", "folha"),
		formatShortcut("[/]", "ano"),
		formatShortcut("?", "ajuda"),
		formatShortcut("q", "sair"),
	}
	status := strings.Join(shortcuts, " • ")
	if m.configPath != "" {
		status += "  " + SubtitleStyle.Render(m.configPath)
	}
	return StatusBarStyle.Render(status)
}

func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

func (m Model) renderLoading() string {
	msg := m.loadingMessage
	if msg == "" {
		msg = "Carregando..."
	}
	return BorderStyle.Render("⠋ " + msg)
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Erro: %s\n\nPressione qualquer tecla para continuar...", m.err))
}

func (m Model) renderRanking() string {
	in := m.report.Input
	summary := fmt.Sprintf("Faturamento mensal %s  •  RBT12 %s  •  Fator R %s",
		FormatCurrency(in.MonthlyRevenue),
		FormatCurrency(in.RBT12),
		FormatPercent(m.report.FatorR.Ratio.Mul(decimal.NewFromInt(100))))

	parts := []string{
		InfoStyle.Render(summary),
		ActiveBorderStyle.Render(m.table.View()),
	}

	if m.comparison != nil && len(m.comparison.Recommendations) > 0 {
		var sb strings.Builder
		sb.WriteString(SubtitleStyle.Render("Recomendações"))
		for _, rec := range m.comparison.Recommendations {
			sb.WriteString("\n• " + rec)
		}
		parts = append(parts, BorderStyle.Render(sb.String()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderDetail() string {
	s, ok := m.selectedScenario()
	if !ok {
		return BorderStyle.Render("Nenhum cenário selecionado")
	}

	header := TitleStyle.Render(fmt.Sprintf("%d. %s", s.Rank, s.Name))
	switch {
	case s.IsBest:
		header += " " + MetricPositiveStyle.Render("[MELHOR]")
	case s.IsWorst:
		header += " " + MetricNegativeStyle.Render("[PIOR]")
	}
	if !s.IsEligible {
		header += " " + IneligibleStyle.Render("inelegível")
	}

	taxCard := components.NewMetricCard("Imposto mensal", FormatCurrency(s.TotalTax))
	if best, ok := m.report.Best(); ok && best.Kind != s.Kind {
		taxCard.WithTaxDelta(s.TotalTax.Sub(best.TotalTax)).WithDescription("vs. " + best.Name)
	}
	cards := []*components.MetricCard{
		taxCard,
		components.NewMetricCard("Alíquota efetiva", FormatPercent(s.EffectiveRatePercent)),
		components.NewMetricCard("Lucro líquido", FormatCurrency(s.NetDistributableProfit)),
	}

	parts := []string{header, components.MetricGrid(cards, 3), m.renderTaxLines(s)}

	if s.ProLabore != nil {
		p := s.ProLabore
		parts = append(parts, BorderStyle.Render(fmt.Sprintf(
			"Pró-labore %s  •  INSS %s  •  IRRF %s  •  Líquido %s",
			FormatCurrency(p.BaseAmount), FormatCurrency(p.INSSAmount),
			FormatCurrency(p.IRRFAmount), FormatCurrency(p.NetAmount))))
	}
	if s.EligibilityNote != "" {
		parts = append(parts, MetricNegativeStyle.Render(s.EligibilityNote))
	}
	if s.Notes != "" {
		parts = append(parts, SubtitleStyle.Render(s.Notes))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderTaxLines(s domain.RankedScenario) string {
	var sb strings.Builder
	sb.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-48s %10s %16s", "Tributo", "Alíquota", "Valor")))
	for _, line := range s.TaxLineItems {
		rate := ""
		if !line.RatePercent.IsZero() {
			rate = FormatPercent(line.RatePercent)
		}
		sb.WriteString(fmt.Sprintf("\n%-48s %10s %16s", truncate(line.Label, 48), rate, FormatCurrency(line.Amount)))
	}
	sb.WriteString(fmt.Sprintf("\n%-48s %10s %16s", "Total", FormatPercent(s.EffectiveRatePercent), FormatCurrency(s.TotalTax)))
	return BorderStyle.Render(sb.String())
}

func (m Model) renderSweep() string {
	if len(m.sweep) == 0 {
		return BorderStyle.Render("Sem faturamento para simular a folha")
	}

	chart := components.SweepChart(m.sweep, max(50, m.width-6), 12)

	note := "Nenhum valor de folha da simulação atinge o Fator R mínimo"
	for _, p := range m.sweep {
		if p.FatorR.QualifiesForAnnexIII {
			note = fmt.Sprintf("Fator R atingido a partir de uma folha de %s (melhor regime: %s, %s)",
				FormatCurrency(p.Payroll), p.BestName, FormatCurrency(p.BestTax))
			break
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, BorderStyle.Render(chart), InfoStyle.Render(note))
}

func (m Model) renderHelp() string {
	keys := [][2]string{
		{"↑/↓ j/k", "Navegar no ranking"},
		{"enter", "Detalhar o cenário selecionado"},
		{"r / esc", "Voltar ao ranking"},
		{"f", "Simulação de folha e Fator R"},
		{"[ / ]", "Ano-calendário anterior / seguinte"},
		{"?", "Esta ajuda"},
		{"q / ctrl+c", "Sair"},
	}

	var sb strings.Builder
	sb.WriteString("RTGO - Comparativo de regimes tributários\n\n")
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", HelpKeyStyle.Render(fmt.Sprintf("%-12s", k[0])), HelpDescStyle.Render(k[1])))
	}
	return BorderStyle.Render(sb.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
