package tui

import (
	"github.com/rgehrsitz/rtgo/internal/calculation"
	"github.com/rgehrsitz/rtgo/internal/compare"
	"github.com/rgehrsitz/rtgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneRanking Scene = iota
	SceneDetail
	SceneSweep
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneRanking:
		return "Ranking"
	case SceneDetail:
		return "Detalhe"
	case SceneSweep:
		return "Folha × Fator R"
	case SceneHelp:
		return "Ajuda"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// RequestLoadedMsg signals the scenario file has been parsed
type RequestLoadedMsg struct {
	Request *domain.ScenarioRequest
}

// CalculationCompleteMsg carries the ranked report of one fiscal year
type CalculationCompleteMsg struct {
	Year       int
	Report     *domain.ScenarioReport
	Comparison *compare.ComparisonSet
	Sweep      []calculation.SweepPoint
	Err        error
}
