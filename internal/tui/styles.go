package tui

import "github.com/rgehrsitz/rtgo/internal/tui/tuistyles"

// Re-export styles from tuistyles so components can share them without an import cycle
var (
	AppStyle            = tuistyles.AppStyle
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	StatusKeyStyle      = tuistyles.StatusKeyStyle
	BorderStyle         = tuistyles.BorderStyle
	ActiveBorderStyle   = tuistyles.ActiveBorderStyle
	MetricPositiveStyle = tuistyles.MetricPositiveStyle
	MetricNegativeStyle = tuistyles.MetricNegativeStyle
	HelpKeyStyle        = tuistyles.HelpKeyStyle
	HelpDescStyle       = tuistyles.HelpDescStyle
	ErrorStyle          = tuistyles.ErrorStyle
	InfoStyle           = tuistyles.InfoStyle
	TableHeaderStyle    = tuistyles.TableHeaderStyle
	IneligibleStyle     = tuistyles.IneligibleStyle
)

// Re-export helper functions
var (
	FormatCurrency = tuistyles.FormatCurrency
	FormatPercent  = tuistyles.FormatPercent
)
