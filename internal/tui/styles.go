package tui

import "github.com/rgehrsitz/firego/internal/tui/tuistyles"

// Re-export the styles the root model uses directly
var (
	TitleStyle     = tuistyles.TitleStyle
	SubtitleStyle  = tuistyles.SubtitleStyle
	StatusBarStyle = tuistyles.StatusBarStyle
	StatusKeyStyle = tuistyles.StatusKeyStyle
	BorderStyle    = tuistyles.BorderStyle
	ErrorStyle     = tuistyles.ErrorStyle
	AppStyle       = tuistyles.AppStyle
)
