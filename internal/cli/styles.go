// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/njorogek/pesaflow/internal/model"
)

var (
	// PrimaryColor is the main theme color (M-Pesa green).
	PrimaryColor = lipgloss.Color("#43B02A")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// InColor marks incoming money.
	InColor = lipgloss.Color("#2E7D32")
	// OutColor marks outgoing money.
	OutColor = lipgloss.Color("#C62828")
	// InternalColor marks movement between the user's own accounts.
	InternalColor = lipgloss.Color("#1565C0")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(lipgloss.Color("#333"))

	directionStyles = map[model.Direction]lipgloss.Style{
		model.DirectionIn:       lipgloss.NewStyle().Foreground(InColor),
		model.DirectionOut:      lipgloss.NewStyle().Foreground(OutColor),
		model.DirectionInternal: lipgloss.NewStyle().Foreground(InternalColor),
		model.DirectionUnknown:  lipgloss.NewStyle().Foreground(SubtleColor),
	}
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	PhoneIcon   = "📱"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatTitle formats a title with the app icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(PhoneIcon + " " + title)
}

// FormatDirection renders a direction label in its flow color.
func FormatDirection(d model.Direction) string {
	style, ok := directionStyles[d]
	if !ok {
		style = SubtleStyle
	}
	return style.Render(string(d))
}

// FormatAmount renders a Ksh amount in the record's flow color.
func FormatAmount(amount float64, d model.Direction) string {
	style, ok := directionStyles[d]
	if !ok {
		style = SubtleStyle
	}
	return style.Render(fmt.Sprintf("Ksh %.2f", amount))
}
