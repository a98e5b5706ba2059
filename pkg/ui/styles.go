// Package ui holds the console palette shared by the run output.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color Palette
var (
	SalmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	CoralPink   = lipgloss.Color("#FFCCCB")
	MintGreen   = lipgloss.Color("#A8E6CF") // success
	Amber       = lipgloss.Color("#FFD580") // warnings
	ErrorRed    = lipgloss.Color("#FF6B6B")
	MutedGray   = lipgloss.Color("#6B7280") // secondary text
	BrightWhite = lipgloss.Color("#F9FAFB")
)

// Text styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(BrightWhite).
			Bold(true)

	StepStyle = lipgloss.NewStyle().
			Foreground(SalmonPink).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(CoralPink)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(MintGreen).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorRed).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedGray)
)

// Container styles
var (
	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder(), true, false).
			BorderForeground(SalmonPink).
			Foreground(BrightWhite).
			Bold(true).
			Padding(0, 2)

	SummaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SalmonPink).
			Padding(0, 1)
)

// Rule returns a horizontal divider of width cells.
func Rule(width int) string {
	return MutedStyle.Render(strings.Repeat("─", width))
}

// Banner renders text between two double rules, at least width cells wide.
func Banner(text string, width int) string {
	return BannerStyle.Width(width).Render(text)
}
