package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: deep space with cyan accents
var (
	Primary   = lipgloss.Color("#22D3EE") // Cyan
	Secondary = lipgloss.Color("#818CF8") // Indigo
	Accent    = lipgloss.Color("#FBBF24") // Amber
	Success   = lipgloss.Color("#34D399") // Emerald
	Error     = lipgloss.Color("#F87171") // Red
	Text      = lipgloss.Color("#F3F4F6") // White
	TextDim   = lipgloss.Color("#9CA3AF") // Gray
	BgDark    = lipgloss.Color("#111827") // Near Black
	BgCard    = lipgloss.Color("#1F2937") // Dark Gray
	Border    = lipgloss.Color("#374151") // Gray
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)
)

// Chat bubbles
var (
	StudentBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(lipgloss.Color("#1D4ED8")).
			Padding(0, 1)

	TutorBubble = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgCard).
			Padding(0, 1)
)
