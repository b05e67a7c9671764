package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — mirrors the indigo/violet look of the web dashboard
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#A855F7") // Violet
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F1F5F9") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	CardTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Secondary)
)

// Badges
var (
	BadgeEarned = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	BadgeLocked = lipgloss.NewStyle().
			Foreground(TextDim)
)

// Charts
var (
	ChartBar = lipgloss.NewStyle().
			Foreground(Primary)

	ChartBarAlt = lipgloss.NewStyle().
			Foreground(Secondary)

	ChartLabel = lipgloss.NewStyle().
			Foreground(TextDim)
)
