package cli

import "github.com/charmbracelet/lipgloss"

var (
	colorRed     = lipgloss.Color("#E06C75")
	colorGreen   = lipgloss.Color("#98C379")
	colorYellow  = lipgloss.Color("#E5C07B")
	colorMagenta = lipgloss.Color("#C678DD")
	colorComment = lipgloss.Color("#5C6370")
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(colorMagenta).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	successStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorComment)

	badgeStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)
)

func heading(s string) string { return headingStyle.Render(s) }

func notice(s string) string { return noticeStyle.Render(s) }

func success(s string) string { return successStyle.Render(s) }

func muted(s string) string { return mutedStyle.Render(s) }

func badge(s string) string { return badgeStyle.Render("[" + s + "]") }
