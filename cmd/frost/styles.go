// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Shared palette for all CLI output, picked for dark terminal backgrounds.
const (
	// ColorPrimary is the ice blue of titles and table headers.
	ColorPrimary = lipgloss.Color("#38BDF8")

	// ColorMuted is the slate gray of subtitles and table borders.
	ColorMuted = lipgloss.Color("#64748B")

	// ColorSuccess marks completed operations.
	ColorSuccess = lipgloss.Color("#34D399")

	// ColorWarning marks non-fatal problems.
	ColorWarning = lipgloss.Color("#FBBF24")

	// ColorHighlight marks commands and image tags inside running text.
	ColorHighlight = lipgloss.Color("#60A5FA")
)

var (
	// TitleStyle renders primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle renders secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle renders completion messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// WarningStyle renders warning prefixes.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle renders command names and image tags.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	// tableHeaderStyle and tableCellStyle shape the elements table.
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	tableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)
