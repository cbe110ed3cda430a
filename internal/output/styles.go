package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Use these instead of inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module addresses, output paths.
	ColorCyan = lipgloss.Color("14")

	// colorGreen is used for the "packed" status.
	colorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "planned" status and API-scoped edges.
	ColorYellow = lipgloss.Color("220")

	// colorRed is used for the "missing" status.
	colorRed = lipgloss.Color("196")

	// colorBoldRed is used for the "failed" status (matches ERROR level).
	colorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// colorBlue is used for table headers.
	colorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (module addresses, output paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (prefixes, separators, descriptions).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Pack status constants.
const (
	StatusPacked  = "packed"
	StatusPlanned = "planned"
	StatusMissing = "missing"
	StatusFailed  = "failed"
)

// statusStyle returns the lipgloss style for a given status string.
// Unknown statuses return an unstyled default.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusPacked:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case StatusPlanned:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusMissing:
		return lipgloss.NewStyle().Foreground(colorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatStatus renders a status word in its status color.
func FormatStatus(status string) string {
	return statusStyle(status).Render(status)
}

// ScopeStyle returns the style used for a dependency scope label.
func ScopeStyle(scope string) lipgloss.Style {
	if scope == "api" {
		return lipgloss.NewStyle().Foreground(ColorYellow)
	}
	return lipgloss.NewStyle().Foreground(colorGreen)
}

// minAddressColumnWidth is the minimum width for the module address column
// before the status suffix so status words align.
const minAddressColumnWidth = 40

// FormatModuleLine renders a module address with a right-aligned,
// color-coded status suffix.
//
// Format: m:<category/name>  <status>
func FormatModuleLine(address, status string) string {
	padding := minAddressColumnWidth - len(address)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("m:")
	styledAddress := StyleNoun.Render(address)
	styledStatus := statusStyle(status).Render(status)

	return prefix + styledAddress + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// FormatCross renders a red cross with a message.
func FormatCross(msg string) string {
	cross := lipgloss.NewStyle().Foreground(colorBoldRed).Render("✘")
	return cross + " " + msg
}

// FormatSummary renders the "Completed n/m packs" line.
func FormatSummary(succeeded, total int) string {
	msg := fmt.Sprintf("Completed %d/%d packs", succeeded, total)
	if succeeded == total {
		return FormatCheckmark(StyleSummary.Render(msg))
	}
	return FormatCross(StyleSummary.Render(msg))
}
