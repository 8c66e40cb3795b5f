package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for every ANSI 256 color the CLI uses.
var (
	// ColorCyan is used for identifiable nouns: generator names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for created files and the goodbye message.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modified files and running installers.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for skipped installers.
	ColorRed = lipgloss.Color("196")

	// ColorMagenta is used for the welcome banner.
	ColorMagenta = lipgloss.Color("201")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (generator names, file paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleWelcome styles the welcome banner.
	StyleWelcome = lipgloss.NewStyle().Foreground(ColorMagenta)

	// StyleGoodbye styles the closing message.
	StyleGoodbye = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)

	// StyleInstall styles installers that are about to run.
	StyleInstall = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)

	// StyleSkip styles installers that were skipped.
	StyleSkip = lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
)

// File status constants.
const (
	StatusCreated   = "created"
	StatusModified  = "modified"
	StatusIdentical = "identical"
)

// StatusStyle returns the style for a file status. Unknown statuses are
// unstyled.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusCreated:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusModified:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusIdentical:
		return lipgloss.NewStyle().Faint(true)
	default:
		return lipgloss.NewStyle()
	}
}

// Styles groups the styles used by the tree and diff renderers.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the default styles.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorDimGray),
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// Welcome renders the banner printed when a generator starts.
func Welcome() string {
	return StyleWelcome.Render("Thanks for generating with ") +
		StyleWelcome.Bold(true).Render("WP Make") +
		StyleWelcome.Render("!")
}

// Goodbye renders the closing message for a generated item type.
func Goodbye(itemType string) string {
	if itemType == "" {
		itemType = "item"
	}
	return StyleGoodbye.Render("Your " + itemType + " has been generated.")
}
