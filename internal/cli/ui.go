package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/libpanel/pkg/detail"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan    = lipgloss.Color("36")  // Teal - primary actions
	colorGreen   = lipgloss.Color("35")  // Green - success
	colorYellow  = lipgloss.Color("220") // Amber - warnings
	colorRed     = lipgloss.Color("167") // Soft red - errors
	colorBlue    = lipgloss.Color("75")  // Light blue - links
	colorOrange  = lipgloss.Color("208") // Orange - hot popularity
	colorPurple  = lipgloss.Color("141") // Purple - Expo
	colorMagenta = lipgloss.Color("170") // Magenta - nightly
	colorWhite   = lipgloss.Color("255") // Bright white - values
	colorGray    = lipgloss.Color("245") // Gray - secondary text
	colorDim     = lipgloss.Color("240") // Dim gray - muted text
)

// tagColors maps semantic tag colors onto the terminal palette.
var tagColors = map[detail.Color]lipgloss.Color{
	detail.ColorBlue:          colorBlue,
	detail.ColorGreen:         colorGreen,
	detail.ColorMagenta:       colorMagenta,
	detail.ColorOrange:        colorOrange,
	detail.ColorPurple:        colorPurple,
	detail.ColorRed:           colorRed,
	detail.ColorYellow:        colorYellow,
	detail.ColorPrimaryText:   colorWhite,
	detail.ColorSecondaryText: colorGray,
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// panelIcons are the terminal glyphs for host icons.
var panelIcons = map[detail.Icon]string{
	detail.IconBolt:            "⚡",
	detail.IconLineChart:       "↗",
	detail.IconPerson:          "☺",
	detail.IconCodeBlock:       "</>",
	detail.IconTypeScript:      "TS",
	detail.IconGear:            "⚙",
	detail.IconDocument:        "§",
	detail.IconLeaderboard:     "#",
	detail.IconClock:           "◷",
	detail.IconDownload:        "↓",
	detail.IconStar:            "★",
	detail.IconBox:             "▣",
	detail.IconDuplicate:       "⑂",
	detail.IconEye:             "◉",
	detail.IconExclamationMark: "!",
}

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}
