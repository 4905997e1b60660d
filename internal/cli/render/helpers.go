package render

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/zapswap/zapdeploy/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatState renders a step state as colored title case, e.g. "Ownership Transferred"
func FormatState(state models.StepState) string {
	label := cases.Title(language.English).String(strings.ReplaceAll(strings.ToLower(string(state)), "_", " "))
	switch state {
	case models.StateOwnershipTransferred:
		return color.New(color.FgGreen).Sprint(label)
	case models.StateDeployed:
		return color.New(color.FgCyan).Sprint(label)
	case models.StateOwnershipPending:
		return color.New(color.FgYellow).Sprint(label)
	default:
		return color.New(color.Faint).Sprint(label)
	}
}

// stripAnsiCodes removes ANSI escape sequences from a string
func stripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
