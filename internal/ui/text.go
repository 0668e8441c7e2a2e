package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter renders one kind of CLI content. Without colour it falls back to
// the plain-text decoration in prefix and suffix.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	return f.render(fmt.Sprint(a...))
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	return f.render(fmt.Sprintf(format, a...))
}

func (f Formatter) render(text string) string {
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// EnsureNewline ensures the string ends with a newline character.
func EnsureNewline(s string) string {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		return s + "\n"
	}
	return s
}

// SuccessLine prefixes msg with a success mark.
func SuccessLine(msg string) string {
	return Success.Sprint("✓") + " " + msg
}

// FailureLine prefixes msg with a failure mark.
func FailureLine(msg string) string {
	return Error.Sprint("✗") + " " + msg
}

// HintLine prefixes msg with an arrow, for follow-up suggestions.
func HintLine(msg string) string {
	return Info.Sprint("→") + " " + msg
}

// noColor returns true if color output should be disabled.
func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

var (
	// Code formats runnable commands. Yellow, or `backticks` without colour.
	Code = Formatter{color.New(color.FgYellow), "`", "`"}

	// Path formats file or directory paths.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Flag formats CLI flags like --stdin.
	Flag = Formatter{color.New(color.FgYellow), "", ""}

	Success = Formatter{color.New(color.FgGreen), "", ""}
	Error   = Formatter{color.New(color.FgRed), "", ""}
	Warning = Formatter{color.New(color.FgYellow), "", ""}
	Info    = Formatter{color.New(color.FgCyan), "", ""}

	// Highlight formats key fingerprints and other user-facing values.
	// Cyan, or 'single quotes' without colour.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}

	// Muted formats secondary text. Grey, or (parentheses) without colour.
	Muted = Formatter{color.New(color.FgHiBlack), "(", ")"}
)
