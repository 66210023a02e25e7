package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Formatter applies semantic coloring to CLI output, with plain-text
// fallbacks when color is disabled.
type Formatter struct {
	color  *color.Color
	prefix string
	suffix string
}

// Sprint formats the arguments and returns the resulting string.
func (f Formatter) Sprint(a ...interface{}) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return f.prefix + text + f.suffix
	}
	return f.color.Sprint(text)
}

// Sprintf formats according to a format specifier and returns the resulting string.
func (f Formatter) Sprintf(format string, a ...interface{}) string {
	text := fmt.Sprintf(format, a...)
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

func noColor() bool {
	// https://no-color.org/
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return true
	}
	return color.NoColor
}

// Semantic formatters for vault output.
var (
	// Success formats success indicators. Green with color.
	Success = Formatter{color.New(color.FgGreen), "", ""}

	// Error formats failure indicators. Red with color.
	Error = Formatter{color.New(color.FgRed), "", ""}

	// Warning formats warnings. Yellow with color.
	Warning = Formatter{color.New(color.FgYellow), "", ""}

	// Info formats hints and directional indicators. Cyan with color.
	Info = Formatter{color.New(color.FgCyan), "", ""}

	// Path formats file or directory paths. Yellow with color.
	Path = Formatter{color.New(color.FgYellow), "", ""}

	// Highlight formats emphasized user values like project names.
	// Cyan with color, 'single quotes' without.
	Highlight = Formatter{color.New(color.FgCyan), "'", "'"}
)
