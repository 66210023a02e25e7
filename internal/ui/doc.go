// Package ui provides semantic text formatting for CLI output.
//
// Formatters carry a color for capable terminals and a plain-text
// decoration used when color is disabled (NO_COLOR, dumb terminals,
// redirected output).
package ui
