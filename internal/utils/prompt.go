package utils

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PromptInput reads a line of free-text input, returning defaultValue when
// the user just presses Enter.
func PromptInput(reader *bufio.Reader, w io.Writer, prompt, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(w, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(w, "%s: ", prompt)
	}

	input, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

// PromptConfirm asks a yes/no question. Empty input selects defaultYes.
func PromptConfirm(reader *bufio.Reader, w io.Writer, prompt string, defaultYes bool) (bool, error) {
	suffix := "(y/N)"
	if defaultYes {
		suffix = "(Y/n)"
	}
	fmt.Fprintf(w, "%s %s: ", prompt, suffix)

	input, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return defaultYes, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PromptSelect presents a numbered list and returns the chosen entry.
// Re-prompts on out-of-range or non-numeric input.
func PromptSelect(reader *bufio.Reader, w io.Writer, prompt string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options to select from")
	}

	for i, option := range options {
		fmt.Fprintf(w, "%d. %s\n", i+1, option)
	}

	for {
		fmt.Fprintf(w, "%s (1-%d): ", prompt, len(options))
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || choice < 1 || choice > len(options) {
			fmt.Fprintln(w, "Invalid choice. Please try again.")
			continue
		}
		return options[choice-1], nil
	}
}
