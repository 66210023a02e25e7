package utils

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/term"

	kerrors "envault/internal/errors"
)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

// ReadPassphraseConfirmed prompts for a passphrase twice and returns
// ErrPasswordMismatch when the entries differ. The mismatching buffers are
// wiped before returning.
func ReadPassphraseConfirmed(prompt, confirmPrompt string) ([]byte, error) {
	first, err := ReadPassphrase(prompt)
	if err != nil {
		return nil, err
	}

	second, err := ReadPassphrase(confirmPrompt)
	if err != nil {
		Wipe(first)
		return nil, err
	}

	if !bytes.Equal(first, second) {
		Wipe(first)
		Wipe(second)
		return nil, kerrors.ErrPasswordMismatch
	}

	Wipe(second)
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
