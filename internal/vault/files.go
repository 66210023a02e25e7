package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	kerrors "envault/internal/errors"
)

// EnvKinds is the fixed set of recognized env file names. Each kind maps to
// exactly one filename within a project directory.
var EnvKinds = []string{".env", ".env.local", ".env.development", ".env.production"}

// EncryptedSuffix is appended to an env file's name when it is encrypted.
const EncryptedSuffix = ".encrypted"

// IsEnvKind reports whether name is one of the recognized env file names.
func IsEnvKind(name string) bool {
	for _, kind := range EnvKinds {
		if name == kind {
			return true
		}
	}
	return false
}

// IsEncryptedFile reports whether name is the envelope of a recognized kind.
func IsEncryptedFile(name string) bool {
	return strings.HasSuffix(name, EncryptedSuffix) && IsEnvKind(strings.TrimSuffix(name, EncryptedSuffix))
}

// PlaintextName strips the encrypted suffix from an envelope filename.
func PlaintextName(name string) string {
	return strings.TrimSuffix(name, EncryptedSuffix)
}

// ResolveFiles takes user-provided glob patterns and returns matching file
// names within the project directory. If patterns is empty, returns nil and
// the caller should fall back to every present kind. forEncryption selects
// plaintext env files; otherwise envelopes are matched.
func ResolveFiles(patterns []string, projectDir string, forEncryption bool) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(projectDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}

			name := filepath.Base(m)
			if forEncryption && !IsEnvKind(name) {
				continue
			}
			if !forEncryption && !IsEncryptedFile(name) {
				continue
			}

			if !seen[name] {
				seen[name] = true
				files = append(files, name)
			}
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files match the given patterns", kerrors.ErrNoRecognizedFiles)
	}

	return files, nil
}
