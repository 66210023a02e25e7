package configs

import (
	"os"
	"path/filepath"
)

// StoreRootEnv overrides the default store location when set.
const StoreRootEnv = "ENVAULT_STORE"

// ResolveStoreRoot picks the store root directory: the explicit flag value
// wins, then the ENVAULT_STORE environment variable, then the XDG data
// directory default. The result is resolved once at the command layer and
// threaded through constructors; nothing below this reads the environment.
func ResolveStoreRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	if env := os.Getenv(StoreRootEnv); env != "" {
		return env, nil
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "envault"), nil
}
