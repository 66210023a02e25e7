package configs

import (
	"path/filepath"
	"testing"
)

func TestResolveStoreRoot(t *testing.T) {
	t.Setenv(StoreRootEnv, "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	got, err := ResolveStoreRoot("")
	if err != nil {
		t.Fatalf("ResolveStoreRoot failed: %v", err)
	}
	if got != filepath.Join("/xdg/data", "envault") {
		t.Errorf("Expected the XDG default, got: %s", got)
	}
}

func TestResolveStoreRoot_EnvOverride(t *testing.T) {
	t.Setenv(StoreRootEnv, "/from/env")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	got, err := ResolveStoreRoot("")
	if err != nil {
		t.Fatalf("ResolveStoreRoot failed: %v", err)
	}
	if got != "/from/env" {
		t.Errorf("Expected the environment override, got: %s", got)
	}
}

func TestResolveStoreRoot_FlagWins(t *testing.T) {
	t.Setenv(StoreRootEnv, "/from/env")

	got, err := ResolveStoreRoot("/from/flag")
	if err != nil {
		t.Fatalf("ResolveStoreRoot failed: %v", err)
	}
	if got != "/from/flag" {
		t.Errorf("Expected the flag to win, got: %s", got)
	}
}
