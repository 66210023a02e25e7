package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "envault/internal/errors"
)

// newTestStore returns a store in a fresh temp directory plus a source
// directory populated with the given env files.
func newTestStore(t *testing.T, sourceFiles map[string]string) (*Store, string) {
	t.Helper()

	root, err := os.MkdirTemp("", "envault-store-*")
	if err != nil {
		t.Fatalf("Failed to create temp store: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(root) })

	source, err := os.MkdirTemp("", "envault-source-*")
	if err != nil {
		t.Fatalf("Failed to create temp source: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(source) })

	for name, content := range sourceFiles {
		writeTestFile(t, filepath.Join(source, name), content)
	}

	return New(root), source
}

func TestCreateProject(t *testing.T) {
	store, source := newTestStore(t, map[string]string{
		".env":       "KEY=1",
		".env.local": "LOCAL=2",
		"notes.txt":  "ignored",
	})

	copied, err := store.CreateProject("api", source, false)
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if len(copied) != 2 {
		t.Fatalf("Expected 2 copied files, got: %v", copied)
	}

	content, err := os.ReadFile(filepath.Join(store.ProjectDir("api"), ".env"))
	if err != nil {
		t.Fatalf("Copied file missing: %v", err)
	}
	if string(content) != "KEY=1" {
		t.Errorf("Expected KEY=1, got: %s", content)
	}

	if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), "notes.txt")); !os.IsNotExist(err) {
		t.Error("Unrecognized file was copied into the project")
	}
}

func TestCreateProject_NoRecognizedFilesRollsBack(t *testing.T) {
	store, source := newTestStore(t, map[string]string{"notes.txt": "x"})

	_, err := store.CreateProject("api", source, false)
	if !errors.Is(err, kerrors.ErrNoRecognizedFiles) {
		t.Fatalf("Expected ErrNoRecognizedFiles, got: %v", err)
	}

	// The directory created for the attempt must be rolled back.
	if _, err := os.Stat(store.ProjectDir("api")); !os.IsNotExist(err) {
		t.Error("Project directory was not rolled back")
	}
}

func TestCreateProject_AlreadyExists(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	_, err := store.CreateProject("api", source, false)
	if !errors.Is(err, kerrors.ErrProjectAlreadyExists) {
		t.Errorf("Expected ErrProjectAlreadyExists, got: %v", err)
	}
}

func TestCreateProject_OverwriteIsAdditive(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	// A file present only in the project must survive an overwriting copy.
	writeTestFile(t, filepath.Join(store.ProjectDir("api"), ".env.production"), "PROD=1")
	writeTestFile(t, filepath.Join(source, ".env"), "KEY=2")

	if _, err := store.CreateProject("api", source, true); err != nil {
		t.Fatalf("Overwriting CreateProject failed: %v", err)
	}

	content, _ := os.ReadFile(filepath.Join(store.ProjectDir("api"), ".env"))
	if string(content) != "KEY=2" {
		t.Errorf("Expected re-copied KEY=2, got: %s", content)
	}

	if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), ".env.production")); err != nil {
		t.Error("File not re-copied was clobbered by overwrite")
	}
}

func TestCreateProject_SourceUnreadable(t *testing.T) {
	store, _ := newTestStore(t, nil)

	_, err := store.CreateProject("api", filepath.Join(store.Root(), "no-such-dir"), false)
	if !errors.Is(err, kerrors.ErrSourcePathUnreadable) {
		t.Errorf("Expected ErrSourcePathUnreadable, got: %v", err)
	}
}

func TestValidateProjectName(t *testing.T) {
	for _, name := range []string{"api", "my-project", "web_2"} {
		if err := ValidateProjectName(name); err != nil {
			t.Errorf("Expected %q to be valid, got: %v", name, err)
		}
	}

	for _, name := range []string{"", ".", "..", "a/b", `a\b`, "x\x00y"} {
		if err := ValidateProjectName(name); !errors.Is(err, kerrors.ErrInvalidProjectName) {
			t.Errorf("Expected %q to be rejected, got: %v", name, err)
		}
	}
}

func TestListProjects(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1"})

	names, err := store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if names != nil {
		t.Errorf("Expected no projects, got: %v", names)
	}

	for _, name := range []string{"web", "api"} {
		if _, err := store.CreateProject(name, source, false); err != nil {
			t.Fatalf("CreateProject failed: %v", err)
		}
	}

	names, err = store.ListProjects()
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(names) != 2 || names[0] != "api" || names[1] != "web" {
		t.Errorf("Expected sorted [api web], got: %v", names)
	}
}

func TestDeleteProject(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	if err := store.DeleteProject("api"); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}
	if _, err := os.Stat(store.ProjectDir("api")); !os.IsNotExist(err) {
		t.Error("Project directory still exists after delete")
	}

	if err := store.DeleteProject("api"); !errors.Is(err, kerrors.ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got: %v", err)
	}
}

func TestEncryptAll_KeepsPlaintextByDefault(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	results, err := store.EncryptAll("api", []byte("pw"), false)
	if err != nil {
		t.Fatalf("EncryptAll failed: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("Expected one success, got: %+v", results)
	}

	// Both copies coexist when removal was not requested.
	if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), ".env")); err != nil {
		t.Error("Plaintext was removed without being asked")
	}
	if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), ".env.encrypted")); err != nil {
		t.Error("Envelope was not written")
	}
}

func TestEncryptAll_RemovePlaintext(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1", ".env.production": "PROD=1"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	results, err := store.EncryptAll("api", []byte("pw"), true)
	if err != nil {
		t.Fatalf("EncryptAll failed: %v", err)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("File %s failed: %v", r.Name, r.Err)
		}
	}

	for _, kind := range []string{".env", ".env.production"} {
		if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), kind)); !os.IsNotExist(err) {
			t.Errorf("Plaintext %s still present after removal", kind)
		}
		if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), kind+EncryptedSuffix)); err != nil {
			t.Errorf("Envelope for %s missing", kind)
		}
	}
}

func TestEncryptAll_NoPlaintext(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if _, err := store.EncryptAll("api", []byte("pw"), true); err != nil {
		t.Fatalf("EncryptAll failed: %v", err)
	}

	// Everything is already encrypted; a second pass has nothing to do.
	_, err := store.EncryptAll("api", []byte("pw"), true)
	if !errors.Is(err, kerrors.ErrNoRecognizedFiles) {
		t.Errorf("Expected ErrNoRecognizedFiles, got: %v", err)
	}
}

func TestDecryptAll_RoundTripScenario(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "KEY=1"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	if _, err := store.EncryptAll("api", []byte("correct-horse"), true); err != nil {
		t.Fatalf("EncryptAll failed: %v", err)
	}

	// Plaintext is gone; only the envelope remains.
	if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), ".env")); !os.IsNotExist(err) {
		t.Fatal("Plaintext still present after encrypt with removal")
	}

	// Wrong password: per-file failure, no output written.
	results, err := store.DecryptAll("api", []byte("wrong-password"))
	if err != nil {
		t.Fatalf("DecryptAll failed: %v", err)
	}
	if len(results) != 1 || !errors.Is(results[0].Err, kerrors.ErrAuthenticationFailed) {
		t.Fatalf("Expected one AuthenticationFailed result, got: %+v", results)
	}
	if _, err := os.Stat(filepath.Join(store.ProjectDir("api"), ".env")); !os.IsNotExist(err) {
		t.Error("Failed decryption wrote an output file")
	}

	// Correct password recovers the exact content.
	results, err = store.DecryptAll("api", []byte("correct-horse"))
	if err != nil {
		t.Fatalf("DecryptAll failed: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("Expected one success, got: %+v", results)
	}

	content, err := os.ReadFile(filepath.Join(store.ProjectDir("api"), ".env"))
	if err != nil {
		t.Fatalf("Recovered file missing: %v", err)
	}
	if string(content) != "KEY=1" {
		t.Errorf("Expected KEY=1, got: %s", content)
	}
}

func TestDecryptAll_PerFileIndependence(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "A=1", ".env.local": "B=2"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	// Encrypt the two files under different passwords.
	if _, err := store.EncryptFiles("api", []string{".env"}, []byte("pw-one"), true); err != nil {
		t.Fatalf("EncryptFiles failed: %v", err)
	}
	if _, err := store.EncryptFiles("api", []string{".env.local"}, []byte("pw-two"), true); err != nil {
		t.Fatalf("EncryptFiles failed: %v", err)
	}

	results, err := store.DecryptAll("api", []byte("pw-one"))
	if err != nil {
		t.Fatalf("DecryptAll failed: %v", err)
	}

	var succeeded, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			if !errors.Is(r.Err, kerrors.ErrAuthenticationFailed) {
				t.Errorf("Expected ErrAuthenticationFailed for %s, got: %v", r.Name, r.Err)
			}
		} else {
			succeeded++
		}
	}
	if succeeded != 1 || failed != 1 {
		t.Errorf("Expected one success and one failure, got %d/%d", succeeded, failed)
	}
}

func TestListEncrypted(t *testing.T) {
	store, source := newTestStore(t, map[string]string{".env": "A=1", ".env.local": "B=2"})

	if _, err := store.CreateProject("api", source, false); err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	files, err := store.ListEncrypted("api")
	if err != nil {
		t.Fatalf("ListEncrypted failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected no envelopes yet, got: %v", files)
	}

	if _, err := store.EncryptAll("api", []byte("pw"), false); err != nil {
		t.Fatalf("EncryptAll failed: %v", err)
	}

	files, err = store.ListEncrypted("api")
	if err != nil {
		t.Fatalf("ListEncrypted failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("Expected 2 envelopes, got: %v", files)
	}
}
