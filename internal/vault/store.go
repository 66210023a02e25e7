package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	kerrors "envault/internal/errors"
	"envault/internal/utils"
)

// Store manages the directory tree of projects under a single root. The
// root path and recognized-kind list are carried explicitly; two Store
// values with different roots are fully independent.
type Store struct {
	root  string
	kinds []string
}

// New returns a Store rooted at root. The store directory is not created
// until the first mutation.
func New(root string) *Store {
	return &Store{root: root, kinds: EnvKinds}
}

// Root returns the store's root directory.
func (s *Store) Root() string {
	return s.root
}

// ProjectsDir returns the directory that holds all project subdirectories.
func (s *Store) ProjectsDir() string {
	return filepath.Join(s.root, "projects")
}

// ProjectDir returns the directory for a named project. The directory name
// is exactly the project name.
func (s *Store) ProjectDir(name string) string {
	return filepath.Join(s.ProjectsDir(), name)
}

// ValidateProjectName rejects names that cannot safely be used as a single
// directory path segment.
func ValidateProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", kerrors.ErrInvalidProjectName)
	}
	if name == "." || name == ".." {
		return fmt.Errorf("%w: %q", kerrors.ErrInvalidProjectName, name)
	}
	if strings.ContainsAny(name, "/\\\x00") || strings.ContainsRune(name, os.PathSeparator) {
		return fmt.Errorf("%w: %q contains a path separator", kerrors.ErrInvalidProjectName, name)
	}
	return nil
}

// FileResult reports the outcome of one file's encrypt or decrypt attempt.
// Each file succeeds or fails independently of its siblings.
type FileResult struct {
	// Name is the env file name the operation was applied to.
	Name string

	// Output is the path written on success.
	Output string

	// Err is non-nil if this file's operation failed.
	Err error
}

// CreateProject creates a project directory and copies every recognized env
// file from sourcePath into it.
//
// Returns ErrInvalidProjectName if the name cannot be a directory name.
// Returns ErrProjectAlreadyExists if the project exists and overwrite is
// false; with overwrite, the copy is additive per kind and files not
// re-copied are left untouched.
// Returns ErrSourcePathUnreadable if sourcePath cannot be read.
// Returns ErrNoRecognizedFiles if sourcePath holds no recognized kind; a
// directory created for the attempt is rolled back.
func (s *Store) CreateProject(name, sourcePath string, overwrite bool) ([]string, error) {
	if err := ValidateProjectName(name); err != nil {
		return nil, err
	}

	dir := s.ProjectDir(name)
	existed := false
	if _, err := os.Stat(dir); err == nil {
		if !overwrite {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrProjectAlreadyExists, name)
		}
		existed = true
	}

	if _, err := os.ReadDir(sourcePath); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrSourcePathUnreadable, err)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating project directory: %w", err)
	}

	var copied []string
	for _, kind := range s.kinds {
		src := filepath.Join(sourcePath, kind)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := utils.CopyFile(src, filepath.Join(dir, kind), 0600); err != nil {
			return nil, fmt.Errorf("copying %s: %w", kind, err)
		}
		copied = append(copied, kind)
	}

	if len(copied) == 0 {
		// Roll back the directory only if this call created it.
		if !existed {
			_ = os.RemoveAll(dir)
		}
		return nil, fmt.Errorf("%w in %s", kerrors.ErrNoRecognizedFiles, sourcePath)
	}

	return copied, nil
}

// ListProjects returns the names of all projects, sorted. The result
// reflects the directory state at call time; nothing is cached.
func (s *Store) ListProjects() ([]string, error) {
	entries, err := os.ReadDir(s.ProjectsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DeleteProject removes the project's entire subtree. Irreversible.
func (s *Store) DeleteProject(name string) error {
	if err := ValidateProjectName(name); err != nil {
		return err
	}

	dir := s.ProjectDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", kerrors.ErrProjectNotFound, name)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing project directory: %w", err)
	}
	return nil
}

// PlaintextFiles returns the recognized plaintext env files present in the
// project, in kind order.
func (s *Store) PlaintextFiles(name string) ([]string, error) {
	dir, err := s.existingProjectDir(name)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, kind := range s.kinds {
		if _, err := os.Stat(filepath.Join(dir, kind)); err == nil {
			files = append(files, kind)
		}
	}
	return files, nil
}

// ListEncrypted returns the envelope filenames present in the project.
func (s *Store) ListEncrypted(name string) ([]string, error) {
	dir, err := s.existingProjectDir(name)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading project directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && IsEncryptedFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// EncryptAll encrypts every present recognized env file in the project.
// The plaintext copy is removed only when removePlaintext is set, and only
// after its envelope has been written successfully. With removePlaintext
// false both copies coexist, which is an explicit choice, not an accident.
func (s *Store) EncryptAll(name string, password []byte, removePlaintext bool) ([]FileResult, error) {
	files, err := s.PlaintextFiles(name)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in project %s", kerrors.ErrNoRecognizedFiles, name)
	}
	return s.EncryptFiles(name, files, password, removePlaintext)
}

// EncryptFiles encrypts the named env files in the project. Each file is
// handled independently; a failure on one file never loses data for another.
func (s *Store) EncryptFiles(name string, files []string, password []byte, removePlaintext bool) ([]FileResult, error) {
	dir, err := s.existingProjectDir(name)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(files))
	for _, file := range files {
		inputPath := filepath.Join(dir, file)
		outputPath := inputPath + EncryptedSuffix

		result := FileResult{Name: file}
		plaintext, err := os.ReadFile(inputPath)
		if err != nil {
			result.Err = fmt.Errorf("reading %s: %w", file, err)
			results = append(results, result)
			continue
		}

		envelope, err := Encrypt(plaintext, password)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		if err := os.WriteFile(outputPath, envelope, 0600); err != nil {
			result.Err = fmt.Errorf("writing %s: %w", outputPath, err)
			results = append(results, result)
			continue
		}
		result.Output = outputPath

		// The envelope is on disk; removing the plaintext cannot lose data.
		if removePlaintext {
			if err := os.Remove(inputPath); err != nil {
				result.Err = fmt.Errorf("removing plaintext %s: %w", file, err)
			}
		}
		results = append(results, result)
	}

	return results, nil
}

// DecryptAll decrypts every envelope in the project. Failures are
// per-file: a wrong password fails only the files it was tried against,
// and no output file is written for a failed envelope.
func (s *Store) DecryptAll(name string, password []byte) ([]FileResult, error) {
	files, err := s.ListEncrypted(name)
	if err != nil {
		return nil, err
	}
	return s.DecryptFiles(name, files, password)
}

// DecryptFiles decrypts the named envelopes in the project, writing each
// recovered plaintext alongside with the encrypted suffix removed. An
// existing plaintext copy of the same kind is overwritten.
func (s *Store) DecryptFiles(name string, files []string, password []byte) ([]FileResult, error) {
	dir, err := s.existingProjectDir(name)
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, 0, len(files))
	for _, file := range files {
		inputPath := filepath.Join(dir, file)

		result := FileResult{Name: file}
		envelope, err := os.ReadFile(inputPath)
		if err != nil {
			result.Err = fmt.Errorf("reading %s: %w", file, err)
			results = append(results, result)
			continue
		}

		plaintext, err := Decrypt(envelope, password)
		if err != nil {
			result.Err = err
			results = append(results, result)
			continue
		}

		outputPath := filepath.Join(dir, PlaintextName(file))
		// #nosec G306 -- the recovered env file must be editable by the user.
		if err := os.WriteFile(outputPath, plaintext, 0600); err != nil {
			result.Err = fmt.Errorf("writing %s: %w", outputPath, err)
			results = append(results, result)
			continue
		}
		result.Output = outputPath
		results = append(results, result)
	}

	return results, nil
}

// EnsureProject verifies the named project exists.
//
// Returns ErrInvalidProjectName or ErrProjectNotFound otherwise.
func (s *Store) EnsureProject(name string) error {
	_, err := s.existingProjectDir(name)
	return err
}

func (s *Store) existingProjectDir(name string) (string, error) {
	if err := ValidateProjectName(name); err != nil {
		return "", err
	}
	dir := s.ProjectDir(name)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrProjectNotFound, name)
	}
	return dir, nil
}
