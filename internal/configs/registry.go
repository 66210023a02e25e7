package configs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// Registry is the name→source-path bookkeeping file kept in the store
// root. It records where each project's env files were copied from; the
// directory tree under projects/ remains the source of truth for project
// existence.
type Registry struct {
	Projects map[string]RegistryEntry `toml:"projects"`
}

// RegistryEntry describes one registered project.
type RegistryEntry struct {
	UUID       string    `toml:"uuid"`
	SourcePath string    `toml:"source_path"`
	CreatedAt  time.Time `toml:"created_at"`
}

// RegistryPath returns the registry file location for a store root.
func RegistryPath(storeRoot string) string {
	return filepath.Join(storeRoot, "registry.toml")
}

// LoadRegistry loads the registry from the store root. A missing file
// yields an empty registry.
func LoadRegistry(storeRoot string) (*Registry, error) {
	reg := &Registry{Projects: make(map[string]RegistryEntry)}

	path := RegistryPath(storeRoot)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return reg, nil
	}

	if _, err := toml.DecodeFile(path, reg); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	if reg.Projects == nil {
		reg.Projects = make(map[string]RegistryEntry)
	}
	return reg, nil
}

// SaveRegistry writes the registry back to the store root, creating the
// store directory if needed.
func SaveRegistry(storeRoot string, reg *Registry) error {
	path := RegistryPath(storeRoot)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(reg); err != nil {
		return fmt.Errorf("failed to save registry: %w", err)
	}
	return file.Close()
}

// Add records a project, generating a UUID and timestamp. Re-adding an
// existing name keeps its UUID and updates the source path.
func (r *Registry) Add(name, sourcePath string) RegistryEntry {
	entry, ok := r.Projects[name]
	if !ok {
		entry = RegistryEntry{
			UUID:      uuid.New().String(),
			CreatedAt: time.Now().UTC(),
		}
	}
	entry.SourcePath = sourcePath
	r.Projects[name] = entry
	return entry
}

// Remove drops a project from the registry. Removing an unknown name is
// not an error: the directory tree, not the registry, decides existence.
func (r *Registry) Remove(name string) {
	delete(r.Projects, name)
}

// Names returns registered project names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Projects))
	for name := range r.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
