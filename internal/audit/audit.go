package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	Project    string   `json:"project,omitempty"`     // For create/encrypt/decrypt/delete.
	Files      []string `json:"files,omitempty"`       // For encrypt/decrypt.
	FilesCount int      `json:"files_count,omitempty"` // For export/import.
	Format     string   `json:"format,omitempty"`      // For export.
	OutputPath string   `json:"output_path,omitempty"` // For export.
	SourcePath string   `json:"source_path,omitempty"` // For create/import.
}

// Log appends an entry to the store's audit log. Audit failures are
// swallowed: an operation should not fail because its audit record could
// not be written.
func Log(storeRoot string, entry Entry) {
	if storeRoot == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(storeRoot, 0700); err != nil {
		return
	}

	// #nosec G306 -- the audit log holds no secret material.
	f, err := os.OpenFile(LogPath(storeRoot), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the audit log file for a store root.
func LogPath(storeRoot string) string {
	return filepath.Join(storeRoot, "audit.jsonl")
}

// ReadEntries reads all entries from the store's audit log. A missing log
// yields an empty slice.
func ReadEntries(storeRoot string) ([]Entry, error) {
	data, err := os.ReadFile(LogPath(storeRoot))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries. Malformed lines
// are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
