package models

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Entry statuses in an import manifest.
const (
	StatusPending   = "pending"   // Has a participant ID, ready for import
	StatusUnmatched = "unmatched" // No participant ID could be extracted
)

// ImportManifest is the serializable result of resolving a batch: one entry
// per selected file with its assigned participant ID. Downstream import
// tooling consumes this file; cohortid itself keeps no other persistent
// state.
type ImportManifest struct {
	Root      string           `json:"root"`
	Pattern   string           `json:"pattern"`
	Entries   []ManifestEntry  `json:"entries"`
	Metadata  ManifestMetadata `json:"metadata"`
}

// ManifestEntry describes a single file staged for import.
type ManifestEntry struct {
	Path          string `json:"path"`
	ParticipantID string `json:"participant_id,omitempty"`
	Size          int64  `json:"size"`
	Extension     string `json:"extension,omitempty"`
	Status        string `json:"status"`
}

// ManifestMetadata contains metadata about the manifest
type ManifestMetadata struct {
	CreatedAt      string `json:"created_at"`
	Tool           string `json:"tool"`
	TotalFiles     int    `json:"total_files"`
	MatchedFiles   int    `json:"matched_files"`
	UnmatchedFiles int    `json:"unmatched_files"`
	TotalSize      int64  `json:"total_size"`
}

// NewManifestFromImportSet builds a manifest from the current resolution
// state of an import set. Unmatched files are recorded with an empty ID and
// StatusUnmatched rather than dropped, so the consumer can flag them.
func NewManifestFromImportSet(set *ImportSet) *ImportManifest {
	manifest := &ImportManifest{
		Root:    set.Batch.Root,
		Pattern: set.PatternText,
		Entries: make([]ManifestEntry, 0, set.SelectedCount()),
	}

	for _, path := range set.SelectedPaths() {
		entry := ManifestEntry{Path: path, Status: StatusUnmatched}
		if file := set.Batch.GetFileByPath(path); file != nil {
			entry.Size = file.Size
			entry.Extension = file.Extension
		}
		if id, ok := set.ResolvedID(path); ok {
			entry.ParticipantID = id
			entry.Status = StatusPending
		}
		manifest.Entries = append(manifest.Entries, entry)
	}

	matched := set.MatchedCount()
	manifest.Metadata = ManifestMetadata{
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		Tool:           "cohortid",
		TotalFiles:     len(manifest.Entries),
		MatchedFiles:   matched,
		UnmatchedFiles: len(manifest.Entries) - matched,
		TotalSize:      set.SelectedTotalSize(),
	}
	return manifest
}

// Write saves the manifest as indented JSON.
func (m *ImportManifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

// LoadManifest reads a manifest previously written by Write.
func LoadManifest(path string) (*ImportManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m ImportManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
