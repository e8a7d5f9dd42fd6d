package models

import (
	"time"

	"cohortid/internal/batch"
	"cohortid/internal/pattern"
)

// ImportSet represents the current import state: the scanned batch, the
// user's file selection, the active pattern and the resolved participant
// IDs. Every pattern or selection change re-resolves the whole set; resolved
// state is derived data, never edited in place.
type ImportSet struct {
	Batch         *Batch          `json:"batch"`          // Source batch
	SelectedFiles map[string]bool `json:"selected_files"` // File selection state
	PatternText   string          `json:"pattern"`        // Active pattern text
	LastUpdated   time.Time       `json:"last_updated"`   // When last modified

	compiled    *pattern.Pattern
	resolvedIDs map[string]string
	matches     map[string]*pattern.Match
}

// NewImportSet creates a new ImportSet from a batch. Genomic files start
// selected, everything else deselected.
func NewImportSet(b *Batch) *ImportSet {
	selected := make(map[string]bool)
	for _, file := range b.Files {
		selected[file.Path] = file.IsGenomic
	}

	set := &ImportSet{
		Batch:         b,
		SelectedFiles: selected,
		LastUpdated:   time.Now(),
	}
	set.Apply("")
	return set
}

// Apply sets the active pattern and re-resolves participant IDs for the
// current selection from scratch.
func (s *ImportSet) Apply(patternText string) {
	s.PatternText = patternText
	s.compiled = pattern.Compile(patternText)
	s.resolve()
}

// resolve recomputes the ID maps for the selected files.
func (s *ImportSet) resolve() {
	paths := s.SelectedPaths()
	if s.PatternText == "" || !s.compiled.Valid() {
		s.resolvedIDs = make(map[string]string)
		s.matches = make(map[string]*pattern.Match)
	} else {
		s.resolvedIDs = batch.Resolve(paths, s.compiled)
		s.matches = batch.ResolveRaw(paths, s.compiled)
	}
	s.LastUpdated = time.Now()
}

// Pattern returns the compiled form of the active pattern.
func (s *ImportSet) Pattern() *pattern.Pattern {
	return s.compiled
}

// PatternValid reports whether the active pattern compiled successfully.
// The empty pattern is valid and matches nothing.
func (s *ImportSet) PatternValid() bool {
	return s.compiled == nil || s.compiled.Valid()
}

// PatternError returns the pattern compilation error message, or "".
func (s *ImportSet) PatternError() string {
	if s.compiled == nil {
		return ""
	}
	return s.compiled.ErrText()
}

// ResolvedID returns the final participant ID for a path, if any.
func (s *ImportSet) ResolvedID(path string) (string, bool) {
	id, ok := s.resolvedIDs[path]
	return id, ok
}

// ResolvedIDs returns the full path-to-ID map for the current selection.
func (s *ImportSet) ResolvedIDs() map[string]string {
	return s.resolvedIDs
}

// RawMatch returns the raw (pre-disambiguation) match for a path, if any.
func (s *ImportSet) RawMatch(path string) (*pattern.Match, bool) {
	m, ok := s.matches[path]
	return m, ok
}

// MatchedCount returns how many selected files have a resolved ID.
func (s *ImportSet) MatchedCount() int {
	return len(s.resolvedIDs)
}

// UnmatchedPaths returns the selected files with no resolved ID, in batch
// order. Callers flag these as missing a participant ID; their presence is
// never an error.
func (s *ImportSet) UnmatchedPaths() []string {
	var unmatched []string
	for _, path := range s.SelectedPaths() {
		if _, ok := s.resolvedIDs[path]; !ok {
			unmatched = append(unmatched, path)
		}
	}
	return unmatched
}

// CollisionCount returns how many selected files needed a suffix to make
// their ID unique.
func (s *ImportSet) CollisionCount() int {
	if s.PatternText == "" || !s.compiled.Valid() {
		return 0
	}
	return batch.CollisionCount(s.SelectedPaths(), s.compiled)
}

// ToggleFileSelection toggles the selection state of a file
func (s *ImportSet) ToggleFileSelection(path string) {
	if s.SelectedFiles == nil {
		s.SelectedFiles = make(map[string]bool)
	}
	s.SelectedFiles[path] = !s.SelectedFiles[path]
	s.resolve()
}

// SetFileSelection sets the selection state of a file
func (s *ImportSet) SetFileSelection(path string, selected bool) {
	if s.SelectedFiles == nil {
		s.SelectedFiles = make(map[string]bool)
	}
	s.SelectedFiles[path] = selected
	s.resolve()
}

// IsFileSelected returns true if the file is selected
func (s *ImportSet) IsFileSelected(path string) bool {
	if s.SelectedFiles == nil {
		return false
	}
	return s.SelectedFiles[path]
}

// SelectedPaths returns the selected file paths in batch scan order.
func (s *ImportSet) SelectedPaths() []string {
	var paths []string
	if s.Batch == nil {
		return paths
	}
	for _, file := range s.Batch.Files {
		if s.IsFileSelected(file.Path) {
			paths = append(paths, file.Path)
		}
	}
	return paths
}

// SelectedCount returns the number of selected files.
func (s *ImportSet) SelectedCount() int {
	count := 0
	for _, selected := range s.SelectedFiles {
		if selected {
			count++
		}
	}
	return count
}

// SelectAll selects every file in the batch.
func (s *ImportSet) SelectAll() {
	if s.Batch != nil {
		for _, file := range s.Batch.Files {
			s.SelectedFiles[file.Path] = true
		}
	}
	s.resolve()
}

// SelectGenomic selects only genomic data files.
func (s *ImportSet) SelectGenomic() {
	if s.Batch != nil {
		for _, file := range s.Batch.Files {
			s.SelectedFiles[file.Path] = file.IsGenomic
		}
	}
	s.resolve()
}

// SelectNone deselects all files.
func (s *ImportSet) SelectNone() {
	for path := range s.SelectedFiles {
		s.SelectedFiles[path] = false
	}
	s.resolve()
}

// SelectedTotalSize returns the total size of all selected files.
func (s *ImportSet) SelectedTotalSize() int64 {
	if s.Batch == nil {
		return 0
	}
	var total int64
	for _, file := range s.Batch.Files {
		if s.IsFileSelected(file.Path) {
			total += file.Size
		}
	}
	return total
}
