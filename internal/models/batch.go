package models

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
)

// Batch represents a scanned directory of candidate data files with
// aggregate metadata.
type Batch struct {
	Root      string         `json:"root"`       // Root directory path
	Files     []FileInfo     `json:"files"`      // All files found under root
	TotalSize int64          `json:"total_size"` // Total size in bytes
	Metadata  BatchMetadata  `json:"metadata"`   // Aggregate metadata
	ScanTime  time.Time      `json:"scan_time"`  // When the batch was scanned
	fs        afero.Fs       // Filesystem interface for operations
}

// FileInfo contains information about a single file in the batch.
type FileInfo struct {
	Path         string    `json:"path"`          // Relative forward-slash path from batch root
	Size         int64     `json:"size"`          // File size in bytes
	Extension    string    `json:"extension"`     // Extension with leading dot, lowercased
	IsGenomic    bool      `json:"is_genomic"`    // Detected as genomic data file
	LastModified time.Time `json:"last_modified"` // File modification time
}

// BatchMetadata contains aggregate information about the batch.
type BatchMetadata struct {
	GenomicFileCount int            `json:"genomic_file_count"` // Number of genomic data files
	TotalFileCount   int            `json:"total_file_count"`   // Total number of files
	ExtensionCounts  map[string]int `json:"extension_counts"`   // Files per extension
	ScanDepth        int            `json:"scan_depth"`         // Directory depth scanned
}

// ExtensionCount pairs an extension with the number of files carrying it.
type ExtensionCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

// NewBatch creates a new Batch with the given filesystem
func NewBatch(root string, fs afero.Fs) *Batch {
	return &Batch{
		Root:  root,
		Files: make([]FileInfo, 0),
		Metadata: BatchMetadata{
			ExtensionCounts: make(map[string]int),
		},
		ScanTime: time.Now(),
		fs:       fs,
	}
}

// AddFile adds a file to the batch and updates metadata
func (b *Batch) AddFile(file FileInfo) {
	b.Files = append(b.Files, file)
	b.TotalSize += file.Size
	b.Metadata.TotalFileCount++
	if file.IsGenomic {
		b.Metadata.GenomicFileCount++
	}
	if file.Extension != "" {
		b.Metadata.ExtensionCounts[file.Extension]++
	}
}

// Paths returns all file paths in scan order.
func (b *Batch) Paths() []string {
	paths := make([]string, 0, len(b.Files))
	for _, file := range b.Files {
		paths = append(paths, file.Path)
	}
	return paths
}

// GenomicFiles returns a slice of all genomic data files
func (b *Batch) GenomicFiles() []FileInfo {
	var genomic []FileInfo
	for _, file := range b.Files {
		if file.IsGenomic {
			genomic = append(genomic, file)
		}
	}
	return genomic
}

// GetFileByPath returns a file by its path, or nil if not found
func (b *Batch) GetFileByPath(path string) *FileInfo {
	for i := range b.Files {
		if b.Files[i].Path == path {
			return &b.Files[i]
		}
	}
	return nil
}

// ExtensionsByCount returns the extension tally sorted by count descending,
// ties broken alphabetically.
func (b *Batch) ExtensionsByCount() []ExtensionCount {
	counts := make([]ExtensionCount, 0, len(b.Metadata.ExtensionCounts))
	for ext, n := range b.Metadata.ExtensionCounts {
		counts = append(counts, ExtensionCount{Extension: ext, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Extension < counts[j].Extension
	})
	return counts
}

// GetFilesystem returns the filesystem interface
func (b *Batch) GetFilesystem() afero.Fs {
	return b.fs
}

// GetAbsolutePath returns the absolute path for a relative file path
func (b *Batch) GetAbsolutePath(relativePath string) string {
	return filepath.Join(b.Root, relativePath)
}
