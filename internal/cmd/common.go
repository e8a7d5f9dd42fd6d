package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"cohortid/internal/models"
	"cohortid/internal/scanner"
)

// scanBatch resolves the directory argument and scans it into a batch.
func scanBatch(fs afero.Fs, dir string, maxDepth int) (*models.Batch, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("path does not exist: %s", absPath)
	}

	s := scanner.NewScanner(fs)
	s.SetMaxDepth(maxDepth)
	return s.Scan(absPath)
}

// selectPaths returns the batch paths to operate on: filtered by extension
// when a filter is given, otherwise every scanned file.
func selectPaths(batch *models.Batch, exts []string) []string {
	if len(exts) > 0 {
		return scanner.FilterByExtensions(batch, exts)
	}
	return batch.Paths()
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
