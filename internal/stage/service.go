package stage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"cohortid/internal/models"
)

// Service stages resolved files into a per-participant directory layout
type Service struct {
	fs afero.Fs
}

// NewService creates a new staging service
func NewService(fs afero.Fs) *Service {
	return &Service{
		fs: fs,
	}
}

// StageOptions contains configuration for staging operations
type StageOptions struct {
	DestinationPath string
	Overwrite       bool
}

// StageSummary contains information about a staging operation
type StageSummary struct {
	FileCount       int
	TotalSize       int64
	SkippedFiles    []string // Selected files with no participant ID
	SourcePath      string
	DestinationPath string
}

// GetStageSummary calculates what would be staged without copying anything.
func (s *Service) GetStageSummary(set *models.ImportSet, destPath string) (*StageSummary, error) {
	if set == nil || set.Batch == nil {
		return nil, fmt.Errorf("invalid import set")
	}

	summary := &StageSummary{
		SourcePath:      set.Batch.Root,
		DestinationPath: destPath,
	}

	for _, path := range set.SelectedPaths() {
		if _, ok := set.ResolvedID(path); !ok {
			summary.SkippedFiles = append(summary.SkippedFiles, path)
			continue
		}
		summary.FileCount++
		if file := set.Batch.GetFileByPath(path); file != nil {
			summary.TotalSize += file.Size
		}
	}

	return summary, nil
}

// StageImportSet copies every selected file with a resolved participant ID
// into dest/<participantID>/<basename>. Files without an ID are skipped and
// reported in the summary, never treated as a failure.
func (s *Service) StageImportSet(set *models.ImportSet, opts StageOptions) (*StageSummary, error) {
	summary, err := s.GetStageSummary(set, opts.DestinationPath)
	if err != nil {
		return nil, err
	}

	if err := s.fs.MkdirAll(opts.DestinationPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	for _, path := range set.SelectedPaths() {
		id, ok := set.ResolvedID(path)
		if !ok {
			continue
		}
		if err := s.stageFile(set.Batch.Root, path, id, opts); err != nil {
			return nil, fmt.Errorf("failed to stage file %s: %w", path, err)
		}
	}

	return summary, nil
}

// stageFile copies a single file into its participant directory
func (s *Service) stageFile(root, relativePath, participantID string, opts StageOptions) error {
	sourcePath := filepath.Join(root, filepath.FromSlash(relativePath))

	basename := relativePath
	if i := strings.LastIndex(relativePath, "/"); i >= 0 {
		basename = relativePath[i+1:]
	}

	destDir := filepath.Join(opts.DestinationPath, participantID)
	destPath := filepath.Join(destDir, basename)

	if err := s.fs.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", destDir, err)
	}

	if !opts.Overwrite {
		if exists, err := afero.Exists(s.fs, destPath); err != nil {
			return fmt.Errorf("failed to check if destination exists: %w", err)
		} else if exists {
			return fmt.Errorf("destination file exists and overwrite is disabled: %s", destPath)
		}
	}

	return s.copyFile(sourcePath, destPath)
}

// copyFile copies a file from source to destination, preserving attributes
func (s *Service) copyFile(sourcePath, destPath string) error {
	srcFile, err := s.fs.Open(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("failed to get source file info: %w", err)
	}

	destFile, err := s.fs.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err := s.fs.Chmod(destPath, srcInfo.Mode()); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", destPath, err)
	}

	// Preserve timestamps if possible
	if _, ok := s.fs.(*afero.OsFs); ok {
		_ = os.Chtimes(destPath, srcInfo.ModTime(), srcInfo.ModTime())
	}

	return nil
}

// ValidateStagePath performs basic validation on the destination path
func ValidateStagePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("destination path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		path = absPath
	}

	parentDir := filepath.Dir(path)
	if _, err := os.Stat(parentDir); os.IsNotExist(err) {
		return fmt.Errorf("parent directory does not exist: %s", parentDir)
	}
	return nil
}
