package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"cohortid/internal/models"
	"cohortid/internal/utils"
)

// Scanner handles batch discovery and file enumeration
type Scanner struct {
	fs          afero.Fs
	maxDepth    int
	genomicExts map[string]bool
}

// NewScanner creates a new Scanner with the given filesystem
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{
		fs:       fs,
		maxDepth: 10, // Default max depth
		genomicExts: map[string]bool{
			".vcf": true,
			".gz":  true,
			".txt": true,
			".csv": true,
			".tsv": true,
			".bed": true,
			".bim": true,
			".fam": true,
			".ped": true,
			".map": true,
		},
	}
}

// SetMaxDepth sets the maximum scanning depth
func (s *Scanner) SetMaxDepth(depth int) {
	s.maxDepth = depth
}

// AddGenomicExtension adds a file extension to be treated as genomic data
func (s *Scanner) AddGenomicExtension(ext string) {
	s.genomicExts[NormalizeExtension(ext)] = true
}

// Scan scans a directory and returns a Batch with all discovered files
func (s *Scanner) Scan(root string) (*models.Batch, error) {
	info, err := s.fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", root)
	}

	batch := models.NewBatch(root, s.fs)

	if err := s.scanDirectory(root, "", 0, batch); err != nil {
		return nil, fmt.Errorf("failed to scan batch: %w", err)
	}

	batch.Metadata.ScanDepth = s.maxDepth
	return batch, nil
}

// scanDirectory recursively scans a directory and adds files to the batch
func (s *Scanner) scanDirectory(root, relativePath string, depth int, batch *models.Batch) error {
	if depth > s.maxDepth {
		return nil // Skip if max depth exceeded
	}

	currentPath := filepath.Join(root, relativePath)

	entries, err := afero.ReadDir(s.fs, currentPath)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", currentPath, err)
	}

	for _, entry := range entries {
		// Batch paths stay forward-slash regardless of platform; the
		// extractor operates on slash-delimited strings.
		entryRelPath := joinSlash(relativePath, entry.Name())

		if entry.IsDir() {
			if err := s.scanDirectory(root, entryRelPath, depth+1, batch); err != nil {
				// Log warning but continue scanning
				utils.Warning("failed to scan directory %s: %v", entryRelPath, err)
			}
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		batch.AddFile(models.FileInfo{
			Path:         entryRelPath,
			Size:         entry.Size(),
			Extension:    ext,
			IsGenomic:    s.genomicExts[ext],
			LastModified: entry.ModTime(),
		})
	}

	return nil
}

// FilterByExtensions returns the batch paths whose extension is in exts.
// Extensions are normalized (leading dot added, lowercased) before
// comparison. An empty filter matches nothing.
func FilterByExtensions(batch *models.Batch, exts []string) []string {
	if len(exts) == 0 {
		return nil
	}

	wanted := make(map[string]bool, len(exts))
	for _, ext := range exts {
		wanted[NormalizeExtension(ext)] = true
	}

	var filtered []string
	for _, file := range batch.Files {
		if wanted[file.Extension] {
			filtered = append(filtered, file.Path)
		}
	}
	return filtered
}

// NormalizeExtension adds the leading dot if missing and lowercases.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// CommonRoot returns the deepest directory shared by all paths, and whether
// one exists. Paths are treated as forward-slash strings; the result is the
// parent directory of the first path narrowed until it prefixes every other
// path's parent.
func CommonRoot(paths []string) (string, bool) {
	if len(paths) == 0 {
		return "", false
	}

	common := parentDir(paths[0])
	for _, path := range paths[1:] {
		parent := parentDir(path)
		for !isUnder(parent, common) {
			if common == "" || common == "/" {
				return "", false
			}
			common = parentDir(common)
		}
	}

	if common == "" {
		return "", false
	}
	return common, true
}

func parentDir(path string) string {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return ""
	}
	if i == 0 {
		return "/"
	}
	return path[:i]
}

func isUnder(path, root string) bool {
	if root == "" {
		return false
	}
	if path == root || root == "/" {
		return true
	}
	return strings.HasPrefix(path, root+"/")
}

func joinSlash(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
