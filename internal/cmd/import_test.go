package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"cohortid/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	for _, rel := range []string{"P001/genome.vcf", "P002/genome.vcf", "misc/readme.md"} {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
	}
	return dir
}

func TestRunImport_WritesManifest(t *testing.T) {
	dir := writeTestTree(t)
	out := filepath.Join(t.TempDir(), "manifest.json")

	maxDepth = 10
	importPattern = "{parent}"
	importExts = []string{"vcf"}
	importOutput = out

	require.NoError(t, runImport(importCmd, []string{dir}))

	manifest, err := models.LoadManifest(out)
	require.NoError(t, err)

	assert.Equal(t, "{parent}", manifest.Pattern)
	assert.Equal(t, 2, manifest.Metadata.TotalFiles)
	assert.Equal(t, 2, manifest.Metadata.MatchedFiles)

	byPath := make(map[string]models.ManifestEntry)
	for _, entry := range manifest.Entries {
		byPath[entry.Path] = entry
	}
	assert.Equal(t, "P001", byPath["P001/genome.vcf"].ParticipantID)
	assert.Equal(t, models.StatusPending, byPath["P001/genome.vcf"].Status)
}

func TestRunImport_UnmatchedFilesKept(t *testing.T) {
	dir := writeTestTree(t)
	out := filepath.Join(t.TempDir(), "manifest.json")

	maxDepth = 10
	importPattern = "sample_{id}.xyz"
	importExts = nil
	importOutput = out

	require.NoError(t, runImport(importCmd, []string{dir}))

	manifest, err := models.LoadManifest(out)
	require.NoError(t, err)

	assert.Equal(t, 3, manifest.Metadata.TotalFiles)
	assert.Equal(t, 0, manifest.Metadata.MatchedFiles)
	for _, entry := range manifest.Entries {
		assert.Equal(t, models.StatusUnmatched, entry.Status)
	}
}

func TestScanBatch_MissingPath(t *testing.T) {
	_, err := scanBatch(afero.NewOsFs(), filepath.Join(t.TempDir(), "absent"), 10)
	assert.Error(t, err)
}

func TestSelectPaths(t *testing.T) {
	b := models.NewBatch("/data", afero.NewMemMapFs())
	b.AddFile(models.FileInfo{Path: "a.vcf", Extension: ".vcf"})
	b.AddFile(models.FileInfo{Path: "b.log", Extension: ".log"})

	assert.Equal(t, []string{"a.vcf", "b.log"}, selectPaths(b, nil))
	assert.Equal(t, []string{"a.vcf"}, selectPaths(b, []string{"vcf"}))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KB", formatBytes(1024))
	assert.Equal(t, "1.5 MB", formatBytes(3*1024*1024/2))
}
