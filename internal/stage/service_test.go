package stage_test

import (
	"path/filepath"
	"testing"

	"cohortid/internal/models"
	"cohortid/internal/stage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStagedSet(t *testing.T, fs afero.Fs) *models.ImportSet {
	t.Helper()

	files := map[string]string{
		"/src/P001/genome.vcf": "genome-one",
		"/src/P002/genome.vcf": "genome-two",
		"/src/misc/notes.vcf":  "stray",
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	b := models.NewBatch("/src", fs)
	b.AddFile(models.FileInfo{Path: "P001/genome.vcf", Size: 10, Extension: ".vcf", IsGenomic: true})
	b.AddFile(models.FileInfo{Path: "P002/genome.vcf", Size: 10, Extension: ".vcf", IsGenomic: true})
	b.AddFile(models.FileInfo{Path: "misc/notes.vcf", Size: 5, Extension: ".vcf", IsGenomic: true})

	set := models.NewImportSet(b)
	set.Apply("{parent:P{id}}")
	return set
}

func TestStageImportSet_PerParticipantLayout(t *testing.T) {
	fs := afero.NewMemMapFs()
	set := newStagedSet(t, fs)

	summary, err := stage.NewService(fs).StageImportSet(set, stage.StageOptions{
		DestinationPath: "/dst",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FileCount)
	assert.Equal(t, int64(20), summary.TotalSize)
	assert.Equal(t, "/src", summary.SourcePath)
	assert.Equal(t, "/dst", summary.DestinationPath)

	// IDs came from {parent:P{id}}, so directories are the bare numbers.
	content, err := afero.ReadFile(fs, "/dst/001/genome.vcf")
	require.NoError(t, err)
	assert.Equal(t, "genome-one", string(content))

	content, err = afero.ReadFile(fs, "/dst/002/genome.vcf")
	require.NoError(t, err)
	assert.Equal(t, "genome-two", string(content))
}

func TestStageImportSet_SkipsFilesWithoutID(t *testing.T) {
	fs := afero.NewMemMapFs()
	set := newStagedSet(t, fs)

	summary, err := stage.NewService(fs).StageImportSet(set, stage.StageOptions{
		DestinationPath: "/dst",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"misc/notes.vcf"}, summary.SkippedFiles)

	exists, err := afero.Exists(fs, "/dst/misc/notes.vcf")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStageImportSet_OverwriteGuard(t *testing.T) {
	fs := afero.NewMemMapFs()
	set := newStagedSet(t, fs)
	svc := stage.NewService(fs)

	_, err := svc.StageImportSet(set, stage.StageOptions{DestinationPath: "/dst"})
	require.NoError(t, err)

	_, err = svc.StageImportSet(set, stage.StageOptions{DestinationPath: "/dst"})
	assert.Error(t, err)

	_, err = svc.StageImportSet(set, stage.StageOptions{DestinationPath: "/dst", Overwrite: true})
	assert.NoError(t, err)
}

func TestGetStageSummary_CopiesNothing(t *testing.T) {
	fs := afero.NewMemMapFs()
	set := newStagedSet(t, fs)

	summary, err := stage.NewService(fs).GetStageSummary(set, "/dst")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.FileCount)
	assert.Equal(t, []string{"misc/notes.vcf"}, summary.SkippedFiles)

	exists, err := afero.DirExists(fs, "/dst")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetStageSummary_NilSet(t *testing.T) {
	_, err := stage.NewService(afero.NewMemMapFs()).GetStageSummary(nil, "/dst")
	assert.Error(t, err)
}

func TestValidateStagePath(t *testing.T) {
	assert.Error(t, stage.ValidateStagePath(""))
	assert.Error(t, stage.ValidateStagePath("   "))

	dir := t.TempDir()
	assert.NoError(t, stage.ValidateStagePath(filepath.Join(dir, "staged")))
	assert.Error(t, stage.ValidateStagePath("/definitely-missing-parent/staged"))
}
