package models_test

import (
	"testing"

	"cohortid/internal/models"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch() *models.Batch {
	b := models.NewBatch("/data", afero.NewMemMapFs())
	b.AddFile(models.FileInfo{Path: "P001/genome.vcf", Size: 100, Extension: ".vcf", IsGenomic: true})
	b.AddFile(models.FileInfo{Path: "P002/genome.vcf", Size: 200, Extension: ".vcf", IsGenomic: true})
	b.AddFile(models.FileInfo{Path: "P002/notes.log", Size: 10, Extension: ".log", IsGenomic: false})
	return b
}

func TestNewImportSet_SelectsGenomicFiles(t *testing.T) {
	set := models.NewImportSet(newTestBatch())

	assert.Equal(t, 2, set.SelectedCount())
	assert.True(t, set.IsFileSelected("P001/genome.vcf"))
	assert.False(t, set.IsFileSelected("P002/notes.log"))

	// Empty pattern: valid, resolves nothing.
	assert.True(t, set.PatternValid())
	assert.Equal(t, 0, set.MatchedCount())
}

func TestApply_ResolvesSelection(t *testing.T) {
	set := models.NewImportSet(newTestBatch())
	set.Apply("{parent}")

	assert.Equal(t, 2, set.MatchedCount())

	id, ok := set.ResolvedID("P001/genome.vcf")
	require.True(t, ok)
	assert.Equal(t, "P001", id)

	m, ok := set.RawMatch("P001/genome.vcf")
	require.True(t, ok)
	assert.Equal(t, "P001", m.ID)
}

func TestApply_RecomputesFromScratch(t *testing.T) {
	set := models.NewImportSet(newTestBatch())

	set.Apply("{parent}")
	require.Equal(t, 2, set.MatchedCount())

	// Switching to a non-matching pattern leaves no stale IDs behind.
	set.Apply("sample_{id}.xyz")
	assert.Equal(t, 0, set.MatchedCount())
	assert.Len(t, set.UnmatchedPaths(), 2)

	set.Apply("{parent}")
	assert.Equal(t, 2, set.MatchedCount())
}

func TestApply_InvalidPatternResolvesNothing(t *testing.T) {
	set := models.NewImportSet(newTestBatch())
	set.Apply("(unbalanced")

	assert.False(t, set.PatternValid())
	assert.NotEmpty(t, set.PatternError())
	assert.Equal(t, 0, set.MatchedCount())
	assert.Equal(t, 0, set.CollisionCount())
}

func TestSelectionChangesReResolve(t *testing.T) {
	set := models.NewImportSet(newTestBatch())
	set.Apply("{parent}")
	require.Equal(t, 2, set.MatchedCount())

	set.SetFileSelection("P001/genome.vcf", false)
	assert.Equal(t, 1, set.MatchedCount())
	_, ok := set.ResolvedID("P001/genome.vcf")
	assert.False(t, ok)

	set.ToggleFileSelection("P001/genome.vcf")
	assert.Equal(t, 2, set.MatchedCount())
}

func TestCollisionCount_SuffixesSharedIDs(t *testing.T) {
	b := models.NewBatch("/data", afero.NewMemMapFs())
	b.AddFile(models.FileInfo{Path: "P001/genome.vcf", Extension: ".vcf", IsGenomic: true})
	b.AddFile(models.FileInfo{Path: "P001/exome.vcf", Extension: ".vcf", IsGenomic: true})

	set := models.NewImportSet(b)
	set.Apply("{parent}")

	assert.Equal(t, 2, set.CollisionCount())

	id1, _ := set.ResolvedID("P001/genome.vcf")
	id2, _ := set.ResolvedID("P001/exome.vcf")
	assert.Equal(t, "P001_1", id1)
	assert.Equal(t, "P001_2", id2)
}

func TestSelectedPaths_KeepBatchOrder(t *testing.T) {
	set := models.NewImportSet(newTestBatch())
	set.SelectAll()

	assert.Equal(t, []string{
		"P001/genome.vcf",
		"P002/genome.vcf",
		"P002/notes.log",
	}, set.SelectedPaths())
	assert.Equal(t, int64(310), set.SelectedTotalSize())

	set.SelectNone()
	assert.Empty(t, set.SelectedPaths())

	set.SelectGenomic()
	assert.Equal(t, 2, set.SelectedCount())
}
