package suggest_test

import (
	"fmt"
	"testing"

	"cohortid/internal/suggest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggest_EmptyInput(t *testing.T) {
	assert.Nil(t, suggest.NewEngine().Suggest(nil))
}

func TestSuggest_RanksByCountThenUniqueness(t *testing.T) {
	paths := []string{
		"cohort/sample_AB01.vcf",
		"cohort/sample_AB02.vcf",
	}

	suggestions := suggest.NewEngine().Suggest(paths)
	require.NotEmpty(t, suggestions)

	// Every candidate matches both files, so distinct-ID count decides:
	// {parent} maps both to "cohort" and must rank below the per-file ones.
	assert.Equal(t, "{filename}", suggestions[0].Pattern)
	assert.Equal(t, 2, suggestions[0].Count)

	last := suggestions[len(suggestions)-1]
	assert.Equal(t, "{parent}", last.Pattern)
	assert.Equal(t, 2, last.Count)
}

func TestSuggest_DerivesTemplateFromCommonShape(t *testing.T) {
	paths := []string{
		"cohort/sample_AB01.vcf",
		"cohort/sample_AB02.vcf",
	}

	suggestions := suggest.NewEngine().Suggest(paths)

	tpl := findSuggestion(suggestions, "sample_AB0{id}.vcf")
	require.NotNil(t, tpl)
	assert.Equal(t, 2, tpl.Count)
	require.Len(t, tpl.SampleExtractions, 2)
	assert.Equal(t, "cohort/sample_AB01.vcf", tpl.SampleExtractions[0].Path)
	assert.Equal(t, "1", tpl.SampleExtractions[0].ParticipantID)
}

func TestSuggest_SampleExtractionShape(t *testing.T) {
	paths := []string{
		"cohort/P001/genome.vcf",
		"cohort/P002/genome.vcf",
	}

	suggestions := suggest.NewEngine().Suggest(paths)

	parent := findSuggestion(suggestions, "{parent}")
	require.NotNil(t, parent)
	assert.Equal(t, 2, parent.Count)
	assert.Equal(t, "genome.vcf → P001", parent.Example)
	require.Len(t, parent.SampleExtractions, 2)
	assert.Equal(t, suggest.SampleExtraction{
		Path:          "cohort/P001/genome.vcf",
		ParticipantID: "P001",
	}, parent.SampleExtractions[0])
}

func TestSuggest_SamplesAreCapped(t *testing.T) {
	var paths []string
	for i := 0; i < 8; i++ {
		paths = append(paths, fmt.Sprintf("cohort/P%03d/genome.vcf", i))
	}

	suggestions := suggest.NewEngine().Suggest(paths)

	parent := findSuggestion(suggestions, "{parent}")
	require.NotNil(t, parent)
	assert.Equal(t, 8, parent.Count)
	assert.Len(t, parent.SampleExtractions, 5)
}

func TestSuggest_RegexCandidatesCarryTheirRegex(t *testing.T) {
	paths := []string{
		"data/subject-AB1234-reads.txt",
		"data/subject-CD5678-reads.txt",
	}

	suggestions := suggest.NewEngine().Suggest(paths)
	require.NotEmpty(t, suggestions)

	var found bool
	for _, s := range suggestions {
		if s.RegexPattern == "" {
			continue
		}
		found = true
		assert.Equal(t, s.Pattern, s.RegexPattern)
		assert.NotEmpty(t, s.SampleExtractions)
	}
	assert.True(t, found, "expected at least one regex-backed suggestion")
}

func TestSuggest_DiscardsNonMatchingCandidates(t *testing.T) {
	// Single segment, no digits: the regex candidates have nothing to match.
	suggestions := suggest.NewEngine().Suggest([]string{"readme"})

	for _, s := range suggestions {
		assert.Greater(t, s.Count, 0)
		assert.NotEmpty(t, s.SampleExtractions)
	}
}

func findSuggestion(suggestions []suggest.Suggestion, pattern string) *suggest.Suggestion {
	for i := range suggestions {
		if suggestions[i].Pattern == pattern {
			return &suggestions[i]
		}
	}
	return nil
}
