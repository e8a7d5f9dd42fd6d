package pattern_test

import (
	"testing"

	"cohortid/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_DirectoryAliases(t *testing.T) {
	for _, text := range []string{"{parent}", "{dirname}", "{dir}", "{id}/*"} {
		p := pattern.Compile(text)
		assert.True(t, p.Valid())
		assert.Equal(t, pattern.KindDirectory, p.Kind(), "pattern %q", text)
	}
}

func TestCompile_InvalidRegexIsNotAnError(t *testing.T) {
	p := pattern.Compile("(unbalanced")
	assert.False(t, p.Valid())
	assert.NotEmpty(t, p.ErrText())
	assert.Nil(t, p.Extract("data/P001/genome.vcf"))
}

func TestCompile_InvalidInnerPattern(t *testing.T) {
	p := pattern.Compile("{stem:(bad}")
	assert.False(t, p.Valid())
	assert.Nil(t, p.Extract("data/sample.vcf"))
}

func TestExtract_ParentDirectory(t *testing.T) {
	p := pattern.Compile("{parent}")
	m := p.Extract("/data/P001/genome.vcf")
	require.NotNil(t, m)
	assert.Equal(t, "P001", m.ID)
	assert.Equal(t, "P001", slice("/data/P001/genome.vcf", m))
}

func TestExtract_ParentDirectory_NoParent(t *testing.T) {
	p := pattern.Compile("{parent}")
	assert.Nil(t, p.Extract("genome.vcf"))
}

func TestExtract_Filename(t *testing.T) {
	p := pattern.Compile("{filename}")

	m := p.Extract("data/P7.vcf")
	require.NotNil(t, m)
	assert.Equal(t, "P7", m.ID)
	assert.Equal(t, "P7", slice("data/P7.vcf", m))

	// No extension: the whole name is the stem
	m = p.Extract("data/readme")
	require.NotNil(t, m)
	assert.Equal(t, "readme", m.ID)
}

func TestExtract_Basename(t *testing.T) {
	p := pattern.Compile("{basename}")
	m := p.Extract("data/P7.vcf")
	require.NotNil(t, m)
	assert.Equal(t, "P7.vcf", m.ID)
	assert.Equal(t, "P7.vcf", slice("data/P7.vcf", m))
}

func TestExtract_ParentWrapped_WholeSegment(t *testing.T) {
	p := pattern.Compile("{parent:{id}}")
	m := p.Extract("cohort/donor-88/genome.vcf")
	require.NotNil(t, m)
	assert.Equal(t, "donor-88", m.ID)
	assert.Equal(t, "donor-88", slice("cohort/donor-88/genome.vcf", m))
}

func TestExtract_ParentWrapped_Template(t *testing.T) {
	p := pattern.Compile("{parent:donor-{id}}")
	path := "cohort/donor-88/genome.vcf"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "88", m.ID)
	assert.Equal(t, "88", slice(path, m))
}

func TestExtract_StemWrapped(t *testing.T) {
	p := pattern.Compile("{stem:run_{id}}")
	path := "a/run_X9.tsv"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "X9", m.ID)
	assert.Equal(t, "X9", slice(path, m))
}

func TestExtract_StemWrapped_WholeStem(t *testing.T) {
	p := pattern.Compile("{stem:{id}}")
	path := "x/sample_01.vcf"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "sample_01", m.ID)
	assert.Equal(t, "sample_01", slice(path, m))
}

func TestExtract_Template_DotDelimiter(t *testing.T) {
	// The literal after {id} is ".vcf", so the class stops before the dot
	// and also excludes underscore and hyphen.
	p := pattern.Compile("sample_{id}.vcf")
	path := "sample_AB12.vcf"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "AB12", m.ID)
	assert.Equal(t, "AB12", slice(path, m))
}

func TestExtract_Template_OffsetsIndexFullPath(t *testing.T) {
	p := pattern.Compile("sample_{id}.vcf")
	path := "data/batch1/sample_AB12.vcf"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "AB12", m.ID)
	assert.Equal(t, 19, m.Start)
	assert.Equal(t, "AB12", slice(path, m))
}

func TestExtract_Template_UnderscoreDelimiterKeepsHyphen(t *testing.T) {
	p := pattern.Compile("{id}_2024.vcf")
	path := "AB-12_2024.vcf"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "AB-12", m.ID)
}

func TestExtract_Template_HyphenDelimiterKeepsUnderscore(t *testing.T) {
	p := pattern.Compile("{id}-final.vcf")
	path := "AB_12-final.vcf"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "AB_12", m.ID)
}

func TestExtract_Template_TrailingStar(t *testing.T) {
	p := pattern.Compile("sample_{id}*")
	m := p.Extract("sample_AB12.vcf")
	require.NotNil(t, m)
	assert.Equal(t, "AB12", m.ID)
}

func TestExtract_Template_MatchesFilenameOnly(t *testing.T) {
	// The template must not match against directory components.
	p := pattern.Compile("sample_{id}.vcf")
	assert.Nil(t, p.Extract("sample_AB12.vcf/other.txt"))
}

func TestExtract_RawRegex_NamedGroup(t *testing.T) {
	p := pattern.Compile(`(?P<id>[A-Z]{2}\d{4})`)
	path := "home/x/subject-AB1234-notes.txt"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "AB1234", m.ID)
	assert.Equal(t, "AB1234", slice(path, m))
}

func TestExtract_RawRegex_FirstGroupFallback(t *testing.T) {
	p := pattern.Compile(`subject-([A-Z]+\d+)`)
	m := p.Extract("home/subject-AB1234-notes.txt")
	require.NotNil(t, m)
	assert.Equal(t, "AB1234", m.ID)
}

func TestExtract_RawRegex_MatchesFullPath(t *testing.T) {
	p := pattern.Compile(`(?P<id>P\d{3})/`)
	path := "data/P001/genome.vcf"
	m := p.Extract(path)
	require.NotNil(t, m)
	assert.Equal(t, "P001", m.ID)
	assert.Equal(t, "P001", slice(path, m))
}

func TestExtract_EmptyPatternNeverMatches(t *testing.T) {
	p := pattern.Compile("")
	assert.True(t, p.Valid())
	assert.Nil(t, p.Extract("data/P001/genome.vcf"))
}

func TestExtract_PureFunction(t *testing.T) {
	p := pattern.Compile("{parent}")
	first := p.Extract("/data/P001/genome.vcf")
	second := p.Extract("/data/P001/genome.vcf")
	assert.Equal(t, first, second)
}

// slice extracts the span a match claims to cover in the original path.
func slice(path string, m *pattern.Match) string {
	return path[m.Start : m.Start+m.Length]
}
