// Package suggest proposes candidate participant-ID patterns for a file
// batch. Suggestions are plain records consumable by the pattern compiler;
// the CLI and TUI treat this engine as an opaque producer, so alternative
// producers can emit the same shape.
package suggest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"cohortid/internal/pattern"
)

// SampleExtraction shows what one suggestion extracts from one path.
type SampleExtraction struct {
	Path          string `json:"path"`
	ParticipantID string `json:"participant_id"`
}

// Suggestion is a candidate pattern with evidence from the actual batch.
type Suggestion struct {
	Pattern           string             `json:"pattern"`
	RegexPattern      string             `json:"regex_pattern,omitempty"`
	Description       string             `json:"description"`
	Example           string             `json:"example"`
	Count             int                `json:"count"`
	SampleExtractions []SampleExtraction `json:"sample_extractions"`
}

// regexCandidate is a generic identifier shape tried against full paths.
// Lower priority wins ties.
type regexCandidate struct {
	name        string
	regex       string
	description string
	priority    int
}

var regexCandidates = []regexCandidate{
	{"LettersDigits", `(?P<id>[A-Za-z]{1,4}[_-]?\d{2,8})`, "Letter prefix followed by digits", 1},
	{"DigitRun", `(?P<id>\d{4,})`, "Run of four or more digits", 2},
	{"UpperToken", `(?P<id>[A-Z]{2,}\d+)`, "Uppercase code with numeric suffix", 3},
}

// Engine generates pattern suggestions for a list of file paths.
type Engine struct {
	maxSamples int
}

// NewEngine creates a suggestion engine with default limits.
func NewEngine() *Engine {
	return &Engine{maxSamples: 5}
}

// Suggest evaluates every candidate pattern against the paths and returns
// the ones that matched anything, best first: by match count, then by how
// many distinct IDs they extract, then by candidate priority.
func (e *Engine) Suggest(paths []string) []Suggestion {
	if len(paths) == 0 {
		return nil
	}

	type scored struct {
		suggestion Suggestion
		unique     int
		priority   int
	}

	var results []scored
	add := func(text, regexText, description string, priority int) {
		s, unique, ok := e.evaluate(text, regexText, description, paths)
		if ok {
			results = append(results, scored{s, unique, priority})
		}
	}

	// Directory-derived IDs are usually intentional layout, try them first.
	add("{parent}", "", "Use the parent directory name", 0)
	add("{filename}", "", "Use the file name without extension", 0)

	if tpl, desc := templateFromNames(paths); tpl != "" {
		add(tpl, "", desc, 0)
	}

	for _, c := range regexCandidates {
		add(c.regex, c.regex, c.description, c.priority)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].suggestion.Count != results[j].suggestion.Count {
			return results[i].suggestion.Count > results[j].suggestion.Count
		}
		if results[i].unique != results[j].unique {
			return results[i].unique > results[j].unique
		}
		return results[i].priority < results[j].priority
	})

	suggestions := make([]Suggestion, 0, len(results))
	for _, r := range results {
		suggestions = append(suggestions, r.suggestion)
	}
	return suggestions
}

// evaluate runs one candidate against all paths and collects its evidence.
// Candidates that match nothing are discarded.
func (e *Engine) evaluate(text, regexText, description string, paths []string) (Suggestion, int, bool) {
	p := pattern.Compile(text)
	if !p.Valid() {
		return Suggestion{}, 0, false
	}

	s := Suggestion{
		Pattern:      text,
		RegexPattern: regexText,
		Description:  description,
	}
	seen := make(map[string]bool)

	for _, path := range paths {
		m := p.Extract(path)
		if m == nil {
			continue
		}
		s.Count++
		seen[m.ID] = true
		if len(s.SampleExtractions) < e.maxSamples {
			s.SampleExtractions = append(s.SampleExtractions, SampleExtraction{
				Path:          path,
				ParticipantID: m.ID,
			})
		}
		if s.Example == "" {
			s.Example = fmt.Sprintf("%s → %s", lastSegment(path), m.ID)
		}
	}

	if s.Count == 0 {
		return Suggestion{}, 0, false
	}
	return s, len(seen), true
}

// templateFromNames derives a prefix{id}suffix template from the common
// literal prefix and suffix of the basenames. Returns "" when the names
// share no usable structure.
func templateFromNames(paths []string) (string, string) {
	if len(paths) < 2 {
		return "", ""
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = lastSegment(p)
	}

	prefix := names[0]
	suffix := names[0]
	for _, name := range names[1:] {
		prefix = commonPrefix(prefix, name)
		suffix = commonSuffix(suffix, name)
	}

	// Prefix and suffix may overlap for short names; shrink until every name
	// keeps a non-empty middle.
	shortest := names[0]
	for _, name := range names {
		if len(name) < len(shortest) {
			shortest = name
		}
	}
	if over := len(prefix) + len(suffix) - len(shortest) + 1; over > 0 {
		if over <= len(suffix) {
			suffix = suffix[over:]
		} else {
			rest := over - len(suffix)
			suffix = ""
			if rest > len(prefix) {
				return "", ""
			}
			prefix = prefix[:len(prefix)-rest]
		}
	}

	if prefix == "" && suffix == "" {
		return "", ""
	}

	// The varying middle has to be capturable by the character class the
	// template compiler picks for the delimiter following {id}.
	idLike := classPattern(suffix)
	for _, name := range names {
		middle := name[len(prefix) : len(name)-len(suffix)]
		if middle == "" || !idLike.MatchString(middle) {
			return "", ""
		}
	}

	tpl := prefix + "{id}" + suffix
	return tpl, fmt.Sprintf("File names shaped like %s<ID>%s", prefix, suffix)
}

// classPattern mirrors the delimiter rule of the template compiler: the
// character after {id} narrows the ID class.
func classPattern(suffix string) *regexp.Regexp {
	if suffix == "" {
		return regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	}
	switch suffix[0] {
	case '_':
		return regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	case '-':
		return regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	case '.':
		return regexp.MustCompile(`^[A-Za-z0-9]+$`)
	default:
		return regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	}
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func commonSuffix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return a[len(a)-i:]
}

func lastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
