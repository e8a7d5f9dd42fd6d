// Package highlight splits a path into prefix / matched span / suffix for
// preview rendering. Splitting never fails: when nothing matches, the result
// degrades to a directory-vs-filename split instead of an error, so callers
// can always render something sensible.
package highlight

import (
	"strings"

	"cohortid/internal/pattern"
)

// Segments is a three-part split of a path. Highlighted reports whether the
// Match span came from an actual hit (pattern or fallback); in the degenerate
// split Match is empty and Prefix/Suffix hold the directory and filename.
type Segments struct {
	Prefix      string
	Match       string
	Suffix      string
	Highlighted bool
}

// Split locates the span to highlight in path. The pattern is tried first;
// when it produces no match, fallbackID is searched as a literal substring,
// case-sensitive then case-insensitive.
func Split(path string, p *pattern.Pattern, fallbackID string) Segments {
	if m := p.Extract(path); m != nil {
		return spanSegments(path, m.Start, m.Start+m.Length)
	}

	if fallbackID != "" {
		if i := strings.Index(path, fallbackID); i >= 0 {
			return spanSegments(path, i, i+len(fallbackID))
		}
		lower := strings.ToLower(path)
		if i := strings.Index(lower, strings.ToLower(fallbackID)); i >= 0 {
			return spanSegments(path, i, i+len(fallbackID))
		}
	}

	// No hit: split at the last separator so the caller can still style the
	// directory and filename differently.
	i := strings.LastIndex(path, "/")
	return Segments{Prefix: path[:i+1], Suffix: path[i+1:]}
}

func spanSegments(path string, start, end int) Segments {
	return Segments{
		Prefix:      path[:start],
		Match:       path[start:end],
		Suffix:      path[end:],
		Highlighted: true,
	}
}
