package pattern

import "strings"

// Match locates an extracted participant ID inside the original path string.
// Start and Length always index the full path, even when the match was made
// against a single segment.
type Match struct {
	ID     string
	Start  int
	Length int
}

// Extract applies the pattern to a forward-slash path and returns the
// extracted ID with its span, or nil when the pattern does not apply.
// Extraction is a pure function of (path, pattern); it never fails.
func (p *Pattern) Extract(path string) *Match {
	if p == nil || !p.valid || path == "" {
		return nil
	}

	switch p.kind {
	case KindDirectory:
		seg, start := parentSegment(path)
		return segmentMatch(seg, start)

	case KindBasename:
		seg, start := lastSegment(path)
		return segmentMatch(seg, start)

	case KindFilename:
		name, start := lastSegment(path)
		stem := stemOf(name)
		return segmentMatch(stem, start)

	case KindParentWrapped:
		seg, start := parentSegment(path)
		return p.wrappedMatch(seg, start)

	case KindStemWrapped:
		name, start := lastSegment(path)
		return p.wrappedMatch(stemOf(name), start)

	case KindIDTemplate:
		name, start := lastSegment(path)
		loc := p.re.FindStringSubmatchIndex(name)
		if loc == nil || loc[2] < 0 || loc[2] == loc[3] {
			return nil
		}
		return &Match{
			ID:     name[loc[2]:loc[3]],
			Start:  start + loc[2],
			Length: loc[3] - loc[2],
		}

	case KindRawRegex:
		loc := p.re.FindStringSubmatchIndex(path)
		g := 2 * p.idGroup
		if loc == nil || g+1 >= len(loc) || loc[g] < 0 || loc[g] == loc[g+1] {
			return nil
		}
		return &Match{
			ID:     path[loc[g]:loc[g+1]],
			Start:  loc[g],
			Length: loc[g+1] - loc[g],
		}
	}

	return nil
}

// wrappedMatch applies an inner pattern to a single path segment, shifting
// the resulting span back into full-path coordinates.
func (p *Pattern) wrappedMatch(seg string, start int) *Match {
	if seg == "" {
		return nil
	}
	if p.innerWhole {
		return &Match{ID: seg, Start: start, Length: len(seg)}
	}
	m := p.inner.Extract(seg)
	if m == nil {
		return nil
	}
	return &Match{ID: m.ID, Start: start + m.Start, Length: m.Length}
}

func segmentMatch(seg string, start int) *Match {
	if seg == "" {
		return nil
	}
	return &Match{ID: seg, Start: start, Length: len(seg)}
}

// lastSegment returns the final path segment and its offset.
func lastSegment(path string) (string, int) {
	i := strings.LastIndex(path, "/")
	return path[i+1:], i + 1
}

// parentSegment returns the second-to-last path segment and its offset, or
// ("", 0) when the path has no parent directory component.
func parentSegment(path string) (string, int) {
	end := strings.LastIndex(path, "/")
	if end <= 0 {
		return "", 0
	}
	start := strings.LastIndex(path[:end], "/") + 1
	return path[start:end], start
}

// stemOf strips the extension from a filename using the last dot.
func stemOf(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}
