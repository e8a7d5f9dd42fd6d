// Package batch resolves participant IDs for a whole file batch, making the
// assigned IDs unique within the batch. Resolution is a full recomputation
// every time: there is no incremental state to invalidate when the pattern
// or the file list changes.
package batch

import (
	"fmt"

	"cohortid/internal/pattern"
)

// ResolveRaw runs the pattern against every path and returns the raw match
// per path. Paths with no match are absent from the result.
func ResolveRaw(paths []string, p *pattern.Pattern) map[string]*pattern.Match {
	matches := make(map[string]*pattern.Match)
	for _, path := range paths {
		if m := p.Extract(path); m != nil {
			matches[path] = m
		}
	}
	return matches
}

// Resolve produces the final participant ID per path. Raw IDs shared by more
// than one path are suffixed "_1", "_2", ... in input order; IDs unique
// across the batch pass through unchanged. Paths with no match are omitted,
// never assigned an empty string.
func Resolve(paths []string, p *pattern.Pattern) map[string]string {
	matches := ResolveRaw(paths, p)

	// Group paths by raw ID, in the order IDs are first seen.
	var order []string
	groups := make(map[string][]string)
	for _, path := range paths {
		m, ok := matches[path]
		if !ok {
			continue
		}
		if _, seen := groups[m.ID]; !seen {
			order = append(order, m.ID)
		}
		groups[m.ID] = append(groups[m.ID], path)
	}

	resolved := make(map[string]string, len(matches))
	for _, id := range order {
		members := groups[id]
		if len(members) == 1 {
			resolved[members[0]] = id
			continue
		}
		for i, path := range members {
			resolved[path] = fmt.Sprintf("%s_%d", id, i+1)
		}
	}
	return resolved
}

// CollisionCount returns how many paths received a disambiguation suffix,
// i.e. how many shared their raw ID with another path in the batch.
func CollisionCount(paths []string, p *pattern.Pattern) int {
	counts := make(map[string]int)
	for _, path := range paths {
		if m := p.Extract(path); m != nil {
			counts[m.ID]++
		}
	}
	n := 0
	for _, c := range counts {
		if c > 1 {
			n += c
		}
	}
	return n
}
