package messages

import "cohortid/internal/suggest"

// PatternChangedMsg is sent whenever the pattern text changes, including
// mid-typing; the whole set is re-resolved on every edit.
type PatternChangedMsg struct {
	Text            string // Current pattern text
	SourceComponent string // Which component sent this
}

// IDsResolvedMsg is sent after the import set has been re-resolved
type IDsResolvedMsg struct {
	SelectedCount  int  // Number of currently selected files
	MatchedCount   int  // Selected files with a resolved ID
	CollisionCount int  // Files that needed a uniqueness suffix
	PatternValid   bool // Whether the active pattern compiled
	PatternError   string
}

// SuggestionsReadyMsg carries the computed pattern suggestions
type SuggestionsReadyMsg struct {
	Suggestions []suggest.Suggestion
}

// ApplySuggestionMsg asks the app to adopt a suggested pattern
type ApplySuggestionMsg struct {
	Pattern string
}

// RefreshComponentsMsg is sent to trigger component refreshes
type RefreshComponentsMsg struct {
	Reason string // Why the refresh was triggered
}
