package completion

import "strings"

// HistorySource exposes the command history, oldest first.
type HistorySource interface {
	Entries() []string
}

// HistorySuggester suggests previously submitted commands.
type HistorySuggester struct {
	source HistorySource
}

// NewHistorySuggester creates a suggester over the given history
func NewHistorySuggester(source HistorySource) *HistorySuggester {
	return &HistorySuggester{source: source}
}

// GetSuggestions returns the single most recent history entry starting with input.
func (hs *HistorySuggester) GetSuggestions(input string) []string {
	if match, ok := Match(hs.source.Entries(), input); ok {
		return []string{match}
	}
	return nil
}

// ShouldSuggest returns true for any non-empty input
func (hs *HistorySuggester) ShouldSuggest(input string) bool {
	return input != ""
}

// GetPrefix returns "" so history is consulted for every input
func (hs *HistorySuggester) GetPrefix() string {
	return ""
}

// Match scans entries from newest to oldest and returns the first one that has
// prefix as a prefix. An empty prefix never matches. Recency is the only
// tie-break.
func Match(entries []string, prefix string) (string, bool) {
	if prefix == "" {
		return "", false
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(entries[i], prefix) {
			return entries[i], true
		}
	}
	return "", false
}
