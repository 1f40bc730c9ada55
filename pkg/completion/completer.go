package completion

import "strings"

// Suggester provides suggestions based on input prefix
type Suggester interface {
	// GetSuggestions returns candidate completions for the input, best first.
	GetSuggestions(input string) []string

	// ShouldSuggest returns true if this suggester should provide suggestions for the input
	ShouldSuggest(input string) bool

	// GetPrefix returns the input prefix this suggester is bound to, or "" for any input.
	GetPrefix() string
}

// Completer picks one suggestion for the current input from its registered
// suggesters. Prefix-bound suggesters are consulted before unbound ones; the
// longest matching prefix wins, then registration order.
type Completer struct {
	suggesters []Suggester
}

// NewCompleter creates a completer with the given suggesters registered in order
func NewCompleter(suggesters ...Suggester) *Completer {
	c := &Completer{}
	for _, s := range suggesters {
		c.RegisterSuggester(s)
	}
	return c
}

// RegisterSuggester adds a suggester to the completer
func (c *Completer) RegisterSuggester(suggester Suggester) {
	c.suggesters = append(c.suggesters, suggester)
}

// Suggest returns the first available suggestion for the input, or "" if none
func (c *Completer) Suggest(input string) string {
	if input == "" {
		return ""
	}

	var best Suggester
	for _, s := range c.suggesters {
		prefix := s.GetPrefix()
		if prefix == "" || !strings.HasPrefix(input, prefix) {
			continue
		}
		if best == nil || len(prefix) > len(best.GetPrefix()) {
			best = s
		}
	}
	if best != nil {
		if suggestion := first(best, input); suggestion != "" {
			return suggestion
		}
	}

	for _, s := range c.suggesters {
		if s.GetPrefix() != "" {
			continue
		}
		if suggestion := first(s, input); suggestion != "" {
			return suggestion
		}
	}
	return ""
}

func first(s Suggester, input string) string {
	if !s.ShouldSuggest(input) {
		return ""
	}
	if suggestions := s.GetSuggestions(input); len(suggestions) > 0 {
		return suggestions[0]
	}
	return ""
}
