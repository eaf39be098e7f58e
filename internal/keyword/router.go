package keyword

import (
	"strings"
)

// Rule maps a trigger keyword to the document it dispatches. Multiple rules
// may name the same document.
type Rule struct {
	Keyword    string
	DocumentID string
}

// Router scans free-text messages for configured trigger keywords using
// case-insensitive substring matching.
type Router struct {
	rules []Rule
}

// NewRouter creates a router over the configured rules. Rule order decides
// match order; the rules slice is not copied and must not change afterwards.
func NewRouter(rules []Rule) *Router {
	return &Router{rules: rules}
}

// Match returns the documents triggered by the text, in first-match order,
// each document at most once even when several keywords name it. Empty input
// or no match yields an empty result.
func (r *Router) Match(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	seen := make(map[string]struct{})
	var docs []string

	for _, rule := range r.rules {
		if !strings.Contains(lower, strings.ToLower(rule.Keyword)) {
			continue
		}
		if _, dup := seen[rule.DocumentID]; dup {
			continue
		}
		seen[rule.DocumentID] = struct{}{}
		docs = append(docs, rule.DocumentID)
	}

	return docs
}
