package mask

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tsawler/golden/model"
)

// Default patterns for personalised fields found on generated forms
var defaultPatterns = []string{
	`policy\s*(?:number|no\.?|#)\s*[:\-]?\s*\w+`,
	`claim\s*(?:number|no\.?|#)\s*[:\-]?\s*\w+`,
	`member\s*(?:id|number)\s*[:\-]?\s*\w+`,
	`(?:insured|customer|patient)\s*name\b`,
	`address[:\-]?\s*`,
	`effective\s*date\b`,
	`date\s*of\s*birth\b`,
}

var (
	longNumberPattern = regexp.MustCompile(`\b\d{4,}\b`)
	emailPattern      = regexp.MustCompile(`[\w.]+@[\w.]+`)
)

// Tokens that make a long number look like an identifier
var identifierKeywords = []string{
	"policy", "claim", "member", "account", "invoice",
	"customer", "insured", "reference", "number", "id",
}

// Tokens that mark a fragment as sensitive on their own
var sensitiveTokens = []string{"ssn", "tax id", "zip"}

// Heuristic flags variable fields with regular expressions and keyword rules
type Heuristic struct {
	patterns []*regexp.Regexp
}

// NewHeuristic creates a heuristic detector with the default patterns plus
// any extra case-insensitive patterns.
func NewHeuristic(extra ...string) (*Heuristic, error) {
	h := &Heuristic{}
	for _, p := range append(append([]string(nil), defaultPatterns...), extra...) {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		h.patterns = append(h.patterns, re)
	}
	return h, nil
}

// Name implements Detector
func (h *Heuristic) Name() string {
	return "heuristic"
}

// Detect implements Detector
func (h *Heuristic) Detect(_ context.Context, page model.PageFragments) ([]bool, error) {
	out := make([]bool, len(page.Fragments))
	for i, f := range page.Fragments {
		out[i] = h.IsVariable(f.Text)
	}
	return out, nil
}

// IsVariable reports whether text looks like a personalised field
func (h *Heuristic) IsVariable(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	for _, re := range h.patterns {
		if re.MatchString(text) {
			return true
		}
	}

	lower := strings.ToLower(text)
	if longNumberPattern.MatchString(text) && containsAny(lower, identifierKeywords) {
		return true
	}
	if emailPattern.MatchString(text) {
		return true
	}
	return containsAny(lower, sensitiveTokens)
}

func containsAny(s string, tokens []string) bool {
	for _, t := range tokens {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
