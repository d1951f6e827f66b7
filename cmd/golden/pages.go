package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/golden"
)

// parsePages parses a 1-based page selection such as "3" or "2-5" into a
// 0-based inclusive range. An empty selection returns nil.
func parsePages(s string) (*golden.Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	first, last, found := strings.Cut(s, "-")
	if !found {
		last = first
	}
	start, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return nil, fmt.Errorf("invalid page selection %q", s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(last))
	if err != nil {
		return nil, fmt.Errorf("invalid page selection %q", s)
	}
	if start < 1 || end < start {
		return nil, fmt.Errorf("invalid page selection %q: pages start at 1 and end must not precede start", s)
	}
	return &golden.Range{Start: start - 1, End: end - 1}, nil
}
