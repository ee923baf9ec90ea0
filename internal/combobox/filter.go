package combobox

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Substring matches options whose label or value contains the term,
// case-insensitively, preserving option order. An empty term matches
// everything.
func Substring(term string, options []Option) []int {
	out := make([]int, 0, len(options))
	if term == "" {
		for i := range options {
			out = append(out, i)
		}
		return out
	}
	t := strings.ToLower(term)
	for i, opt := range options {
		if strings.Contains(strings.ToLower(opt.Label), t) ||
			strings.Contains(strings.ToLower(opt.Value), t) {
			out = append(out, i)
		}
	}
	return out
}

// Fuzzy matches option labels with fuzzy matching, best matches first.
// An empty term matches everything in option order.
func Fuzzy(term string, options []Option) []int {
	if term == "" {
		return Substring(term, options)
	}
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}
	matches := fuzzy.Find(term, labels)
	out := make([]int, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.Index)
	}
	return out
}
