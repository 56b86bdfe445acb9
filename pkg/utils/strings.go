package utils

import (
	"strings"
	"unicode/utf8"
)

// ContainsAny checks if the text contains any of the given keywords
func ContainsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// CountContains returns how many of the keywords occur in text.
// Each keyword counts at most once.
func CountContains(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}

// CountContainsFold is CountContains with both sides lower-cased.
func CountContainsFold(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			count++
		}
	}
	return count
}

// RuneLen returns the number of characters in s
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// SplitCSV splits a comma separated list, trimming blanks and dropping empty items
func SplitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
