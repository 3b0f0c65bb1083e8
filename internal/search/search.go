// Package search finds the lines of a text that contain a query.
//
// All functions are pure: they read only their arguments and may be called
// concurrently on independent inputs.
package search

import "strings"

// Match is a single matching line.
type Match struct {
	// LineNumber is the 1-based position of the line in the content
	LineNumber int
	// Text is the line exactly as it appears in the content, without its terminator
	Text string
}

// Lines splits content into lines in original order.
// Lines are separated by "\n"; a trailing "\r" is dropped from each line.
// A final terminator does not start an extra empty line, and empty content has no lines.
func Lines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Find returns every line of content that contains query, in order.
// When caseSensitive is false, query and each line are lowercased before the
// containment test; the returned Text is always the original line.
// A line is reported once no matter how many times query occurs in it.
func Find(query, content string, caseSensitive bool) []Match {
	normalize := identity
	if !caseSensitive {
		normalize = strings.ToLower
	}

	needle := normalize(query)
	matches := make([]Match, 0)
	for i, line := range Lines(content) {
		if strings.Contains(normalize(line), needle) {
			matches = append(matches, Match{LineNumber: i + 1, Text: line})
		}
	}
	return matches
}

// Search returns the lines of content containing query, compared exactly.
func Search(query, content string) []string {
	return texts(Find(query, content, true))
}

// SearchCaseInsensitive returns the lines of content containing query after
// lowercasing both. Lines are returned in their original casing.
func SearchCaseInsensitive(query, content string) []string {
	return texts(Find(query, content, false))
}

func identity(s string) string { return s }

func texts(matches []Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Text
	}
	return out
}
