// Package parsing turns raw resume text into a StructuredResume using
// keyword and pattern heuristics. Nothing in this package returns an error:
// input it cannot make sense of yields empty fields.
package parsing

import (
	"iter"
	"strings"
)

// Lines yields the trimmed, non-empty lines of text in order. Any of "\r\n",
// "\r" and "\n" ends a line. Empty text yields nothing.
func Lines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if text == "" {
			return
		}
		normalized := strings.ReplaceAll(text, "\r\n", "\n")
		normalized = strings.ReplaceAll(normalized, "\r", "\n")

		for line := range strings.SplitSeq(normalized, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// CollectLines materializes Lines into a slice.
func CollectLines(text string) []string {
	lines := []string{}
	for line := range Lines(text) {
		lines = append(lines, line)
	}
	return lines
}
