package internal

import "strings"

// CleanVTT strips WebVTT markup down to a single line of caption text.
// Timing lines (containing the cue arrow), numeric cue indices, the
// WEBVTT header and blank lines are dropped; the remaining lines are
// trimmed and joined with single spaces in their original order. Input
// that contains no caption text yields an empty string, which callers
// treat as "nothing extracted" rather than an error.
func CleanVTT(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.Contains(line, "-->") {
			continue
		}
		if strings.HasPrefix(line, "WEBVTT") {
			continue
		}
		if isCueIndex(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}

// isCueIndex reports whether a line is purely numeric.
func isCueIndex(line string) bool {
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(line) > 0
}
