// Package mention extracts @username candidates from comment text.
package mention

import "regexp"

var pattern = regexp.MustCompile(`@(\w+)`)

// Extract returns every @username candidate in text, left to right,
// duplicates preserved. Resolution and deduplication happen downstream;
// names that match no registered student are silently dropped there.
func Extract(text string) []string {
	matches := pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// Dedupe removes repeated names, keeping first-occurrence order.
func Dedupe(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(names))
	res := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		res = append(res, n)
	}
	return res
}
