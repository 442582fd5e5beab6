package utils

import "strings"

// SplitList splits s on any rune in seps and drops blank items, so
// "a:1; b:2,,c:3" with seps ";," yields [a:1 b:2 c:3]
func SplitList(s, seps string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(seps, r)
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
