package radar

import "strings"

// WithPlurals returns the base keywords plus a naively pluralized "+s"
// form of each. The derivation is deterministic and deliberately naive;
// the substring match below absorbs most irregular forms anyway.
func WithPlurals(base []string) []string {
	out := make([]string, 0, len(base)*2)
	out = append(out, base...)
	for _, k := range base {
		out = append(out, k+"s")
	}
	return out
}

// MatchesKeyword reports whether any keyword occurs in text as a
// case-insensitive substring. This is a high-recall gate, not a
// word-boundary filter: "pancake" matches the keyword "cake". Empty text
// never matches.
func MatchesKeyword(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
