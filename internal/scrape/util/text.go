package util

import "strings"

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// MatchesKeyword reports whether the lower-cased text contains at least one
// keyword as a substring. Matching is unanchored, so short terms like "f1"
// also hit inside unrelated words.
func MatchesKeyword(keywords []string, text string) bool {
	t := strings.ToLower(text)
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
