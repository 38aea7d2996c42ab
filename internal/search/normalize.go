package search

import (
	"strings"
)

// Normalize prepares free text for similarity scoring: lowercase, ASCII letters
// only, stop words and single letters removed, each token lemmatized.
func Normalize(text string) string {
	tokens := Tokens(text)
	if len(tokens) == 0 {
		return ""
	}
	return strings.Join(tokens, " ")
}

// Tokens is Normalize without the final join.
func Tokens(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	text = strings.ToLower(text)

	b := strings.Builder{}
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			b.WriteRune(r)
		}
		// drop everything else, including digits and non-ASCII letters
	}

	words := strings.Fields(b.String())
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 1 {
			continue
		}
		if _, stop := normalizerStopWords[w]; stop {
			continue
		}
		out = append(out, Lemmatize(w))
	}
	return out
}
