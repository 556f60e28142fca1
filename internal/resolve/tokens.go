package resolve

import (
	"strings"
	"unicode"
)

// corporateSuffixes are dropped from names before comparison so that
// "Acme Corp" and "Acme Corporation" normalize identically.
var corporateSuffixes = map[string]bool{
	"inc":          true,
	"incorporated": true,
	"ltd":          true,
	"limited":      true,
	"corp":         true,
	"corporation":  true,
	"plc":          true,
	"llc":          true,
	"llp":          true,
	"lp":           true,
	"co":           true,
	"company":      true,
	"group":        true,
	"holdings":     true,
	"holding":      true,
	"sa":           true,
	"ag":           true,
	"nv":           true,
	"gmbh":         true,
	"spa":          true,
	"ab":           true,
	"as":           true,
	"oyj":          true,
	"pte":          true,
}

// Tokens splits a company name into its indexable tokens: lower-cased,
// punctuation-stripped, corporate suffixes removed. The token set doubles as
// the repository candidate-lookup key.
func Tokens(name string) []string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune(' ')
		}
	}

	raw := strings.Fields(sb.String())
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if corporateSuffixes[t] {
			continue
		}
		tokens = append(tokens, t)
	}
	if len(tokens) == 0 {
		// Name consisted entirely of suffix words; keep them so the entity
		// stays findable.
		tokens = raw
	}
	return tokens
}

// NormalizeName returns the canonical comparison form of a company name
func NormalizeName(name string) string {
	return strings.Join(Tokens(name), " ")
}

// jaccard computes the Jaccard similarity of two token sets
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	both := 0
	union := len(set)
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			both++
		} else {
			union++
		}
	}
	return float64(both) / float64(union)
}
