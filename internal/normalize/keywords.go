package normalize

import (
	"regexp"
	"strings"
	"sync"
)

// DealKeywords are the deal-event phrases scanned for in summaries, filings
// and press releases. Matches accumulate on Deal.KeywordMatches and feed the
// trending-keywords view.
var DealKeywords = []string{
	"acquisition", "merger", "takeover", "buyout", "investment",
	"strategic partnership", "joint venture", "divestiture", "spin-off",
	"ipo", "going private", "tender offer", "bid", "purchase",
	"leveraged buyout", "carve-out", "consolidation",
}

var (
	dealKeywordPatterns     map[string]*regexp.Regexp
	dealKeywordPatternsOnce sync.Once
)

func compileDealKeywords() {
	dealKeywordPatterns = make(map[string]*regexp.Regexp, len(DealKeywords))
	for _, kw := range DealKeywords {
		dealKeywordPatterns[kw] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
	}
}

// ExtractDealMentions returns the deal keywords present in text as
// case-insensitive whole-word matches, in DealKeywords order.
func ExtractDealMentions(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	dealKeywordPatternsOnce.Do(compileDealKeywords)

	var found []string
	for _, kw := range DealKeywords {
		if dealKeywordPatterns[kw].MatchString(text) {
			found = append(found, kw)
		}
	}
	return found
}
