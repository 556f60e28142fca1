// Package redflag scans filing and press text for due-diligence risk
// indicators, producing severity-graded findings with text spans.
package redflag

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"dealpulse/pkg/contracts/domain"
)

var (
	sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]*`)
	clausePattern   = regexp.MustCompile(`[,;:]`)
)

type compiledRule struct {
	rule     CategoryRule
	patterns []*regexp.Regexp
}

// Scorer scans text against the red-flag rule table
type Scorer struct {
	logger       *slog.Logger
	rules        []compiledRule
	intensifiers *regexp.Regexp
	negations    *regexp.Regexp
}

// NewScorer compiles the rule table into a scorer. A nil logger falls back
// to the default.
func NewScorer(logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Scorer{
		logger:       logger.With(slog.String("component", "redflag_scorer")),
		intensifiers: wordSetPattern(Intensifiers),
		negations:    wordSetPattern(Negations),
	}
	for _, rule := range Rules {
		cr := compiledRule{rule: rule}
		for _, trigger := range rule.Triggers {
			cr.patterns = append(cr.patterns, wordPattern(trigger))
		}
		s.rules = append(s.rules, cr)
	}
	return s
}

func wordPattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`)
}

func wordSetPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Score produces the ordered findings for a filing's text. Unscorable text
// (for example invalid encoding) degrades to zero findings rather than
// failing the batch.
func (s *Scorer) Score(filingID, text string) []domain.Finding {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if !utf8.ValidString(text) {
		s.logger.Warn("filing text is not valid UTF-8, skipping red-flag scan",
			slog.String("filing_id", filingID))
		return nil
	}

	var findings []domain.Finding
	for _, sentence := range sentencePattern.FindAllStringIndex(text, -1) {
		sentText := text[sentence[0]:sentence[1]]
		best := map[domain.FindingCategory]*domain.Finding{}

		for _, cr := range s.rules {
			for _, pattern := range cr.patterns {
				for _, loc := range pattern.FindAllStringIndex(sentText, -1) {
					severity := s.severityFor(sentText, loc[0], cr.rule.Base)
					finding := domain.Finding{
						FilingID: filingID,
						Category: cr.rule.Category,
						Span: domain.Span{
							Start: sentence[0] + loc[0],
							End:   sentence[0] + loc[1],
						},
						Excerpt:  strings.TrimSpace(sentText),
						Severity: severity,
					}
					// Same category in the same sentence dedupes to the
					// highest-severity instance.
					cur := best[cr.rule.Category]
					if cur == nil ||
						finding.Severity.Rank() > cur.Severity.Rank() ||
						(finding.Severity.Rank() == cur.Severity.Rank() && finding.Span.Start < cur.Span.Start) {
						f := finding
						best[cr.rule.Category] = &f
					}
				}
			}
		}

		for _, f := range best {
			findings = append(findings, *f)
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Span.Start != findings[j].Span.Start {
			return findings[i].Span.Start < findings[j].Span.Start
		}
		return findings[i].Category < findings[j].Category
	})
	return findings
}

// severityFor grades one trigger occurrence. A negation earlier in the same
// clause de-escalates; otherwise a negation-free intensifier anywhere in the
// sentence escalates.
func (s *Scorer) severityFor(sentence string, triggerStart int, base domain.Severity) domain.Severity {
	if s.negations.MatchString(sentence[clauseStart(sentence, triggerStart):triggerStart]) {
		return base.DeEscalate()
	}
	for _, loc := range s.intensifiers.FindAllStringIndex(sentence, -1) {
		if !s.negations.MatchString(sentence[clauseStart(sentence, loc[0]):loc[0]]) {
			return base.Escalate()
		}
	}
	return base
}

// clauseStart returns the start of the comma/semicolon-delimited clause
// containing the byte offset pos.
func clauseStart(sentence string, pos int) int {
	start := 0
	for _, sep := range clausePattern.FindAllStringIndex(sentence, -1) {
		if sep[1] <= pos && sep[1] > start {
			start = sep[1]
		}
	}
	return start
}
