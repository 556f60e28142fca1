// Package resolve decides whether candidate entities are new or duplicates of
// repository entities, and merges duplicates with source-precedence rules.
package resolve

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "dealpulse/internal/errors"
	"dealpulse/pkg/contracts/domain"
)

// Similarity scoring weights. Kept as named constants so each signal is
// independently testable.
const (
	ScoreExactName     = 1.0
	ScoreAliasOverlap  = 0.9
	WeightTokenJaccard = 0.6
	BonusGeography     = 0.1
	BonusIndustry      = 0.1
	MergeThreshold     = 0.75
)

// DealMergeWindow is the announced-date proximity within which two deals for
// the same target/acquirer pair are considered the same transaction.
const DealMergeWindow = 30 * 24 * time.Hour

// CompanyStore is the repository surface the resolver needs for companies
type CompanyStore interface {
	FindCompaniesByTokens(tokens []string) ([]domain.Company, error)
	PutCompany(c *domain.Company) error
}

// DealStore is the repository surface the resolver needs for deals
type DealStore interface {
	FindDealsByTarget(targetID string) ([]domain.Deal, error)
	PutDeal(d *domain.Deal) error
}

// CompanyResolution is the committed company plus the resolution verdict
type CompanyResolution struct {
	Company  *domain.Company
	Decision domain.ResolutionDecision
	// Warning is a *errors.ResolutionAmbiguityError when a scoring tie forced
	// an insert instead of a guessed merge.
	Warning error
}

// DealResolution is the committed deal plus the resolution verdict
type DealResolution struct {
	Deal     *domain.Deal
	Decision domain.ResolutionDecision
}

// Resolver reconciles candidates against the repository
type Resolver struct {
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewResolver creates a resolver. A nil logger falls back to the default.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		logger: logger.With(slog.String("component", "resolver")),
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
}

type scored struct {
	company domain.Company
	score   float64
}

// ResolveCompany merges the candidate into its best match at or above the
// threshold, or inserts it as new. The candidate is not mutated; the returned
// company is the committed entity.
func (r *Resolver) ResolveCompany(store CompanyStore, candidate *domain.Company) (*CompanyResolution, error) {
	tokens := Tokens(candidate.Name)
	existing, err := store.FindCompaniesByTokens(tokens)
	if err != nil {
		return nil, apperrors.NewRepositoryError("find company candidates", err)
	}

	ranked := make([]scored, 0, len(existing))
	for _, c := range existing {
		ranked = append(ranked, scored{company: c, score: CompanySimilarity(candidate, &c)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if !ranked[i].company.CreatedAt.Equal(ranked[j].company.CreatedAt) {
			return ranked[i].company.CreatedAt.Before(ranked[j].company.CreatedAt)
		}
		return ranked[i].company.ID < ranked[j].company.ID
	})

	if len(ranked) > 0 && ranked[0].score >= MergeThreshold {
		// Ties on both score and creation time have no deterministic winner;
		// insert as new rather than guess-merge.
		if len(ranked) > 1 && ranked[1].score == ranked[0].score &&
			ranked[1].company.CreatedAt.Equal(ranked[0].company.CreatedAt) {
			warning := &apperrors.ResolutionAmbiguityError{
				CandidateName: candidate.Name,
				EntityIDs:     []string{ranked[0].company.ID, ranked[1].company.ID},
				Score:         ranked[0].score,
			}
			r.logger.Warn("ambiguous company resolution, inserting as new",
				slog.String("candidate", candidate.Name),
				slog.Float64("score", ranked[0].score))
			res, err := r.insertCompany(store, candidate)
			if err != nil {
				return nil, err
			}
			res.Warning = warning
			return res, nil
		}

		winner := ranked[0].company
		mergeCompany(&winner, candidate)
		if err := store.PutCompany(&winner); err != nil {
			return nil, apperrors.NewRepositoryError("merge company", err)
		}
		return &CompanyResolution{
			Company: &winner,
			Decision: domain.ResolutionDecision{
				Kind:     domain.KindCompany,
				EntityID: winner.ID,
				Name:     candidate.Name,
				Outcome:  domain.ResolutionMerged,
				MergedID: winner.ID,
				Score:    ranked[0].score,
			},
		}, nil
	}

	return r.insertCompany(store, candidate)
}

func (r *Resolver) insertCompany(store CompanyStore, candidate *domain.Company) (*CompanyResolution, error) {
	inserted := *candidate
	inserted.ID = r.newID()
	inserted.CreatedAt = r.now()
	if err := store.PutCompany(&inserted); err != nil {
		return nil, apperrors.NewRepositoryError("insert company", err)
	}
	return &CompanyResolution{
		Company: &inserted,
		Decision: domain.ResolutionDecision{
			Kind:     domain.KindCompany,
			EntityID: inserted.ID,
			Name:     inserted.Name,
			Outcome:  domain.ResolutionInserted,
		},
	}, nil
}

// CompanySimilarity scores how likely candidate and existing are the same
// real-world company. Exact normalized-name matches score 1.0; alias-set
// overlap scores 0.9; otherwise weighted token Jaccard plus agreement
// bonuses.
func CompanySimilarity(candidate, existing *domain.Company) float64 {
	candNorm := NormalizeName(candidate.Name)
	if candNorm != "" && candNorm == NormalizeName(existing.Name) {
		return ScoreExactName
	}

	score := 0.0
	if aliasOverlap(candidate, existing) {
		score = ScoreAliasOverlap
	}

	fuzzy := jaccard(Tokens(candidate.Name), Tokens(existing.Name)) * WeightTokenJaccard
	if candidate.Geography != "" && existing.Geography != "" &&
		strings.EqualFold(candidate.Geography, existing.Geography) {
		fuzzy += BonusGeography
	}
	if candidate.Industry != "" && existing.Industry != "" &&
		strings.EqualFold(candidate.Industry, existing.Industry) {
		fuzzy += BonusIndustry
	}
	if fuzzy > score {
		score = fuzzy
	}
	return score
}

func aliasOverlap(candidate, existing *domain.Company) bool {
	existingNames := make(map[string]bool, len(existing.Aliases)+1)
	for _, a := range existing.Aliases {
		existingNames[NormalizeName(a)] = true
	}
	if existingNames[NormalizeName(candidate.Name)] {
		return true
	}
	existingNames[NormalizeName(existing.Name)] = true
	for _, a := range candidate.Aliases {
		if existingNames[NormalizeName(a)] {
			return true
		}
	}
	return false
}

// mergeCompany folds the candidate into the existing entity. Aliases only
// grow, provenance is append-only, and financial fields obey the source
// precedence order.
func mergeCompany(existing *domain.Company, candidate *domain.Company) {
	existing.AddAlias(candidate.Name)
	for _, a := range candidate.Aliases {
		existing.AddAlias(a)
	}
	for _, t := range candidate.Tags {
		existing.AddTag(t)
	}
	for _, ix := range candidate.Indexes {
		existing.AddIndex(ix)
	}
	if existing.Industry == "" {
		existing.Industry = candidate.Industry
	}
	if existing.Geography == "" {
		existing.Geography = candidate.Geography
	}
	if existing.Ticker == "" {
		existing.Ticker = candidate.Ticker
	}
	existing.Revenue = mergeAmount(existing.Revenue, candidate.Revenue)
	existing.MarketCap = mergeAmount(existing.MarketCap, candidate.MarketCap)
	existing.Provenance = append(existing.Provenance, candidate.Provenance...)
}

// mergeAmount keeps the existing value unless the incoming one comes from a
// strictly higher-precedence source class; nil gaps are always filled.
func mergeAmount(existing, incoming *domain.SourcedAmount) *domain.SourcedAmount {
	if incoming == nil {
		return existing
	}
	if existing == nil {
		return incoming
	}
	if incoming.Source.Precedence() > existing.Source.Precedence() {
		return incoming
	}
	return existing
}

// ResolveDeal merges the candidate deal into an existing deal for the same
// target when the acquirer is compatible and the announced dates fall within
// the merge window, or inserts it as new. An empty acquirer is treated as
// unknown and compatible with any acquirer.
func (r *Resolver) ResolveDeal(store DealStore, candidate *domain.Deal) (*DealResolution, error) {
	existing, err := store.FindDealsByTarget(candidate.TargetID)
	if err != nil {
		return nil, apperrors.NewRepositoryError("find deal candidates", err)
	}

	var matches []domain.Deal
	for _, d := range existing {
		if !acquirerCompatible(d.AcquirerID, candidate.AcquirerID) {
			continue
		}
		delta := candidate.Announced.Sub(d.Announced)
		if delta < 0 {
			delta = -delta
		}
		if delta <= DealMergeWindow {
			matches = append(matches, d)
		}
	}

	if len(matches) > 0 {
		sort.SliceStable(matches, func(i, j int) bool {
			di := absDuration(candidate.Announced.Sub(matches[i].Announced))
			dj := absDuration(candidate.Announced.Sub(matches[j].Announced))
			if di != dj {
				return di < dj
			}
			if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
				return matches[i].CreatedAt.Before(matches[j].CreatedAt)
			}
			return matches[i].ID < matches[j].ID
		})
		winner := matches[0]
		mergeDeal(&winner, candidate)
		if err := store.PutDeal(&winner); err != nil {
			return nil, apperrors.NewRepositoryError("merge deal", err)
		}
		return &DealResolution{
			Deal: &winner,
			Decision: domain.ResolutionDecision{
				Kind:     domain.KindDeal,
				EntityID: winner.ID,
				Name:     candidate.TargetName,
				Outcome:  domain.ResolutionMerged,
				MergedID: winner.ID,
			},
		}, nil
	}

	inserted := *candidate
	inserted.ID = r.newID()
	inserted.CreatedAt = r.now()
	if err := store.PutDeal(&inserted); err != nil {
		return nil, apperrors.NewRepositoryError("insert deal", err)
	}
	return &DealResolution{
		Deal: &inserted,
		Decision: domain.ResolutionDecision{
			Kind:     domain.KindDeal,
			EntityID: inserted.ID,
			Name:     inserted.TargetName,
			Outcome:  domain.ResolutionInserted,
		},
	}, nil
}

func acquirerCompatible(a, b string) bool {
	return a == "" || b == "" || a == b
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// mergeDeal folds the candidate into the existing deal: distinct summaries
// concatenate, keyword sets union, the status advances monotonically, and
// the disclosed value obeys source precedence.
func mergeDeal(existing *domain.Deal, candidate *domain.Deal) {
	existing.Status = existing.Status.Advance(candidate.Status)
	existing.Value = mergeAmount(existing.Value, candidate.Value)
	if candidate.Summary != "" && !strings.Contains(existing.Summary, candidate.Summary) {
		if existing.Summary == "" {
			existing.Summary = candidate.Summary
		} else {
			existing.Summary = existing.Summary + "; " + candidate.Summary
		}
	}
	for _, kw := range candidate.KeywordMatches {
		existing.AddKeyword(kw)
	}
	if existing.AcquirerID == "" {
		existing.AcquirerID = candidate.AcquirerID
		if existing.AcquirerName == "" {
			existing.AcquirerName = candidate.AcquirerName
		}
	}
	existing.Provenance = append(existing.Provenance, candidate.Provenance...)
}
