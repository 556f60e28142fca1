package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dealpulse/internal/errors"
	"dealpulse/pkg/contracts/domain"
)

func TestNormalizeMergermarket(t *testing.T) {
	n := NewNormalizer(nil)

	t.Run("full row", func(t *testing.T) {
		cand, err := n.Normalize(domain.SourceMergermarket, 0, map[string]string{
			"Target Name":       "Acme Corp",
			"Acquirer Name":     "Globex Industries",
			"Announcement Date": "2024-03-01",
			"Deal Value":        "$150M",
			"Deal Type":         "acquisition",
			"Status":            "announced",
			"Industry":          "Software",
			"Geography":         "US",
		})
		require.NoError(t, err)
		require.Equal(t, domain.KindDeal, cand.Kind)

		require.Len(t, cand.Companies, 2)
		target := cand.Companies[0]
		assert.Equal(t, "Acme Corp", target.Name)
		assert.Equal(t, "Software", target.Industry)
		assert.Equal(t, "US", target.Geography)
		assert.True(t, target.HasTag(domain.TagTransactionParticipant))

		acquirer := cand.Companies[1]
		assert.Equal(t, "Globex Industries", acquirer.Name)
		assert.True(t, acquirer.HasTag(domain.TagActiveAcquirer))

		deal := cand.Deal
		require.NotNil(t, deal)
		assert.Equal(t, domain.DealStatusAnnounced, deal.Status)
		require.NotNil(t, deal.Value)
		assert.InDelta(t, 150, deal.Value.Value, 1e-9)
		assert.Equal(t, domain.SourceMergermarket, deal.Value.Source)
		assert.True(t, deal.Announced.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
		assert.Contains(t, deal.KeywordMatches, "acquisition")
	})

	t.Run("missing target is schema error", func(t *testing.T) {
		_, err := n.Normalize(domain.SourceMergermarket, 3, map[string]string{
			"Announcement Date": "2024-03-01",
		})
		var se *apperrors.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 3, se.Row)
		assert.Equal(t, "target_name", se.Field)
	})

	t.Run("unparsable date is schema error", func(t *testing.T) {
		_, err := n.Normalize(domain.SourceMergermarket, 1, map[string]string{
			"Target Name":       "Acme Corp",
			"Announcement Date": "next quarter",
		})
		var se *apperrors.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "announcement_date", se.Field)
	})

	t.Run("unknown status is schema error", func(t *testing.T) {
		_, err := n.Normalize(domain.SourceMergermarket, 0, map[string]string{
			"Target Name":       "Acme Corp",
			"Announcement Date": "2024-03-01",
			"Status":            "maybe",
		})
		var se *apperrors.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "status", se.Field)
	})

	t.Run("no acquirer yields single company", func(t *testing.T) {
		cand, err := n.Normalize(domain.SourceMergermarket, 0, map[string]string{
			"Target Name":       "Acme Corp",
			"Announcement Date": "2024-03-01",
		})
		require.NoError(t, err)
		assert.Len(t, cand.Companies, 1)
		assert.Empty(t, cand.Deal.AcquirerName)
	})
}

func TestNormalizePreqin(t *testing.T) {
	n := NewNormalizer(nil)

	cand, err := n.Normalize(domain.SourcePreqin, 0, map[string]string{
		"Fund Name":         "Vista Growth Fund III",
		"Target Company":    "Initech",
		"Investment Amount": "80M",
		"Investment Date":   "2024-05-10",
		"Stage":             "buyout",
	})
	require.NoError(t, err)
	require.Equal(t, domain.KindDeal, cand.Kind)
	require.Len(t, cand.Companies, 2)
	assert.Equal(t, "Initech", cand.Companies[0].Name)
	assert.Equal(t, "Vista Growth Fund III", cand.Companies[1].Name)
	require.NotNil(t, cand.Deal.Value)
	assert.InDelta(t, 80, cand.Deal.Value.Value, 1e-9)
	assert.Contains(t, cand.Deal.KeywordMatches, "buyout")

	t.Run("amount is required", func(t *testing.T) {
		_, err := n.Normalize(domain.SourcePreqin, 2, map[string]string{
			"Fund Name":       "Vista Growth Fund III",
			"Target Company":  "Initech",
			"Investment Date": "2024-05-10",
		})
		var se *apperrors.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "investment_amount", se.Field)
	})
}

func TestNormalizeSECFiling(t *testing.T) {
	n := NewNormalizer(nil)

	cand, err := n.Normalize(domain.SourceSECFiling, 0, map[string]string{
		"Company Name": "Acme Corp",
		"Filing Type":  "10-K",
		"Filing Date":  "2024-02-20",
		"Ticker":       "ACME",
		"Content":      "The board approved the acquisition of a competitor.",
	})
	require.NoError(t, err)
	require.Equal(t, domain.KindFiling, cand.Kind)
	require.NotNil(t, cand.Filing)
	assert.Equal(t, "10-K", cand.Filing.FilingType)
	assert.Contains(t, cand.Filing.DealMentions, "acquisition")
	require.Len(t, cand.Companies, 1)
	assert.Equal(t, "ACME", cand.Companies[0].Ticker)

	t.Run("empty content is schema error", func(t *testing.T) {
		_, err := n.Normalize(domain.SourceSECFiling, 1, map[string]string{
			"Company Name": "Acme Corp",
			"Filing Type":  "10-K",
			"Filing Date":  "2024-02-20",
			"Content":      "   ",
		})
		var se *apperrors.SchemaError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "content", se.Field)
	})
}

func TestNormalizeIndexConstituent(t *testing.T) {
	n := NewNormalizer(nil)

	cand, err := n.Normalize(domain.SourceIndexConstituent, 0, map[string]string{
		"Company Name": "Acme Corp",
		"Ticker":       "ACME",
		"Index Name":   "S&P 500",
		"Sector":       "Software",
		"Country":      "US",
		"Market Cap":   "12B",
	})
	require.NoError(t, err)
	require.Equal(t, domain.KindCompany, cand.Kind)
	require.Len(t, cand.Companies, 1)
	c := cand.Companies[0]
	assert.True(t, c.MemberOf("S&P 500"))
	require.NotNil(t, c.MarketCap)
	assert.InDelta(t, 12000, c.MarketCap.Value, 1e-9)
	assert.Equal(t, domain.SourceIndexConstituent, c.MarketCap.Source)
}

func TestNormalizePressRelease(t *testing.T) {
	n := NewNormalizer(nil)

	cand, err := n.Normalize(domain.SourcePressRelease, 0, map[string]string{
		"Company Name": "Acme Corp",
		"Title":        "Acme announces strategic partnership",
		"Date":         "2024-06-01",
		"Content":      "Acme Corp and Globex entered a strategic partnership today.",
	})
	require.NoError(t, err)
	require.Equal(t, domain.KindFiling, cand.Kind)
	assert.Equal(t, "press_release", cand.Filing.FilingType)
	assert.Contains(t, cand.Filing.Text, "Acme announces strategic partnership")
	assert.Contains(t, cand.Filing.DealMentions, "strategic partnership")
}

func TestNormalizeUnknownSource(t *testing.T) {
	n := NewNormalizer(nil)
	_, err := n.Normalize(domain.SourceType("bloomberg"), 0, map[string]string{"x": "y"})
	var se *apperrors.SchemaError
	require.ErrorAs(t, err, &se)
}
