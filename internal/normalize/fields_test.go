package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalFields(t *testing.T) {
	fields := canonicalFields(map[string]string{
		"Target Name":       " Acme Corp ",
		"Announcement-Date": "2024-03-01",
		"DEAL_VALUE":        "$150M",
	})

	assert.Equal(t, "Acme Corp", fields["target_name"])
	assert.Equal(t, "2024-03-01", fields["announcement_date"])
	assert.Equal(t, "$150M", fields["deal_value"])
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{name: "iso", raw: "2024-03-01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "slash ymd", raw: "2024/03/01", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "us mdy", raw: "03/15/2024", want: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "month name", raw: "Mar 1, 2024", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "day first", raw: "1 Mar 2024", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "garbage", raw: "sometime in March", wantErr: true},
		{name: "bare year", raw: "2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantValue    float64
		wantCurrency string
		wantErr      bool
	}{
		{name: "dollar millions", raw: "$150M", wantValue: 150, wantCurrency: "USD"},
		{name: "billions", raw: "1.5B", wantValue: 1500, wantCurrency: "USD"},
		{name: "bn suffix", raw: "€2bn", wantValue: 2000, wantCurrency: "EUR"},
		{name: "thousands", raw: "750K", wantValue: 0.75, wantCurrency: "USD"},
		{name: "plain is millions", raw: "250", wantValue: 250, wantCurrency: "USD"},
		{name: "thousands separator", raw: "$1,250M", wantValue: 1250, wantCurrency: "USD"},
		{name: "pound", raw: "£90M", wantValue: 90, wantCurrency: "GBP"},
		{name: "spaces", raw: " 42 M ", wantValue: 42, wantCurrency: "USD"},
		{name: "non-numeric", raw: "undisclosed", wantErr: true},
		{name: "negative", raw: "-5M", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantValue, got.Value, 1e-9)
			assert.Equal(t, tt.wantCurrency, got.Currency)
		})
	}
}

func TestExtractDealMentions(t *testing.T) {
	text := "The acquisition follows a failed merger attempt; a tender offer is still rumored."
	got := ExtractDealMentions(text)
	assert.Equal(t, []string{"acquisition", "merger", "tender offer"}, got)

	assert.Nil(t, ExtractDealMentions(""))
	assert.Nil(t, ExtractDealMentions("quarterly earnings update"))

	// Whole-word only: "bid" must not match inside "forbidden".
	assert.Nil(t, ExtractDealMentions("forbidden territory"))
}
