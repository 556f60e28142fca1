package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "dealpulse/internal/errors"
	"dealpulse/pkg/contracts/domain"
)

// acceptedDateFormats is the closed set of date layouts the engine parses.
// Anything else is a SchemaError, never a silent default.
var acceptedDateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// canonicalFields lower-cases and underscores the column names of a raw row
// and trims cell whitespace, mirroring how every source export is cleaned.
func canonicalFields(row map[string]string) map[string]string {
	fields := make(map[string]string, len(row))
	for key, value := range row {
		k := strings.ToLower(strings.TrimSpace(key))
		k = strings.ReplaceAll(k, " ", "_")
		k = strings.ReplaceAll(k, "-", "_")
		fields[k] = strings.TrimSpace(value)
	}
	return fields
}

func requireField(source domain.SourceType, row int, fields map[string]string, name string) (string, error) {
	value := fields[name]
	if value == "" {
		return "", apperrors.NewSchemaError(source, row, name, "required field is missing or empty")
	}
	return value, nil
}

func requireDate(source domain.SourceType, row int, fields map[string]string, name string) (time.Time, error) {
	raw, err := requireField(source, row, fields, name)
	if err != nil {
		return time.Time{}, err
	}
	parsed, err := parseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.NewSchemaError(source, row, name, err.Error())
	}
	return parsed, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range acceptedDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", raw)
}

// currencySymbols maps leading symbols to ISO currency codes
var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "JPY",
}

// parseAmount converts a financial field to millions. Currency symbols and
// thousands separators are stripped; K/M/B suffixes scale; plain numbers are
// taken as already denominated in millions. Non-numeric residue is an error.
func parseAmount(raw string) (*domain.SourcedAmount, error) {
	s := strings.TrimSpace(raw)
	currency := "USD"
	for symbol, code := range currencySymbols {
		if strings.HasPrefix(s, symbol) {
			currency = code
			s = strings.TrimPrefix(s, symbol)
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	multiplier := 1.0
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "BN"):
		multiplier = 1000
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "B"):
		multiplier = 1000
		s = s[:len(s)-1]
	case strings.HasSuffix(upper, "M"):
		s = s[:len(s)-1]
	case strings.HasSuffix(upper, "K"):
		multiplier = 0.001
		s = s[:len(s)-1]
	}
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("non-numeric amount %q", raw)
	}
	if value < 0 {
		return nil, fmt.Errorf("negative amount %q", raw)
	}

	return &domain.SourcedAmount{Value: value * multiplier, Currency: currency}, nil
}
