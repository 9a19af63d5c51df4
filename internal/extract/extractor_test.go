package extract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ternarybob/advisor/internal/models"
)

func TestExtractSymbols(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name     string
		question string
		want     []string
	}{
		{"company name", "what is the price of apple", []string{"AAPL"}},
		{"multiple companies", "compare apple and microsoft", []string{"AAPL", "MSFT"}},
		{"ticker", "how is tsla doing", []string{"TSLA"}},
		{"alias", "tell me about alphabet", []string{"GOOGL"}},
		{"fallback symbol", "gme to the moon", []string{"GME"}},
		{"stop words only", "what's going on with the market today", nil},
		{"option first company wins", "should i buy an apple or microsoft call", []string{"AAPL"}},
		{"option ticker", "tsla call options", []string{"TSLA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ents, err := e.Extract(models.NewQuestion(tt.question))
			if err != nil {
				t.Fatalf("Extract(%q) error: %v", tt.question, err)
			}
			if !reflect.DeepEqual(ents.Symbols, tt.want) {
				t.Errorf("Extract(%q).Symbols = %v, want %v", tt.question, ents.Symbols, tt.want)
			}
		})
	}
}

func TestExtractPersonalOption(t *testing.T) {
	e := NewExtractor()

	ents, err := e.Extract(models.NewQuestion("Will my TSLA $440 call be profitable if it expires 21 mar 2025?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ents.IsOptionsQuery || !ents.IsPersonalQuery {
		t.Errorf("expected personal options query, got options=%v personal=%v", ents.IsOptionsQuery, ents.IsPersonalQuery)
	}
	if ents.PrimarySymbol() != "TSLA" {
		t.Errorf("PrimarySymbol() = %q, want TSLA", ents.PrimarySymbol())
	}
	if ents.StrikePrice == nil || *ents.StrikePrice != 440 {
		t.Errorf("StrikePrice = %v, want 440", ents.StrikePrice)
	}
	if ents.OptionType != models.OptionTypeCall {
		t.Errorf("OptionType = %q, want call", ents.OptionType)
	}
	if ents.Expiry == nil || !reflect.DeepEqual(ents.Expiry.Parts, []string{"21", "2025"}) {
		t.Errorf("Expiry = %+v, want parts [21 2025]", ents.Expiry)
	}
}

func TestExtractAmbiguousOption(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(models.NewQuestion("will my option be profitable"))
	if !errors.Is(err, ErrAmbiguousOptionQuery) {
		t.Errorf("expected ErrAmbiguousOptionQuery, got %v", err)
	}
}

func TestExtractStrike(t *testing.T) {
	tests := []struct {
		question string
		want     float64
		none     bool
	}{
		{"will it hit $440", 440, false},
		{"worth 250.50 dollars", 250.50, false},
		{"a strike of 120", 120, false},
		{"price around 95", 95, false},
		{"no amounts here", 0, true},
	}
	for _, tt := range tests {
		got := extractStrike(tt.question)
		if tt.none {
			if got != nil {
				t.Errorf("extractStrike(%q) = %v, want nil", tt.question, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Errorf("extractStrike(%q) = %v, want %v", tt.question, got, tt.want)
		}
	}
}

func TestExtractExpiry(t *testing.T) {
	tests := []struct {
		name     string
		question string
		parts    []string
	}{
		{"day month year", "expires 21 mar 2025", []string{"21", "2025"}},
		{"month day year", "expires march 21, 2025", []string{"21", "2025"}},
		{"slash date", "expires 03/21/25", []string{"03", "21", "25"}},
		{"partial month and day", "apple call for march 5", []string{"5", "mar", "2024"}},
		{"partial month and year", "puts for december, expiring in 2030", []string{"15", "dec", "2030"}},
		{"no date", "what is the price of apple", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractExpiry(tt.question)
			if tt.parts == nil {
				if got != nil {
					t.Errorf("extractExpiry(%q) = %+v, want nil", tt.question, got)
				}
				return
			}
			if got == nil || !reflect.DeepEqual(got.Parts, tt.parts) {
				t.Errorf("extractExpiry(%q) = %+v, want parts %v", tt.question, got, tt.parts)
			}
		})
	}
}
