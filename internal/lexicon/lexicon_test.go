package lexicon

import "testing"

func TestCompaniesOrdering(t *testing.T) {
	// The first alias must be apple; option extraction relies on scan order.
	if Companies[0].Name != "apple" || Companies[0].Ticker != "AAPL" {
		t.Errorf("expected apple/AAPL first, got %s/%s", Companies[0].Name, Companies[0].Ticker)
	}
	last := Companies[len(Companies)-1]
	if last.Name != "dupont" || last.Ticker != "DD" {
		t.Errorf("expected dupont/DD last, got %s/%s", last.Name, last.Ticker)
	}
}

func TestCompaniesAliases(t *testing.T) {
	byName := map[string]string{}
	for _, c := range Companies {
		byName[c.Name] = c.Ticker
	}
	cases := map[string]string{
		"alphabet":          "GOOGL",
		"facebook":          "META",
		"at&t":              "T",
		"coca-cola":         "KO",
		"johnson & johnson": "JNJ",
		"3m":                "MMM",
	}
	for name, want := range cases {
		if got := byName[name]; got != want {
			t.Errorf("alias %q: got %q, want %q", name, got, want)
		}
	}
}

func TestIsStopWord(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"the", true},
		{"THE", true},
		{"call", true},
		{"put", true},
		{"going", true},
		{"whats", true},
		{"today", true},
		{"tsla", false},
		{"aapl", false},
		{"gme", false},
	}
	for _, tt := range tests {
		if got := IsStopWord(tt.word); got != tt.want {
			t.Errorf("IsStopWord(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
