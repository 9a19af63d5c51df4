package models

import (
	"regexp"
	"strconv"
	"strings"
)

// OptionType classifies an option contract mentioned in a question.
type OptionType string

const (
	OptionTypeCall    OptionType = "call"
	OptionTypePut     OptionType = "put"
	OptionTypeUnknown OptionType = "unknown"
)

// ExpiryDate holds the raw captured groups of a date expression, uninterpreted.
// Depending on which pattern matched, Parts has two components (day, year with
// the month named elsewhere in the question) or three (numeric or synthesized
// day/month/year in pattern-dependent order). Interpretation is deferred to
// Display, which applies the same order-guessing heuristic the data was
// collected under.
type ExpiryDate struct {
	Parts []string
}

var monthNamePattern = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)

// Display renders the expiry for humans. For three numeric components the
// field order is guessed: first component >1000 means year-first (ISO), >12
// means day-first, otherwise month-first (US). Dates with all components <=12
// are inherently ambiguous under this heuristic; it is kept as-is rather than
// silently reinterpreted.
func (e *ExpiryDate) Display(normalizedQuestion string) string {
	if e == nil || len(e.Parts) == 0 {
		return ""
	}

	switch len(e.Parts) {
	case 2:
		// (day, year) with the month name appearing elsewhere in the question
		day, year := e.Parts[0], e.Parts[1]
		month := "mar"
		if m := monthNamePattern.FindString(normalizedQuestion); m != "" {
			month = m
		}
		return day + " " + month + " " + year
	case 3:
		first, err := strconv.Atoi(e.Parts[0])
		if err != nil {
			// Synthesized (day, month-name, year) tuples land here
			return strings.Join(e.Parts, " ")
		}
		switch {
		case first > 1000: // YYYY/MM/DD
			return e.Parts[2] + "/" + e.Parts[1] + "/" + e.Parts[0]
		default: // MM/DD/YY and DD/MM/YY both render in captured order
			return e.Parts[0] + "/" + e.Parts[1] + "/" + e.Parts[2]
		}
	default:
		return strings.Join(e.Parts, " ")
	}
}

// ExtractedEntities is the scratch record built during entity extraction.
// Optional fields use nil (not sentinel strings or zeroes) so formatters can
// tell "no strike given" apart from a genuine zero.
type ExtractedEntities struct {
	// Symbols in match-priority order. Options queries hold at most one.
	Symbols []string

	OptionType  OptionType
	StrikePrice *float64
	Expiry      *ExpiryDate

	IsOptionsQuery  bool
	IsPersonalQuery bool
}

// IsPersonalOptionQuery reports whether the question is both an options query
// and phrased in the first person.
func (e *ExtractedEntities) IsPersonalOptionQuery() bool {
	return e.IsOptionsQuery && e.IsPersonalQuery
}

// PrimarySymbol returns the highest-priority symbol, or "" when none resolved.
func (e *ExtractedEntities) PrimarySymbol() string {
	if len(e.Symbols) == 0 {
		return ""
	}
	return e.Symbols[0]
}

// HasOptionDetail reports whether at least one option-specific field (strike,
// expiry, type) was extracted.
func (e *ExtractedEntities) HasOptionDetail() bool {
	return e.StrikePrice != nil || e.Expiry != nil || e.OptionType != OptionTypeUnknown
}

// OptionContext is the per-session short-term memory of the last option the
// user referenced, used to resolve elliptical follow-up questions.
type OptionContext struct {
	Symbol      string
	StrikePrice *float64
	OptionType  OptionType
	Expiry      *ExpiryDate
}

// Merge overwrites context fields with any freshly extracted values.
func (c *OptionContext) Merge(symbol string, e *ExtractedEntities) {
	if symbol != "" {
		c.Symbol = symbol
	}
	if e.StrikePrice != nil {
		c.StrikePrice = e.StrikePrice
	}
	if e.OptionType != OptionTypeUnknown {
		c.OptionType = e.OptionType
	}
	if e.Expiry != nil {
		c.Expiry = e.Expiry
	}
}

// Fill copies stored context into extraction gaps. Only the personal-option
// path uses this; other intents never inherit stale option details.
func (c *OptionContext) Fill(e *ExtractedEntities) {
	if e.StrikePrice == nil && c.StrikePrice != nil {
		e.StrikePrice = c.StrikePrice
	}
	if e.OptionType == OptionTypeUnknown && c.OptionType != "" && c.OptionType != OptionTypeUnknown {
		e.OptionType = c.OptionType
	}
	if e.Expiry == nil && c.Expiry != nil {
		e.Expiry = c.Expiry
	}
}
