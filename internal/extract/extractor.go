// -----------------------------------------------------------------------
// Package extract turns a normalized question into structured entities:
// stock symbols, option type, strike price and expiry date. Symbol
// resolution prefers company names, then well-known tickers, then a
// stop-word-filtered fallback scan.
// -----------------------------------------------------------------------

package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ternarybob/advisor/internal/lexicon"
	"github.com/ternarybob/advisor/internal/models"
)

// ErrAmbiguousOptionQuery is returned when a question about the caller's own
// option position names no recognizable symbol. The router turns this into a
// guidance message rather than guessing.
var ErrAmbiguousOptionQuery = errors.New("option question without a recognizable symbol")

var (
	optionsRe  = regexp.MustCompile(`\b(option|call|put)\b`)
	personalRe = regexp.MustCompile(`\b(my|i\s+have|i\s+own|i\s+bought|i\s+purchased|bought\s+a|will\s+it|will\s+my)\b`)
	callRe     = regexp.MustCompile(`\b(call|calls)\b`)
	putRe      = regexp.MustCompile(`\b(put|puts)\b`)

	// Dollar amounts in any of three spellings: $440, 440 dollars, strike of 440.
	strikeRe = regexp.MustCompile(`\$(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)\s*(?:dollars?|usd)|(?:strike|price)[^\d]*?(\d+(?:\.\d+)?)`)

	// Fallback symbol scan: short standalone words, stop-word filtered.
	fallbackSymbolRe = regexp.MustCompile(`(?:^|\s)([a-zA-Z]{1,5})(?:\s|$|\W)`)
)

// Extractor derives entities from questions using the shared lexicon.
type Extractor struct {
	companyPatterns []*regexp.Regexp
	tickerPatterns  []*regexp.Regexp
}

// NewExtractor compiles the per-alias and per-ticker word-boundary patterns.
func NewExtractor() *Extractor {
	e := &Extractor{
		companyPatterns: make([]*regexp.Regexp, len(lexicon.Companies)),
		tickerPatterns:  make([]*regexp.Regexp, len(lexicon.CommonTickers)),
	}
	for i, c := range lexicon.Companies {
		e.companyPatterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(c.Name) + `\b`)
	}
	for i, t := range lexicon.CommonTickers {
		e.tickerPatterns[i] = regexp.MustCompile(`\b` + t + `\b`)
	}
	return e
}

// Extract analyzes the question and returns the entities it mentions.
// It returns ErrAmbiguousOptionQuery for a personal option question with no
// recognizable symbol; every other question extracts without error, possibly
// with an empty symbol list.
func (e *Extractor) Extract(q *models.Question) (*models.ExtractedEntities, error) {
	text := q.Normalized

	ents := &models.ExtractedEntities{
		IsOptionsQuery:  optionsRe.MatchString(text),
		IsPersonalQuery: personalRe.MatchString(text),
	}

	ents.Symbols = e.extractSymbols(text, ents.IsOptionsQuery)
	if len(ents.Symbols) == 0 && ents.IsOptionsQuery && ents.IsPersonalQuery {
		return nil, ErrAmbiguousOptionQuery
	}

	ents.StrikePrice = extractStrike(text)
	ents.Expiry = extractExpiry(text)

	switch {
	case callRe.MatchString(text):
		ents.OptionType = models.OptionTypeCall
	case putRe.MatchString(text):
		ents.OptionType = models.OptionTypePut
	default:
		ents.OptionType = models.OptionTypeUnknown
	}

	return ents, nil
}

// extractSymbols resolves symbols with companies first, then tickers, then
// the generic fallback scan. Option questions stop at the first match so a
// single position is identified; other questions collect every mention.
func (e *Extractor) extractSymbols(text string, optionsQuery bool) []string {
	var found []string

	if optionsQuery {
		for i, re := range e.companyPatterns {
			if re.MatchString(text) {
				return []string{lexicon.Companies[i].Ticker}
			}
		}
		for i, re := range e.tickerPatterns {
			if re.MatchString(text) {
				return []string{strings.ToUpper(lexicon.CommonTickers[i])}
			}
		}
		return nil
	}

	for i, re := range e.companyPatterns {
		if re.MatchString(text) {
			found = append(found, lexicon.Companies[i].Ticker)
		}
	}
	if len(found) > 0 {
		return found
	}

	for i, re := range e.tickerPatterns {
		if re.MatchString(text) {
			found = append(found, strings.ToUpper(lexicon.CommonTickers[i]))
		}
	}
	if len(found) > 0 {
		return found
	}

	for _, m := range fallbackSymbolRe.FindAllStringSubmatch(text, -1) {
		word := m[1]
		if len(word) >= 2 && !lexicon.IsStopWord(word) {
			found = append(found, strings.ToUpper(word))
		}
	}
	return found
}

// extractStrike returns the first dollar amount mentioned, whichever
// spelling matched.
func extractStrike(text string) *float64 {
	m := strikeRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		v, err := strconv.ParseFloat(group, 64)
		if err != nil {
			return nil
		}
		return &v
	}
	return nil
}
