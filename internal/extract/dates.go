package extract

import (
	"regexp"

	"github.com/ternarybob/advisor/internal/models"
)

// Expiry date spellings, tried in order. The first two capture (day, year)
// with the month read back out of the question text; the last two capture
// three numeric parts.
var datePatterns = []*regexp.Regexp{
	// 21 mar 2025
	regexp.MustCompile(`(\d{1,2})\s*(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s*(\d{2,4})`),
	// march 21 2025, march 21st, 2025
	regexp.MustCompile(`(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s*(\d{1,2})(?:st|nd|rd|th)?\s*,?\s*(\d{2,4})`),
	// 03/21/25 or 21/03/2025
	regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`),
	// 2025-03-21
	regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`),
}

var (
	monthRe    = regexp.MustCompile(`\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
	loneDayRe  = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?\b`)
	loneYearRe = regexp.MustCompile(`\b(20\d{2})\b`)
)

// extractExpiry finds the first complete expiry date, or synthesizes one
// when the question names a month with only a day or year alongside it.
// Missing parts default to the 15th and to 2024.
func extractExpiry(text string) *models.ExpiryDate {
	for _, re := range datePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return &models.ExpiryDate{Parts: m[1:]}
		}
	}

	month := monthRe.FindStringSubmatch(text)
	if month == nil {
		return nil
	}
	day := loneDayRe.FindStringSubmatch(text)
	year := loneYearRe.FindStringSubmatch(text)
	if day == nil && year == nil {
		return nil
	}

	dayPart := "15"
	if day != nil {
		dayPart = day[1]
	}
	yearPart := "2024"
	if year != nil {
		yearPart = year[1]
	}
	return &models.ExpiryDate{Parts: []string{dayPart, month[1], yearPart}}
}
