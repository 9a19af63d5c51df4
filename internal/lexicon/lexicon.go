// -----------------------------------------------------------------------
// Static vocabulary used by entity extraction: the company-name to ticker
// table, the well-known ticker list, and the stop-word set that keeps
// ordinary English words out of the symbol fallback scan.
// -----------------------------------------------------------------------

package lexicon

import "strings"

// CompanyTicker is one company-name alias mapped to its ticker symbol.
type CompanyTicker struct {
	Name   string
	Ticker string
}

// Companies is scanned in order and the order matters for option
// questions, where the first matching alias wins.
var Companies = []CompanyTicker{
	{"apple", "AAPL"},
	{"microsoft", "MSFT"},
	{"amazon", "AMZN"},
	{"google", "GOOGL"},
	{"alphabet", "GOOGL"},
	{"facebook", "META"},
	{"meta", "META"},
	{"tesla", "TSLA"},
	{"nvidia", "NVDA"},
	{"netflix", "NFLX"},
	{"disney", "DIS"},
	{"visa", "V"},
	{"mastercard", "MA"},
	{"jpmorgan", "JPM"},
	{"jp morgan", "JPM"},
	{"bank of america", "BAC"},
	{"walmart", "WMT"},
	{"coca cola", "KO"},
	{"coca-cola", "KO"},
	{"pepsi", "PEP"},
	{"pepsico", "PEP"},
	{"procter & gamble", "PG"},
	{"procter and gamble", "PG"},
	{"johnson & johnson", "JNJ"},
	{"johnson and johnson", "JNJ"},
	{"unitedhealth", "UNH"},
	{"home depot", "HD"},
	{"ibm", "IBM"},
	{"intel", "INTC"},
	{"cisco", "CSCO"},
	{"oracle", "ORCL"},
	{"verizon", "VZ"},
	{"att", "T"},
	{"at&t", "T"},
	{"chevron", "CVX"},
	{"exxon", "XOM"},
	{"exxonmobil", "XOM"},
	{"boeing", "BA"},
	{"general electric", "GE"},
	{"3m", "MMM"},
	{"caterpillar", "CAT"},
	{"dupont", "DD"},
}

// CommonTickers are scanned (lower case) when no company alias matched.
var CommonTickers = []string{
	"aapl", "msft", "amzn", "googl", "goog", "meta", "tsla", "nvda", "nflx", "dis",
	"v", "ma", "jpm", "bac", "wmt", "ko", "pep", "pg", "jnj", "unh", "hd", "ibm",
	"intc", "csco", "orcl", "vz", "t", "cvx", "xom", "ba", "ge", "mmm", "cat", "dd",
}

var stopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "i", "an", "the", "and", "or", "but", "if", "then", "else", "when",
		"up", "down", "in", "out", "on", "off", "over", "under", "again", "further",
		"once", "here", "there", "where", "why", "how", "all", "any",
		"both", "each", "few", "more", "most", "some", "such", "no", "nor", "not",
		"only", "own", "same", "so", "than", "too", "very", "s", "t", "can", "will",
		"just", "don", "should", "now", "my", "with", "for", "by", "from", "get",
		"have", "has", "had", "did", "do", "does", "is", "are", "am", "was", "were",
		"be", "been", "being", "call", "put", "option", "stock", "price", "mar", "apr",
		"jan", "feb", "jun", "jul", "aug", "sep", "oct", "nov", "dec", "next", "last",
		"year", "month", "week", "day", "that", "this", "these", "those", "what", "which",
		"who", "whom", "whose", "it", "its", "he", "him", "his", "she", "her", "hers",
		"they", "them", "their", "theirs", "we", "us", "our", "ours", "you", "your", "yours",
		"make", "makes", "made", "one", "two", "three", "many", "much", "at", "to", "of",
		"before", "after", "during", "since", "until", "till", "against", "among", "between",
		"into", "through", "throughout", "besides", "above", "below", "around", "upon", "within",
		"about", "along", "alongside", "amid", "beyond", "near", "toward", "via", "yes",
		// Conversational filler that would otherwise leak through the
		// fallback symbol scan on symbol-free questions.
		"whats", "going", "today", "doing", "tell", "me", "hows", "show",
	}
	for _, w := range words {
		stopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether the word (case insensitive) is common English
// that must never be treated as a ticker symbol.
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}
