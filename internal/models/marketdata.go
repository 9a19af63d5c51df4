package models

// Quote is a real-time price snapshot for one symbol.
type Quote struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Change           float64 `json:"change"`
	ChangePercent    string  `json:"change_percent"`
	Volume           int64   `json:"volume"`
	LatestTradingDay string  `json:"latest_trading_day"`
	Timestamp        string  `json:"timestamp"`
}

// Overview holds the company fundamentals the formatters consume.
type Overview struct {
	Symbol        string `json:"Symbol"`
	Name          string `json:"Name"`
	Description   string `json:"Description"`
	Sector        string `json:"Sector"`
	Industry      string `json:"Industry"`
	PERatio       string `json:"PERatio"`
	EPS           string `json:"EPS"`
	DividendYield string `json:"DividendYield"`
	WeekHigh52    string `json:"52WeekHigh"`
	WeekLow52     string `json:"52WeekLow"`
}

// NewsItem is one article from the news feed.
type NewsItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	TimePublished string `json:"time_published"`
	Sentiment     string `json:"overall_sentiment_label"`
}

// CongressTrade is one congressional trading disclosure.
type CongressTrade struct {
	Representative string `json:"Representative"`
	Party          string `json:"Party"`
	Transaction    string `json:"Transaction"`
	Amount         string `json:"Amount"`
	Date           string `json:"Date"`
}

// InsiderTrade is one insider transaction record.
type InsiderTrade struct {
	Name            string `json:"Name"`
	Position        string `json:"Position"`
	TransactionType string `json:"TransactionType"`
	Shares          string `json:"Shares"`
	Price           string `json:"Price"`
	Date            string `json:"Date"`
}

// SocialMention is one day of message-board mention counts.
type SocialMention struct {
	Date     string `json:"Date"`
	Mentions int64  `json:"Mentions"`
}

// LobbyingActivity is one lobbying disclosure record.
type LobbyingActivity struct {
	Date   string `json:"Date"`
	Amount string `json:"Amount"`
	Issue  string `json:"Issue"`
}

// GovContract is one government contract award.
type GovContract struct {
	Date   string  `json:"Date"`
	Amount float64 `json:"Amount"`
	Agency string  `json:"Agency"`
}

// OffExchangeVolume is one day of off-exchange short volume.
type OffExchangeVolume struct {
	Date        string  `json:"Date"`
	ShortVolume float64 `json:"ShortVolume"`
	TotalVolume float64 `json:"TotalVolume"`
}

// WikipediaViews is one day of Wikipedia page view counts.
type WikipediaViews struct {
	Date  string  `json:"Date"`
	Views float64 `json:"Views"`
}
