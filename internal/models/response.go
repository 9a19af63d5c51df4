package models

// ResponseType tags the variant of a routed response.
type ResponseType string

const (
	ResponseTypePrice                 ResponseType = "price"
	ResponseTypeCompany               ResponseType = "company"
	ResponseTypeNews                  ResponseType = "news"
	ResponseTypeCongress              ResponseType = "congress"
	ResponseTypeInsider               ResponseType = "insider"
	ResponseTypeWallStreetBets        ResponseType = "wallstreetbets"
	ResponseTypeLobbying              ResponseType = "lobbying"
	ResponseTypeChart                 ResponseType = "chart"
	ResponseTypeGovContracts          ResponseType = "gov_contracts"
	ResponseTypeOffExchange           ResponseType = "offexchange"
	ResponseTypeWikipedia             ResponseType = "wikipedia"
	ResponseTypePersonalOption        ResponseType = "personal_option"
	ResponseTypeOptionProfitability   ResponseType = "option_profitability"
	ResponseTypeOptionRecommendations ResponseType = "option_recommendations"
	ResponseTypePrediction            ResponseType = "prediction"
	ResponseTypeOptions               ResponseType = "options"
	ResponseTypeAnalysis              ResponseType = "analysis"
	ResponseTypeNoSymbol              ResponseType = "no_symbol"
	ResponseTypeNoData                ResponseType = "no_data"
	ResponseTypeInfo                  ResponseType = "info"
	ResponseTypeError                 ResponseType = "error"
)

// Response is the sole output of the router. Ownership transfers to the
// caller; Data carries the intent-specific payload when one exists.
type Response struct {
	Type    ResponseType `json:"response_type"`
	Symbol  string       `json:"symbol,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Message string       `json:"message"`
}

// IsError reports whether the response carries a collaborator or routing error.
func (r *Response) IsError() bool {
	return r.Type == ResponseTypeError
}

// ErrorResponse builds an error-tagged response with the given message.
func ErrorResponse(message string) *Response {
	return &Response{Type: ResponseTypeError, Message: message}
}

// ChartLinks is the payload of a chart response, one URL per timeframe.
type ChartLinks struct {
	DailyURL   string `json:"daily_url"`
	WeeklyURL  string `json:"weekly_url"`
	MonthlyURL string `json:"monthly_url"`
}

// URLFor returns the link for a timeframe name ("daily", "weekly", "monthly").
func (c *ChartLinks) URLFor(timeframe string) string {
	switch timeframe {
	case "daily":
		return c.DailyURL
	case "weekly":
		return c.WeeklyURL
	case "monthly":
		return c.MonthlyURL
	default:
		return ""
	}
}
