package router

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ternarybob/advisor/internal/models"
	"github.com/ternarybob/advisor/internal/services/marketdata"
)

const quiverMissingMsg = "Quiver Quantitative API not configured. Set an API key to access congressional trading, insider transactions, and more."

// dataError maps a collaborator failure into an error response the user can
// act on.
func dataError(err error, symbol string) *models.Response {
	switch {
	case errors.Is(err, marketdata.ErrNotConfigured):
		return models.ErrorResponse(quiverMissingMsg)
	case errors.Is(err, marketdata.ErrNoData):
		return models.ErrorResponse("No data found for symbol: " + symbol)
	default:
		var rateErr *marketdata.RateLimitError
		if errors.As(err, &rateErr) {
			return models.ErrorResponse("API limit reached. Please try again later.")
		}
		return models.ErrorResponse("Error fetching data: " + err.Error())
	}
}

// dispatchByKeyword picks the feed for a generic question by keyword
// priority. Order matters: specialized feeds beat price, price beats
// company, and general analysis is the fallback.
func (r *Router) dispatchByKeyword(ctx context.Context, symbol, q string) *models.Response {
	switch {
	case containsAny(q, "congress", "senator", "representative", "political", "politicians", "government officials"):
		return r.formatCongress(ctx, symbol)
	case containsAny(q, "insider", "ceo", "executive", "board", "director"):
		return r.formatInsider(ctx, symbol)
	case containsAny(q, "reddit", "wallstreetbets", "wsb", "social media", "retail"):
		return r.formatWallStreetBets(ctx, symbol)
	case containsAny(q, "lobby", "lobbying", "political spending", "influence"):
		return r.formatLobbying(ctx, symbol)
	case containsAny(q, "price", "worth", "value", "cost", "trading at"):
		return r.formatPrice(ctx, symbol)
	case containsAny(q, "company", "what is", "who is", "about", "overview"):
		return r.formatCompany(ctx, symbol)
	case containsAny(q, "news", "happening", "recent", "development"):
		return r.formatNews(ctx, symbol)
	case containsAny(q, "predict", "forecast", "future", "will", "expect", "projection"):
		return r.formatPrediction(ctx, symbol, q)
	case containsAny(q, "option", "call", "put", "strike", "expiry"):
		return r.formatOptionsOverview(ctx, symbol, q)
	default:
		return r.formatAnalysis(ctx, symbol)
	}
}

func containsAny(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// formatPrice answers "what is SYM trading at".
func (r *Router) formatPrice(ctx context.Context, symbol string) *models.Response {
	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	direction := "unchanged"
	if quote.Change > 0 {
		direction = "up"
	} else if quote.Change < 0 {
		direction = "down"
	}

	link := r.charts.ChartURL(symbol, "D")

	var b strings.Builder
	fmt.Fprintf(&b, "The current price of %s is $%g.\n", symbol, quote.Price)
	fmt.Fprintf(&b, "Today's change: %s $%.2f (%s%%).\n\n", direction, math.Abs(quote.Change), quote.ChangePercent)
	fmt.Fprintf(&b, "View detailed chart on TradingView: %s\n\n", link)
	b.WriteString("You can ask for more information like:\n")
	fmt.Fprintf(&b, "- Tell me more about %s\n", symbol)
	fmt.Fprintf(&b, "- Any recent news for %s?\n", symbol)
	fmt.Fprintf(&b, "- What's the analysis for %s?", symbol)

	return &models.Response{
		Type:    models.ResponseTypePrice,
		Symbol:  symbol,
		Data:    quote,
		Message: b.String(),
	}
}

// formatCompany answers "tell me about SYM".
func (r *Router) formatCompany(ctx context.Context, symbol string) *models.Response {
	overview, err := r.market.GetOverview(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	name := overview.Name
	if name == "" {
		name = symbol
	}
	sector := overview.Sector
	if sector == "" {
		sector = "company"
	}
	description := overview.Description
	if len(description) > 200 {
		description = description[:200]
	}

	return &models.Response{
		Type:    models.ResponseTypeCompany,
		Symbol:  symbol,
		Data:    overview,
		Message: fmt.Sprintf("%s (%s) is a %s company in the %s industry. %s...", name, symbol, sector, overview.Industry, description),
	}
}

// formatNews answers "any news for SYM" with the top three items.
func (r *Router) formatNews(ctx context.Context, symbol string) *models.Response {
	items, err := r.market.GetNews(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	if len(items) > 3 {
		items = items[:3]
	}
	if len(items) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeNews,
			Symbol:  symbol,
			Data:    items,
			Message: "No recent news found for " + symbol,
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the latest news for %s:\n", symbol)
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (Sentiment: %s)", item.Title, item.Sentiment))
	}
	b.WriteString(strings.Join(lines, "\n"))

	return &models.Response{
		Type:    models.ResponseTypeNews,
		Symbol:  symbol,
		Data:    items,
		Message: b.String(),
	}
}

// formatCongress lists recent congressional trades.
func (r *Router) formatCongress(ctx context.Context, symbol string) *models.Response {
	trades, err := r.alt.GetCongressTrading(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	if len(trades) > 5 {
		trades = trades[:5]
	}
	if len(trades) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeCongress,
			Symbol:  symbol,
			Message: fmt.Sprintf("No recent congressional trading activity found for %s.", symbol),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent congressional trading activity for %s:\n", symbol)
	for _, t := range trades {
		fmt.Fprintf(&b, "- %s (%s): %s $%s on %s\n", t.Representative, t.Party, t.Transaction, t.Amount, t.Date)
	}

	return &models.Response{
		Type:    models.ResponseTypeCongress,
		Symbol:  symbol,
		Data:    trades,
		Message: b.String(),
	}
}

// formatInsider lists recent insider transactions.
func (r *Router) formatInsider(ctx context.Context, symbol string) *models.Response {
	trades, err := r.alt.GetInsiderTrading(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	if len(trades) > 5 {
		trades = trades[:5]
	}
	if len(trades) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeInsider,
			Symbol:  symbol,
			Message: fmt.Sprintf("No recent insider trading activity found for %s.", symbol),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent insider trading activity for %s:\n", symbol)
	for _, t := range trades {
		fmt.Fprintf(&b, "- %s (%s): %s %s shares at $%s on %s\n", t.Name, t.Position, t.TransactionType, t.Shares, t.Price, t.Date)
	}

	return &models.Response{
		Type:    models.ResponseTypeInsider,
		Symbol:  symbol,
		Data:    trades,
		Message: b.String(),
	}
}

// formatWallStreetBets lists recent message-board mention counts.
func (r *Router) formatWallStreetBets(ctx context.Context, symbol string) *models.Response {
	mentions, err := r.alt.GetSocialSentiment(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	if len(mentions) > 5 {
		mentions = mentions[:5]
	}
	if len(mentions) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeWallStreetBets,
			Symbol:  symbol,
			Message: fmt.Sprintf("No recent WallStreetBets discussion found for %s.", symbol),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent WallStreetBets discussion for %s:\n", symbol)
	for _, m := range mentions {
		fmt.Fprintf(&b, "- %s: %d mentions\n", m.Date, m.Mentions)
	}

	return &models.Response{
		Type:    models.ResponseTypeWallStreetBets,
		Symbol:  symbol,
		Data:    mentions,
		Message: b.String(),
	}
}

// formatLobbying lists recent lobbying disclosures.
func (r *Router) formatLobbying(ctx context.Context, symbol string) *models.Response {
	activity, err := r.alt.GetLobbying(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	if len(activity) > 5 {
		activity = activity[:5]
	}
	if len(activity) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeLobbying,
			Symbol:  symbol,
			Message: fmt.Sprintf("No recent lobbying activity found for %s.", symbol),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent lobbying activity for %s:\n", symbol)
	for _, a := range activity {
		fmt.Fprintf(&b, "- %s: $%s on %s\n", a.Date, a.Amount, a.Issue)
	}

	return &models.Response{
		Type:    models.ResponseTypeLobbying,
		Symbol:  symbol,
		Data:    activity,
		Message: b.String(),
	}
}

// formatGovContracts lists recent government contract awards.
func (r *Router) formatGovContracts(ctx context.Context, symbol string) *models.Response {
	contracts, err := r.alt.GetGovContracts(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}
	if len(contracts) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeNoData,
			Message: fmt.Sprintf("No government contracts data found for %s.", symbol),
		}
	}

	recent := contracts
	if len(recent) > 5 {
		recent = recent[:5]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent government contracts for %s:\n\n", symbol)
	for _, c := range recent {
		fmt.Fprintf(&b, "- %s: $%.2f from %s\n", c.Date, c.Amount, c.Agency)
	}

	return &models.Response{
		Type:    models.ResponseTypeGovContracts,
		Symbol:  symbol,
		Data:    contracts,
		Message: b.String(),
	}
}

// formatOffExchange lists recent off-exchange short volume.
func (r *Router) formatOffExchange(ctx context.Context, symbol string) *models.Response {
	records, err := r.alt.GetOffExchange(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}
	if len(records) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeNoData,
			Message: fmt.Sprintf("No off-exchange short volume data found for %s.", symbol),
		}
	}

	recent := records
	if len(recent) > 10 {
		recent = recent[:10]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent off-exchange short volume for %s:\n\n", symbol)
	for _, rec := range recent {
		if rec.TotalVolume <= 0 {
			continue
		}
		shortPct := rec.ShortVolume / rec.TotalVolume * 100
		fmt.Fprintf(&b, "- %s: %.0f shares shorted (%.2f%% of total volume)\n", rec.Date, rec.ShortVolume, shortPct)
	}

	return &models.Response{
		Type:    models.ResponseTypeOffExchange,
		Symbol:  symbol,
		Data:    records,
		Message: b.String(),
	}
}

// formatWikipedia lists the last week of page views with a trend line.
func (r *Router) formatWikipedia(ctx context.Context, symbol string) *models.Response {
	views, err := r.alt.GetWikipediaViews(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}
	if len(views) == 0 {
		return &models.Response{
			Type:    models.ResponseTypeNoData,
			Message: fmt.Sprintf("No Wikipedia page views data found for %s.", symbol),
		}
	}

	recent := views
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent Wikipedia page views for %s:\n\n", symbol)
	for _, v := range recent {
		fmt.Fprintf(&b, "- %s: %.0f views\n", v.Date, v.Views)
	}

	if len(recent) > 1 {
		first := recent[0].Views
		last := recent[len(recent)-1].Views
		if first > 0 {
			changePct := (last - first) / first * 100
			trend := "decreasing"
			if changePct > 0 {
				trend = "increasing"
			}
			fmt.Fprintf(&b, "\nWikipedia page views are %s by %.2f%% over this period.", trend, math.Abs(changePct))
		}
	}

	return &models.Response{
		Type:    models.ResponseTypeWikipedia,
		Symbol:  symbol,
		Data:    views,
		Message: b.String(),
	}
}

// formatChart offers daily/weekly/monthly chart links the next question can
// pick from.
func (r *Router) formatChart(symbol string) *models.Response {
	links := &models.ChartLinks{
		DailyURL:   r.charts.ChartURL(symbol, "D"),
		WeeklyURL:  r.charts.ChartURL(symbol, "W"),
		MonthlyURL: r.charts.ChartURL(symbol, "M"),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TradingView Charts for %s:\n\n", symbol)
	fmt.Fprintf(&b, "- [Daily Chart](%s)\n", links.DailyURL)
	fmt.Fprintf(&b, "- [Weekly Chart](%s)\n", links.WeeklyURL)
	fmt.Fprintf(&b, "- [Monthly Chart](%s)\n\n", links.MonthlyURL)
	b.WriteString("Would you like to open any of these charts? (Please respond with 'daily', 'weekly', or 'monthly')")

	return &models.Response{
		Type:    models.ResponseTypeChart,
		Symbol:  symbol,
		Data:    links,
		Message: b.String(),
	}
}

// formatAnalysis is the catch-all overview combining quote and fundamentals.
func (r *Router) formatAnalysis(ctx context.Context, symbol string) *models.Response {
	quote, err := r.market.GetQuote(ctx, symbol)
	if err != nil {
		return dataError(err, symbol)
	}

	// Fundamentals are best-effort here; a quote alone still makes a useful
	// answer.
	overview, overviewErr := r.market.GetOverview(ctx, symbol)

	name := symbol
	if overviewErr == nil && overview.Name != "" {
		name = overview.Name
	}

	chartLink := r.charts.ChartURL(symbol, "D")
	ideasLink := fmt.Sprintf("https://www.tradingview.com/symbols/%s/ideas/", symbol)

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis for %s (%s) at $%g:\n\n", name, symbol, quote.Price)

	if overviewErr == nil {
		fmt.Fprintf(&b, "Sector: %s\n", orNA(overview.Sector))
		fmt.Fprintf(&b, "Industry: %s\n", orNA(overview.Industry))
		fmt.Fprintf(&b, "P/E Ratio: %s\n", orNA(overview.PERatio))
		fmt.Fprintf(&b, "EPS: %s\n", orNA(overview.EPS))
		fmt.Fprintf(&b, "Dividend Yield: %s\n", orNA(overview.DividendYield))
		fmt.Fprintf(&b, "52-Week Range: $%s - $%s\n\n", orNA(overview.WeekLow52), orNA(overview.WeekHigh52))
	}

	b.WriteString("Technical Analysis Resources:\n")
	fmt.Fprintf(&b, "- View interactive chart: %s\n", chartLink)
	fmt.Fprintf(&b, "- See trading ideas from TradingView users: %s\n\n", ideasLink)
	b.WriteString("For more specific information, you can ask:\n")
	fmt.Fprintf(&b, "- What's the news for %s?\n", symbol)
	fmt.Fprintf(&b, "- Any insider trading for %s?\n", symbol)
	fmt.Fprintf(&b, "- Tell me about %s options", symbol)

	data := map[string]interface{}{
		"price_data": quote,
	}
	if overviewErr == nil {
		data["company_data"] = overview
	}

	return &models.Response{
		Type:    models.ResponseTypeAnalysis,
		Symbol:  symbol,
		Data:    data,
		Message: b.String(),
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
