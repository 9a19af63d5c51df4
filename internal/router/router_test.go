package router

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/models"
	"github.com/ternarybob/advisor/internal/services/marketdata"
	"github.com/ternarybob/advisor/internal/session"
)

// mockMarket records calls and returns canned data.
type mockMarket struct {
	quoteCalls    []string
	overviewCalls []string
	newsCalls     []string

	quote    *models.Quote
	quoteErr error
	overview *models.Overview
	news     []models.NewsItem
}

func (m *mockMarket) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	m.quoteCalls = append(m.quoteCalls, symbol)
	if m.quoteErr != nil {
		return nil, m.quoteErr
	}
	if m.quote != nil {
		return m.quote, nil
	}
	return &models.Quote{Symbol: symbol, Price: 400, Change: 2.5, ChangePercent: "0.63"}, nil
}

func (m *mockMarket) GetOverview(ctx context.Context, symbol string) (*models.Overview, error) {
	m.overviewCalls = append(m.overviewCalls, symbol)
	if m.overview != nil {
		return m.overview, nil
	}
	return &models.Overview{Symbol: symbol, Name: symbol + " Inc", Sector: "TECHNOLOGY", Industry: "SOFTWARE", PERatio: "30", EPS: "5.00"}, nil
}

func (m *mockMarket) GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	m.newsCalls = append(m.newsCalls, symbol)
	return m.news, nil
}

// mockAlt returns canned alternative data.
type mockAlt struct {
	calls []string

	congress []models.CongressTrade
	err      error
}

func (m *mockAlt) record(feed string) { m.calls = append(m.calls, feed) }

func (m *mockAlt) GetCongressTrading(ctx context.Context, symbol string) ([]models.CongressTrade, error) {
	m.record("congress")
	return m.congress, m.err
}

func (m *mockAlt) GetInsiderTrading(ctx context.Context, symbol string) ([]models.InsiderTrade, error) {
	m.record("insider")
	return nil, m.err
}

func (m *mockAlt) GetSocialSentiment(ctx context.Context, symbol string) ([]models.SocialMention, error) {
	m.record("wsb")
	return []models.SocialMention{{Date: "2026-08-28", Mentions: 120}}, m.err
}

func (m *mockAlt) GetLobbying(ctx context.Context, symbol string) ([]models.LobbyingActivity, error) {
	m.record("lobbying")
	return nil, m.err
}

func (m *mockAlt) GetGovContracts(ctx context.Context, symbol string) ([]models.GovContract, error) {
	m.record("gov")
	return []models.GovContract{{Date: "2026-07-01", Amount: 1500000, Agency: "DoD"}}, m.err
}

func (m *mockAlt) GetOffExchange(ctx context.Context, symbol string) ([]models.OffExchangeVolume, error) {
	m.record("offexchange")
	return []models.OffExchangeVolume{{Date: "2026-08-28", ShortVolume: 50000, TotalVolume: 100000}}, m.err
}

func (m *mockAlt) GetWikipediaViews(ctx context.Context, symbol string) ([]models.WikipediaViews, error) {
	m.record("wikipedia")
	return []models.WikipediaViews{{Date: "2026-08-22", Views: 1000}, {Date: "2026-08-28", Views: 1500}}, m.err
}

func newTestRouter(market *mockMarket, alt *mockAlt) *Router {
	charts := marketdata.NewTradingViewService("")
	return New(market, alt, charts, arbor.NewLogger())
}

func route(t *testing.T, r *Router, sess *session.Session, question string) *models.Response {
	t.Helper()
	resp := r.Route(context.Background(), sess, question)
	require.NotNil(t, resp)
	return resp
}

func TestRoutePersonalOption(t *testing.T) {
	market := &mockMarket{quote: &models.Quote{Symbol: "TSLA", Price: 412.35}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "Will my TSLA $440 call be profitable if it expires 21 mar 2025?")

	assert.Equal(t, models.ResponseTypePersonalOption, resp.Type)
	assert.Equal(t, "TSLA", resp.Symbol)
	assert.Contains(t, resp.Message, "$440")
	assert.Contains(t, resp.Message, "21 mar 2025")
	assert.Contains(t, resp.Message, "out of the money")
	assert.Contains(t, resp.Message, "needs to be above $440.00")

	// The contract is remembered for follow-ups.
	ctx := sess.OptionContext()
	assert.Equal(t, "TSLA", ctx.Symbol)
	require.NotNil(t, ctx.StrikePrice)
	assert.Equal(t, 440.0, *ctx.StrikePrice)
	assert.Equal(t, models.OptionTypeCall, ctx.OptionType)
}

func TestRouteOptionContextFollowup(t *testing.T) {
	market := &mockMarket{quote: &models.Quote{Symbol: "MSFT", Price: 280}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	first := route(t, r, sess, "will my msft $300 put be profitable by march 21, 2026?")
	require.Equal(t, models.ResponseTypePersonalOption, first.Type)

	resp := route(t, r, sess, "what are the chances it hits the strike price?")
	assert.Equal(t, models.ResponseTypePrediction, resp.Type)
	assert.Equal(t, "MSFT", resp.Symbol)
	assert.Contains(t, resp.Message, "$300.00")
}

func TestRouteContextFollowupWithoutContext(t *testing.T) {
	market := &mockMarket{}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	// No remembered option: the chances phrasing falls through to the
	// keyword dispatch, which finds no symbol.
	resp := route(t, r, sess, "what are the chances")
	assert.Equal(t, models.ResponseTypeNoSymbol, resp.Type)
	assert.Empty(t, market.quoteCalls)
}

func TestRoutePrice(t *testing.T) {
	market := &mockMarket{quote: &models.Quote{Symbol: "AAPL", Price: 232.5, Change: -1.2, ChangePercent: "-0.51"}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "What is the price of Apple?")

	assert.Equal(t, models.ResponseTypePrice, resp.Type)
	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Contains(t, resp.Message, "The current price of AAPL is $232.5")
	assert.Contains(t, resp.Message, "down $1.20")
	assert.Equal(t, []string{"AAPL"}, market.quoteCalls)
}

func TestRouteChartThenFollowup(t *testing.T) {
	market := &mockMarket{}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "show me a chart for TSLA")
	require.Equal(t, models.ResponseTypeChart, resp.Type)
	assert.Equal(t, "TSLA", resp.Symbol)
	links, ok := resp.Data.(*models.ChartLinks)
	require.True(t, ok)
	assert.Contains(t, links.DailyURL, "interval=D")
	// Chart links are built locally; no market data needed.
	assert.Empty(t, market.quoteCalls)

	followup := route(t, r, sess, "daily")
	assert.Equal(t, models.ResponseTypeInfo, followup.Type)
	assert.Equal(t, "Opening daily chart for TSLA...", followup.Message)
	assert.Equal(t, links.DailyURL, followup.Data)
}

func TestRouteChartFollowupWithoutChart(t *testing.T) {
	market := &mockMarket{}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	// "daily" with no preceding chart response is treated as an ordinary
	// question; the word survives symbol extraction and lands in general
	// analysis.
	resp := route(t, r, sess, "daily")
	assert.Equal(t, models.ResponseTypeAnalysis, resp.Type)
	assert.Equal(t, "DAILY", resp.Symbol)
}

func TestRouteChartBeatsPrice(t *testing.T) {
	market := &mockMarket{}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	// Mentions "price" but asks for a chart; the chart rule runs first.
	resp := route(t, r, sess, "show me a price chart for AAPL")
	assert.Equal(t, models.ResponseTypeChart, resp.Type)
	assert.Equal(t, "AAPL", resp.Symbol)
}

func TestRouteNoSymbol(t *testing.T) {
	market := &mockMarket{}
	alt := &mockAlt{}
	r := newTestRouter(market, alt)
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "What's going on with the market today?")

	assert.Equal(t, models.ResponseTypeNoSymbol, resp.Type)
	assert.Contains(t, resp.Message, "couldn't identify a specific stock symbol")
	assert.Empty(t, market.quoteCalls)
	assert.Empty(t, alt.calls)
}

func TestRouteAmbiguousPersonalOption(t *testing.T) {
	market := &mockMarket{}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "will my option be profitable?")

	assert.Equal(t, models.ResponseTypeError, resp.Type)
	assert.Contains(t, resp.Message, "couldn't identify a stock symbol in your option question")
	assert.Empty(t, market.quoteCalls)
}

func TestRouteCongress(t *testing.T) {
	alt := &mockAlt{congress: []models.CongressTrade{
		{Representative: "Jane Doe", Party: "D", Transaction: "Purchase", Amount: "$15,001 - $50,000", Date: "2026-08-01"},
	}}
	r := newTestRouter(&mockMarket{}, alt)
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "Have any congress members traded GOOGL?")

	assert.Equal(t, models.ResponseTypeCongress, resp.Type)
	assert.Equal(t, "GOOGL", resp.Symbol)
	assert.Contains(t, resp.Message, "Jane Doe")
	assert.Equal(t, []string{"congress"}, alt.calls)
}

func TestRouteQuiverNotConfigured(t *testing.T) {
	alt := &mockAlt{err: marketdata.ErrNotConfigured}
	r := newTestRouter(&mockMarket{}, alt)
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "any insider trading for NVDA?")

	assert.Equal(t, models.ResponseTypeError, resp.Type)
	assert.Contains(t, resp.Message, "Quiver Quantitative API not configured")
}

func TestRouteGovContracts(t *testing.T) {
	alt := &mockAlt{}
	r := newTestRouter(&mockMarket{}, alt)
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "What government contracts for LMT?")

	assert.Equal(t, models.ResponseTypeGovContracts, resp.Type)
	assert.Equal(t, "LMT", resp.Symbol)
	assert.Contains(t, resp.Message, "$1500000.00")
	assert.Contains(t, resp.Message, "DoD")
}

func TestRouteOffExchange(t *testing.T) {
	alt := &mockAlt{}
	r := newTestRouter(&mockMarket{}, alt)
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "what's the short volume for GME?")

	assert.Equal(t, models.ResponseTypeOffExchange, resp.Type)
	assert.Contains(t, resp.Message, "50.00% of total volume")
}

func TestRouteWikipedia(t *testing.T) {
	alt := &mockAlt{}
	r := newTestRouter(&mockMarket{}, alt)
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "how many wikipedia views for MSFT?")

	assert.Equal(t, models.ResponseTypeWikipedia, resp.Type)
	assert.Contains(t, resp.Message, "increasing by 50.00%")
}

func TestRouteNews(t *testing.T) {
	market := &mockMarket{news: []models.NewsItem{
		{Title: "Big launch", Sentiment: "Bullish"},
		{Title: "Supply worries", Sentiment: "Bearish"},
		{Title: "Analyst upgrade", Sentiment: "Bullish"},
		{Title: "Fourth item", Sentiment: "Neutral"},
	}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "any news for tsla?")

	assert.Equal(t, models.ResponseTypeNews, resp.Type)
	// Only the top three items are shown.
	assert.Equal(t, 3, strings.Count(resp.Message, "\n- "))
	assert.NotContains(t, resp.Message, "Fourth item")
}

func TestRouteOptionProfitabilityMissingStrike(t *testing.T) {
	market := &mockMarket{quote: &models.Quote{Symbol: "AAPL", Price: 232.5}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "will an aapl option be profitable?")

	assert.Equal(t, models.ResponseTypeOptionProfitability, resp.Type)
	assert.Contains(t, resp.Message, "I need more details")
	assert.Contains(t, resp.Message, "strike price")
}

func TestRouteOptionRecommendations(t *testing.T) {
	market := &mockMarket{quote: &models.Quote{Symbol: "AAPL", Price: 232.5}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "Which options should I buy for AAPL with $1000?")

	assert.Equal(t, models.ResponseTypeOptionRecommendations, resp.Type)
	assert.Equal(t, "AAPL", resp.Symbol)
	assert.Contains(t, resp.Message, "budget of $1000")
}

func TestRoutePriceTarget(t *testing.T) {
	market := &mockMarket{quote: &models.Quote{Symbol: "TSLA", Price: 400}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "will tsla hit $440 by december?")

	assert.Equal(t, models.ResponseTypePrediction, resp.Type)
	assert.Equal(t, "TSLA", resp.Symbol)
	assert.Contains(t, resp.Message, "Target price: $440.00")
	assert.Contains(t, resp.Message, "10.00% increase")
}

func TestRouteGeneralAnalysis(t *testing.T) {
	market := &mockMarket{quote: &models.Quote{Symbol: "AMZN", Price: 190}}
	r := newTestRouter(market, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "give me an analysis of amzn")

	assert.Equal(t, models.ResponseTypeAnalysis, resp.Type)
	assert.Contains(t, resp.Message, "Analysis for AMZN Inc (AMZN)")
	assert.Contains(t, resp.Message, "Sector: TECHNOLOGY")
}

func TestRouteEmptyQuestion(t *testing.T) {
	r := newTestRouter(&mockMarket{}, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "   ")
	assert.Equal(t, models.ResponseTypeError, resp.Type)
}

func TestRouteLastResponseRecorded(t *testing.T) {
	r := newTestRouter(&mockMarket{}, &mockAlt{})
	sess := session.NewStore().Create()

	resp := route(t, r, sess, "show me a chart for NVDA")
	assert.Equal(t, resp, sess.LastResponse())
}
