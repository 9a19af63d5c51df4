package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphaVantageGetQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		assert.Equal(t, "TSLA", r.URL.Query().Get("symbol"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"Global Quote": {
				"01. symbol": "TSLA",
				"05. price": "412.3500",
				"06. volume": "98765432",
				"07. latest trading day": "2026-08-28",
				"09. change": "-3.2100",
				"10. change percent": "-0.7725%"
			}
		}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClient("test-key", WithAlphaVantageURL(server.URL))
	quote, err := client.GetQuote(context.Background(), "TSLA")
	require.NoError(t, err)

	assert.Equal(t, "TSLA", quote.Symbol)
	assert.Equal(t, 412.35, quote.Price)
	assert.Equal(t, -3.21, quote.Change)
	assert.Equal(t, "-0.7725", quote.ChangePercent)
	assert.Equal(t, int64(98765432), quote.Volume)
	assert.Equal(t, "2026-08-28", quote.LatestTradingDay)
}

func TestAlphaVantageQuotaNote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Note": "Thank you for using Alpha Vantage!"}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClient("test-key", WithAlphaVantageURL(server.URL))
	_, err := client.GetQuote(context.Background(), "TSLA")

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
}

func TestAlphaVantageNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClient("test-key", WithAlphaVantageURL(server.URL))
	_, err := client.GetQuote(context.Background(), "ZZZZ")
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestAlphaVantageHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewAlphaVantageClient("test-key", WithAlphaVantageURL(server.URL))
	_, err := client.GetQuote(context.Background(), "TSLA")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestAlphaVantageGetOverview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OVERVIEW", r.URL.Query().Get("function"))
		w.Write([]byte(`{
			"Symbol": "AAPL",
			"Name": "Apple Inc",
			"Sector": "TECHNOLOGY",
			"Industry": "ELECTRONIC COMPUTERS",
			"PERatio": "34.2",
			"EPS": "6.43",
			"DividendYield": "0.0044",
			"52WeekHigh": "260.1",
			"52WeekLow": "169.2",
			"Description": "Apple Inc. designs smartphones."
		}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClient("test-key", WithAlphaVantageURL(server.URL))
	overview, err := client.GetOverview(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "Apple Inc", overview.Name)
	assert.Equal(t, "TECHNOLOGY", overview.Sector)
	assert.Equal(t, "260.1", overview.WeekHigh52)
}

func TestAlphaVantageGetNews(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "NEWS_SENTIMENT", r.URL.Query().Get("function"))
		assert.Equal(t, "NVDA", r.URL.Query().Get("tickers"))
		w.Write([]byte(`{
			"feed": [
				{"title": "Chips rally", "summary": "s1", "url": "https://example.com/1", "time_published": "20260828T120000", "overall_sentiment_label": "Bullish"},
				{"title": "Earnings ahead", "summary": "s2", "url": "https://example.com/2", "time_published": "20260828T090000", "overall_sentiment_label": "Neutral"}
			]
		}`))
	}))
	defer server.Close()

	client := NewAlphaVantageClient("test-key", WithAlphaVantageURL(server.URL))
	items, err := client.GetNews(context.Background(), "NVDA")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Chips rally", items[0].Title)
	assert.Equal(t, "Bullish", items[0].Sentiment)
}
