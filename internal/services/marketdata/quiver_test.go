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

func TestQuiverNotConfigured(t *testing.T) {
	client := NewQuiverClient("")
	assert.False(t, client.Enabled())

	_, err := client.GetCongressTrading(context.Background(), "NVDA")
	assert.True(t, errors.Is(err, ErrNotConfigured))
}

func TestQuiverGetCongressTrading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical/congresstrading/NVDA", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"Representative": "Jane Doe", "Party": "D", "Transaction": "Purchase", "Amount": "$15,001 - $50,000", "Date": "2026-08-01"},
			{"Representative": "John Roe", "Party": "R", "Transaction": "Sale", "Amount": "$1,001 - $15,000", "Date": "2026-07-20"}
		]`))
	}))
	defer server.Close()

	client := NewQuiverClient("test-key", WithQuiverURL(server.URL))
	trades, err := client.GetCongressTrading(context.Background(), "NVDA")
	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, "Jane Doe", trades[0].Representative)
	assert.Equal(t, "Purchase", trades[0].Transaction)
}

func TestQuiverRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewQuiverClient("test-key", WithQuiverURL(server.URL))
	_, err := client.GetSocialSentiment(context.Background(), "GME")

	var rateErr *RateLimitError
	require.ErrorAs(t, err, &rateErr)
}

func TestQuiverAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewQuiverClient("test-key", WithQuiverURL(server.URL))
	_, err := client.GetLobbying(context.Background(), "BA")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestTradingViewChartURL(t *testing.T) {
	svc := NewTradingViewService("")

	tests := []struct {
		symbol    string
		timeframe string
		want      string
	}{
		{"AAPL", "D", "https://www.tradingview.com/chart/?symbol=NASDAQ:AAPL&interval=D"},
		{"BTCUSD", "W", "https://www.tradingview.com/chart/?symbol=COINBASE:BTCUSD&interval=W"},
		{"ETHUSDT", "D", "https://www.tradingview.com/chart/?symbol=COINBASE:ETHUSDT&interval=D"},
		{"^DJI", "M", "https://www.tradingview.com/chart/?symbol=DJ:^DJI&interval=M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.ChartURL(tt.symbol, tt.timeframe))
	}
}
