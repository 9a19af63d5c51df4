package marketdata

import (
	"fmt"
	"strings"
)

// DefaultTradingViewURL is the base URL for TradingView chart links.
const DefaultTradingViewURL = "https://www.tradingview.com/chart"

// TradingViewService builds chart URLs. No network access is involved; the
// links open in the caller's browser.
type TradingViewService struct {
	baseURL string
}

// NewTradingViewService creates a chart link builder. An empty baseURL uses
// the default.
func NewTradingViewService(baseURL string) *TradingViewService {
	if baseURL == "" {
		baseURL = DefaultTradingViewURL
	}
	return &TradingViewService{baseURL: baseURL}
}

// ChartURL returns a TradingView chart link for the symbol and timeframe
// ("D", "W" or "M"). The exchange prefix is guessed from the symbol shape:
// crypto pairs route to COINBASE, index symbols to DJ, everything else to
// NASDAQ.
func (s *TradingViewService) ChartURL(symbol, timeframe string) string {
	exchange := "NASDAQ"
	switch {
	case strings.HasPrefix(symbol, "BTC") || strings.HasSuffix(symbol, "USD") || strings.HasSuffix(symbol, "USDT"):
		exchange = "COINBASE"
	case strings.HasPrefix(symbol, "^"):
		exchange = "DJ"
	}
	return fmt.Sprintf("%s/?symbol=%s:%s&interval=%s", s.baseURL, exchange, symbol, timeframe)
}
