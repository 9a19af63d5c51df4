// -----------------------------------------------------------------------
// Alpha Vantage client: quotes, company overviews and news sentiment.
// Responses are cached for a short window so repeated questions about the
// same symbol do not burn through the free-tier quota.
// -----------------------------------------------------------------------

package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/advisor/internal/interfaces"
	"github.com/ternarybob/advisor/internal/models"
)

const (
	// DefaultAlphaVantageURL is the base URL for the Alpha Vantage API.
	DefaultAlphaVantageURL = "https://www.alphavantage.co/query"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is the default rate limit (requests per second).
	DefaultRateLimit = 5

	// DefaultCacheTTL is how long API payloads stay cached.
	DefaultCacheTTL = 5 * time.Minute
)

// AlphaVantageClient talks to the Alpha Vantage REST API.
type AlphaVantageClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	cache      interfaces.ResponseCache
	cacheTTL   time.Duration
}

// AlphaVantageOption configures the client.
type AlphaVantageOption func(*AlphaVantageClient)

// WithAlphaVantageURL sets a custom base URL.
func WithAlphaVantageURL(baseURL string) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.baseURL = baseURL
	}
}

// WithAlphaVantageHTTPClient sets a custom HTTP client.
func WithAlphaVantageHTTPClient(httpClient *http.Client) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.httpClient = httpClient
	}
}

// WithAlphaVantageLogger sets a logger.
func WithAlphaVantageLogger(logger arbor.ILogger) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.logger = logger
	}
}

// WithAlphaVantageRateLimit sets a custom rate limit.
func WithAlphaVantageRateLimit(requestsPerSecond int) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithAlphaVantageCache attaches a response cache.
func WithAlphaVantageCache(cache interfaces.ResponseCache, ttl time.Duration) AlphaVantageOption {
	return func(c *AlphaVantageClient) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewAlphaVantageClient creates a new Alpha Vantage client.
func NewAlphaVantageClient(apiKey string, opts ...AlphaVantageOption) *AlphaVantageClient {
	c := &AlphaVantageClient{
		baseURL: DefaultAlphaVantageURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		cacheTTL: DefaultCacheTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// get performs a GET request for the given function and decodes into a raw map
// so the "Note" quota marker can be detected before typed decoding.
func (c *AlphaVantageClient) get(ctx context.Context, params url.Values) (map[string]json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{RetryAfter: time.Second}
	}

	params.Set("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.logger != nil {
		c.logger.Debug().
			Str("function", params.Get("function")).
			Str("symbol", params.Get("symbol")).
			Msg("Alpha Vantage API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   params.Get("function"),
		}
	}

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// The API reports quota exhaustion as a 200 with a "Note" field.
	if _, ok := raw["Note"]; ok {
		return nil, &RateLimitError{RetryAfter: time.Minute}
	}

	return raw, nil
}

// GetQuote retrieves the current quote for a symbol.
func (c *AlphaVantageClient) GetQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	cacheKey := "quote_" + symbol
	if c.cache != nil {
		var cached models.Quote
		if ok, _ := c.cache.Get(cacheKey, &cached); ok {
			return &cached, nil
		}
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	payload, ok := raw["Global Quote"]
	if !ok {
		return nil, ErrNoData
	}

	var fields map[string]string
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode quote: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNoData
	}

	quote := &models.Quote{
		Symbol:           fields["01. symbol"],
		LatestTradingDay: fields["07. latest trading day"],
		ChangePercent:    strings.TrimSuffix(fields["10. change percent"], "%"),
		Timestamp:        time.Now().Format("2006-01-02 15:04:05"),
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}
	quote.Price, _ = strconv.ParseFloat(fields["05. price"], 64)
	quote.Change, _ = strconv.ParseFloat(fields["09. change"], 64)
	quote.Volume, _ = strconv.ParseInt(fields["06. volume"], 10, 64)

	if c.cache != nil {
		_ = c.cache.Set(cacheKey, quote, c.cacheTTL)
	}
	return quote, nil
}

// GetOverview retrieves fundamental company data for a symbol.
func (c *AlphaVantageClient) GetOverview(ctx context.Context, symbol string) (*models.Overview, error) {
	cacheKey := "overview_" + symbol
	if c.cache != nil {
		var cached models.Overview
		if ok, _ := c.cache.Get(cacheKey, &cached); ok {
			return &cached, nil
		}
	}

	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", symbol)

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}
	if _, ok := raw["Symbol"]; !ok {
		return nil, ErrNoData
	}

	// Re-marshal the raw map so the typed struct decodes in one pass.
	blob, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode overview: %w", err)
	}
	var overview models.Overview
	if err := json.Unmarshal(blob, &overview); err != nil {
		return nil, fmt.Errorf("failed to decode overview: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(cacheKey, &overview, c.cacheTTL)
	}
	return &overview, nil
}

// GetNews retrieves recent news with sentiment for a symbol.
func (c *AlphaVantageClient) GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error) {
	cacheKey := "news_" + symbol
	if c.cache != nil {
		var cached []models.NewsItem
		if ok, _ := c.cache.Get(cacheKey, &cached); ok {
			return cached, nil
		}
	}

	params := url.Values{}
	params.Set("function", "NEWS_SENTIMENT")
	params.Set("tickers", symbol)

	raw, err := c.get(ctx, params)
	if err != nil {
		return nil, err
	}

	feed, ok := raw["feed"]
	if !ok {
		return nil, ErrNoData
	}

	var items []models.NewsItem
	if err := json.Unmarshal(feed, &items); err != nil {
		return nil, fmt.Errorf("failed to decode news feed: %w", err)
	}

	if c.cache != nil {
		_ = c.cache.Set(cacheKey, items, c.cacheTTL)
	}
	return items, nil
}
