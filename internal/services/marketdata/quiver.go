// -----------------------------------------------------------------------
// Quiver Quantitative client: congressional and insider trading, social
// sentiment, lobbying, government contracts, off-exchange short volume and
// Wikipedia page views. The client is optional; without an API key every
// call returns ErrNotConfigured and the router explains how to enable it.
// -----------------------------------------------------------------------

package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/advisor/internal/interfaces"
	"github.com/ternarybob/advisor/internal/models"
)

// DefaultQuiverURL is the base URL for the Quiver Quantitative API.
const DefaultQuiverURL = "https://api.quiverquant.com/beta"

// QuiverClient talks to the Quiver Quantitative REST API.
type QuiverClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	cache      interfaces.ResponseCache
	cacheTTL   time.Duration
}

// QuiverOption configures the client.
type QuiverOption func(*QuiverClient)

// WithQuiverURL sets a custom base URL.
func WithQuiverURL(baseURL string) QuiverOption {
	return func(c *QuiverClient) {
		c.baseURL = baseURL
	}
}

// WithQuiverHTTPClient sets a custom HTTP client.
func WithQuiverHTTPClient(httpClient *http.Client) QuiverOption {
	return func(c *QuiverClient) {
		c.httpClient = httpClient
	}
}

// WithQuiverLogger sets a logger.
func WithQuiverLogger(logger arbor.ILogger) QuiverOption {
	return func(c *QuiverClient) {
		c.logger = logger
	}
}

// WithQuiverCache attaches a response cache.
func WithQuiverCache(cache interfaces.ResponseCache, ttl time.Duration) QuiverOption {
	return func(c *QuiverClient) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// NewQuiverClient creates a new Quiver client. An empty apiKey produces a
// client whose calls all return ErrNotConfigured.
func NewQuiverClient(apiKey string, opts ...QuiverOption) *QuiverClient {
	c := &QuiverClient{
		baseURL: DefaultQuiverURL,
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

// Enabled reports whether an API key is configured.
func (c *QuiverClient) Enabled() bool {
	return c.apiKey != ""
}

// get performs an authenticated GET and decodes the JSON array response.
func (c *QuiverClient) get(ctx context.Context, path string, result interface{}) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return &RateLimitError{RetryAfter: time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug().
			Str("path", path).
			Msg("Quiver API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfter: time.Minute}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// fetch runs one cached feed lookup.
func fetchFeed[T any](ctx context.Context, c *QuiverClient, cacheKey, path string) ([]T, error) {
	if c.cache != nil {
		var cached []T
		if ok, _ := c.cache.Get(cacheKey, &cached); ok {
			return cached, nil
		}
	}

	var result []T
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(cacheKey, result, c.cacheTTL)
	}
	return result, nil
}

// GetCongressTrading retrieves congressional trading disclosures for a symbol.
func (c *QuiverClient) GetCongressTrading(ctx context.Context, symbol string) ([]models.CongressTrade, error) {
	return fetchFeed[models.CongressTrade](ctx, c, "congress_"+symbol, "/historical/congresstrading/"+symbol)
}

// GetInsiderTrading retrieves insider transactions for a symbol.
func (c *QuiverClient) GetInsiderTrading(ctx context.Context, symbol string) ([]models.InsiderTrade, error) {
	return fetchFeed[models.InsiderTrade](ctx, c, "insider_"+symbol, "/historical/insiders/"+symbol)
}

// GetSocialSentiment retrieves WallStreetBets mention counts for a symbol.
func (c *QuiverClient) GetSocialSentiment(ctx context.Context, symbol string) ([]models.SocialMention, error) {
	return fetchFeed[models.SocialMention](ctx, c, "wsb_"+symbol, "/historical/wallstreetbets/"+symbol)
}

// GetLobbying retrieves lobbying disclosures for a symbol.
func (c *QuiverClient) GetLobbying(ctx context.Context, symbol string) ([]models.LobbyingActivity, error) {
	return fetchFeed[models.LobbyingActivity](ctx, c, "lobbying_"+symbol, "/historical/lobbying/"+symbol)
}

// GetGovContracts retrieves government contract awards for a symbol.
func (c *QuiverClient) GetGovContracts(ctx context.Context, symbol string) ([]models.GovContract, error) {
	return fetchFeed[models.GovContract](ctx, c, "gov_contracts_"+symbol, "/historical/govcontracts/"+symbol)
}

// GetOffExchange retrieves off-exchange short volume for a symbol.
func (c *QuiverClient) GetOffExchange(ctx context.Context, symbol string) ([]models.OffExchangeVolume, error) {
	return fetchFeed[models.OffExchangeVolume](ctx, c, "offexchange_"+symbol, "/historical/offexchange/"+symbol)
}

// GetWikipediaViews retrieves Wikipedia page view counts for a symbol.
func (c *QuiverClient) GetWikipediaViews(ctx context.Context, symbol string) ([]models.WikipediaViews, error) {
	return fetchFeed[models.WikipediaViews](ctx, c, "wikipedia_"+symbol, "/historical/wikipedia/"+symbol)
}
