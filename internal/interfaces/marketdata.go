// -----------------------------------------------------------------------
// Collaborator contracts consumed by the question router. The router never
// performs network I/O itself; it depends on these and maps any error into
// an error-tagged response.
// -----------------------------------------------------------------------

package interfaces

import (
	"context"

	"github.com/ternarybob/advisor/internal/models"
)

// MarketDataService provides quotes, fundamentals and news for a symbol.
type MarketDataService interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetOverview(ctx context.Context, symbol string) (*models.Overview, error)
	GetNews(ctx context.Context, symbol string) ([]models.NewsItem, error)
}

// AltDataService provides alternative data feeds (congressional and insider
// trading, social sentiment, lobbying, contracts, short volume, page views).
type AltDataService interface {
	GetCongressTrading(ctx context.Context, symbol string) ([]models.CongressTrade, error)
	GetInsiderTrading(ctx context.Context, symbol string) ([]models.InsiderTrade, error)
	GetSocialSentiment(ctx context.Context, symbol string) ([]models.SocialMention, error)
	GetLobbying(ctx context.Context, symbol string) ([]models.LobbyingActivity, error)
	GetGovContracts(ctx context.Context, symbol string) ([]models.GovContract, error)
	GetOffExchange(ctx context.Context, symbol string) ([]models.OffExchangeVolume, error)
	GetWikipediaViews(ctx context.Context, symbol string) ([]models.WikipediaViews, error)
}

// ChartService builds external chart URLs for a symbol.
type ChartService interface {
	ChartURL(symbol, timeframe string) string
}
