package app

import (
	"fmt"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/advisor/internal/common"
	"github.com/ternarybob/advisor/internal/handlers"
	"github.com/ternarybob/advisor/internal/interfaces"
	"github.com/ternarybob/advisor/internal/router"
	"github.com/ternarybob/advisor/internal/services/cache"
	"github.com/ternarybob/advisor/internal/services/marketdata"
	"github.com/ternarybob/advisor/internal/session"
	"github.com/ternarybob/advisor/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Storage
	DB    *badger.BadgerDB
	Cache interfaces.ResponseCache

	// Data services
	MarketData interfaces.MarketDataService
	AltData    interfaces.AltDataService
	Charts     interfaces.ChartService

	// Routing
	Sessions *session.Store
	Router   *router.Router

	// Background services
	Sweeper *cache.SweeperService
	Pruner  *session.Pruner

	// HTTP handlers
	AskHandler     *handlers.AskHandler
	SessionHandler *handlers.SessionHandler
	StatusHandler  *handlers.StatusHandler
	WSHandler      *handlers.WebSocketHandler

	quiver *marketdata.QuiverClient
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if err := app.initStorage(); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	app.initServices()
	app.initHandlers()

	if err := app.startBackground(); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to start background services: %w", err)
	}

	logger.Info().
		Bool("quiver_enabled", app.quiver.Enabled()).
		Str("badger_path", cfg.Storage.Badger.Path).
		Msg("Application initialization complete")

	return app, nil
}

// NewConsole initializes the application for interactive console use. The
// response cache lives in memory so no database directory is touched.
func NewConsole(cfg *common.Config, logger arbor.ILogger) *App {
	app := &App{
		Config: cfg,
		Logger: logger,
		Cache:  cache.NewMemoryCache(),
	}

	app.initServices()
	app.initHandlers()

	return app
}

func (a *App) initStorage() error {
	db, err := badger.NewBadgerDB(a.Logger, &a.Config.Storage.Badger)
	if err != nil {
		return err
	}
	a.DB = db
	a.Cache = badger.NewCacheStorage(db, a.Logger)

	a.Logger.Debug().
		Str("storage", "badger").
		Str("path", a.Config.Storage.Badger.Path).
		Msg("Storage layer initialized")
	return nil
}

func (a *App) initServices() {
	httpClient := &http.Client{Timeout: a.Config.AlphaVantage.RequestTimeout}

	a.MarketData = marketdata.NewAlphaVantageClient(
		a.Config.AlphaVantage.APIKey,
		marketdata.WithAlphaVantageURL(a.Config.AlphaVantage.BaseURL),
		marketdata.WithAlphaVantageHTTPClient(httpClient),
		marketdata.WithAlphaVantageLogger(a.Logger),
		marketdata.WithAlphaVantageRateLimit(a.Config.AlphaVantage.RateLimit),
		marketdata.WithAlphaVantageCache(a.Cache, a.Config.Cache.TTL),
	)

	a.quiver = marketdata.NewQuiverClient(
		a.Config.Quiver.APIKey,
		marketdata.WithQuiverURL(a.Config.Quiver.BaseURL),
		marketdata.WithQuiverHTTPClient(&http.Client{Timeout: a.Config.Quiver.RequestTimeout}),
		marketdata.WithQuiverLogger(a.Logger),
		marketdata.WithQuiverCache(a.Cache, a.Config.Cache.TTL),
	)
	a.AltData = a.quiver

	a.Charts = marketdata.NewTradingViewService(a.Config.TradingView.BaseURL)

	a.Sessions = session.NewStore()
	a.Router = router.New(a.MarketData, a.AltData, a.Charts, a.Logger)
}

func (a *App) initHandlers() {
	a.AskHandler = handlers.NewAskHandler(a.Router, a.Sessions, a.Logger)
	a.SessionHandler = handlers.NewSessionHandler(a.Sessions, a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.Sessions, a.quiver.Enabled(), a.Logger)
	a.WSHandler = handlers.NewWebSocketHandler(a.Router, a.Sessions, a.Logger)
}

func (a *App) startBackground() error {
	a.Sweeper = cache.NewSweeperService(a.Cache, a.Logger, a.Config.Cache.SweepSchedule)
	if err := a.Sweeper.Start(); err != nil {
		return fmt.Errorf("cache sweeper: %w", err)
	}

	a.Pruner = session.NewPruner(a.Sessions, a.Logger, a.Config.Session.PruneSchedule, a.Config.Session.MaxIdle)
	if err := a.Pruner.Start(); err != nil {
		return fmt.Errorf("session pruner: %w", err)
	}

	return nil
}

// Close shuts down background services and closes the database.
func (a *App) Close() error {
	if a.Sweeper != nil {
		a.Sweeper.Stop()
	}
	if a.Pruner != nil {
		a.Pruner.Stop()
	}

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close database")
			return err
		}
	}

	a.Logger.Info().Msg("Application shutdown complete")
	return nil
}
