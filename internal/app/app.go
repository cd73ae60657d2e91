// Package app wires configuration, clients, services, and storage together.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harmonk/papertrade/internal/clients/yahoo"
	"github.com/harmonk/papertrade/internal/common"
	"github.com/harmonk/papertrade/internal/interfaces"
	"github.com/harmonk/papertrade/internal/services/ledger"
	"github.com/harmonk/papertrade/internal/services/quote"
	"github.com/harmonk/papertrade/internal/services/watchlist"
	"github.com/harmonk/papertrade/internal/storage/memory"
)

// App holds all initialized services, clients, and the session store.
// It is the shared core behind cmd/papertrade-server.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	Sessions         interfaces.SessionStore
	MarketClient     interfaces.MarketDataClient
	QuoteService     interfaces.QuoteService
	LedgerService    interfaces.LedgerService
	WatchlistService interfaces.WatchlistService
	StartupTime      time.Time

	janitorCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, the market data client, and all
// services. configPath may be empty, in which case the default resolution
// logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Resolve config path: explicit arg, PAPERTRADE_CONFIG, binary dir, dev fallback
	if configPath == "" {
		configPath = os.Getenv("PAPERTRADE_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "papertrade.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/papertrade.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	marketClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	sessions := memory.NewSessionStore(config.Account.GetStartingCash(), logger)

	quoteService := quote.NewService(marketClient, config.Market.GetQuoteTTL(), logger)
	ledgerService := ledger.NewService(logger)
	watchlistService := watchlist.NewService(logger)

	a := &App{
		Config:           config,
		Logger:           logger,
		Sessions:         sessions,
		MarketClient:     marketClient,
		QuoteService:     quoteService,
		LedgerService:    ledgerService,
		WatchlistService: watchlistService,
		StartupTime:      startupStart,
	}

	logger.Info().
		Str("starting_cash", config.Account.GetStartingCash().StringFixed(2)).
		Dur("startup", time.Since(startupStart)).
		Msg("App initialized")

	return a, nil
}

// Close releases resources held by the App.
func (a *App) Close() {
	if a.janitorCancel != nil {
		a.janitorCancel()
		a.janitorCancel = nil
	}
}

// StartSessionJanitor launches the background goroutine that purges idle
// sessions on a fixed interval.
func (a *App) StartSessionJanitor() {
	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	a.janitorCancel = janitorCancel
	go startSessionJanitor(janitorCtx, a.Sessions, a.Config.Auth.GetSessionIdle(), a.Logger)
}
