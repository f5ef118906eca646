package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"p2parb/internal/adapters"
	"p2parb/internal/adapters/cache"
	"p2parb/internal/adapters/httpclient"
	"p2parb/internal/adapters/p2p"
	"p2parb/internal/adapters/postgres"
	"p2parb/internal/adapters/static"
	"p2parb/internal/api"
	"p2parb/internal/config"
	"p2parb/internal/fx"
	"p2parb/internal/opportunity"
	"p2parb/internal/opportunity/handler"
	"p2parb/internal/platform/db"
	httpserver "p2parb/internal/platform/http"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, seeding)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Optional persistence
	var rateRepo adapters.RateRepository
	if appCfg.DbServer.Enabled() {
		pool, dbErr := db.Open(startupCtx, appCfg.DbServer)
		if dbErr != nil {
			logrus.WithError(dbErr).Error("Error connecting to db")
			return dbErr
		}
		defer pool.Close()
		rateRepo = postgres.NewRateRepository(pool)
		logrus.Info("✅ Postgres connection successful")
	} else {
		logrus.Info("No db_server.host configured, rates are kept in memory only")
	}

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// FX rates
	store := fx.NewStore(appCfg.FX.ReferenceCurrency)
	rateClient := newRateClient(appCfg, baseHTTPClient)
	refresher := fx.NewRefresher(store, rateClient, rateRepo, appCfg.FX.Currencies)
	if rateRepo != nil {
		seeded, seedErr := refresher.Seed(startupCtx)
		if seedErr != nil {
			logrus.WithError(seedErr).Warn("Couldn't seed rates from db, waiting for the first refresh")
		} else {
			logrus.Infof("✅ Seeded %d rates from db", seeded)
		}
	}

	scheduler := fx.NewScheduler(refresher, appCfg.FX.PollInterval())
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Scheduler activation successful")

	// Marketplaces
	quoteClients := newQuoteClients(appCfg.Marketplaces, baseHTTPClient)
	if len(quoteClients) == 0 {
		return fmt.Errorf("no marketplace enabled")
	}
	var quoteCache adapters.QuoteCache
	if appCfg.Marketplaces.CacheTTL() > 0 {
		c, cacheErr := cache.NewQuoteCache(appCfg.Marketplaces.CacheMaxItems)
		if cacheErr != nil {
			return cacheErr
		}
		defer c.Close()
		quoteCache = c
	}
	fetcher := opportunity.NewFetcher(quoteClients, quoteCache, opportunity.FetcherConfig{
		MaxConcurrency: appCfg.Marketplaces.MaxConcurrency,
		CacheTTL:       appCfg.Marketplaces.CacheTTL(),
		Timeout:        httpTimeout,
	})

	// Engine
	policy, err := newPolicy(appCfg.Engine)
	if err != nil {
		return err
	}
	engine := opportunity.NewEngine(fetcher, store, appCfg.FX.Currencies, policy)
	validator := opportunity.NewValidator(supportedCodes(appCfg.FX))

	// Handlers and router
	router := api.NewRouter(handler.NewHandler(validator, engine))

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func newRateClient(cfg *config.AppConfig, httpClient *http.Client) adapters.RateClient {
	if cfg.FX.UseStaticRates {
		logrus.WithField("rates", cfg.FX.StaticRates).Warn("Using static fx rates, live provider disabled")
		return static.NewRateClient(cfg.FX.StaticRates)
	}
	live := httpclient.NewExchangeRateClient(
		httpClient,
		fmt.Sprintf("%s/%s/latest", cfg.ExchangeRateAPI.BaseURL, cfg.ExchangeRateAPI.APIKey),
		cfg.FX.ReferenceCurrency,
	)
	return fx.NewRetryingClient(live, cfg.FX.RetryMaxTries, 0)
}

func newQuoteClients(cfg config.Marketplaces, httpClient *http.Client) []adapters.QuoteClient {
	clients := make([]adapters.QuoteClient, 0, 2)
	if cfg.Binance.Enabled {
		clients = append(clients, p2p.NewBinanceClient(httpClient, cfg.Binance.BaseURL, cfg.Asset, cfg.Rows))
	}
	if cfg.OKX.Enabled {
		clients = append(clients, p2p.NewOKXClient(httpClient, cfg.OKX.BaseURL, cfg.Asset, cfg.Rows))
	}
	return clients
}

func newPolicy(cfg config.Engine) (opportunity.Policy, error) {
	mode, err := opportunity.ParseMode(cfg.Mode)
	if err != nil {
		return opportunity.Policy{}, fmt.Errorf("engine.mode: %w", err)
	}
	return opportunity.Policy{
		Mode:    mode,
		Capital: cfg.Capital,
		TopK:    cfg.TopK,
		Thresholds: opportunity.Thresholds{
			Executable: cfg.ExecutableThreshold,
			Watch:      cfg.WatchThreshold,
		},
		Bounds: opportunity.Bounds{Min: cfg.Plausibility.Min, Max: cfg.Plausibility.Max},
	}, nil
}

func supportedCodes(cfg config.FX) map[string]struct{} {
	codes := make(map[string]struct{}, len(cfg.Currencies))
	for _, c := range cfg.Currencies {
		if c != "" && c != cfg.ReferenceCurrency {
			codes[c] = struct{}{}
		}
	}
	return codes
}
