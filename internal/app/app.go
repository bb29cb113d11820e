package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currconv/internal/adapters"
	"currconv/internal/adapters/cache"
	"currconv/internal/adapters/freecurrency"
	"currconv/internal/adapters/postgres"
	"currconv/internal/api"
	"currconv/internal/api/handler"
	"currconv/internal/catalog"
	"currconv/internal/config"
	"currconv/internal/conversion"
	"currconv/internal/history"
	"currconv/internal/platform/db"
	httpserver "currconv/internal/platform/http"

	"github.com/sirupsen/logrus"
)

// Run wires the application components and starts the HTTP server.
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	cfgLevel := appCfg.Logging.Level
	if parsedLvl, parseErr := logrus.ParseLevel(cfgLevel); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Provider client (bounded timeout, single redirect follow)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 5 * time.Second
	}
	rateProvider := freecurrency.NewClient(
		freecurrency.NewHTTPClient(httpTimeout),
		appCfg.Provider.BaseURL,
		appCfg.Provider.APIKey,
	)

	// Catalog: cached snapshot plus a background refresh job
	refreshInterval := time.Duration(appCfg.Catalog.RefreshMinutes) * time.Minute
	if refreshInterval <= 0 {
		refreshInterval = 15 * time.Minute
	}
	catalogCache, err := cache.NewCatalogCache(refreshInterval)
	if err != nil {
		return err
	}
	defer catalogCache.Close()
	catalogService := catalog.NewService(rateProvider, catalogCache)

	catalogScheduler := catalog.NewScheduler(catalogService, refreshInterval)
	defer func() {
		if shutDownErr := catalogScheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Catalog scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := catalogScheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start catalog scheduler")
		return startErr
	}
	logrus.Info("✅ Catalog scheduler activation successful")

	// Conversion service
	conversionService := conversion.NewService(rateProvider)

	// History: structured primary tier opened lazily on first use, flat
	// file fallback. A missing DB config means the primary capability is
	// absent and the store runs on the fallback alone.
	var openPrimary history.OpenPrimaryFunc
	if appCfg.DbServer.Enabled() {
		dbCfg := appCfg.DbServer
		openPrimary = func(openCtx context.Context) (adapters.HistoryRepository, error) {
			connectCtx, cancel := context.WithTimeout(openCtx, 10*time.Second)
			defer cancel()

			if migrateErr := db.MigrateUp(connectCtx, dbCfg.GetConnectionStr()); migrateErr != nil {
				return nil, migrateErr
			}
			pool, poolErr := db.CreatePoolAndPing(connectCtx, dbCfg)
			if poolErr != nil {
				return nil, poolErr
			}
			logrus.Info("✅ Postgres connection successful")
			return postgres.NewHistoryRepository(pool), nil
		}
	}
	historyStore := history.NewTieredStore(openPrimary, history.NewFileStore(appCfg.History.FallbackFile))
	historyService := history.NewService(historyStore)

	// Handlers and router
	h := handler.NewHandler(conversionService, catalogService, historyService)
	router := api.NewRouter(h, appCfg.CORS.Origins())

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
