package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rahmatrdn/uclboard/internal/backend"
	"github.com/rahmatrdn/uclboard/internal/config"
	"github.com/rahmatrdn/uclboard/internal/interfaces/web"
	"github.com/rahmatrdn/uclboard/internal/platform/cache"
	"github.com/rahmatrdn/uclboard/internal/platform/logging"
	"github.com/rahmatrdn/uclboard/internal/platform/resilience"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	clientLogger := logging.NewJSON(cfg.LogLevel).With("component", "stats-backend")

	statsClient := backend.NewClient(backend.ClientConfig{
		HTTPClient: &http.Client{
			Timeout:   cfg.StatsTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		BaseURL:    cfg.StatsBaseURL,
		Timeout:    cfg.StatsTimeout,
		MaxRetries: cfg.StatsMaxRetries,
		Logger:     clientLogger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.StatsCircuitEnabled,
			FailureThreshold: cfg.StatsCircuitFailureCount,
			OpenTimeout:      cfg.StatsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsCircuitHalfOpenMaxReq,
		},
	})

	var lookupCache *cache.Store
	if cfg.CacheEnabled {
		lookupCache = cache.New(cfg.CacheTTL)
	}

	usecaseLogger := logging.NewJSON(cfg.LogLevel).With("component", "usecase")
	browseSvc := usecase.NewBrowseService(statsClient, lookupCache, usecaseLogger)
	leaderboardSvc := usecase.NewLeaderboardService(statsClient, usecaseLogger)
	adminSvc := usecase.NewAdminService(statsClient, statsClient, usecaseLogger, browseSvc.InvalidateLookups)
	sessionSvc := usecase.NewSessionService(statsClient, usecaseLogger)

	handler := web.NewHandler(
		browseSvc,
		leaderboardSvc,
		adminSvc,
		sessionSvc,
		cfg.LoginURL,
		cfg.SessionCookieName,
		logger,
	)
	router := web.NewRouter(handler, sessionSvc, logger, web.RouterConfig{
		LoginURL:           cfg.LoginURL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AssetsDir:          "assets",
		AdminRatePerSec:    cfg.AdminRateLimitPerSecond,
		AdminRateBurst:     cfg.AdminRateLimitBurst,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
