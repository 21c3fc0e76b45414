package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/rankks/external/highlightly"
	"github.com/riskibarqy/rankks/external/thesportsdb"
	"github.com/riskibarqy/rankks/internal/config"
	"github.com/riskibarqy/rankks/internal/interfaces/web"
	"github.com/riskibarqy/rankks/internal/metrics"
	"github.com/riskibarqy/rankks/internal/platform/cache"
	"github.com/riskibarqy/rankks/internal/platform/logging"
	"github.com/riskibarqy/rankks/internal/platform/resilience"
	"github.com/riskibarqy/rankks/internal/usecase"
)

const (
	metricsNamespace = "rankks"
	redisPingTimeout = 2 * time.Second
	maxSweepInterval = time.Minute
)

// NewHTTPServer wires the upstream clients, services and router. The returned
// cleanup releases the cache backend and must run after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	recorder := metrics.NewRecorder(metricsNamespace)

	backend, cleanup, err := newCacheBackend(cfg, logger, recorder)
	if err != nil {
		return nil, nil, err
	}

	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.CircuitEnabled,
		FailureThreshold: cfg.CircuitFailureCount,
		OpenTimeout:      cfg.CircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.CircuitHalfOpenMaxReq,
	}
	upstreamHTTP := &http.Client{Timeout: cfg.UpstreamTimeout}

	sportsDB := thesportsdb.NewClient(thesportsdb.ClientConfig{
		HTTPClient:          upstreamHTTP,
		BaseURL:             cfg.TheSportsDBBaseURL,
		APIKey:              cfg.TheSportsDBAPIKey,
		Timeout:             cfg.UpstreamTimeout,
		MaxRetries:          cfg.SportsDBMaxRetries,
		RetryBackoff:        cfg.UpstreamRetryBackoff,
		LeagueDetailWorkers: cfg.SportsDBLeagueDetailWorkers,
		Cache:               backend,
		Logger:              logger,
		Metrics:             recorder,
		CircuitBreaker:      breaker,
	})
	highlights := highlightly.NewClient(highlightly.ClientConfig{
		HTTPClient:     upstreamHTTP,
		APIKey:         cfg.HighlightlyAPIKey,
		Limit:          cfg.HighlightsLimit,
		Timeout:        cfg.UpstreamTimeout,
		RetryBackoff:   cfg.UpstreamRetryBackoff,
		Cache:          backend,
		Logger:         logger,
		Metrics:        recorder,
		CircuitBreaker: breaker,
	})

	leagueSvc := usecase.NewLeagueService(sportsDB, sportsDB, sportsDB, sportsDB, highlights)
	standingsSvc := usecase.NewStandingsService(sportsDB, sportsDB, cfg.HistoryFetchConcurrency)
	navigation := usecase.NewNavigationService(sportsDB, sportsDB)
	pageSvc := usecase.NewLeaguePageService(sportsDB, sportsDB, sportsDB, sportsDB, highlights, standingsSvc, navigation)

	renderer, err := web.NewRenderer()
	if err != nil {
		_ = cleanup()
		return nil, nil, fmt.Errorf("build renderer: %w", err)
	}

	handler := web.NewHandler(leagueSvc, standingsSvc, pageSvc, navigation, renderer, logger)
	router := web.NewRouter(handler, logger, web.RouterOptions{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            recorder,
		MetricsEnabled:     cfg.MetricsEnabled,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return server, cleanup, nil
}

func newCacheBackend(cfg config.Config, logger *logging.Logger, recorder *metrics.Recorder) (cache.Backend, func() error, error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		store, err := cache.NewRedisStore(cache.RedisConfig{
			URL:         cfg.RedisURL,
			TTL:         cfg.CacheTTL,
			DialTimeout: redisPingTimeout,
			Logger:      logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build redis cache: %w", err)
		}
		store.WithObserver(recorder)

		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			// Lookups fall back to the loader while redis is down.
			logger.Warn("redis cache unreachable at startup", "error", err)
		}
		return store, store.Close, nil
	case config.CacheBackendMemory, "":
		store := cache.NewStore(cfg.CacheTTL).
			WithObserver(recorder).
			WithMaxEntries(cfg.CacheMaxEntries)
		stop := store.StartSweeper(min(cfg.CacheTTL, maxSweepInterval))
		return store, func() error { stop(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}
