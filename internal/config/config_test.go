package config

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/rankks/internal/platform/logging"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("THESPORTSDB_API_KEY", "sportsdb-key")
	t.Setenv("HIGHLIGHTLY_API_KEY", "highlightly-key")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
}

func TestLoad_RequiresAPIKeys(t *testing.T) {
	t.Run("thesportsdb", func(t *testing.T) {
		setRequired(t)
		t.Setenv("THESPORTSDB_API_KEY", "  ")

		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "THESPORTSDB_API_KEY") {
			t.Fatalf("expected THESPORTSDB_API_KEY error, got %v", err)
		}
	})

	t.Run("highlightly", func(t *testing.T) {
		setRequired(t)
		t.Setenv("HIGHLIGHTLY_API_KEY", "")

		_, err := Load()
		if err == nil || !strings.Contains(err.Error(), "HIGHLIGHTLY_API_KEY") {
			t.Fatalf("expected HIGHLIGHTLY_API_KEY error, got %v", err)
		}
	})
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{
		"CACHE_TTL", "CACHE_BACKEND", "CACHE_MAX_ENTRIES", "SPORTSDB_MAX_RETRIES", "SPORTSDB_LEAGUE_DETAIL_WORKERS",
		"HISTORY_FETCH_CONCURRENCY", "UPSTREAM_TIMEOUT", "METRICS_ENABLED", "APP_LOG_LEVEL", "APP_LOG_FILE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.TheSportsDBAPIKey != "sportsdb-key" || cfg.HighlightlyAPIKey != "highlightly-key" {
		t.Fatalf("unexpected api keys")
	}
	if cfg.CacheTTL != time.Hour {
		t.Fatalf("expected CacheTTL=1h, got %s", cfg.CacheTTL)
	}
	if cfg.CacheBackend != CacheBackendMemory {
		t.Fatalf("expected memory cache backend, got %q", cfg.CacheBackend)
	}
	if cfg.CacheMaxEntries != 10000 {
		t.Fatalf("expected CacheMaxEntries=10000, got %d", cfg.CacheMaxEntries)
	}
	if cfg.SportsDBMaxRetries != 1 {
		t.Fatalf("expected SportsDBMaxRetries=1, got %d", cfg.SportsDBMaxRetries)
	}
	if cfg.SportsDBLeagueDetailWorkers != 8 {
		t.Fatalf("expected SportsDBLeagueDetailWorkers=8, got %d", cfg.SportsDBLeagueDetailWorkers)
	}
	if cfg.HistoryFetchConcurrency != 0 {
		t.Fatalf("expected unbounded history fetches by default, got %d", cfg.HistoryFetchConcurrency)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected MetricsEnabled=true by default")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.LogFile != "" {
		t.Fatalf("expected no log file by default, got %q", cfg.LogFile)
	}
}

func TestLoad_CacheBackend(t *testing.T) {
	t.Run("redis requires url", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CACHE_BACKEND", "redis")
		t.Setenv("REDIS_URL", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when CACHE_BACKEND=redis without REDIS_URL")
		}
	})

	t.Run("redis with url", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CACHE_BACKEND", " Redis ")
		t.Setenv("REDIS_URL", "redis://localhost:6379/0")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.CacheBackend != CacheBackendRedis {
			t.Fatalf("expected redis backend, got %q", cfg.CacheBackend)
		}
	})

	t.Run("unknown backend", func(t *testing.T) {
		setRequired(t)
		t.Setenv("CACHE_BACKEND", "memcached")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown CACHE_BACKEND")
		}
	})
}

func TestLoad_NumericValidation(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"CACHE_TTL", "0s"},
		{"CACHE_TTL", "soon"},
		{"SPORTSDB_MAX_RETRIES", "-1"},
		{"CACHE_MAX_ENTRIES", "0"},
		{"SPORTSDB_LEAGUE_DETAIL_WORKERS", "0"},
		{"HISTORY_FETCH_CONCURRENCY", "many"},
		{"UPSTREAM_RETRY_BACKOFF", "-1s"},
		{"CIRCUIT_FAILURE_COUNT", "0"},
		{"METRICS_ENABLED", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Fatalf("expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestLoad_LogFileSettings(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_LOG_FILE", "/var/log/rankks/app.log")
	t.Setenv("APP_LOG_MAX_SIZE_MB", "50")
	t.Setenv("APP_LOG_MAX_BACKUPS", "3")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogFile != "/var/log/rankks/app.log" || cfg.LogMaxSizeMB != 50 || cfg.LogMaxBackups != 3 {
		t.Fatalf("unexpected log file settings: %+v", cfg)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	setRequired(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "foo=bar, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected uptrace dsn: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	setRequired(t)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_SERVICE_NAME", "rankks-web-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "rankks-web-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsParsing(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[0] != "https://a.example.com" || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}
