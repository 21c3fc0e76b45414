package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/rankks/internal/platform/logging"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	CORSAllowedOrigins []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration

	TheSportsDBAPIKey           string
	TheSportsDBBaseURL          string
	HighlightlyAPIKey           string
	HighlightsLimit             int
	UpstreamTimeout             time.Duration
	SportsDBMaxRetries          int
	UpstreamRetryBackoff        time.Duration
	SportsDBLeagueDetailWorkers int
	HistoryFetchConcurrency     int
	CircuitEnabled              bool
	CircuitFailureCount         int
	CircuitOpenTimeout          time.Duration
	CircuitHalfOpenMaxReq       int

	CacheBackend    string
	CacheTTL        time.Duration
	CacheMaxEntries int
	RedisURL        string

	MetricsEnabled bool

	LogLevel      logging.Level
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	sportsDBKey := strings.TrimSpace(os.Getenv("THESPORTSDB_API_KEY"))
	if sportsDBKey == "" {
		return Config{}, fmt.Errorf("THESPORTSDB_API_KEY is required")
	}
	highlightlyKey := strings.TrimSpace(os.Getenv("HIGHLIGHTLY_API_KEY"))
	if highlightlyKey == "" {
		return Config{}, fmt.Errorf("HIGHLIGHTLY_API_KEY is required")
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "rankks-web"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		TheSportsDBAPIKey:  sportsDBKey,
		TheSportsDBBaseURL: strings.TrimSpace(getEnv("THESPORTSDB_BASE_URL", "https://www.thesportsdb.com/api/v1/json")),
		HighlightlyAPIKey:  highlightlyKey,
		RedisURL:           strings.TrimSpace(getEnv("REDIS_URL", "")),
		LogFile:            strings.TrimSpace(getEnv("APP_LOG_FILE", "")),
		PprofAddr:          strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		UptraceDSN:         strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		LogLevel:           logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	durations := []struct {
		key      string
		fallback string
		dst      *time.Duration
	}{
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"APP_WRITE_TIMEOUT", "30s", &cfg.WriteTimeout},
		{"APP_SHUTDOWN_TIMEOUT", "10s", &cfg.ShutdownTimeout},
		{"UPSTREAM_TIMEOUT", "10s", &cfg.UpstreamTimeout},
		{"CACHE_TTL", "1h", &cfg.CacheTTL},
		{"CIRCUIT_OPEN_TIMEOUT", "15s", &cfg.CircuitOpenTimeout},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, item := range durations {
		value, err := time.ParseDuration(getEnv(item.key, item.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", item.key, err)
		}
		if value <= 0 {
			return Config{}, fmt.Errorf("%s must be > 0", item.key)
		}
		*item.dst = value
	}

	// Zero backoff retries immediately.
	retryBackoff, err := time.ParseDuration(getEnv("UPSTREAM_RETRY_BACKOFF", "300ms"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPSTREAM_RETRY_BACKOFF: %w", err)
	}
	if retryBackoff < 0 {
		return Config{}, fmt.Errorf("UPSTREAM_RETRY_BACKOFF must be >= 0")
	}
	cfg.UpstreamRetryBackoff = retryBackoff

	ints := []struct {
		key      string
		fallback int
		min      int
		dst      *int
	}{
		{"SPORTSDB_MAX_RETRIES", 1, 0, &cfg.SportsDBMaxRetries},
		{"SPORTSDB_LEAGUE_DETAIL_WORKERS", 8, 1, &cfg.SportsDBLeagueDetailWorkers},
		{"HISTORY_FETCH_CONCURRENCY", 0, 0, &cfg.HistoryFetchConcurrency},
		{"HIGHLIGHTS_LIMIT", 5, 1, &cfg.HighlightsLimit},
		{"CACHE_MAX_ENTRIES", 10000, 1, &cfg.CacheMaxEntries},
		{"CIRCUIT_FAILURE_COUNT", 5, 1, &cfg.CircuitFailureCount},
		{"CIRCUIT_HALF_OPEN_MAX_REQ", 2, 1, &cfg.CircuitHalfOpenMaxReq},
		{"APP_LOG_MAX_SIZE_MB", 100, 1, &cfg.LogMaxSizeMB},
		{"APP_LOG_MAX_BACKUPS", 5, 0, &cfg.LogMaxBackups},
		{"APP_LOG_MAX_AGE_DAYS", 28, 0, &cfg.LogMaxAgeDays},
	}
	for _, item := range ints {
		value, err := getEnvAsInt(item.key, item.fallback)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", item.key, err)
		}
		if value < item.min {
			return Config{}, fmt.Errorf("%s must be >= %d", item.key, item.min)
		}
		*item.dst = value
	}

	bools := []struct {
		key      string
		fallback string
		dst      *bool
	}{
		{"CIRCUIT_ENABLED", "true", &cfg.CircuitEnabled},
		{"METRICS_ENABLED", "true", &cfg.MetricsEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
	}
	for _, item := range bools {
		value, err := strconv.ParseBool(getEnv(item.key, item.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", item.key, err)
		}
		*item.dst = value
	}

	cfg.CacheBackend, err = parseCacheBackend(getEnv("CACHE_BACKEND", CacheBackendMemory))
	if err != nil {
		return Config{}, err
	}
	if cfg.CacheBackend == CacheBackendRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
	}

	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	cfg.PyroscopeBasicAuthUser = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", ""))
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseCacheBackend(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case CacheBackendMemory, CacheBackendRedis:
		return value, nil
	default:
		return "", fmt.Errorf("invalid CACHE_BACKEND %q: valid values are %s, %s", v, CacheBackendMemory, CacheBackendRedis)
	}
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
