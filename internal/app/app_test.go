package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/rankks/internal/config"
	"github.com/riskibarqy/rankks/internal/platform/cache"
	"github.com/riskibarqy/rankks/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.Config {
	return config.Config{
		HTTPAddr:           ":0",
		TheSportsDBAPIKey:  "key",
		TheSportsDBBaseURL: "http://127.0.0.1:1",
		HighlightlyAPIKey:  "key",
		HighlightsLimit:    5,
		UpstreamTimeout:    time.Second,
		CacheBackend:       config.CacheBackendMemory,
		CacheTTL:           time.Minute,
		MetricsEnabled:     true,
		ReadTimeout:        5 * time.Second,
		WriteTimeout:       5 * time.Second,
	}
}

func TestNewHTTPServer_ServesHealthz(t *testing.T) {
	t.Parallel()

	srv, cleanup, err := NewHTTPServer(testConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadTimeout)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHTTPServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.HTTPAddr = ""
	_, _, err := NewHTTPServer(cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewCacheBackend(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	backend, cleanup, err := newCacheBackend(cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.Store{}, backend)
	assert.NoError(t, cleanup())

	cfg.CacheBackend = config.CacheBackendRedis
	cfg.RedisURL = "redis://127.0.0.1:1/0"
	backend, cleanup, err = newCacheBackend(cfg, logging.NewNop(), nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.RedisStore{}, backend)
	assert.NoError(t, cleanup())

	cfg.RedisURL = "not a url"
	_, _, err = newCacheBackend(cfg, logging.NewNop(), nil)
	require.Error(t, err)

	cfg.CacheBackend = "memcached"
	_, _, err = newCacheBackend(cfg, logging.NewNop(), nil)
	require.Error(t, err)
}
