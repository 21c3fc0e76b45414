package highlightly

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/metrics"
	"github.com/riskibarqy/rankks/internal/platform/cache"
	"github.com/riskibarqy/rankks/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, mutate func(*ClientConfig)) *Client {
	cfg := ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		APIKey:     "rapid-key",
		Logger:     logging.NewNop(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewClient(cfg)
}

func TestHostForSport(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "football-highlights-api.p.rapidapi.com", HostForSport(sport.Soccer))
	assert.Equal(t, "basketball-highlights-api.p.rapidapi.com", HostForSport(sport.Basketball))
	assert.Equal(t, "sport-highlights-api.p.rapidapi.com", HostForSport(sport.Tennis))
	assert.Equal(t, "sport-highlights-api.p.rapidapi.com", HostForSport("Curling"))
}

func TestClient_ListHighlights_SendsQueryAndHeaders(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/highlights", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "4328", q.Get("leagueId"))
		assert.Equal(t, "2022-01-01", q.Get("fromDate"))
		assert.Equal(t, "2023-12-31", q.Get("toDate"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "football-highlights-api.p.rapidapi.com", r.Header.Get("x-rapidapi-host"))
		assert.Equal(t, "rapid-key", r.Header.Get("x-rapidapi-key"))

		_, _ = fmt.Fprint(w, `{"data":[
			{"id":101,"title":" Arsenal 2-0 Chelsea ","videoUrl":"https://v/1.mp4","thumbnail":"https://t/1.jpg","date":"2023-04-01"},
			{"id":"abc","title":"City 1-1 Spurs","url":"https://v/2.mp4","imgUrl":"https://t/2.jpg","matchDate":"2023-04-02"},
			{"id":null,"title":"No media"}
		]}`)
	}))
	t.Cleanup(srv.Close)

	got := newTestClient(srv, nil).ListHighlights(context.Background(), sport.Soccer, "4328", "2022-2023")
	require.Len(t, got, 3)
	assert.Equal(t, "101", got[0].ID)
	assert.Equal(t, "Arsenal 2-0 Chelsea", got[0].Title)
	assert.Equal(t, "https://v/1.mp4", got[0].VideoURL)
	assert.Equal(t, "https://t/1.jpg", got[0].ThumbnailURL)
	assert.Equal(t, "abc", got[1].ID)
	assert.Equal(t, "https://v/2.mp4", got[1].VideoURL)
	assert.Equal(t, "https://t/2.jpg", got[1].ThumbnailURL)
	assert.Equal(t, "2023-04-02", got[1].Date)
	assert.Empty(t, got[2].ID)
	assert.Empty(t, got[2].ThumbnailURL)
}

func TestClient_ListHighlights_FailuresYieldEmpty(t *testing.T) {
	t.Parallel()

	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		"forbidden":    func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusForbidden) },
		"empty body":   func(http.ResponseWriter, *http.Request) {},
		"bad json":     func(w http.ResponseWriter, _ *http.Request) { _, _ = fmt.Fprint(w, `{"data":`) },
		"no data":      func(w http.ResponseWriter, _ *http.Request) { _, _ = fmt.Fprint(w, `{"message":"quota"}`) },
	}
	for name, handler := range cases {
		handler := handler
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(handler)
			t.Cleanup(srv.Close)

			got := newTestClient(srv, nil).ListHighlights(context.Background(), sport.Tennis, "4385", "2024")
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestClient_ListHighlights_Cached(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = fmt.Fprint(w, `{"data":[{"id":1,"title":"clip","videoUrl":"https://v/1.mp4"}]}`)
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv, func(cfg *ClientConfig) {
		cfg.Cache = cache.NewStore(time.Hour)
	})
	ctx := context.Background()

	first := client.ListHighlights(ctx, sport.Basketball, "4387", "2024")
	second := client.ListHighlights(ctx, sport.Basketball, "4387", "2024")
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), calls.Load())

	client.ListHighlights(ctx, sport.Basketball, "4387", "2023")
	assert.Equal(t, int32(2), calls.Load())
}

func TestClient_ListHighlights_EmptyLeagueSkipsNetwork(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { calls.Add(1) }))
	t.Cleanup(srv.Close)

	assert.Empty(t, newTestClient(srv, nil).ListHighlights(context.Background(), sport.Soccer, "", "2024"))
	assert.Equal(t, int32(0), calls.Load())
}

func TestClient_ListHighlights_LiteralEmptyIsAbsence(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, ` "" `)
	}))
	t.Cleanup(srv.Close)

	recorder := metrics.NewRecorder("rankks")
	got := newTestClient(srv, func(cfg *ClientConfig) { cfg.Metrics = recorder }).
		ListHighlights(context.Background(), sport.Soccer, "4328", "2023-2024")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	raw, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `rankks_upstream_requests_total{outcome="absent",provider="highlightly"} 1`)
	assert.NotContains(t, string(raw), `outcome="decode_error"`)
}

func TestClient_ListHighlights_CacheKeepsSportsApart(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = fmt.Fprintf(w, `{"data":[{"id":1,"title":%q}]}`, r.Header.Get("x-rapidapi-host"))
	}))
	t.Cleanup(srv.Close)

	client := newTestClient(srv, func(cfg *ClientConfig) {
		cfg.Cache = cache.NewStore(time.Hour)
	})
	ctx := context.Background()

	soccer := client.ListHighlights(ctx, sport.Soccer, "100", "2024")
	basketball := client.ListHighlights(ctx, sport.Basketball, "100", "2024")
	require.Len(t, soccer, 1)
	require.Len(t, basketball, 1)
	assert.Equal(t, "football-highlights-api.p.rapidapi.com", soccer[0].Title)
	assert.Equal(t, "basketball-highlights-api.p.rapidapi.com", basketball[0].Title)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAbbreviateBody_KeepsRunesWhole(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("x", maxLoggedBodyBytes-2) + "日本"
	got := abbreviateBody([]byte(body))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", maxLoggedBodyBytes-2)+"...", got)
}
