package highlightly

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/rankks/internal/domain/highlight"
	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/metrics"
	"github.com/riskibarqy/rankks/internal/platform/cache"
	"github.com/riskibarqy/rankks/internal/platform/logging"
	"github.com/riskibarqy/rankks/internal/platform/resilience"
)

const (
	ProviderName       = "highlightly"
	defaultLimit       = 5
	maxBodyBytes       = 2 << 20
	maxLoggedBodyBytes = 240
	highlightPath      = "/highlights"

	footballHost   = "football-highlights-api.p.rapidapi.com"
	basketballHost = "basketball-highlights-api.p.rapidapi.com"
	sportHost      = "sport-highlights-api.p.rapidapi.com"
)

var (
	errTransient  = crerr.New("highlightly transient failure")
	errHTTPStatus = crerr.New("highlightly http status")
	// literalEmpty is the two-character body sent for "no data".
	literalEmpty = []byte(`""`)
)

type ClientConfig struct {
	HTTPClient *http.Client
	// BaseURL overrides the https://{host} prefix, mainly for tests. The
	// x-rapidapi-host header still carries the per-sport host.
	BaseURL        string
	APIKey         string
	Limit          int
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	Cache          cache.Backend
	Logger         *logging.Logger
	Metrics        *metrics.Recorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	limit          int
	retry          resilience.RetryPolicy
	cache          cache.Backend
	logger         *logging.Logger
	metrics        *metrics.Recorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var listener resilience.StateListener
	if cfg.Metrics != nil {
		listener = cfg.Metrics.CircuitStateChanged
	}
	breakerCfg := cfg.CircuitBreaker.WithDefaults()

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		limit:          limit,
		retry:          resilience.RetryPolicy{MaxRetries: max(cfg.MaxRetries, 0), Step: max(cfg.RetryBackoff, 0)},
		cache:          cfg.Cache,
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        resilience.NewNamedCircuitBreaker(ProviderName, breakerCfg, listener),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// HostForSport maps a sport to its RapidAPI host.
func HostForSport(sportName string) string {
	switch sportName {
	case sport.Soccer:
		return footballHost
	case sport.Basketball:
		return basketballHost
	default:
		return sportHost
	}
}

// ListHighlights returns recent clips for a league within the season's
// calendar range. It never fails: upstream problems yield an empty slice.
func (c *Client) ListHighlights(ctx context.Context, sportName, leagueID, seasonLabel string) []highlight.Highlight {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return []highlight.Highlight{}
	}

	host := HostForSport(sportName)
	fromDate, toDate := season.DateRange(seasonLabel)
	query := url.Values{}
	query.Set("leagueId", leagueID)
	query.Set("fromDate", fromDate)
	query.Set("toDate", toDate)
	query.Set("limit", strconv.Itoa(c.limit))

	base := c.baseURL
	if base == "" {
		base = "https://" + host
	}
	target := highlightPath + "?" + query.Encode()
	fullURL := base + target

	raw, err := c.load(ctx, host, host+target, fullURL)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.WarnContext(ctx, "highlightly request failed", "url", fullURL, "error", err)
		}
		return []highlight.Highlight{}
	}
	if isAbsent(raw) {
		return []highlight.Highlight{}
	}

	var envelope highlightsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		c.metrics.RecordUpstream(ProviderName, metrics.OutcomeDecodeError, 0)
		c.logger.WarnContext(ctx, "decode highlightly payload failed", "url", fullURL, "error", err)
		return []highlight.Highlight{}
	}
	out := make([]highlight.Highlight, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		out = append(out, item.toDomain())
	}
	return out
}

// load keys the cache by host and target so an overridden base URL still
// keeps sports apart.
func (c *Client) load(ctx context.Context, host, key, fullURL string) ([]byte, error) {
	if c.cache == nil {
		return c.request(ctx, host, fullURL)
	}
	out, err := c.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return c.request(ctx, host, fullURL)
	})
	if err != nil {
		return nil, err
	}
	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected cached payload type %T", out)
	}
	return raw, nil
}

func (c *Client) request(ctx context.Context, host, fullURL string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.metrics.RecordUpstream(ProviderName, metrics.OutcomeRejected, 0)
			return nil, crerr.Wrapf(err, "%s breaker state=%s", c.breaker.Name(), c.breaker.State())
		}
	}

	started := time.Now()
	var body []byte
	err := c.retry.Do(ctx, isTransient, func(int) error {
		raw, reqErr := c.executeRequest(ctx, host, fullURL)
		if reqErr != nil {
			return reqErr
		}
		body = raw
		return nil
	})
	if c.circuitEnabled {
		switch {
		case ctx.Err() != nil:
			c.breaker.RecordAbort()
		case isTransient(err):
			c.breaker.RecordFailure()
		default:
			c.breaker.RecordSuccess()
		}
	}

	elapsed := time.Since(started)
	switch {
	case err == nil && isAbsent(body):
		c.metrics.RecordUpstream(ProviderName, metrics.OutcomeAbsent, elapsed)
	case err == nil:
		c.metrics.RecordUpstream(ProviderName, metrics.OutcomeOK, elapsed)
	case crerr.Is(err, errHTTPStatus):
		c.metrics.RecordUpstream(ProviderName, metrics.OutcomeHTTPError, elapsed)
	default:
		c.metrics.RecordUpstream(ProviderName, metrics.OutcomeTransport, elapsed)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) executeRequest(ctx context.Context, host, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-rapidapi-host", host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Mark(crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errHTTPStatus)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			statusErr = crerr.Mark(statusErr, errTransient)
		}
		return nil, statusErr
	}
	return raw, nil
}

func isAbsent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, literalEmpty)
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxLoggedBodyBytes {
		return text
	}
	cut := maxLoggedBodyBytes
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
