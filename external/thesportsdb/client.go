package thesportsdb

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/domain/standing"
	"github.com/riskibarqy/rankks/internal/domain/team"
	"github.com/riskibarqy/rankks/internal/metrics"
	"github.com/riskibarqy/rankks/internal/platform/cache"
	"github.com/riskibarqy/rankks/internal/platform/logging"
	"github.com/riskibarqy/rankks/internal/platform/resilience"
)

const (
	ProviderName         = "thesportsdb"
	defaultBaseURL       = "https://www.thesportsdb.com/api/v1/json"
	defaultDetailWorkers = 8
	maxBodyBytes         = 6 << 20
	maxLoggedBodyBytes   = 240
)

var (
	errTransient  = crerr.New("thesportsdb transient failure")
	errHTTPStatus = crerr.New("thesportsdb http status")
	// literalEmpty is the two-character body the provider sends for "no data".
	literalEmpty = []byte(`""`)
)

type ClientConfig struct {
	HTTPClient          *http.Client
	BaseURL             string
	APIKey              string
	Timeout             time.Duration
	MaxRetries          int
	RetryBackoff        time.Duration
	LeagueDetailWorkers int
	Cache               cache.Backend
	Logger              *logging.Logger
	Metrics             *metrics.Recorder
	CircuitBreaker      resilience.CircuitBreakerConfig
}

// Client reads TheSportsDB v1 JSON API. Every exported method absorbs
// upstream failures: they are logged and reported as absence.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	retry          resilience.RetryPolicy
	detailWorkers  int
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

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	workers := cfg.LeagueDetailWorkers
	if workers <= 0 {
		workers = defaultDetailWorkers
	}
	retryBackoff := cfg.RetryBackoff
	if retryBackoff < 0 {
		retryBackoff = 0
	}

	var listener resilience.StateListener
	if cfg.Metrics != nil {
		listener = cfg.Metrics.CircuitStateChanged
	}
	breakerCfg := cfg.CircuitBreaker.WithDefaults()

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		retry:          resilience.RetryPolicy{MaxRetries: max(cfg.MaxRetries, 0), Step: retryBackoff},
		detailWorkers:  workers,
		cache:          cfg.Cache,
		logger:         logger,
		metrics:        cfg.Metrics,
		breaker:        resilience.NewNamedCircuitBreaker(ProviderName, breakerCfg, listener),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) ListSports(ctx context.Context) []sport.Sport {
	var envelope sportsEnvelope
	if !c.fetch(ctx, "all_sports.php", &envelope) {
		return []sport.Sport{}
	}
	out := make([]sport.Sport, 0, len(envelope.Sports))
	for _, item := range envelope.Sports {
		out = append(out, item.toDomain())
	}
	return out
}

func (c *Client) ListLeagues(ctx context.Context) []league.League {
	var envelope leaguesEnvelope
	if !c.fetch(ctx, "all_leagues.php", &envelope) {
		return []league.League{}
	}
	out := make([]league.League, 0, len(envelope.Leagues))
	for _, item := range envelope.Leagues {
		out = append(out, item.toDomain())
	}
	return out
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (league.League, bool) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, false
	}

	var envelope leaguesEnvelope
	if !c.fetch(ctx, endpoint("lookupleague.php", "id", leagueID), &envelope) {
		return league.League{}, false
	}
	if len(envelope.Leagues) == 0 {
		return league.League{}, false
	}
	return envelope.Leagues[0].toDomain(), true
}

// EnrichLeagues replaces each summary with its detail record. Lookups run on a
// bounded worker pool; a failed lookup keeps the summary. The result has the
// same length and order as the input.
func (c *Client) EnrichLeagues(ctx context.Context, leagues []league.League) []league.League {
	out := make([]league.League, len(leagues))
	copy(out, leagues)
	if len(out) == 0 {
		return out
	}

	pool, err := ants.NewPool(min(c.detailWorkers, len(out)))
	if err != nil {
		c.logger.WarnContext(ctx, "create league detail pool failed, skipping enrichment", "error", err)
		return out
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i := range out {
		if out[i].ID == "" {
			continue
		}
		idx := i
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if detail, ok := c.GetLeague(ctx, out[idx].ID); ok {
				out[idx] = detail
			}
		}); err != nil {
			workers.Done()
			c.logger.WarnContext(ctx, "submit league detail lookup failed", "league_id", out[idx].ID, "error", err)
		}
	}
	workers.Wait()
	return out
}

// ListLeaguesDetailed lists every league with its detail record, one lookup
// per league.
func (c *Client) ListLeaguesDetailed(ctx context.Context) []league.League {
	return c.EnrichLeagues(ctx, c.ListLeagues(ctx))
}

// GetStandings returns ok=false when the provider has no table for the
// league and season. A present but empty table is ok with no rows.
func (c *Client) GetStandings(ctx context.Context, leagueID, seasonLabel string) ([]standing.Standing, bool) {
	leagueID = strings.TrimSpace(leagueID)
	seasonLabel = strings.TrimSpace(seasonLabel)
	if leagueID == "" || seasonLabel == "" {
		return nil, false
	}

	var envelope tableEnvelope
	if !c.fetch(ctx, endpoint("lookuptable.php", "l", leagueID, "s", seasonLabel), &envelope) {
		return nil, false
	}
	if envelope.Table == nil {
		return nil, false
	}
	rows := *envelope.Table
	out := make([]standing.Standing, 0, len(rows))
	for _, item := range rows {
		out = append(out, item.toDomain())
	}
	return out, true
}

// ListSeasons returns the league's seasons, newest first.
func (c *Client) ListSeasons(ctx context.Context, leagueID string) []season.Season {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return []season.Season{}
	}

	var envelope seasonsEnvelope
	if !c.fetch(ctx, endpoint("search_all_seasons.php", "id", leagueID), &envelope) {
		return []season.Season{}
	}
	out := make([]season.Season, 0, len(envelope.Seasons))
	for _, item := range envelope.Seasons {
		if s := item.toDomain(); s.Label != "" {
			out = append(out, s)
		}
	}
	season.SortDescending(out)
	return out
}

func (c *Client) GetTeam(ctx context.Context, teamID string) (team.Team, bool) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, false
	}

	var envelope teamsEnvelope
	if !c.fetch(ctx, endpoint("lookupteam.php", "id", teamID), &envelope) {
		return team.Team{}, false
	}
	if len(envelope.Teams) == 0 {
		return team.Team{}, false
	}
	return envelope.Teams[0].toDomain(), true
}

func (c *Client) ListTeams(ctx context.Context, leagueID string) []team.Team {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return []team.Team{}
	}

	var envelope teamsEnvelope
	if !c.fetch(ctx, endpoint("lookup_all_teams.php", "id", leagueID), &envelope) {
		return []team.Team{}
	}
	out := make([]team.Team, 0, len(envelope.Teams))
	for _, item := range envelope.Teams {
		out = append(out, item.toDomain())
	}
	return out
}

// fetch loads an endpoint through the cache and decodes it into target.
// It reports false on any failure or when the provider returned no data.
func (c *Client) fetch(ctx context.Context, path string, target any) bool {
	raw, err := c.load(ctx, path)
	if err != nil {
		if ctx.Err() == nil {
			c.logger.WarnContext(ctx, "thesportsdb request failed", "endpoint", path, "error", err)
		}
		return false
	}
	if isAbsent(raw) {
		return false
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		c.metrics.RecordUpstream(ProviderName, metrics.OutcomeDecodeError, 0)
		c.logger.WarnContext(ctx, "decode thesportsdb payload failed", "endpoint", path, "error", err)
		return false
	}
	return true
}

func (c *Client) load(ctx context.Context, path string) ([]byte, error) {
	if c.cache == nil {
		return c.request(ctx, path)
	}
	out, err := c.cache.GetOrLoad(ctx, path, func(ctx context.Context) (any, error) {
		return c.request(ctx, path)
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

func (c *Client) request(ctx context.Context, path string) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.metrics.RecordUpstream(ProviderName, metrics.OutcomeRejected, 0)
			return nil, crerr.Wrapf(err, "%s breaker state=%s", c.breaker.Name(), c.breaker.State())
		}
	}

	fullURL := c.baseURL + "/" + url.PathEscape(c.apiKey) + "/" + path
	started := time.Now()
	var body []byte
	err := c.retry.Do(ctx, isTransient, func(int) error {
		raw, reqErr := c.executeRequest(ctx, fullURL)
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

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Newf("build request: %s", c.sanitize(err.Error()))
	}
	req.Header.Set("accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, crerr.Mark(crerr.Newf("send request: %s", c.sanitize(err.Error())), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Mark(
			crerr.Newf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw)),
			errHTTPStatus,
		)
		if isRetryableStatus(resp.StatusCode) {
			statusErr = crerr.Mark(statusErr, errTransient)
		}
		return nil, statusErr
	}
	return raw, nil
}

// sanitize keeps the API key out of logged error text; net/http embeds the
// full request URL, key path segment included, in transport errors.
func (c *Client) sanitize(value string) string {
	value = strings.TrimSpace(value)
	if c.apiKey == "" || value == "" {
		return value
	}
	value = strings.ReplaceAll(value, "/"+url.PathEscape(c.apiKey)+"/", "/REDACTED/")
	return strings.ReplaceAll(value, c.apiKey, "REDACTED")
}

func endpoint(name string, pairs ...string) string {
	if len(pairs) < 2 {
		return name
	}
	var b strings.Builder
	b.WriteString(name)
	for i := 0; i+1 < len(pairs); i += 2 {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(pairs[i])
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(pairs[i+1]))
	}
	return b.String()
}

func isAbsent(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, literalEmpty)
}

func isTransient(err error) bool {
	return err != nil && crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
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
