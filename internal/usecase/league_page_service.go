package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/rankks/internal/domain/highlight"
	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/domain/standing"
	"github.com/riskibarqy/rankks/internal/domain/team"
	"github.com/sourcegraph/conc"
)

const (
	ContentStandings = "standings"
	ContentScorers   = "scorers"
	ContentPassers   = "passers"
	ContentPlayers   = "players"
)

// Placeholder copy shown instead of content.
const (
	MessageScorersUnavailable = "Scorers data is not available on the free plan."
	MessagePassersUnavailable = "Passers data is not available on the free plan."
	MessagePlayersComingSoon  = "Players data coming soon!"
	MessageNoStandings        = "No standings data available for this season."
	MessageNoHighlights       = "No recent video highlights found."
	MessageNoWinner           = "No winner data for this format"
)

var contentTabs = []struct {
	label string
	slug  string
}{
	{"Standings", ContentStandings},
	{"Scorers", ContentScorers},
	{"Passers", ContentPassers},
	{"Players", ContentPlayers},
}

type LeaguePageRequest struct {
	SportName   string `validate:"required"`
	LeagueID    string `validate:"required"`
	Season      string `validate:"required"`
	ContentType string `validate:"required"`
}

// StandingRow is a table row ready for display.
type StandingRow struct {
	standing.Standing
	Initials string
	IsLeader bool
}

type LeagueHeader struct {
	Title         string
	BadgeURL      string
	BackgroundURL string
	Leader        *StandingRow
	Stats         standing.HistoricalStats
	NoLeaderText  string
}

type SeasonLink struct {
	Label  string
	Year   string
	Href   string
	Active bool
}

type SeasonSelector struct {
	Seasons  []SeasonLink
	Previous *SeasonLink
	Next     *SeasonLink
}

type LeagueContent struct {
	Type       string
	Rows       []StandingRow
	Highlights []highlight.Highlight
	// Message replaces the content when set. IsError marks it as a failure.
	Message         string
	IsError         bool
	EmptyRowsText   string
	EmptyHighlights string
	ShowHighlights  bool
}

type LeaguePage struct {
	Request      LeaguePageRequest
	League       league.League
	CountryName  string
	CountryCode  string
	FlagURL      string
	MainNav      []NavLink
	Shortcuts    []LeagueLink
	SidebarTitle string
	Sidebar      []LeagueLink
	ContentNav   []NavLink
	Breadcrumb   []string
	Header       LeagueHeader
	Seasons      SeasonSelector
	Content      LeagueContent
	// NotFoundText is set when the league could not be loaded.
	NotFoundText string
}

// LeaguePageService assembles the league page from upstream data.
type LeaguePageService struct {
	leagues    league.Source
	seasons    season.Source
	teams      team.Source
	standings  standing.Source
	highlights highlight.Source
	stats      *StandingsService
	nav        *NavigationService
}

func NewLeaguePageService(
	leagues league.Source,
	seasons season.Source,
	teams team.Source,
	standings standing.Source,
	highlights highlight.Source,
	stats *StandingsService,
	nav *NavigationService,
) *LeaguePageService {
	return &LeaguePageService{
		leagues:    leagues,
		seasons:    seasons,
		teams:      teams,
		standings:  standings,
		highlights: highlights,
		stats:      stats,
		nav:        nav,
	}
}

// Build returns ErrNotFound, alongside a page carrying the navigation and a
// not-found message, when the league details cannot be loaded.
func (s *LeaguePageService) Build(ctx context.Context, req LeaguePageRequest) (LeaguePage, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaguePageService.Build")
	defer span.End()

	req.SportName = strings.TrimSpace(req.SportName)
	req.LeagueID = strings.TrimSpace(req.LeagueID)
	req.Season = strings.TrimSpace(req.Season)
	req.ContentType = strings.TrimSpace(req.ContentType)
	if req.LeagueID == "" || req.Season == "" {
		return LeaguePage{}, fmt.Errorf("%w: league id and season are required", ErrInvalidInput)
	}
	if req.ContentType == "" {
		req.ContentType = ContentStandings
	}

	var (
		details    league.League
		found      bool
		seasons    []season.Season
		teams      []team.Team
		allLeagues []league.League
		rows       []standing.Standing
		hasTable   bool
		highlights []highlight.Highlight
		mainNav    []NavLink
		shortcuts  []LeagueLink
		wg         conc.WaitGroup
	)
	wg.Go(func() { details, found = s.leagues.GetLeague(ctx, req.LeagueID) })
	wg.Go(func() { seasons = s.seasons.ListSeasons(ctx, req.LeagueID) })
	wg.Go(func() { teams = s.teams.ListTeams(ctx, req.LeagueID) })
	wg.Go(func() { allLeagues = s.leagues.ListLeagues(ctx) })
	wg.Go(func() { rows, hasTable = s.standings.GetStandings(ctx, req.LeagueID, req.Season) })
	wg.Go(func() { mainNav = s.nav.MainNav(ctx, req.SportName) })
	wg.Go(func() { shortcuts = s.nav.Shortcuts(ctx) })
	if req.ContentType == ContentStandings {
		wg.Go(func() { highlights = s.highlights.ListHighlights(ctx, req.SportName, req.LeagueID, req.Season) })
	}
	wg.Wait()

	page := LeaguePage{
		Request:   req,
		MainNav:   mainNav,
		Shortcuts: shortcuts,
	}
	if !found {
		page.NotFoundText = fmt.Sprintf("Could not load details for League ID: %s.", req.LeagueID)
		return page, fmt.Errorf("%w: league=%s", ErrNotFound, req.LeagueID)
	}

	if !hasTable {
		rows = nil
	}
	enriched := EnrichWithBadges(rows, teams)
	leader, hasLeader := standing.Leader(enriched)

	page.League = details
	page.CountryName = details.Country
	page.CountryCode = league.CountryCode(details.Country)
	page.FlagURL = league.FlagURL(details.Country)
	page.SidebarTitle = sport.SidebarTitle(req.SportName)
	page.Sidebar = s.nav.Sidebar(ctx, req.SportName, req.LeagueID, allLeagues)
	page.ContentNav = buildContentNav(req)
	page.Breadcrumb = []string{details.Name, season.StartYear(req.Season), capitalize(req.ContentType)}
	page.Seasons = buildSeasonSelector(req, seasons, s.nav)
	page.Header = LeagueHeader{
		Title:         strings.ToUpper(details.Name) + " " + season.Display(req.Season),
		BadgeURL:      details.BadgeURL,
		BackgroundURL: details.BackgroundURL,
		NoLeaderText:  MessageNoWinner,
	}
	if hasLeader {
		row := toStandingRow(leader)
		page.Header.Leader = &row
		page.Header.Stats = s.stats.HistoricalStats(ctx, req.LeagueID, seasons, leader.TeamName)
	}
	page.Content = buildContent(req.ContentType, enriched, highlights)
	return page, nil
}

func buildContentNav(req LeaguePageRequest) []NavLink {
	out := make([]NavLink, 0, len(contentTabs))
	for _, tab := range contentTabs {
		out = append(out, NavLink{
			Label:  strings.ToUpper(tab.label),
			Href:   LeaguePath(req.SportName, req.LeagueID, req.Season, tab.slug),
			Active: tab.slug == req.ContentType,
		})
	}
	return out
}

func buildSeasonSelector(req LeaguePageRequest, known []season.Season, nav *NavigationService) SeasonSelector {
	if len(known) == 0 {
		known = season.Generate(req.SportName, nav.now())
	}
	link := func(label string) SeasonLink {
		return SeasonLink{
			Label:  label,
			Year:   season.StartYear(label),
			Href:   LeaguePath(req.SportName, req.LeagueID, label, req.ContentType),
			Active: label == req.Season,
		}
	}

	selector := SeasonSelector{Seasons: make([]SeasonLink, 0, len(known))}
	for _, item := range known {
		selector.Seasons = append(selector.Seasons, link(item.Label))
	}
	if prev, ok := season.Shift(req.Season, -1); ok {
		l := link(prev)
		selector.Previous = &l
	}
	if next, ok := season.Shift(req.Season, 1); ok {
		l := link(next)
		selector.Next = &l
	}
	return selector
}

func buildContent(contentType string, rows []standing.Standing, highlights []highlight.Highlight) LeagueContent {
	content := LeagueContent{Type: contentType}
	switch contentType {
	case ContentStandings:
		content.Rows = make([]StandingRow, 0, len(rows))
		for _, row := range rows {
			content.Rows = append(content.Rows, toStandingRow(row))
		}
		content.EmptyRowsText = MessageNoStandings
		content.ShowHighlights = true
		content.Highlights = highlights
		content.EmptyHighlights = MessageNoHighlights
	case ContentScorers:
		content.Message = MessageScorersUnavailable
	case ContentPassers:
		content.Message = MessagePassersUnavailable
	case ContentPlayers:
		content.Message = MessagePlayersComingSoon
	default:
		content.Message = "Unknown content type: " + contentType
		content.IsError = true
	}
	return content
}

func toStandingRow(row standing.Standing) StandingRow {
	return StandingRow{
		Standing: row,
		Initials: standing.Initials(row.TeamName),
		IsLeader: row.Rank == standing.LeaderRank,
	}
}

func capitalize(value string) string {
	if value == "" {
		return value
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
