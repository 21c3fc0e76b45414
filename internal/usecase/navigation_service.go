package usecase

import (
	"context"
	"net/url"
	"time"

	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/sport"
)

// NavLink is one entry of a navigation bar.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// LeagueLink is a league entry rendered with its badge.
type LeagueLink struct {
	LeagueID string
	Name     string
	BadgeURL string
	Href     string
	Active   bool
}

type NavigationService struct {
	sports  sport.Source
	leagues league.Source
	now     func() time.Time
}

func NewNavigationService(sports sport.Source, leagues league.Source) *NavigationService {
	return &NavigationService{
		sports:  sports,
		leagues: leagues,
		now:     time.Now,
	}
}

// LeaguePath builds /view/{sport}/{league}/{season}/{contentType}.
func LeaguePath(sportName, leagueID, seasonLabel, contentType string) string {
	return "/view/" + url.PathEscape(sportName) +
		"/" + url.PathEscape(leagueID) +
		"/" + url.PathEscape(seasonLabel) +
		"/" + url.PathEscape(contentType)
}

// DefaultPath is where a bare sport link lands: its default league, current
// season, standings.
func (s *NavigationService) DefaultPath(sportName string) string {
	return LeaguePath(sportName, sport.DefaultLeagueID(sportName), season.Current(sportName, s.now()), ContentStandings)
}

// MainNav lists the featured sports in provider order.
func (s *NavigationService) MainNav(ctx context.Context, currentSport string) []NavLink {
	ctx, span := startUsecaseSpan(ctx, "usecase.NavigationService.MainNav")
	defer span.End()

	sports := s.sports.ListSports(ctx)
	out := make([]NavLink, 0, 3)
	for _, item := range sports {
		if !sport.Featured(item.Name) {
			continue
		}
		out = append(out, NavLink{
			Label:  sport.DisplayName(item.Name),
			Href:   s.DefaultPath(item.Name),
			Active: item.Name == currentSport,
		})
	}
	return out
}

// Shortcuts resolves the pinned leagues with their badges.
func (s *NavigationService) Shortcuts(ctx context.Context) []LeagueLink {
	ctx, span := startUsecaseSpan(ctx, "usecase.NavigationService.Shortcuts")
	defer span.End()

	pinned := sport.Shortcuts()
	summaries := make([]league.League, 0, len(pinned))
	for _, item := range pinned {
		summaries = append(summaries, league.League{ID: item.LeagueID, Sport: item.Sport})
	}
	details := s.leagues.EnrichLeagues(ctx, summaries)

	now := s.now()
	out := make([]LeagueLink, 0, len(pinned))
	for i, item := range pinned {
		name := ""
		badge := ""
		if i < len(details) {
			name = details[i].Name
			badge = details[i].BadgeURL
		}
		out = append(out, LeagueLink{
			LeagueID: item.LeagueID,
			Name:     name,
			BadgeURL: badge,
			Href:     LeaguePath(item.Sport, item.LeagueID, season.Current(item.Sport, now), ContentStandings),
		})
	}
	return out
}

// Sidebar picks the sport's popular leagues out of all, in popularity order,
// and fills their badges from the league detail records.
func (s *NavigationService) Sidebar(ctx context.Context, sportName, currentLeagueID string, all []league.League) []LeagueLink {
	ctx, span := startUsecaseSpan(ctx, "usecase.NavigationService.Sidebar")
	defer span.End()

	popular := sport.PopularLeagueIDs(sportName)
	if len(popular) == 0 {
		return []LeagueLink{}
	}
	byID := make(map[string]league.League, len(popular))
	for _, item := range all {
		if item.Sport == sportName {
			byID[item.ID] = item
		}
	}

	picked := make([]league.League, 0, len(popular))
	for _, id := range popular {
		if item, ok := byID[id]; ok {
			picked = append(picked, item)
		}
	}
	picked = s.leagues.EnrichLeagues(ctx, picked)

	current := season.Current(sportName, s.now())
	out := make([]LeagueLink, 0, len(picked))
	for _, item := range picked {
		out = append(out, LeagueLink{
			LeagueID: item.ID,
			Name:     league.ShortName(item.Name),
			BadgeURL: item.BadgeURL,
			Href:     LeaguePath(sportName, item.ID, current, ContentStandings),
			Active:   item.ID == currentLeagueID,
		})
	}
	return out
}
