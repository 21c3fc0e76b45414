package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/rankks/internal/domain/highlight"
	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/domain/team"
)

// LeagueService exposes catalogue lookups for the JSON API.
type LeagueService struct {
	sports     sport.Source
	leagues    league.Source
	seasons    season.Source
	teams      team.Source
	highlights highlight.Source
}

func NewLeagueService(
	sports sport.Source,
	leagues league.Source,
	seasons season.Source,
	teams team.Source,
	highlights highlight.Source,
) *LeagueService {
	return &LeagueService{
		sports:     sports,
		leagues:    leagues,
		seasons:    seasons,
		teams:      teams,
		highlights: highlights,
	}
}

func (s *LeagueService) ListSports(ctx context.Context) []sport.Sport {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListSports")
	defer span.End()

	return s.sports.ListSports(ctx)
}

// ListLeagues lists every league; detailed adds one detail lookup per league.
func (s *LeagueService) ListLeagues(ctx context.Context, detailed bool) []league.League {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListLeagues")
	defer span.End()

	if detailed {
		return s.leagues.ListLeaguesDetailed(ctx)
	}
	return s.leagues.ListLeagues(ctx)
}

func (s *LeagueService) GetLeague(ctx context.Context, leagueID string) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	item, exists := s.leagues.GetLeague(ctx, leagueID)
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	return item, nil
}

func (s *LeagueService) ListSeasons(ctx context.Context, leagueID string) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListSeasons")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	return s.seasons.ListSeasons(ctx, leagueID), nil
}

func (s *LeagueService) ListTeams(ctx context.Context, leagueID string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListTeams")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	return s.teams.ListTeams(ctx, leagueID), nil
}

func (s *LeagueService) GetTeam(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists := s.teams.GetTeam(ctx, teamID)
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *LeagueService) ListHighlights(ctx context.Context, sportName, leagueID, seasonLabel string) ([]highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListHighlights")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	return s.highlights.ListHighlights(ctx, strings.TrimSpace(sportName), leagueID, strings.TrimSpace(seasonLabel)), nil
}
