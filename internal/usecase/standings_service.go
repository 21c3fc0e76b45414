package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/standing"
	"github.com/riskibarqy/rankks/internal/domain/team"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/pool"
)

// StandingsTable is a league table with badges filled in from the team list.
type StandingsTable struct {
	LeagueID string
	Season   string
	Rows     []standing.Standing
	Leader   *standing.Standing
}

type StandingsService struct {
	standings standing.Source
	teams     team.Source
	// historyConcurrency caps per-season fetches; 0 means one goroutine per season.
	historyConcurrency int
}

func NewStandingsService(standings standing.Source, teams team.Source, historyConcurrency int) *StandingsService {
	if historyConcurrency < 0 {
		historyConcurrency = 0
	}
	return &StandingsService{
		standings:          standings,
		teams:              teams,
		historyConcurrency: historyConcurrency,
	}
}

// EnrichWithBadges overrides each row's badge with the badge of the team
// sharing its id. Rows without a match are kept as they are. The result has
// the same length and order as rows, which is never modified.
func EnrichWithBadges(rows []standing.Standing, teams []team.Team) []standing.Standing {
	if rows == nil {
		return nil
	}

	badges := make(map[string]string, len(teams))
	for _, item := range teams {
		if item.ID == "" || item.BadgeURL == "" {
			continue
		}
		badges[item.ID] = item.BadgeURL
	}

	out := make([]standing.Standing, len(rows))
	for i, row := range rows {
		if badge, ok := badges[row.TeamID]; ok {
			row.BadgeURL = badge
		}
		out[i] = row
	}
	return out
}

// Table loads a season table and enriches it with team badges.
func (s *StandingsService) Table(ctx context.Context, leagueID, seasonLabel string) (StandingsTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Table")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	seasonLabel = strings.TrimSpace(seasonLabel)
	if leagueID == "" {
		return StandingsTable{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if seasonLabel == "" {
		return StandingsTable{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}

	var (
		rows   []standing.Standing
		exists bool
		teams  []team.Team
		wg     conc.WaitGroup
	)
	wg.Go(func() { rows, exists = s.standings.GetStandings(ctx, leagueID, seasonLabel) })
	wg.Go(func() { teams = s.teams.ListTeams(ctx, leagueID) })
	wg.Wait()

	if !exists {
		return StandingsTable{}, fmt.Errorf("%w: standings league=%s season=%s", ErrNotFound, leagueID, seasonLabel)
	}

	table := StandingsTable{
		LeagueID: leagueID,
		Season:   seasonLabel,
		Rows:     EnrichWithBadges(rows, teams),
	}
	if table.Rows == nil {
		table.Rows = []standing.Standing{}
	}
	if leader, ok := standing.Leader(table.Rows); ok {
		table.Leader = &leader
	}
	return table, nil
}

// HistoricalStats counts the seasons in which teamName appears in the league
// table and the seasons it finished first. No upstream call is made when the
// name is empty or there are no seasons.
func (s *StandingsService) HistoricalStats(ctx context.Context, leagueID string, seasons []season.Season, teamName string) standing.HistoricalStats {
	if teamName == "" || len(seasons) == 0 {
		return standing.HistoricalStats{}
	}

	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.HistoricalStats")
	defer span.End()

	p := pool.NewWithResults[[]standing.Standing]()
	if s.historyConcurrency > 0 {
		p = p.WithMaxGoroutines(s.historyConcurrency)
	}
	for _, item := range seasons {
		label := item.Label
		p.Go(func() []standing.Standing {
			rows, ok := s.standings.GetStandings(ctx, leagueID, label)
			if !ok {
				return nil
			}
			return rows
		})
	}
	return standing.Tally(p.Wait(), teamName)
}
