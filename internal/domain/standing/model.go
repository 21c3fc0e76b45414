package standing

import (
	"context"
	"strings"
)

// LeaderRank marks the first-placed row.
const LeaderRank = "1"

// Standing is one row of a league table. Rank is kept as the provider sends
// it; numeric columns are parsed leniently and default to zero.
type Standing struct {
	ID             string
	Rank           string
	TeamID         string
	TeamName       string
	BadgeURL       string
	Form           string
	Description    string
	Played         int
	Win            int
	Draw           int
	Loss           int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
}

// HistoricalStats counts how often a team appeared in, and won, a league
// across the seasons examined.
type HistoricalStats struct {
	Participations int `json:"participations"`
	Titles         int `json:"titles"`
}

// Source describes standings lookups needed by use cases. ok is false when
// the provider has no table for the league and season.
type Source interface {
	GetStandings(ctx context.Context, leagueID, season string) (rows []Standing, ok bool)
}

// Leader returns the first row ranked "1".
func Leader(rows []Standing) (Standing, bool) {
	for _, row := range rows {
		if row.Rank == LeaderRank {
			return row, true
		}
	}
	return Standing{}, false
}

// Tally reduces season tables into participation and title counts for
// teamName. Empty tables are skipped. Names are compared exactly.
func Tally(tables [][]Standing, teamName string) HistoricalStats {
	var stats HistoricalStats
	if teamName == "" {
		return stats
	}
	for _, rows := range tables {
		if len(rows) == 0 {
			continue
		}
		participated := false
		won := false
		for _, row := range rows {
			if row.TeamName != teamName {
				continue
			}
			participated = true
			if row.Rank == LeaderRank {
				won = true
			}
		}
		if participated {
			stats.Participations++
		}
		if won {
			stats.Titles++
		}
	}
	return stats
}

// Initials is the badge placeholder for a team without artwork.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Split(name, " ") {
		if word == "" {
			continue
		}
		for _, r := range word {
			b.WriteRune(r)
			break
		}
	}
	return strings.ToUpper(b.String())
}
