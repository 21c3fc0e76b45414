package standing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeader(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		{TeamName: "Beta", Rank: "2"},
		{TeamName: "Alpha FC", Rank: "1"},
		{TeamName: "Gamma", Rank: "1"},
	}
	leader, ok := Leader(rows)
	assert.True(t, ok)
	assert.Equal(t, "Alpha FC", leader.TeamName)

	_, ok = Leader([]Standing{{TeamName: "Beta", Rank: "2"}})
	assert.False(t, ok)
	_, ok = Leader(nil)
	assert.False(t, ok)
}

func TestTally(t *testing.T) {
	t.Parallel()

	tables := [][]Standing{
		{{TeamName: "Alpha FC", Rank: "2"}, {TeamName: "Beta", Rank: "1"}},
		{{TeamName: "Alpha FC", Rank: "1"}, {TeamName: "Beta", Rank: "2"}},
		nil,
		{},
		{{TeamName: "Alpha FC", Rank: "3"}},
	}
	assert.Equal(t, HistoricalStats{Participations: 3, Titles: 1}, Tally(tables, "Alpha FC"))
	assert.Equal(t, HistoricalStats{Participations: 2, Titles: 1}, Tally(tables, "Beta"))
	assert.Equal(t, HistoricalStats{}, Tally(tables, "alpha fc"))
	assert.Equal(t, HistoricalStats{}, Tally(tables, ""))
}

func TestInitials(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "MU", Initials("Manchester United"))
	assert.Equal(t, "ÉS", Initials("étoile Sahel"))
	assert.Equal(t, "AFC", Initials("Alpha  Football Club"))
	assert.Equal(t, "", Initials(""))
}
