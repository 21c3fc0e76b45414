package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	leaguemock "github.com/riskibarqy/rankks/internal/mocks/domain/league"
	sportmock "github.com/riskibarqy/rankks/internal/mocks/domain/sport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
}

func passthroughEnrich(_ context.Context, in []league.League) []league.League {
	out := make([]league.League, len(in))
	copy(out, in)
	return out
}

func TestLeaguePath_EscapesSegments(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/view/Soccer/4328/2023-2024/standings", LeaguePath("Soccer", "4328", "2023-2024", "standings"))
	assert.Equal(t, "/view/Motor%20Sport/1/2024/standings", LeaguePath("Motor Sport", "1", "2024", "standings"))
}

func TestNavigationService_MainNav(t *testing.T) {
	t.Parallel()

	sports := sportmock.NewSource(t)
	service := NewNavigationService(sports, leaguemock.NewSource(t))
	service.now = fixedClock

	sports.On("ListSports", mock.Anything).Return([]sport.Sport{
		{Name: "Basketball"},
		{Name: "Cricket"},
		{Name: "Soccer"},
		{Name: "Tennis"},
	}).Once()

	got := service.MainNav(context.Background(), "Soccer")
	assert.Equal(t, []NavLink{
		{Label: "Basket-Ball", Href: "/view/Basketball/4387/2024/standings"},
		{Label: "Football", Href: "/view/Soccer/4328/2023-2024/standings", Active: true},
		{Label: "Tennis", Href: "/view/Tennis/4385/2024/standings"},
	}, got)
}

func TestNavigationService_MainNav_EmptyWhenUpstreamFails(t *testing.T) {
	t.Parallel()

	sports := sportmock.NewSource(t)
	service := NewNavigationService(sports, leaguemock.NewSource(t))

	sports.On("ListSports", mock.Anything).Return([]sport.Sport{}).Once()

	got := service.MainNav(context.Background(), "Soccer")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNavigationService_Sidebar_PopularOrderAndShortNames(t *testing.T) {
	t.Parallel()

	leagues := leaguemock.NewSource(t)
	service := NewNavigationService(sportmock.NewSource(t), leagues)
	service.now = fixedClock

	all := []league.League{
		{ID: "4399", Name: "Some Other League", Sport: "Soccer"},
		{ID: "4335", Name: "Spanish La Liga", Sport: "Soccer", BadgeURL: "https://img/laliga.png"},
		{ID: "4387", Name: "NBA", Sport: "Basketball"},
		{ID: "4328", Name: "English Premier League", Sport: "Soccer", BadgeURL: "https://img/epl.png"},
	}
	leagues.On("EnrichLeagues", mock.Anything, mock.MatchedBy(func(in []league.League) bool {
		return len(in) == 2 && in[0].ID == "4328" && in[1].ID == "4335"
	})).Return(passthroughEnrich).Once()

	got := service.Sidebar(context.Background(), "Soccer", "4335", all)
	require.Len(t, got, 2)
	assert.Equal(t, LeagueLink{
		LeagueID: "4328",
		Name:     "Premier League",
		BadgeURL: "https://img/epl.png",
		Href:     "/view/Soccer/4328/2023-2024/standings",
	}, got[0])
	assert.Equal(t, "La Liga", got[1].Name)
	assert.True(t, got[1].Active)
}

func TestNavigationService_Sidebar_UnknownSport(t *testing.T) {
	t.Parallel()

	service := NewNavigationService(sportmock.NewSource(t), leaguemock.NewSource(t))
	got := service.Sidebar(context.Background(), "Cricket", "1", []league.League{{ID: "1", Sport: "Cricket"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNavigationService_Shortcuts(t *testing.T) {
	t.Parallel()

	leagues := leaguemock.NewSource(t)
	service := NewNavigationService(sportmock.NewSource(t), leagues)
	service.now = fixedClock

	leagues.On("EnrichLeagues", mock.Anything, mock.Anything).Return(func(_ context.Context, in []league.League) []league.League {
		out := passthroughEnrich(context.Background(), in)
		out[0].Name = "English Premier League"
		out[0].BadgeURL = "https://img/epl.png"
		return out
	}).Once()

	got := service.Shortcuts(context.Background())
	require.Len(t, got, len(sport.Shortcuts()))
	assert.Equal(t, "English Premier League", got[0].Name)
	assert.Equal(t, "/view/Soccer/4328/2023-2024/standings", got[0].Href)
	last := got[len(got)-1]
	assert.Equal(t, "4385", last.LeagueID)
	assert.Equal(t, "/view/Tennis/4385/2024/standings", last.Href)
}
