package thesportsdb

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/domain/standing"
	"github.com/riskibarqy/rankks/internal/domain/team"
)

var jsonNull = []byte("null")

// flexString accepts a JSON string, number or null.
type flexString string

func (f *flexString) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		*f = ""
		return nil
	}
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(string(raw))
		if err != nil {
			*f = flexString(strings.Trim(string(raw), `"`))
			return nil
		}
		*f = flexString(strings.TrimSpace(unquoted))
		return nil
	}
	*f = flexString(raw)
	return nil
}

func (f flexString) String() string {
	return string(f)
}

// flexInt accepts "38", 38, 38.0, "" or null. Anything unparseable is zero;
// it never fails the surrounding decode.
type flexInt int

func (f *flexInt) UnmarshalJSON(raw []byte) error {
	var text flexString
	_ = text.UnmarshalJSON(raw)
	*f = flexInt(parseLenientInt(text.String()))
	return nil
}

func parseLenientInt(value string) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return int(n)
	}
	return 0
}

type sportsEnvelope struct {
	Sports []sportPayload `json:"sports"`
}

type sportPayload struct {
	ID          flexString `json:"idSport"`
	Name        string     `json:"strSport"`
	Format      string     `json:"strFormat"`
	Thumb       string     `json:"strSportThumb"`
	Description string     `json:"strSportDescription"`
}

func (p sportPayload) toDomain() sport.Sport {
	return sport.Sport{
		ID:          p.ID.String(),
		Name:        strings.TrimSpace(p.Name),
		Format:      p.Format,
		ThumbURL:    p.Thumb,
		Description: p.Description,
	}
}

type leaguesEnvelope struct {
	Leagues []leaguePayload `json:"leagues"`
}

type leaguePayload struct {
	ID            flexString `json:"idLeague"`
	Name          string     `json:"strLeague"`
	AlternateName string     `json:"strLeagueAlternate"`
	Sport         string     `json:"strSport"`
	Badge         string     `json:"strBadge"`
	Fanart        string     `json:"strFanart1"`
	Banner        string     `json:"strBanner"`
	Country       string     `json:"strCountry"`
	Description   string     `json:"strDescriptionEN"`
}

func (p leaguePayload) toDomain() league.League {
	return league.League{
		ID:            p.ID.String(),
		Name:          strings.TrimSpace(p.Name),
		AlternateName: p.AlternateName,
		Sport:         p.Sport,
		BadgeURL:      p.Badge,
		BackgroundURL: p.Fanart,
		BannerURL:     p.Banner,
		Country:       p.Country,
		Description:   p.Description,
	}
}

// tableEnvelope keeps Table as a pointer so a missing or null table can be
// told apart from an empty one.
type tableEnvelope struct {
	Table *[]standingPayload `json:"table"`
}

type standingPayload struct {
	ID             flexString `json:"idStanding"`
	Rank           flexString `json:"intRank"`
	TeamID         flexString `json:"idTeam"`
	TeamName       string     `json:"strTeam"`
	TeamBadge      string     `json:"strTeamBadge"`
	Badge          string     `json:"strBadge"`
	Form           string     `json:"strForm"`
	Description    string     `json:"strDescription"`
	Played         flexInt    `json:"intPlayed"`
	Win            flexInt    `json:"intWin"`
	Draw           flexInt    `json:"intDraw"`
	Loss           flexInt    `json:"intLoss"`
	GoalsFor       flexInt    `json:"intGoalsFor"`
	GoalsAgainst   flexInt    `json:"intGoalsAgainst"`
	GoalDifference flexInt    `json:"intGoalDifference"`
	Points         flexInt    `json:"intPoints"`
}

func (p standingPayload) toDomain() standing.Standing {
	return standing.Standing{
		ID:             p.ID.String(),
		Rank:           p.Rank.String(),
		TeamID:         p.TeamID.String(),
		TeamName:       p.TeamName,
		BadgeURL:       firstNonEmpty(p.TeamBadge, p.Badge),
		Form:           p.Form,
		Description:    p.Description,
		Played:         int(p.Played),
		Win:            int(p.Win),
		Draw:           int(p.Draw),
		Loss:           int(p.Loss),
		GoalsFor:       int(p.GoalsFor),
		GoalsAgainst:   int(p.GoalsAgainst),
		GoalDifference: int(p.GoalDifference),
		Points:         int(p.Points),
	}
}

type seasonsEnvelope struct {
	Seasons []seasonPayload `json:"seasons"`
}

type seasonPayload struct {
	Label flexString `json:"strSeason"`
}

func (p seasonPayload) toDomain() season.Season {
	return season.Season{Label: p.Label.String()}
}

type teamsEnvelope struct {
	Teams []teamPayload `json:"teams"`
}

type teamPayload struct {
	ID        flexString `json:"idTeam"`
	Name      string     `json:"strTeam"`
	ShortName string     `json:"strTeamShort"`
	TeamBadge string     `json:"strTeamBadge"`
	Badge     string     `json:"strBadge"`
	LeagueID  flexString `json:"idLeague"`
	Country   string     `json:"strCountry"`
	Stadium   string     `json:"strStadium"`
	Founded   flexInt    `json:"intFormedYear"`
}

func (p teamPayload) toDomain() team.Team {
	return team.Team{
		ID:        p.ID.String(),
		Name:      p.Name,
		ShortName: p.ShortName,
		BadgeURL:  firstNonEmpty(p.TeamBadge, p.Badge),
		LeagueID:  p.LeagueID.String(),
		Country:   p.Country,
		Stadium:   p.Stadium,
		Founded:   int(p.Founded),
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
