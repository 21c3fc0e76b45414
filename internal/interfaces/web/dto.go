package web

import (
	"github.com/riskibarqy/rankks/internal/domain/highlight"
	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/season"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/domain/standing"
	"github.com/riskibarqy/rankks/internal/domain/team"
	"github.com/riskibarqy/rankks/internal/usecase"
)

type sportDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Format      string `json:"format,omitempty"`
	ThumbURL    string `json:"thumbUrl,omitempty"`
}

type leagueDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ShortName     string `json:"shortName"`
	AlternateName string `json:"alternateName,omitempty"`
	Sport         string `json:"sport"`
	Country       string `json:"country,omitempty"`
	CountryCode   string `json:"countryCode,omitempty"`
	FlagURL       string `json:"flagUrl,omitempty"`
	BadgeURL      string `json:"badgeUrl,omitempty"`
	BackgroundURL string `json:"backgroundUrl,omitempty"`
	BannerURL     string `json:"bannerUrl,omitempty"`
	Description   string `json:"description,omitempty"`
}

type seasonDTO struct {
	Label   string `json:"label"`
	Display string `json:"display"`
}

type teamDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"leagueId,omitempty"`
	Name      string `json:"name"`
	Short     string `json:"short,omitempty"`
	LogoURL   string `json:"logoUrl,omitempty"`
	Country   string `json:"country,omitempty"`
	Stadium   string `json:"stadium,omitempty"`
	FoundedIn int    `json:"foundedIn,omitempty"`
}

type standingDTO struct {
	Rank           string `json:"rank"`
	TeamID         string `json:"teamId"`
	TeamName       string `json:"teamName"`
	BadgeURL       string `json:"badgeUrl,omitempty"`
	Initials       string `json:"initials"`
	Form           string `json:"form,omitempty"`
	Description    string `json:"description,omitempty"`
	Played         int    `json:"played"`
	Win            int    `json:"win"`
	Draw           int    `json:"draw"`
	Loss           int    `json:"loss"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type standingsTableDTO struct {
	LeagueID string        `json:"leagueId"`
	Season   string        `json:"season"`
	Leader   *standingDTO  `json:"leader,omitempty"`
	Rows     []standingDTO `json:"rows"`
}

type highlightDTO struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	VideoURL     string `json:"videoUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Date         string `json:"date,omitempty"`
}

func sportToDTO(v sport.Sport) sportDTO {
	return sportDTO{
		ID:          v.ID,
		Name:        v.Name,
		DisplayName: sport.DisplayName(v.Name),
		Format:      v.Format,
		ThumbURL:    v.ThumbURL,
	}
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:            v.ID,
		Name:          v.Name,
		ShortName:     league.ShortName(v.Name),
		AlternateName: v.AlternateName,
		Sport:         v.Sport,
		Country:       v.Country,
		CountryCode:   league.CountryCode(v.Country),
		FlagURL:       league.FlagURL(v.Country),
		BadgeURL:      v.BadgeURL,
		BackgroundURL: v.BackgroundURL,
		BannerURL:     v.BannerURL,
		Description:   v.Description,
	}
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{Label: v.Label, Display: season.Display(v.Label)}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		Name:      v.Name,
		Short:     v.ShortName,
		LogoURL:   v.BadgeURL,
		Country:   v.Country,
		Stadium:   v.Stadium,
		FoundedIn: v.Founded,
	}
}

func standingToDTO(v standing.Standing) standingDTO {
	return standingDTO{
		Rank:           v.Rank,
		TeamID:         v.TeamID,
		TeamName:       v.TeamName,
		BadgeURL:       v.BadgeURL,
		Initials:       standing.Initials(v.TeamName),
		Form:           v.Form,
		Description:    v.Description,
		Played:         v.Played,
		Win:            v.Win,
		Draw:           v.Draw,
		Loss:           v.Loss,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
	}
}

func standingsTableToDTO(v usecase.StandingsTable) standingsTableDTO {
	out := standingsTableDTO{
		LeagueID: v.LeagueID,
		Season:   v.Season,
		Rows:     make([]standingDTO, 0, len(v.Rows)),
	}
	for _, row := range v.Rows {
		out.Rows = append(out.Rows, standingToDTO(row))
	}
	if v.Leader != nil {
		leader := standingToDTO(*v.Leader)
		out.Leader = &leader
	}
	return out
}

func highlightToDTO(v highlight.Highlight) highlightDTO {
	return highlightDTO{
		ID:           v.ID,
		Title:        v.Title,
		VideoURL:     v.VideoURL,
		ThumbnailURL: v.ThumbnailURL,
		Date:         v.Date,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
