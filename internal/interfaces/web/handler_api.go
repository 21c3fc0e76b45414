package web

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/rankks/internal/domain/league"
	"github.com/riskibarqy/rankks/internal/domain/sport"
	"github.com/riskibarqy/rankks/internal/usecase"
)

type leaguePathParams struct {
	LeagueID string `validate:"required,max=32"`
}

type teamPathParams struct {
	TeamID string `validate:"required,max=32"`
}

type standingsPathParams struct {
	LeagueID string `validate:"required,max=32"`
	Season   string `validate:"required,max=16"`
}

type highlightsQuery struct {
	Sport    string `validate:"omitempty,max=64"`
	LeagueID string `validate:"required,max=32"`
	Season   string `validate:"omitempty,max=16"`
}

func (h *Handler) ListSports(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListSports")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, mapSlice(h.leagueService.ListSports(ctx), sportToDTO))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListLeagues")
	defer span.End()

	detailed := false
	if raw := strings.TrimSpace(r.URL.Query().Get("detailed")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid detailed %q", usecase.ErrInvalidInput, raw))
			return
		}
		detailed = parsed
	}

	leagues := h.leagueService.ListLeagues(ctx, detailed)
	if sportName := strings.TrimSpace(r.URL.Query().Get("sport")); sportName != "" {
		filtered := make([]league.League, 0, len(leagues))
		for _, item := range leagues {
			if strings.EqualFold(item.Sport, sportName) {
				filtered = append(filtered, item)
			}
		}
		leagues = filtered
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(leagues, leagueToDTO))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.GetLeague")
	defer span.End()

	params := leaguePathParams{LeagueID: r.PathValue("leagueID")}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GetLeague(ctx, params.LeagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", params.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListSeasons")
	defer span.End()

	params := leaguePathParams{LeagueID: r.PathValue("leagueID")}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListSeasons(ctx, params.LeagueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, seasonToDTO))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListTeams")
	defer span.End()

	params := leaguePathParams{LeagueID: r.PathValue("leagueID")}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.leagueService.ListTeams(ctx, params.LeagueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, teamToDTO))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.GetTeam")
	defer span.End()

	params := teamPathParams{TeamID: r.PathValue("teamID")}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.GetTeam(ctx, params.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", params.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.GetStandings")
	defer span.End()

	params := standingsPathParams{LeagueID: r.PathValue("leagueID"), Season: r.PathValue("season")}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.standingsService.Table(ctx, params.LeagueID, params.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "league_id", params.LeagueID, "season", params.Season, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, standingsTableToDTO(table))
}

func (h *Handler) ListHighlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.ListHighlights")
	defer span.End()

	query := r.URL.Query()
	params := highlightsQuery{
		Sport:    strings.TrimSpace(query.Get("sport")),
		LeagueID: strings.TrimSpace(query.Get("leagueId")),
		Season:   strings.TrimSpace(query.Get("season")),
	}
	if err := h.validateRequest(ctx, params); err != nil {
		writeError(ctx, w, err)
		return
	}
	if params.Sport == "" {
		params.Sport = sport.Soccer
	}

	items, err := h.leagueService.ListHighlights(ctx, params.Sport, params.LeagueID, params.Season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, mapSlice(items, highlightToDTO))
}
