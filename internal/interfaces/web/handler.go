package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/rankks/internal/platform/logging"
	"github.com/riskibarqy/rankks/internal/usecase"
)

type Handler struct {
	leagueService    *usecase.LeagueService
	standingsService *usecase.StandingsService
	pageService      *usecase.LeaguePageService
	navigation       *usecase.NavigationService
	renderer         *Renderer
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	standingsService *usecase.StandingsService,
	pageService *usecase.LeaguePageService,
	navigation *usecase.NavigationService,
	renderer *Renderer,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:    leagueService,
		standingsService: standingsService,
		pageService:      pageService,
		navigation:       navigation,
		renderer:         renderer,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type sportPathParams struct {
	SportName string `validate:"required,max=64"`
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Home")
	defer span.End()

	view := pageView{
		Title:     siteTitle,
		MainNav:   h.navigation.MainNav(ctx, ""),
		Shortcuts: h.navigation.Shortcuts(ctx),
	}
	h.render(ctx, w, http.StatusOK, pageHome, view)
}

// SportRedirect sends /view/{sportName} to the sport's default league page.
func (h *Handler) SportRedirect(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.SportRedirect")
	defer span.End()

	params := sportPathParams{SportName: r.PathValue("sportName")}
	if err := h.validateRequest(ctx, params); err != nil {
		h.renderError(ctx, w, http.StatusBadRequest, err)
		return
	}
	http.Redirect(w, r, h.navigation.DefaultPath(params.SportName), http.StatusFound)
}

func (h *Handler) LeaguePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.LeaguePage")
	defer span.End()

	req := usecase.LeaguePageRequest{
		SportName:   r.PathValue("sportName"),
		LeagueID:    r.PathValue("leagueId"),
		Season:      r.PathValue("season"),
		ContentType: r.PathValue("contentType"),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.renderError(ctx, w, http.StatusBadRequest, err)
		return
	}

	page, err := h.pageService.Build(ctx, req)
	status := http.StatusOK
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrNotFound):
		h.logger.WarnContext(ctx, "league page not found", "league_id", req.LeagueID, "error", err)
		status = http.StatusNotFound
	default:
		h.logger.ErrorContext(ctx, "build league page failed", "league_id", req.LeagueID, "error", err)
		h.renderError(ctx, w, mapError(err).HTTPStatus, err)
		return
	}

	title := siteTitle
	if page.League.Name != "" {
		title = page.League.Name + " " + page.Request.Season + " | " + siteTitle
	}
	h.render(ctx, w, status, pageLeague, pageView{
		Title:     title,
		MainNav:   page.MainNav,
		Shortcuts: page.Shortcuts,
		Page:      &page,
	})
}

func (h *Handler) render(ctx context.Context, w http.ResponseWriter, status int, name string, view pageView) {
	if err := h.renderer.Render(w, status, name, view); err != nil {
		h.logger.ErrorContext(ctx, "render page failed", "page", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) renderError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	h.render(ctx, w, status, pageError, pageView{
		Title:   siteTitle,
		MainNav: h.navigation.MainNav(ctx, ""),
		Message: err.Error(),
	})
}
