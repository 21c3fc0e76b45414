package web

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, opts RouterOptions) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /static/", staticHandler())
	if opts.MetricsEnabled {
		mux.Handle("GET /metrics", opts.Metrics.Handler())
	}
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.Home)
	mux.HandleFunc("GET /view/{sportName}", handler.SportRedirect)
	mux.HandleFunc("GET /view/{sportName}/{leagueId}/{season}/{contentType}", handler.LeaguePage)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/v1/sports", handler.ListSports)
	mux.HandleFunc("GET /api/v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /api/v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /api/v1/leagues/{leagueID}/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /api/v1/leagues/{leagueID}/teams", handler.ListTeams)
	mux.HandleFunc("GET /api/v1/leagues/{leagueID}/standings/{season}", handler.GetStandings)
	mux.HandleFunc("GET /api/v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /api/v1/highlights", handler.ListHighlights)
}
