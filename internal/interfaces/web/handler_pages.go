package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

// Index pages reveal rows incrementally: the full list is fetched once and
// the visible count grows by a fixed step via the ?visible query param.
const (
	indexPageSize = 10
	adminPageSize = 12
)

func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Teams")
	defer span.End()

	search := strings.TrimSpace(r.URL.Query().Get("q"))
	view := teamsView{pageView: h.basePage(r, "Teams"), Search: search}

	teams, err := h.browse.Teams(ctx, sessionFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "load teams failed", "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "teams.html", view)
		return
	}

	filtered := searchTeamEntries(teams, search)
	visible := visibleCount(r, indexPageSize)
	if len(filtered) > visible {
		view.NextVisible = visible + indexPageSize
		filtered = filtered[:visible]
	}
	view.Teams = filtered
	renderPage(ctx, w, http.StatusOK, "teams.html", view)
}

func (h *Handler) TeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.TeamPlayers")
	defer span.End()

	slug := r.PathValue("slug")
	view := rosterView{pageView: h.basePage(r, "Team")}

	page, err := h.browse.TeamPlayers(ctx, sessionFromRequest(r), slug)
	if err != nil {
		h.logger.ErrorContext(ctx, "load team roster failed", "slug", slug, "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "team_players.html", view)
		return
	}
	if !page.Found {
		renderPage(ctx, w, http.StatusNotFound, "team_players.html", view)
		return
	}

	view.Found = true
	view.Heading = page.DisplayName
	view.TeamSlug = slug
	view.Title = page.DisplayName
	view.Players = newPlayerViews(page.Players)
	renderPage(ctx, w, http.StatusOK, "team_players.html", view)
}

func (h *Handler) Nations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Nations")
	defer span.End()

	search := strings.TrimSpace(r.URL.Query().Get("q"))
	view := nationsView{pageView: h.basePage(r, "Nations"), Search: search}

	nations, err := h.browse.Nations(ctx, sessionFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "load nations failed", "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "nations.html", view)
		return
	}

	filtered := searchNationEntries(nations, search)
	visible := visibleCount(r, indexPageSize)
	if len(filtered) > visible {
		view.NextVisible = visible + indexPageSize
		filtered = filtered[:visible]
	}
	view.Nations = filtered
	renderPage(ctx, w, http.StatusOK, "nations.html", view)
}

func (h *Handler) NationPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.NationPlayers")
	defer span.End()

	slug := r.PathValue("slug")
	view := rosterView{pageView: h.basePage(r, "Nation")}

	page, err := h.browse.NationPlayers(ctx, sessionFromRequest(r), slug)
	if err != nil {
		h.logger.ErrorContext(ctx, "load nation roster failed", "slug", slug, "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "nation_players.html", view)
		return
	}
	if !page.Found {
		renderPage(ctx, w, http.StatusNotFound, "nation_players.html", view)
		return
	}

	view.Found = true
	view.Heading = page.DisplayName
	view.FlagSlug = page.FlagSlug
	view.Title = page.DisplayName
	view.Players = newPlayerViews(page.Players)
	renderPage(ctx, w, http.StatusOK, "nation_players.html", view)
}

func (h *Handler) Positions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Positions")
	defer span.End()

	view := positionsView{pageView: h.basePage(r, "Positions")}
	positions, err := h.browse.Positions(ctx, sessionFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "load positions failed", "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "positions.html", view)
		return
	}

	view.Positions = positions
	renderPage(ctx, w, http.StatusOK, "positions.html", view)
}

func (h *Handler) PositionPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.PositionPlayers")
	defer span.End()

	code := r.PathValue("code")
	view := rosterView{pageView: h.basePage(r, "Position")}

	page, err := h.browse.PositionPlayers(ctx, sessionFromRequest(r), code)
	if err != nil {
		h.logger.ErrorContext(ctx, "load position roster failed", "code", code, "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "position_players.html", view)
		return
	}
	if !page.Found {
		renderPage(ctx, w, http.StatusNotFound, "position_players.html", view)
		return
	}

	view.Found = true
	view.Heading = page.DisplayName
	view.Title = page.DisplayName
	view.Players = newPlayerViews(page.Players)
	renderPage(ctx, w, http.StatusOK, "position_players.html", view)
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Leaderboard")
	defer span.End()

	session := sessionFromRequest(r)
	filter := filterFromQuery(r)
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	view := leaderboardView{pageView: h.basePage(r, "Leaderboard"), Search: search}

	options, err := h.leaderboard.Options(ctx, session)
	if err != nil {
		h.logger.ErrorContext(ctx, "load filter options failed", "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "leaderboard.html", view)
		return
	}
	view.Options = FilterOptionsView(options)

	state, err := h.leaderboard.Apply(ctx, session, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard fetch failed", "filter", filter.String(), "error", err)
		mapped := mapError(err)
		view.Filter = filter.Normalize()
		view.Error = mapped.Message
		renderPage(ctx, w, mapped.HTTPStatus, "leaderboard.html", view)
		return
	}

	view.Filter = state.Filter
	view.Players = searchViews(state.Players, search)
	renderPage(ctx, w, http.StatusOK, "leaderboard.html", view)
}

// LeaderboardMore re-runs the session's committed filter with a larger page
// and redirects back, keeping any active name search.
func (h *Handler) LeaderboardMore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.LeaderboardMore")
	defer span.End()

	state, err := h.leaderboard.ShowMore(ctx, sessionFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "leaderboard show more failed", "error", err)
		mapped := mapError(err)
		view := leaderboardView{pageView: h.basePage(r, "Leaderboard"), Error: mapped.Message}
		renderPage(ctx, w, mapped.HTTPStatus, "leaderboard.html", view)
		return
	}

	values := state.Filter.Query()
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		values.Set("q", q)
	}
	http.Redirect(w, r, "/leaderboard?"+values.Encode(), http.StatusSeeOther)
}

func filterFromQuery(r *http.Request) player.Filter {
	query := r.URL.Query()
	filter := player.Filter{
		Nationality: query.Get("nationality"),
		Position:    query.Get("position"),
		Team:        query.Get("team"),
		SortBy:      query.Get("sortBy"),
	}
	if v, err := strconv.Atoi(query.Get("minGoals")); err == nil {
		filter.MinGoals = v
	}
	if v, err := strconv.Atoi(query.Get("limit")); err == nil {
		filter.Limit = v
	}
	return filter
}

// visibleCount reads the ?visible param, flooring at the page default so a
// tampered value can never hide the first page.
func visibleCount(r *http.Request, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get("visible"))
	if err != nil || v < fallback {
		return fallback
	}
	return v
}

func searchTeamEntries(entries []usecase.TeamEntry, query string) []usecase.TeamEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	out := make([]usecase.TeamEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.DisplayName), query) {
			out = append(out, entry)
		}
	}
	return out
}

func searchNationEntries(entries []usecase.NationEntry, query string) []usecase.NationEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	out := make([]usecase.NationEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.DisplayName), query) {
			out = append(out, entry)
		}
	}
	return out
}

// searchViews applies the local name search before mapping rows for render.
func searchViews(players []player.Player, query string) []playerView {
	if strings.TrimSpace(query) == "" {
		return newPlayerViews(players)
	}
	out := make([]playerView, 0, len(players))
	for _, p := range players {
		if p.MatchesName(query) {
			out = append(out, newPlayerView(p))
		}
	}
	return out
}
