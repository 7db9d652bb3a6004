package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

// AdminPage renders the player table and the create/edit form. Selecting a
// row (?selected=id) pre-fills the form; a blank selection means create mode.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.AdminPage")
	defer span.End()

	search := strings.TrimSpace(r.URL.Query().Get("q"))
	view := adminView{
		pageView: h.basePage(r, "Admin"),
		Search:   search,
		Notice:   noticeText(r.URL.Query().Get("notice")),
	}

	players, err := h.admin.ListPlayers(ctx, sessionFromRequest(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "admin list failed", "error", err)
		mapped := mapError(err)
		view.Error = mapped.Message
		view.NotAdmin = mapped.NotAdmin
		renderPage(ctx, w, mapped.HTTPStatus, "admin.html", view)
		return
	}

	filtered := usecase.SearchPlayers(players, search)
	visible := visibleCount(r, adminPageSize)
	if len(filtered) > visible {
		view.NextVisible = visible + adminPageSize
		filtered = filtered[:visible]
	}
	view.Players = newPlayerViews(filtered)

	if selectedID, err := strconv.ParseInt(r.URL.Query().Get("selected"), 10, 64); err == nil {
		for _, p := range players {
			if p.ID == selectedID {
				selected := newPlayerView(p)
				view.Selected = &selected
				view.Form = formFromPlayer(p)
				break
			}
		}
	}

	renderPage(ctx, w, http.StatusOK, "admin.html", view)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.AdminCreate")
	defer span.End()

	input := formInput(r)
	created, _, err := h.admin.Create(ctx, sessionFromRequest(r), input)
	if err != nil {
		h.renderAdminFailure(w, r, input, nil, err)
		return
	}

	h.logger.InfoContext(ctx, "admin created player", "id", created.ID)
	http.Redirect(w, r, "/admin?notice=created", http.StatusSeeOther)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.AdminUpdate")
	defer span.End()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.renderAdminFailure(w, r, formInput(r), nil, usecase.ErrInvalidInput)
		return
	}

	input := formInput(r)
	updated, _, err := h.admin.Update(ctx, sessionFromRequest(r), id, input)
	if err != nil {
		h.renderAdminFailure(w, r, input, &id, err)
		return
	}

	h.logger.InfoContext(ctx, "admin updated player", "id", updated.ID)
	http.Redirect(w, r, "/admin?notice=updated&selected="+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

func (h *Handler) AdminPatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.AdminPatch")
	defer span.End()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.renderAdminFailure(w, r, formInput(r), nil, usecase.ErrInvalidInput)
		return
	}

	input := formInput(r)
	patched, _, err := h.admin.Patch(ctx, sessionFromRequest(r), id, input)
	if err != nil {
		h.renderAdminFailure(w, r, input, &id, err)
		return
	}

	h.logger.InfoContext(ctx, "admin patched player", "id", patched.ID)
	http.Redirect(w, r, "/admin?notice=updated&selected="+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// AdminDelete removes a player. The form must post confirm=yes, set by the
// browser-side confirmation step. A successful delete drops the selection so
// the form falls back to create mode.
func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.AdminDelete")
	defer span.End()

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.renderAdminFailure(w, r, usecase.FormInput{}, nil, usecase.ErrInvalidInput)
		return
	}

	confirmed := r.PostFormValue("confirm") == "yes"
	if _, err := h.admin.Delete(ctx, sessionFromRequest(r), id, confirmed); err != nil {
		if errors.Is(err, usecase.ErrConfirmationRequired) {
			http.Redirect(w, r, "/admin?selected="+strconv.FormatInt(id, 10), http.StatusSeeOther)
			return
		}
		h.renderAdminFailure(w, r, usecase.FormInput{}, &id, err)
		return
	}

	h.logger.InfoContext(ctx, "admin deleted player", "id", id)
	http.Redirect(w, r, "/admin?notice=deleted", http.StatusSeeOther)
}

// renderAdminFailure re-renders the admin page with the submitted form kept
// intact so the admin can fix and resubmit without retyping.
func (h *Handler) renderAdminFailure(w http.ResponseWriter, r *http.Request, input usecase.FormInput, selectedID *int64, failure error) {
	ctx, span := startSpan(r.Context(), "web.Handler.renderAdminFailure")
	defer span.End()

	mapped := mapError(failure)
	view := adminView{
		pageView: h.basePage(r, "Admin"),
		Form:     input,
		Error:    mapped.Message,
		NotAdmin: mapped.NotAdmin,
	}

	players, err := h.admin.ListPlayers(ctx, sessionFromRequest(r))
	if err == nil {
		view.Players = newPlayerViews(players)
		if selectedID != nil {
			for _, p := range players {
				if p.ID == *selectedID {
					selected := newPlayerView(p)
					view.Selected = &selected
					break
				}
			}
		}
	} else {
		h.logger.WarnContext(ctx, "admin list refresh failed while rendering error", "error", err)
	}

	renderPage(ctx, w, mapped.HTTPStatus, "admin.html", view)
}

func formInput(r *http.Request) usecase.FormInput {
	return usecase.FormInput{
		Name:             r.PostFormValue("name"),
		Nationality:      r.PostFormValue("nationality"),
		Position:         r.PostFormValue("position"),
		Team:             r.PostFormValue("team"),
		Age:              r.PostFormValue("age"),
		MatchesPlayed:    r.PostFormValue("matchesPlayed"),
		GamesStarted:     r.PostFormValue("gamesStarted"),
		Minutes:          r.PostFormValue("minutes"),
		Goals:            r.PostFormValue("goals"),
		Assists:          r.PostFormValue("assists"),
		PenaltyKicksMade: r.PostFormValue("penaltyKicksMade"),
		XG:               r.PostFormValue("xg"),
		XAG:              r.PostFormValue("xag"),
	}
}

func formFromPlayer(p player.Player) usecase.FormInput {
	return usecase.FormInput{
		Name:             p.Name,
		Nationality:      p.Nationality,
		Position:         p.Position,
		Team:             p.Team,
		Age:              intFieldValue(p.Age),
		MatchesPlayed:    intFieldValue(p.MatchesPlayed),
		GamesStarted:     intFieldValue(p.Starts),
		Minutes:          intFieldValue(p.Minutes),
		Goals:            intFieldValue(p.Goals),
		Assists:          intFieldValue(p.Assists),
		PenaltyKicksMade: intFieldValue(p.PKMade),
		XG:               floatFieldValue(p.XG),
		XAG:              floatFieldValue(p.XAG),
	}
}

func intFieldValue(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatFieldValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func noticeText(code string) string {
	switch code {
	case "created":
		return "Player created."
	case "updated":
		return "Player updated."
	case "deleted":
		return "Player deleted."
	default:
		return ""
	}
}
