package web

import (
	"log/slog"
	"net/http"

	"github.com/rahmatrdn/uclboard/internal/usecase"
)

type Handler struct {
	browse      *usecase.BrowseService
	leaderboard *usecase.LeaderboardService
	admin       *usecase.AdminService
	sessions    *usecase.SessionService
	loginURL    string
	cookieName  string
	logger      *slog.Logger
}

func NewHandler(
	browse *usecase.BrowseService,
	leaderboard *usecase.LeaderboardService,
	admin *usecase.AdminService,
	sessions *usecase.SessionService,
	loginURL string,
	cookieName string,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		browse:      browse,
		leaderboard: leaderboard,
		admin:       admin,
		sessions:    sessions,
		loginURL:    loginURL,
		cookieName:  cookieName,
		logger:      logger,
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/leaderboard", http.StatusFound)
}

// Login hands the browser to the external OAuth flow; this service never
// sees credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.loginURL, http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "web.Handler.Logout")
	defer span.End()

	if err := h.sessions.Logout(ctx, sessionFromRequest(r)); err != nil {
		h.logger.WarnContext(ctx, "logout failed", "error", err)
	}

	// Expire the local copy of the session cookie regardless of what the
	// backend said; the browser must not keep presenting it.
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) basePage(r *http.Request, title string) pageView {
	view := pageView{Title: title}
	if principal, ok := principalFromContext(r.Context()); ok {
		view.SignedIn = true
		view.Principal = principal
	}
	return view
}
