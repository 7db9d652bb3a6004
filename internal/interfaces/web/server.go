package web

import (
	"log/slog"
	"net/http"

	"github.com/rahmatrdn/uclboard/internal/usecase"
)

type RouterConfig struct {
	LoginURL           string
	CORSAllowedOrigins []string
	AssetsDir          string
	AdminRatePerSec    float64
	AdminRateBurst     int
}

func NewRouter(handler *Handler, sessions *usecase.SessionService, logger *slog.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Health)
	mux.HandleFunc("GET /login", handler.Login)
	mux.HandleFunc("POST /logout", handler.Logout)
	registerAssetRoutes(mux, cfg.AssetsDir)

	requireSession := func(h http.HandlerFunc) http.Handler {
		return RequireSession(sessions, cfg.LoginURL, h)
	}

	mux.Handle("GET /{$}", requireSession(handler.Home))
	mux.Handle("GET /teams", requireSession(handler.Teams))
	mux.Handle("GET /teams/{slug}", requireSession(handler.TeamPlayers))
	mux.Handle("GET /nations", requireSession(handler.Nations))
	mux.Handle("GET /nations/{slug}", requireSession(handler.NationPlayers))
	mux.Handle("GET /positions", requireSession(handler.Positions))
	mux.Handle("GET /positions/{code}", requireSession(handler.PositionPlayers))
	mux.Handle("GET /leaderboard", requireSession(handler.Leaderboard))
	mux.Handle("GET /leaderboard/more", requireSession(handler.LeaderboardMore))

	mux.Handle("GET /admin", requireSession(handler.AdminPage))

	limiter := newIPRateLimiter(cfg.AdminRatePerSec, cfg.AdminRateBurst)
	requireAdminPost := func(h http.HandlerFunc) http.Handler {
		return RequireSession(sessions, cfg.LoginURL, RateLimit(limiter, h))
	}
	mux.Handle("POST /admin/players", requireAdminPost(handler.AdminCreate))
	mux.Handle("POST /admin/players/{id}/update", requireAdminPost(handler.AdminUpdate))
	mux.Handle("POST /admin/players/{id}/patch", requireAdminPost(handler.AdminPatch))
	mux.Handle("POST /admin/players/{id}/delete", requireAdminPost(handler.AdminDelete))

	return RequestTracing(RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "web.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
