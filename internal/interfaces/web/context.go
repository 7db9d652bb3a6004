package web

import (
	"context"
	"net/http"

	"github.com/rahmatrdn/uclboard/internal/domain/user"
)

type contextKey string

const principalContextKey contextKey = "session_principal"

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

// sessionFromRequest returns the browser's Cookie header verbatim. The
// backend owns the session format; this service never parses it.
func sessionFromRequest(r *http.Request) string {
	return r.Header.Get("Cookie")
}
