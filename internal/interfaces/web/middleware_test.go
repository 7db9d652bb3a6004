package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rahmatrdn/uclboard/internal/domain/user"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

type stubGateway struct {
	principal user.Principal
	err       error
}

func (s *stubGateway) CurrentUser(ctx context.Context, session string) (user.Principal, error) {
	if s.err != nil {
		return user.Principal{}, s.err
	}
	return s.principal, nil
}

func (s *stubGateway) Logout(ctx context.Context, session string) error { return nil }

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS_AllowsConfiguredOrigin(t *testing.T) {
	handler := CORS([]string{"https://app.example"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("Allow-Origin = %q", got)
	}
}

func TestCORS_IgnoresUnknownOrigin(t *testing.T) {
	handler := CORS([]string{"https://app.example"}, okHandler())

	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("Allow-Origin = %q, want empty", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	handler := CORS([]string{"*"}, next)

	req := httptest.NewRequest(http.MethodOptions, "/teams", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if called {
		t.Fatal("preflight must not reach the handler")
	}
}

func TestRequireSession_RedirectsAnonymousToLogin(t *testing.T) {
	sessions := usecase.NewSessionService(&stubGateway{
		err: fmt.Errorf("%w: no session", usecase.ErrUnauthorized),
	}, nil)
	handler := RequireSession(sessions, "/oauth2/authorization/google", okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Cookie", "JSESSIONID=stale")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/oauth2/authorization/google" {
		t.Fatalf("Location = %q", got)
	}
}

func TestRequireSession_PassesPrincipalToHandler(t *testing.T) {
	sessions := usecase.NewSessionService(&stubGateway{
		principal: user.Principal{Name: "Ada"},
	}, nil)

	var seen user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
	})
	handler := RequireSession(sessions, "/login", next)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Cookie", "JSESSIONID=live")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if seen.Name != "Ada" {
		t.Fatalf("principal = %+v", seen)
	}
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	limiter := newIPRateLimiter(1, 2)
	handler := RateLimit(limiter, okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin/players", nil)
		req.RemoteAddr = "10.0.0.1:50000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("first requests should pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("third request should be limited, got %v", statuses)
	}
}

func TestRateLimit_TracksClientsSeparately(t *testing.T) {
	limiter := newIPRateLimiter(1, 1)
	handler := RateLimit(limiter, okHandler())

	for i, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		req := httptest.NewRequest(http.MethodPost, "/admin/players", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d from %s blocked: %d", i, addr, rec.Code)
		}
	}
}
