package web

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/domain/user"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

type fakeBackend struct {
	players       []player.Player
	nationalities []string
	teams         []string
	positions     []string

	lastFilter  player.Filter
	filterCalls int
	deleteCalls int
	lastDeleted int64
}

func (f *fakeBackend) ListPlayers(ctx context.Context, session string) ([]player.Player, error) {
	return f.players, nil
}

func (f *fakeBackend) ListNationalities(ctx context.Context, session string) ([]string, error) {
	return f.nationalities, nil
}

func (f *fakeBackend) ListTeams(ctx context.Context, session string) ([]string, error) {
	return f.teams, nil
}

func (f *fakeBackend) ListPositions(ctx context.Context, session string) ([]string, error) {
	return f.positions, nil
}

func (f *fakeBackend) PlayersByNationality(ctx context.Context, session, nationality string) ([]player.Player, error) {
	return f.matching(func(p player.Player) bool { return p.Nationality == nationality }), nil
}

func (f *fakeBackend) PlayersByTeam(ctx context.Context, session, team string) ([]player.Player, error) {
	return f.matching(func(p player.Player) bool { return p.Team == team }), nil
}

func (f *fakeBackend) PlayersByPosition(ctx context.Context, session, position string) ([]player.Player, error) {
	return f.matching(func(p player.Player) bool { return p.Position == position }), nil
}

func (f *fakeBackend) FilterPlayers(ctx context.Context, session string, filter player.Filter) ([]player.Player, error) {
	f.filterCalls++
	f.lastFilter = filter
	return f.players, nil
}

func (f *fakeBackend) CreatePlayer(ctx context.Context, session string, req player.Request) (player.Player, error) {
	created := player.Player{ID: int64(len(f.players) + 1), Name: req.Name, Nationality: req.Nationality, Team: req.Team, Position: req.Position}
	f.players = append(f.players, created)
	return created, nil
}

func (f *fakeBackend) UpdatePlayer(ctx context.Context, session string, id int64, req player.Request) (player.Player, error) {
	return player.Player{ID: id, Name: req.Name, Nationality: req.Nationality, Team: req.Team, Position: req.Position}, nil
}

func (f *fakeBackend) PatchPlayer(ctx context.Context, session string, id int64, patch player.PatchRequest) (player.Player, error) {
	return player.Player{ID: id}, nil
}

func (f *fakeBackend) DeletePlayer(ctx context.Context, session string, id int64) error {
	f.deleteCalls++
	f.lastDeleted = id
	return nil
}

func (f *fakeBackend) matching(keep func(player.Player) bool) []player.Player {
	out := make([]player.Player, 0, len(f.players))
	for _, p := range f.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func newFakeBackend() *fakeBackend {
	goals := 12
	return &fakeBackend{
		players: []player.Player{
			{ID: 1, Name: "Jude Bellingham", Nationality: "eng ENG", Team: "es Real Madrid", Position: "MF", Goals: &goals},
			{ID: 2, Name: "Erling Haaland", Nationality: "no NOR", Team: "eng Manchester City", Position: "FW"},
		},
		nationalities: []string{"eng ENG", "no NOR"},
		teams:         []string{"es Real Madrid", "eng Manchester City"},
		positions:     []string{"GK", "DF", "MF", "FW"},
	}
}

func newTestRouter(backend *fakeBackend) http.Handler {
	browse := usecase.NewBrowseService(backend, nil, nil)
	leaderboard := usecase.NewLeaderboardService(backend, nil)
	admin := usecase.NewAdminService(backend, backend, nil, browse.InvalidateLookups)
	sessions := usecase.NewSessionService(&stubGateway{principal: user.Principal{Name: "Ada"}}, nil)
	handler := NewHandler(browse, leaderboard, admin, sessions, "/oauth2/authorization/google", "JSESSIONID", nil)

	return NewRouter(handler, sessions, nil, RouterConfig{
		LoginURL:        "/oauth2/authorization/google",
		AdminRatePerSec: 100,
		AdminRateBurst:  100,
	})
}

func get(router http.Handler, target, cookie string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postForm(router http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Cookie", "JSESSIONID=live")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_HealthWithoutSession(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	rec := get(router, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRouter_AnonymousRedirectsToLogin(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	rec := get(router, "/leaderboard", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/oauth2/authorization/google" {
		t.Fatalf("Location = %q", got)
	}
}

func TestRouter_TeamsPageRendersDisplayNames(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	rec := get(router, "/teams", "JSESSIONID=live")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Real Madrid") || !strings.Contains(body, "Manchester City") {
		t.Fatalf("body missing team names: %s", body)
	}
	if !strings.Contains(body, "/teams/real-madrid") {
		t.Fatalf("body missing slug link: %s", body)
	}
}

func TestRouter_TeamRosterBySlug(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	rec := get(router, "/teams/real-madrid", "JSESSIONID=live")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Jude Bellingham") {
		t.Fatalf("body missing roster: %s", body)
	}
	if strings.Contains(body, "Erling Haaland") {
		t.Fatalf("roster leaked other team's player: %s", body)
	}
}

func TestRouter_UnknownTeamSlugIs404(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	rec := get(router, "/teams/no-such-club", "JSESSIONID=live")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No players found") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRouter_TeamsIndexLocalSearch(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	rec := get(router, "/teams?q=real", "JSESSIONID=live")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Real Madrid") {
		t.Fatalf("search dropped the matching team: %s", body)
	}
	if strings.Contains(body, "Manchester City") {
		t.Fatalf("search kept a non-matching team: %s", body)
	}
	if !strings.Contains(body, `value="real"`) {
		t.Fatalf("search box lost its query: %s", body)
	}
}

func TestRouter_TeamsIndexPaginatesWithShowMore(t *testing.T) {
	backend := newFakeBackend()
	backend.teams = nil
	for i := 1; i <= 12; i++ {
		backend.teams = append(backend.teams, fmt.Sprintf("xx Club %02d", i))
	}
	router := newTestRouter(backend)

	rec := get(router, "/teams", "JSESSIONID=live")
	body := rec.Body.String()
	if got := strings.Count(body, "/team-logos/"); got != 10 {
		t.Fatalf("first page shows %d teams, want 10", got)
	}
	if !strings.Contains(body, `name="visible" value="20"`) {
		t.Fatalf("missing show-more step: %s", body)
	}

	rec = get(router, "/teams?visible=20", "JSESSIONID=live")
	body = rec.Body.String()
	if got := strings.Count(body, "/team-logos/"); got != 12 {
		t.Fatalf("expanded page shows %d teams, want all 12", got)
	}
	if strings.Contains(body, `name="visible"`) {
		t.Fatalf("show-more should disappear once everything is visible: %s", body)
	}
}

func TestRouter_NationsIndexLocalSearch(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	rec := get(router, "/nations?q=norway", "JSESSIONID=live")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Norway") {
		t.Fatalf("search dropped the matching nation: %s", body)
	}
	if strings.Contains(body, "eng ENG") {
		t.Fatalf("search kept a non-matching nation: %s", body)
	}
}

func TestRouter_AdminTablePaginates(t *testing.T) {
	backend := newFakeBackend()
	backend.players = nil
	for i := 1; i <= 15; i++ {
		backend.players = append(backend.players, player.Player{
			ID:          int64(i),
			Name:        fmt.Sprintf("Player %02d", i),
			Nationality: "br BRA",
			Team:        "es Real Madrid",
			Position:    "MF",
		})
	}
	router := newTestRouter(backend)

	rec := get(router, "/admin", "JSESSIONID=live")
	body := rec.Body.String()
	if got := strings.Count(body, ">Edit<"); got != 12 {
		t.Fatalf("first page shows %d rows, want 12", got)
	}
	if !strings.Contains(body, `name="visible" value="24"`) {
		t.Fatalf("missing show-more step: %s", body)
	}

	rec = get(router, "/admin?visible=24", "JSESSIONID=live")
	if got := strings.Count(rec.Body.String(), ">Edit<"); got != 15 {
		t.Fatalf("expanded page shows %d rows, want all 15", got)
	}
}

func TestRouter_LeaderboardAppliesQueryFilter(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	rec := get(router, "/leaderboard?minGoals=5&sortBy=assists&position=MF", "JSESSIONID=live")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if backend.lastFilter.MinGoals != 5 || backend.lastFilter.SortBy != "assists" || backend.lastFilter.Position != "MF" {
		t.Fatalf("filter = %+v", backend.lastFilter)
	}
	if !strings.Contains(rec.Body.String(), "Jude Bellingham") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestRouter_LeaderboardShowMoreKeepsSearch(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	if rec := get(router, "/leaderboard?minGoals=5", "JSESSIONID=live"); rec.Code != http.StatusOK {
		t.Fatalf("initial leaderboard status = %d", rec.Code)
	}

	rec := get(router, "/leaderboard/more?q=jude", "JSESSIONID=live")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "q=jude") {
		t.Fatalf("redirect dropped the name search: %q", loc)
	}
	if !strings.Contains(loc, "limit=20") || !strings.Contains(loc, "minGoals=5") {
		t.Fatalf("redirect lost the committed filter: %q", loc)
	}
}

func TestRouter_DeleteWithoutConfirmKeepsSelection(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	rec := postForm(router, "/admin/players/1/delete", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/admin?selected=1" {
		t.Fatalf("Location = %q", got)
	}
	if backend.deleteCalls != 0 {
		t.Fatalf("delete reached the backend without confirmation")
	}
}

func TestRouter_ConfirmedDeleteRedirectsToCreateMode(t *testing.T) {
	backend := newFakeBackend()
	router := newTestRouter(backend)

	rec := postForm(router, "/admin/players/1/delete", url.Values{"confirm": {"yes"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/admin?notice=deleted" {
		t.Fatalf("Location = %q", got)
	}
	if backend.deleteCalls != 1 || backend.lastDeleted != 1 {
		t.Fatalf("deleteCalls = %d lastDeleted = %d", backend.deleteCalls, backend.lastDeleted)
	}
}

func TestRouter_CreateValidationFailureKeepsForm(t *testing.T) {
	router := newTestRouter(newFakeBackend())

	form := url.Values{
		"name":        {""},
		"nationality": {"br BRA"},
		"team":        {"es Real Madrid"},
		"position":    {"FW"},
	}
	rec := postForm(router, "/admin/players", form)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="br BRA"`) {
		t.Fatalf("submitted form not preserved: %s", body)
	}
}
