package usecase

import (
	"context"
	"fmt"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/domain/user"
)

// fakeStats is an in-memory stand-in for the backend client. Each method
// counts its calls; optional hooks let tests interleave requests.
type fakeStats struct {
	players       []player.Player
	nationalities []string
	teams         []string
	positions     []string

	listPlayersCalls   int
	listTeamsCalls     int
	listNationsCalls   int
	listPositionsCalls int
	filterCalls        int
	deleteCalls        int

	lastFilter  player.Filter
	lastCreated player.Request
	lastPatch   player.PatchRequest

	onFilter func(filter player.Filter) ([]player.Player, error)
	failWith error
}

func (f *fakeStats) ListPlayers(ctx context.Context, session string) ([]player.Player, error) {
	f.listPlayersCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.players, nil
}

func (f *fakeStats) ListNationalities(ctx context.Context, session string) ([]string, error) {
	f.listNationsCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.nationalities, nil
}

func (f *fakeStats) ListTeams(ctx context.Context, session string) ([]string, error) {
	f.listTeamsCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.teams, nil
}

func (f *fakeStats) ListPositions(ctx context.Context, session string) ([]string, error) {
	f.listPositionsCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.positions, nil
}

func (f *fakeStats) PlayersByNationality(ctx context.Context, session, nationality string) ([]player.Player, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]player.Player, 0, len(f.players))
	for _, p := range f.players {
		if p.Nationality == nationality {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStats) PlayersByTeam(ctx context.Context, session, team string) ([]player.Player, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]player.Player, 0, len(f.players))
	for _, p := range f.players {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStats) PlayersByPosition(ctx context.Context, session, position string) ([]player.Player, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]player.Player, 0, len(f.players))
	for _, p := range f.players {
		if p.Position == position {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStats) FilterPlayers(ctx context.Context, session string, filter player.Filter) ([]player.Player, error) {
	f.filterCalls++
	f.lastFilter = filter
	if f.onFilter != nil {
		return f.onFilter(filter)
	}
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.players, nil
}

func (f *fakeStats) CreatePlayer(ctx context.Context, session string, req player.Request) (player.Player, error) {
	if f.failWith != nil {
		return player.Player{}, f.failWith
	}
	f.lastCreated = req
	created := player.Player{
		ID:          int64(len(f.players) + 1),
		Name:        req.Name,
		Nationality: req.Nationality,
		Team:        req.Team,
		Position:    req.Position,
	}
	f.players = append(f.players, created)
	return created, nil
}

func (f *fakeStats) UpdatePlayer(ctx context.Context, session string, id int64, req player.Request) (player.Player, error) {
	if f.failWith != nil {
		return player.Player{}, f.failWith
	}
	for i, p := range f.players {
		if p.ID == id {
			f.players[i].Name = req.Name
			f.players[i].Nationality = req.Nationality
			f.players[i].Team = req.Team
			f.players[i].Position = req.Position
			return f.players[i], nil
		}
	}
	return player.Player{}, fmt.Errorf("%w: player %d", ErrNotFound, id)
}

func (f *fakeStats) PatchPlayer(ctx context.Context, session string, id int64, patch player.PatchRequest) (player.Player, error) {
	if f.failWith != nil {
		return player.Player{}, f.failWith
	}
	f.lastPatch = patch
	for i, p := range f.players {
		if p.ID == id {
			if patch.Goals != nil {
				f.players[i].Goals = patch.Goals
			}
			if patch.Name != nil {
				f.players[i].Name = *patch.Name
			}
			return f.players[i], nil
		}
	}
	return player.Player{}, fmt.Errorf("%w: player %d", ErrNotFound, id)
}

func (f *fakeStats) DeletePlayer(ctx context.Context, session string, id int64) error {
	f.deleteCalls++
	if f.failWith != nil {
		return f.failWith
	}
	for i, p := range f.players {
		if p.ID == id {
			f.players = append(f.players[:i], f.players[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: player %d", ErrNotFound, id)
}

type fakeGateway struct {
	principal   user.Principal
	userErr     error
	logoutErr   error
	logoutCalls int
	userCalls   int
}

func (f *fakeGateway) CurrentUser(ctx context.Context, session string) (user.Principal, error) {
	f.userCalls++
	if f.userErr != nil {
		return user.Principal{}, f.userErr
	}
	return f.principal, nil
}

func (f *fakeGateway) Logout(ctx context.Context, session string) error {
	f.logoutCalls++
	return f.logoutErr
}

func intPtr(v int) *int { return &v }
