package usecase

import (
	"context"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/domain/user"
)

// StatsReader is the read side of the tournament stats backend. The session
// argument carries the caller's browser cookies and is forwarded verbatim so
// the backend sees the original session.
type StatsReader interface {
	ListPlayers(ctx context.Context, session string) ([]player.Player, error)
	ListNationalities(ctx context.Context, session string) ([]string, error)
	ListTeams(ctx context.Context, session string) ([]string, error)
	ListPositions(ctx context.Context, session string) ([]string, error)
	PlayersByNationality(ctx context.Context, session, nationality string) ([]player.Player, error)
	PlayersByTeam(ctx context.Context, session, team string) ([]player.Player, error)
	PlayersByPosition(ctx context.Context, session, position string) ([]player.Player, error)
	FilterPlayers(ctx context.Context, session string, filter player.Filter) ([]player.Player, error)
}

// StatsWriter is the admin mutation side of the backend.
type StatsWriter interface {
	CreatePlayer(ctx context.Context, session string, req player.Request) (player.Player, error)
	UpdatePlayer(ctx context.Context, session string, id int64, req player.Request) (player.Player, error)
	PatchPlayer(ctx context.Context, session string, id int64, patch player.PatchRequest) (player.Player, error)
	DeletePlayer(ctx context.Context, session string, id int64) error
}

// AccountGateway resolves the signed-in principal and ends sessions.
type AccountGateway interface {
	CurrentUser(ctx context.Context, session string) (user.Principal, error)
	Logout(ctx context.Context, session string) error
}
