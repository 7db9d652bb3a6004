package usecase

import (
	"context"
	"errors"

	"github.com/rahmatrdn/uclboard/internal/domain/user"
	"github.com/rahmatrdn/uclboard/internal/platform/logging"
)

// SessionState is the auth gate's view of a request.
type SessionState string

const (
	SessionAnonymous     SessionState = "anonymous"
	SessionAuthenticated SessionState = "authenticated"
)

// Session is a resolved browser session: either an authenticated principal or
// anonymous. There is no cached in-between; every resolution is one round
// trip to the backend, which owns the session store.
type Session struct {
	State     SessionState
	Principal user.Principal
}

func (s Session) Authenticated() bool { return s.State == SessionAuthenticated }

// SessionService resolves browser cookies into a session via the backend.
type SessionService struct {
	gateway AccountGateway
	logger  *logging.Logger
}

func NewSessionService(gateway AccountGateway, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SessionService{gateway: gateway, logger: logger}
}

// Resolve asks the backend who the cookies belong to. An unauthorized answer
// means anonymous, not an error; anything else is a real failure.
func (s *SessionService) Resolve(ctx context.Context, session string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "SessionService.Resolve")
	defer span.End()

	if session == "" {
		return Session{State: SessionAnonymous}, nil
	}

	principal, err := s.gateway.CurrentUser(ctx, session)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return Session{State: SessionAnonymous}, nil
		}
		return Session{}, err
	}
	return Session{State: SessionAuthenticated, Principal: principal}, nil
}

// Logout ends the backend session. An already-dead session is not an error.
func (s *SessionService) Logout(ctx context.Context, session string) error {
	ctx, span := startUsecaseSpan(ctx, "SessionService.Logout")
	defer span.End()

	if session == "" {
		return nil
	}
	if err := s.gateway.Logout(ctx, session); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return nil
		}
		return err
	}
	s.logger.DebugContext(ctx, "session ended")
	return nil
}
