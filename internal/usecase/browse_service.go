package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/mapping"
	"github.com/rahmatrdn/uclboard/internal/platform/cache"
	"github.com/rahmatrdn/uclboard/internal/platform/logging"
)

// TeamEntry is one team in the browse index: the backend's raw code plus the
// derived display name and URL slug.
type TeamEntry struct {
	RawCode     string
	DisplayName string
	Slug        string
}

// NationEntry is one nationality in the browse index.
type NationEntry struct {
	RawCode     string
	DisplayName string
	FlagSlug    string
}

// PositionEntry is one position in the browse index.
type PositionEntry struct {
	Code        string
	DisplayName string
}

// TeamPage is a team roster resolved from a URL slug. Found is false when no
// known team code slugifies to the requested slug.
type TeamPage struct {
	Found       bool
	RawCode     string
	DisplayName string
	Players     []player.Player
}

// NationPage is a nationality roster resolved from a flag slug.
type NationPage struct {
	Found       bool
	RawCode     string
	DisplayName string
	FlagSlug    string
	Players     []player.Player
}

// PositionPage is a position roster.
type PositionPage struct {
	Found       bool
	Code        string
	DisplayName string
	Players     []player.Player
}

// BrowseService serves the team/nation/position index pages and their
// rosters. Lookup lists are cached because they only change when the admin
// edits the dataset.
type BrowseService struct {
	reader StatsReader
	cache  *cache.Store
	logger *logging.Logger
}

func NewBrowseService(reader StatsReader, store *cache.Store, logger *logging.Logger) *BrowseService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BrowseService{reader: reader, cache: store, logger: logger}
}

func (s *BrowseService) Teams(ctx context.Context, session string) ([]TeamEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "BrowseService.Teams")
	defer span.End()

	codes, err := s.teamCodes(ctx, session)
	if err != nil {
		return nil, err
	}

	out := make([]TeamEntry, 0, len(codes))
	for _, code := range codes {
		display := mapping.TeamDisplayName(code)
		out = append(out, TeamEntry{
			RawCode:     code,
			DisplayName: display,
			Slug:        mapping.Slugify(display),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (s *BrowseService) Nations(ctx context.Context, session string) ([]NationEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "BrowseService.Nations")
	defer span.End()

	codes, err := s.nationalityCodes(ctx, session)
	if err != nil {
		return nil, err
	}

	out := make([]NationEntry, 0, len(codes))
	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		out = append(out, NationEntry{
			RawCode:     code,
			DisplayName: mapping.NationDisplayName(code),
			FlagSlug:    mapping.FlagSlug(code),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (s *BrowseService) Positions(ctx context.Context, session string) ([]PositionEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "BrowseService.Positions")
	defer span.End()

	codes, err := s.positionCodes(ctx, session)
	if err != nil {
		return nil, err
	}

	out := make([]PositionEntry, 0, len(codes))
	for _, code := range codes {
		if strings.TrimSpace(code) == "" {
			continue
		}
		out = append(out, PositionEntry{Code: code, DisplayName: mapping.PositionDisplayName(code)})
	}
	return out, nil
}

// TeamPlayers resolves a URL slug back to the backend's raw team code by
// slugifying every known code's display name and taking the first match.
func (s *BrowseService) TeamPlayers(ctx context.Context, session, slug string) (TeamPage, error) {
	ctx, span := startUsecaseSpan(ctx, "BrowseService.TeamPlayers")
	defer span.End()

	if strings.TrimSpace(slug) == "" {
		return TeamPage{}, fmt.Errorf("%w: team slug cannot be empty", ErrInvalidInput)
	}

	codes, err := s.teamCodes(ctx, session)
	if err != nil {
		return TeamPage{}, err
	}

	for _, code := range codes {
		display := mapping.TeamDisplayName(code)
		if mapping.Slugify(display) != slug {
			continue
		}
		players, err := s.reader.PlayersByTeam(ctx, session, code)
		if err != nil {
			return TeamPage{}, err
		}
		return TeamPage{Found: true, RawCode: code, DisplayName: display, Players: players}, nil
	}

	s.logger.DebugContext(ctx, "team slug did not match any known team", "slug", slug)
	return TeamPage{}, nil
}

// NationPlayers resolves a flag slug through the nation table first, falling
// back to matching the slugified raw codes from the backend when the table
// has no entry.
func (s *BrowseService) NationPlayers(ctx context.Context, session, flagSlug string) (NationPage, error) {
	ctx, span := startUsecaseSpan(ctx, "BrowseService.NationPlayers")
	defer span.End()

	if strings.TrimSpace(flagSlug) == "" {
		return NationPage{}, fmt.Errorf("%w: nation slug cannot be empty", ErrInvalidInput)
	}

	if nation, ok := mapping.NationByFlagSlug(flagSlug); ok {
		players, err := s.reader.PlayersByNationality(ctx, session, nation.RawCode)
		if err != nil {
			return NationPage{}, err
		}
		return NationPage{
			Found:       true,
			RawCode:     nation.RawCode,
			DisplayName: nation.DisplayName,
			FlagSlug:    nation.FlagSlug,
			Players:     players,
		}, nil
	}

	codes, err := s.nationalityCodes(ctx, session)
	if err != nil {
		return NationPage{}, err
	}
	for _, code := range codes {
		if mapping.FlagSlug(code) != flagSlug {
			continue
		}
		players, err := s.reader.PlayersByNationality(ctx, session, code)
		if err != nil {
			return NationPage{}, err
		}
		return NationPage{
			Found:       true,
			RawCode:     code,
			DisplayName: mapping.NationDisplayName(code),
			FlagSlug:    flagSlug,
			Players:     players,
		}, nil
	}

	s.logger.DebugContext(ctx, "nation slug did not match any known nationality", "slug", flagSlug)
	return NationPage{}, nil
}

func (s *BrowseService) PositionPlayers(ctx context.Context, session, code string) (PositionPage, error) {
	ctx, span := startUsecaseSpan(ctx, "BrowseService.PositionPlayers")
	defer span.End()

	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return PositionPage{}, fmt.Errorf("%w: position code cannot be empty", ErrInvalidInput)
	}

	known := false
	for _, candidate := range mapping.PositionCodes() {
		if candidate == code {
			known = true
			break
		}
	}
	if !known {
		return PositionPage{}, nil
	}

	players, err := s.reader.PlayersByPosition(ctx, session, code)
	if err != nil {
		return PositionPage{}, err
	}
	return PositionPage{
		Found:       true,
		Code:        code,
		DisplayName: mapping.PositionDisplayName(code),
		Players:     players,
	}, nil
}

func (s *BrowseService) teamCodes(ctx context.Context, session string) ([]string, error) {
	return s.lookupCodes(ctx, "lookup:teams", func() ([]string, error) {
		return s.reader.ListTeams(ctx, session)
	})
}

func (s *BrowseService) nationalityCodes(ctx context.Context, session string) ([]string, error) {
	return s.lookupCodes(ctx, "lookup:nationalities", func() ([]string, error) {
		return s.reader.ListNationalities(ctx, session)
	})
}

func (s *BrowseService) positionCodes(ctx context.Context, session string) ([]string, error) {
	return s.lookupCodes(ctx, "lookup:positions", func() ([]string, error) {
		return s.reader.ListPositions(ctx, session)
	})
}

// lookupCodes caches the distinct-code lists. The lists are the same for
// every signed-in viewer, so the cache key carries no session.
func (s *BrowseService) lookupCodes(ctx context.Context, key string, load func() ([]string, error)) ([]string, error) {
	if s.cache == nil {
		return load()
	}

	out, err := s.cache.GetOrLoad(key, func() (any, error) {
		codes, err := load()
		if err != nil {
			return nil, err
		}
		return codes, nil
	})
	if err != nil {
		return nil, err
	}
	codes, ok := out.([]string)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type %T for %s", out, key)
	}
	return codes, nil
}

// InvalidateLookups drops the cached code lists. Called after admin
// mutations so new teams or nationalities appear without waiting out the TTL.
func (s *BrowseService) InvalidateLookups() {
	if s.cache == nil {
		return
	}
	s.cache.Delete("lookup:teams")
	s.cache.Delete("lookup:nationalities")
	s.cache.Delete("lookup:positions")
}
