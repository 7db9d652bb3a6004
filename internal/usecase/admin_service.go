package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/mapping"
	"github.com/rahmatrdn/uclboard/internal/platform/logging"
)

// FormInput is the admin form exactly as posted: every field a raw string,
// blank meaning "not filled in". The split between blank and zero matters
// because create sends explicit nulls while patch omits untouched fields.
type FormInput struct {
	Name             string
	Nationality      string
	Position         string
	Team             string
	Age              string
	MatchesPlayed    string
	GamesStarted     string
	Minutes          string
	Goals            string
	Assists          string
	PenaltyKicksMade string
	XG               string
	XAG              string
}

// AdminService handles player mutations. Every successful mutation re-fetches
// the full list from the backend so the admin table always reflects what the
// server holds, never a locally patched copy.
type AdminService struct {
	reader   StatsReader
	writer   StatsWriter
	validate *validator.Validate
	logger   *logging.Logger
	onMutate func()
}

func NewAdminService(reader StatsReader, writer StatsWriter, logger *logging.Logger, onMutate func()) *AdminService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &AdminService{
		reader:   reader,
		writer:   writer,
		validate: validator.New(),
		logger:   logger,
		onMutate: onMutate,
	}
}

func (s *AdminService) ListPlayers(ctx context.Context, session string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AdminService.ListPlayers")
	defer span.End()

	return s.reader.ListPlayers(ctx, session)
}

// Create validates and submits a new player, then returns the created row and
// the refreshed full list.
func (s *AdminService) Create(ctx context.Context, session string, input FormInput) (player.Player, []player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AdminService.Create")
	defer span.End()

	req, err := BuildRequest(input)
	if err != nil {
		return player.Player{}, nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return player.Player{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.writer.CreatePlayer(ctx, session, req)
	if err != nil {
		return player.Player{}, nil, err
	}
	s.logger.InfoContext(ctx, "player created", "id", created.ID, "name", created.Name)

	players, err := s.refresh(ctx, session)
	return created, players, err
}

// Update replaces every field of an existing player.
func (s *AdminService) Update(ctx context.Context, session string, id int64, input FormInput) (player.Player, []player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AdminService.Update")
	defer span.End()

	if id <= 0 {
		return player.Player{}, nil, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	req, err := BuildRequest(input)
	if err != nil {
		return player.Player{}, nil, err
	}
	if err := s.validate.Struct(req); err != nil {
		return player.Player{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.writer.UpdatePlayer(ctx, session, id, req)
	if err != nil {
		return player.Player{}, nil, err
	}
	s.logger.InfoContext(ctx, "player updated", "id", updated.ID, "name", updated.Name)

	players, err := s.refresh(ctx, session)
	return updated, players, err
}

// Patch sends only the fields the admin actually filled in.
func (s *AdminService) Patch(ctx context.Context, session string, id int64, input FormInput) (player.Player, []player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AdminService.Patch")
	defer span.End()

	if id <= 0 {
		return player.Player{}, nil, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	patch, err := BuildPatch(input)
	if err != nil {
		return player.Player{}, nil, err
	}
	if patch.IsEmpty() {
		return player.Player{}, nil, fmt.Errorf("%w: patch has no fields to update", ErrInvalidInput)
	}

	patched, err := s.writer.PatchPlayer(ctx, session, id, patch)
	if err != nil {
		return player.Player{}, nil, err
	}
	s.logger.InfoContext(ctx, "player patched", "id", patched.ID)

	players, err := s.refresh(ctx, session)
	return patched, players, err
}

// Delete removes a player. The confirmed flag must be set by an explicit user
// action; without it the delete is rejected before touching the backend.
func (s *AdminService) Delete(ctx context.Context, session string, id int64, confirmed bool) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "AdminService.Delete")
	defer span.End()

	if id <= 0 {
		return nil, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}
	if !confirmed {
		return nil, fmt.Errorf("%w: delete must be confirmed", ErrConfirmationRequired)
	}

	if err := s.writer.DeletePlayer(ctx, session, id); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "player deleted", "id", id)

	return s.refresh(ctx, session)
}

func (s *AdminService) refresh(ctx context.Context, session string) ([]player.Player, error) {
	if s.onMutate != nil {
		s.onMutate()
	}
	players, err := s.reader.ListPlayers(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("mutation applied but list refresh failed: %w", err)
	}
	return players, nil
}

// SearchPlayers filters the already fetched list locally. The query matches
// the player name, the mapped team and nation display names, and the position
// display name, all case-insensitive.
func SearchPlayers(players []player.Player, query string) []player.Player {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return players
	}

	out := make([]player.Player, 0, len(players))
	for _, p := range players {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(mapping.TeamDisplayName(p.Team)), query) ||
			strings.Contains(strings.ToLower(mapping.NationDisplayName(p.Nationality)), query) ||
			strings.Contains(strings.ToLower(mapping.PositionDisplayName(p.Position)), query) {
			out = append(out, p)
		}
	}
	return out
}

// BuildRequest converts the posted form into a full create/replace payload.
// Blank numeric fields become nil pointers, which marshal to explicit nulls.
func BuildRequest(input FormInput) (player.Request, error) {
	req := player.Request{
		Name:        strings.TrimSpace(input.Name),
		Nationality: strings.TrimSpace(input.Nationality),
		Position:    strings.ToUpper(strings.TrimSpace(input.Position)),
		Team:        strings.TrimSpace(input.Team),
	}

	var err error
	if req.Age, err = parseOptionalInt("age", input.Age); err != nil {
		return player.Request{}, err
	}
	if req.MatchesPlayed, err = parseOptionalInt("matchesPlayed", input.MatchesPlayed); err != nil {
		return player.Request{}, err
	}
	if req.GamesStarted, err = parseOptionalInt("gamesStarted", input.GamesStarted); err != nil {
		return player.Request{}, err
	}
	if req.Minutes, err = parseOptionalInt("minutes", input.Minutes); err != nil {
		return player.Request{}, err
	}
	if req.Goals, err = parseOptionalInt("goals", input.Goals); err != nil {
		return player.Request{}, err
	}
	if req.Assists, err = parseOptionalInt("assists", input.Assists); err != nil {
		return player.Request{}, err
	}
	if req.PenaltyKicksMade, err = parseOptionalInt("penaltyKicksMade", input.PenaltyKicksMade); err != nil {
		return player.Request{}, err
	}
	if req.XG, err = parseOptionalFloat("xg", input.XG); err != nil {
		return player.Request{}, err
	}
	if req.XAG, err = parseOptionalFloat("xag", input.XAG); err != nil {
		return player.Request{}, err
	}

	return req, nil
}

// BuildPatch converts the posted form into a partial payload carrying only
// the non-blank fields.
func BuildPatch(input FormInput) (player.PatchRequest, error) {
	var patch player.PatchRequest

	if v := strings.TrimSpace(input.Name); v != "" {
		patch.Name = &v
	}
	if v := strings.TrimSpace(input.Nationality); v != "" {
		patch.Nationality = &v
	}
	if v := strings.ToUpper(strings.TrimSpace(input.Position)); v != "" {
		patch.Position = &v
	}
	if v := strings.TrimSpace(input.Team); v != "" {
		patch.Team = &v
	}

	var err error
	if patch.Age, err = parseOptionalInt("age", input.Age); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.MatchesPlayed, err = parseOptionalInt("matchesPlayed", input.MatchesPlayed); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.GamesStarted, err = parseOptionalInt("gamesStarted", input.GamesStarted); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.Minutes, err = parseOptionalInt("minutes", input.Minutes); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.Goals, err = parseOptionalInt("goals", input.Goals); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.Assists, err = parseOptionalInt("assists", input.Assists); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.PenaltyKicksMade, err = parseOptionalInt("penaltyKicksMade", input.PenaltyKicksMade); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.XG, err = parseOptionalFloat("xg", input.XG); err != nil {
		return player.PatchRequest{}, err
	}
	if patch.XAG, err = parseOptionalFloat("xag", input.XAG); err != nil {
		return player.PatchRequest{}, err
	}

	return patch, nil
}

func parseOptionalInt(field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a whole number", ErrInvalidInput, field)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, field)
	}
	return &v, nil
}

func parseOptionalFloat(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidInput, field)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, field)
	}
	return &v, nil
}
