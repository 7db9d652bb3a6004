package usecase

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/mapping"
	"github.com/rahmatrdn/uclboard/internal/platform/logging"
)

// FilterOption is one dropdown choice: the raw backend code as the value and
// the mapped display name as the label.
type FilterOption struct {
	Value string
	Label string
}

// FilterOptions holds the three leaderboard dropdowns.
type FilterOptions struct {
	Nationalities []FilterOption
	Teams         []FilterOption
	Positions     []FilterOption
}

// LeaderboardState is the committed leaderboard view: the filter that
// produced it and the rows the backend returned for it.
type LeaderboardState struct {
	Filter  player.Filter
	Players []player.Player
	Loaded  bool
}

const showMoreStep = 10

// LeaderboardService owns the filtered leaderboard. State is kept per
// session: every fetch is tagged with a sequence number taken when the
// request is issued, and a response only commits when its number is still
// the latest for that viewer, so a slow response for an old filter can never
// overwrite the view for a newer one. Viewers never see each other's filters.
type LeaderboardService struct {
	reader StatsReader
	logger *logging.Logger

	mu      sync.Mutex
	viewers map[string]*viewerState
}

// viewerState is one browser session's committed leaderboard and the
// sequence counter ordering its fetches.
type viewerState struct {
	seq   atomic.Uint64
	mu    sync.Mutex
	state LeaderboardState
}

func NewLeaderboardService(reader StatsReader, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LeaderboardService{
		reader:  reader,
		logger:  logger,
		viewers: make(map[string]*viewerState),
	}
}

// viewer returns the state bucket for a session, creating it on first use.
// Stale buckets are swept when the map grows past a soft cap.
func (s *LeaderboardService) viewer(session string) *viewerState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.viewers[session]; ok {
		return v
	}
	if len(s.viewers) > 4096 {
		s.viewers = make(map[string]*viewerState)
	}
	v := &viewerState{state: LeaderboardState{Filter: player.Filter{}.Normalize()}}
	s.viewers[session] = v
	return v
}

// Options loads the three dropdown lists in parallel and sorts each by label.
func (s *LeaderboardService) Options(ctx context.Context, session string) (FilterOptions, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Options")
	defer span.End()

	var nationalities, teams, positions []string

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		out, err := s.reader.ListNationalities(ctx, session)
		nationalities = out
		return err
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.reader.ListTeams(ctx, session)
		teams = out
		return err
	})
	p.Go(func(ctx context.Context) error {
		out, err := s.reader.ListPositions(ctx, session)
		positions = out
		return err
	})
	if err := p.Wait(); err != nil {
		return FilterOptions{}, err
	}

	return FilterOptions{
		Nationalities: buildOptions(nationalities, mapping.NationDisplayName),
		Teams:         buildOptions(teams, mapping.TeamDisplayName),
		Positions:     buildOptions(positions, mapping.PositionDisplayName),
	}, nil
}

// Apply fetches the leaderboard for filter and commits the result if no newer
// request was issued for the same session in the meantime. A stale response
// is discarded and that viewer's committed state is returned instead.
func (s *LeaderboardService) Apply(ctx context.Context, session string, filter player.Filter) (LeaderboardState, error) {
	ctx, span := startUsecaseSpan(ctx, "LeaderboardService.Apply")
	defer span.End()

	v := s.viewer(session)
	filter = filter.Normalize()
	seq := v.seq.Add(1)

	players, err := s.reader.FilterPlayers(ctx, session, filter)
	if err != nil {
		return LeaderboardState{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if seq != v.seq.Load() {
		s.logger.DebugContext(ctx, "discarding stale leaderboard response",
			"seq", seq, "latest", v.seq.Load(), "filter", filter.String())
		return v.state, nil
	}

	v.state = LeaderboardState{Filter: filter, Players: players, Loaded: true}
	return v.state, nil
}

// ShowMore re-fetches the session's current filter with the limit raised by
// one step.
func (s *LeaderboardService) ShowMore(ctx context.Context, session string) (LeaderboardState, error) {
	v := s.viewer(session)

	v.mu.Lock()
	filter := v.state.Filter
	v.mu.Unlock()

	filter.Limit = filter.Normalize().Limit + showMoreStep
	return s.Apply(ctx, session, filter)
}

// Current returns the session's committed state without touching the backend.
func (s *LeaderboardService) Current(session string) LeaderboardState {
	v := s.viewer(session)

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func buildOptions(codes []string, label func(string) string) []FilterOption {
	out := make([]FilterOption, 0, len(codes))
	for _, code := range codes {
		if code == "" {
			continue
		}
		out = append(out, FilterOption{Value: code, Label: label(code)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
