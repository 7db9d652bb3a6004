package player

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Position codes as stored by the backend.
const (
	PositionGoalkeeper = "GK"
	PositionDefender   = "DF"
	PositionMidfielder = "MF"
	PositionForward    = "FW"
)

// Player is one season row as the backend serializes it. Numeric statistics
// are pointers because the dataset carries explicit nulls; the backend is the
// sole owner of these fields.
type Player struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Nationality   string   `json:"nationality"`
	Team          string   `json:"team"`
	Position      string   `json:"position"`
	Age           *int     `json:"age"`
	MatchesPlayed *int     `json:"matchesPlayed"`
	Starts        *int     `json:"starts"`
	Minutes       *int     `json:"minutes"`
	Goals         *int     `json:"goals"`
	Assists       *int     `json:"assists"`
	PKMade        *int     `json:"pkMade"`
	XG            *float64 `json:"xg"`
	XAG           *float64 `json:"xag"`
}

func (p Player) GoalsOrZero() int   { return intOrZero(p.Goals) }
func (p Player) AssistsOrZero() int { return intOrZero(p.Assists) }
func (p Player) XGOrZero() float64  { return floatOrZero(p.XG) }
func (p Player) XAGOrZero() float64 { return floatOrZero(p.XAG) }
func (p Player) MatchesOrZero() int { return intOrZero(p.MatchesPlayed) }
func (p Player) StartsOrZero() int  { return intOrZero(p.Starts) }
func (p Player) MinutesOrZero() int { return intOrZero(p.Minutes) }
func (p Player) PKMadeOrZero() int  { return intOrZero(p.PKMade) }

// Request is the full create/replace payload. Pointer numerics marshal to an
// explicit JSON null when the form field was left blank; the backend reads
// null as "unset", never as "unchanged".
type Request struct {
	Name             string   `json:"name" validate:"required"`
	Nationality      string   `json:"nationality" validate:"required"`
	Position         string   `json:"position" validate:"required,oneof=GK DF MF FW"`
	Team             string   `json:"team" validate:"required"`
	Age              *int     `json:"age"`
	MatchesPlayed    *int     `json:"matchesPlayed"`
	GamesStarted     *int     `json:"gamesStarted"`
	Minutes          *int     `json:"minutes"`
	Goals            *int     `json:"goals"`
	Assists          *int     `json:"assists"`
	PenaltyKicksMade *int     `json:"penaltyKicksMade"`
	XG               *float64 `json:"xg"`
	XAG              *float64 `json:"xag"`
}

// PatchRequest carries only the fields the caller actually set. omitempty on
// pointers keeps untouched fields out of the wire payload entirely, which the
// backend reads as "leave unchanged".
type PatchRequest struct {
	Name             *string  `json:"name,omitempty"`
	Nationality      *string  `json:"nationality,omitempty"`
	Position         *string  `json:"position,omitempty"`
	Team             *string  `json:"team,omitempty"`
	Age              *int     `json:"age,omitempty"`
	MatchesPlayed    *int     `json:"matchesPlayed,omitempty"`
	GamesStarted     *int     `json:"gamesStarted,omitempty"`
	Minutes          *int     `json:"minutes,omitempty"`
	Goals            *int     `json:"goals,omitempty"`
	Assists          *int     `json:"assists,omitempty"`
	PenaltyKicksMade *int     `json:"penaltyKicksMade,omitempty"`
	XG               *float64 `json:"xg,omitempty"`
	XAG              *float64 `json:"xag,omitempty"`
}

// IsEmpty reports whether the patch would send no fields at all.
func (r PatchRequest) IsEmpty() bool {
	return r.Name == nil && r.Nationality == nil && r.Position == nil && r.Team == nil &&
		r.Age == nil && r.MatchesPlayed == nil && r.GamesStarted == nil && r.Minutes == nil &&
		r.Goals == nil && r.Assists == nil && r.PenaltyKicksMade == nil && r.XG == nil && r.XAG == nil
}

// Sort keys accepted by the leaderboard endpoint.
const (
	SortByGoals   = "goals"
	SortByAssists = "assists"
	SortByXG      = "xg"
	SortByXAG     = "xag"
)

// Filter is the leaderboard filter set. All fields are serialized on every
// fetch, empty strings included, matching the backend's optional-param
// contract.
type Filter struct {
	Nationality string
	Position    string
	Team        string
	MinGoals    int
	SortBy      string
	Limit       int
}

// Normalize clamps the filter to the values the upstream accepts: a known
// sort key, a non-negative goal floor, and a limit of at least one.
func (f Filter) Normalize() Filter {
	switch f.SortBy {
	case SortByGoals, SortByAssists, SortByXG, SortByXAG:
	default:
		f.SortBy = SortByGoals
	}
	if f.MinGoals < 0 {
		f.MinGoals = 0
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	return f
}

// Query serializes the filter for GET /players/filter.
func (f Filter) Query() url.Values {
	values := url.Values{}
	values.Set("nationality", f.Nationality)
	values.Set("position", f.Position)
	values.Set("team", f.Team)
	values.Set("minGoals", strconv.Itoa(f.MinGoals))
	values.Set("sortBy", f.SortBy)
	values.Set("limit", strconv.Itoa(f.Limit))
	return values
}

func (f Filter) String() string {
	return fmt.Sprintf("nationality=%s position=%s team=%s minGoals=%d sortBy=%s limit=%d",
		f.Nationality, f.Position, f.Team, f.MinGoals, f.SortBy, f.Limit)
}

// MatchesName reports whether the player's name contains q, case-insensitive.
// Name search always runs locally over the fetched page, never upstream.
func (p Player) MatchesName(q string) bool {
	if strings.TrimSpace(q) == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(q))
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
