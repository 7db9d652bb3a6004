package web

import (
	"github.com/rahmatrdn/uclboard/internal/domain/player"
	"github.com/rahmatrdn/uclboard/internal/domain/user"
	"github.com/rahmatrdn/uclboard/internal/mapping"
	"github.com/rahmatrdn/uclboard/internal/usecase"
)

// pageView is the data every page template receives.
type pageView struct {
	Title     string
	SignedIn  bool
	Principal user.Principal
}

type errorView struct {
	Message string
}

// playerView is one rendered roster/leaderboard row with every raw code
// already mapped to its display form and asset slug.
type playerView struct {
	ID            int64
	Name          string
	PhotoSlug     string
	Nation        string
	FlagSlug      string
	Team          string
	TeamSlug      string
	Position      string
	Age           *int
	MatchesPlayed *int
	Starts        *int
	Minutes       *int
	Goals         *int
	Assists       *int
	PKMade        *int
	XG            *float64
	XAG           *float64
}

func newPlayerView(p player.Player) playerView {
	teamDisplay := mapping.TeamDisplayName(p.Team)
	return playerView{
		ID:            p.ID,
		Name:          p.Name,
		PhotoSlug:     mapping.Slugify(p.Name),
		Nation:        mapping.NationDisplayName(p.Nationality),
		FlagSlug:      mapping.FlagSlug(p.Nationality),
		Team:          teamDisplay,
		TeamSlug:      mapping.Slugify(teamDisplay),
		Position:      mapping.PositionDisplayName(p.Position),
		Age:           p.Age,
		MatchesPlayed: p.MatchesPlayed,
		Starts:        p.Starts,
		Minutes:       p.Minutes,
		Goals:         p.Goals,
		Assists:       p.Assists,
		PKMade:        p.PKMade,
		XG:            p.XG,
		XAG:           p.XAG,
	}
}

func newPlayerViews(players []player.Player) []playerView {
	out := make([]playerView, 0, len(players))
	for _, p := range players {
		out = append(out, newPlayerView(p))
	}
	return out
}

type teamsView struct {
	pageView
	Teams       []usecase.TeamEntry
	Search      string
	NextVisible int
	Error       string
}

type nationsView struct {
	pageView
	Nations     []usecase.NationEntry
	Search      string
	NextVisible int
	Error       string
}

type positionsView struct {
	pageView
	Positions []usecase.PositionEntry
	Error     string
}

type rosterView struct {
	pageView
	Heading  string
	FlagSlug string
	TeamSlug string
	Found    bool
	Players  []playerView
	Error    string
}

type leaderboardView struct {
	pageView
	Options FilterOptionsView
	Filter  player.Filter
	Players []playerView
	Search  string
	Error   string
}

// FilterOptionsView mirrors usecase.FilterOptions for the template.
type FilterOptionsView struct {
	Nationalities []usecase.FilterOption
	Teams         []usecase.FilterOption
	Positions     []usecase.FilterOption
}

type adminView struct {
	pageView
	Players     []playerView
	Search      string
	NextVisible int
	Selected    *playerView
	Form        usecase.FormInput
	Notice      string
	Error       string
	NotAdmin    bool
}
