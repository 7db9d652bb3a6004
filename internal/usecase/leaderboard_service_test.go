package usecase

import (
	"context"
	"testing"

	"github.com/rahmatrdn/uclboard/internal/domain/player"
)

func TestLeaderboardService_ApplyNormalizesAndCommits(t *testing.T) {
	stats := browseFixture()
	svc := NewLeaderboardService(stats, nil)

	state, err := svc.Apply(context.Background(), "", player.Filter{SortBy: "bogus", MinGoals: -3})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if !state.Loaded {
		t.Fatal("expected committed state")
	}
	if stats.lastFilter.SortBy != player.SortByGoals {
		t.Fatalf("sortBy sent = %q, want fallback to goals", stats.lastFilter.SortBy)
	}
	if stats.lastFilter.MinGoals != 0 || stats.lastFilter.Limit != 10 {
		t.Fatalf("unexpected normalized filter %+v", stats.lastFilter)
	}
}

func TestLeaderboardService_StaleResponseIsDiscarded(t *testing.T) {
	stats := browseFixture()
	svc := NewLeaderboardService(stats, nil)

	oldRows := []player.Player{{ID: 99, Name: "Old Row"}}
	newRows := []player.Player{{ID: 1, Name: "New Row"}}

	// The first request's fetch triggers a second Apply before returning, so
	// by the time the first response arrives a newer sequence number exists.
	first := true
	stats.onFilter = func(filter player.Filter) ([]player.Player, error) {
		if !first {
			return newRows, nil
		}
		first = false
		if _, err := svc.Apply(context.Background(), "", player.Filter{Team: "eng Manchester City"}); err != nil {
			t.Fatalf("nested Apply error: %v", err)
		}
		return oldRows, nil
	}

	state, err := svc.Apply(context.Background(), "", player.Filter{})
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if len(state.Players) != 1 || state.Players[0].Name != "New Row" {
		t.Fatalf("stale response overwrote newer state: %+v", state.Players)
	}
	if current := svc.Current(""); current.Filter.Team != "eng Manchester City" {
		t.Fatalf("committed filter = %+v, want the newer request's filter", current.Filter)
	}
}

func TestLeaderboardService_ShowMoreRaisesLimit(t *testing.T) {
	stats := browseFixture()
	svc := NewLeaderboardService(stats, nil)

	if _, err := svc.Apply(context.Background(), "", player.Filter{MinGoals: 5, Limit: 10}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if _, err := svc.ShowMore(context.Background(), ""); err != nil {
		t.Fatalf("ShowMore error: %v", err)
	}

	if stats.lastFilter.Limit != 20 {
		t.Fatalf("limit after show more = %d, want 20", stats.lastFilter.Limit)
	}
	if stats.lastFilter.MinGoals != 5 {
		t.Fatalf("minGoals = %d, show more must keep the other filters", stats.lastFilter.MinGoals)
	}
}

func TestLeaderboardService_SessionsDoNotShareFilters(t *testing.T) {
	stats := browseFixture()
	svc := NewLeaderboardService(stats, nil)

	if _, err := svc.Apply(context.Background(), "JSESSIONID=a", player.Filter{MinGoals: 5, Limit: 10}); err != nil {
		t.Fatalf("Apply for a: %v", err)
	}
	if _, err := svc.Apply(context.Background(), "JSESSIONID=b", player.Filter{Team: "de Bayern Munich", Limit: 30}); err != nil {
		t.Fatalf("Apply for b: %v", err)
	}

	// a's show-more must re-run a's own filter, untouched by b's.
	if _, err := svc.ShowMore(context.Background(), "JSESSIONID=a"); err != nil {
		t.Fatalf("ShowMore for a: %v", err)
	}
	if stats.lastFilter.Team != "" || stats.lastFilter.MinGoals != 5 || stats.lastFilter.Limit != 20 {
		t.Fatalf("a's show-more fetched %+v, want a's own filter with limit 20", stats.lastFilter)
	}

	if current := svc.Current("JSESSIONID=b"); current.Filter.Team != "de Bayern Munich" || current.Filter.Limit != 30 {
		t.Fatalf("b's committed state disturbed: %+v", current.Filter)
	}
}

func TestLeaderboardService_OptionsSortedByLabelWithRawValues(t *testing.T) {
	stats := browseFixture()
	svc := NewLeaderboardService(stats, nil)

	opts, err := svc.Options(context.Background(), "")
	if err != nil {
		t.Fatalf("Options error: %v", err)
	}

	if len(opts.Teams) != 2 {
		t.Fatalf("got %d team options", len(opts.Teams))
	}
	if opts.Teams[0].Label != "Manchester City" || opts.Teams[0].Value != "eng Manchester City" {
		t.Fatalf("unexpected first team option %+v", opts.Teams[0])
	}

	if len(opts.Nationalities) != 3 {
		t.Fatalf("got %d nationality options, blank codes should be dropped", len(opts.Nationalities))
	}
	if opts.Nationalities[0].Label != "Brazil" || opts.Nationalities[0].Value != "br BRA" {
		t.Fatalf("unexpected first nationality option %+v", opts.Nationalities[0])
	}

	if len(opts.Positions) != 4 {
		t.Fatalf("got %d position options", len(opts.Positions))
	}
}

func TestLeaderboardService_FetchErrorLeavesStateUntouched(t *testing.T) {
	stats := browseFixture()
	svc := NewLeaderboardService(stats, nil)

	if _, err := svc.Apply(context.Background(), "", player.Filter{}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}

	stats.failWith = ErrDependencyUnavailable
	if _, err := svc.Apply(context.Background(), "", player.Filter{Team: "x"}); err == nil {
		t.Fatal("expected fetch failure")
	}

	current := svc.Current("")
	if !current.Loaded || current.Filter.Team != "" {
		t.Fatalf("failed fetch must not disturb committed state: %+v", current)
	}
}
