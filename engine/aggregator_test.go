// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/pollbase/pollbase/cache"
	"github.com/pollbase/pollbase/testutil"
)

func TestResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optA := testutil.AddTestOption(t, db, pollID, "Option A")
	optB := testutil.AddTestOption(t, db, pollID, "Option B")
	testutil.AddTestOption(t, db, pollID, "Option C")

	testutil.CastTestVote(t, db, pollID, optA, "bob", "10.0.0.1")
	testutil.CastTestVote(t, db, pollID, optA, "carol", "10.0.0.2")
	testutil.CastTestVote(t, db, pollID, optB, "dave", "10.0.0.3")

	results, err := eng.Results(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}

	if results.TotalVotes != 3 {
		t.Errorf("Expected 3 total votes, got %d", results.TotalVotes)
	}
	if len(results.Options) != 3 {
		t.Fatalf("Expected 3 option rows, got %d", len(results.Options))
	}

	// Ordered by count descending, ties by display order
	if results.Options[0].OptionID != optA || results.Options[0].VoteCount != 2 {
		t.Errorf("Expected Option A first with 2 votes, got %+v", results.Options[0])
	}
	if results.Options[1].OptionID != optB || results.Options[1].VoteCount != 1 {
		t.Errorf("Expected Option B second with 1 vote, got %+v", results.Options[1])
	}
	if results.Options[2].VoteCount != 0 {
		t.Errorf("Expected Option C last with 0 votes, got %+v", results.Options[2])
	}

	if results.Options[0].Percentage != 66.67 {
		t.Errorf("Expected 66.67%%, got %v", results.Options[0].Percentage)
	}
	if results.Options[1].Percentage != 33.33 {
		t.Errorf("Expected 33.33%%, got %v", results.Options[1].Percentage)
	}

	var sum float64
	for _, opt := range results.Options {
		sum += opt.Percentage
	}
	if math.Abs(sum-100) > 0.05 {
		t.Errorf("Percentages should sum to ~100, got %v", sum)
	}
}

func TestResultsNoVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	testutil.AddTestOption(t, db, pollID, "Option A")
	testutil.AddTestOption(t, db, pollID, "Option B")

	results, err := eng.Results(context.Background(), pollID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}

	if results.TotalVotes != 0 {
		t.Errorf("Expected 0 total votes, got %d", results.TotalVotes)
	}
	for _, opt := range results.Options {
		if opt.Percentage != 0 {
			t.Errorf("Expected 0%% for %s, got %v", opt.Text, opt.Percentage)
		}
	}

	// Zero-vote ties fall back to display order
	if results.Options[0].Text != "Option A" || results.Options[1].Text != "Option B" {
		t.Errorf("Expected display order on ties, got %q then %q",
			results.Options[0].Text, results.Options[1].Text)
	}
}

func TestResultsUnknownPoll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	_, err := eng.Results(context.Background(), "no-such-poll")
	if !errors.Is(err, ErrPollNotFound) {
		t.Errorf("Expected ErrPollNotFound, got %v", err)
	}
}

func TestResultsCached(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, mem := newTestEngine(db)
	ctx := context.Background()

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optA := testutil.AddTestOption(t, db, pollID, "Option A")
	testutil.AddTestOption(t, db, pollID, "Option B")
	testutil.CastTestVote(t, db, pollID, optA, "bob", "10.0.0.1")

	first, err := eng.Results(ctx, pollID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if _, ok, _ := mem.Get(ctx, cache.ResultsKey(pollID)); !ok {
		t.Fatal("Expected results to be cached")
	}

	// A vote inserted behind the engine's back is invisible until the
	// entry is invalidated
	testutil.CastTestVote(t, db, pollID, optA, "carol", "10.0.0.2")

	cached, err := eng.Results(ctx, pollID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if cached.TotalVotes != first.TotalVotes {
		t.Errorf("Expected cached total %d, got %d", first.TotalVotes, cached.TotalVotes)
	}

	if err := mem.Delete(ctx, cache.ResultsKey(pollID)); err != nil {
		t.Fatalf("Failed to drop cache entry: %v", err)
	}

	fresh, err := eng.Results(ctx, pollID)
	if err != nil {
		t.Fatalf("Results failed: %v", err)
	}
	if fresh.TotalVotes != 2 {
		t.Errorf("Expected fresh total 2, got %d", fresh.TotalVotes)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		count, total int
		expected     float64
	}{
		{0, 0, 0},
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 1, 100},
		{1, 7, 14.29},
		{1, 8, 12.5},
	}

	for _, tt := range tests {
		if got := percentage(tt.count, tt.total); got != tt.expected {
			t.Errorf("percentage(%d, %d) = %v, expected %v", tt.count, tt.total, got, tt.expected)
		}
	}
}
