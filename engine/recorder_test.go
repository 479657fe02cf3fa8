// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pollbase/pollbase/cache"
	"github.com/pollbase/pollbase/testutil"
)

func TestCastVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optionID := testutil.AddTestOption(t, db, pollID, "Option A")

	voteID, err := eng.CastVote(context.Background(), optionID, "bob", "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}
	if voteID == "" {
		t.Fatal("Expected non-empty vote ID")
	}

	var userID, ipAddress, voterID, voterAddr string
	err = db.QueryRow(`
		SELECT user_id, ip_address, voter_id, voter_addr FROM vote WHERE id = $1
	`, voteID).Scan(&userID, &ipAddress, &voterID, &voterAddr)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if userID != "bob" || ipAddress != "10.0.0.1" {
		t.Errorf("Unexpected vote row: user=%q addr=%q", userID, ipAddress)
	}
	if voterID != "bob" || voterAddr != "10.0.0.1" {
		t.Errorf("Guard columns not populated for single-vote poll: %q %q", voterID, voterAddr)
	}
}

func TestCastVoteAnonymous(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optionID := testutil.AddTestOption(t, db, pollID, "Option A")

	voteID, err := eng.CastVote(context.Background(), optionID, "", "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("Anonymous vote failed: %v", err)
	}

	var userID any
	if err := db.QueryRow(`SELECT user_id FROM vote WHERE id = $1`, voteID).Scan(&userID); err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if userID != nil {
		t.Errorf("Expected NULL user_id for anonymous vote, got %v", userID)
	}
}

func TestCastVoteDuplicateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optionID := testutil.AddTestOption(t, db, pollID, "Option A")

	if _, err := eng.CastVote(context.Background(), optionID, "bob", "10.0.0.1", "agent"); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}

	_, err := eng.CastVote(context.Background(), optionID, "bob", "10.0.0.2", "agent")
	if !errors.Is(err, ErrDuplicateUserVote) {
		t.Errorf("Expected ErrDuplicateUserVote, got %v", err)
	}
}

func TestCastVoteDuplicateAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optionID := testutil.AddTestOption(t, db, pollID, "Option A")

	if _, err := eng.CastVote(context.Background(), optionID, "", "10.0.0.1", "agent"); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}

	_, err := eng.CastVote(context.Background(), optionID, "", "10.0.0.1", "agent")
	if !errors.Is(err, ErrDuplicateAddressVote) {
		t.Errorf("Expected ErrDuplicateAddressVote, got %v", err)
	}
}

func TestCastVoteMultipleAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", true, nil)
	optionID := testutil.AddTestOption(t, db, pollID, "Option A")

	for i := 0; i < 3; i++ {
		if _, err := eng.CastVote(context.Background(), optionID, "bob", "10.0.0.1", "agent"); err != nil {
			t.Fatalf("Vote %d failed: %v", i+1, err)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 votes, got %d", count)
	}
}

// TestConcurrentDuplicateVotes verifies that simultaneous votes from the
// same identity on a single-vote poll produce exactly one stored vote.
func TestConcurrentDuplicateVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, _ := newTestEngine(db)

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optionID := testutil.AddTestOption(t, db, pollID, "Option A")

	numAttempts := 8
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := eng.CastVote(context.Background(), optionID, "bob", "10.0.0.1", "agent")
			if err == nil {
				successCount.Add(1)
			} else if !errors.Is(err, ErrDuplicateVote) {
				t.Errorf("Expected duplicate-vote rejection, got %v", err)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&count); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 vote in database, got %d", count)
	}
}

func TestCastVoteInvalidatesCaches(t *testing.T) {
	db := testutil.SetupTestDB(t)
	eng, mem := newTestEngine(db)
	ctx := context.Background()

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optionID := testutil.AddTestOption(t, db, pollID, "Option A")

	// Seed the entries a vote must drop
	for _, key := range []string{cache.ResultsKey(pollID), cache.KeyPollStats, cache.KeyTopPolls} {
		if err := mem.Set(ctx, key, []byte("stale"), 0); err != nil {
			t.Fatalf("Failed to seed cache: %v", err)
		}
	}

	if _, err := eng.CastVote(ctx, optionID, "bob", "10.0.0.1", "agent"); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	for _, key := range []string{cache.ResultsKey(pollID), cache.KeyPollStats, cache.KeyTopPolls} {
		if _, ok, _ := mem.Get(ctx, key); ok {
			t.Errorf("Expected %s to be invalidated", key)
		}
	}
}
