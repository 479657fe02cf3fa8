// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pollbase/pollbase/models"
	"github.com/pollbase/pollbase/testutil"
)

func TestGetResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, newTestEngine(db))

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optA := testutil.AddTestOption(t, db, pollID, "Option A")
	testutil.AddTestOption(t, db, pollID, "Option B")
	testutil.CastTestVote(t, db, pollID, optA, "bob", "10.0.0.1")

	req := testutil.MakeRequest("GET", "/polls/"+pollID+"/results", nil, nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var results models.PollResults
	testutil.AssertJSON(t, w, &results)
	if results.PollID != pollID || results.TotalVotes != 1 {
		t.Errorf("Unexpected results: %+v", results)
	}
	if results.Options[0].Percentage != 100 {
		t.Errorf("Expected 100%% for the only voted option, got %v", results.Options[0].Percentage)
	}
}

func TestGetResultsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, newTestEngine(db))

	req := testutil.MakeRequest("GET", "/polls/no-such-poll/results", nil, nil)
	req.SetPathValue("id", "no-such-poll")
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestStatistics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, newTestEngine(db))

	pollID := testutil.CreateTestPoll(t, db, "alice", false, nil)
	optA := testutil.AddTestOption(t, db, pollID, "Option A")
	testutil.CastTestVote(t, db, pollID, optA, "bob", "10.0.0.1")

	req := testutil.MakeRequest("GET", "/statistics", nil, nil)
	w := httptest.NewRecorder()
	handler.Statistics(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var stats models.VoteStats
	testutil.AssertJSON(t, w, &stats)
	if stats.TotalPolls != 1 || stats.TotalVotes != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if len(stats.TopPolls) != 1 || stats.TopPolls[0].ID != pollID {
		t.Errorf("Unexpected top polls: %+v", stats.TopPolls)
	}
}

func TestHealth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewResultsHandler(db, newTestEngine(db))

	req := testutil.MakeRequest("GET", "/health", nil, nil)
	w := httptest.NewRecorder()
	handler.Health(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.HealthResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Status != "healthy" || resp.Database != "connected" {
		t.Errorf("Unexpected health payload: %+v", resp)
	}
	if resp.Version == "" || resp.Timestamp == "" {
		t.Error("Expected version and timestamp to be set")
	}
}
