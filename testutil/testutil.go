// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/pollbase/pollbase/auth"
	"github.com/pollbase/pollbase/cliparse"
	"github.com/pollbase/pollbase/db"
)

// TestJWTSecret signs tokens in tests.
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own database, so tests stay independent; the
// single connection serializes access and keeps the shared-cache handle
// alive for the test's lifetime.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8000,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		JWTSecret:     TestJWTSecret,
		VoteRateLimit: 100,
	}
}

// IssueTestToken signs a bearer token for userID with the test secret.
func IssueTestToken(t *testing.T, userID string) string {
	t.Helper()

	token, err := auth.IssueToken(userID, []byte(TestJWTSecret), time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}
	return token
}

// CreateTestPoll inserts a poll owned by ownerID and returns its ID.
func CreateTestPoll(t *testing.T, conn *sql.DB, ownerID string, allowMultiple bool, expiresAt *time.Time) string {
	t.Helper()

	pollID := uuid.NewString()
	now := time.Now().UTC()

	var expires any
	if expiresAt != nil {
		expires = expiresAt.UTC()
	}

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, description, created_by, created_at, updated_at,
		                  expires_at, is_active, allow_multiple_votes)
		VALUES ($1, 'Test Poll Title', 'A test poll', $2, $3, $4, $5, $6, $7)
	`, pollID, ownerID, now, now, expires, true, allowMultiple)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, text string) string {
	t.Helper()

	optionID := uuid.NewString()
	var order int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM option WHERE poll_id = $1`, pollID).Scan(&order); err != nil {
		t.Fatalf("Failed to count options: %v", err)
	}

	_, err := conn.Exec(`
		INSERT INTO option (id, poll_id, text, display_order)
		VALUES ($1, $2, $3, $4)
	`, optionID, pollID, text, order+1)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CastTestVote inserts a vote row directly, bypassing the engine. Guard
// columns are populated the same way the recorder populates them for a
// single-vote poll.
func CastTestVote(t *testing.T, conn *sql.DB, pollID, optionID, userID, sourceAddr string) string {
	t.Helper()

	voteID := uuid.NewString()
	var userVal, voterID any
	if userID != "" {
		userVal = userID
		voterID = userID
	}

	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, option_id, user_id, ip_address, user_agent,
		                  voter_id, voter_addr, created_at)
		VALUES ($1, $2, $3, $4, $5, 'test-agent', $6, $7, $8)
	`, voteID, pollID, optionID, userVal, sourceAddr, voterID, sourceAddr, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
