// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pollbase/pollbase/auth"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.10:54321",
			expected:   "192.168.1.10",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5"},
			expected:   "203.0.113.5",
		},
		{
			name:       "x-forwarded-for chain",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			expected:   "203.0.113.5",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			expected:   "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := GetClientIP(req); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Error("Fourth request should be blocked")
	}

	// Other keys are unaffected
	if !rl.Allow("5.6.7.8") {
		t.Error("Different key should be allowed")
	}
}

func TestRateLimiterWrap(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	handler := rl.Wrap(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("POST", "/vote", nil)
	req.RemoteAddr = "9.9.9.9:1000"

	w := httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("First request: expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Second request: expected 429, got %d", w.Code)
	}
}

func TestIdentityOptional(t *testing.T) {
	secret := []byte("test-secret")
	var seenUserID string
	handler := Identity(secret)(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = UserID(r)
		w.WriteHeader(http.StatusOK)
	})

	// Anonymous request passes through
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("POST", "/vote", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Anonymous request: expected 200, got %d", w.Code)
	}
	if seenUserID != "" {
		t.Errorf("Expected empty user ID, got %q", seenUserID)
	}

	// Valid token resolves the user
	token, err := auth.IssueToken("user-7", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	req := httptest.NewRequest("POST", "/vote", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Authenticated request: expected 200, got %d", w.Code)
	}
	if seenUserID != "user-7" {
		t.Errorf("Expected user-7, got %q", seenUserID)
	}

	// A bad token is rejected, not treated as anonymous
	req = httptest.NewRequest("POST", "/vote", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Bad token: expected 401, got %d", w.Code)
	}
}

func TestRequireIdentity(t *testing.T) {
	secret := []byte("test-secret")
	handler := RequireIdentity(secret)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Missing token
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest("POST", "/polls", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Missing token: expected 401, got %d", w.Code)
	}

	// Wrong scheme
	req := httptest.NewRequest("POST", "/polls", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Wrong scheme: expected 401, got %d", w.Code)
	}

	// Valid token
	token, err := auth.IssueToken("user-7", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	req = httptest.NewRequest("POST", "/polls", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Valid token: expected 200, got %d", w.Code)
	}
}
