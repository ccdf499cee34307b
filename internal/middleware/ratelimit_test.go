// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIPRateLimit(t *testing.T) {
	handler := IPRateLimit(1, 2)(okHandler())

	send := func(ip string) int {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.Header.Set("X-Real-IP", ip)
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	// Burst of 2, then rejection.
	if code := send("10.0.0.1"); code != http.StatusOK {
		t.Errorf("first request: expected 200, got %d", code)
	}
	if code := send("10.0.0.1"); code != http.StatusOK {
		t.Errorf("second request: expected 200, got %d", code)
	}
	if code := send("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("third request: expected 429, got %d", code)
	}

	// A different client has its own budget.
	if code := send("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", code)
	}
}

func TestLimiterCacheClear(t *testing.T) {
	lc := newLimiterCache[string](1, 1)
	lc.get("a")
	lc.get("b")

	if lc.clearIfExceeds(5) {
		t.Error("expected no clear below max size")
	}
	if !lc.clearIfExceeds(1) {
		t.Error("expected clear above max size")
	}
	if len(lc.limiters) != 0 {
		t.Errorf("expected empty cache after clear, got %d", len(lc.limiters))
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"x-real-ip", map[string]string{"X-Real-IP": "1.2.3.4"}, "9.9.9.9:1234", "1.2.3.4"},
		{"x-forwarded-for", map[string]string{"X-Forwarded-For": "5.6.7.8"}, "9.9.9.9:1234", "5.6.7.8"},
		{"remote addr", nil, "9.9.9.9:1234", "9.9.9.9:1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
