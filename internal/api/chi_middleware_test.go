// Moodflix - Context-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodflix

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/moodflix/internal/config"
)

func TestAdminRateLimit(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 100
	cfg.AdminRateLimitRequests = 1
	cfg.RateLimitWindow = time.Minute
	s := newTestServer(t, serverOptions{mw: cfg})

	rec, _ := s.do(t, http.MethodGet, "/api/v1/admin/training-runs", "")
	if rec.Code == http.StatusTooManyRequests {
		t.Fatal("first admin request was throttled")
	}

	rec, env := s.do(t, http.MethodGet, "/api/v1/admin/training-runs", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second admin request status = %d, want 429", rec.Code)
	}
	if env.Error == nil || env.Error.Code != CodeRateLimited {
		t.Errorf("error = %+v", env.Error)
	}

	// The API group keeps its own budget.
	rec, _ = s.do(t, http.MethodGet, "/api/v1/model-info", "")
	if rec.Code != http.StatusOK {
		t.Errorf("model-info status = %d, want 200", rec.Code)
	}
}

func TestRateLimit_ProbesExempt(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	s := newTestServer(t, serverOptions{mw: cfg})

	for i := 0; i < 3; i++ {
		if rec, _ := s.do(t, http.MethodGet, "/api/v1/health", ""); rec.Code != http.StatusOK {
			t.Fatalf("health request %d status = %d", i, rec.Code)
		}
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 1
	cfg.AdminRateLimitRequests = 1
	cfg.RateLimitDisabled = true
	s := newTestServer(t, serverOptions{mw: cfg})

	for i := 0; i < 3; i++ {
		if rec, _ := s.do(t, http.MethodGet, "/api/v1/model-info", ""); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = []string{"http://localhost:5173"}
	s := newTestServer(t, serverOptions{mw: cfg})

	tests := []struct {
		name   string
		origin string
		want   string
	}{
		{"allowed origin", "http://localhost:5173", "http://localhost:5173"},
		{"other origin", "http://evil.example", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommend", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChiMiddlewareConfigFromSecurity(t *testing.T) {
	t.Parallel()

	cfg := ChiMiddlewareConfigFromSecurity(config.SecurityConfig{
		RateLimitReqs:      7,
		RateLimitWindow:    30 * time.Second,
		RateLimitDisabled:  true,
		AdminRateLimitReqs: 2,
		CORSOrigins:        []string{"https://app.example"},
	})

	if cfg.RateLimitRequests != 7 || cfg.RateLimitWindow != 30*time.Second || !cfg.RateLimitDisabled {
		t.Errorf("rate limit = %d/%v disabled=%v", cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.RateLimitDisabled)
	}
	if cfg.AdminRateLimitRequests != 2 {
		t.Errorf("AdminRateLimitRequests = %d, want 2", cfg.AdminRateLimitRequests)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "https://app.example" {
		t.Errorf("CORSAllowedOrigins = %v", cfg.CORSAllowedOrigins)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, serverOptions{loaded: true})

	s.do(t, http.MethodPost, "/api/v1/recommend", `{"mood":"Happy","weather":"Sunny","day":"Weekend"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	for _, name := range []string{"recommend_requests_total", "api_requests_total"} {
		if !strings.Contains(rec.Body.String(), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\tand\rreturn", `tab\x09and\x0dreturn`},
		{"del\x7f", `del\x7f`},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
