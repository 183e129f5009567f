// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lessonpress/internal/ai"
	"lessonpress/internal/catalog"
	"lessonpress/internal/engine"
	"lessonpress/internal/handlers"
	"lessonpress/internal/media"
	"lessonpress/internal/middleware"
	"lessonpress/internal/normalize"
)

// newTestRouter wires handlers that need no database. Routes backed by
// PostgreSQL are only exercised up to input validation.
func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	c := catalog.Default()
	n := normalize.New()
	reg := ai.NewRegistry("openai", map[string]ai.ProviderConfig{})
	gen := ai.NewBlockGenerator(reg, c)

	return New(Handlers{
		Catalog:  handlers.NewCatalog(c, n),
		Lessons:  handlers.NewLessons(nil, nil, n, gen, nil, nil),
		AI:       handlers.NewAI(reg, gen, n),
		Uploads:  handlers.NewUploads(media.NewUploader(nil, nil, nil), nil, 0),
		Analysis: handlers.NewAnalysis(c, nil, nil),
		Public:   handlers.NewPublic(engine.New(), nil, nil, nil),
	}, opts)
}

func serve(h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newTestRouter(t, Options{}), http.MethodGet, "/health", "", nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
	if rec.Header().Get("X-Frame-Options") == "" {
		t.Error("security headers should apply to every route")
	}
}

func TestRoutes(t *testing.T) {
	r := newTestRouter(t, Options{})

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodGet, "/api/catalog", "", http.StatusOK},
		{http.MethodGet, "/api/catalog/quote", "", http.StatusOK},
		{http.MethodGet, "/api/catalog/hologram", "", http.StatusOK},
		{http.MethodGet, "/api/analysis/usage", "", http.StatusOK},
		{http.MethodGet, "/api/analysis/ledger", "", http.StatusOK},
		{http.MethodPost, "/api/blocks/preview", `{"type":"text","content":"Hi"}`, http.StatusOK},
		{http.MethodGet, "/api/ai/providers", "", http.StatusOK},
		{http.MethodGet, "/api/lessons/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodPut, "/api/lessons/not-a-uuid/blocks/order", `{"ids":["a"]}`, http.StatusBadRequest},
		{http.MethodPost, "/api/ai/generate", `{"type":"text","topic":"cells"}`, http.StatusBadGateway},
		{http.MethodGet, "/media/preview/abc", "", http.StatusNotFound},
		{http.MethodGet, "/api/nope", "", http.StatusNotFound},
		{http.MethodDelete, "/api/catalog", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := serve(r, tt.method, tt.path, tt.body, map[string]string{"Content-Type": "application/json"})
			if rec.Code != tt.want {
				t.Errorf("got %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAuthoringRequiresToken(t *testing.T) {
	r := newTestRouter(t, Options{APIToken: "s3cret"})
	preview := `{"type":"text","content":"Hi"}`

	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"catalog is public", http.MethodGet, "/api/catalog", "", http.StatusOK},
		{"analysis is public", http.MethodGet, "/api/analysis/usage", "", http.StatusOK},
		{"preview without token", http.MethodPost, "/api/blocks/preview", "", http.StatusUnauthorized},
		{"preview with wrong token", http.MethodPost, "/api/blocks/preview", "Bearer nope", http.StatusUnauthorized},
		{"preview with token", http.MethodPost, "/api/blocks/preview", "Bearer s3cret", http.StatusOK},
		{"lessons without token", http.MethodGet, "/api/lessons/x", "", http.StatusUnauthorized},
		{"providers without token", http.MethodGet, "/api/ai/providers", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := map[string]string{"Content-Type": "application/json"}
			if tt.auth != "" {
				header["Authorization"] = tt.auth
			}
			rec := serve(r, tt.method, tt.path, preview, header)
			if rec.Code != tt.want {
				t.Errorf("got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestAIRateLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	r := newTestRouter(t, Options{AILimiter: rl})
	body := `{"type":"text","topic":"cells"}`

	first := serve(r, http.MethodPost, "/api/ai/generate", body, nil)
	if first.Code == http.StatusTooManyRequests {
		t.Fatal("first request should not be rate limited")
	}
	second := serve(r, http.MethodPost, "/api/ai/generate", body, nil)
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("second request: got %d, want %d", second.Code, http.StatusTooManyRequests)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	// Non-AI routes are not throttled.
	if rec := serve(r, http.MethodGet, "/api/catalog", "", nil); rec.Code != http.StatusOK {
		t.Errorf("catalog after limit: got %d", rec.Code)
	}
}
