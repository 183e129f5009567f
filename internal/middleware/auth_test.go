// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestRequireToken(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
		wantCalled bool
	}{
		{"disabled without token", "", "", http.StatusOK, true},
		{"valid bearer", "s3cret", "Bearer s3cret", http.StatusOK, true},
		{"scheme is case-insensitive", "s3cret", "bearer s3cret", http.StatusOK, true},
		{"missing header", "s3cret", "", http.StatusUnauthorized, false},
		{"wrong token", "s3cret", "Bearer nope", http.StatusUnauthorized, false},
		{"basic auth", "s3cret", "Basic czNjcmV0", http.StatusUnauthorized, false},
		{"empty bearer", "s3cret", "Bearer ", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			handler := RequireToken(tt.token)(next)

			req := httptest.NewRequest(http.MethodPost, "/api/lessons", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rr.Code, tt.wantStatus)
			}
			if *called != tt.wantCalled {
				t.Errorf("next called = %v, want %v", *called, tt.wantCalled)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if rr.Header().Get("WWW-Authenticate") == "" {
					t.Error("missing WWW-Authenticate header")
				}
				if !strings.Contains(rr.Body.String(), `"error":"Unauthorized"`) {
					t.Errorf("body = %q, want JSON error", rr.Body.String())
				}
			}
		})
	}
}
