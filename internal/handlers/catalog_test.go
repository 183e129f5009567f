// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lessonpress/internal/catalog"
	"lessonpress/internal/models"
	"lessonpress/internal/normalize"
)

func newTestCatalog() *Catalog {
	return NewCatalog(catalog.Default(), normalize.New())
}

func TestCatalogList(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestCatalog().List(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	var body struct {
		BlockTypes []blockTypeTemplates `json:"blockTypes"`
	}
	decodeResponse(t, rec, &body)

	if len(body.BlockTypes) != len(models.BlockTypes) {
		t.Fatalf("got %d block types, want %d", len(body.BlockTypes), len(models.BlockTypes))
	}
	for _, bt := range body.BlockTypes {
		if len(bt.Templates) == 0 || bt.Default == "" {
			t.Errorf("%s: expected templates and a default", bt.BlockType)
		}
		if bt.VariantCount != len(bt.Templates) {
			t.Errorf("%s: variantCount %d != %d templates", bt.BlockType, bt.VariantCount, len(bt.Templates))
		}
	}
}

func TestCatalogBlockType(t *testing.T) {
	tests := []struct {
		blockType     string
		wantTemplates bool
		wantAI        bool
	}{
		{"quote", true, true},
		{"divider", true, false},
		{"hologram", false, false},
		{"", false, false},
	}

	h := newTestCatalog()
	for _, tt := range tests {
		t.Run(tt.blockType, func(t *testing.T) {
			req := withChiURLParams(httptest.NewRequest(http.MethodGet, "/api/catalog/"+tt.blockType, nil),
				"blockType", tt.blockType)
			rec := httptest.NewRecorder()
			h.BlockType(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
			}
			if !tt.wantTemplates && !strings.Contains(rec.Body.String(), `"templates":[]`) {
				t.Errorf("unknown type should serialize an empty array: %s", rec.Body.String())
			}

			var body blockTypeTemplates
			decodeResponse(t, rec, &body)
			if got := len(body.Templates) > 0; got != tt.wantTemplates {
				t.Errorf("has templates = %v, want %v", got, tt.wantTemplates)
			}
			if body.SupportsAI != tt.wantAI {
				t.Errorf("supportsAI = %v, want %v", body.SupportsAI, tt.wantAI)
			}
		})
	}
}

func TestCatalogPreview(t *testing.T) {
	tests := []struct {
		name         string
		body         any
		wantStatus   int
		wantTemplate string
		wantHTML     string
	}{
		{
			name:         "plain statement",
			body:         map[string]any{"type": "statement", "content": "Cells are **alive**."},
			wantStatus:   http.StatusOK,
			wantTemplate: "statement-a",
			wantHTML:     "<strong>alive</strong>",
		},
		{
			name: "structured quote with variant",
			body: map[string]any{
				"type":       "quote",
				"templateId": "quote_c",
				"content":    map[string]any{"quote": "Stay curious.", "author": "Ada"},
			},
			wantStatus:   http.StatusOK,
			wantTemplate: "quote_c",
			wantHTML:     "Stay curious.",
		},
		{
			name:         "unknown variant falls back to default",
			body:         map[string]any{"type": "text", "templateId": "nope", "content": "Hello"},
			wantStatus:   http.StatusOK,
			wantTemplate: "paragraph",
			wantHTML:     "Hello",
		},
		{
			name:       "unknown type",
			body:       map[string]any{"type": "hologram", "content": "x"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"type":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	h := newTestCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Preview(rec, jsonRequest(t, http.MethodPost, "/api/blocks/preview", tt.body))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if errorMessage(t, rec) == "" {
					t.Error("expected an error message")
				}
				return
			}

			var block models.Block
			decodeResponse(t, rec, &block)
			if block.TemplateID != tt.wantTemplate {
				t.Errorf("templateId = %q, want %q", block.TemplateID, tt.wantTemplate)
			}
			if !strings.Contains(block.HTML, tt.wantHTML) {
				t.Errorf("html %q does not contain %q", block.HTML, tt.wantHTML)
			}
			if !strings.HasPrefix(block.ID, "block-") {
				t.Errorf("id = %q", block.ID)
			}
		})
	}
}
