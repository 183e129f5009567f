// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"lessonpress/internal/ai"
	"lessonpress/internal/normalize"
)

// AI serves block generation previews and provider selection.
type AI struct {
	registry   *ai.Registry
	generator  *ai.BlockGenerator
	normalizer *normalize.Normalizer
}

// NewAI creates the AI handler group.
func NewAI(registry *ai.Registry, generator *ai.BlockGenerator, normalizer *normalize.Normalizer) *AI {
	return &AI{registry: registry, generator: generator, normalizer: normalizer}
}

// Generate produces a block from a topic and returns it without saving.
func (h *AI) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, ok := generate(w, r, h.generator, req)
	if !ok {
		return
	}
	block := h.normalizer.Normalize(req.Type, normalize.Response{
		Content:    normalize.Text(res.Content),
		TemplateID: res.TemplateID,
		Metadata:   res.Metadata,
	})
	writeJSON(w, http.StatusOK, block)
}

// Providers lists the configured providers and the active one.
func (h *AI) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"active":    h.registry.ActiveName(),
		"available": h.registry.Available(),
	})
}

type providerRequest struct {
	Provider string `json:"provider" validate:"notblank"`
}

// SetProvider switches the active provider at runtime.
func (h *AI) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req providerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.registry.SetActive(req.Provider); err != nil {
		writeError(w, http.StatusBadRequest, "Provider is not configured.")
		return
	}
	slog.Info("ai provider switched", "provider", req.Provider)
	h.Providers(w, r)
}

// generate runs the block generator and writes an error response when it
// fails. Unsupported block types are the caller's fault; anything else is
// an upstream failure.
func generate(w http.ResponseWriter, r *http.Request, g *ai.BlockGenerator, req generateRequest) (*ai.Result, bool) {
	res, err := g.Generate(r.Context(), req.Type, req.Topic, req.TemplateID)
	if err == nil {
		return res, true
	}

	switch {
	case errors.Is(err, ai.ErrUnsupportedBlockType):
		writeError(w, http.StatusBadRequest, "AI generation is not available for this block type.")
	case r.Context().Err() != nil:
		writeError(w, http.StatusGatewayTimeout, "AI generation was cancelled.")
	default:
		slog.Error("ai block generation failed", "block_type", req.Type, "error", err)
		writeError(w, http.StatusBadGateway, "AI generation failed.")
	}
	return nil, false
}
