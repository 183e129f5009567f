// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"lessonpress/internal/catalog"
	"lessonpress/internal/models"
	"lessonpress/internal/normalize"
)

// Catalog serves the template catalog and stateless block previews.
type Catalog struct {
	catalog    *catalog.Catalog
	normalizer *normalize.Normalizer
}

// NewCatalog creates the catalog handler group.
func NewCatalog(c *catalog.Catalog, n *normalize.Normalizer) *Catalog {
	if c == nil {
		c = catalog.Default()
	}
	return &Catalog{catalog: c, normalizer: n}
}

type blockTypeTemplates struct {
	BlockType    models.BlockType   `json:"blockType"`
	Default      string             `json:"default,omitempty"`
	Templates    []catalog.Template `json:"templates"`
	SupportsAI   bool               `json:"supportsAI"`
	VariantCount int                `json:"variantCount"`
}

func (h *Catalog) templates(bt models.BlockType) blockTypeTemplates {
	templates := h.catalog.TemplatesForBlockType(string(bt))
	if templates == nil {
		templates = []catalog.Template{}
	}
	return blockTypeTemplates{
		BlockType:    bt,
		Default:      h.catalog.DefaultVariant(bt),
		Templates:    templates,
		SupportsAI:   h.catalog.SupportsAIGeneration(string(bt)),
		VariantCount: len(templates),
	}
}

// List returns every block type with its templates.
func (h *Catalog) List(w http.ResponseWriter, r *http.Request) {
	types := h.catalog.BlockTypes()
	out := make([]blockTypeTemplates, 0, len(types))
	for _, bt := range types {
		out = append(out, h.templates(bt))
	}
	writeJSON(w, http.StatusOK, map[string]any{"blockTypes": out})
}

// BlockType returns the templates of one block type. Unknown types get an
// empty list rather than a 404 so editors can look up types freely.
func (h *Catalog) BlockType(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.templates(models.BlockType(chi.URLParam(r, "blockType"))))
}

// previewRequest is the body of POST /api/blocks/preview.
type previewRequest struct {
	Type       models.BlockType     `json:"type" validate:"required,blocktype"`
	TemplateID string               `json:"templateId" validate:"max=64"`
	Content    normalize.RawContent `json:"content"`
}

// Preview normalizes content into a block and returns it without saving.
// Previews are not counted as usage.
func (h *Catalog) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	block := h.normalizer.Normalize(req.Type, normalize.Response{
		Content:    req.Content,
		TemplateID: req.TemplateID,
	})
	writeJSON(w, http.StatusOK, block)
}
