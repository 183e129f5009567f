// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package normalize turns loosely shaped generation responses into
// canonical blocks with HTML attached. It never fails: anything it cannot
// parse degrades to the block type's empty content.
package normalize

import (
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"lessonpress/internal/blocks"
	"lessonpress/internal/models"
)

// Response is the payload of a content generation call.
type Response struct {
	Content    RawContent     `json:"content"`
	TemplateID string         `json:"templateId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Normalizer builds blocks from responses.
type Normalizer struct {
	gen    *blocks.Generator
	now    func() time.Time
	suffix func() string
	logger *slog.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithGenerator renders with g instead of the default generator.
func WithGenerator(g *blocks.Generator) Option {
	return func(n *Normalizer) { n.gen = g }
}

// WithClock replaces time.Now for block ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

// WithIDSuffix replaces the random part of generated block ids.
func WithIDSuffix(suffix func() string) Option {
	return func(n *Normalizer) { n.suffix = suffix }
}

// WithLogger sets the logger used for parse fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) { n.logger = l }
}

// New creates a Normalizer with the default generator, the wall clock and
// UUID-derived id suffixes.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		gen:    blocks.NewGenerator(nil),
		now:    time.Now,
		suffix: randomSuffix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// randomSuffix returns 9 lowercase hex characters.
func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// NewBlockID returns an id of the form block-<unix millis>-<suffix>.
func (n *Normalizer) NewBlockID() string {
	return fmt.Sprintf("block-%d-%s", n.now().UnixMilli(), n.suffix())
}

// Normalize converts resp into a block of blockType. The template id is
// resolved against the catalog, a fresh id is assigned, and HTML is
// generated. Order is left at zero for the caller to set.
func (n *Normalizer) Normalize(blockType models.BlockType, resp Response) *models.Block {
	content, err := resp.Content.Parse(blockType)
	if err != nil {
		n.logger.Debug("falling back to empty block content",
			"block_type", blockType, "error", err)
		content = blocks.Empty(blockType)
	}

	templateID := n.gen.Catalog().Resolve(blockType, resp.TemplateID)
	encoded, err := blocks.Encode(content)
	if err != nil {
		n.logger.Debug("encoding block content", "block_type", blockType, "error", err)
		encoded = []byte("{}")
	}

	now := n.now()
	block := &models.Block{
		ID:         n.NewBlockID(),
		Type:       blockType,
		TemplateID: templateID,
		Content:    encoded,
		Metadata:   maps.Clone(resp.Metadata),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	block.HTML = n.gen.Generate(blockType, templateID, content)
	return block
}

// Regenerate recomputes block.HTML from its type, template id and content.
// The template id is resolved first so a stale variant is replaced by the
// type's default.
func (n *Normalizer) Regenerate(block *models.Block) {
	if resolved := n.gen.Catalog().Resolve(block.Type, block.TemplateID); resolved != "" {
		block.TemplateID = resolved
	}
	block.HTML = n.gen.Render(block)
}
