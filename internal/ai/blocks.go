// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lessonpress/internal/catalog"
	"lessonpress/internal/models"
	"lessonpress/internal/normalize"
	"lessonpress/internal/slug"
)

const blockSystemPrompt = `You write content blocks for short online lessons.
Write for adult learners: clear, concrete, and accurate.
Never include HTML. Use plain text unless a field says Markdown.
Return exactly the JSON shape you are given with every field filled in.`

// shapes describes the JSON each block type must come back as.
var shapes = map[models.BlockType]string{
	models.BlockTypeText:      `{"heading": string, "subheading": string, "text": Markdown string of one to three short paragraphs}`,
	models.BlockTypeStatement: `{"title": string, "text": one or two sentences with the key phrase wrapped in **double asterisks**}`,
	models.BlockTypeQuote:     `{"quote": string, "author": string, "authorTitle": string}`,
	models.BlockTypeImage:     `{"imageUrl": "", "imageTitle": string, "imageDescription": string, "altText": string, "alignment": "center"}`,
	models.BlockTypeList:      `{"title": string, "items": [string, ...] with three to six items}`,
	models.BlockTypeTables:    `{"caption": string, "columns": [string, ...], "rows": [[string, ...], ...] with one cell per column}`,
}

// variantHints refine the shape for variants that need different content.
var variantHints = map[string]string{
	"quote_carousel": `Instead return {"quotes": [{"quote": string, "author": string}, ...]} with three quotes from different people.`,
	"quote_on_image": `Keep the quote under twenty words so it fits over an image.`,
	"columns":        `Also include "columns": [string, string] with two parallel Markdown columns.`,
	"heading":        `The heading is what matters; keep text to one sentence.`,
	"master_heading": `Write a short title-style heading and a one-line subheading.`,
	"numbered":       `Items are ordered steps; start each with a verb.`,
	"checkbox":       `Items are tasks the learner can tick off.`,
	"note":           `Write it as a brief practical tip.`,
	"statement-d":    `Keep the text under fifteen words.`,
	"side-by-side":   `Make imageDescription two or three sentences.`,
	"overlay":        `Keep imageTitle under six words.`,
}

// Result is the outcome of a block generation call. Content is the raw
// answer with any Markdown code fence removed; callers normalize it into
// a block.
type Result struct {
	Content    string         `json:"content"`
	TemplateID string         `json:"templateId"`
	Metadata   map[string]any `json:"metadata"`
}

// BlockGenerator asks the active provider for lesson block content.
type BlockGenerator struct {
	registry *Registry
	catalog  *catalog.Catalog
	images   ImageUploader
	logger   *slog.Logger
}

// BlockOption configures a BlockGenerator.
type BlockOption func(*BlockGenerator)

// WithImageUploader lets image blocks carry a generated picture when the
// active provider can draw one.
func WithImageUploader(u ImageUploader) BlockOption {
	return func(g *BlockGenerator) { g.images = u }
}

// WithBlockLogger sets the logger for image generation fallbacks.
func WithBlockLogger(l *slog.Logger) BlockOption {
	return func(g *BlockGenerator) { g.logger = l }
}

// NewBlockGenerator creates a generator that checks requests against c.
// A nil catalog means catalog.Default().
func NewBlockGenerator(registry *Registry, c *catalog.Catalog, opts ...BlockOption) *BlockGenerator {
	if c == nil {
		c = catalog.Default()
	}
	g := &BlockGenerator{registry: registry, catalog: c, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces content for a blockType block about topic. The
// templateID is resolved against the catalog and echoed in the result.
// Types outside the AI allow-list fail with ErrUnsupportedBlockType.
func (g *BlockGenerator) Generate(ctx context.Context, blockType models.BlockType, topic, templateID string) (*Result, error) {
	if !g.catalog.SupportsAIGeneration(string(blockType)) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBlockType, blockType)
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("ai: topic is required")
	}
	templateID = g.catalog.Resolve(blockType, templateID)

	req := Request{
		System: blockSystemPrompt,
		Prompt: BlockPrompt(blockType, topic, templateID),
		JSON:   true,
	}
	out, err := g.registry.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate %s block: %w", blockType, err)
	}
	out = normalize.StripCodeFences(out)
	if out == "" {
		return nil, fmt.Errorf("generate %s block: %w", blockType, ErrEmptyResponse)
	}

	res := &Result{
		Content:    out,
		TemplateID: templateID,
		Metadata: map[string]any{
			"provider":  g.registry.ActiveName(),
			"topic":     topic,
			"blockType": string(blockType),
		},
	}
	if blockType == models.BlockTypeImage {
		g.attachImage(ctx, res, topic)
	}
	return res, nil
}

// attachImage draws a picture for an image block from its title and
// description and sets imageUrl. Any failure leaves the URL empty.
func (g *BlockGenerator) attachImage(ctx context.Context, res *Result, topic string) {
	if g.images == nil || !g.registry.SupportsImageGeneration() {
		return
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(res.Content), &fields); err != nil {
		return
	}
	if u, _ := fields["imageUrl"].(string); strings.TrimSpace(u) != "" {
		return
	}

	title, _ := fields["imageTitle"].(string)
	desc, _ := fields["imageDescription"].(string)
	var parts []string
	for _, p := range []string{title, desc} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	prompt := strings.Join(parts, ". ")
	if prompt == "" {
		prompt = topic
	}

	data, contentType, err := g.registry.GenerateImage(ctx, prompt)
	if err != nil {
		g.logger.Warn("image generation failed, leaving image empty", "error", err)
		return
	}
	name := slug.Generate(title)
	if name == "" {
		name = "generated-image"
	}
	up, err := g.images.Upload(ctx, models.MediaKindImage, name+imageExtension(contentType), contentType, data)
	if err != nil {
		g.logger.Warn("storing generated image failed", "error", err)
		return
	}

	fields["imageUrl"] = up.URL
	content, err := json.Marshal(fields)
	if err != nil {
		return
	}
	res.Content = string(content)
	res.Metadata["imageGenerated"] = true
}

// BlockPrompt builds the user prompt for one block.
func BlockPrompt(blockType models.BlockType, topic, templateID string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s block for a lesson about: %s\n\n", blockType, topic)
	fmt.Fprintf(&b, "Return JSON shaped like: %s\n", shapes[blockType])
	if hint, ok := variantHints[templateID]; ok {
		b.WriteString(hint)
		b.WriteString("\n")
	}
	return b.String()
}
