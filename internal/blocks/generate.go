// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blocks turns block content into HTML fragments. Rendering is a
// pure function of (block type, template id, content): it never fails,
// never touches global state, and returns byte-identical output for
// identical input.
package blocks

import (
	"fmt"
	"strings"

	"lessonpress/internal/catalog"
	"lessonpress/internal/models"
)

// Generator renders blocks against a template catalog.
type Generator struct {
	catalog *catalog.Catalog
}

// NewGenerator creates a generator bound to c. A nil catalog means
// catalog.Default().
func NewGenerator(c *catalog.Catalog) *Generator {
	if c == nil {
		c = catalog.Default()
	}
	return &Generator{catalog: c}
}

var defaultGenerator = NewGenerator(nil)

// Generate renders content with the default catalog.
func Generate(blockType models.BlockType, templateID string, content Content) string {
	return defaultGenerator.Generate(blockType, templateID, content)
}

// GenerateJSON decodes raw content and renders it with the default catalog.
// Undecodable content renders as the type's empty content.
func GenerateJSON(blockType models.BlockType, templateID string, raw []byte) string {
	return defaultGenerator.GenerateJSON(blockType, templateID, raw)
}

// GenerateJSON decodes raw content and renders it. Undecodable content
// renders as the type's empty content.
func (g *Generator) GenerateJSON(blockType models.BlockType, templateID string, raw []byte) string {
	content, _ := Decode(blockType, raw)
	return g.Generate(blockType, templateID, content)
}

// Generate renders a single block. Unknown template ids fall back to the
// type's default variant, content of the wrong type is replaced with the
// type's empty content, and unknown block types yield a placeholder.
func (g *Generator) Generate(blockType models.BlockType, templateID string, content Content) string {
	variant := g.catalog.Resolve(blockType, templateID)
	d, ok := lookupDescriptor(blockType, variant)
	if !ok {
		return unknownBlock(blockType)
	}
	if content == nil || content.BlockType() != blockType {
		content = Empty(blockType)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="block block-%s %s" data-block-type="%s" data-template-id="%s">`,
		blockType, d.Class, blockType, variant)

	switch c := content.(type) {
	case *TextContent:
		renderText(&b, d.Layout, c)
	case *StatementContent:
		renderStatement(&b, d.Layout, c)
	case *QuoteContent:
		renderQuote(&b, d.Layout, c)
	case *ImageContent:
		renderImage(&b, d.Layout, c)
	case *ListContent:
		renderList(&b, d.Layout, c)
	case *TableContent:
		renderTable(&b, d.Layout, c)
	case *InteractiveContent:
		renderInteractive(&b, d.Layout, c)
	case *DividerContent:
		renderDivider(&b, d.Layout, c)
	case *VideoContent:
		renderVideo(&b, d.Layout, c)
	case *AudioContent:
		renderAudio(&b, d.Layout, c)
	case *YouTubeContent:
		renderYouTube(&b, d.Layout, c)
	case *LinkContent:
		renderLink(&b, d.Layout, c)
	case *PDFContent:
		renderPDF(&b, d.Layout, c)
	}

	b.WriteString(`</div>`)
	return b.String()
}

// Render regenerates the HTML for a stored block from its type, template id
// and JSON content.
func (g *Generator) Render(block *models.Block) string {
	return g.GenerateJSON(block.Type, block.TemplateID, block.Content)
}

// Render is a shorthand for the default generator's Render.
func Render(block *models.Block) string {
	return defaultGenerator.Render(block)
}

// Catalog returns the catalog the generator resolves variants against.
func (g *Generator) Catalog() *catalog.Catalog {
	return g.catalog
}

func unknownBlock(blockType models.BlockType) string {
	return fmt.Sprintf(`<div class="block block-unknown" data-block-type="%s"></div>`, esc(string(blockType)))
}
