// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"strings"
)

// Image alignments. Only the centered layout honours them.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
	AlignRight  = "right"
)

// normalizeAlignment maps anything outside left/center/right to center.
func normalizeAlignment(a string) string {
	switch strings.ToLower(strings.TrimSpace(a)) {
	case AlignLeft:
		return AlignLeft
	case AlignRight:
		return AlignRight
	}
	return AlignCenter
}

func renderImage(b *strings.Builder, layout Layout, c *ImageContent) {
	switch layout {
	case LayoutSideBySide:
		b.WriteString(`<div class="block-image__split"><div class="block-image__media">`)
		imageTag(b, c)
		b.WriteString(`</div><div class="block-image__text">`)
		element(b, "h3", "block-image__title", c.ImageTitle)
		element(b, "p", "block-image__description", c.ImageDescription)
		b.WriteString(`</div></div>`)
	case LayoutOverlay:
		b.WriteString(`<div class="block-image__overlay">`)
		imageTag(b, c)
		b.WriteString(`<div class="block-image__overlay-text">`)
		element(b, "h3", "block-image__title", c.ImageTitle)
		element(b, "p", "block-image__description", c.ImageDescription)
		b.WriteString(`</div></div>`)
	case LayoutFullWidth:
		b.WriteString(`<figure class="block-image__full">`)
		imageTag(b, c)
		imageCaption(b, c, "")
		b.WriteString(`</figure>`)
	default:
		align := normalizeAlignment(c.Alignment)
		fmt.Fprintf(b, `<figure class="block-image__figure block-image--align-%s">`, align)
		imageTag(b, c)
		imageCaption(b, c, " block-image__caption--"+align)
		b.WriteString(`</figure>`)
	}
}

func imageTag(b *strings.Builder, c *ImageContent) {
	alt := c.AltText
	if alt == "" {
		alt = c.ImageTitle
	}
	src := safeURL(c.ImageURL)
	if src == "" {
		fmt.Fprintf(b, `<div class="block-image__placeholder" role="img" aria-label="%s"></div>`, esc(alt))
		return
	}
	fmt.Fprintf(b, `<img class="block-image__img" src="%s" alt="%s" loading="lazy">`, src, esc(alt))
}

func imageCaption(b *strings.Builder, c *ImageContent, modifier string) {
	if c.ImageTitle == "" && c.ImageDescription == "" {
		return
	}
	fmt.Fprintf(b, `<figcaption class="block-image__caption%s">`, modifier)
	element(b, "strong", "block-image__title", c.ImageTitle)
	element(b, "span", "block-image__description", c.ImageDescription)
	b.WriteString(`</figcaption>`)
}
