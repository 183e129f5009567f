// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import "strings"

func renderText(b *strings.Builder, layout Layout, c *TextContent) {
	switch layout {
	case LayoutHeading:
		element(b, "h2", "block-text__heading", headingOr(c.Heading, c.Text))
	case LayoutSubheading:
		element(b, "h3", "block-text__subheading", headingOr(c.Subheading, headingOr(c.Heading, c.Text)))
	case LayoutMasterHeading:
		b.WriteString(`<header class="block-text__masthead">`)
		element(b, "h1", "block-text__master", headingOr(c.Heading, c.Text))
		element(b, "p", "block-text__lede", c.Subheading)
		b.WriteString(`</header>`)
	case LayoutHeadingBody:
		element(b, "h2", "block-text__heading", c.Heading)
		textBody(b, c.Text)
	case LayoutSubheadingBody:
		element(b, "h3", "block-text__subheading", headingOr(c.Subheading, c.Heading))
		textBody(b, c.Text)
	case LayoutColumns:
		element(b, "h2", "block-text__heading", c.Heading)
		columns := c.Columns
		if len(columns) == 0 && c.Text != "" {
			columns = []string{c.Text}
		}
		b.WriteString(`<div class="block-text__columns">`)
		for _, col := range columns {
			b.WriteString(`<div class="block-text__column">`)
			b.WriteString(renderMarkdown(col))
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	default:
		textBody(b, c.Text)
	}
}

func textBody(b *strings.Builder, text string) {
	b.WriteString(`<div class="block-text__body">`)
	b.WriteString(renderMarkdown(text))
	b.WriteString(`</div>`)
}

// headingOr returns heading, or the first line of fallback stripped of
// Markdown heading marks when heading is empty.
func headingOr(heading, fallback string) string {
	if heading != "" {
		return heading
	}
	line, _, _ := strings.Cut(strings.TrimSpace(fallback), "\n")
	return strings.TrimSpace(strings.TrimLeft(line, "# "))
}
