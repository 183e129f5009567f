// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import "strings"

func renderStatement(b *strings.Builder, layout Layout, c *StatementContent) {
	strong := func(s string) string { return emphasize(s, "<strong>", "</strong>") }

	switch layout {
	case LayoutBoxed:
		b.WriteString(`<div class="block-statement__box">`)
		element(b, "h3", "block-statement__title", c.Title)
		b.WriteString(`<p class="block-statement__text">` + strong(c.Text) + `</p></div>`)
	case LayoutHighlight:
		element(b, "h3", "block-statement__title", c.Title)
		b.WriteString(`<p class="block-statement__text">`)
		b.WriteString(emphasize(c.Text, `<mark class="block-statement__highlight"><strong>`, `</strong></mark>`))
		b.WriteString(`</p>`)
	case LayoutDisplay:
		element(b, "h3", "block-statement__title", c.Title)
		b.WriteString(`<p class="block-statement__display">` + strong(c.Text) + `</p>`)
	case LayoutNote:
		b.WriteString(`<aside class="block-statement__note" role="note">`)
		b.WriteString(`<span class="block-statement__icon" aria-hidden="true">i</span>`)
		b.WriteString(`<div class="block-statement__note-body">`)
		element(b, "strong", "block-statement__title", c.Title)
		b.WriteString(`<p class="block-statement__text">` + strong(c.Text) + `</p></div></aside>`)
	default:
		b.WriteString(`<div class="block-statement__frame">`)
		element(b, "h3", "block-statement__title", c.Title)
		b.WriteString(`<p class="block-statement__text">` + strong(c.Text) + `</p></div>`)
	}
}
