// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"strings"
)

func renderList(b *strings.Builder, layout Layout, c *ListContent) {
	element(b, "h3", "block-list__title", c.Title)
	item := func(s string) string { return emphasize(s, "<strong>", "</strong>") }

	switch layout {
	case LayoutNumbered:
		b.WriteString(`<ol class="block-list__items">`)
		for _, it := range c.Items {
			b.WriteString(`<li>` + item(it) + `</li>`)
		}
		b.WriteString(`</ol>`)
	case LayoutChecklist:
		b.WriteString(`<ul class="block-list__items block-list__checklist">`)
		for i, it := range c.Items {
			fmt.Fprintf(b, `<li><label><input type="checkbox" data-item="%d"> <span>%s</span></label></li>`, i, item(it))
		}
		b.WriteString(`</ul>`)
	default:
		b.WriteString(`<ul class="block-list__items">`)
		for _, it := range c.Items {
			b.WriteString(`<li>` + item(it) + `</li>`)
		}
		b.WriteString(`</ul>`)
	}
}
