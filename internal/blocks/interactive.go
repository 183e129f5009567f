// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"strings"
)

const defaultButtonLabel = "Continue"

func renderInteractive(b *strings.Builder, layout Layout, c *InteractiveContent) {
	element(b, "h3", "block-interactive__title", c.Title)

	switch layout {
	case LayoutTabs:
		parts := make([]string, 0, 2*len(c.Items))
		for _, it := range c.Items {
			parts = append(parts, it.Title, it.Content)
		}
		id := domID("tabs", parts...)
		fmt.Fprintf(b, `<div class="block-interactive__tabs" id="%s">`, id)
		b.WriteString(`<div class="block-interactive__tablist" role="tablist">`)
		for i, it := range c.Items {
			fmt.Fprintf(b, `<button type="button" role="tab" id="%s-tab-%d" aria-controls="%s-panel-%d" aria-selected="%t" data-tab-index="%d">%s</button>`,
				id, i, id, i, i == 0, i, esc(it.Title))
		}
		b.WriteString(`</div>`)
		for i, it := range c.Items {
			hidden := ""
			if i > 0 {
				hidden = " hidden"
			}
			fmt.Fprintf(b, `<div class="block-interactive__panel" role="tabpanel" id="%s-panel-%d" aria-labelledby="%s-tab-%d"%s>%s</div>`,
				id, i, id, i, hidden, renderMarkdown(it.Content))
		}
		b.WriteString(`</div>`)
	case LayoutFlashcards:
		b.WriteString(`<div class="block-interactive__cards">`)
		for i, it := range c.Items {
			fmt.Fprintf(b, `<div class="block-interactive__card" tabindex="0" data-card-index="%d" aria-pressed="false">`, i)
			b.WriteString(`<div class="block-interactive__card-front">` + esc(it.Title) + `</div>`)
			b.WriteString(`<div class="block-interactive__card-back">` + esc(it.Content) + `</div>`)
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	case LayoutButton:
		label := c.ButtonLabel
		if label == "" {
			label = defaultButtonLabel
		}
		b.WriteString(`<div class="block-interactive__cta">`)
		for _, it := range c.Items {
			element(b, "p", "block-interactive__cta-text", it.Content)
		}
		if href := safeURL(c.ButtonURL); href != "" {
			fmt.Fprintf(b, `<a class="block-interactive__button" href="%s">%s</a>`, href, esc(label))
		} else {
			fmt.Fprintf(b, `<button type="button" class="block-interactive__button">%s</button>`, esc(label))
		}
		b.WriteString(`</div>`)
	default:
		b.WriteString(`<div class="block-interactive__accordion">`)
		for _, it := range c.Items {
			b.WriteString(`<details class="block-interactive__item">`)
			b.WriteString(`<summary>` + esc(it.Title) + `</summary>`)
			b.WriteString(`<div class="block-interactive__content">` + renderMarkdown(it.Content) + `</div>`)
			b.WriteString(`</details>`)
		}
		b.WriteString(`</div>`)
	}
}

func renderDivider(b *strings.Builder, layout Layout, c *DividerContent) {
	switch layout {
	case LayoutContinue:
		label := c.Label
		if label == "" {
			label = defaultButtonLabel
		}
		fmt.Fprintf(b, `<div class="block-divider__continue"><button type="button" data-action="continue">%s</button></div>`, esc(label))
	case LayoutNumberedRule:
		n := c.Number
		if n < 1 {
			n = 1
		}
		fmt.Fprintf(b, `<div class="block-divider__numbered"><hr><span class="block-divider__number">%d</span><hr></div>`, n)
	case LayoutSpacer:
		b.WriteString(`<div class="block-divider__spacer" aria-hidden="true"></div>`)
	default:
		if c.Label != "" {
			fmt.Fprintf(b, `<div class="block-divider__labelled"><hr><span class="block-divider__label">%s</span><hr></div>`, esc(c.Label))
			return
		}
		b.WriteString(`<hr class="block-divider__rule">`)
	}
}
