// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import (
	"fmt"
	"strings"
)

func renderQuote(b *strings.Builder, layout Layout, c *QuoteContent) {
	switch layout {
	case LayoutCarousel:
		renderQuoteCarousel(b, c)
		return
	case LayoutOverlay:
		bg := cssURL(c.ImageURL)
		if bg != "" {
			fmt.Fprintf(b, `<figure class="block-quote__backdrop" style="background-image:url('%s')">`, bg)
		} else {
			b.WriteString(`<figure class="block-quote__backdrop">`)
		}
		b.WriteString(`<div class="block-quote__scrim">`)
		quoteBody(b, c.Quote, c.Author, c.AuthorTitle)
		b.WriteString(`</div></figure>`)
		return
	}

	b.WriteString(`<figure class="block-quote__figure">`)
	switch layout {
	case LayoutCentered:
		b.WriteString(`<span class="block-quote__mark" aria-hidden="true">&ldquo;</span>`)
	case LayoutAvatar:
		if c.ImageURL != "" && safeURL(c.ImageURL) != "" {
			fmt.Fprintf(b, `<img class="block-quote__avatar" src="%s" alt="%s">`, safeURL(c.ImageURL), esc(c.Author))
		} else {
			fmt.Fprintf(b, `<span class="block-quote__avatar" aria-hidden="true">%s</span>`, esc(initials(c.Author)))
		}
	case LayoutAccent:
		b.WriteString(`<span class="block-quote__bar" aria-hidden="true"></span>`)
	}
	quoteBody(b, c.Quote, c.Author, c.AuthorTitle)
	b.WriteString(`</figure>`)
}

// quoteBody writes the blockquote and its citation.
func quoteBody(b *strings.Builder, quote, author, authorTitle string) {
	b.WriteString(`<blockquote class="block-quote__text"><p>` + esc(quote) + `</p></blockquote>`)
	if author == "" && authorTitle == "" {
		return
	}
	b.WriteString(`<figcaption class="block-quote__caption">`)
	element(b, "cite", "block-quote__author", author)
	element(b, "span", "block-quote__role", authorTitle)
	b.WriteString(`</figcaption>`)
}

// carouselSlides returns the slides of a carousel, promoting the single
// quote when the list is empty.
func carouselSlides(c *QuoteContent) []QuoteItem {
	if len(c.Quotes) > 0 {
		return c.Quotes
	}
	if c.Quote != "" || c.Author != "" {
		return []QuoteItem{{Quote: c.Quote, Author: c.Author}}
	}
	return nil
}

func renderQuoteCarousel(b *strings.Builder, c *QuoteContent) {
	slides := carouselSlides(c)
	parts := make([]string, 0, 2*len(slides))
	for _, s := range slides {
		parts = append(parts, s.Quote, s.Author)
	}
	id := domID("carousel", parts...)
	state := NewCarousel(len(slides))

	fmt.Fprintf(b, `<div class="block-quote__carousel" id="%s" data-carousel data-carousel-count="%d" data-carousel-index="%d">`,
		id, state.Len(), state.Index())

	b.WriteString(`<div class="block-quote__slides">`)
	for i, s := range slides {
		active := ""
		hidden := ` hidden`
		if i == state.Index() {
			active = " is-active"
			hidden = ""
		}
		fmt.Fprintf(b, `<figure class="block-quote__slide%s" id="%s-slide-%d" data-carousel-slide="%d"%s>`, active, id, i, i, hidden)
		quoteBody(b, s.Quote, s.Author, "")
		b.WriteString(`</figure>`)
	}
	b.WriteString(`</div>`)

	if state.Len() > 1 {
		fmt.Fprintf(b, `<div class="block-quote__controls" data-carousel-controls="%s">`, id)
		b.WriteString(`<button type="button" class="block-quote__prev" data-carousel-action="prev" aria-label="Previous quote">&lsaquo;</button>`)
		b.WriteString(`<div class="block-quote__dots">`)
		for i := 0; i < state.Len(); i++ {
			current := "false"
			if i == state.Index() {
				current = "true"
			}
			fmt.Fprintf(b, `<button type="button" class="block-quote__dot" data-carousel-action="goto" data-carousel-target="%d" aria-controls="%s-slide-%d" aria-current="%s" aria-label="Go to quote %d"></button>`,
				i, id, i, current, i+1)
		}
		b.WriteString(`</div>`)
		b.WriteString(`<button type="button" class="block-quote__next" data-carousel-action="next" aria-label="Next quote">&rsaquo;</button>`)
		fmt.Fprintf(b, `<span class="block-quote__status" aria-live="polite">%s</span>`, state.Status())
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}
