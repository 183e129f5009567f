// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blocks

import "fmt"

// Carousel is the slide state of a quote carousel. The index always stays
// in [0, Len()) while there is at least one slide. The zero value is an
// empty carousel on which every transition is a no-op.
type Carousel struct {
	count int
	index int
}

// NewCarousel returns a carousel over count slides positioned on the first.
func NewCarousel(count int) *Carousel {
	if count < 0 {
		count = 0
	}
	return &Carousel{count: count}
}

// Len returns the number of slides.
func (c *Carousel) Len() int { return c.count }

// Index returns the active slide.
func (c *Carousel) Index() int { return c.index }

// Next advances one slide, wrapping from the last to the first.
func (c *Carousel) Next() {
	if c.count == 0 {
		return
	}
	c.index = (c.index + 1) % c.count
}

// Prev goes back one slide, wrapping from the first to the last.
func (c *Carousel) Prev() {
	if c.count == 0 {
		return
	}
	c.index = (c.index - 1 + c.count) % c.count
}

// GoTo jumps to slide i. Out-of-range targets are ignored and reported as
// false.
func (c *Carousel) GoTo(i int) bool {
	if i < 0 || i >= c.count {
		return false
	}
	c.index = i
	return true
}

// Status renders the one-based position, e.g. "2 / 5".
func (c *Carousel) Status() string {
	if c.count == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", c.index+1, c.count)
}
