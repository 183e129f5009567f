// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine renders public lesson pages. Block fragments produced by
// the blocks package are wrapped in an html/template lesson layout and the
// result is minified with tdewolff/minify before it is served or cached.
package engine

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"lessonpress/internal/blocks"
	"lessonpress/internal/models"
)

//go:embed layouts/*.html
var layoutFS embed.FS

// DefaultSiteName is shown in page titles when none is configured.
const DefaultSiteName = "LessonPress"

// BlockView is a block as seen by the lesson layout.
type BlockView struct {
	ID         string
	Type       models.BlockType
	TemplateID string
	HTML       template.HTML // Generated fragment, already escaped
}

// LessonData holds all variables available to the lesson layout.
type LessonData struct {
	SiteName    string
	Title       string
	Description string
	Slug        string
	UpdatedAt   string
	Blocks      []BlockView
	Year        int
}

// Engine renders lessons with a compiled layout. It is safe for concurrent
// use after construction.
type Engine struct {
	layout    *template.Template
	minifier  *minify.M
	generator *blocks.Generator
	siteName  string
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithSiteName sets the site name used in page titles and footers.
func WithSiteName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.siteName = name
		}
	}
}

// WithGenerator sets the generator used to rebuild blocks with no stored HTML.
func WithGenerator(g *blocks.Generator) Option {
	return func(e *Engine) { e.generator = g }
}

// WithClock overrides the time source for the footer year.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine using the embedded lesson layout.
func New(opts ...Option) *Engine {
	e := &Engine{
		layout:    template.Must(template.ParseFS(layoutFS, "layouts/lesson.html")),
		minifier:  newMinifier(),
		generator: blocks.NewGenerator(nil),
		siteName:  DefaultSiteName,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// newMinifier keeps quotes, end tags and document tags so the output stays
// valid for any HTML parser, and minifies inline CSS.
func newMinifier() *minify.M {
	m := minify.New()
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags:    true,
		KeepEndTags:         true,
		KeepQuotes:          true,
		KeepDefaultAttrVals: true,
	})
	m.AddFunc("text/css", css.Minify)
	return m
}

// RenderLesson renders a complete lesson page. Blocks are shown in the given
// order; a block without stored HTML is regenerated from its content.
func (e *Engine) RenderLesson(lesson *models.Lesson, lessonBlocks []models.Block) ([]byte, error) {
	if lesson == nil {
		return nil, fmt.Errorf("render lesson: nil lesson")
	}

	views := make([]BlockView, 0, len(lessonBlocks))
	for i := range lessonBlocks {
		b := &lessonBlocks[i]
		fragment := b.HTML
		if fragment == "" {
			fragment = e.generator.Render(b)
		}
		views = append(views, BlockView{
			ID:         b.ID,
			Type:       b.Type,
			TemplateID: b.TemplateID,
			HTML:       template.HTML(fragment),
		})
	}

	data := LessonData{
		SiteName:    e.siteName,
		Title:       lesson.Title,
		Description: lesson.Description,
		Slug:        lesson.Slug,
		Blocks:      views,
		Year:        e.now().Year(),
	}
	if !lesson.UpdatedAt.IsZero() {
		data.UpdatedAt = lesson.UpdatedAt.Format("January 2, 2006")
	}

	var buf bytes.Buffer
	if err := e.layout.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute lesson layout: %w", err)
	}

	return e.Minify(buf.Bytes()), nil
}

// Minify minifies an HTML document or fragment. On failure the input is
// returned unchanged.
func (e *Engine) Minify(src []byte) []byte {
	out, err := e.minifier.Bytes("text/html", src)
	if err != nil {
		slog.Warn("html minification failed, serving unminified", "error", err)
		return src
	}
	return out
}
