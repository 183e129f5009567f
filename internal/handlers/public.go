// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"html"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lessonpress/internal/cache"
	"lessonpress/internal/engine"
	"lessonpress/internal/store"
)

// Public serves rendered lesson pages. It checks the Valkey page cache
// before rendering and stores rendered results on miss.
type Public struct {
	engine    *engine.Engine
	lessons   *store.LessonStore
	blocks    *store.BlockStore
	pageCache *cache.PageCache
}

// NewPublic creates the public handler group. pageCache may be nil.
func NewPublic(eng *engine.Engine, lessonStore *store.LessonStore, blockStore *store.BlockStore, pageCache *cache.PageCache) *Public {
	return &Public{engine: eng, lessons: lessonStore, blocks: blockStore, pageCache: pageCache}
}

// Lesson renders the lesson with the given slug.
func (p *Public) Lesson(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if p.pageCache != nil {
		if cached, ok := p.pageCache.Get(ctx, slugParam); ok {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("X-Cache", "HIT")
			w.Write(cached)
			return
		}
	}

	lesson, err := p.lessons.FindBySlug(slugParam)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("find lesson by slug failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	list, err := p.blocks.ListByLesson(lesson.ID)
	if err != nil {
		slog.Error("list blocks failed", "error", err, "slug", slugParam)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rendered, err := p.engine.RenderLesson(lesson, list)
	if err != nil {
		slog.Error("render lesson failed", "error", err, "slug", slugParam)
		// Never fall back to raw block HTML outside the layout.
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<!DOCTYPE html><html><head><title>` + html.EscapeString(lesson.Title) +
			`</title></head><body><h1>` + html.EscapeString(lesson.Title) +
			`</h1><p>This lesson could not be rendered.</p></body></html>`))
		return
	}

	if p.pageCache != nil {
		p.pageCache.Set(ctx, slugParam, rendered)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Cache", "MISS")
	w.Write(rendered)
}
