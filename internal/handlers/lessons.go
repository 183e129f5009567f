// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lessonpress/internal/ai"
	"lessonpress/internal/blocks"
	"lessonpress/internal/cache"
	"lessonpress/internal/models"
	"lessonpress/internal/normalize"
	"lessonpress/internal/slug"
	"lessonpress/internal/store"
)

// Pagination defaults for lesson listings.
const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Lessons groups the lesson and block editing endpoints. Every change to a
// lesson or its blocks invalidates the lesson's cached page.
type Lessons struct {
	lessons    *store.LessonStore
	blocks     *store.BlockStore
	normalizer *normalize.Normalizer
	generator  *ai.BlockGenerator
	pageCache  *cache.PageCache
	usage      *cache.UsageCounter
}

// NewLessons creates the lesson handler group. pageCache and usage may be
// nil when Valkey is not part of the setup (tests).
func NewLessons(
	lessonStore *store.LessonStore,
	blockStore *store.BlockStore,
	normalizer *normalize.Normalizer,
	generator *ai.BlockGenerator,
	pageCache *cache.PageCache,
	usage *cache.UsageCounter,
) *Lessons {
	return &Lessons{
		lessons:    lessonStore,
		blocks:     blockStore,
		normalizer: normalizer,
		generator:  generator,
		pageCache:  pageCache,
		usage:      usage,
	}
}

// --- Lessons ---

type lessonRequest struct {
	Title       string `json:"title" validate:"notblank,max=300"`
	Slug        string `json:"slug" validate:"max=300"`
	Description string `json:"description" validate:"max=1000"`
}

type lessonResponse struct {
	*models.Lesson
	Blocks []models.Block `json:"blocks"`
}

// ListLessons returns a page of lessons, most recently updated first.
func (h *Lessons) ListLessons(w http.ResponseWriter, r *http.Request) {
	limit := min(queryInt(r, "limit", defaultPageSize), maxPageSize)
	if limit == 0 {
		limit = defaultPageSize
	}
	lessons, err := h.lessons.List(limit, queryInt(r, "offset", 0))
	if err != nil {
		slog.Error("list lessons failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list lessons.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lessons": lessons})
}

// CreateLesson creates a lesson. The slug defaults to the title and is made
// unique by appending a counter.
func (h *Lessons) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lessonSlug, err := h.uniqueSlug(req.Slug, req.Title, uuid.Nil)
	if err != nil {
		slog.Error("slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create lesson.")
		return
	}

	lesson, err := h.lessons.Create(&models.Lesson{
		Title:       req.Title,
		Slug:        lessonSlug,
		Description: req.Description,
	})
	if err != nil {
		slog.Error("create lesson failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create lesson.")
		return
	}

	slog.Info("lesson created", "lesson_id", lesson.ID, "slug", lesson.Slug)
	writeJSON(w, http.StatusCreated, lessonResponse{Lesson: lesson, Blocks: []models.Block{}})
}

// GetLesson returns a lesson with its ordered blocks.
func (h *Lessons) GetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	list, err := h.blocks.ListByLesson(lesson.ID)
	if err != nil {
		slog.Error("list blocks failed", "lesson_id", lesson.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load blocks.")
		return
	}
	writeJSON(w, http.StatusOK, lessonResponse{Lesson: lesson, Blocks: list})
}

// UpdateLesson changes a lesson's title, slug or description.
func (h *Lessons) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	var req lessonRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	oldSlug := lesson.Slug
	wantSlug := req.Slug
	if wantSlug == "" {
		wantSlug = oldSlug
	}
	lessonSlug, err := h.uniqueSlug(wantSlug, req.Title, lesson.ID)
	if err != nil {
		slog.Error("slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update lesson.")
		return
	}

	lesson.Title = req.Title
	lesson.Slug = lessonSlug
	lesson.Description = req.Description
	updated, err := h.lessons.Update(lesson)
	if err != nil {
		h.storeError(w, err, "Failed to update lesson.")
		return
	}

	h.invalidate(r.Context(), oldSlug, updated.Slug)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteLesson removes a lesson and, by cascade, its blocks.
func (h *Lessons) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	if err := h.lessons.Delete(lesson.ID); err != nil {
		h.storeError(w, err, "Failed to delete lesson.")
		return
	}

	h.invalidate(r.Context(), lesson.Slug)
	slog.Info("lesson deleted", "lesson_id", lesson.ID)
	w.WriteHeader(http.StatusNoContent)
}

// --- Blocks ---

type createBlockRequest struct {
	Type       models.BlockType     `json:"type" validate:"required,blocktype"`
	TemplateID string               `json:"templateId" validate:"max=64"`
	Content    normalize.RawContent `json:"content"`
	Metadata   map[string]any       `json:"metadata"`
}

type updateBlockRequest struct {
	TemplateID string                `json:"templateId" validate:"max=64"`
	Content    *normalize.RawContent `json:"content"`
	Metadata   map[string]any        `json:"metadata"`
}

type reorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,unique,dive,notblank"`
}

type generateRequest struct {
	Type       models.BlockType `json:"type" validate:"required,blocktype"`
	Topic      string           `json:"topic" validate:"notblank,max=500"`
	TemplateID string           `json:"templateId" validate:"max=64"`
}

// ListBlocks returns a lesson's blocks in display order.
func (h *Lessons) ListBlocks(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	list, err := h.blocks.ListByLesson(lesson.ID)
	if err != nil {
		slog.Error("list blocks failed", "lesson_id", lesson.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load blocks.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"blocks": list})
}

// CreateBlock normalizes the submitted content into a block and appends it
// to the lesson.
func (h *Lessons) CreateBlock(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	var req createBlockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	block := h.normalizer.Normalize(req.Type, normalize.Response{
		Content:    req.Content,
		TemplateID: req.TemplateID,
		Metadata:   req.Metadata,
	})
	h.appendBlock(w, r, lesson, block)
}

// GenerateBlock asks the AI provider for content, normalizes the answer and
// appends the resulting block to the lesson.
func (h *Lessons) GenerateBlock(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	var req generateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, ok := generate(w, r, h.generator, req)
	if !ok {
		return
	}
	block := h.normalizer.Normalize(req.Type, normalize.Response{
		Content:    normalize.Text(res.Content),
		TemplateID: res.TemplateID,
		Metadata:   res.Metadata,
	})
	h.appendBlock(w, r, lesson, block)
}

func (h *Lessons) appendBlock(w http.ResponseWriter, r *http.Request, lesson *models.Lesson, block *models.Block) {
	pos, err := h.blocks.NextPosition(lesson.ID)
	if err != nil {
		slog.Error("next block position failed", "lesson_id", lesson.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save block.")
		return
	}
	block.LessonID = lesson.ID
	block.Order = pos

	created, err := h.blocks.Create(block)
	if err != nil {
		slog.Error("create block failed", "lesson_id", lesson.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save block.")
		return
	}

	h.recordUsage(r.Context(), created)
	h.invalidate(r.Context(), lesson.Slug)
	writeJSON(w, http.StatusCreated, created)
}

// UpdateBlock changes a block's variant, content or metadata and
// regenerates its HTML.
func (h *Lessons) UpdateBlock(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	block, err := h.blocks.FindByID(lesson.ID, chi.URLParam(r, "blockID"))
	if err != nil {
		h.storeError(w, err, "Failed to load block.")
		return
	}
	var req updateBlockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.TemplateID != "" {
		block.TemplateID = req.TemplateID
	}
	if req.Content != nil {
		content, err := req.Content.Parse(block.Type)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Content does not fit a %s block.", block.Type))
			return
		}
		encoded, err := blocks.Encode(content)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Content could not be encoded.")
			return
		}
		block.Content = encoded
	}
	if req.Metadata != nil {
		block.Metadata = req.Metadata
	}
	h.normalizer.Regenerate(block)

	updated, err := h.blocks.Update(block)
	if err != nil {
		h.storeError(w, err, "Failed to update block.")
		return
	}

	h.recordUsage(r.Context(), updated)
	h.invalidate(r.Context(), lesson.Slug)
	writeJSON(w, http.StatusOK, updated)
}

// DeleteBlock removes a block from a lesson.
func (h *Lessons) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	if err := h.blocks.Delete(lesson.ID, chi.URLParam(r, "blockID")); err != nil {
		h.storeError(w, err, "Failed to delete block.")
		return
	}
	h.invalidate(r.Context(), lesson.Slug)
	w.WriteHeader(http.StatusNoContent)
}

// ReorderBlocks moves the submitted ids to the front in that order; blocks
// not listed follow in their previous order. An unknown id changes nothing.
func (h *Lessons) ReorderBlocks(w http.ResponseWriter, r *http.Request) {
	lesson, ok := h.lessonFromURL(w, r)
	if !ok {
		return
	}
	var req reorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.blocks.Reorder(lesson.ID, req.IDs); err != nil {
		h.storeError(w, err, "Failed to reorder blocks.")
		return
	}

	list, err := h.blocks.ListByLesson(lesson.ID)
	if err != nil {
		slog.Error("list blocks failed", "lesson_id", lesson.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load blocks.")
		return
	}
	h.invalidate(r.Context(), lesson.Slug)
	writeJSON(w, http.StatusOK, map[string]any{"blocks": list})
}

// --- Helpers ---

// lessonFromURL loads the lesson named by the {lessonID} URL parameter.
func (h *Lessons) lessonFromURL(w http.ResponseWriter, r *http.Request) (*models.Lesson, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid lesson ID.")
		return nil, false
	}
	lesson, err := h.lessons.FindByID(id)
	if err != nil {
		h.storeError(w, err, "Failed to load lesson.")
		return nil, false
	}
	return lesson, true
}

// storeError maps store.ErrNotFound to 404 and anything else to 500.
func (h *Lessons) storeError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found.")
		return
	}
	slog.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, msg)
}

// uniqueSlug derives a slug from want (or title when want is empty) and
// appends -2, -3, ... until no other lesson uses it.
func (h *Lessons) uniqueSlug(want, title string, excludeID uuid.UUID) (string, error) {
	base := slug.Generate(want)
	if base == "" {
		base = slug.Generate(title)
	}
	if base == "" {
		base = "lesson"
	}

	candidate := base
	for i := 2; ; i++ {
		taken, err := h.lessons.SlugExists(candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

func (h *Lessons) invalidate(ctx context.Context, slugs ...string) {
	if h.pageCache == nil {
		return
	}
	for _, s := range slugs {
		h.pageCache.Invalidate(ctx, s)
	}
}

func (h *Lessons) recordUsage(ctx context.Context, b *models.Block) {
	if h.usage != nil {
		h.usage.Record(ctx, b.Type, b.TemplateID)
	}
}
