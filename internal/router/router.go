// Package router sets up all HTTP routes and middleware chains for
// LessonPress. Routes fall into public reads (lesson pages, catalog,
// analysis) and authoring endpoints guarded by the API token.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"lessonpress/internal/handlers"
	"lessonpress/internal/middleware"
)

// Handlers groups the handler sets the router dispatches to.
type Handlers struct {
	Catalog  *handlers.Catalog
	Lessons  *handlers.Lessons
	AI       *handlers.AI
	Uploads  *handlers.Uploads
	Analysis *handlers.Analysis
	Public   *handlers.Public
}

// Options tunes the middleware stacks.
type Options struct {
	// APIToken guards authoring endpoints. Empty disables the check.
	APIToken string
	// AILimiter throttles AI generation per client. Nil disables it.
	AILimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(h Handlers, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", handlers.Health)

	// Public lesson pages and upload previews.
	r.Get("/lessons/{slug}", h.Public.Lesson)
	r.Get("/media/preview/{key}", h.Uploads.Preview)

	r.Route("/api", func(r chi.Router) {
		// Read-only catalog and analysis.
		r.Get("/catalog", h.Catalog.List)
		r.Get("/catalog/{blockType}", h.Catalog.BlockType)
		r.Get("/analysis/usage", h.Analysis.Usage)
		r.Get("/analysis/ledger", h.Analysis.Ledger)

		// Authoring.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken(opts.APIToken))

			r.Post("/blocks/preview", h.Catalog.Preview)
			r.Post("/uploads", h.Uploads.Upload)

			r.Route("/lessons", func(r chi.Router) {
				r.Get("/", h.Lessons.ListLessons)
				r.Post("/", h.Lessons.CreateLesson)

				r.Route("/{lessonID}", func(r chi.Router) {
					r.Get("/", h.Lessons.GetLesson)
					r.Put("/", h.Lessons.UpdateLesson)
					r.Delete("/", h.Lessons.DeleteLesson)

					r.Get("/blocks", h.Lessons.ListBlocks)
					r.Post("/blocks", h.Lessons.CreateBlock)
					r.Put("/blocks/order", h.Lessons.ReorderBlocks)
					r.With(aiLimit(opts.AILimiter)...).Post("/blocks/generate", h.Lessons.GenerateBlock)
					r.Put("/blocks/{blockID}", h.Lessons.UpdateBlock)
					r.Delete("/blocks/{blockID}", h.Lessons.DeleteBlock)
				})
			})

			r.Route("/ai", func(r chi.Router) {
				r.Get("/providers", h.AI.Providers)
				r.Put("/provider", h.AI.SetProvider)
				r.With(aiLimit(opts.AILimiter)...).Post("/generate", h.AI.Generate)
			})
		})
	})

	return r
}

func aiLimit(rl *middleware.RateLimiter) []func(http.Handler) http.Handler {
	if rl == nil {
		return nil
	}
	return []func(http.Handler) http.Handler{rl.Middleware}
}
