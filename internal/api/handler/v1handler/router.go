package v1handler

import (
	"net/http"
	"time"
	"webguard/pkg/controller"

	"github.com/go-chi/chi/v5"
)

// RouterOptions configure the v1 router.
type RouterOptions struct {
	Sec *SecHandler
	// Timeout bounds every route except the settings event stream.
	Timeout time.Duration
	// Docs, when set, is served unauthenticated under /docs/.
	Docs http.Handler
}

// Router returns the v1 routes, meant to be mounted under /v1.
func (h *Handler) Router(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	if opts.Docs != nil {
		r.Handle("/docs/*", opts.Docs)
	}

	r.Group(func(r chi.Router) {
		r.Use(controller.WithUserAgentFilter)

		r.With(opts.Sec.StreamMiddleware).Get("/settings/events", h.SettingsEvents)

		r.Group(func(r chi.Router) {
			r.Use(opts.Sec.Middleware, controller.WithTimeout(opts.Timeout))

			r.Post("/scan", h.Scan)
			r.Post("/scan/batch", h.ScanBatch)
			r.Post("/classify", h.Classify)
			r.Post("/forms/analyze", h.AnalyzeForms)
			r.Post("/links/shortened", h.ShortenedLinks)
			r.Post("/inspect", h.Inspect)
			r.Get("/settings", h.GetSettings)
			r.Put("/settings/{key}", h.UpdateSetting)
			r.Get("/stats", h.Stats)
			r.Get("/limits", h.Limits)
		})
	})

	return r
}
