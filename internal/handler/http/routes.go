package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/collections/{collection}", func(r chi.Router) {
		r.Post("/connect", h.connect)
		r.Post("/changes", h.getChanges)
		r.Post("/commit", h.commit)
		r.Post("/done", h.syncDone)
		r.Post("/disconnect", h.disconnect)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
