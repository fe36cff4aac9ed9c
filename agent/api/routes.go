package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpserverx "github.com/tanpawarit/insurance-callcenter-agent/pkg/httpserver"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(httpserverx.Recovery)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(httpserverx.Logging)

	r.Get("/healthz", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/tools", h.ListTools)
		r.Post("/sessions", h.StartSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", h.EndSession)
			r.Get("/snapshot", h.Snapshot)
			r.Post("/tools/{tool}", h.CallTool)
			r.Post("/messages", h.PostMessage)
		})
	})

	return r
}
