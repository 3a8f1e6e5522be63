package api

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the game endpoints under /api.
func RegisterRoutes(r chi.Router, sessions *SessionHandler, worlds *WorldHandler) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/worlds", worlds.ListWorlds)
		r.Post("/worlds", worlds.GenerateWorld)

		r.Post("/sessions", sessions.StartSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", sessions.GetSession)
			r.Delete("/", sessions.EndSession)
			r.Post("/flips", sessions.Flip)
			r.Post("/confirm", sessions.Confirm)
			r.Post("/restart", sessions.Restart)
			r.Post("/advance", sessions.Advance)
			r.Get("/events", sessions.ListEvents)
		})
	})
}
