package server

import (
	"net/http"

	"github.com/askroom/askroom/internal/api"
	"github.com/askroom/askroom/internal/api/handlers"
	"github.com/askroom/askroom/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	RoomHandler     *handlers.RoomHandler
	QuestionHandler *handlers.QuestionHandler
	AudioHandler    *handlers.AudioHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Slightly above the audio payload limit to leave room for multipart
	// framing overhead.
	const maxBodyBytes int64 = 12 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", cfg.RoomHandler.Create)
		r.Get("/", cfg.RoomHandler.List)
		r.Get("/{id}", cfg.RoomHandler.Get)
		r.Delete("/{id}", cfg.RoomHandler.Delete)

		r.Post("/{id}/questions", cfg.QuestionHandler.Create)
		r.Get("/{id}/questions", cfg.QuestionHandler.List)

		r.Post("/{id}/audio", cfg.AudioHandler.Upload)
	})

	return r
}
