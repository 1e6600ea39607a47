package handlers

import (
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	configs "github.com/avvvet/leaderboard-services/configs"
)

// NewRouter builds the chi router with the service middleware stack and
// every route registered.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	c := configs.CORS(h.cfg.CORSOrigins)

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(configs.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	r.Use(httprate.LimitByIP(h.cfg.RateLimit, 1*time.Minute))

	h.SetRoutes(r)
	return r
}

func (h *Handler) SetRoutes(r chi.Router) {
	r.Get("/", h.RootHandler)
	r.Get("/health", h.HealthHandler)

	r.Route("/contestants", func(r chi.Router) {
		r.Post("/create", h.CreateContestant)
		r.Get("/", h.ListContestants)
		r.Get("/{contestant_id}", h.GetContestant)
		r.Put("/{contestant_id}", h.UpdateContestant)
		r.Delete("/{contestant_id}", h.DeleteContestant)
	})

	r.Route("/games", func(r chi.Router) {
		r.Post("/", h.CreateGame)
		r.Get("/", h.ListGames)
		r.Put("/{game_id}/start", h.StartGame)
		r.Put("/{game_id}/end", h.EndGame)
		r.Get("/{game_id}/details", h.GameDetails)

		r.Route("/{game_id}/contestants/{contestant_id}", func(r chi.Router) {
			r.Post("/join", h.JoinGame)
			r.Put("/score", h.UpdateScore)
			r.Put("/exit", h.ExitGame)
			r.Put("/upvote", h.Upvote)
		})
	})

	r.Route("/leaderboard", func(r chi.Router) {
		r.Get("/", h.GlobalLeaderboard)
		r.Get("/games/{game_id}", h.GameLeaderboard)
	})
}
