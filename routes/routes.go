package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Player    *handlers.PlayerHandler
	Match     *handlers.MatchHandler
	Standings *handlers.StandingsHandler
	Admin     *handlers.AdminHandler
	WebSocket *handlers.WebSocketHandler
}

type Options struct {
	AllowedOrigins []string
	TokenParser    middleware.TokenParser
	Logger         *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAdmin := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.TokenParser))
		r.Use(middleware.Authorize(services.AdminRole))
	}

	router.Get("/healthz", handlers.HealthHandler)
	router.Get("/swagger/doc.json", handlers.DocJSONHandler)
	router.Get("/swagger/*", handlers.SwaggerUIHandler())

	router.Post("/auth/login", h.Auth.LoginHandler)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Player.ListHandler)
		r.Get("/count", h.Player.CountHandler)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", h.Player.CreateHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", h.Match.ListHandler)
		r.Get("/check", h.Match.CheckHandler)

		r.Group(func(r chi.Router) {
			requireAdmin(r)
			r.Post("/", h.Match.CreateHandler)
			r.Delete("/", h.Match.DeleteAllHandler)
		})
	})

	router.Get("/standings", h.Standings.StandingsHandler)
	router.Get("/pairings", h.Standings.PairingsHandler)

	router.Route("/admin", func(r chi.Router) {
		requireAdmin(r)
		r.Post("/reset", h.Admin.ResetHandler)
		r.Post("/export", h.Admin.ExportHandler)
	})

	router.Get("/ws/tournament", h.WebSocket.ServeWs)
}
