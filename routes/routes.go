package routes

import (
	"github.com/Dosada05/tournament-ops/handlers"
	"github.com/Dosada05/tournament-ops/middleware"
	"github.com/Dosada05/tournament-ops/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Config struct {
	JWTSecretKey   string
	AllowedOrigins []string
}

func SetupRoutes(
	router chi.Router,
	cfg Config,
	playerHandler *handlers.PlayerHandler,
	lineupHandler *handlers.LineupHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", handlers.Healthz)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Get("/{playerID}", playerHandler.GetPlayer)
	})

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.JWTSecretKey))
			r.Use(middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin))

			r.Post("/lineups", lineupHandler.AssembleLineup)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
