package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/govu-ux/Tournament-Tracker/handlers"
)

// SetupRoutes wires the HTTP surface: the tournament snapshot and reset, the
// team/match/playoff operations and the websocket endpoint.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	playoffHandler *handlers.PlayoffHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", tournamentHandler.Health)
	router.Get("/ws", webSocketHandler.ServeWs)

	router.Route("/tournament", func(r chi.Router) {
		r.Get("/", tournamentHandler.Snapshot)
		r.Delete("/", tournamentHandler.Reset)
		r.Get("/standings", tournamentHandler.Standings)

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.List)
			r.Post("/", teamHandler.Create)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.List)
			r.Post("/", matchHandler.Schedule)
			r.Post("/generate", matchHandler.GenerateLeague)
			r.Put("/{matchID}/result", matchHandler.UpdateResult)
			r.Post("/{matchID}/auto-result", matchHandler.AutoResult)
		})

		r.Route("/playoffs", func(r chi.Router) {
			r.Get("/", playoffHandler.View)
			r.Post("/generate", playoffHandler.Generate)
			r.Put("/{matchID}/result", playoffHandler.UpdateResult)
		})
	})
}
