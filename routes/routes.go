package routes

import (
	"net/http"

	_ "github.com/Dosada05/swiss-tournament/docs"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	Players   *handlers.PlayerHandler
	Matches   *handlers.MatchHandler
	Rounds    *handlers.RoundHandler
	WebSocket *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	router.Get("/ws/live", h.WebSocket.ServeLive)

	router.Post("/auth/login", h.Auth.Login)

	organizerOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.Authorize(models.RoleOrganizer))
	}

	router.Route("/players", func(r chi.Router) {
		r.Get("/", h.Players.ListPlayers)
		r.Get("/count", h.Players.CountPlayers)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", h.Players.RegisterPlayer)
			r.Delete("/", h.Players.DeletePlayers)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		organizerOnly(r)
		r.Post("/", h.Matches.ReportMatch)
		r.Delete("/", h.Matches.DeleteMatches)
	})

	router.Get("/standings", h.Rounds.Standings)

	router.Route("/rounds/{round}", func(r chi.Router) {
		r.Get("/pairings", h.Rounds.PreviewPairings)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/pairings", h.Rounds.StartRound)
		})
	})
}
