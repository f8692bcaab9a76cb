package api

import (
	"net/http"
	"time"

	"contesthub/internal/api/handler"
	"contesthub/internal/app/service"
	"contesthub/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	contestService *service.ContestService,
	submissionService *service.SubmissionService,
	leaderboardService *service.LeaderboardService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer token when present and puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})
		v1.Group(func(authed chi.Router) {
			authHandler.RegisterProtectedRoutes(authed)
		})

		contestHandler := handler.NewContestHandler(contestService)
		submissionHandler := handler.NewSubmissionHandler(submissionService)
		leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
		v1.Route("/contests", func(contests chi.Router) {
			contests.Group(func(authed chi.Router) {
				contestHandler.RegisterRoutes(authed)
			})
			contests.Group(func(authed chi.Router) {
				submissionHandler.RegisterRoutes(authed)
			})
			// Leaderboard is public.
			contests.Group(func(public chi.Router) {
				leaderboardHandler.RegisterRoutes(public)
			})
		})
	})

	return r
}
