package api

import (
	"net/http"
	"time"

	"taskhub/internal/api/handler"
	"taskhub/internal/api/middleware"
	"taskhub/internal/app/service"
	"taskhub/internal/common/security"
	"taskhub/internal/domain/repository"
	"taskhub/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authService *service.AuthService,
	taskService *service.TaskService,
	userRepo repository.UserRepository,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(middleware.Metrics)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.RateLimiter(config.AppConfig.RateLimitPerSecond, config.AppConfig.RateLimitBurst))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Verifies the session token (cookie first, then Authorization header)
	// and puts claims in context. Authentication itself happens in
	// middleware.Auth, which resolves the claims against the user store.
	r.Use(jwtauth.Verify(security.TokenAuth, security.TokenFromSessionCookie, jwtauth.TokenFromHeader))

	auth := middleware.NewAuth(userRepo)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(apiRouter chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		apiRouter.Route("/auth", authHandler.RegisterRoutes)

		// Task routes (authenticated)
		taskHandler := handler.NewTaskHandler(taskService)
		apiRouter.Route("/tasks", func(taskRouter chi.Router) {
			taskRouter.Use(auth.Authenticator)
			taskHandler.RegisterRoutes(taskRouter)
		})
	})

	return r
}
