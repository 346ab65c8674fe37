package api

import (
	"net/http"
	"time"
	"todo_api/internal/api/handler"
	"todo_api/internal/api/middleware"
	"todo_api/internal/app/service"
	"todo_api/internal/common/security"
	"todo_api/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	userService *service.UserService,
	todoService *service.TodoService,
	limitStore middleware.RateLimitStore,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(chiMiddleware.RequestSize(10 * 1024)) // 10kb request bodies

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{config.AppConfig.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Parses a bearer token when present; Authenticator enforces it per group.
	r.Use(jwtauth.Verifier(security.AccessAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(api chi.Router) {
		if limitStore != nil {
			api.Use(middleware.RateLimit(limitStore, config.AppConfig.RateLimitMax, config.AppConfig.RateLimitWindow))
		}

		api.Route("/user", func(user chi.Router) {
			// Auth routes (public)
			authHandler := handler.NewAuthHandler(authService)
			user.Group(func(public chi.Router) {
				authHandler.RegisterRoutes(public)
			})

			// User routes (authenticated; role checks inside)
			userHandler := handler.NewUserHandler(userService)
			user.Group(func(protected chi.Router) {
				protected.Use(middleware.Authenticator)
				userHandler.RegisterRoutes(protected)
			})
		})

		// Todo routes (authenticated)
		api.Route("/todo", func(todo chi.Router) {
			todo.Use(middleware.Authenticator)
			todoHandler := handler.NewTodoHandler(todoService)
			todoHandler.RegisterRoutes(todo)
		})
	})

	return r
}
