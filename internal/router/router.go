package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mesero-nana/api/internal/auth"
	"github.com/mesero-nana/api/internal/config"
	"github.com/mesero-nana/api/internal/enum"
	"github.com/mesero-nana/api/internal/handler"
	mw "github.com/mesero-nana/api/internal/middleware"
	"github.com/mesero-nana/api/internal/repository"
	"github.com/mesero-nana/api/internal/simulator"
	"github.com/mesero-nana/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, authSvc *auth.Service, repo *repository.OrderRepository, gen *simulator.Generator, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(authSvc)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		authHandler.RegisterProtectedRoutes(r)

		menuHandler := handler.NewMenuHandler()
		menuHandler.RegisterRoutes(r)

		orderHandler := handler.NewOrderHandler(repo, hub)
		orderHandler.RegisterRoutes(r)

		simulatorHandler := handler.NewSimulatorHandler(gen, repo, hub)
		simulatorHandler.RegisterRoutes(r)

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleAdmin))

			orderHandler.RegisterAdminRoutes(r)

			securityHandler := handler.NewSecurityHandler(authSvc)
			securityHandler.RegisterRoutes(r)
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}
