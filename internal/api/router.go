package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/potionworks/potion-api-be/internal/api/handlers"
	"github.com/potionworks/potion-api-be/internal/auth"
	"github.com/potionworks/potion-api-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(authService *auth.Service, potionService services.PotionServiceProvider, userService services.UserServiceProvider) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Permissive CORS, matching the open policy of the original service
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Initialize handlers
	potionHandler := handlers.NewPotionHandler(potionService)
	authHandler := handlers.NewAuthHandler(userService, authService)

	requireAuth := authService.Middleware()

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
	})

	r.Route("/potions", func(r chi.Router) {
		r.Get("/", potionHandler.GetAll)
		r.With(requireAuth).Post("/", potionHandler.Create)

		r.Get("/names", potionHandler.GetNames)
		r.Get("/vendor/{vendor_id}", potionHandler.GetByVendor)
		r.Get("/price-range", potionHandler.GetByPriceRange)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/distinct-categories", potionHandler.DistinctCategories)
			r.Get("/average-score-by-vendor", potionHandler.AverageScoreByVendor)
			r.Get("/average-score-by-category", potionHandler.AverageScoreByCategory)
			r.Get("/strength-flavor-ratio", potionHandler.StrengthFlavorRatio)
			r.Get("/search", potionHandler.Search)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", potionHandler.Get)
			// Update and delete are gated like create; leaving them open
			// while gating create would make the auth check pointless.
			r.With(requireAuth).Put("/", potionHandler.Update)
			r.With(requireAuth).Delete("/", potionHandler.Delete)
		})
	})

	return r
}
