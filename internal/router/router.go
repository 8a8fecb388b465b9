package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/bakeryhq/bakery-admin/docs"
	"github.com/bakeryhq/bakery-admin/internal/api/audit"
	"github.com/bakeryhq/bakery-admin/internal/api/auth"
	"github.com/bakeryhq/bakery-admin/internal/api/product"
)

// Config contains dependencies needed for the router setup
type Config struct {
	AuthHandler    *auth.Handler
	AuditHandler   *audit.Handler
	ProductHandler *product.Handler

	// The two-stage request gate. Authenticate verifies the bearer token and
	// re-resolves the user; RequireActive rejects deactivated accounts.
	Authenticate  func(http.Handler) http.Handler
	RequireActive func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Get("/api-docs/*", httpSwagger.Handler(
		httpSwagger.URL("/api-docs/doc.json"),
	))

	// Public auth routes
	r.Group(func(r chi.Router) {
		r.Post("/api/auth/register", cfg.AuthHandler.Register)
		r.Post("/api/auth/login", cfg.AuthHandler.Login)
	})

	// Protected routes: token verification only.
	r.Group(func(r chi.Router) {
		r.Use(cfg.Authenticate)

		r.Get("/api/audit-logs", cfg.AuditHandler.GetAuditLogs)
	})

	// Protected routes: token verification plus active-account check.
	r.Group(func(r chi.Router) {
		r.Use(cfg.Authenticate)
		r.Use(cfg.RequireActive)

		r.Get("/api/profile", cfg.AuthHandler.Profile)

		r.Route("/products", func(r chi.Router) {
			r.Post("/", cfg.ProductHandler.CreateProduct)
			r.Get("/", cfg.ProductHandler.GetAllProducts)
			r.Get("/{id}", cfg.ProductHandler.GetProductByID)
			r.Put("/{id}", cfg.ProductHandler.UpdateProduct)
			r.Delete("/{id}", cfg.ProductHandler.DeleteProduct)
		})
	})

	return r
}
