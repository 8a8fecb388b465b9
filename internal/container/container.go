package container

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bakeryhq/bakery-admin/config"
	"github.com/bakeryhq/bakery-admin/internal/api/audit"
	"github.com/bakeryhq/bakery-admin/internal/api/auth"
	"github.com/bakeryhq/bakery-admin/internal/api/product"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	AuthHandler    *auth.Handler
	AuditHandler   *audit.Handler
	ProductHandler *product.Handler

	AuthenticateMiddleware  func(http.Handler) http.Handler
	RequireActiveMiddleware func(http.Handler) http.Handler
}

// NewContainer wires pool, repositories, services, and handlers.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) (*Container, error) {
	tokenService, err := auth.NewTokenService(cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	// Repositories
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	auditRepo := audit.NewPostgresAuditRepo(pool, logger)
	productRepo := product.NewPostgresProductRepo(pool, logger)

	// Services
	authService := auth.NewAuthService(authRepo, auditRepo, tokenService, cfg.Auth.BcryptCost, logger)
	productService := product.NewProductService(productRepo, logger)

	// Handlers
	authHandler := auth.NewHandler(authService, logger)
	auditHandler := audit.NewHandler(auditRepo, logger)
	productHandler := product.NewHandler(productService, logger)

	return &Container{
		Config:                  cfg,
		Logger:                  logger,
		Pool:                    pool,
		AuthHandler:             authHandler,
		AuditHandler:            auditHandler,
		ProductHandler:          productHandler,
		AuthenticateMiddleware:  auth.Authenticate(logger, tokenService, authService),
		RequireActiveMiddleware: auth.RequireActiveUser(logger),
	}, nil
}
