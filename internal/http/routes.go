package http

import (
	"os"
	"strconv"
	"time"

	"crowdfund_webapp/internal/config"
	"crowdfund_webapp/internal/http/handlers"
	"crowdfund_webapp/internal/http/middleware"
	"crowdfund_webapp/internal/solana"
	"crowdfund_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires every endpoint onto the engine.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, ledger *solana.Client, cfg *config.Config, hub *ws.Hub, version string) {
	h := handlers.NewHandler(db, ledger, handlers.HandlerConfig{
		FeePercentage: cfg.AdminFeePercentage,
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Feed:          hub,
	})
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 10
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Without Redis the limiter falls back to per-process counters.
	rateLimit := middleware.SimpleRateLimit
	if cfg.RedisAddr != "" {
		rateLimit = middleware.RedisRateLimit
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(rateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h, rateLimit(authRateLimit, authRateWindow))

	// Legacy /api routes (kept for backward compatibility)
	api := r.Group("/api")
	api.Use(rateLimit(apiRateLimit, apiRateWindow))
	registerAPIRoutes(api, h, rateLimit(authRateLimit, authRateWindow))

	// Live donation feed
	r.GET("/ws", ws.Handler(hub))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, authRL gin.HandlerFunc) {
	// Auth
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)
	api.POST("/auth/logout", h.Logout)
	api.GET("/auth/me", middleware.JWT(), h.Me)

	// Campaigns
	api.POST("/campaigns", middleware.JWT(), h.CreateCampaign)
	api.GET("/campaigns", h.ListCampaigns)
	api.GET("/campaigns/:id", h.GetCampaign)
	api.PATCH("/campaigns/:id/status", middleware.JWT(), h.UpdateCampaignStatus)
	api.POST("/campaigns/:id/wallet/sync", h.SyncCampaignWallet)

	// Donations
	api.POST("/donations", h.RecordDonation)

	// Admin
	admin := api.Group("/admin")
	{
		admin.POST("/init", h.AdminInit)
		admin.GET("/wallets", middleware.JWT(), middleware.AdminOnly(), h.AdminWallets)
	}
}
