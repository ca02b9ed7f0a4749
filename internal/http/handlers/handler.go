package handlers

import (
	"crowdfund_webapp/internal/repository"
	"crowdfund_webapp/internal/service"
	"crowdfund_webapp/internal/solana"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	FeePercentage float64
	AdminEmail    string
	AdminPassword string
	Feed          service.DonationFeed
}

type Handler struct {
	DB            *pgxpool.Pool
	Users         *repository.UserRepository
	Campaigns     *service.CampaignService
	Donations     *service.DonationService
	Wallets       *service.WalletService
	AuditService  *service.AuditService
	AdminEmail    string
	AdminPassword string
}

func NewHandler(db *pgxpool.Pool, ledger *solana.Client, cfg HandlerConfig) *Handler {
	return &Handler{
		DB:            db,
		Users:         repository.NewUserRepository(db),
		Campaigns:     service.NewCampaignService(db),
		Donations:     service.NewDonationService(db, cfg.FeePercentage, cfg.Feed),
		Wallets:       service.NewWalletService(db, ledger),
		AuditService:  service.NewAuditService(db),
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}
}

// audit records a request-scoped audit entry with client info attached.
func (h *Handler) audit(c *gin.Context, userID, action, category string, details map[string]interface{}) {
	h.AuditService.LogWithRequest(c.Request.Context(), userID, action, category,
		c.ClientIP(), c.Request.UserAgent(), details)
}
