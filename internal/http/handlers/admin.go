package handlers

import (
	"net/http"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/http/middleware"
	"crowdfund_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminWallets syncs and returns every system wallet including secret keys.
// This payload is privileged and sensitive; the route is gated by AdminOnly
// and the secret keys are never logged or audited.
func (h *Handler) AdminWallets(c *gin.Context) {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	wallets, err := h.Wallets.SyncAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch wallets"})
		return
	}
	if wallets == nil {
		wallets = []domain.AdminWallet{}
	}

	h.audit(c, user.ID, domain.AuditActionAdminWalletsView, domain.AuditCategoryAdmin, map[string]interface{}{
		"wallet_count": len(wallets),
	})

	c.JSON(http.StatusOK, gin.H{"wallets": wallets})
}

// AdminInit bootstraps the admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
// Idempotent: an existing admin account is left untouched.
func (h *Handler) AdminInit(c *gin.Context) {
	if h.AdminEmail == "" || h.AdminPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "admin credentials are not configured"})
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Users.GetByEmail(ctx, h.AdminEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"message": "admin already exists"})
		return
	}

	hash, err := service.HashPassword(h.AdminPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	admin := &domain.User{
		Email:        h.AdminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		IsAdmin:      true,
	}
	if err := h.Users.Create(ctx, admin); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create admin"})
		return
	}

	h.audit(c, admin.ID, domain.AuditActionAdminInit, domain.AuditCategoryAdmin, nil)

	c.JSON(http.StatusCreated, gin.H{"message": "admin created", "user": userPayload(admin)})
}
