package handlers

import (
	"errors"
	"net/http"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/http/middleware"
	"crowdfund_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateCampaignRequest struct {
	Title           string                 `json:"title" binding:"required"`
	Description     string                 `json:"description" binding:"required"`
	GoalAmount      float64                `json:"goal_amount" binding:"required,gt=0"`
	ImageURL        string                 `json:"image_url"`
	WalletAddresses []service.AddressInput `json:"wallet_addresses" binding:"required,min=1,dive"`
}

// CreateCampaign creates a campaign with its wallet addresses and system
// wallet in one transaction.
func (h *Handler) CreateCampaign(c *gin.Context) {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CreateCampaignRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, description, goal amount and at least one wallet address are required"})
		return
	}

	detail, err := h.Campaigns.Create(c.Request.Context(), user.ID, service.NewCampaignInput{
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		ImageURL:    req.ImageURL,
		Addresses:   req.WalletAddresses,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create campaign"})
		return
	}

	h.audit(c, user.ID, domain.AuditActionCampaignCreate, domain.AuditCategoryCampaign, map[string]interface{}{
		"campaign_id": detail.ID,
		"goal_amount": detail.GoalAmount,
	})

	c.JSON(http.StatusCreated, gin.H{"campaign": detail})
}

// ListCampaigns returns all campaigns, newest first. Public.
func (h *Handler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.Campaigns.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch campaigns"})
		return
	}
	if campaigns == nil {
		campaigns = []domain.CampaignSummary{}
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns})
}

// GetCampaign returns full campaign detail including donations. Public.
func (h *Handler) GetCampaign(c *gin.Context) {
	detail, err := h.Campaigns.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch campaign"})
		return
	}
	if detail.Donations == nil {
		detail.Donations = []domain.Donation{}
	}

	c.JSON(http.StatusOK, gin.H{"campaign": detail})
}

type UpdateStatusRequest struct {
	Status domain.CampaignStatus `json:"status" binding:"required"`
}

// UpdateCampaignStatus stores a new status value. Owner or admin only.
func (h *Handler) UpdateCampaignStatus(c *gin.Context) {
	user, ok := middleware.AuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req UpdateStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	ownerID, err := h.Campaigns.GetOwnerID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if ownerID != user.ID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
		return
	}

	if err := h.Campaigns.UpdateStatus(ctx, id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		case errors.Is(err, service.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	h.audit(c, user.ID, domain.AuditActionCampaignStatus, domain.AuditCategoryCampaign, map[string]interface{}{
		"campaign_id": id,
		"status":      req.Status,
	})

	c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": req.Status})
}

// SyncCampaignWallet refreshes the campaign's system wallet balance from the
// ledger and returns the cached value. An unreachable ledger yields 0, not
// an error.
func (h *Handler) SyncCampaignWallet(c *gin.Context) {
	balance, err := h.Wallets.SyncBalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrWalletNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync balance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}
