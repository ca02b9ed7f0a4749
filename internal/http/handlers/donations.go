package handlers

import (
	"errors"
	"net/http"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

type RecordDonationRequest struct {
	CampaignID   string  `json:"campaign_id" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	TxHash       string  `json:"tx_hash" binding:"required"`
	Blockchain   string  `json:"blockchain" binding:"required"`
	DonorAddress string  `json:"donor_address"`
}

// RecordDonation records a confirmed on-chain transfer against a campaign.
// The tx hash is the idempotency key: a replay is rejected with 409 and the
// running total is untouched.
func (h *Handler) RecordDonation(c *gin.Context) {
	var req RecordDonationRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "campaign id, amount, transaction hash and blockchain are required"})
		return
	}

	donation, err := h.Donations.Record(c.Request.Context(), service.RecordDonationInput{
		CampaignID:   req.CampaignID,
		Amount:       req.Amount,
		TxHash:       req.TxHash,
		Blockchain:   req.Blockchain,
		DonorAddress: req.DonorAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "campaign not found"})
		case errors.Is(err, service.ErrDuplicateTransaction):
			c.JSON(http.StatusConflict, gin.H{"error": "transaction already recorded"})
		case errors.Is(err, service.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	h.audit(c, "", domain.AuditActionDonationRecord, domain.AuditCategoryDonation, map[string]interface{}{
		"campaign_id": donation.CampaignID,
		"amount":      donation.Amount,
		"tx_hash":     donation.TxHash,
		"blockchain":  donation.Blockchain,
	})

	c.JSON(http.StatusCreated, gin.H{"donation": donation})
}
