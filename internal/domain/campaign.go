package domain

import "time"

// CampaignStatus is stored as-is; transitions are an operator decision,
// the server only validates that the value is one of the known statuses.
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "ACTIVE"
	CampaignStatusPaused    CampaignStatus = "PAUSED"
	CampaignStatusCompleted CampaignStatus = "COMPLETED"
	CampaignStatusCancelled CampaignStatus = "CANCELLED"
)

// ValidCampaignStatus reports whether s is a known status value.
func ValidCampaignStatus(s CampaignStatus) bool {
	switch s {
	case CampaignStatusActive, CampaignStatusPaused, CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

type Campaign struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"user_id"`
	Title         string         `db:"title" json:"title"`
	Description   string         `db:"description" json:"description"`
	ImageURL      string         `db:"image_url" json:"image_url,omitempty"`
	GoalAmount    float64        `db:"goal_amount" json:"goal_amount"`
	CurrentAmount float64        `db:"current_amount" json:"current_amount"`
	Status        CampaignStatus `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// WalletAddress is an author-supplied donation address on some chain.
// The address format is not validated server-side.
type WalletAddress struct {
	ID         string    `db:"id" json:"id"`
	CampaignID string    `db:"campaign_id" json:"campaign_id"`
	Address    string    `db:"address" json:"address"`
	Blockchain string    `db:"blockchain" json:"blockchain"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CampaignSummary is the list-view shape: campaign plus owner and donation count.
type CampaignSummary struct {
	Campaign
	Owner           UserSummary     `json:"owner"`
	WalletAddresses []WalletAddress `json:"wallet_addresses"`
	DonationCount   int64           `json:"donation_count"`
}

// CampaignDetail is the full public read: everything a campaign page needs.
// SystemWallet carries the public key and cached balance only.
type CampaignDetail struct {
	Campaign
	Owner           UserSummary      `json:"owner"`
	WalletAddresses []WalletAddress  `json:"wallet_addresses"`
	SystemWallet    *SystemWalletPub `json:"system_wallet,omitempty"`
	Donations       []Donation       `json:"donations"`
	DonationCount   int64            `json:"donation_count"`
}
