package domain

import "time"

// SystemWallet is the platform-generated Solana keypair tied 1:1 to a campaign.
// Balance is the last synced value in SOL; 0 also covers "last sync failed".
type SystemWallet struct {
	ID         string    `db:"id" json:"id"`
	CampaignID string    `db:"campaign_id" json:"campaign_id"`
	PublicKey  string    `db:"public_key" json:"public_key"`
	SecretKey  string    `db:"secret_key" json:"-"`
	Balance    float64   `db:"balance" json:"balance"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// SystemWalletPub is the public projection: secret key never leaves the admin path.
type SystemWalletPub struct {
	PublicKey string  `json:"public_key"`
	Balance   float64 `json:"balance"`
}

func (w *SystemWallet) Pub() SystemWalletPub {
	return SystemWalletPub{PublicKey: w.PublicKey, Balance: w.Balance}
}

// AdminWallet is the privileged admin listing entry. SecretKey is intentionally
// serialized here and nowhere else.
type AdminWallet struct {
	ID            string    `json:"id"`
	CampaignID    string    `json:"campaign_id"`
	CampaignTitle string    `json:"campaign_title"`
	PublicKey     string    `json:"public_key"`
	SecretKey     string    `json:"secret_key"`
	Balance       float64   `json:"balance"`
	SyncedAt      time.Time `json:"synced_at"`
}
