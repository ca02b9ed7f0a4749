package domain

import "time"

// Donation is immutable once recorded. TxHash is globally unique and is the
// system's idempotency key: a replayed submission must not double-credit.
type Donation struct {
	ID           string    `db:"id" json:"id"`
	CampaignID   string    `db:"campaign_id" json:"campaign_id"`
	Amount       float64   `db:"amount" json:"amount"`
	AdminFee     float64   `db:"admin_fee" json:"admin_fee"`
	TxHash       string    `db:"tx_hash" json:"tx_hash"`
	Blockchain   string    `db:"blockchain" json:"blockchain"`
	DonorAddress string    `db:"donor_address" json:"donor_address,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Net returns the amount credited to the campaign after the admin fee.
func (d *Donation) Net() float64 {
	return d.Amount - d.AdminFee
}
