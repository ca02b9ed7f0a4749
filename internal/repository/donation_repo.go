package repository

import (
	"context"

	"crowdfund_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DonationRepository struct {
	db *pgxpool.Pool
}

func NewDonationRepository(db *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{db: db}
}

// CreateWithTx inserts a donation inside the recording transaction.
// The unique index on tx_hash rejects replays; callers detect it with
// IsUniqueViolation.
func (r *DonationRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, d *domain.Donation) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	return tx.QueryRow(ctx,
		`INSERT INTO donations (id, campaign_id, amount, admin_fee, tx_hash, blockchain, donor_address)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		d.ID, d.CampaignID, d.Amount, d.AdminFee, d.TxHash, d.Blockchain, d.DonorAddress,
	).Scan(&d.CreatedAt)
}

// GetByCampaignID returns a campaign's donations, newest first.
func (r *DonationRepository) GetByCampaignID(ctx context.Context, campaignID string, limit int) ([]domain.Donation, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, campaign_id, amount, admin_fee, tx_hash, blockchain, COALESCE(donor_address, ''), created_at
		 FROM donations
		 WHERE campaign_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		campaignID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDonations(rows)
}

// CountByCampaignID returns the number of donations recorded for a campaign.
func (r *DonationRepository) CountByCampaignID(ctx context.Context, campaignID string) (int64, error) {
	var cnt int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM donations WHERE campaign_id = $1`,
		campaignID,
	).Scan(&cnt)
	return cnt, err
}

func scanDonations(rows pgx.Rows) ([]domain.Donation, error) {
	var res []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &d.Amount, &d.AdminFee, &d.TxHash, &d.Blockchain, &d.DonorAddress, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, rows.Err()
}
