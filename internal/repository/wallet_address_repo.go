package repository

import (
	"context"

	"crowdfund_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WalletAddressRepository struct {
	db *pgxpool.Pool
}

func NewWalletAddressRepository(db *pgxpool.Pool) *WalletAddressRepository {
	return &WalletAddressRepository{db: db}
}

// CreateWithTx inserts an author-supplied wallet address within a transaction.
func (r *WalletAddressRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, wa *domain.WalletAddress) error {
	if wa.ID == "" {
		wa.ID = uuid.NewString()
	}

	return tx.QueryRow(ctx,
		`INSERT INTO wallet_addresses (id, campaign_id, address, blockchain)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		wa.ID, wa.CampaignID, wa.Address, wa.Blockchain,
	).Scan(&wa.CreatedAt)
}

// GetByCampaignID returns all wallet addresses of a campaign.
func (r *WalletAddressRepository) GetByCampaignID(ctx context.Context, campaignID string) ([]domain.WalletAddress, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, campaign_id, address, blockchain, created_at
		 FROM wallet_addresses
		 WHERE campaign_id = $1
		 ORDER BY created_at`,
		campaignID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanWalletAddresses(rows)
}

// GetByCampaignIDs returns the wallet addresses of all given campaigns,
// grouped by campaign id. Used by the list view to avoid per-row queries.
func (r *WalletAddressRepository) GetByCampaignIDs(ctx context.Context, campaignIDs []string) (map[string][]domain.WalletAddress, error) {
	if len(campaignIDs) == 0 {
		return map[string][]domain.WalletAddress{}, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, campaign_id, address, blockchain, created_at
		 FROM wallet_addresses
		 WHERE campaign_id = ANY($1)
		 ORDER BY created_at`,
		campaignIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addrs, err := scanWalletAddresses(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]domain.WalletAddress, len(campaignIDs))
	for _, wa := range addrs {
		grouped[wa.CampaignID] = append(grouped[wa.CampaignID], wa)
	}
	return grouped, nil
}

func scanWalletAddresses(rows pgx.Rows) ([]domain.WalletAddress, error) {
	var res []domain.WalletAddress
	for rows.Next() {
		var wa domain.WalletAddress
		if err := rows.Scan(&wa.ID, &wa.CampaignID, &wa.Address, &wa.Blockchain, &wa.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, wa)
	}
	return res, rows.Err()
}
