package repository

import (
	"context"
	"errors"

	"crowdfund_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SystemWalletRepository struct {
	db *pgxpool.Pool
}

func NewSystemWalletRepository(db *pgxpool.Pool) *SystemWalletRepository {
	return &SystemWalletRepository{db: db}
}

// CreateWithTx inserts a system wallet within the campaign-creation
// transaction. campaign_id is unique: one wallet per campaign.
func (r *SystemWalletRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, w *domain.SystemWallet) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	return tx.QueryRow(ctx,
		`INSERT INTO system_wallets (id, campaign_id, public_key, secret_key, balance)
		 VALUES ($1, $2, $3, $4, 0)
		 RETURNING balance, created_at, updated_at`,
		w.ID, w.CampaignID, w.PublicKey, w.SecretKey,
	).Scan(&w.Balance, &w.CreatedAt, &w.UpdatedAt)
}

// GetByCampaignID returns the campaign's system wallet, or nil when absent.
func (r *SystemWalletRepository) GetByCampaignID(ctx context.Context, campaignID string) (*domain.SystemWallet, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, campaign_id, public_key, secret_key, balance, created_at, updated_at
		 FROM system_wallets
		 WHERE campaign_id = $1`,
		campaignID,
	)

	var w domain.SystemWallet
	if err := row.Scan(
		&w.ID, &w.CampaignID, &w.PublicKey, &w.SecretKey, &w.Balance, &w.CreatedAt, &w.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// WalletWithCampaign pairs a system wallet with its campaign title for the
// admin listing.
type WalletWithCampaign struct {
	Wallet        domain.SystemWallet
	CampaignTitle string
}

// ListWithCampaigns returns every system wallet joined with its campaign.
func (r *SystemWalletRepository) ListWithCampaigns(ctx context.Context) ([]WalletWithCampaign, error) {
	rows, err := r.db.Query(ctx, `
		SELECT w.id, w.campaign_id, w.public_key, w.secret_key, w.balance, w.created_at, w.updated_at, c.title
		FROM system_wallets w
		JOIN campaigns c ON c.id = w.campaign_id
		ORDER BY w.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []WalletWithCampaign
	for rows.Next() {
		var e WalletWithCampaign
		if err := rows.Scan(
			&e.Wallet.ID, &e.Wallet.CampaignID, &e.Wallet.PublicKey, &e.Wallet.SecretKey,
			&e.Wallet.Balance, &e.Wallet.CreatedAt, &e.Wallet.UpdatedAt, &e.CampaignTitle,
		); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// UpdateBalance persists a freshly synced balance.
func (r *SystemWalletRepository) UpdateBalance(ctx context.Context, walletID string, balance float64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE system_wallets SET balance = $2, updated_at = now() WHERE id = $1`,
		walletID, balance,
	)
	return err
}
