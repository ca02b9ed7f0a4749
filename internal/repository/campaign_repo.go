package repository

import (
	"context"
	"errors"

	"crowdfund_webapp/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CampaignRepository struct {
	db *pgxpool.Pool
}

func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// CreateWithTx inserts a campaign inside an existing transaction so that the
// campaign, its wallet addresses and its system wallet commit as one unit.
func (r *CampaignRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, c *domain.Campaign) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.CampaignStatusActive
	}

	return tx.QueryRow(ctx,
		`INSERT INTO campaigns (id, user_id, title, description, image_url, goal_amount, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING current_amount, created_at, updated_at`,
		c.ID, c.UserID, c.Title, c.Description, c.ImageURL, c.GoalAmount, c.Status,
	).Scan(&c.CurrentAmount, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID returns a campaign, or nil when absent.
func (r *CampaignRepository) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, title, description, COALESCE(image_url, ''), goal_amount, current_amount, status, created_at, updated_at
		 FROM campaigns
		 WHERE id = $1`,
		id,
	)

	var c domain.Campaign
	if err := row.Scan(
		&c.ID, &c.UserID, &c.Title, &c.Description, &c.ImageURL,
		&c.GoalAmount, &c.CurrentAmount, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListSummaries returns all campaigns in reverse-chronological order together
// with their owner summary and donation count.
func (r *CampaignRepository) ListSummaries(ctx context.Context) ([]domain.CampaignSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.user_id, c.title, c.description, COALESCE(c.image_url, ''),
		       c.goal_amount, c.current_amount, c.status, c.created_at, c.updated_at,
		       u.id, COALESCE(u.name, ''), COALESCE(u.avatar, ''),
		       COALESCE(d.cnt, 0)
		FROM campaigns c
		JOIN users u ON u.id = c.user_id
		LEFT JOIN (
			SELECT campaign_id, COUNT(*) AS cnt FROM donations GROUP BY campaign_id
		) d ON d.campaign_id = c.id
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.CampaignSummary
	for rows.Next() {
		var s domain.CampaignSummary
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Title, &s.Description, &s.ImageURL,
			&s.GoalAmount, &s.CurrentAmount, &s.Status, &s.CreatedAt, &s.UpdatedAt,
			&s.Owner.ID, &s.Owner.Name, &s.Owner.Avatar,
			&s.DonationCount,
		); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// UpdateStatus stores a new status value for the campaign.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	result, err := r.db.Exec(ctx,
		`UPDATE campaigns SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
