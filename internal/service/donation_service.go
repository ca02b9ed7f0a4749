package service

import (
	"context"
	"errors"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateTransaction = errors.New("transaction already recorded")
	ErrInvalidAmount        = errors.New("invalid amount")
)

// DonationFeed receives successfully recorded donations for live broadcast.
type DonationFeed interface {
	Publish(d domain.Donation)
}

// DonationService records donations and keeps campaign running totals
// consistent with them.
type DonationService struct {
	db            *pgxpool.Pool
	donations     *repository.DonationRepository
	feePercentage float64
	feed          DonationFeed
}

// NewDonationService creates a donation service. feed may be nil.
func NewDonationService(db *pgxpool.Pool, feePercentage float64, feed DonationFeed) *DonationService {
	return &DonationService{
		db:            db,
		donations:     repository.NewDonationRepository(db),
		feePercentage: feePercentage,
		feed:          feed,
	}
}

// Fee returns the platform fee retained from amount.
func (s *DonationService) Fee(amount float64) float64 {
	return amount * s.feePercentage / 100
}

// RecordDonationInput carries a confirmed on-chain transfer.
type RecordDonationInput struct {
	CampaignID   string
	Amount       float64
	TxHash       string
	Blockchain   string
	DonorAddress string
}

// Record inserts the donation and credits the campaign's running total with
// the net amount in one transaction. The campaign row is locked first so
// concurrent submissions serialize on the increment, and the unique tx_hash
// index rejects replays inside the same transaction.
func (s *DonationService) Record(ctx context.Context, in RecordDonationInput) (*domain.Donation, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var campaignID string
	err = tx.QueryRow(ctx, `SELECT id FROM campaigns WHERE id = $1 FOR UPDATE`, in.CampaignID).Scan(&campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	donation := &domain.Donation{
		CampaignID:   in.CampaignID,
		Amount:       in.Amount,
		AdminFee:     s.Fee(in.Amount),
		TxHash:       in.TxHash,
		Blockchain:   in.Blockchain,
		DonorAddress: in.DonorAddress,
	}

	if err := s.donations.CreateWithTx(ctx, tx, donation); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateTransaction
		}
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE campaigns SET current_amount = current_amount + $1, updated_at = now() WHERE id = $2`,
		donation.Net(), in.CampaignID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Publish(*donation)
	}

	return donation, nil
}
