package service

import (
	"context"
	"errors"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/repository"
	"crowdfund_webapp/internal/solana"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrInvalidStatus    = errors.New("invalid campaign status")
)

// CampaignService orchestrates campaign creation and reads.
type CampaignService struct {
	db        *pgxpool.Pool
	campaigns *repository.CampaignRepository
	addresses *repository.WalletAddressRepository
	wallets   *repository.SystemWalletRepository
	donations *repository.DonationRepository
	users     *repository.UserRepository
}

// NewCampaignService creates a new campaign service
func NewCampaignService(db *pgxpool.Pool) *CampaignService {
	return &CampaignService{
		db:        db,
		campaigns: repository.NewCampaignRepository(db),
		addresses: repository.NewWalletAddressRepository(db),
		wallets:   repository.NewSystemWalletRepository(db),
		donations: repository.NewDonationRepository(db),
		users:     repository.NewUserRepository(db),
	}
}

// AddressInput is an author-supplied donation address.
type AddressInput struct {
	Address    string `json:"address" binding:"required"`
	Blockchain string `json:"blockchain" binding:"required"`
}

// NewCampaignInput carries the fields needed to create a campaign.
type NewCampaignInput struct {
	Title       string
	Description string
	GoalAmount  float64
	ImageURL    string
	Addresses   []AddressInput
}

// Create inserts the campaign, its wallet addresses and a freshly generated
// system wallet in a single transaction. A campaign never exists without its
// system wallet.
func (s *CampaignService) Create(ctx context.Context, userID string, in NewCampaignInput) (*domain.CampaignDetail, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	campaign := &domain.Campaign{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		GoalAmount:  in.GoalAmount,
	}
	if err := s.campaigns.CreateWithTx(ctx, tx, campaign); err != nil {
		return nil, err
	}

	for _, a := range in.Addresses {
		wa := &domain.WalletAddress{
			CampaignID: campaign.ID,
			Address:    a.Address,
			Blockchain: a.Blockchain,
		}
		if err := s.addresses.CreateWithTx(ctx, tx, wa); err != nil {
			return nil, err
		}
	}

	kp := solana.GenerateKeypair()
	wallet := &domain.SystemWallet{
		CampaignID: campaign.ID,
		PublicKey:  kp.PublicKey,
		SecretKey:  kp.SecretKey,
	}
	if err := s.wallets.CreateWithTx(ctx, tx, wallet); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return s.Get(ctx, campaign.ID)
}

// Get assembles the full public campaign detail. The system wallet is
// projected to public key and cached balance; the secret key stays out of
// this path entirely.
func (s *CampaignService) Get(ctx context.Context, id string) (*domain.CampaignDetail, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	detail := &domain.CampaignDetail{Campaign: *campaign}

	owner, err := s.users.GetByID(ctx, campaign.UserID)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		detail.Owner = owner.Summary()
	}

	if detail.WalletAddresses, err = s.addresses.GetByCampaignID(ctx, id); err != nil {
		return nil, err
	}

	wallet, err := s.wallets.GetByCampaignID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wallet != nil {
		pub := wallet.Pub()
		detail.SystemWallet = &pub
	}

	if detail.Donations, err = s.donations.GetByCampaignID(ctx, id, 100); err != nil {
		return nil, err
	}
	if detail.DonationCount, err = s.donations.CountByCampaignID(ctx, id); err != nil {
		return nil, err
	}

	return detail, nil
}

// List returns all campaigns, newest first, with owner summaries, wallet
// addresses and donation counts.
func (s *CampaignService) List(ctx context.Context) ([]domain.CampaignSummary, error) {
	summaries, err := s.campaigns.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(summaries))
	for _, c := range summaries {
		ids = append(ids, c.ID)
	}

	addrs, err := s.addresses.GetByCampaignIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		summaries[i].WalletAddresses = addrs[summaries[i].ID]
	}

	return summaries, nil
}

// GetOwnerID returns the owning user of a campaign.
func (s *CampaignService) GetOwnerID(ctx context.Context, id string) (string, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if campaign == nil {
		return "", ErrCampaignNotFound
	}
	return campaign.UserID, nil
}

// UpdateStatus stores a new status value. The status set is validated but
// transitions are not enforced.
func (s *CampaignService) UpdateStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	if !domain.ValidCampaignStatus(status) {
		return ErrInvalidStatus
	}

	err := s.campaigns.UpdateStatus(ctx, id, status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCampaignNotFound
	}
	return err
}
