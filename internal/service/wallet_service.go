package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/logger"
	"crowdfund_webapp/internal/repository"
	"crowdfund_webapp/internal/solana"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrWalletNotFound = errors.New("system wallet not found")

// WalletService keeps cached system wallet balances in sync with the ledger.
// The RPC client is injected; the service owns no global connection state.
type WalletService struct {
	wallets *repository.SystemWalletRepository
	ledger  *solana.Client
}

// NewWalletService creates a new wallet service
func NewWalletService(db *pgxpool.Pool, ledger *solana.Client) *WalletService {
	return &WalletService{
		wallets: repository.NewSystemWalletRepository(db),
		ledger:  ledger,
	}
}

// fetchBalance queries the ledger and downgrades any RPC failure to a zero
// balance. Callers cannot distinguish "no funds" from "ledger unreachable"
// in the returned value; the failure is visible only in the server log.
func (s *WalletService) fetchBalance(ctx context.Context, publicKey string) float64 {
	balance, err := s.ledger.GetBalance(ctx, publicKey)
	if err != nil {
		logger.Error("failed to fetch wallet balance", "public_key", publicKey, "error", err)
		return 0
	}
	return balance
}

// SyncBalance refreshes the cached balance of a campaign's system wallet and
// returns the new value.
func (s *WalletService) SyncBalance(ctx context.Context, campaignID string) (float64, error) {
	wallet, err := s.wallets.GetByCampaignID(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	if wallet == nil {
		return 0, ErrWalletNotFound
	}

	balance := s.fetchBalance(ctx, wallet.PublicKey)
	if err := s.wallets.UpdateBalance(ctx, wallet.ID, balance); err != nil {
		return 0, err
	}

	return balance, nil
}

// SyncAll refreshes every system wallet concurrently and returns the admin
// listing. Wallets are independent; one failing ledger query does not block
// or abort the others.
func (s *WalletService) SyncAll(ctx context.Context) ([]domain.AdminWallet, error) {
	entries, err := s.wallets.ListWithCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.AdminWallet, len(entries))

	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(i int, entry repository.WalletWithCampaign) {
			defer wg.Done()

			balance := s.fetchBalance(ctx, entry.Wallet.PublicKey)
			if err := s.wallets.UpdateBalance(ctx, entry.Wallet.ID, balance); err != nil {
				logger.Error("failed to persist wallet balance", "wallet_id", entry.Wallet.ID, "error", err)
			}

			result[i] = domain.AdminWallet{
				ID:            entry.Wallet.ID,
				CampaignID:    entry.Wallet.CampaignID,
				CampaignTitle: entry.CampaignTitle,
				PublicKey:     entry.Wallet.PublicKey,
				SecretKey:     entry.Wallet.SecretKey,
				Balance:       balance,
				SyncedAt:      time.Now().UTC(),
			}
		}(i, entry)
	}
	wg.Wait()

	return result, nil
}
