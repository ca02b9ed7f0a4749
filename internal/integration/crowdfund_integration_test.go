package integration

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/repository"
	"crowdfund_webapp/internal/service"
	"crowdfund_webapp/internal/solana"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func createTestUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()

	hash, err := service.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	u := &domain.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: hash,
		Name:         "Integration User",
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createTestCampaign(t *testing.T, db *pgxpool.Pool, userID string) *domain.CampaignDetail {
	t.Helper()

	svc := service.NewCampaignService(db)
	detail, err := svc.Create(context.Background(), userID, service.NewCampaignInput{
		Title:       "Save the reef",
		Description: "Coral restoration fund",
		GoalAmount:  1000,
		Addresses: []service.AddressInput{
			{Address: "0xabc" + uuid.NewString(), Blockchain: "ethereum"},
		},
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return detail
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testDB(t)

	u := createTestUser(t, db)

	dup := &domain.User{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Name:         "Other",
	}
	err := repository.NewUserRepository(db).Create(context.Background(), dup)
	if err == nil {
		t.Fatal("expected unique violation for duplicate email")
	}
	if !repository.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}

func TestCampaignService_CreateProvisionsSystemWallet(t *testing.T) {
	db := testDB(t)

	user := createTestUser(t, db)
	detail := createTestCampaign(t, db, user.ID)

	if detail.SystemWallet == nil {
		t.Fatal("expected system wallet on created campaign")
	}
	if detail.SystemWallet.PublicKey == "" {
		t.Fatal("system wallet has empty public key")
	}
	if len(detail.WalletAddresses) != 1 {
		t.Fatalf("expected 1 wallet address, got %d", len(detail.WalletAddresses))
	}
	if detail.Status != domain.CampaignStatusActive {
		t.Fatalf("expected ACTIVE status, got %s", detail.Status)
	}

	// each campaign gets its own keypair
	other := createTestCampaign(t, db, user.ID)
	if other.SystemWallet.PublicKey == detail.SystemWallet.PublicKey {
		t.Fatal("system wallets must not share keys")
	}

	// exactly one wallet row per campaign
	var count int
	err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM system_wallets WHERE campaign_id = $1`, detail.ID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count wallets: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 system wallet, got %d", count)
	}
}

func TestDonationService_RecordCreditsNetAmount(t *testing.T) {
	db := testDB(t)

	user := createTestUser(t, db)
	campaign := createTestCampaign(t, db, user.ID)

	svc := service.NewDonationService(db, 0.5, nil)
	d, err := svc.Record(context.Background(), service.RecordDonationInput{
		CampaignID:   campaign.ID,
		Amount:       100,
		TxHash:       "tx-" + uuid.NewString(),
		Blockchain:   "solana",
		DonorAddress: "donor1",
	})
	if err != nil {
		t.Fatalf("record donation: %v", err)
	}

	if math.Abs(d.AdminFee-0.5) > 1e-9 {
		t.Fatalf("expected fee 0.5, got %v", d.AdminFee)
	}

	updated, err := service.NewCampaignService(db).Get(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if math.Abs(updated.CurrentAmount-99.5) > 1e-9 {
		t.Fatalf("expected current amount 99.5, got %v", updated.CurrentAmount)
	}
	if updated.DonationCount != 1 {
		t.Fatalf("expected 1 donation, got %d", updated.DonationCount)
	}
}

func TestDonationService_DuplicateTxHash(t *testing.T) {
	db := testDB(t)

	user := createTestUser(t, db)
	campaign := createTestCampaign(t, db, user.ID)

	svc := service.NewDonationService(db, 0.5, nil)
	txHash := "tx-" + uuid.NewString()

	in := service.RecordDonationInput{
		CampaignID: campaign.ID,
		Amount:     50,
		TxHash:     txHash,
		Blockchain: "solana",
	}
	if _, err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("record donation: %v", err)
	}

	if _, err := svc.Record(context.Background(), in); err != service.ErrDuplicateTransaction {
		t.Fatalf("expected ErrDuplicateTransaction, got %v", err)
	}

	// replay must not double-credit
	updated, err := service.NewCampaignService(db).Get(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("get campaign: %v", err)
	}
	if math.Abs(updated.CurrentAmount-49.75) > 1e-9 {
		t.Fatalf("expected current amount 49.75, got %v", updated.CurrentAmount)
	}
}

func TestDonationService_UnknownCampaign(t *testing.T) {
	db := testDB(t)

	svc := service.NewDonationService(db, 0.5, nil)
	_, err := svc.Record(context.Background(), service.RecordDonationInput{
		CampaignID: uuid.NewString(),
		Amount:     10,
		TxHash:     "tx-" + uuid.NewString(),
		Blockchain: "solana",
	})
	if err != service.ErrCampaignNotFound {
		t.Fatalf("expected ErrCampaignNotFound, got %v", err)
	}
}

func TestWalletService_SyncBalanceLedgerDown(t *testing.T) {
	db := testDB(t)

	user := createTestUser(t, db)
	campaign := createTestCampaign(t, db, user.ID)

	// unreachable RPC endpoint: balance degrades to zero, no error
	ledger := solana.NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	svc := service.NewWalletService(db, ledger)

	balance, err := svc.SyncBalance(context.Background(), campaign.ID)
	if err != nil {
		t.Fatalf("sync balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %v", balance)
	}
}

func TestWalletService_SyncBalanceUnknownCampaign(t *testing.T) {
	db := testDB(t)

	ledger := solana.NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	svc := service.NewWalletService(db, ledger)

	if _, err := svc.SyncBalance(context.Background(), uuid.NewString()); err != service.ErrWalletNotFound {
		t.Fatalf("expected ErrWalletNotFound, got %v", err)
	}
}
