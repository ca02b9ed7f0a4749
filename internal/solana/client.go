package solana

import (
	"context"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client wraps the Solana JSON-RPC client. Every request is bounded by the
// configured timeout so a stuck RPC node cannot block balance fan-out.
type Client struct {
	rpc     *rpc.Client
	timeout time.Duration
}

// NewClient creates a Solana RPC client for the given endpoint.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		rpc:     rpc.New(endpoint),
		timeout: timeout,
	}
}

// Keypair is a freshly generated wallet keypair, both keys base58-encoded.
type Keypair struct {
	PublicKey string
	SecretKey string
}

// GenerateKeypair produces a new random ed25519 keypair.
func GenerateKeypair() Keypair {
	w := solanago.NewWallet()
	return Keypair{
		PublicKey: w.PublicKey().String(),
		SecretKey: w.PrivateKey.String(),
	}
}

// GetBalance returns the confirmed balance of publicKey in SOL.
func (c *Client) GetBalance(ctx context.Context, publicKey string) (float64, error) {
	pub, err := solanago.PublicKeyFromBase58(publicKey)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.rpc.GetBalance(ctx, pub, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, err
	}

	return float64(out.Value) / float64(solanago.LAMPORTS_PER_SOL), nil
}
