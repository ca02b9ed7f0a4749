package solana

import (
	"context"
	"testing"
	"time"

	solanago "github.com/gagliardetto/solana-go"
)

func TestGenerateKeypair(t *testing.T) {
	kp := GenerateKeypair()

	if kp.PublicKey == "" || kp.SecretKey == "" {
		t.Fatalf("empty key material: %+v", kp)
	}

	// public key must round-trip through base58
	if _, err := solanago.PublicKeyFromBase58(kp.PublicKey); err != nil {
		t.Fatalf("public key not valid base58: %v", err)
	}

	// secret key must decode and derive the same public key
	priv, err := solanago.PrivateKeyFromBase58(kp.SecretKey)
	if err != nil {
		t.Fatalf("secret key not valid base58: %v", err)
	}
	if priv.PublicKey().String() != kp.PublicKey {
		t.Fatal("secret key does not match public key")
	}
}

func TestGenerateKeypairDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		kp := GenerateKeypair()
		if seen[kp.PublicKey] {
			t.Fatalf("duplicate public key generated: %s", kp.PublicKey)
		}
		seen[kp.PublicKey] = true
	}
}

func TestGetBalanceInvalidKey(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", time.Second)

	if _, err := c.GetBalance(context.Background(), "not-a-public-key"); err == nil {
		t.Fatal("expected error for malformed public key")
	}
}

func TestGetBalanceUnreachableEndpoint(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	kp := GenerateKeypair()

	if _, err := c.GetBalance(context.Background(), kp.PublicKey); err == nil {
		t.Fatal("expected error for unreachable RPC endpoint")
	}
}
