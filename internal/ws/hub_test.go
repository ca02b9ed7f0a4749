package ws

import (
	"testing"
	"time"

	"crowdfund_webapp/internal/domain"
)

func TestPublishWithoutClients(t *testing.T) {
	hub := NewHub()

	// must not panic or block with nobody listening
	hub.Publish(domain.Donation{
		CampaignID: "c1",
		Amount:     12.5,
		Blockchain: "solana",
		CreatedAt:  time.Now(),
	})

	if n := hub.ClientCount(); n != 0 {
		t.Fatalf("expected 0 clients, got %d", n)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	hub := NewHub()
	c := &Client{hub: hub, send: make(chan []byte, 1)}

	hub.add(c)
	if n := hub.ClientCount(); n != 1 {
		t.Fatalf("expected 1 client, got %d", n)
	}

	hub.remove(c)
	hub.remove(c)
	if n := hub.ClientCount(); n != 0 {
		t.Fatalf("expected 0 clients, got %d", n)
	}
}
