package ws

import (
	"encoding/json"
	"sync"
	"time"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/logger"
)

// Hub fans recorded donations out to connected feed subscribers. It is
// broadcast-only: clients never send application data upstream.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

// donationEvent is the wire shape of a feed message.
type donationEvent struct {
	Type       string    `json:"type"`
	CampaignID string    `json:"campaign_id"`
	Amount     float64   `json:"amount"`
	Blockchain string    `json:"blockchain"`
	CreatedAt  time.Time `json:"created_at"`
}

// Publish broadcasts a recorded donation to all subscribers. Slow clients
// are dropped rather than allowed to stall the broadcast.
func (h *Hub) Publish(d domain.Donation) {
	payload, err := json.Marshal(donationEvent{
		Type:       "donation",
		CampaignID: d.CampaignID,
		Amount:     d.Amount,
		Blockchain: d.Blockchain,
		CreatedAt:  d.CreatedAt,
	})
	if err != nil {
		logger.Error("failed to marshal donation event", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			go h.remove(c)
		}
	}
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
