package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/chatbot-service/internal/domain"
)

const ticketKeyPrefix = "ticket:"

// TicketCache keeps recent tickets in redis so lookups survive across
// instances of the service. Entries expire; the cache is an aside, not a
// durability layer.
type TicketCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTicketCache builds the cache. A non-positive ttl defaults to 24h.
func NewTicketCache(client *redis.Client, ttl time.Duration) *TicketCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TicketCache{client: client, ttl: ttl}
}

// Put stores the ticket as JSON under its id.
func (c *TicketCache) Put(ctx context.Context, ticket *domain.Ticket) error {
	payload, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("marshal ticket %s: %w", ticket.ID, err)
	}
	return c.client.Set(ctx, ticketKeyPrefix+ticket.ID, payload, c.ttl).Err()
}

// Get fetches a ticket by id. Returns redis.Nil wrapped when absent.
func (c *TicketCache) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	payload, err := c.client.Get(ctx, ticketKeyPrefix+id).Bytes()
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", id, err)
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(payload, &ticket); err != nil {
		return nil, fmt.Errorf("unmarshal ticket %s: %w", id, err)
	}
	return &ticket, nil
}
