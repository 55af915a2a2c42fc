package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"canteen-orders/internal/domain"
)

// DefaultCartTTL matches how long an untouched cart survives on a device.
const DefaultCartTTL = 30 * 24 * time.Hour

// RedisPersistence stores each buyer's cart as one JSON blob under
// cart:<buyerID>, refreshed on every write.
type RedisPersistence struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPersistence(client *redis.Client, ttl time.Duration) *RedisPersistence {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	return &RedisPersistence{Client: client, TTL: ttl}
}

func (p *RedisPersistence) key(buyerID string) string {
	return "cart:" + buyerID
}

func (p *RedisPersistence) Load(ctx context.Context, buyerID string) ([]domain.CartLine, error) {
	data, err := p.Client.Get(ctx, p.key(buyerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (p *RedisPersistence) Save(ctx context.Context, buyerID string, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return p.Client.Set(ctx, p.key(buyerID), data, p.TTL).Err()
}

func (p *RedisPersistence) Delete(ctx context.Context, buyerID string) error {
	return p.Client.Del(ctx, p.key(buyerID)).Err()
}

var _ Persistence = (*RedisPersistence)(nil)
