package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Amity808/crypt-bappgift/providers/chain"
	"github.com/redis/go-redis/v9"
)

// SnapshotTTL bounds how stale a cached on-chain card snapshot may be.
const SnapshotTTL = 30 * time.Second

func snapshotKey(cardID string) string {
	return fmt.Sprintf("giftcard:snapshot:%s", cardID)
}

// StoreGiftCardSnapshot caches an on-chain card snapshot.
func (r *RedisService) StoreGiftCardSnapshot(ctx context.Context, card *chain.GiftCard) error {
	payload, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("could not marshal gift card %s: %w", card.CardID, err)
	}

	return r.client.Set(ctx, snapshotKey(card.CardID), payload, SnapshotTTL).Err()
}

// GetGiftCardSnapshot returns the cached snapshot, or (nil, nil) on a miss.
func (r *RedisService) GetGiftCardSnapshot(ctx context.Context, cardID string) (*chain.GiftCard, error) {
	payload, err := r.client.Get(ctx, snapshotKey(cardID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read gift card %s from Redis: %w", cardID, err)
	}

	var card chain.GiftCard
	if err := json.Unmarshal([]byte(payload), &card); err != nil {
		return nil, fmt.Errorf("could not unmarshal gift card %s: %w", cardID, err)
	}

	return &card, nil
}

// InvalidateGiftCardSnapshot drops the cached snapshot, e.g. after a claim.
func (r *RedisService) InvalidateGiftCardSnapshot(ctx context.Context, cardID string) error {
	return r.client.Del(ctx, snapshotKey(cardID)).Err()
}
