package sync

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"smartstay/models"
)

const snapshotTTL = 10 * time.Minute

// SnapshotCache keeps the latest projection snapshots in Redis so a restarted
// gateway can serve reads before its first chain pass completes. A nil client
// disables it; every method degrades to a no-op.
type SnapshotCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewSnapshotCache(client *redis.Client, logger *zap.Logger) *SnapshotCache {
	return &SnapshotCache{client: client, logger: logger}
}

func (c *SnapshotCache) key(col Collection) string {
	return "snapshot:" + string(col)
}

// Put stores the snapshot for a collection. Failures are logged and ignored;
// the in-memory store already holds the data.
func (c *SnapshotCache) Put(ctx context.Context, col Collection, v interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Warn("snapshot marshal failed", zap.String("collection", string(col)), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, c.key(col), data, snapshotTTL).Err(); err != nil {
		c.logger.Warn("snapshot cache write failed", zap.String("collection", string(col)), zap.Error(err))
	}
}

// Get loads a cached snapshot into out. Returns false on miss, disabled
// cache, or decode failure.
func (c *SnapshotCache) Get(ctx context.Context, col Collection, out interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, c.key(col)).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.logger.Warn("snapshot decode failed", zap.String("collection", string(col)), zap.Error(err))
		return false
	}
	return true
}

// Warm restores cached snapshots into the store so reads work before the
// first chain pass completes. Chain sync overwrites these as soon as it runs.
func (c *SnapshotCache) Warm(ctx context.Context, store *Store) {
	if c == nil || c.client == nil {
		return
	}
	var properties []models.Property
	if c.Get(ctx, Properties, &properties) {
		store.ReplaceProperties(properties)
	}
	var slots []models.Slot
	if c.Get(ctx, Slots, &slots) {
		store.ReplaceSlots(slots)
	}
	var offers []models.Offer
	if c.Get(ctx, Offers, &offers) {
		store.ReplaceOffers(offers)
	}
	var proposals []models.Proposal
	if c.Get(ctx, Proposals, &proposals) {
		store.ReplaceProposals(proposals)
	}
}
