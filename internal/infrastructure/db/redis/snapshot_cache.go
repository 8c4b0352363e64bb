package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// snapshotTTL bounds how stale a gate decision can be after an admin
// revokes or rejects an account.
const snapshotTTL = 30 * time.Second

// AccountSnapshotCache fronts an account reader with a short-lived Redis
// cache so the authorization gate does not hit Mongo on every request.
// Cache failures degrade to the underlying reader, never to a denial.
type AccountSnapshotCache struct {
	client *redis.Client
	source ports.AccountReader
	logger zerolog.Logger
}

func NewAccountSnapshotCache(client *redis.Client, source ports.AccountReader, logger zerolog.Logger) *AccountSnapshotCache {
	return &AccountSnapshotCache{
		client: client,
		source: source,
		logger: logger.With().Str("component", "account_snapshot_cache").Logger(),
	}
}

func (c *AccountSnapshotCache) FindSummaryByID(ctx context.Context, id string) (*domain.AccountSummary, error) {
	key := snapshotKey(id)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var summary domain.AccountSummary
		if jsonErr := json.Unmarshal([]byte(raw), &summary); jsonErr == nil {
			return &summary, nil
		}
		// Corrupt entry, fall through and repopulate.
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Str("account_id", id).Msg("snapshot cache read failed")
	}

	summary, err := c.source.FindSummaryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(summary); jsonErr == nil {
		if setErr := c.client.Set(ctx, key, payload, snapshotTTL).Err(); setErr != nil {
			c.logger.Warn().Err(setErr).Str("account_id", id).Msg("snapshot cache write failed")
		}
	}
	return summary, nil
}

// Invalidate drops the cached snapshot so an approval or rejection takes
// effect on the next request instead of after the TTL.
func (c *AccountSnapshotCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, snapshotKey(id)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("account_id", id).Msg("snapshot cache invalidate failed")
	}
}

func snapshotKey(id string) string {
	return fmt.Sprintf("account:snapshot:%s", id)
}
