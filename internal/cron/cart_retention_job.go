package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ekinderauto/storefront-backend/pkg/logger"
	"github.com/ekinderauto/storefront-backend/pkg/redis"
	"go.uber.org/multierr"
)

// cartKeyStore is the slice of the Redis client the retention job needs.
type cartKeyStore interface {
	ScanKeys(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Del(ctx context.Context, keys ...string) error
}

// CartRetentionJobParams configure the cart keyspace sweep.
type CartRetentionJobParams struct {
	Logger  *logger.Logger
	Store   cartKeyStore
	Pattern string
}

// NewCartRetentionJob builds the job that keeps the cart keyspace tidy:
// empty carts are dropped, and carts persisted without an expiry (left
// behind by older writers) are dropped as well since every live cart
// write refreshes its retention TTL.
func NewCartRetentionJob(params CartRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("redis store required")
	}
	if params.Pattern == "" {
		return nil, fmt.Errorf("key pattern required")
	}
	return &cartRetentionJob{
		logg:    params.Logger,
		store:   params.Store,
		pattern: params.Pattern,
	}, nil
}

type cartRetentionJob struct {
	logg    *logger.Logger
	store   cartKeyStore
	pattern string
}

func (j *cartRetentionJob) Name() string { return "cart-retention" }

func (j *cartRetentionJob) Run(ctx context.Context) error {
	keys, err := j.store.ScanKeys(ctx, j.pattern)
	if err != nil {
		return fmt.Errorf("scanning cart keys: %w", err)
	}

	var (
		sweepErr     error
		removedEmpty int
		removedStale int
	)
	for _, key := range keys {
		value, err := j.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			sweepErr = multierr.Append(sweepErr, fmt.Errorf("read %s: %w", key, err))
			continue
		}

		if isEmptyCart(value) {
			if err := j.store.Del(ctx, key); err != nil {
				sweepErr = multierr.Append(sweepErr, fmt.Errorf("delete %s: %w", key, err))
				continue
			}
			removedEmpty++
			continue
		}

		ttl, err := j.store.TTL(ctx, key)
		if err != nil {
			sweepErr = multierr.Append(sweepErr, fmt.Errorf("ttl %s: %w", key, err))
			continue
		}
		if ttl < 0 {
			if err := j.store.Del(ctx, key); err != nil {
				sweepErr = multierr.Append(sweepErr, fmt.Errorf("delete %s: %w", key, err))
				continue
			}
			removedStale++
		}
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"scanned":       len(keys),
		"removed_empty": removedEmpty,
		"removed_stale": removedStale,
	})
	j.logg.Info(logCtx, "cart retention sweep complete")
	return sweepErr
}

// isEmptyCart reports whether the stored value decodes to a cart with no
// lines. Undecodable values are left alone for manual inspection.
func isEmptyCart(value string) bool {
	if value == "" {
		return true
	}
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return false
	}
	return len(items) == 0
}
