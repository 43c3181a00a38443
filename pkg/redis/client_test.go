package redis

import (
	"testing"

	"github.com/ekinderauto/storefront-backend/pkg/config"
)

func TestKeyBuilders(t *testing.T) {
	c := &Client{}

	if got := c.CartKey("abc"); got != "shop:cart:abc" {
		t.Fatalf("unexpected cart key: %s", got)
	}
	if got := c.CartKeyPattern(); got != "shop:cart:*" {
		t.Fatalf("unexpected cart pattern: %s", got)
	}
	if got := c.PopupSeenKey("abc"); got != "shop:popup_seen:abc" {
		t.Fatalf("unexpected popup key: %s", got)
	}
	if got := c.RateLimitKey("newsletter:1.2.3.4"); got != "shop:rate_limit:newsletter:1.2.3.4" {
		t.Fatalf("unexpected rate limit key: %s", got)
	}
	if got := c.LockKey("cron"); got != "shop:lock:cron" {
		t.Fatalf("unexpected lock key: %s", got)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Run("requires url or address", func(t *testing.T) {
		if _, err := optionsFromConfig(config.RedisConfig{}); err == nil {
			t.Fatal("expected error for empty config")
		}
	})

	t.Run("url wins over address", func(t *testing.T) {
		opts, err := optionsFromConfig(config.RedisConfig{
			URL:     "redis://:pw@redis.internal:6380/2",
			Address: "ignored:6379",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.Addr != "redis.internal:6380" {
			t.Fatalf("unexpected addr: %s", opts.Addr)
		}
		if opts.DB != 2 {
			t.Fatalf("unexpected db: %d", opts.DB)
		}
	})

	t.Run("address fallback with pool settings", func(t *testing.T) {
		opts, err := optionsFromConfig(config.RedisConfig{
			Address:  "localhost:6379",
			PoolSize: 7,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if opts.PoolSize != 7 {
			t.Fatalf("pool size not applied: %d", opts.PoolSize)
		}
	})
}
