package engagement

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ekinderauto/storefront-backend/pkg/config"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/redis"
)

// FlagStore persists the one-shot "popup already shown" marker per
// session.
type FlagStore interface {
	Seen(ctx context.Context, sessionID string) (bool, error)
	MarkSeen(ctx context.Context, sessionID string) error
}

// PopupState tells the page whether to schedule the promo popup and how
// long to wait before first display. The API layer converts Delay to
// milliseconds when serializing.
type PopupState struct {
	Show  bool
	Delay time.Duration
}

// PopupService decides popup visibility from the stored flag.
type PopupService struct {
	flags FlagStore
	cfg   config.PromoConfig
}

func NewPopupService(flags FlagStore, cfg config.PromoConfig) *PopupService {
	return &PopupService{flags: flags, cfg: cfg}
}

// State is consulted once at page load.
func (s *PopupService) State(ctx context.Context, sessionID string) (PopupState, error) {
	seen, err := s.flags.Seen(ctx, sessionID)
	if err != nil {
		return PopupState{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading popup flag")
	}
	return PopupState{Show: !seen, Delay: s.cfg.PopupDelay}, nil
}

// Dismiss marks the popup as shown so it never reappears for the session.
func (s *PopupService) Dismiss(ctx context.Context, sessionID string) error {
	if err := s.flags.MarkSeen(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing popup flag")
	}
	return nil
}

// RedisFlagStore keeps the marker alongside the session's cart data.
type RedisFlagStore struct {
	client    *redis.Client
	retention time.Duration
}

func NewRedisFlagStore(client *redis.Client, retention time.Duration) *RedisFlagStore {
	return &RedisFlagStore{client: client, retention: retention}
}

func (r *RedisFlagStore) Seen(ctx context.Context, sessionID string) (bool, error) {
	_, err := r.client.Get(ctx, r.client.PopupSeenKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *RedisFlagStore) MarkSeen(ctx context.Context, sessionID string) error {
	return r.client.Set(ctx, r.client.PopupSeenKey(sessionID), "1", r.retention)
}

// MemoryFlagStore is the in-process fallback used by tests and redisless
// dev setups.
type MemoryFlagStore struct {
	mu   sync.RWMutex
	seen map[string]bool
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{seen: make(map[string]bool)}
}

func (m *MemoryFlagStore) Seen(ctx context.Context, sessionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.seen[sessionID], nil
}

func (m *MemoryFlagStore) MarkSeen(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen[sessionID] = true
	return nil
}
