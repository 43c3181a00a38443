package engagement

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// ViewerFeed produces the detail page's "people are viewing this"
// counter: a bounded random walk updated on a fixed interval. Purely
// cosmetic, no real presence data behind it.
type ViewerFeed struct {
	min, max int

	mu      sync.RWMutex
	current int
	rng     *rand.Rand
}

func NewViewerFeed(min, max int, seed int64) *ViewerFeed {
	if max < min {
		min, max = max, min
	}
	rng := rand.New(rand.NewSource(seed))
	return &ViewerFeed{
		min:     min,
		max:     max,
		current: min + rng.Intn(max-min+1),
		rng:     rng,
	}
}

// Current returns the latest counter value.
func (f *ViewerFeed) Current() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Start steps the walk every interval until stop is called or ctx ends.
func (f *ViewerFeed) Start(ctx context.Context, interval time.Duration) (stop func()) {
	return StartTicker(ctx, interval, f.step)
}

func (f *ViewerFeed) step() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current += f.rng.Intn(3) - 1
	if f.current < f.min {
		f.current = f.min
	}
	if f.current > f.max {
		f.current = f.max
	}
}

// Countdown reports the time remaining until a fixed deadline, clamped
// at zero once the deadline passes.
type Countdown struct {
	deadline time.Time
	now      func() time.Time
}

func NewCountdown(deadline time.Time) *Countdown {
	return &Countdown{deadline: deadline, now: time.Now}
}

// Remaining never goes negative.
func (c *Countdown) Remaining() time.Duration {
	left := c.deadline.Sub(c.now())
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the deadline has passed.
func (c *Countdown) Expired() bool {
	return c.Remaining() == 0
}

// Feeds bundles the detail page's live widgets. Either side may be nil
// when the storefront runs without it.
type Feeds struct {
	viewers   *ViewerFeed
	countdown *Countdown
}

func NewFeeds(viewers *ViewerFeed, countdown *Countdown) *Feeds {
	return &Feeds{viewers: viewers, countdown: countdown}
}

// FeedSnapshot is the JSON shape the detail endpoint embeds.
type FeedSnapshot struct {
	Viewers      int   `json:"viewers,omitempty"`
	SaleActive   bool  `json:"saleActive"`
	SaleEndsInMS int64 `json:"saleEndsInMs,omitempty"`
}

// Snapshot reads the current widget values.
func (f *Feeds) Snapshot() FeedSnapshot {
	var snap FeedSnapshot
	if f == nil {
		return snap
	}
	if f.viewers != nil {
		snap.Viewers = f.viewers.Current()
	}
	if f.countdown != nil && !f.countdown.Expired() {
		snap.SaleActive = true
		snap.SaleEndsInMS = f.countdown.Remaining().Milliseconds()
	}
	return snap
}
