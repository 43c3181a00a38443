package newsletter

import (
	"context"
	"time"

	"github.com/ekinderauto/storefront-backend/pkg/config"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

// SignupInput is the validated signup form.
type SignupInput struct {
	Email string `json:"email" validate:"required,email"`
}

// Submitter posts a signup to the outbound form backend.
type Submitter interface {
	Submit(ctx context.Context, email string) error
}

// RateLimiter is satisfied by the Redis client's fixed-window counter.
type RateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// Service guards the outbound signup with a per-IP rate limit.
type Service interface {
	Signup(ctx context.Context, clientIP string, input SignupInput) error
}

type service struct {
	client  Submitter
	limiter RateLimiter
	cfg     config.NewsletterConfig
	logg    *logger.Logger
}

func NewService(client Submitter, limiter RateLimiter, cfg config.NewsletterConfig, logg *logger.Logger) Service {
	return &service{client: client, limiter: limiter, cfg: cfg, logg: logg}
}

func (s *service) Signup(ctx context.Context, clientIP string, input SignupInput) error {
	if s.limiter != nil && clientIP != "" {
		allowed, count, err := s.limiter.FixedWindowAllow(ctx, "newsletter:"+clientIP, int64(s.cfg.RateIPLimit), s.cfg.RateWindow)
		if err != nil {
			// a broken limiter must not block signups
			s.logg.Error(ctx, "newsletter rate limiter unavailable", err)
		} else if !allowed {
			ctx = s.logg.WithField(ctx, "count", count)
			s.logg.Warn(ctx, "newsletter signup rate limited")
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many signup attempts, try again later")
		}
	}

	if err := s.client.Submit(ctx, input.Email); err != nil {
		return err
	}

	s.logg.Info(ctx, "newsletter signup submitted")
	return nil
}
