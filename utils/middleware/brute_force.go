package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AttemptStore is the subset of the Redis cache used to count failures
type AttemptStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const attemptWindow = 15 * time.Minute

// BruteForceProtection applies progressive per-IP login lockouts. A nil
// store disables it.
type BruteForceProtection struct {
	store     AttemptStore
	presenter *view.Presenter
	log       *zap.Logger
}

// NewBruteForceProtection creates a new brute force protection instance
func NewBruteForceProtection(store AttemptStore, presenter *view.Presenter, log *zap.Logger) *BruteForceProtection {
	return &BruteForceProtection{
		store:     store,
		presenter: presenter,
		log:       log,
	}
}

func attemptKey(ip string) string { return fmt.Sprintf("brute_force:attempts:%s", ip) }
func lockKey(ip string) string    { return fmt.Sprintf("brute_force:lock:%s", ip) }

// LockoutFor returns how long an IP is locked after attempts failures
// inside the window
func LockoutFor(attempts int64) time.Duration {
	switch {
	case attempts >= 25:
		return 24 * time.Hour
	case attempts >= 10:
		return time.Hour
	case attempts >= 5:
		return 2 * time.Minute
	default:
		return 0
	}
}

// CheckAndRecordAttempt refuses login attempts from a locked IP
func (b *BruteForceProtection) CheckAndRecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if b.store == nil || c.Method() != fiber.MethodPost {
			return c.Next()
		}

		key := lockKey(c.IP())
		locked, err := b.store.Exists(c.Context(), key)
		if err != nil {
			// Redis trouble must not block legitimate users
			b.log.Warn("lockout check failed", zap.Error(err))
			return c.Next()
		}
		if !locked {
			return c.Next()
		}

		ttl, _ := b.store.TTL(c.Context(), key)
		retryAfter := int(ttl.Seconds())
		if retryAfter <= 0 {
			retryAfter = 60
		}

		c.Set(fiber.HeaderRetryAfter, fmt.Sprintf("%d", retryAfter))
		return b.presenter.Invalid(c, fiber.StatusTooManyRequests, "TOO_MANY_REQUESTS",
			fmt.Sprintf("Too many failed attempts. Try again in %d seconds", retryAfter),
			"login", fiber.Map{"Title": "Login"})
	}
}

// RecordFailedAttempt counts a failed login and applies a lockout when a
// threshold is crossed
func (b *BruteForceProtection) RecordFailedAttempt(c *fiber.Ctx, username string) {
	if b.store == nil {
		return
	}
	ctx := c.Context()
	ip := c.IP()

	attempts, err := b.store.Increment(ctx, attemptKey(ip))
	if err != nil {
		b.log.Warn("failed to record login attempt", zap.Error(err))
		return
	}
	if attempts == 1 {
		b.store.Expire(ctx, attemptKey(ip), attemptWindow)
	}

	lockDuration := LockoutFor(attempts)
	if lockDuration == 0 {
		return
	}
	b.log.Warn("locking out login source",
		zap.String("ip", ip),
		zap.String("username", username),
		zap.Int64("attempts", attempts),
		zap.Duration("duration", lockDuration),
	)
	if err := b.store.Set(ctx, lockKey(ip), "locked", lockDuration); err != nil {
		b.log.Warn("failed to set lockout", zap.Error(err))
	}
}

// RecordSuccessfulAttempt clears failed attempts on successful login
func (b *BruteForceProtection) RecordSuccessfulAttempt(c *fiber.Ctx) {
	if b.store == nil {
		return
	}
	ip := c.IP()
	b.store.Delete(c.Context(), attemptKey(ip), lockKey(ip))
}
