package middleware

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Abdelrazek97/form-app/utils/view"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryStore is an in-process AttemptStore
type memoryStore struct {
	mu     sync.Mutex
	counts map[string]int64
	flags  map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{counts: map[string]int64{}, flags: map[string]time.Duration{}}
}

func (m *memoryStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.flags[key]
	return ok, nil
}

func (m *memoryStore) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flags[key], nil
}

func (m *memoryStore) Increment(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryStore) Expire(context.Context, string, time.Duration) error { return nil }

func (m *memoryStore) Set(_ context.Context, key string, _ interface{}, d time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flags[key] = d
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.counts, k)
		delete(m.flags, k)
	}
	return nil
}

func TestLockoutFor(t *testing.T) {
	assert.Equal(t, time.Duration(0), LockoutFor(4))
	assert.Equal(t, 2*time.Minute, LockoutFor(5))
	assert.Equal(t, time.Hour, LockoutFor(10))
	assert.Equal(t, 24*time.Hour, LockoutFor(25))
}

func TestBruteForceLocksAfterFiveFailures(t *testing.T) {
	store := newMemoryStore()
	bf := NewBruteForceProtection(store, view.NewPresenter(session.New(), zap.NewNop()), zap.NewNop())

	app := fiber.New()
	app.Post("/login", bf.CheckAndRecordAttempt(), func(c *fiber.Ctx) error {
		if c.FormValue("password") != "right-password" {
			bf.RecordFailedAttempt(c, "someone")
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		bf.RecordSuccessfulAttempt(c)
		return c.SendStatus(fiber.StatusOK)
	})

	post := func() int {
		req := httptest.NewRequest(fiber.MethodPost, "/login", nil)
		req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	for i := 0; i < 5; i++ {
		assert.Equal(t, fiber.StatusUnauthorized, post())
	}
	assert.Equal(t, fiber.StatusTooManyRequests, post())
}

func TestBruteForceDisabledWithoutStore(t *testing.T) {
	bf := NewBruteForceProtection(nil, nil, zap.NewNop())

	app := fiber.New()
	app.Post("/login", bf.CheckAndRecordAttempt(), func(c *fiber.Ctx) error {
		bf.RecordFailedAttempt(c, "someone")
		return c.SendStatus(fiber.StatusUnauthorized)
	})

	for i := 0; i < 30; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
}
