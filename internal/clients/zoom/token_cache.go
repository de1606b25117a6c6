package zoom

import (
	"context"
	"fmt"
	"github.com/maxaizer/recruit-agent/internal/domain/models"
	"github.com/maxaizer/recruit-agent/internal/logger"
	"github.com/maxaizer/recruit-agent/internal/metrics"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

type credentialExchanger interface {
	ExchangeCredentials(ctx context.Context, creds Credentials) (string, time.Duration, error)
}

// TokenCache owns the bearer token for the meeting API. A token is reused while
// now < issuedAt + lifetime - margin and refreshed on demand afterwards. The
// mutex is held across the exchange so at most one exchange is in flight.
type TokenCache struct {
	exchanger credentialExchanger
	creds     Credentials
	margin    time.Duration
	now       func() time.Time

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewTokenCache(exchanger credentialExchanger, creds Credentials, margin time.Duration) *TokenCache {
	return &TokenCache{
		exchanger: exchanger,
		creds:     creds,
		margin:    margin,
		now:       time.Now,
	}
}

func (c *TokenCache) SetClock(now func() time.Time) {
	c.now = now
}

// Token returns a valid bearer token, exchanging credentials only when the
// cached one is missing or inside the safety margin. A failed exchange leaves
// the cache untouched.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.validLocked() {
		return c.token, nil
	}

	issuedAt := c.now()
	token, lifetime, err := c.exchanger.ExchangeCredentials(ctx, c.creds)
	if err != nil {
		metrics.TokenExchangesCounter.WithLabelValues("failed").Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeMeetingApi).
			Errorf("failed to exchange meeting provider credentials: %v", err)
		return "", fmt.Errorf("%w: %v", models.ErrCredentialFetchFailed, err)
	}

	metrics.TokenExchangesCounter.WithLabelValues("ok").Inc()
	c.token = token
	c.expiresAt = issuedAt.Add(lifetime)
	log.Debugf("meeting provider token refreshed, valid until %v", c.expiresAt.Add(-c.margin))

	return c.token, nil
}

// Valid reports whether the next Token call would be served from cache.
func (c *TokenCache) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validLocked()
}

func (c *TokenCache) validLocked() bool {
	return c.token != "" && c.now().Before(c.expiresAt.Add(-c.margin))
}
