package inmemory

import (
	"sync"
	"time"

	paymentdomain "chama-ledger-go/internal/domain/payment"
)

// InMemoryOptionsCache holds the entry-options projection (active members,
// unlocked months) for a short TTL so the entry screen does not hit the
// database on every render.
type InMemoryOptionsCache struct {
	mu        sync.RWMutex
	value     *paymentdomain.EntryOptions
	expiresAt time.Time
}

func NewInMemoryOptionsCache() *InMemoryOptionsCache {
	return &InMemoryOptionsCache{}
}

func (c *InMemoryOptionsCache) Get() (*paymentdomain.EntryOptions, bool) {
	now := time.Now()

	c.mu.RLock()
	value, expiresAt := c.value, c.expiresAt
	c.mu.RUnlock()

	if value == nil || !expiresAt.After(now) {
		return nil, false
	}
	return cloneOptions(value), true
}

func (c *InMemoryOptionsCache) Set(options *paymentdomain.EntryOptions, ttl time.Duration) {
	if ttl <= 0 {
		c.Invalidate()
		return
	}

	c.mu.Lock()
	c.value = cloneOptions(options)
	c.expiresAt = time.Now().Add(ttl)
	c.mu.Unlock()
}

func (c *InMemoryOptionsCache) Invalidate() {
	c.mu.Lock()
	c.value = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

func cloneOptions(options *paymentdomain.EntryOptions) *paymentdomain.EntryOptions {
	if options == nil {
		return nil
	}
	clone := paymentdomain.EntryOptions{}
	if options.Members != nil {
		clone.Members = append(clone.Members, options.Members...)
	}
	if options.Months != nil {
		clone.Months = append(clone.Months, options.Months...)
	}
	return &clone
}
