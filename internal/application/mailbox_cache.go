package application

import (
	"strings"
	"sync"
	"time"
)

// mailboxCache stores recently computed recipient feeds so the fixed-interval
// notification poll stays a cheap read while the log is unchanged. Every
// mailbox mutation invalidates the whole cache; correctness never depends on
// the TTL.
type mailboxCache struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	entries    map[string]mailboxCacheEntry
}

type mailboxCacheEntry struct {
	feed      []AppNotification
	expiresAt time.Time
}

func newMailboxCache(ttl time.Duration, maxEntries int, now func() time.Time) *mailboxCache {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 64
	}
	if now == nil {
		now = time.Now
	}
	return &mailboxCache{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[string]mailboxCacheEntry),
	}
}

func (c *mailboxCache) Get(key string) ([]AppNotification, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return cloneFeed(entry.feed), true
}

func (c *mailboxCache) Store(key string, feed []AppNotification) {
	if c == nil {
		return
	}
	cloned := cloneFeed(feed)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = mailboxCacheEntry{feed: cloned, expiresAt: expiry}
}

func (c *mailboxCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]mailboxCacheEntry)
	c.mu.Unlock()
}

func (c *mailboxCache) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *mailboxCache) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

func cloneFeed(feed []AppNotification) []AppNotification {
	if len(feed) == 0 {
		return nil
	}
	out := make([]AppNotification, len(feed))
	copy(out, feed)
	return out
}

func mailboxCacheKey(recipientID string, role Role) string {
	builder := strings.Builder{}
	builder.WriteString(recipientID)
	builder.WriteString("|")
	if role == RoleAdmin {
		builder.WriteString("admin")
	}
	return builder.String()
}
