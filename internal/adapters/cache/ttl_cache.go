package cache

import (
	"container/list"
	"sync"
	"time"
)

// Clock abstracts time for expiry decisions.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock reads the wall clock.
var SystemClock Clock = systemClock{}

type ttlEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// TTLCache is a size-bounded, least-recently-used cache whose entries expire
// after a fixed TTL. Safe for concurrent use.
type TTLCache[V any] struct {
	mu      sync.Mutex
	clock   Clock
	ttl     time.Duration
	maxSize int
	order   *list.List
	items   map[string]*list.Element
}

func NewTTLCache[V any](maxSize int, ttl time.Duration, clock Clock) *TTLCache[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	if clock == nil {
		clock = SystemClock
	}
	return &TTLCache[V]{
		clock:   clock,
		ttl:     ttl,
		maxSize: maxSize,
		order:   list.New(),
		items:   make(map[string]*list.Element, maxSize),
	}
}

// Get returns the live value for key. Expired entries are evicted on access.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := el.Value.(*ttlEntry[V])
	if !c.clock.Now().Before(e.expiresAt) {
		c.removeElement(el)
		return zero, false
	}

	c.order.MoveToFront(el)
	return e.value, true
}

// Set stores value under key, evicting the least recently used entry when full.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*ttlEntry[V])
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(el)
		return
	}

	for c.order.Len() >= c.maxSize {
		c.removeElement(c.order.Back())
	}

	c.items[key] = c.order.PushFront(&ttlEntry[V]{key: key, value: value, expiresAt: expiresAt})
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *TTLCache[V]) removeElement(el *list.Element) {
	c.order.Remove(el)
	delete(c.items, el.Value.(*ttlEntry[V]).key)
}
