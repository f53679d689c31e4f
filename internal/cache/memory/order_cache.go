package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/grocery/internal/domain"
	"github.com/Gunvolt24/grocery/internal/ports"
	"github.com/Gunvolt24/grocery/pkg/metrics"
)

var _ ports.OrderCache = (*LRUCacheTTL)(nil)

type entry struct {
	id        int
	order     *domain.Order
	expiresAt time.Time
}

// LRUCacheTTL — LRU-кэш заказов с необязательным TTL (ttl <= 0 — без истечения).
type LRUCacheTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	cache map[int]*list.Element

	mu sync.Mutex
}

func NewLRUCacheTTL(capacity int, ttl time.Duration) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		cache:    make(map[int]*list.Element),
	}
}

func (c *LRUCacheTTL) Get(_ context.Context, id int) (*domain.Order, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[id]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		c.drop(elem, "expired")
		return nil, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.order.Clone(), true
}

func (c *LRUCacheTTL) Set(_ context.Context, order *domain.Order) error {
	if order == nil {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[order.ID()]; ok {
		ent := elem.Value.(*entry)
		ent.order = order.Clone()
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        order.ID(),
		order:     order.Clone(),
		expiresAt: c.expiryFrom(now),
	})
	c.cache[order.ID()] = elem
	metrics.CacheSize.Set(float64(c.ll.Len()))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

func (c *LRUCacheTTL) WarmUp(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.Set(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

// Purge — очищает кэш целиком (после перечитывания фикстуры).
func (c *LRUCacheTTL) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.cache = make(map[int]*list.Element)
	metrics.CacheOps.WithLabelValues("purged").Inc()
	metrics.CacheSize.Set(0)
}

// Len — текущее число записей (включая ещё не вычищенные просроченные).
func (c *LRUCacheTTL) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
