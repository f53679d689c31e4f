package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/grocery/pkg/metrics"
)

// evictLRU — вытесняет запись из хвоста списка.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.drop(back, "evicted")
	}
}

// drop — удаляет элемент и учитывает операцию в метриках.
func (c *LRUCacheTTL) drop(elem *list.Element, op string) {
	c.removeElement(elem)
	metrics.CacheOps.WithLabelValues(op).Inc()
	metrics.CacheSize.Set(float64(c.ll.Len()))
}

// removeElement — удаляет элемент из списка и индекса.
func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.cache, ent.id)
	}
	c.ll.Remove(elem)
}

func (c *LRUCacheTTL) isExpired(ent *entry, now time.Time) bool {
	return c.ttl > 0 && now.After(ent.expiresAt)
}

// expiryFrom — момент истечения записи, созданной/обновлённой в now; нулевое время при ttl <= 0.
func (c *LRUCacheTTL) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — чистит просроченные записи с хвоста до первой актуальной.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		ent, ok := back.Value.(*entry)
		if ok && !now.After(ent.expiresAt) {
			return
		}
		c.drop(back, "expired")
	}
}
