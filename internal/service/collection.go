package service

import "sync"

// Keyed is implemented by every listed record.
type Keyed interface {
	Key() int64
}

// Ticket identifies one fetch against a Collection.
type Ticket uint64

// Collection is the ordered local copy of a server list. Every write bumps
// the generation, so a fetch that began before the write commits nothing.
// Writes addressing a key that is not present are no-ops.
type Collection[T Keyed] struct {
	mu     sync.RWMutex
	items  []T
	gen    uint64
	loaded bool
}

// NewCollection returns an empty collection.
func NewCollection[T Keyed]() *Collection[T] {
	return &Collection[T]{}
}

// Begin starts a fetch and supersedes any fetch still in flight.
func (c *Collection[T]) Begin() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	return Ticket(c.gen)
}

// Commit stores items if t is still the latest ticket and reports whether it did.
func (c *Collection[T]) Commit(t Ticket, items []T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if uint64(t) != c.gen {
		return false
	}
	c.items = append(make([]T, 0, len(items)), items...)
	c.loaded = true
	return true
}

// Fail empties the collection after a failed fetch, if t is still the latest
// ticket, and leaves it unloaded so the next use fetches again.
func (c *Collection[T]) Fail(t Ticket) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if uint64(t) != c.gen {
		return false
	}
	c.items = nil
	c.loaded = false
	return true
}

// Loaded reports whether any fetch has committed since the last reset.
func (c *Collection[T]) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Items returns a copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Find returns the item with the given key.
func (c *Collection[T]) Find(id int64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Has reports whether an item with the given key is present.
func (c *Collection[T]) Has(id int64) bool {
	_, ok := c.Find(id)
	return ok
}

// Append adds item at the end, or replaces it in place if the key exists.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if i := c.indexOf(item.Key()); i >= 0 {
		c.items[i] = item
		return
	}
	c.items = append(c.items, item)
}

// Replace swaps the item sharing item's key.
func (c *Collection[T]) Replace(item T) bool {
	return c.Patch(item.Key(), func(T) T { return item })
}

// Patch rewrites the item with the given key.
func (c *Collection[T]) Patch(id int64, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.gen++
	c.items[i] = fn(c.items[i])
	return true
}

// Remove drops exactly the item with the given key.
func (c *Collection[T]) Remove(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.gen++
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return true
}

// Invalidate keeps the items but marks the collection as needing a fetch.
func (c *Collection[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

// Reset empties the collection and invalidates fetches in flight.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.items = nil
	c.loaded = false
}

func (c *Collection[T]) indexOf(id int64) int {
	for i := range c.items {
		if c.items[i].Key() == id {
			return i
		}
	}
	return -1
}
