package fakevalues

import (
	"sort"
	"sync"
)

// PoolKey identifies one pool: a key string and the language its values
// were generated in.
type PoolKey struct {
	Key      string
	Language string
}

// groupKey joins the fields with a byte neither a key nor a language
// name contains, so distinct pools never share a refill.
func (k PoolKey) groupKey() string {
	return k.Key + "\x00" + k.Language
}

func (k PoolKey) String() string {
	if k.Language == "" {
		return k.Key
	}
	return k.Key + "@" + k.Language
}

// Cache holds the unused candidates of every pool. A pool that was never
// filled, or has been drawn empty, is absent.
type Cache struct {
	mu     sync.Mutex
	pools  map[PoolKey][]string
	picker Picker
}

// NewCache returns an empty Cache drawing with picker. A nil picker uses a
// clock-seeded one.
func NewCache(picker Picker) *Cache {
	if picker == nil {
		picker = NewPicker(0)
	}
	return &Cache{
		pools:  make(map[PoolKey][]string),
		picker: picker,
	}
}

// Draw removes one candidate chosen uniformly at random and returns it.
// It reports false when the pool is absent. Emptying a pool deletes it.
func (c *Cache) Draw(key PoolKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pool := c.pools[key]
	if len(pool) == 0 {
		return "", false
	}
	i := c.picker.Intn(len(pool))
	v := pool[i]
	last := len(pool) - 1
	pool[i] = pool[last]
	pool = pool[:last]
	if len(pool) == 0 {
		delete(c.pools, key)
	} else {
		c.pools[key] = pool
	}
	return v, true
}

// Fill appends values to the pool. Duplicates are kept: each is served
// once. Filling with no values leaves the pool unchanged.
func (c *Cache) Fill(key PoolKey, values []string) {
	if len(values) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pools[key] = append(c.pools[key], values...)
}

// Len returns the number of unused candidates in the pool.
func (c *Cache) Len(key PoolKey) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pools[key])
}

// Keys lists the non-empty pools sorted by key then language.
func (c *Cache) Keys() []PoolKey {
	c.mu.Lock()
	keys := make([]PoolKey, 0, len(c.pools))
	for k := range c.pools {
		keys = append(keys, k)
	}
	c.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Key != keys[j].Key {
			return keys[i].Key < keys[j].Key
		}
		return keys[i].Language < keys[j].Language
	})
	return keys
}

// Reset drops the pool for key so the next draw refetches.
func (c *Cache) Reset(key PoolKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pools, key)
}
