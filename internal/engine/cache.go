package engine

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ivlev/scene2video/internal/scene"
)

// Cache memoizes Compose by content key. Concurrent requests for the same
// project compose it once; plans are shared read-only afterwards.
type Cache struct {
	composer *Composer

	mu    sync.RWMutex
	plans map[string]*Plan
	group singleflight.Group
}

// NewCache creates an empty cache in front of composer.
func NewCache(composer *Composer) *Cache {
	return &Cache{
		composer: composer,
		plans:    make(map[string]*Plan),
	}
}

// Get returns the plan for p, composing it on first use.
func (c *Cache) Get(p scene.Project) (*Plan, error) {
	key, err := ContentKey(p)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	plan, ok := c.plans[key]
	c.mu.RUnlock()
	if ok {
		return plan, nil
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.plans[key]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		plan := c.composer.Compose(p)
		plan.Key = key

		c.mu.Lock()
		c.plans[key] = plan
		c.mu.Unlock()
		return plan, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Plan), nil
}

// Add stores a plan composed elsewhere, for example one loaded from disk.
// Plans without a key are ignored.
func (c *Cache) Add(plan *Plan) {
	if plan == nil || plan.Key == "" {
		return
	}
	c.mu.Lock()
	c.plans[plan.Key] = plan
	c.mu.Unlock()
}

// Len returns the number of cached plans.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}
