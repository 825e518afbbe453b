package stats

import (
	"sync"
	"time"

	"github.com/mamadbah2/itstats/internal/domain/models"
)

// CohortCache holds the latest grouped cohorts. Writers replace the slice
// wholesale so readers never observe a partial update.
type CohortCache struct {
	cohorts  []models.YearCohort
	loadedAt time.Time
	loaded   bool
	mu       sync.RWMutex
}

// NewCohortCache creates an empty cache.
func NewCohortCache() *CohortCache {
	return &CohortCache{}
}

// Get returns the cached cohorts and whether a load has happened.
func (c *CohortCache) Get() ([]models.YearCohort, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cohorts, c.loaded
}

// Set stores a fresh cohort set.
func (c *CohortCache) Set(cohorts []models.YearCohort, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cohorts = cohorts
	c.loadedAt = at
	c.loaded = true
}

// LoadedAt reports when the cache was last filled.
func (c *CohortCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}
