// Package geocode resolves free-text game locations into coordinates.
//
// The Resolver interface is the capability boundary: the enrichment pass
// depends on it rather than on a concrete HTTP client, so tests substitute a
// deterministic fake without network access. GoogleClient is the production
// implementation; Cache is the run-scoped memo that keeps the pipeline to at
// most one live lookup per distinct location string.
package geocode

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/ref-stats/internal/referee"
)

// Resolver turns a location string into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, location string) (referee.Coordinates, error)
}

// FailureError reports an upstream geocoding failure, carrying the
// provider's status and error message when available.
type FailureError struct {
	Location string
	Status   string
	Message  string
}

func (e *FailureError) Error() string {
	msg := fmt.Sprintf("geocoding failed for %q with status %s", e.Location, e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Cache memoizes location lookups for the span of one enrichment run. It is
// owned and passed by the orchestrator, never global, so tests can inject a
// pre-populated or empty cache. Single-threaded use; no locking.
type Cache struct {
	entries map[string]referee.Coordinates
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]referee.Coordinates)}
}

// Get returns the cached coordinates for a location, if present.
func (c *Cache) Get(location string) (referee.Coordinates, bool) {
	coords, ok := c.entries[location]
	return coords, ok
}

// Put stores resolved coordinates for a location.
func (c *Cache) Put(location string, coords referee.Coordinates) {
	c.entries[location] = coords
}

// Len returns the number of distinct locations cached.
func (c *Cache) Len() int {
	return len(c.entries)
}
