// Package cache holds the per-course chapter/lesson tree between reads.
// Consistency after mutations comes from invalidation followed by refetch,
// never from merging server responses into the cached tree.
package cache

import (
	"context"
	"strconv"
	"sync"

	"app/internal/model"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the full chapter tree for a course from the upstream API.
type FetchFunc func(ctx context.Context, courseID int64) ([]model.Chapter, error)

// ContentCache memoizes chapter trees per course id. Concurrent Gets for the
// same course while a fetch is in flight share that fetch instead of issuing
// duplicates.
type ContentCache struct {
	fetch FetchFunc

	mu    sync.RWMutex
	trees map[int64][]model.Chapter
	group singleflight.Group
}

// New creates a ContentCache backed by fetch.
func New(fetch FetchFunc) *ContentCache {
	return &ContentCache{
		fetch: fetch,
		trees: make(map[int64][]model.Chapter),
	}
}

// Get returns the chapter tree for courseID, fetching it on first use or
// after invalidation. Only successful fetches are memoized.
func (c *ContentCache) Get(ctx context.Context, courseID int64) ([]model.Chapter, error) {
	c.mu.RLock()
	tree, ok := c.trees[courseID]
	c.mu.RUnlock()
	if ok {
		return tree, nil
	}

	v, err, _ := c.group.Do(strconv.FormatInt(courseID, 10), func() (interface{}, error) {
		tree, err := c.fetch(ctx, courseID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.trees[courseID] = tree
		c.mu.Unlock()
		return tree, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Chapter), nil
}

// Invalidate marks the course's tree stale so the next Get refetches. Called
// after every mutation, whether the mutation succeeded or failed.
func (c *ContentCache) Invalidate(courseID int64) {
	c.mu.Lock()
	delete(c.trees, courseID)
	c.mu.Unlock()
	c.group.Forget(strconv.FormatInt(courseID, 10))
}
