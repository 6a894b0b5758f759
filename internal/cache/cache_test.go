package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"app/internal/model"
)

func TestGetMemoizesPerCourse(t *testing.T) {
	var calls int32
	c := New(func(ctx context.Context, courseID int64) ([]model.Chapter, error) {
		atomic.AddInt32(&calls, 1)
		return []model.Chapter{{ID: courseID, Title: "Intro", Position: 1}}, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		tree, err := c.Get(ctx, 42)
		if err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
		if len(tree) != 1 || tree[0].ID != 42 {
			t.Fatalf("unexpected tree: %+v", tree)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 fetch, got %d", n)
	}

	// A different course fetches independently.
	if _, err := c.Get(ctx, 7); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 fetches after second course, got %d", n)
	}
}

func TestConcurrentGetsShareOneFetch(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	c := New(func(ctx context.Context, courseID int64) ([]model.Chapter, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return []model.Chapter{{ID: 1, Position: 1}}, nil
	})

	const readers = 8
	var started, done sync.WaitGroup
	started.Add(readers)
	done.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			started.Done()
			defer done.Done()
			if _, err := c.Get(context.Background(), 42); err != nil {
				t.Errorf("Get returned error: %v", err)
			}
		}()
	}
	started.Wait()
	close(release)
	done.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly 1 fetch for concurrent gets, got %d", n)
	}
}

func TestInvalidateForcesRefetch(t *testing.T) {
	var calls int32
	order := [][]model.Chapter{
		{{ID: 1, Title: "A", Position: 1}, {ID: 2, Title: "B", Position: 2}},
		{{ID: 2, Title: "B", Position: 1}, {ID: 1, Title: "A", Position: 2}},
	}
	c := New(func(ctx context.Context, courseID int64) ([]model.Chapter, error) {
		n := atomic.AddInt32(&calls, 1)
		return order[n-1], nil
	})

	ctx := context.Background()
	tree, err := c.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if tree[0].Title != "A" {
		t.Fatalf("expected A first, got %q", tree[0].Title)
	}

	// Reorder happened upstream; after invalidation the refetch must show the
	// authoritative order.
	c.Invalidate(42)
	tree, err = c.Get(ctx, 42)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if tree[0].Title != "B" {
		t.Fatalf("expected B first after invalidation, got %q", tree[0].Title)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 fetches, got %d", n)
	}
}

func TestFailedFetchIsNotMemoized(t *testing.T) {
	var calls int32
	c := New(func(ctx context.Context, courseID int64) ([]model.Chapter, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			return nil, errors.New("upstream unavailable")
		}
		return []model.Chapter{{ID: 1, Position: 1}}, nil
	})

	ctx := context.Background()
	if _, err := c.Get(ctx, 42); err == nil {
		t.Fatal("expected error from first fetch")
	}
	if _, err := c.Get(ctx, 42); err != nil {
		t.Fatalf("expected second fetch to succeed, got %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected 2 fetches, got %d", n)
	}
}
