package service

import (
	"context"
	"errors"
	"testing"

	"app/internal/cache"
	"app/internal/model"

	"github.com/rs/zerolog"
)

func newContentService(gw *fakeGateway) (ContentService, *cache.ContentCache) {
	c := cache.New(gw.GetChapters)
	return NewContentService(gw, c, nil, "content-events", zerolog.Nop()), c
}

func threeChapters() []model.Chapter {
	return []model.Chapter{
		{ID: 1, Title: "Basics", Position: 1},
		{ID: 2, Title: "Middle", Position: 2},
		{ID: 3, Title: "Advanced", Position: 3},
	}
}

func TestReorderChaptersSubmitsFullPositionMap(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters()}
	svc, _ := newContentService(gw)

	destination := 0
	positions, err := svc.ReorderChapters(context.Background(), 10, 3, 2, &destination)
	if err != nil {
		t.Fatalf("ReorderChapters returned error: %v", err)
	}
	want := map[int64]int{3: 1, 1: 2, 2: 3}
	if len(positions) != len(want) {
		t.Fatalf("position map %v, want %v", positions, want)
	}
	for id, pos := range want {
		if positions[id] != pos {
			t.Errorf("position[%d] = %d, want %d", id, positions[id], pos)
		}
	}
	if gw.callCount("ReorderChapters") != 1 {
		t.Errorf("ReorderChapters called %d times", gw.callCount("ReorderChapters"))
	}
}

func TestReorderChaptersNilDestinationIsNoOp(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters()}
	svc, c := newContentService(gw)

	if _, err := c.Get(context.Background(), 10); err != nil {
		t.Fatalf("priming cache: %v", err)
	}

	positions, err := svc.ReorderChapters(context.Background(), 10, 3, 2, nil)
	if err != nil {
		t.Fatalf("cancelled drag returned error: %v", err)
	}
	if positions != nil {
		t.Errorf("cancelled drag produced positions %v", positions)
	}
	if gw.callCount("ReorderChapters") != 0 {
		t.Error("cancelled drag reached the upstream API")
	}
	// The cached tree must survive a cancelled drag.
	if _, err := c.Get(context.Background(), 10); err != nil {
		t.Fatalf("re-reading cache: %v", err)
	}
	if gw.fetches != 1 {
		t.Errorf("cache refetched after cancelled drag: %d fetches", gw.fetches)
	}
}

func TestReorderChaptersRejectsStaleIndex(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters()}
	svc, _ := newContentService(gw)

	destination := 0
	// Chapter 3 is at index 2, not index 0.
	if _, err := svc.ReorderChapters(context.Background(), 10, 3, 0, &destination); err == nil {
		t.Fatal("expected stale reorder to be rejected")
	}
	if gw.callCount("ReorderChapters") != 0 {
		t.Error("stale reorder reached the upstream API")
	}
}

func TestReorderChaptersFailureInvalidatesCache(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters(), reorderErr: errors.New("conflict")}
	svc, c := newContentService(gw)

	destination := 0
	if _, err := svc.ReorderChapters(context.Background(), 10, 3, 2, &destination); err == nil {
		t.Fatal("expected reorder failure to propagate")
	}

	if _, err := c.Get(context.Background(), 10); err != nil {
		t.Fatalf("refetching after failure: %v", err)
	}
	if gw.fetches != 2 {
		t.Errorf("fetches = %d, want refetch after failed reorder", gw.fetches)
	}
}

func TestReorderLessonsComputesWithinChapter(t *testing.T) {
	gw := &fakeGateway{chapters: []model.Chapter{
		{ID: 1, Title: "Basics", Position: 1, Lessons: []model.Lesson{
			{ID: 11, Position: 1},
			{ID: 12, Position: 2},
		}},
	}}
	svc, _ := newContentService(gw)

	destination := 0
	positions, err := svc.ReorderLessons(context.Background(), 10, 1, 12, 1, &destination)
	if err != nil {
		t.Fatalf("ReorderLessons returned error: %v", err)
	}
	if positions[12] != 1 || positions[11] != 2 {
		t.Errorf("position map %v, want {12:1 11:2}", positions)
	}
}

func TestReorderLessonsUnknownChapter(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters()}
	svc, _ := newContentService(gw)

	destination := 0
	if _, err := svc.ReorderLessons(context.Background(), 10, 99, 11, 0, &destination); err == nil {
		t.Fatal("expected unknown chapter to be rejected")
	}
}

func TestCreateChapterInvalidatesCache(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters()}
	svc, c := newContentService(gw)

	if _, err := c.Get(context.Background(), 10); err != nil {
		t.Fatalf("priming cache: %v", err)
	}
	if _, err := svc.CreateChapter(context.Background(), 10, "New chapter", 4); err != nil {
		t.Fatalf("CreateChapter returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), 10); err != nil {
		t.Fatalf("re-reading cache: %v", err)
	}
	if gw.fetches != 2 {
		t.Errorf("fetches = %d, want refetch after create", gw.fetches)
	}
}
