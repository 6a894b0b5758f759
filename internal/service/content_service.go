package service

import (
	"context"
	"fmt"

	"app/internal/cache"
	"app/internal/gateway"
	"app/internal/model"
	"app/internal/ordering"
	"app/internal/pubsub"

	"github.com/rs/zerolog"
)

// ContentService manages the chapter tree of a course: reads through the
// cache, mutations through the gateway with invalidate-on-completion.
type ContentService interface {
	GetCourseContent(ctx context.Context, courseID int64) ([]model.Chapter, error)

	CreateChapter(ctx context.Context, courseID int64, title string, position int) (*model.Chapter, error)
	UpdateChapter(ctx context.Context, courseID, chapterID int64, title string, position int) (*model.Chapter, error)
	DeleteChapter(ctx context.Context, courseID, chapterID int64) error

	// ReorderChapters applies a completed drag gesture. A nil destination
	// means the drag was cancelled: nothing is computed, nothing is sent.
	ReorderChapters(ctx context.Context, courseID, movedID int64, source int, destination *int) (ordering.PositionMap, error)
	ReorderLessons(ctx context.Context, courseID, chapterID, movedID int64, source int, destination *int) (ordering.PositionMap, error)
}

type contentService struct {
	gw        gateway.Client
	cache     *cache.ContentCache
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

// NewContentService creates a ContentService. publisher may be nil when event
// fan-out is disabled (local development without Pub/Sub).
func NewContentService(gw gateway.Client, c *cache.ContentCache, publisher pubsub.Publisher, topic string, logger zerolog.Logger) ContentService {
	return &contentService{
		gw:        gw,
		cache:     c,
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("service", "ContentService").Logger(),
	}
}

func (s *contentService) publishEvent(ctx context.Context, ev pubsub.ContentEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := pubsub.PublishContentEvent(ctx, s.publisher, s.topic, ev); err != nil {
		// Fan-out is best effort; the mutation already succeeded.
		s.logger.Warn().Err(err).Int64("course_id", ev.CourseID).Msg("Failed to publish content event")
	}
}

func (s *contentService) GetCourseContent(ctx context.Context, courseID int64) ([]model.Chapter, error) {
	return s.cache.Get(ctx, courseID)
}

func (s *contentService) CreateChapter(ctx context.Context, courseID int64, title string, position int) (*model.Chapter, error) {
	defer s.cache.Invalidate(courseID)
	chapter, err := s.gw.CreateChapter(ctx, courseID, title, position)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: courseID, EntityType: "chapter", EntityID: chapter.ID, Action: "created"})
	return chapter, nil
}

func (s *contentService) UpdateChapter(ctx context.Context, courseID, chapterID int64, title string, position int) (*model.Chapter, error) {
	defer s.cache.Invalidate(courseID)
	chapter, err := s.gw.UpdateChapter(ctx, courseID, chapterID, title, position)
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: courseID, EntityType: "chapter", EntityID: chapterID, Action: "updated"})
	return chapter, nil
}

func (s *contentService) DeleteChapter(ctx context.Context, courseID, chapterID int64) error {
	defer s.cache.Invalidate(courseID)
	// Deleting a chapter cascades to its lessons upstream.
	if err := s.gw.DeleteChapter(ctx, courseID, chapterID); err != nil {
		return err
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: courseID, EntityType: "chapter", EntityID: chapterID, Action: "deleted"})
	return nil
}

func (s *contentService) ReorderChapters(ctx context.Context, courseID, movedID int64, source int, destination *int) (ordering.PositionMap, error) {
	// Cancelled drop: checked before any state is touched.
	if destination == nil {
		return nil, nil
	}

	chapters, err := s.cache.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(chapters))
	for i, ch := range chapters {
		ids[i] = ch.ID
	}

	positions, err := s.submitReorder(ctx, courseID, ids, movedID, source, *destination, func(ctx context.Context, positions ordering.PositionMap) error {
		return s.gw.ReorderChapters(ctx, courseID, positions)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: courseID, EntityType: "chapter", Action: "reordered"})
	return positions, nil
}

func (s *contentService) ReorderLessons(ctx context.Context, courseID, chapterID, movedID int64, source int, destination *int) (ordering.PositionMap, error) {
	if destination == nil {
		return nil, nil
	}

	chapters, err := s.cache.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	var ids []int64
	found := false
	for _, ch := range chapters {
		if ch.ID == chapterID {
			found = true
			ids = make([]int64, len(ch.Lessons))
			for i, l := range ch.Lessons {
				ids[i] = l.ID
			}
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("chapter %d not found in course %d", chapterID, courseID)
	}

	positions, err := s.submitReorder(ctx, courseID, ids, movedID, source, *destination, func(ctx context.Context, positions ordering.PositionMap) error {
		return s.gw.ReorderLessons(ctx, courseID, chapterID, positions)
	})
	if err != nil {
		return nil, err
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: courseID, EntityType: "lesson", Action: "reordered"})
	return positions, nil
}

// submitReorder computes the full position map and submits it as one request.
// The cache is invalidated whether the submit succeeds or fails: on failure
// the authoritative order comes back with the next refetch instead of a
// client-side rollback.
func (s *contentService) submitReorder(ctx context.Context, courseID int64, ids []int64, movedID int64, source, destination int, submit func(context.Context, ordering.PositionMap) error) (ordering.PositionMap, error) {
	defer s.cache.Invalidate(courseID)

	if source < 0 || source >= len(ids) || ids[source] != movedID {
		return nil, fmt.Errorf("stale reorder: entity %d is not at index %d", movedID, source)
	}
	positions, err := ordering.Compute(ids, source, destination)
	if err != nil {
		return nil, err
	}
	if err := submit(ctx, positions); err != nil {
		return nil, err
	}
	return positions, nil
}
