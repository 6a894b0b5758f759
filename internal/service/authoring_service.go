package service

import (
	"context"
	"fmt"
	"io"

	"app/internal/authoring"
	"app/internal/cache"
	"app/internal/gateway"
	"app/internal/model"
	"app/internal/preview"
	"app/internal/pubsub"
	"app/internal/staging"

	"github.com/rs/zerolog"
)

// AuthoringService drives the lesson create/edit workflow: draft submission
// with staged attachments, direct uploads to existing lessons, and instructor
// preview.
type AuthoringService interface {
	// NewLessonDraft starts a draft for a new lesson in the given chapter,
	// with its position pre-computed from the chapter's current lesson count.
	NewLessonDraft(ctx context.Context, courseID, chapterID int64) (*authoring.Draft, error)
	SubmitLesson(ctx context.Context, d *authoring.Draft) (*model.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, chapterID, lessonID int64) error

	StageAttachment(ctx context.Context, field model.ContentType, filename string, size int64, r io.Reader) (*model.PendingAttachment, error)
	Attachment(id string) (*model.PendingAttachment, bool)
	DiscardAttachment(ctx context.Context, id string) error

	// AttachFile uploads a file straight to an existing lesson. The upstream
	// endpoint stores the file and rebinds the lesson's content reference in
	// one step, so only the resulting URL comes back.
	AttachFile(ctx context.Context, courseID, chapterID, lessonID int64, field model.ContentType, filename string, size int64, r io.Reader) (string, error)

	PreviewLesson(ctx context.Context, lessonID int64) (*preview.ViewDescriptor, error)
}

type authoringService struct {
	gw        gateway.Client
	staging   staging.Store
	cache     *cache.ContentCache
	publisher pubsub.Publisher
	topic     string
	logger    zerolog.Logger
}

func NewAuthoringService(gw gateway.Client, st staging.Store, c *cache.ContentCache, publisher pubsub.Publisher, topic string, logger zerolog.Logger) AuthoringService {
	return &authoringService{
		gw:        gw,
		staging:   st,
		cache:     c,
		publisher: publisher,
		topic:     topic,
		logger:    logger.With().Str("service", "AuthoringService").Logger(),
	}
}

func (s *authoringService) publishEvent(ctx context.Context, ev pubsub.ContentEvent) {
	if s.publisher == nil {
		return
	}
	if _, err := pubsub.PublishContentEvent(ctx, s.publisher, s.topic, ev); err != nil {
		s.logger.Warn().Err(err).Int64("course_id", ev.CourseID).Msg("Failed to publish content event")
	}
}

func (s *authoringService) NewLessonDraft(ctx context.Context, courseID, chapterID int64) (*authoring.Draft, error) {
	chapters, err := s.cache.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}
	for _, ch := range chapters {
		if ch.ID == chapterID {
			return authoring.NewDraft(courseID, chapterID, len(ch.Lessons)), nil
		}
	}
	return nil, fmt.Errorf("chapter %d not found in course %d", chapterID, courseID)
}

// SubmitLesson submits the draft. The course tree is invalidated on every
// outcome: a failed second phase still created the lesson upstream, so the
// cached tree is stale either way.
func (s *authoringService) SubmitLesson(ctx context.Context, d *authoring.Draft) (*model.Lesson, error) {
	defer s.cache.Invalidate(d.CourseID)

	isNew := d.LessonID == 0
	var open func(context.Context) (io.ReadCloser, error)
	if d.Attachment != nil {
		attachmentID := d.Attachment.ID
		open = func(ctx context.Context) (io.ReadCloser, error) {
			return s.staging.Open(ctx, attachmentID)
		}
	}

	lesson, err := authoring.Submit(ctx, s.gw, d, open)
	if err != nil {
		// The staged file is kept on failure so the user can retry without
		// re-selecting it.
		return lesson, err
	}

	if d.Attachment != nil {
		if discardErr := s.staging.Discard(ctx, d.Attachment.ID); discardErr != nil {
			s.logger.Warn().Err(discardErr).Str("attachment_id", d.Attachment.ID).Msg("Failed to discard consumed attachment")
		}
	}

	action := "updated"
	if isNew {
		action = "created"
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: d.CourseID, EntityType: "lesson", EntityID: lesson.ID, Action: action})
	return lesson, nil
}

func (s *authoringService) DeleteLesson(ctx context.Context, courseID, chapterID, lessonID int64) error {
	defer s.cache.Invalidate(courseID)
	if err := s.gw.DeleteLesson(ctx, courseID, chapterID, lessonID); err != nil {
		return err
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: courseID, EntityType: "lesson", EntityID: lessonID, Action: "deleted"})
	return nil
}

func (s *authoringService) StageAttachment(ctx context.Context, field model.ContentType, filename string, size int64, r io.Reader) (*model.PendingAttachment, error) {
	return s.staging.Stage(ctx, field, filename, size, r)
}

func (s *authoringService) Attachment(id string) (*model.PendingAttachment, bool) {
	return s.staging.Lookup(id)
}

func (s *authoringService) DiscardAttachment(ctx context.Context, id string) error {
	return s.staging.Discard(ctx, id)
}

func (s *authoringService) AttachFile(ctx context.Context, courseID, chapterID, lessonID int64, field model.ContentType, filename string, size int64, r io.Reader) (string, error) {
	if err := staging.CheckSize(field, size); err != nil {
		return "", err
	}

	defer s.cache.Invalidate(courseID)
	uploadedURL, err := s.gw.UploadFile(ctx, courseID, chapterID, lessonID, field, filename, r)
	if err != nil {
		return "", fmt.Errorf("uploading %s for lesson %d: %w", field, lessonID, err)
	}
	s.publishEvent(ctx, pubsub.ContentEvent{CourseID: courseID, EntityType: "lesson", EntityID: lessonID, Action: "updated"})
	return uploadedURL, nil
}

// PreviewLesson fetches the lesson and resolves how it should be displayed.
func (s *authoringService) PreviewLesson(ctx context.Context, lessonID int64) (*preview.ViewDescriptor, error) {
	lesson, err := s.gw.PreviewLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	descriptor := preview.Render(lesson)
	return &descriptor, nil
}
