// Package staging holds files selected before their owning lesson exists.
// A staged attachment lives in object storage between the stage request and
// the lesson submit, and is consumed exactly once or discarded on cancel.
package staging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"app/internal/model"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Size ceilings enforced before any storage write. The slide limit is
// documented to users as 100 MB but was never enforced in the original
// validation path; that behavior is preserved (see DESIGN.md).
const (
	MaxVideoSize    = 500 << 20
	MaxDocumentSize = 50 << 20
	MaxSlideSize    = 100 << 20
)

// ErrFileTooLarge is returned when a staged file exceeds its ceiling. No
// network or storage call is made in that case.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// ErrNotFound is returned for attachment ids that were never staged or were
// already consumed/discarded.
var ErrNotFound = errors.New("attachment not found")

// CheckSize validates size against the ceiling for the given content field.
func CheckSize(field model.ContentType, size int64) error {
	switch field {
	case model.ContentTypeVideo:
		if size > MaxVideoSize {
			return fmt.Errorf("%w: video files must not exceed 500MB", ErrFileTooLarge)
		}
	case model.ContentTypeDocument:
		if size > MaxDocumentSize {
			return fmt.Errorf("%w: document files must not exceed 50MB", ErrFileTooLarge)
		}
	case model.ContentTypeSlide:
		// Documented 100MB ceiling intentionally unenforced.
	case model.ContentTypeText:
		return fmt.Errorf("content type %s does not take a file", field)
	default:
		return fmt.Errorf("unknown content field %q", field)
	}
	return nil
}

// Store stages, serves and discards pending attachments.
type Store interface {
	Stage(ctx context.Context, field model.ContentType, filename string, size int64, r io.Reader) (*model.PendingAttachment, error)
	Lookup(id string) (*model.PendingAttachment, bool)
	Open(ctx context.Context, id string) (io.ReadCloser, error)
	Discard(ctx context.Context, id string) error
}

type s3Store struct {
	client *s3.Client
	bucket string
	logger zerolog.Logger

	mu      sync.Mutex
	entries map[string]model.PendingAttachment
}

// NewS3Store creates a Store writing staged files under attachments/ in the
// given bucket. Attachment metadata is held in memory; staged files do not
// outlive the service by design.
func NewS3Store(client *s3.Client, bucket string, logger zerolog.Logger) Store {
	return &s3Store{
		client:  client,
		bucket:  bucket,
		logger:  logger.With().Str("service", "StagingStore").Logger(),
		entries: make(map[string]model.PendingAttachment),
	}
}

func objectKey(id, filename string) string {
	return fmt.Sprintf("attachments/%s/%s", id, filename)
}

func (s *s3Store) Stage(ctx context.Context, field model.ContentType, filename string, size int64, r io.Reader) (*model.PendingAttachment, error) {
	if err := CheckSize(field, size); err != nil {
		return nil, err
	}

	attachment := model.PendingAttachment{
		ID:       uuid.NewString(),
		Field:    field,
		Filename: filename,
		Size:     size,
	}
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey(attachment.ID, filename)),
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("Failed to stage attachment")
		return nil, fmt.Errorf("staging attachment: %w", err)
	}

	s.mu.Lock()
	s.entries[attachment.ID] = attachment
	s.mu.Unlock()

	s.logger.Info().
		Str("attachment_id", attachment.ID).
		Str("field", string(field)).
		Int64("size", size).
		Msg("Attachment staged")
	return &attachment, nil
}

func (s *s3Store) Lookup(id string) (*model.PendingAttachment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	attachment, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	return &attachment, true
}

func (s *s3Store) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	attachment, ok := s.Lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(attachment.ID, attachment.Filename)),
	})
	if err != nil {
		return nil, fmt.Errorf("opening staged attachment %s: %w", id, err)
	}
	return out.Body, nil
}

func (s *s3Store) Discard(ctx context.Context, id string) error {
	attachment, ok := s.Lookup(id)
	if !ok {
		return ErrNotFound
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(attachment.ID, attachment.Filename)),
	})
	if err != nil {
		// The metadata entry is removed regardless; a leaked object is
		// preferable to an attachment that can never be discarded.
		s.logger.Error().Err(err).Str("attachment_id", id).Msg("Failed to delete staged object")
	}
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}
