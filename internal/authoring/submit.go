package authoring

import (
	"context"
	"fmt"
	"io"
	"strings"

	"app/internal/model"
)

// LessonStore is the slice of the upstream API the submit workflow needs.
type LessonStore interface {
	CreateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error)
	UpdateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error)
	UploadFile(ctx context.Context, courseID, chapterID, lessonID int64, field model.ContentType, filename string, r io.Reader) (string, error)
}

// UploadError reports a submit whose first phase succeeded: the lesson exists
// upstream but its staged file could not be attached. Callers must surface it
// differently from a plain failure so the user retries only the upload.
type UploadError struct {
	Field model.ContentType
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("lesson created but %s upload failed: %v", strings.ToLower(string(e.Field)), e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Submit runs the draft's submit flow against store. For a draft with a staged
// attachment this is two-phase: the lesson is created (or updated) with an
// empty content reference, the staged bytes are uploaded, and the returned URL
// is patched back in. A failure after phase one returns the created lesson
// together with an *UploadError.
//
// openAttachment supplies the staged file's bytes; it is only called when the
// draft carries an attachment.
func Submit(ctx context.Context, store LessonStore, d *Draft, openAttachment func(context.Context) (io.ReadCloser, error)) (*model.Lesson, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	d.beginSubmit()

	var saved *model.Lesson
	var err error
	if d.LessonID == 0 {
		saved, err = store.CreateLesson(ctx, d.CourseID, d.Lesson())
	} else {
		saved, err = store.UpdateLesson(ctx, d.CourseID, d.Lesson())
	}
	if err != nil {
		d.fail()
		return nil, err
	}

	if d.Attachment == nil {
		d.succeed()
		return saved, nil
	}

	body, err := openAttachment(ctx)
	if err != nil {
		d.fail()
		return saved, &UploadError{Field: d.Attachment.Field, Err: err}
	}
	defer body.Close()

	uploadedURL, err := store.UploadFile(ctx, d.CourseID, d.ChapterID, saved.ID, d.Attachment.Field, d.Attachment.Filename, body)
	if err != nil {
		d.fail()
		return saved, &UploadError{Field: d.Attachment.Field, Err: err}
	}

	patched := *saved
	patched.ChapterID = d.ChapterID
	patched.Content = model.NewContent(d.Attachment.Field, uploadedURL)
	updated, err := store.UpdateLesson(ctx, d.CourseID, &patched)
	if err != nil {
		d.fail()
		return saved, &UploadError{Field: d.Attachment.Field, Err: err}
	}

	d.succeed()
	return updated, nil
}
