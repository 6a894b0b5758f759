package authoring

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"app/internal/model"
)

type fakeStore struct {
	calls []string

	createErr error
	uploadErr error
	updateErr error

	created  *model.Lesson
	updated  *model.Lesson
	uploaded struct {
		lessonID int64
		field    model.ContentType
		filename string
		body     string
	}
	nextID int64
}

func (f *fakeStore) CreateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	saved := *l
	f.nextID++
	saved.ID = f.nextID
	f.created = &saved
	return &saved, nil
}

func (f *fakeStore) UpdateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error) {
	f.calls = append(f.calls, "update")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	saved := *l
	f.updated = &saved
	return &saved, nil
}

func (f *fakeStore) UploadFile(ctx context.Context, courseID, chapterID, lessonID int64, field model.ContentType, filename string, r io.Reader) (string, error) {
	f.calls = append(f.calls, "upload")
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	body, _ := io.ReadAll(r)
	f.uploaded.lessonID = lessonID
	f.uploaded.field = field
	f.uploaded.filename = filename
	f.uploaded.body = string(body)
	return "https://cdn.example.com/videos/intro.mp4", nil
}

func openString(s string) func(context.Context) (io.ReadCloser, error) {
	return func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

func TestSubmitWithoutAttachmentCreatesOnce(t *testing.T) {
	store := &fakeStore{}
	d := NewDraft(10, 20, 2)
	d.Title = "Intro"
	d.VideoURL = "https://youtu.be/abc123DEF45"
	d.DurationInMinutes = 7

	lesson, err := Submit(context.Background(), store, d, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := strings.Join(store.calls, ","); got != "create" {
		t.Fatalf("calls = %q, want single create", got)
	}
	if lesson.Position != 3 {
		t.Errorf("position = %d, want 3", lesson.Position)
	}
	if d.State() != StateSucceeded {
		t.Errorf("state = %q, want %q", d.State(), StateSucceeded)
	}
}

func TestSubmitWithAttachmentRunsCreateUploadPatch(t *testing.T) {
	store := &fakeStore{}
	d := NewDraft(10, 20, 0)
	d.Title = "Deep dive"
	d.ActiveType = model.ContentTypeVideo
	d.DurationInMinutes = 30
	d.Attachment = &model.PendingAttachment{
		ID:       "att-1",
		Field:    model.ContentTypeVideo,
		Filename: "deep-dive.mp4",
		Size:     1024,
	}

	lesson, err := Submit(context.Background(), store, d, openString("fake video bytes"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := strings.Join(store.calls, ","); got != "create,upload,update" {
		t.Fatalf("calls = %q, want create,upload,update", got)
	}
	if store.created.Content.Ref() != "" {
		t.Errorf("created lesson carried content %q before upload", store.created.Content.Ref())
	}
	if store.uploaded.lessonID != store.created.ID {
		t.Errorf("uploaded against lesson %d, created %d", store.uploaded.lessonID, store.created.ID)
	}
	if store.uploaded.body != "fake video bytes" {
		t.Errorf("uploaded body = %q", store.uploaded.body)
	}
	if lesson.Content.Ref() != "https://cdn.example.com/videos/intro.mp4" {
		t.Errorf("final content ref = %q", lesson.Content.Ref())
	}
	if d.State() != StateSucceeded {
		t.Errorf("state = %q, want %q", d.State(), StateSucceeded)
	}
}

func TestSubmitUploadFailureKeepsLesson(t *testing.T) {
	store := &fakeStore{uploadErr: errors.New("connection reset")}
	d := NewDraft(10, 20, 0)
	d.Title = "Deep dive"
	d.DurationInMinutes = 30
	d.Attachment = &model.PendingAttachment{
		ID:       "att-1",
		Field:    model.ContentTypeVideo,
		Filename: "deep-dive.mp4",
	}

	lesson, err := Submit(context.Background(), store, d, openString("bytes"))
	if err == nil {
		t.Fatal("expected error when upload fails")
	}
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("error type %T, want *UploadError", err)
	}
	if uploadErr.Field != model.ContentTypeVideo {
		t.Errorf("failed field = %q", uploadErr.Field)
	}
	if !strings.Contains(err.Error(), "lesson created but video upload failed") {
		t.Errorf("error message %q lacks phase context", err.Error())
	}
	if lesson == nil || lesson.ID == 0 {
		t.Fatal("created lesson must be returned despite the failed upload")
	}
	if d.State() != StateFailed {
		t.Errorf("state = %q, want %q", d.State(), StateFailed)
	}
}

func TestSubmitValidationFailureTouchesNothing(t *testing.T) {
	store := &fakeStore{}
	d := NewDraft(10, 20, 0)
	d.Title = "   "
	d.DurationInMinutes = 5

	if _, err := Submit(context.Background(), store, d, nil); err == nil {
		t.Fatal("expected validation error")
	}
	if len(store.calls) != 0 {
		t.Fatalf("store was called %v for an invalid draft", store.calls)
	}
}

func TestSubmitUpdatesExistingLesson(t *testing.T) {
	store := &fakeStore{}
	d := DraftFromLesson(10, &model.Lesson{
		ID:                7,
		ChapterID:         20,
		Title:             "Old title",
		Position:          2,
		DurationInMinutes: 12,
		Content:           model.TextContent{Body: "<p>hello</p>"},
	})
	d.Title = "New title"

	lesson, err := Submit(context.Background(), store, d, nil)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if got := strings.Join(store.calls, ","); got != "update" {
		t.Fatalf("calls = %q, want single update", got)
	}
	if lesson.ID != 7 || lesson.Title != "New title" {
		t.Errorf("updated lesson = %+v", lesson)
	}
}
