package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"app/internal/authoring"
	"app/internal/cache"
	"app/internal/model"
	"app/internal/preview"
	"app/internal/staging"

	"github.com/rs/zerolog"
)

func newAuthoringService(gw *fakeGateway, st *fakeStaging) (AuthoringService, *cache.ContentCache) {
	c := cache.New(gw.GetChapters)
	return NewAuthoringService(gw, st, c, nil, "content-events", zerolog.Nop()), c
}

func TestSubmitLessonConsumesStagedAttachment(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters(), uploadedURL: "https://cdn.example.com/videos/v.mp4"}
	st := newFakeStaging()
	svc, _ := newAuthoringService(gw, st)

	att, err := st.Stage(context.Background(), model.ContentTypeVideo, "v.mp4", 2048, strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("staging: %v", err)
	}

	d := authoring.NewDraft(10, 1, 0)
	d.Title = "With video"
	d.DurationInMinutes = 9
	d.Attachment = att

	lesson, err := svc.SubmitLesson(context.Background(), d)
	if err != nil {
		t.Fatalf("SubmitLesson returned error: %v", err)
	}
	if lesson.Content.Ref() != "https://cdn.example.com/videos/v.mp4" {
		t.Errorf("content ref = %q", lesson.Content.Ref())
	}
	if st.has(att.ID) {
		t.Error("consumed attachment was not discarded")
	}
}

func TestSubmitLessonKeepsAttachmentOnUploadFailure(t *testing.T) {
	gw := &fakeGateway{chapters: threeChapters(), uploadErr: errors.New("timeout")}
	st := newFakeStaging()
	svc, c := newAuthoringService(gw, st)

	if _, err := c.Get(context.Background(), 10); err != nil {
		t.Fatalf("priming cache: %v", err)
	}

	att, err := st.Stage(context.Background(), model.ContentTypeVideo, "v.mp4", 2048, strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("staging: %v", err)
	}

	d := authoring.NewDraft(10, 1, 0)
	d.Title = "With video"
	d.DurationInMinutes = 9
	d.Attachment = att

	lesson, err := svc.SubmitLesson(context.Background(), d)
	var uploadErr *authoring.UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("error = %v, want *authoring.UploadError", err)
	}
	if lesson == nil {
		t.Fatal("lesson from the completed first phase must be returned")
	}
	if !st.has(att.ID) {
		t.Error("attachment must survive a failed upload for retry")
	}

	// A half-completed submit still created the lesson upstream.
	if _, err := c.Get(context.Background(), 10); err != nil {
		t.Fatalf("re-reading cache: %v", err)
	}
	if gw.fetches != 2 {
		t.Errorf("fetches = %d, want refetch after failed submit", gw.fetches)
	}
}

func TestAttachFileRejectsOversizedBeforeUpload(t *testing.T) {
	gw := &fakeGateway{uploadedURL: "https://cdn.example.com/videos/v.mp4"}
	svc, _ := newAuthoringService(gw, newFakeStaging())

	_, err := svc.AttachFile(context.Background(), 10, 1, 500, model.ContentTypeVideo, "big.mp4", 600<<20, strings.NewReader(""))
	if !errors.Is(err, staging.ErrFileTooLarge) {
		t.Fatalf("error = %v, want ErrFileTooLarge", err)
	}
	if gw.callCount("UploadFile") != 0 {
		t.Error("oversized file reached the upstream API")
	}
}

func TestAttachFileUploadsAndReturnsURL(t *testing.T) {
	gw := &fakeGateway{uploadedURL: "https://cdn.example.com/docs/notes.pdf"}
	svc, _ := newAuthoringService(gw, newFakeStaging())

	url, err := svc.AttachFile(context.Background(), 10, 1, 500, model.ContentTypeDocument, "notes.pdf", 1024, strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("AttachFile returned error: %v", err)
	}
	if url != "https://cdn.example.com/docs/notes.pdf" {
		t.Errorf("url = %q", url)
	}
}

func TestPreviewLessonResolvesEmbed(t *testing.T) {
	gw := &fakeGateway{}
	svc, _ := newAuthoringService(gw, newFakeStaging())

	descriptor, err := svc.PreviewLesson(context.Background(), 7)
	if err != nil {
		t.Fatalf("PreviewLesson returned error: %v", err)
	}
	if descriptor.Kind != preview.KindEmbed {
		t.Errorf("kind = %q, want %q", descriptor.Kind, preview.KindEmbed)
	}
	if descriptor.URL != "https://www.youtube.com/embed/abc123DEF45" {
		t.Errorf("url = %q", descriptor.URL)
	}
}
