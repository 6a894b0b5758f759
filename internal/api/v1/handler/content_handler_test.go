package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/authoring"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
)

type stubContentService struct {
	service.ContentService
}

type stubAuthoringService struct {
	service.AuthoringService
	submitted *authoring.Draft
}

func (s *stubAuthoringService) SubmitLesson(ctx context.Context, d *authoring.Draft) (*model.Lesson, error) {
	s.submitted = d
	lesson := d.Lesson()
	if lesson.ID == 0 {
		lesson.ID = 99
	}
	return lesson, nil
}

func (s *stubAuthoringService) NewLessonDraft(ctx context.Context, courseID, chapterID int64) (*authoring.Draft, error) {
	return authoring.NewDraft(courseID, chapterID, 0), nil
}

func (s *stubAuthoringService) Attachment(id string) (*model.PendingAttachment, bool) {
	return nil, false
}

var _ service.ContentService = (*stubContentService)(nil)
var _ service.AuthoringService = (*stubAuthoringService)(nil)

func contentTestServer(t *testing.T) (*httptest.Server, *stubAuthoringService) {
	t.Helper()
	authoringStub := &stubAuthoringService{}
	h := NewContentHandler(&stubContentService{}, authoringStub, validator.New(validator.WithRequiredStructEnabled()))
	instructor := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.RoleContextKey, "INSTRUCTOR")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
	mux := http.NewServeMux()
	h.RegisterRoutes(mux, instructor)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, authoringStub
}

func TestUpdateLessonViaNestedChapterPath(t *testing.T) {
	srv, authoringStub := contentTestServer(t)

	// The chapter comes from the path, not the body.
	body := `{"title":"Intro","contentType":"VIDEO","videoUrl":"https://youtu.be/x","durationInMinutes":6,"position":1}`
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/courses/10/chapters/2/lessons/7", strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, payload)
	}

	if authoringStub.submitted == nil {
		t.Fatal("lesson was never submitted")
	}
	if authoringStub.submitted.LessonID != 7 {
		t.Fatalf("expected lesson 7, got %d", authoringStub.submitted.LessonID)
	}
	if authoringStub.submitted.ChapterID != 2 {
		t.Fatalf("expected path chapter 2, got %d", authoringStub.submitted.ChapterID)
	}

	var updated map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if updated["id"] != float64(7) {
		t.Fatalf("expected lesson id 7 in response, got %v", updated["id"])
	}
}

func TestUpdateLessonBodyChapterWinsOverPath(t *testing.T) {
	srv, authoringStub := contentTestServer(t)

	body := `{"title":"Intro","chapterId":5,"contentType":"VIDEO","videoUrl":"https://youtu.be/x","durationInMinutes":6,"position":1}`
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/v1/courses/10/chapters/2/lessons/7", strings.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if authoringStub.submitted.ChapterID != 5 {
		t.Fatalf("expected body chapter 5, got %d", authoringStub.submitted.ChapterID)
	}
}
