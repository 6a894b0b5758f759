package service

import (
	"context"
	"io"
	"strings"
	"sync"

	"app/internal/gateway"
	"app/internal/model"
	"app/internal/ordering"
)

// fakeGateway records calls; individual fields override return values per
// method. It implements gateway.Client.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	chapters    []model.Chapter
	chaptersErr error
	fetches     int

	reorderedChapters ordering.PositionMap
	reorderedLessons  ordering.PositionMap
	reorderErr        error

	searchPages    []*model.CoursePage
	searchKeywords []string
	searchErr      error

	uploadedURL string
	uploadErr   error
}

var _ gateway.Client = (*fakeGateway)(nil)

func (f *fakeGateway) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeGateway) GetChapters(ctx context.Context, courseID int64) ([]model.Chapter, error) {
	f.record("GetChapters")
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	if f.chaptersErr != nil {
		return nil, f.chaptersErr
	}
	return f.chapters, nil
}

func (f *fakeGateway) CreateChapter(ctx context.Context, courseID int64, title string, position int) (*model.Chapter, error) {
	f.record("CreateChapter")
	return &model.Chapter{ID: 100, Title: title, Position: position}, nil
}

func (f *fakeGateway) UpdateChapter(ctx context.Context, courseID, chapterID int64, title string, position int) (*model.Chapter, error) {
	f.record("UpdateChapter")
	return &model.Chapter{ID: chapterID, Title: title, Position: position}, nil
}

func (f *fakeGateway) DeleteChapter(ctx context.Context, courseID, chapterID int64) error {
	f.record("DeleteChapter")
	return nil
}

func (f *fakeGateway) CreateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error) {
	f.record("CreateLesson")
	saved := *l
	saved.ID = 500
	return &saved, nil
}

func (f *fakeGateway) UpdateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error) {
	f.record("UpdateLesson")
	saved := *l
	return &saved, nil
}

func (f *fakeGateway) DeleteLesson(ctx context.Context, courseID, chapterID, lessonID int64) error {
	f.record("DeleteLesson")
	return nil
}

func (f *fakeGateway) ReorderChapters(ctx context.Context, courseID int64, positions ordering.PositionMap) error {
	f.record("ReorderChapters")
	if f.reorderErr != nil {
		return f.reorderErr
	}
	f.reorderedChapters = positions
	return nil
}

func (f *fakeGateway) ReorderLessons(ctx context.Context, courseID, chapterID int64, positions ordering.PositionMap) error {
	f.record("ReorderLessons")
	if f.reorderErr != nil {
		return f.reorderErr
	}
	f.reorderedLessons = positions
	return nil
}

func (f *fakeGateway) UploadFile(ctx context.Context, courseID, chapterID, lessonID int64, field model.ContentType, filename string, r io.Reader) (string, error) {
	f.record("UploadFile")
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	io.Copy(io.Discard, r)
	return f.uploadedURL, nil
}

func (f *fakeGateway) PreviewLesson(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	f.record("PreviewLesson")
	return &model.Lesson{ID: lessonID, Title: "Preview", Content: model.VideoContent{URL: "https://youtu.be/abc123DEF45"}}, nil
}

func (f *fakeGateway) SearchCourses(ctx context.Context, filters model.CourseFilters) (*model.CoursePage, error) {
	f.record("SearchCourses")
	f.mu.Lock()
	f.searchKeywords = append(f.searchKeywords, filters.Keyword)
	f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if len(f.searchPages) > 0 {
		page := f.searchPages[0]
		f.searchPages = f.searchPages[1:]
		return page, nil
	}
	return &model.CoursePage{}, nil
}

func (f *fakeGateway) UnreadNotificationCount(ctx context.Context) (int, error) {
	f.record("UnreadNotificationCount")
	return 3, nil
}

func (f *fakeGateway) CartItemCount(ctx context.Context) (int, error) {
	f.record("CartItemCount")
	return 1, nil
}

func (f *fakeGateway) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

// fakeStaging keeps attachments and their bytes in memory.
type fakeStaging struct {
	mu      sync.Mutex
	entries map[string]*model.PendingAttachment
	bodies  map[string]string
	staged  int
}

func newFakeStaging() *fakeStaging {
	return &fakeStaging{
		entries: make(map[string]*model.PendingAttachment),
		bodies:  make(map[string]string),
	}
}

func (f *fakeStaging) Stage(ctx context.Context, field model.ContentType, filename string, size int64, r io.Reader) (*model.PendingAttachment, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.staged++
	att := &model.PendingAttachment{ID: "att-1", Field: field, Filename: filename, Size: size}
	f.entries[att.ID] = att
	f.bodies[att.ID] = string(body)
	return att, nil
}

func (f *fakeStaging) Lookup(id string) (*model.PendingAttachment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	att, ok := f.entries[id]
	return att, ok
}

func (f *fakeStaging) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.bodies[id]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *fakeStaging) Discard(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, id)
	delete(f.bodies, id)
	return nil
}

func (f *fakeStaging) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[id]
	return ok
}
