// Package gateway is the typed HTTP client for the upstream course-platform
// API. All content reads and mutations of this service go through it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"app/internal/model"
	"app/internal/ordering"

	"github.com/rs/zerolog"
)

// Upload timeouts mirror the expected server-side processing cost per content
// type: videos are large, slides are converted to PDF on the server, documents
// are stored as-is. These asymmetries are part of the upstream contract.
const (
	videoUploadTimeout    = 10 * time.Minute
	slideUploadTimeout    = 5 * time.Minute
	documentUploadTimeout = 2 * time.Minute
)

// Client issues requests against the upstream course API.
type Client interface {
	GetChapters(ctx context.Context, courseID int64) ([]model.Chapter, error)

	CreateChapter(ctx context.Context, courseID int64, title string, position int) (*model.Chapter, error)
	UpdateChapter(ctx context.Context, courseID, chapterID int64, title string, position int) (*model.Chapter, error)
	DeleteChapter(ctx context.Context, courseID, chapterID int64) error

	CreateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error)
	UpdateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error)
	DeleteLesson(ctx context.Context, courseID, chapterID, lessonID int64) error

	ReorderChapters(ctx context.Context, courseID int64, positions ordering.PositionMap) error
	ReorderLessons(ctx context.Context, courseID, chapterID int64, positions ordering.PositionMap) error

	UploadFile(ctx context.Context, courseID, chapterID, lessonID int64, field model.ContentType, filename string, r io.Reader) (string, error)

	PreviewLesson(ctx context.Context, lessonID int64) (*model.Lesson, error)

	SearchCourses(ctx context.Context, f model.CourseFilters) (*model.CoursePage, error)

	// Passive background reads. Unauthorized responses are reported as empty
	// results, not errors; these calls are expected to fire before a session
	// has fully settled.
	UnreadNotificationCount(ctx context.Context) (int, error)
	CartItemCount(ctx context.Context) (int, error)
}

type httpClient struct {
	baseURL      string
	serviceToken string
	client       *http.Client
	logger       zerolog.Logger
}

// NewClient creates a Client for the API at baseURL. serviceToken is used when
// the request context does not carry a caller bearer token.
func NewClient(baseURL, serviceToken string, logger zerolog.Logger) Client {
	return &httpClient{
		baseURL:      baseURL,
		serviceToken: serviceToken,
		// No client-wide timeout: upload deadlines differ per content type and
		// are applied through the request context.
		client: &http.Client{},
		logger: logger.With().Str("service", "Gateway").Logger(),
	}
}

type bearerKey struct{}

// WithBearer attaches the caller's bearer token to ctx so it is forwarded on
// every upstream request made under that context.
func WithBearer(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerKey{}, token)
}

// BearerFrom returns the bearer token carried by ctx, if any.
func BearerFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

// StatusError is a non-2xx upstream response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

func (c *httpClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token := BearerFrom(ctx)
	if token == "" {
		token = c.serviceToken
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling upstream: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			c.logger.Warn().Err(readErr).Int("status_code", resp.StatusCode).Msg("Failed to read upstream error body")
			return &StatusError{StatusCode: resp.StatusCode}
		}
		c.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("Upstream returned error")
		return &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *httpClient) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		body = bytes.NewReader(jsonBody)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// GetChapters fetches the ordered chapter tree for a course.
func (c *httpClient) GetChapters(ctx context.Context, courseID int64) ([]model.Chapter, error) {
	var wires []chapterWire
	path := fmt.Sprintf("/content/courses/%d", courseID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &wires); err != nil {
		return nil, fmt.Errorf("fetching chapters for course %d: %w", courseID, err)
	}
	chapters := make([]model.Chapter, 0, len(wires))
	for _, w := range wires {
		chapters = append(chapters, w.toModel())
	}
	return chapters, nil
}

type chapterRequest struct {
	Title    string `json:"title"`
	Position int    `json:"position"`
}

func (c *httpClient) CreateChapter(ctx context.Context, courseID int64, title string, position int) (*model.Chapter, error) {
	var env struct {
		Chapter chapterWire `json:"chapter"`
	}
	path := fmt.Sprintf("/v1/courses/%d/chapters", courseID)
	if err := c.doJSON(ctx, http.MethodPost, path, chapterRequest{Title: title, Position: position}, &env); err != nil {
		return nil, fmt.Errorf("creating chapter: %w", err)
	}
	chapter := env.Chapter.toModel()
	return &chapter, nil
}

func (c *httpClient) UpdateChapter(ctx context.Context, courseID, chapterID int64, title string, position int) (*model.Chapter, error) {
	var env struct {
		Chapter chapterWire `json:"chapter"`
	}
	path := fmt.Sprintf("/v1/courses/%d/chapters/%d", courseID, chapterID)
	if err := c.doJSON(ctx, http.MethodPut, path, chapterRequest{Title: title, Position: position}, &env); err != nil {
		return nil, fmt.Errorf("updating chapter %d: %w", chapterID, err)
	}
	chapter := env.Chapter.toModel()
	return &chapter, nil
}

func (c *httpClient) DeleteChapter(ctx context.Context, courseID, chapterID int64) error {
	path := fmt.Sprintf("/v1/courses/%d/chapters/%d", courseID, chapterID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting chapter %d: %w", chapterID, err)
	}
	return nil
}

func (c *httpClient) CreateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error) {
	var env struct {
		Lesson lessonWire `json:"lesson"`
	}
	path := fmt.Sprintf("/v1/courses/%d/chapters/%d/lessons", courseID, l.ChapterID)
	if err := c.doJSON(ctx, http.MethodPost, path, lessonWireFromModel(l), &env); err != nil {
		return nil, fmt.Errorf("creating lesson: %w", err)
	}
	created := env.Lesson.toModel(l.ChapterID)
	return &created, nil
}

func (c *httpClient) UpdateLesson(ctx context.Context, courseID int64, l *model.Lesson) (*model.Lesson, error) {
	var env struct {
		Lesson lessonWire `json:"lesson"`
	}
	path := fmt.Sprintf("/v1/courses/%d/chapters/%d/lessons/%d", courseID, l.ChapterID, l.ID)
	if err := c.doJSON(ctx, http.MethodPut, path, lessonWireFromModel(l), &env); err != nil {
		return nil, fmt.Errorf("updating lesson %d: %w", l.ID, err)
	}
	updated := env.Lesson.toModel(l.ChapterID)
	return &updated, nil
}

func (c *httpClient) DeleteLesson(ctx context.Context, courseID, chapterID, lessonID int64) error {
	path := fmt.Sprintf("/v1/courses/%d/chapters/%d/lessons/%d", courseID, chapterID, lessonID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("deleting lesson %d: %w", lessonID, err)
	}
	return nil
}

// ReorderChapters submits the full position map for a course's chapters as one
// request.
func (c *httpClient) ReorderChapters(ctx context.Context, courseID int64, positions ordering.PositionMap) error {
	path := fmt.Sprintf("/v1/courses/%d/chapters/reorder", courseID)
	if err := c.doJSON(ctx, http.MethodPatch, path, positions, nil); err != nil {
		return fmt.Errorf("reordering chapters: %w", err)
	}
	return nil
}

// ReorderLessons submits the full position map for a chapter's lessons as one
// request.
func (c *httpClient) ReorderLessons(ctx context.Context, courseID, chapterID int64, positions ordering.PositionMap) error {
	path := fmt.Sprintf("/v1/courses/%d/chapters/%d/lessons/reorder", courseID, chapterID)
	if err := c.doJSON(ctx, http.MethodPatch, path, positions, nil); err != nil {
		return fmt.Errorf("reordering lessons in chapter %d: %w", chapterID, err)
	}
	return nil
}

// PreviewLesson fetches the full lesson content for instructors, bypassing
// enrollment checks upstream.
func (c *httpClient) PreviewLesson(ctx context.Context, lessonID int64) (*model.Lesson, error) {
	var wire lessonWire
	path := fmt.Sprintf("/manage/content/lessons/%d/preview", lessonID)
	if err := c.do(ctx, http.MethodGet, path, nil, "", &wire); err != nil {
		return nil, fmt.Errorf("fetching lesson %d preview: %w", lessonID, err)
	}
	lesson := wire.toModel(0)
	return &lesson, nil
}

// SearchCourses runs a filtered, paginated course search.
func (c *httpClient) SearchCourses(ctx context.Context, f model.CourseFilters) (*model.CoursePage, error) {
	params := url.Values{}
	if f.Keyword != "" {
		params.Set("keyword", f.Keyword)
	}
	if f.CategoryID != 0 {
		params.Set("categoryId", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Level != "" {
		params.Set("level", f.Level)
	}
	if f.IsFree != nil {
		params.Set("isFree", strconv.FormatBool(*f.IsFree))
	}
	if f.IsPaid != nil {
		params.Set("isPaid", strconv.FormatBool(*f.IsPaid))
	}
	if f.MinPrice != nil {
		params.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		params.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	params.Set("page", strconv.Itoa(f.Page))
	size := f.Size
	if size <= 0 {
		size = 12
	}
	params.Set("size", strconv.Itoa(size))
	params.Set("sort", sortParam(f.SortBy))

	var page model.CoursePage
	if err := c.do(ctx, http.MethodGet, "/v1/courses?"+params.Encode(), nil, "", &page); err != nil {
		return nil, fmt.Errorf("searching courses: %w", err)
	}
	return &page, nil
}

func sortParam(sortBy string) string {
	switch sortBy {
	case "popular":
		return "enrollmentCount,desc"
	case "rating":
		return "rating,desc"
	case "price_low":
		return "price,asc"
	case "price_high":
		return "price,desc"
	default:
		return "createdAt,desc"
	}
}

// UnreadNotificationCount returns the caller's unread notification count.
// Unauthorized responses count as zero; the call fires on every page before
// the session settles and must not produce noise.
func (c *httpClient) UnreadNotificationCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/notifications/count", nil, "", &out)
	if swallowAuthError(err) != nil {
		return 0, fmt.Errorf("fetching notification count: %w", err)
	}
	return out.Count, nil
}

// CartItemCount returns the caller's cart size, with the same silent-auth
// policy as UnreadNotificationCount.
func (c *httpClient) CartItemCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/cart/count", nil, "", &out)
	if swallowAuthError(err) != nil {
		return 0, fmt.Errorf("fetching cart count: %w", err)
	}
	return out.Count, nil
}

// swallowAuthError maps 401/403 to nil for passive reads.
func swallowAuthError(err error) error {
	if err == nil {
		return nil
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden) {
		return nil
	}
	return err
}
