package gateway

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"app/internal/model"
)

// UploadFile streams a content file to the lesson's upload endpoint and
// returns the URL the upstream stored it under. The endpoint and deadline
// depend on the content field being attached.
func (c *httpClient) UploadFile(ctx context.Context, courseID, chapterID, lessonID int64, field model.ContentType, filename string, r io.Reader) (string, error) {
	var (
		segment string
		urlKey  string
		timeout time.Duration
	)
	switch field {
	case model.ContentTypeVideo:
		segment, urlKey, timeout = "upload-video", "videoUrl", videoUploadTimeout
	case model.ContentTypeDocument:
		segment, urlKey, timeout = "upload-document", "documentUrl", documentUploadTimeout
	case model.ContentTypeSlide:
		segment, urlKey, timeout = "upload-slide", "slideUrl", slideUploadTimeout
	default:
		return "", fmt.Errorf("content type %s does not take a file upload", field)
	}

	// The multipart body is streamed through a pipe so a large video never
	// sits fully in memory.
	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)
	go func() {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(fmt.Errorf("building multipart body: %w", err))
			return
		}
		if _, err := io.Copy(part, r); err != nil {
			pw.CloseWithError(fmt.Errorf("reading upload payload: %w", err))
			return
		}
		pw.CloseWithError(writer.Close())
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var out map[string]string
	path := fmt.Sprintf("/v1/courses/%d/chapters/%d/lessons/%d/%s", courseID, chapterID, lessonID, segment)
	if err := c.do(ctx, http.MethodPost, path, pr, writer.FormDataContentType(), &out); err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	uploaded := out[urlKey]
	if uploaded == "" {
		return "", fmt.Errorf("upstream upload response missing %s", urlKey)
	}
	c.logger.Info().
		Int64("lesson_id", lessonID).
		Str("field", string(field)).
		Str("filename", filename).
		Msg("File uploaded")
	return uploaded, nil
}
