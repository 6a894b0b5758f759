package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/authoring"
	"app/internal/gateway"
	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"
	"app/internal/staging"

	"github.com/go-playground/validator/v10"
)

// ContentHandler handles the course content tree: chapters, lessons, reorder
// gestures, file uploads and lesson preview.

type ContentHandler struct {
	contentService   service.ContentService
	authoringService service.AuthoringService
	validate         *validator.Validate
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(
	contentService service.ContentService,
	authoringService service.AuthoringService,
	validate *validator.Validate,
) *ContentHandler {
	return &ContentHandler{
		contentService:   contentService,
		authoringService: authoringService,
		validate:         validate,
	}
}

// RegisterRoutes mounts content routes. Everything here is instructor/admin
// territory.
func (h *ContentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	manage := func(next http.HandlerFunc) http.Handler {
		return authMw(middleware.RequireRole(next, "INSTRUCTOR", "ADMIN"))
	}
	mux.Handle("/v1/courses/", manage(h.handleCourseContent))
	mux.Handle("/v1/lessons/", manage(h.handleLesson))
	mux.Handle("/v1/attachments", manage(h.stageAttachment))
	mux.Handle("/v1/attachments/", manage(h.discardAttachment))
}

func (h *ContentHandler) handleCourseContent(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/courses/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	courseID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "Invalid course ID", http.StatusBadRequest)
		return
	}

	switch {
	case len(parts) == 2 && parts[1] == "content" && r.Method == http.MethodGet:
		h.getCourseContent(w, r, courseID)
	case len(parts) == 2 && parts[1] == "chapters" && r.Method == http.MethodPost:
		h.createChapter(w, r, courseID)
	case len(parts) == 3 && parts[1] == "chapters" && parts[2] == "reorder" && r.Method == http.MethodPatch:
		h.reorderChapters(w, r, courseID)
	case len(parts) == 3 && parts[1] == "chapters":
		chapterID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodPut:
			h.updateChapter(w, r, courseID, chapterID)
		case http.MethodDelete:
			h.deleteChapter(w, r, courseID, chapterID)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	case len(parts) == 2 && parts[1] == "lessons" && r.Method == http.MethodPost:
		h.createLesson(w, r, courseID, 0)
	case len(parts) == 3 && parts[1] == "lessons" && r.Method == http.MethodPut:
		lessonID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
			return
		}
		h.updateLesson(w, r, courseID, 0, lessonID)
	case len(parts) >= 4 && parts[1] == "chapters" && parts[3] == "lessons":
		chapterID, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}
		h.handleChapterLessons(w, r, courseID, chapterID, parts[4:])
	default:
		http.NotFound(w, r)
	}
}

func (h *ContentHandler) handleChapterLessons(w http.ResponseWriter, r *http.Request, courseID, chapterID int64, parts []string) {
	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.createLesson(w, r, courseID, chapterID)
	case len(parts) == 1 && parts[0] == "reorder" && r.Method == http.MethodPatch:
		h.reorderLessons(w, r, courseID, chapterID)
	case len(parts) == 1 && r.Method == http.MethodPut:
		lessonID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
			return
		}
		h.updateLesson(w, r, courseID, chapterID, lessonID)
	case len(parts) == 1 && r.Method == http.MethodDelete:
		lessonID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
			return
		}
		h.deleteLesson(w, r, courseID, chapterID, lessonID)
	case len(parts) == 2 && r.Method == http.MethodPost:
		lessonID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
			return
		}
		field, ok := uploadField(parts[1])
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.uploadLessonFile(w, r, courseID, chapterID, lessonID, field)
	default:
		http.NotFound(w, r)
	}
}

// uploadField maps the upload path segment to its content field. The generic
// "upload" segment takes the field from the multipart form instead.
func uploadField(segment string) (model.ContentType, bool) {
	switch segment {
	case "upload-video":
		return model.ContentTypeVideo, true
	case "upload-document":
		return model.ContentTypeDocument, true
	case "upload-slide":
		return model.ContentTypeSlide, true
	case "upload":
		return "", true
	}
	return "", false
}

// getCourseContent godoc
// @Summary Get course content tree
// @Description Retrieves the ordered chapter and lesson tree for a course.
// @Tags content
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} dto.ChapterResponseDTO
// @Failure 502 {string} string "Failed to load course content"
// @Router /v1/courses/{courseId}/content [get]
func (h *ContentHandler) getCourseContent(w http.ResponseWriter, r *http.Request, courseID int64) {
	chapters, err := h.contentService.GetCourseContent(r.Context(), courseID)
	if err != nil {
		writeServiceError(w, "Failed to load course content", err)
		return
	}
	resp := make([]dto.ChapterResponseDTO, 0, len(chapters))
	for _, ch := range chapters {
		resp = append(resp, chapterResponse(&ch))
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// createChapter godoc
// @Summary Create a chapter
// @Tags content
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param chapter body dto.ChapterRequestDTO true "Chapter data"
// @Success 201 {object} dto.ChapterResponseDTO
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 502 {string} string "Failed to create chapter"
// @Router /v1/courses/{courseId}/chapters [post]
func (h *ContentHandler) createChapter(w http.ResponseWriter, r *http.Request, courseID int64) {
	var req dto.ChapterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	chapter, err := h.contentService.CreateChapter(r.Context(), courseID, req.Title, req.Position)
	if err != nil {
		writeServiceError(w, "Failed to create chapter", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(chapterResponse(chapter))
}

// updateChapter godoc
// @Summary Update a chapter
// @Tags content
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param chapterId path int true "Chapter ID"
// @Param chapter body dto.ChapterRequestDTO true "Chapter data"
// @Success 200 {object} dto.ChapterResponseDTO
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 502 {string} string "Failed to update chapter"
// @Router /v1/courses/{courseId}/chapters/{chapterId} [put]
func (h *ContentHandler) updateChapter(w http.ResponseWriter, r *http.Request, courseID, chapterID int64) {
	var req dto.ChapterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	chapter, err := h.contentService.UpdateChapter(r.Context(), courseID, chapterID, req.Title, req.Position)
	if err != nil {
		writeServiceError(w, "Failed to update chapter", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(chapterResponse(chapter))
}

// deleteChapter godoc
// @Summary Delete a chapter
// @Description Deletes a chapter and all its lessons.
// @Tags content
// @Param courseId path int true "Course ID"
// @Param chapterId path int true "Chapter ID"
// @Success 204 {string} string "No Content"
// @Failure 502 {string} string "Failed to delete chapter"
// @Router /v1/courses/{courseId}/chapters/{chapterId} [delete]
func (h *ContentHandler) deleteChapter(w http.ResponseWriter, r *http.Request, courseID, chapterID int64) {
	if err := h.contentService.DeleteChapter(r.Context(), courseID, chapterID); err != nil {
		writeServiceError(w, "Failed to delete chapter", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reorderChapters godoc
// @Summary Reorder chapters
// @Description Applies a completed drag gesture to the course's chapters.
// @Tags content
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param reorder body dto.ReorderRequestDTO true "Drag gesture"
// @Success 200 {object} dto.ReorderResponseDTO
// @Success 204 {string} string "No Content (cancelled drag)"
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 502 {string} string "Failed to reorder chapters"
// @Router /v1/courses/{courseId}/chapters/reorder [patch]
func (h *ContentHandler) reorderChapters(w http.ResponseWriter, r *http.Request, courseID int64) {
	var req dto.ReorderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	positions, err := h.contentService.ReorderChapters(r.Context(), courseID, req.MovedID, req.Source, req.Destination)
	if err != nil {
		writeServiceError(w, "Failed to reorder chapters", err)
		return
	}
	if positions == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.ReorderResponseDTO{Positions: positions})
}

// reorderLessons godoc
// @Summary Reorder lessons within a chapter
// @Tags content
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param chapterId path int true "Chapter ID"
// @Param reorder body dto.ReorderRequestDTO true "Drag gesture"
// @Success 200 {object} dto.ReorderResponseDTO
// @Success 204 {string} string "No Content (cancelled drag)"
// @Failure 400 {string} string "Invalid JSON payload"
// @Failure 502 {string} string "Failed to reorder lessons"
// @Router /v1/courses/{courseId}/chapters/{chapterId}/lessons/reorder [patch]
func (h *ContentHandler) reorderLessons(w http.ResponseWriter, r *http.Request, courseID, chapterID int64) {
	var req dto.ReorderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	positions, err := h.contentService.ReorderLessons(r.Context(), courseID, chapterID, req.MovedID, req.Source, req.Destination)
	if err != nil {
		writeServiceError(w, "Failed to reorder lessons", err)
		return
	}
	if positions == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.ReorderResponseDTO{Positions: positions})
}

// createLesson godoc
// @Summary Create a lesson
// @Description Creates a lesson. When attachmentId references a staged file,
// @Description the lesson is created first and the file uploaded and bound in
// @Description a second phase.
// @Tags content
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param lesson body dto.LessonRequestDTO true "Lesson data"
// @Success 201 {object} dto.LessonResponseDTO
// @Failure 400 {string} string "Validation failed"
// @Failure 502 {string} string "Lesson created but upload failed"
// @Router /v1/courses/{courseId}/lessons [post]
// @Router /v1/courses/{courseId}/chapters/{chapterId}/lessons [post]
func (h *ContentHandler) createLesson(w http.ResponseWriter, r *http.Request, courseID, chapterID int64) {
	var req dto.LessonRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.ChapterID != 0 {
		chapterID = req.ChapterID
	}
	if chapterID == 0 {
		http.Error(w, "Validation failed: chapterId is required", http.StatusBadRequest)
		return
	}

	draft, err := h.authoringService.NewLessonDraft(r.Context(), courseID, chapterID)
	if err != nil {
		writeServiceError(w, "Failed to start lesson draft", err)
		return
	}
	applyLessonRequest(draft, &req)
	if req.AttachmentID != "" {
		attachment, ok := h.authoringService.Attachment(req.AttachmentID)
		if !ok {
			http.Error(w, "Unknown attachment: "+req.AttachmentID, http.StatusBadRequest)
			return
		}
		draft.Attachment = attachment
	}

	lesson, err := h.authoringService.SubmitLesson(r.Context(), draft)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lessonResponse(lesson))
}

// updateLesson godoc
// @Summary Update a lesson
// @Tags content
// @Accept json
// @Produce json
// @Param courseId path int true "Course ID"
// @Param lessonId path int true "Lesson ID"
// @Param lesson body dto.LessonRequestDTO true "Lesson data"
// @Success 200 {object} dto.LessonResponseDTO
// @Failure 400 {string} string "Validation failed"
// @Failure 502 {string} string "Failed to update lesson"
// @Router /v1/courses/{courseId}/lessons/{lessonId} [put]
// @Router /v1/courses/{courseId}/chapters/{chapterId}/lessons/{lessonId} [put]
func (h *ContentHandler) updateLesson(w http.ResponseWriter, r *http.Request, courseID, chapterID, lessonID int64) {
	var req dto.LessonRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// The body's chapter wins over the path so a lesson can be moved between
	// chapters on update.
	if req.ChapterID != 0 {
		chapterID = req.ChapterID
	}
	draft := &authoring.Draft{LessonID: lessonID, CourseID: courseID, ChapterID: chapterID}
	applyLessonRequest(draft, &req)
	if req.AttachmentID != "" {
		attachment, ok := h.authoringService.Attachment(req.AttachmentID)
		if !ok {
			http.Error(w, "Unknown attachment: "+req.AttachmentID, http.StatusBadRequest)
			return
		}
		draft.Attachment = attachment
	}

	lesson, err := h.authoringService.SubmitLesson(r.Context(), draft)
	if err != nil {
		writeSubmitError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(lessonResponse(lesson))
}

// deleteLesson godoc
// @Summary Delete a lesson
// @Tags content
// @Param courseId path int true "Course ID"
// @Param chapterId path int true "Chapter ID"
// @Param lessonId path int true "Lesson ID"
// @Success 204 {string} string "No Content"
// @Failure 502 {string} string "Failed to delete lesson"
// @Router /v1/courses/{courseId}/chapters/{chapterId}/lessons/{lessonId} [delete]
func (h *ContentHandler) deleteLesson(w http.ResponseWriter, r *http.Request, courseID, chapterID, lessonID int64) {
	if err := h.authoringService.DeleteLesson(r.Context(), courseID, chapterID, lessonID); err != nil {
		writeServiceError(w, "Failed to delete lesson", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadLessonFile godoc
// @Summary Upload a file to an existing lesson
// @Description Uploads a video, document or slide file straight to a lesson.
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param courseId path int true "Course ID"
// @Param chapterId path int true "Chapter ID"
// @Param lessonId path int true "Lesson ID"
// @Param field formData string true "Content field (VIDEO, DOCUMENT or SLIDE)"
// @Param file formData file true "File to upload"
// @Success 200 {object} dto.UploadResponseDTO
// @Failure 400 {string} string "File exceeds size limit"
// @Failure 502 {string} string "Failed to upload file"
// @Router /v1/courses/{courseId}/chapters/{chapterId}/lessons/{lessonId}/upload-video [post]
func (h *ContentHandler) uploadLessonFile(w http.ResponseWriter, r *http.Request, courseID, chapterID, lessonID int64, field model.ContentType) {
	if field == "" {
		field = model.ContentType(r.FormValue("field"))
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	uploadedURL, err := h.authoringService.AttachFile(r.Context(), courseID, chapterID, lessonID, field, header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, staging.ErrFileTooLarge) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeServiceError(w, "Failed to upload file", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.UploadResponseDTO{URL: uploadedURL})
}

func (h *ContentHandler) handleLesson(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/lessons/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[1] != "preview" || r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	lessonID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Error(w, "Invalid lesson ID", http.StatusBadRequest)
		return
	}
	h.previewLesson(w, r, lessonID)
}

// previewLesson godoc
// @Summary Preview a lesson
// @Description Resolves how the lesson's content should be displayed,
// @Description bypassing enrollment checks.
// @Tags content
// @Produce json
// @Param lessonId path int true "Lesson ID"
// @Success 200 {object} preview.ViewDescriptor
// @Failure 502 {string} string "Failed to load preview"
// @Router /v1/lessons/{lessonId}/preview [get]
func (h *ContentHandler) previewLesson(w http.ResponseWriter, r *http.Request, lessonID int64) {
	descriptor, err := h.authoringService.PreviewLesson(r.Context(), lessonID)
	if err != nil {
		writeServiceError(w, "Failed to load preview", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(descriptor)
}

// stageAttachment godoc
// @Summary Stage a file before its lesson exists
// @Description Validates size ceilings and stores the file until the lesson
// @Description submit consumes it.
// @Tags content
// @Accept multipart/form-data
// @Produce json
// @Param field formData string true "Content field (VIDEO, DOCUMENT or SLIDE)"
// @Param file formData file true "File to stage"
// @Success 201 {object} dto.AttachmentResponseDTO
// @Failure 400 {string} string "File exceeds size limit"
// @Failure 500 {string} string "Failed to stage file"
// @Router /v1/attachments [post]
func (h *ContentHandler) stageAttachment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	field := model.ContentType(r.FormValue("field"))
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	attachment, err := h.authoringService.StageAttachment(r.Context(), field, header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, staging.ErrFileTooLarge) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to stage file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto.AttachmentResponseDTO{
		ID:       attachment.ID,
		Field:    string(attachment.Field),
		Filename: attachment.Filename,
		Size:     attachment.Size,
	})
}

// discardAttachment godoc
// @Summary Discard a staged file
// @Tags content
// @Param attachmentId path string true "Attachment ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {string} string "Attachment not found"
// @Router /v1/attachments/{attachmentId} [delete]
func (h *ContentHandler) discardAttachment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/attachments/")
	if err := h.authoringService.DiscardAttachment(r.Context(), id); err != nil {
		if errors.Is(err, staging.ErrNotFound) {
			http.Error(w, "Attachment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to discard attachment: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func applyLessonRequest(d *authoring.Draft, req *dto.LessonRequestDTO) {
	d.Title = req.Title
	d.ActiveType = model.ContentType(req.ContentType)
	d.VideoURL = req.VideoURL
	d.TextBody = req.TextBody
	d.DocumentURL = req.DocumentURL
	d.SlideURL = req.SlideURL
	d.DurationInMinutes = req.DurationInMinutes
	if req.Position > 0 {
		d.Position = req.Position
	}
}

func chapterResponse(ch *model.Chapter) dto.ChapterResponseDTO {
	lessons := make([]dto.LessonResponseDTO, 0, len(ch.Lessons))
	for _, l := range ch.Lessons {
		lessons = append(lessons, lessonResponse(&l))
	}
	return dto.ChapterResponseDTO{
		ID:       ch.ID,
		Title:    ch.Title,
		Position: ch.Position,
		Lessons:  lessons,
	}
}

func lessonResponse(l *model.Lesson) dto.LessonResponseDTO {
	resp := dto.LessonResponseDTO{
		ID:                l.ID,
		ChapterID:         l.ChapterID,
		Title:             l.Title,
		Position:          l.Position,
		DurationInMinutes: l.DurationInMinutes,
	}
	if l.Content != nil {
		resp.ContentType = string(l.Content.ContentType())
		resp.Content = l.Content.Ref()
	}
	return resp
}

// writeSubmitError distinguishes the three failure shapes of a lesson submit:
// invalid draft, failed create, and a created lesson whose upload failed.
func writeSubmitError(w http.ResponseWriter, err error) {
	var validationErr *authoring.ValidationError
	if errors.As(err, &validationErr) {
		http.Error(w, "Validation failed: "+validationErr.Error(), http.StatusBadRequest)
		return
	}
	var uploadErr *authoring.UploadError
	if errors.As(err, &uploadErr) {
		http.Error(w, uploadErr.Error(), http.StatusBadGateway)
		return
	}
	writeServiceError(w, "Failed to save lesson", err)
}

// writeServiceError maps upstream 4xx statuses through and everything else to
// 502.
func writeServiceError(w http.ResponseWriter, msg string, err error) {
	var statusErr *gateway.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode >= 400 && statusErr.StatusCode < 500 {
		http.Error(w, msg+": "+err.Error(), statusErr.StatusCode)
		return
	}
	http.Error(w, msg+": "+err.Error(), http.StatusBadGateway)
}
