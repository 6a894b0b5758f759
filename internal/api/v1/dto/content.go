package dto

// ChapterRequestDTO is used for chapter create and update requests
type ChapterRequestDTO struct {
	Title    string `json:"title" validate:"required"`
	Position int    `json:"position" validate:"gte=1"`
}

// ChapterResponseDTO is returned in API responses for chapters
type ChapterResponseDTO struct {
	ID       int64               `json:"id"`
	Title    string              `json:"title"`
	Position int                 `json:"position"`
	Lessons  []LessonResponseDTO `json:"lessons"`
}

// LessonRequestDTO is used for lesson create and update requests. Exactly one
// content source applies: the field matching contentType, or a previously
// staged attachment referenced by attachmentId. chapterId may be omitted on
// routes that carry the chapter in the path.
type LessonRequestDTO struct {
	Title             string `json:"title" validate:"required"`
	ChapterID         int64  `json:"chapterId" validate:"gte=0"`
	ContentType       string `json:"contentType" validate:"required,oneof=VIDEO TEXT DOCUMENT SLIDE"`
	VideoURL          string `json:"videoUrl,omitempty"`
	TextBody          string `json:"textBody,omitempty"`
	DocumentURL       string `json:"documentUrl,omitempty"`
	SlideURL          string `json:"slideUrl,omitempty"`
	DurationInMinutes int    `json:"durationInMinutes" validate:"required,gt=0"`
	Position          int    `json:"position,omitempty"`
	AttachmentID      string `json:"attachmentId,omitempty"`
}

// LessonResponseDTO is returned in API responses for lessons
type LessonResponseDTO struct {
	ID                int64  `json:"id"`
	ChapterID         int64  `json:"chapterId"`
	Title             string `json:"title"`
	Position          int    `json:"position"`
	DurationInMinutes int    `json:"durationInMinutes"`
	ContentType       string `json:"contentType"`
	Content           string `json:"content,omitempty"`
}

// ReorderRequestDTO describes a completed drag gesture. A null destination
// means the drag was cancelled.
type ReorderRequestDTO struct {
	MovedID     int64 `json:"movedId" validate:"required"`
	Source      int   `json:"source" validate:"gte=0"`
	Destination *int  `json:"destination"`
}

// ReorderResponseDTO carries the new position of every sibling
type ReorderResponseDTO struct {
	Positions map[int64]int `json:"positions"`
}

// AttachmentResponseDTO is returned after staging a file
type AttachmentResponseDTO struct {
	ID       string `json:"id"`
	Field    string `json:"field"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// UploadResponseDTO is returned after a direct file upload
type UploadResponseDTO struct {
	URL string `json:"url"`
}
