package model

// ContentType discriminates the single active payload of a lesson.
type ContentType string

const (
	ContentTypeVideo    ContentType = "VIDEO"
	ContentTypeText     ContentType = "TEXT"
	ContentTypeDocument ContentType = "DOCUMENT"
	ContentTypeSlide    ContentType = "SLIDE"
)

// Valid reports whether t is one of the four supported content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeVideo, ContentTypeText, ContentTypeDocument, ContentTypeSlide:
		return true
	}
	return false
}

// LessonContent is the payload of a lesson. Exactly one variant is active per
// lesson; the upstream API's four optional URL/body fields are resolved into
// this union at the gateway boundary.
type LessonContent interface {
	ContentType() ContentType
	// Ref returns the content reference (URL or text body) carried by the
	// variant. Empty means the payload has not been attached yet.
	Ref() string
}

// VideoContent is a hosted or platform (e.g. YouTube) video URL.
type VideoContent struct {
	URL string
}

func (c VideoContent) ContentType() ContentType { return ContentTypeVideo }
func (c VideoContent) Ref() string              { return c.URL }

// TextContent is an inline markup body. The body arrives pre-sanitized from
// the upstream service; it is passed through untouched.
type TextContent struct {
	Body string
}

func (c TextContent) ContentType() ContentType { return ContentTypeText }
func (c TextContent) Ref() string              { return c.Body }

// DocumentContent is a stored document download URL.
type DocumentContent struct {
	URL string
}

func (c DocumentContent) ContentType() ContentType { return ContentTypeDocument }
func (c DocumentContent) Ref() string              { return c.URL }

// SlideContent is a stored slide-deck download URL.
type SlideContent struct {
	URL string
}

func (c SlideContent) ContentType() ContentType { return ContentTypeSlide }
func (c SlideContent) Ref() string              { return c.URL }

// NewContent builds the content variant for the given type with ref as its
// URL or body.
func NewContent(t ContentType, ref string) LessonContent {
	switch t {
	case ContentTypeVideo:
		return VideoContent{URL: ref}
	case ContentTypeText:
		return TextContent{Body: ref}
	case ContentTypeDocument:
		return DocumentContent{URL: ref}
	case ContentTypeSlide:
		return SlideContent{URL: ref}
	}
	return nil
}

// Lesson is a single content unit within a chapter.
type Lesson struct {
	ID                int64
	ChapterID         int64
	Title             string
	Position          int
	DurationInMinutes int
	Content           LessonContent
}

// Chapter is a top-level ordered grouping of lessons within a course.
// Positions are 1-based and contiguous among siblings.
type Chapter struct {
	ID       int64
	Title    string
	Position int
	Lessons  []Lesson
}

// PendingAttachment is a transient placeholder for a file staged before its
// owning lesson exists. It is consumed exactly once when the lesson is
// created, or discarded on cancel.
type PendingAttachment struct {
	ID       string
	Field    ContentType
	Filename string
	Size     int64
}
