// Package authoring models the lesson create/edit workflow: a draft that
// captures form fields, validates them against the active content type, and
// tracks the submit lifecycle.
package authoring

import (
	"fmt"
	"strings"

	"app/internal/model"
)

// State is the draft lifecycle position.
type State string

const (
	StateIdle       State = "idle"
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ValidationError blocks submission; it is shown next to the offending field
// and never reaches the network layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Draft carries the editable fields of a lesson. All four content fields keep
// their values while editing so switching the content type back and forth
// loses nothing; only the field matching ActiveType is validated and
// submitted.
type Draft struct {
	LessonID  int64 // zero for a new lesson
	CourseID  int64
	ChapterID int64

	Title             string
	ActiveType        model.ContentType
	VideoURL          string
	TextBody          string
	DocumentURL       string
	SlideURL          string
	DurationInMinutes int
	Position          int

	// Attachment is a staged file to upload once the lesson exists. While one
	// is staged, the matching URL field is ignored.
	Attachment *model.PendingAttachment

	state State
}

// NewDraft starts a draft for a new lesson. The position is pre-computed as
// one past the chapter's current sibling count.
func NewDraft(courseID, chapterID int64, siblingCount int) *Draft {
	return &Draft{
		CourseID:   courseID,
		ChapterID:  chapterID,
		ActiveType: model.ContentTypeVideo,
		Position:   siblingCount + 1,
		state:      StateEditing,
	}
}

// DraftFromLesson starts a draft hydrated from an existing lesson, resolving
// the active content field from its content type.
func DraftFromLesson(courseID int64, l *model.Lesson) *Draft {
	d := &Draft{
		LessonID:          l.ID,
		CourseID:          courseID,
		ChapterID:         l.ChapterID,
		Title:             l.Title,
		DurationInMinutes: l.DurationInMinutes,
		Position:          l.Position,
		state:             StateEditing,
	}
	if l.Content == nil {
		d.ActiveType = model.ContentTypeVideo
		return d
	}
	d.ActiveType = l.Content.ContentType()
	switch content := l.Content.(type) {
	case model.VideoContent:
		d.VideoURL = content.URL
	case model.TextContent:
		d.TextBody = content.Body
	case model.DocumentContent:
		d.DocumentURL = content.URL
	case model.SlideContent:
		d.SlideURL = content.URL
	}
	return d
}

// State returns the draft's lifecycle position.
func (d *Draft) State() State {
	if d.state == "" {
		return StateIdle
	}
	return d.state
}

func (d *Draft) beginSubmit() { d.state = StateSubmitting }
func (d *Draft) succeed()     { d.state = StateSucceeded }

// fail leaves every field intact so the user can correct and retry.
func (d *Draft) fail() { d.state = StateFailed }

// activeRef returns the content value for the active type.
func (d *Draft) activeRef() string {
	switch d.ActiveType {
	case model.ContentTypeVideo:
		return d.VideoURL
	case model.ContentTypeText:
		return d.TextBody
	case model.ContentTypeDocument:
		return d.DocumentURL
	case model.ContentTypeSlide:
		return d.SlideURL
	}
	return ""
}

// Validate enforces the pre-submit rules. It returns the first violation so
// it can be shown inline.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if d.ChapterID == 0 {
		return &ValidationError{Field: "chapterId", Message: "a chapter must be selected"}
	}
	if !d.ActiveType.Valid() {
		return &ValidationError{Field: "contentType", Message: "unsupported content type"}
	}
	if d.DurationInMinutes <= 0 {
		return &ValidationError{Field: "durationInMinutes", Message: "duration must be greater than 0"}
	}
	if d.Position < 1 {
		return &ValidationError{Field: "position", Message: "position must be at least 1"}
	}
	if d.Attachment != nil {
		if d.Attachment.Field != d.ActiveType {
			return &ValidationError{Field: "contentType", Message: fmt.Sprintf("staged file targets %s content", d.Attachment.Field)}
		}
		return nil
	}
	if strings.TrimSpace(d.activeRef()) == "" {
		return &ValidationError{Field: strings.ToLower(string(d.ActiveType)), Message: "content is required unless a file is staged"}
	}
	return nil
}

// Lesson builds the lesson to submit: only the active content field is
// carried, trimmed title, everything else as entered. When an attachment is
// staged the content reference starts empty and is patched in after upload.
func (d *Draft) Lesson() *model.Lesson {
	ref := d.activeRef()
	if d.Attachment != nil {
		ref = ""
	}
	return &model.Lesson{
		ID:                d.LessonID,
		ChapterID:         d.ChapterID,
		Title:             strings.TrimSpace(d.Title),
		Position:          d.Position,
		DurationInMinutes: d.DurationInMinutes,
		Content:           model.NewContent(d.ActiveType, ref),
	}
}
