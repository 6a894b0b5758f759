package gateway

import "app/internal/model"

// Wire shapes of the upstream API. The upstream speaks a content-type
// discriminator plus four optional payload fields; the domain model carries a
// tagged union instead, so the translation lives here and nowhere else.

type chapterWire struct {
	ID       int64        `json:"id"`
	Title    string       `json:"title"`
	Position int          `json:"position"`
	Lessons  []lessonWire `json:"lessons"`
}

func (w chapterWire) toModel() model.Chapter {
	lessons := make([]model.Lesson, 0, len(w.Lessons))
	for _, lw := range w.Lessons {
		lessons = append(lessons, lw.toModel(w.ID))
	}
	return model.Chapter{
		ID:       w.ID,
		Title:    w.Title,
		Position: w.Position,
		Lessons:  lessons,
	}
}

type lessonWire struct {
	ID                int64  `json:"id,omitempty"`
	Title             string `json:"title"`
	ContentType       string `json:"contentType"`
	VideoURL          string `json:"videoUrl,omitempty"`
	Content           string `json:"content,omitempty"`
	DocumentURL       string `json:"documentUrl,omitempty"`
	SlideURL          string `json:"slideUrl,omitempty"`
	DurationInMinutes int    `json:"durationInMinutes"`
	Position          int    `json:"position"`
}

// lessonWireFromModel flattens the content union into the upstream shape.
// Only the field matching the lesson's content type is ever populated.
func lessonWireFromModel(l *model.Lesson) lessonWire {
	w := lessonWire{
		ID:                l.ID,
		Title:             l.Title,
		DurationInMinutes: l.DurationInMinutes,
		Position:          l.Position,
	}
	if l.Content == nil {
		return w
	}
	w.ContentType = string(l.Content.ContentType())
	switch content := l.Content.(type) {
	case model.VideoContent:
		w.VideoURL = content.URL
	case model.TextContent:
		w.Content = content.Body
	case model.DocumentContent:
		w.DocumentURL = content.URL
	case model.SlideContent:
		w.SlideURL = content.URL
	}
	return w
}

// toModel resolves the active payload field from the discriminator. Stray
// values in the other fields are dropped; the discriminator is authoritative.
func (w lessonWire) toModel(chapterID int64) model.Lesson {
	l := model.Lesson{
		ID:                w.ID,
		ChapterID:         chapterID,
		Title:             w.Title,
		Position:          w.Position,
		DurationInMinutes: w.DurationInMinutes,
	}
	switch model.ContentType(w.ContentType) {
	case model.ContentTypeVideo:
		l.Content = model.VideoContent{URL: w.VideoURL}
	case model.ContentTypeText:
		l.Content = model.TextContent{Body: w.Content}
	case model.ContentTypeDocument:
		l.Content = model.DocumentContent{URL: w.DocumentURL}
	case model.ContentTypeSlide:
		l.Content = model.SlideContent{URL: w.SlideURL}
	}
	return l
}
