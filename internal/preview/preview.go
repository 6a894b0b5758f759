// Package preview selects how a lesson is presented to a viewer. Render is
// pure: it maps a lesson to a view descriptor and never touches the network.
package preview

import (
	"net/url"
	"strings"

	"app/internal/model"
)

// Kind discriminates the rendering strategy.
type Kind string

const (
	// KindEmbed plays a hosted-platform video in an embedded player.
	KindEmbed Kind = "embed"
	// KindVideo plays a direct video URL natively.
	KindVideo Kind = "video"
	// KindMarkup renders an inline markup body. The body is trusted as-is;
	// sanitization is the upstream's responsibility.
	KindMarkup Kind = "markup"
	// KindFrame shows a document or slide deck in an inline viewer.
	KindFrame Kind = "frame"
	// KindUnavailable stands in when the active content is missing.
	KindUnavailable Kind = "unavailable"
)

// ViewDescriptor tells a client how to present a lesson.
type ViewDescriptor struct {
	Kind   Kind   `json:"kind"`
	URL    string `json:"url,omitempty"`
	Markup string `json:"markup,omitempty"`
}

const (
	documentDownloadSegment = "/api/files/lessons/documents/"
	documentViewSegment     = "/api/files/view/documents/"
	slideDownloadSegment    = "/api/files/lessons/slides/"
	slideViewSegment        = "/api/files/view/slides/"
)

// Render dispatches on the lesson's content type.
func Render(l *model.Lesson) ViewDescriptor {
	if l.Content == nil || l.Content.Ref() == "" {
		return ViewDescriptor{Kind: KindUnavailable}
	}
	switch content := l.Content.(type) {
	case model.VideoContent:
		if IsYouTubeURL(content.URL) {
			return ViewDescriptor{Kind: KindEmbed, URL: YouTubeEmbedURL(content.URL)}
		}
		return ViewDescriptor{Kind: KindVideo, URL: content.URL}
	case model.TextContent:
		return ViewDescriptor{Kind: KindMarkup, Markup: content.Body}
	case model.DocumentContent:
		return ViewDescriptor{Kind: KindFrame, URL: viewerURL(content.URL, documentDownloadSegment, documentViewSegment)}
	case model.SlideContent:
		return ViewDescriptor{Kind: KindFrame, URL: viewerURL(content.URL, slideDownloadSegment, slideViewSegment)}
	}
	return ViewDescriptor{Kind: KindUnavailable}
}

// viewerURL rewrites a stored download URL into its inline-viewer form. When
// the known path segment is absent the viewer URL is reconstructed from the
// filename alone.
func viewerURL(raw, downloadSegment, viewSegment string) string {
	if strings.Contains(raw, downloadSegment) {
		return strings.Replace(raw, downloadSegment, viewSegment, 1)
	}
	parts := strings.Split(raw, "/")
	return viewSegment + parts[len(parts)-1]
}

var youTubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// IsYouTubeURL reports whether raw points at a YouTube video in any of its
// common URL forms.
func IsYouTubeURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return youTubeHosts[u.Host]
}

// YouTubeEmbedURL converts a YouTube watch/short/embed URL into the embed
// player form. Unrecognized YouTube URLs are returned unchanged.
func YouTubeEmbedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !youTubeHosts[u.Host] {
		return raw
	}
	var id string
	switch {
	case u.Host == "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	case strings.HasPrefix(u.Path, "/watch"):
		id = u.Query().Get("v")
	case strings.HasPrefix(u.Path, "/embed/"):
		id = strings.TrimPrefix(u.Path, "/embed/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		id = strings.TrimPrefix(u.Path, "/shorts/")
	}
	if id == "" {
		return raw
	}
	return "https://www.youtube.com/embed/" + id
}
