package media

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	shortLinkRe = regexp.MustCompile(`youtu\.be/([^?&/]+)`)
	watchLinkRe = regexp.MustCompile(`youtube\.com/watch\?v=([^&]+)`)
	thumbnailRe = regexp.MustCompile(`img\.youtube\.com/vi/([^/]+)`)
)

// ExtractVideoID resolves a media reference to a playable identifier.
// Recognized shapes are the short-link and canonical watch-link forms;
// anything else passes through as a best-effort identifier, since
// attempting playback beats failing outright.
func ExtractVideoID(ref string) string {
	if ref == "" {
		return ""
	}

	// Already a bare identifier.
	if !strings.Contains(ref, "/") && !strings.Contains(ref, ".") {
		return ref
	}

	if m := shortLinkRe.FindStringSubmatch(ref); m != nil {
		return m[1]
	}
	if m := watchLinkRe.FindStringSubmatch(ref); m != nil {
		return m[1]
	}

	// Fallback: a v= query parameter on any URL shape.
	if u, err := url.Parse(ref); err == nil {
		if v := u.Query().Get("v"); v != "" {
			return v
		}
	}

	return ref
}

// VideoIDFromThumbnail recovers the identifier from a thumbnail URL of
// the img.youtube.com/vi/<id>/... form. Returns "" when the shape is
// not recognized.
func VideoIDFromThumbnail(thumb string) string {
	if m := thumbnailRe.FindStringSubmatch(thumb); m != nil {
		return m[1]
	}
	return ""
}
