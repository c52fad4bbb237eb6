// Package media holds the keyword API registry of the img and vd commands and
// the rules for finding the media URL in an API response.
package media

import (
	"strings"

	"userbot/internal/domain/plugin"
)

// Kind describes one flavour of media command.
type Kind struct {
	Command string
	// Noun is the word used in chat texts, e.g. 图片.
	Noun   string
	Emoji  string
	Upload plugin.MediaKind
	// ContentTypes are the Content-Type prefixes that mark a direct media
	// response.
	ContentTypes []string
	Extensions   []string
	// JSONKeys are tried in order when the API answers with JSON.
	JSONKeys []string
	FileExt  string
}

var (
	Image = Kind{
		Command:      "img",
		Noun:         "图片",
		Emoji:        "🖼",
		Upload:       plugin.MediaPhoto,
		ContentTypes: []string{"image/"},
		Extensions:   []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
		JSONKeys:     []string{"url", "data", "imgurl", "img_url", "image", "pic", "src"},
		FileExt:      ".jpg",
	}
	Video = Kind{
		Command:      "vd",
		Noun:         "视频",
		Emoji:        "🎬",
		Upload:       plugin.MediaVideo,
		ContentTypes: []string{"video/", "application/octet-stream"},
		Extensions:   []string{".mp4", ".mov", ".avi", ".mkv", ".flv", ".webm"},
		JSONKeys:     []string{"url", "data", "videourl", "video_url", "video", "src"},
		FileExt:      ".mp4",
	}
)

// StoreKey is where the kind's API registry is persisted.
func (k Kind) StoreKey() string {
	return k.Command + ".apis"
}

// IsDirect reports whether a response with this content type and final URL
// is the media itself rather than a description of where to find it.
func (k Kind) IsDirect(contentType, finalURL string) bool {
	for _, prefix := range k.ContentTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	lower := strings.ToLower(finalURL)
	for _, ext := range k.Extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
