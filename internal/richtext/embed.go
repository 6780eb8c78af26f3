package richtext

import (
	"net/url"
	"regexp"
	"strings"
)

var tiktokVideoID = regexp.MustCompile(`/video/(\d+)`)

// TikTokPlayerURL returns the embeddable player URL for a TikTok video URL
func TikTokPlayerURL(rawURL string) (string, bool) {
	match := tiktokVideoID.FindStringSubmatch(rawURL)
	if match == nil {
		return "", false
	}
	return "https://www.tiktok.com/player/v1/" + match[1], true
}

// YouTubeEmbedURL returns the embed URL for a YouTube watch, short, embed
// or youtu.be link
func YouTubeEmbedURL(rawURL string) (string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	path := strings.Trim(parsed.Path, "/")

	var id string
	switch host {
	case "youtu.be":
		id = path
	case "youtube.com", "youtube-nocookie.com":
		switch {
		case path == "watch":
			id = parsed.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"):
			id = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "embed/"):
			id = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "live/"):
			id = strings.TrimPrefix(path, "live/")
		}
	}

	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return "https://www.youtube.com/embed/" + url.PathEscape(id), true
}
