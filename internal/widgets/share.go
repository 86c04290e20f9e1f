// Package widgets holds the server side of the page widgets that sit next to
// the directory: share links and calendar downloads.
package widgets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Share platforms.
const (
	PlatformFacebook = "facebook"
	PlatformTwitter  = "twitter"
	PlatformEmail    = "email"
)

// ErrUnknownPlatform is returned for a platform with no share URL.
var ErrUnknownPlatform = errors.New("unknown share platform")

// ShareURL builds the share link for pageURL and title on platform.
func ShareURL(platform, pageURL, title string) (string, error) {
	u := encodeComponent(pageURL)
	t := encodeComponent(title)
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case PlatformFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + u, nil
	case PlatformTwitter:
		return fmt.Sprintf("https://twitter.com/intent/tweet?url=%s&text=%s", u, t), nil
	case PlatformEmail:
		return fmt.Sprintf("mailto:?subject=%s&body=%s", t, u), nil
	default:
		return "", fmt.Errorf("%q: %w", platform, ErrUnknownPlatform)
	}
}

// encodeComponent escapes s for use as a query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
