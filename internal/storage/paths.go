package storage

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReviewImagePath builds a unique object path for a review image:
// reviews/<userID>[/<reviewID>]/<unixms>_<random>.<ext>
func ReviewImagePath(userID, reviewID, ext string, now time.Time) string {
	name := fmt.Sprintf("%d_%s.%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:13], strings.ToLower(ext))
	if reviewID != "" {
		return fmt.Sprintf("reviews/%s/%s/%s", userID, reviewID, name)
	}
	return fmt.Sprintf("reviews/%s/%s", userID, name)
}

// PathFromURL returns the object path behind a public URL produced by a
// store rooted at baseURL, or "" when the URL points elsewhere.
func PathFromURL(baseURL, rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return ""
	}
	if u.Host != base.Host || !strings.HasPrefix(u.Path, base.Path) {
		return ""
	}

	return strings.TrimPrefix(u.Path, base.Path)
}
