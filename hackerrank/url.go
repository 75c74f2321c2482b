package hackerrank

import (
	"net/url"
	"strings"
)

// routeMarker is the path segment that precedes a challenge slug.
const routeMarker = "challenges"

// knownTracks are taxonomy terms that may appear as URL path segments.
var knownTracks = map[string]bool{
	"algorithms":           true,
	"data-structures":      true,
	"mathematics":          true,
	"sql":                  true,
	"databases":            true,
	"regex":                true,
	"functional-programming": true,
	"ai":                   true,
	"c":                    true,
	"cpp":                  true,
	"java":                 true,
	"python":               true,
	"ruby":                 true,
	"shell":                true,
	"security":             true,
	"distributed-systems":  true,
	"general-programming":  true,
	"tutorials":            true,
}

// pageTypeMarkers are trailing segments that describe the page kind
// rather than content identity.
var pageTypeMarkers = map[string]bool{
	"problem":     true,
	"submissions": true,
	"leaderboard": true,
	"discussions": true,
	"editorial":   true,
	"forum":       true,
	"copy-from":   true,
}

// DefaultCategory is used when no taxonomy term can be derived.
const DefaultCategory = "others"

func pathSegments(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	parts := strings.Split(u.Path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// SlugFromURL parses the challenge slug from the path segment that
// follows the route marker. Returns "" when the URL is not a
// challenge page.
func SlugFromURL(rawURL string) string {
	segments := pathSegments(rawURL)
	for i, seg := range segments {
		if seg == routeMarker && i+1 < len(segments) {
			return segments[i+1]
		}
	}
	return ""
}

// CategoryFromURL derives a taxonomy bucket from the URL path. The
// first known track term wins; failing that, the segment after the
// route marker is used unless it is a page-type marker; failing that,
// the default bucket.
func CategoryFromURL(rawURL string) string {
	segments := pathSegments(rawURL)
	for _, seg := range segments {
		if knownTracks[strings.ToLower(seg)] {
			return strings.ToLower(seg)
		}
	}
	for i, seg := range segments {
		if seg == routeMarker && i+1 < len(segments) {
			next := segments[i+1]
			if !pageTypeMarkers[strings.ToLower(next)] {
				return strings.ToLower(next)
			}
		}
	}
	return DefaultCategory
}

// LanguageFromURL reads the language query parameter, if present.
func LanguageFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Query().Get("language")
}

// TitleFromSlug converts a slug to title case: hyphens become spaces
// and each word is capitalized.
func TitleFromSlug(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
