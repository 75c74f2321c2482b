package syncsrvc

import (
	"regexp"
	"strings"

	"github.com/hrsync/backend/extract"
)

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// Sanitize lowercases s, collapses every run of non-alphanumeric
// characters to a single hyphen and trims leading/trailing hyphens.
func Sanitize(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// GeneratePath derives the deterministic target path from the
// configured template. Identical (slug, language) pairs always map to
// the same path for a given template.
func GeneratePath(template string, sub extract.ExtractedSubmission) string {
	lang := sub.Lang()
	slug := Sanitize(sub.ProblemSlug)
	filename := slug + "." + lang.FileExt

	path := strings.NewReplacer(
		"{category}", Sanitize(sub.Category),
		"{filename}", filename,
		"{slug}", slug,
		"{language}", sub.Language,
	).Replace(template)

	// empty substitutions leave double separators behind
	path = repeatedSlashes.ReplaceAllString(path, "/")
	return strings.Trim(path, "/")
}
