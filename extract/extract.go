package extract

import (
	"strings"
	"time"

	"github.com/hrsync/backend/hackerrank"
	"github.com/hrsync/backend/plang"
)

// FromSnapshot builds an ExtractedSubmission from a scraped page
// snapshot. It is the scrape-based fallback for when no API record is
// available.
func FromSnapshot(snap PageSnapshot, at time.Time) (*ExtractedSubmission, error) {
	code, err := Code(snap)
	if err != nil {
		return nil, err
	}
	slug := hackerrank.SlugFromURL(snap.URL)
	return &ExtractedSubmission{
		Code:         code,
		Language:     Language(snap),
		ProblemTitle: Title(snap),
		ProblemSlug:  slug,
		Category:     hackerrank.CategoryFromURL(snap.URL),
		Timestamp:    at.UTC(),
		SourceURL:    snap.URL,
	}, nil
}

// FromAPIRecord builds an ExtractedSubmission from a polled submission
// record. This is the canonical extraction path; the snapshot fills
// gaps the record may have.
func FromAPIRecord(sub *hackerrank.Submission, snap PageSnapshot, at time.Time) (*ExtractedSubmission, error) {
	code := strings.TrimSpace(sub.Code)
	if code == "" {
		var err error
		code, err = Code(snap)
		if err != nil {
			return nil, err
		}
	} else {
		code = CleanLeadingArtifact(sub.Code)
	}

	lang := ""
	if id, ok := acceptCandidate(sub.Language); ok {
		lang = id
	} else {
		lang = Language(snap)
	}

	slug := hackerrank.SlugFromURL(snap.URL)
	title := sub.Name
	if title == "" {
		title = Title(snap)
	}
	category := sub.Track.Slug
	if category == "" {
		category = hackerrank.CategoryFromURL(snap.URL)
	}

	return &ExtractedSubmission{
		Code:         code,
		Language:     lang,
		ProblemTitle: title,
		ProblemSlug:  slug,
		Category:     category,
		Timestamp:    at.UTC(),
		SourceURL:    snap.URL,
	}, nil
}

// Title extracts the problem title: page heading first, slug converted
// to title case otherwise.
func Title(snap PageSnapshot) string {
	if h := strings.TrimSpace(snap.Heading); h != "" {
		return h
	}
	return hackerrank.TitleFromSlug(hackerrank.SlugFromURL(snap.URL))
}

// Lang resolves the canonical language metadata for an extraction.
func (e ExtractedSubmission) Lang() plang.ProgrammingLang {
	return plang.GetLanguageByIDOrDefault(e.Language)
}
