package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/hrsync/backend/srvcerror"
)

// Code extracts the submitted source from a page snapshot, trying each
// strategy in order: structured editor value, reconstruction from
// rendered view lines, plain input-field value.
func Code(snap PageSnapshot) (string, error) {
	if v := strings.TrimSpace(snap.EditorValue); v != "" {
		return CleanLeadingArtifact(snap.EditorValue), nil
	}
	if code := reconstructFromLines(snap.RenderedLines); strings.TrimSpace(code) != "" {
		return CleanLeadingArtifact(code), nil
	}
	if v := strings.TrimSpace(snap.TextareaValue); v != "" {
		return CleanLeadingArtifact(snap.TextareaValue), nil
	}
	return "", srvcerror.ErrExtractionFailed()
}

// reconstructFromLines rebuilds source text from virtualized editor
// lines. Lines are keyed by vertical pixel offset so repeated renders
// of the same line collapse to one, then sorted by offset and joined.
func reconstructFromLines(lines []RenderedLine) string {
	if len(lines) == 0 {
		return ""
	}
	byOffset := make(map[int]string, len(lines))
	for _, line := range lines {
		byOffset[line.OffsetPx] = dedupeNestedMarkup(line.Text)
	}
	offsets := make([]int, 0, len(byOffset))
	for off := range byOffset {
		offsets = append(offsets, off)
	}
	sort.Ints(offsets)
	parts := make([]string, 0, len(offsets))
	for _, off := range offsets {
		parts = append(parts, byOffset[off])
	}
	return strings.Join(parts, "\n")
}

// dedupeNestedMarkup undoes the text doubling caused by reading both a
// wrapper element and its nested children: a line whose text is
// exactly its first half repeated twice is halved.
func dedupeNestedMarkup(text string) string {
	for len(text) >= 2 && len(text)%2 == 0 {
		half := text[:len(text)/2]
		if half != text[len(text)/2:] {
			break
		}
		text = half
	}
	return text
}

// leadingDigitRun matches a run of ten or more digits at the very
// start of the text. Such runs are concatenated line numbers rendered
// into the scraped view, not part of the code.
var leadingDigitRun = regexp.MustCompile(`^\d{10,}`)

// CleanLeadingArtifact strips a leading line-number artifact, either
// immediately before a shebang or at the very start of the text.
// Digits anywhere else are left untouched.
func CleanLeadingArtifact(code string) string {
	if loc := leadingDigitRun.FindStringIndex(code); loc != nil {
		return code[loc[1]:]
	}
	return code
}
