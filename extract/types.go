package extract

import "time"

// ExtractedSubmission is the immutable artifact produced once per
// accepted verdict. It is handed off to the sync service and discarded
// by the detection cycle that created it.
type ExtractedSubmission struct {
	Code         string    `json:"code"`
	Language     string    `json:"language"` // canonical id
	ProblemTitle string    `json:"problem_title"`
	ProblemSlug  string    `json:"problem_slug"`
	Category     string    `json:"category"`
	Timestamp    time.Time `json:"timestamp"`
	SourceURL    string    `json:"source_url"`
}

// RenderedLine is one visible editor line as reported by the shell.
// Lines arrive unordered and may repeat due to editor virtualization;
// the vertical pixel offset identifies the real line.
type RenderedLine struct {
	OffsetPx int    `json:"offset_px"`
	Text     string `json:"text"`
}

// PageSnapshot carries everything the shell could scrape from the live
// page at one point in time. Any field may be empty; the extractor
// works through its fallback chains.
type PageSnapshot struct {
	URL              string         `json:"url"`
	Heading          string         `json:"heading"`
	EditorValue      string         `json:"editor_value"`       // structured editor API
	RenderedLines    []RenderedLine `json:"rendered_lines"`     // virtualized view
	TextareaValue    string         `json:"textarea_value"`     // plain input field
	LanguageSelector string         `json:"language_selector"`  // visible selector value
	LanguageDataAttr string         `json:"language_data_attr"` // data attribute
	EditorLanguageID string         `json:"editor_language_id"` // editor mode id
}
