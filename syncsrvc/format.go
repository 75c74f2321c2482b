package syncsrvc

import (
	"fmt"
	"strings"
	"time"

	"github.com/hrsync/backend/extract"
)

// provenanceMarker identifies files written by this service.
const provenanceMarker = "Synced via hrsync"

// FormatContent prepends a metadata header in the language's own
// comment syntax. The submitted code follows unmodified.
func FormatContent(sub extract.ExtractedSubmission) string {
	lang := sub.Lang()
	header := lang.WrapComment([]string{
		"Problem: " + sub.ProblemTitle,
		"Language: " + lang.FullName,
		"Submitted: " + sub.Timestamp.UTC().Format(time.RFC3339),
		"Source: " + sub.SourceURL,
		provenanceMarker,
	})

	code := sub.Code
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}
	return header + "\n" + code
}

// CommitMessage builds the remote write message for a submission.
func CommitMessage(sub extract.ExtractedSubmission) string {
	return fmt.Sprintf("Add solution for %s (%s)", sub.ProblemTitle, sub.Language)
}
