package detect

import "strings"

// Verdict is the terminal classification of a submission attempt.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictAccepted
	VerdictRejected
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccepted:
		return "accepted"
	case VerdictRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// The classifier is a heuristic text match inherited from the page it
// watches; the keyword sets are deliberately lenient. Rejection always
// takes precedence so a message containing both sets is rejected.

var rejectionKeywords = []string{
	"wrong answer",
	"compilation error",
	"compile error",
	"runtime error",
	"time limit",
	"timed out",
	"segmentation fault",
	"abort called",
	"terminated due to",
	"failed",
}

var acceptanceKeywords = []string{
	"accepted",
	"congratulations",
	"you solved",
	"all test cases passed",
	"success",
}

// acceptedStatusCode is the numeric code the submission-status
// endpoint reports for an accepted run.
const acceptedStatusCode = 2

// ClassifyText classifies free-form verdict text.
func ClassifyText(text string) Verdict {
	lowered := strings.ToLower(text)
	for _, kw := range rejectionKeywords {
		if strings.Contains(lowered, kw) {
			return VerdictRejected
		}
	}
	for _, kw := range acceptanceKeywords {
		if strings.Contains(lowered, kw) {
			return VerdictAccepted
		}
	}
	return VerdictUnknown
}

var pendingKeywords = []string{"queue", "processing", "running"}

// IsPending reports whether the status text describes a non-terminal
// run still being judged.
func IsPending(status string) bool {
	lowered := strings.ToLower(status)
	for _, kw := range pendingKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// ClassifyRecord classifies a polled submission record. The status
// text is authoritative; the numeric code breaks ties when the text is
// inconclusive.
func ClassifyRecord(status string, statusCode int) Verdict {
	if IsPending(status) {
		return VerdictUnknown
	}
	if v := ClassifyText(status); v != VerdictUnknown {
		return v
	}
	if statusCode == acceptedStatusCode {
		return VerdictAccepted
	}
	if statusCode > 0 {
		return VerdictRejected
	}
	return VerdictUnknown
}
