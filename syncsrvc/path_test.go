package syncsrvc_test

import (
	"testing"

	"github.com/hrsync/backend/extract"
	"github.com/hrsync/backend/syncsrvc"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "two-sum", syncsrvc.Sanitize("Two Sum!!"))
	assert.Equal(t, "a-b-c", syncsrvc.Sanitize("  A__b--C  "))
	assert.Equal(t, "simple-array-sum", syncsrvc.Sanitize("simple-array-sum"))
	assert.Equal(t, "", syncsrvc.Sanitize("!!!"))
}

func TestGeneratePath(t *testing.T) {
	sub := extract.ExtractedSubmission{
		ProblemSlug: "Two Sum!!",
		Language:    "python3",
	}
	got := syncsrvc.GeneratePath("solutions/{language}/{slug}", sub)
	assert.Equal(t, "solutions/python3/two-sum", got)
}

func TestGeneratePathDefaultTemplate(t *testing.T) {
	sub := extract.ExtractedSubmission{
		ProblemSlug: "simple-array-sum",
		Language:    "python3",
		Category:    "algorithms",
	}
	got := syncsrvc.GeneratePath("hackerrank/{category}/{filename}", sub)
	assert.Equal(t, "hackerrank/algorithms/simple-array-sum.py", got)
}

func TestGeneratePathCollapsesEmptySubstitutions(t *testing.T) {
	sub := extract.ExtractedSubmission{
		ProblemSlug: "two-sum",
		Language:    "go",
	}
	got := syncsrvc.GeneratePath("hackerrank/{category}/{filename}", sub)
	assert.Equal(t, "hackerrank/two-sum.go", got)
}

func TestGeneratePathIdempotent(t *testing.T) {
	a := extract.ExtractedSubmission{
		ProblemSlug:  "two-sum",
		Language:     "python3",
		Category:     "algorithms",
		ProblemTitle: "Two Sum",
	}
	b := a
	b.ProblemTitle = "Another Title"
	b.Code = "different code"

	template := "hackerrank/{category}/{filename}"
	assert.Equal(t,
		syncsrvc.GeneratePath(template, a),
		syncsrvc.GeneratePath(template, b))
}

func TestGeneratePathUnknownLanguageUsesDefaultExt(t *testing.T) {
	sub := extract.ExtractedSubmission{
		ProblemSlug: "two-sum",
		Language:    "brainfuck",
	}
	got := syncsrvc.GeneratePath("{slug}/{filename}", sub)
	assert.Equal(t, "two-sum/two-sum.txt", got)
}
