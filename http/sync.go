package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/hrsync/backend/extract"
	"github.com/hrsync/backend/hackerrank"
	"github.com/hrsync/backend/logger"
	"github.com/hrsync/backend/plang"
)

// syncManual re-synchronizes a submission supplied by the shell, the
// retry path after a failed or skipped automatic sync.
func (httpserver *HttpServer) syncManual(w http.ResponseWriter, r *http.Request) {
	type syncRequest struct {
		Code         string `json:"code"`
		Language     string `json:"language"`
		ProblemTitle string `json:"problem_title"`
		ProblemSlug  string `json:"problem_slug"`
		Category     string `json:"category"`
		SourceURL    string `json:"source_url"`
	}

	var request syncRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if request.Code == "" || request.ProblemSlug == "" {
		writeJsonErrorResponse(w, "code and problem_slug are required",
			http.StatusBadRequest, "bad_request")
		return
	}

	language := plang.Normalize(request.Language)
	if !plang.IsKnown(language) {
		language = plang.DefaultLangID
	}
	title := request.ProblemTitle
	if title == "" {
		title = hackerrank.TitleFromSlug(request.ProblemSlug)
	}
	category := request.Category
	if category == "" {
		category = hackerrank.DefaultCategory
	}

	sub := extract.ExtractedSubmission{
		Code:         extract.CleanLeadingArtifact(request.Code),
		Language:     language,
		ProblemTitle: title,
		ProblemSlug:  request.ProblemSlug,
		Category:     category,
		Timestamp:    time.Now().UTC(),
		SourceURL:    request.SourceURL,
	}

	ctx := logger.WithSlug(r.Context(), sub.ProblemSlug)
	ref, err := httpserver.syncSrvc.Sync(ctx, sub)
	if err != nil {
		handleJsonSrvcError(logger.FromContext(ctx), w, err)
		return
	}
	writeJsonSuccessResponse(w, ref)
}
