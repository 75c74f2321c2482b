package http

import (
	"net/http"
	"sort"

	"github.com/hrsync/backend/logger"
	"github.com/hrsync/backend/plang"
)

// historyList returns all synchronized submissions, newest first.
func (httpserver *HttpServer) historyList(w http.ResponseWriter, r *http.Request) {
	recs, err := httpserver.history.List(r.Context())
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SubmittedAt.After(recs[j].SubmittedAt)
	})
	writeJsonSuccessResponse(w, recs)
}

// languagesList returns the canonical language table for the shell's
// settings screen.
func (httpserver *HttpServer) languagesList(w http.ResponseWriter, r *http.Request) {
	type languageResponse struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
		FileExt  string `json:"file_ext"`
		MonacoID string `json:"monaco_id"`
	}

	langs := plang.ListLanguages()
	response := make([]languageResponse, 0, len(langs))
	for _, lang := range langs {
		response = append(response, languageResponse{
			ID:       lang.ID,
			FullName: lang.FullName,
			FileExt:  lang.FileExt,
			MonacoID: lang.MonacoID,
		})
	}
	writeJsonSuccessResponse(w, response)
}
