package http

import (
	"encoding/json"
	"net/http"

	"github.com/hrsync/backend/detect"
	"github.com/hrsync/backend/extract"
	"github.com/hrsync/backend/hackerrank"
)

// eventSubmit arms the detection machine. The shell calls this the
// moment the user clicks submit, with a best-effort page snapshot
// taken before the editor can be hidden or replaced.
func (httpserver *HttpServer) eventSubmit(w http.ResponseWriter, r *http.Request) {
	type submitEventRequest struct {
		SourceURL     string               `json:"source_url"`
		SessionCookie string               `json:"session_cookie"`
		Snapshot      extract.PageSnapshot `json:"snapshot"`
	}

	var request submitEventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if request.SourceURL == "" {
		writeJsonErrorResponse(w, "source_url is required",
			http.StatusBadRequest, "bad_request")
		return
	}

	if request.SessionCookie != "" {
		httpserver.hrClient.SetSession(request.SessionCookie)
	}

	armed := httpserver.machine.Arm(detect.ArmSignal{
		SourceURL: request.SourceURL,
		Snapshot:  request.Snapshot,
	})

	writeJsonSuccessResponse(w, map[string]any{
		"armed": armed,
		"state": httpserver.machine.CurrentState().String(),
	})
}

// eventMutation feeds verdict-region mutation text into the
// change-notification fallback.
func (httpserver *HttpServer) eventMutation(w http.ResponseWriter, r *http.Request) {
	type mutationEventRequest struct {
		SourceURL string `json:"source_url"`
		Region    string `json:"region"`
		Text      string `json:"text"`
	}

	var request mutationEventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	region := request.Region
	if region == "" {
		region = hackerrank.SlugFromURL(request.SourceURL)
	}
	if region == "" {
		writeJsonErrorResponse(w, "region or source_url is required",
			http.StatusBadRequest, "bad_request")
		return
	}

	httpserver.notifier.Publish(region, request.Text)
	writeJsonSuccessResponse(w, map[string]any{"delivered": true})
}
