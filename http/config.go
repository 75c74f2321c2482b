package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hrsync/backend/conf"
	"github.com/hrsync/backend/logger"
)

type configResponse struct {
	CredentialSet bool   `json:"credential_set"`
	Repository    string `json:"repository"`
	Branch        string `json:"branch"`
	PathTemplate  string `json:"path_template"`
}

// configGet returns the persisted configuration. The credential is
// never echoed back, only whether one is set.
func (httpserver *HttpServer) configGet(w http.ResponseWriter, r *http.Request) {
	cfg, err := httpserver.confStore.Current()
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}
	writeJsonSuccessResponse(w, configResponse{
		CredentialSet: cfg.Credential != "",
		Repository:    cfg.Repository,
		Branch:        cfg.Branch,
		PathTemplate:  cfg.PathTemplate,
	})
}

func (httpserver *HttpServer) configPut(w http.ResponseWriter, r *http.Request) {
	type configPutRequest struct {
		Credential   string `json:"credential"`
		Repository   string `json:"repository"`
		Branch       string `json:"branch"`
		PathTemplate string `json:"path_template"`
	}

	var request configPutRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	current, err := httpserver.confStore.Current()
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	cfg := conf.Config{
		Credential:   strings.TrimSpace(request.Credential),
		Repository:   strings.TrimSpace(request.Repository),
		Branch:       strings.TrimSpace(request.Branch),
		PathTemplate: strings.TrimSpace(request.PathTemplate),
	}
	// an empty credential keeps the stored one so the shell can update
	// the repository without re-entering the token
	if cfg.Credential == "" {
		cfg.Credential = current.Credential
	}

	if err := httpserver.confStore.Save(cfg); err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}
	httpserver.configGet(w, r)
}

// configTest runs the read-only configuration self-test: credential
// validation plus a repository reachability probe. Nothing is written.
func (httpserver *HttpServer) configTest(w http.ResponseWriter, r *http.Request) {
	cfg, err := httpserver.confStore.Current()
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	store := httpserver.newStore(cfg)

	credentialOK, err := store.ValidateCredential(r.Context())
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	info, err := store.TestRepository(r.Context())
	if err != nil {
		handleJsonSrvcError(logger.FromContext(r.Context()), w, err)
		return
	}

	writeJsonSuccessResponse(w, map[string]any{
		"credential_ok":  credentialOK,
		"reachable":      info.Reachable,
		"canonical_name": info.CanonicalName,
		"default_branch": info.DefaultBranch,
	})
}
