package gitstore

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hrsync/backend/srvcerror"
)

const DefaultAPIBaseURL = "https://api.github.com"

// GithubStore implements Store against the GitHub contents API.
type GithubStore struct {
	httpClient *http.Client
	baseURL    string
	token      string
	owner      string
	repo       string
}

func NewGithubStore(token, owner, repo string) *GithubStore {
	return NewGithubStoreWithBaseURL(DefaultAPIBaseURL, token, owner, repo)
}

func NewGithubStoreWithBaseURL(baseURL, token, owner, repo string) *GithubStore {
	return &GithubStore{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		token:      token,
		owner:      owner,
		repo:       repo,
	}
}

func (g *GithubStore) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, srvcerror.ErrNetworkError().SetDebug(err)
	}
	return resp, nil
}

// ValidateCredential implements Store.
func (g *GithubStore) ValidateCredential(ctx context.Context) (bool, error) {
	resp, err := g.do(ctx, http.MethodGet, g.baseURL+"/user", nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected status %d validating credential", resp.StatusCode)
	}
}

// TestRepository implements Store.
func (g *GithubStore) TestRepository(ctx context.Context) (*RepoInfo, error) {
	repoURL := fmt.Sprintf("%s/repos/%s/%s", g.baseURL, g.owner, g.repo)
	resp, err := g.do(ctx, http.MethodGet, repoURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			FullName      string `json:"full_name"`
			DefaultBranch string `json:"default_branch"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode repository response: %w", err)
		}
		return &RepoInfo{
			Reachable:     true,
			CanonicalName: body.FullName,
			DefaultBranch: body.DefaultBranch,
		}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, srvcerror.ErrCredentialInvalid()
	case http.StatusNotFound:
		return nil, srvcerror.ErrRepositoryNotFound()
	default:
		return nil, fmt.Errorf("unexpected status %d probing repository", resp.StatusCode)
	}
}

func (g *GithubStore) contentsURL(path string) string {
	// path is already sanitized and uses plain slash separators
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		g.baseURL, g.owner, g.repo, path)
}

// GetCurrentRevision implements Store.
func (g *GithubStore) GetCurrentRevision(ctx context.Context, path string, branch string) (*string, error) {
	reqURL := g.contentsURL(path) + "?ref=" + url.QueryEscape(branch)
	resp, err := g.do(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			SHA string `json:"sha"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, fmt.Errorf("failed to decode contents response: %w", err)
		}
		return &body.SHA, nil
	case http.StatusNotFound:
		return nil, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, srvcerror.ErrCredentialInvalid()
	default:
		return nil, fmt.Errorf("unexpected status %d reading revision of %s", resp.StatusCode, path)
	}
}

// CreateOrUpdate implements Store.
func (g *GithubStore) CreateOrUpdate(ctx context.Context, path string, content []byte, message string, branch string, revision *string) (*RemoteRef, error) {
	payload := map[string]any{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
		"branch":  branch,
	}
	if revision != nil {
		payload["sha"] = *revision
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal write request: %w", err)
	}

	resp, err := g.do(ctx, http.MethodPut, g.contentsURL(path), body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var respBody struct {
			Content struct {
				SHA     string `json:"sha"`
				HTMLURL string `json:"html_url"`
			} `json:"content"`
			Commit struct {
				SHA string `json:"sha"`
			} `json:"commit"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&respBody); err != nil {
			return nil, fmt.Errorf("failed to decode write response: %w", err)
		}
		return &RemoteRef{
			HTMLURL:    respBody.Content.HTMLURL,
			ContentSHA: respBody.Content.SHA,
			CommitSHA:  respBody.Commit.SHA,
		}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, srvcerror.ErrCredentialInvalid()
	case http.StatusNotFound:
		return nil, srvcerror.ErrRepositoryNotFound()
	case http.StatusConflict, http.StatusUnprocessableEntity:
		// 409 is a sha mismatch; 422 is a missing sha for an existing
		// path. Both mean the caller's revision assertion failed.
		return nil, srvcerror.ErrWriteConflict().
			SetDebug(fmt.Errorf("status %d writing %s", resp.StatusCode, path))
	default:
		return nil, fmt.Errorf("unexpected status %d writing %s", resp.StatusCode, path)
	}
}
