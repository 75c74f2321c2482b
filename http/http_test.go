package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrsync/backend/auth"
	"github.com/hrsync/backend/conf"
	"github.com/hrsync/backend/detect"
	"github.com/hrsync/backend/gitstore"
	"github.com/hrsync/backend/hackerrank"
	hrsynchttp "github.com/hrsync/backend/http"
	"github.com/hrsync/backend/ledger"
	"github.com/hrsync/backend/syncsrvc"
)

type testEnv struct {
	server    *hrsynchttp.HttpServer
	fakeStore *gitstore.FakeStore
	history   *ledger.Ledger
	confStore *conf.Store
}

func setupEnv(t *testing.T, hrBaseURL string, jwtKey []byte) *testEnv {
	t.Helper()

	fakeStore := gitstore.NewFakeStore()
	factory := func(cfg conf.Config) gitstore.Store { return fakeStore }

	confStore := conf.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, confStore.Save(conf.Config{
		Credential: "test-token",
		Repository: "alice/solutions",
	}))

	history := ledger.New(ledger.NewInMemRepo(), nil)
	syncSrvc := syncsrvc.New(confStore, history, nil, factory, nil)

	timings := detect.Timings{
		PollDelay:    5 * time.Millisecond,
		SettleDelay:  5 * time.Millisecond,
		Coalesce:     5 * time.Millisecond,
		CycleTimeout: 500 * time.Millisecond,
	}
	notifier := detect.NewPushNotifier(timings.Coalesce)
	hrClient := hackerrank.NewClient(hrBaseURL)
	machine := detect.NewMachine(hrClient, syncSrvc, notifier, timings, nil)

	server := hrsynchttp.NewHttpServer(
		machine, notifier, syncSrvc, confStore, history, hrClient, factory, jwtKey)

	return &testEnv{
		server:    server,
		fakeStore: fakeStore,
		history:   history,
		confStore: confStore,
	}
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestConfigGetRedactsCredential(t *testing.T) {
	env := setupEnv(t, "http://unused.invalid", nil)

	w := doJSON(t, env.server.Handler(), http.MethodGet, "/config", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			CredentialSet bool   `json:"credential_set"`
			Repository    string `json:"repository"`
			Branch        string `json:"branch"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.True(t, resp.Data.CredentialSet)
	assert.Equal(t, "alice/solutions", resp.Data.Repository)
	assert.Equal(t, "main", resp.Data.Branch)
	assert.NotContains(t, w.Body.String(), "test-token")
}

func TestConfigPutKeepsStoredCredential(t *testing.T) {
	env := setupEnv(t, "http://unused.invalid", nil)

	w := doJSON(t, env.server.Handler(), http.MethodPut, "/config", map[string]any{
		"repository": "alice/other",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cfg, err := env.confStore.Current()
	require.NoError(t, err)
	assert.Equal(t, "alice/other", cfg.Repository)
	assert.Equal(t, "test-token", cfg.Credential)
}

func TestConfigPutRequiresAuthWhenKeySet(t *testing.T) {
	jwtKey := []byte("test-jwt-key")
	env := setupEnv(t, "http://unused.invalid", jwtKey)

	w := doJSON(t, env.server.Handler(), http.MethodPut, "/config", map[string]any{
		"repository": "alice/other",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := auth.GenerateJWT("shell", []string{"config"}, jwtKey)
	require.NoError(t, err)
	w = doJSON(t, env.server.Handler(), http.MethodPut, "/config", map[string]any{
		"repository": "alice/other",
	}, map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConfigTest(t *testing.T) {
	env := setupEnv(t, "http://unused.invalid", nil)

	w := doJSON(t, env.server.Handler(), http.MethodPost, "/config/test", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			CredentialOK  bool   `json:"credential_ok"`
			Reachable     bool   `json:"reachable"`
			CanonicalName string `json:"canonical_name"`
			DefaultBranch string `json:"default_branch"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.CredentialOK)
	assert.True(t, resp.Data.Reachable)
	assert.Equal(t, "fake/repo", resp.Data.CanonicalName)
	assert.Equal(t, "main", resp.Data.DefaultBranch)
}

func TestManualSync(t *testing.T) {
	env := setupEnv(t, "http://unused.invalid", nil)

	w := doJSON(t, env.server.Handler(), http.MethodPost, "/sync", map[string]any{
		"code":         "print(1)",
		"language":     "Python 3",
		"problem_slug": "simple-array-sum",
		"category":     "algorithms",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	_, ok := env.fakeStore.Content("hackerrank/algorithms/simple-array-sum.py", "main")
	assert.True(t, ok)

	w = doJSON(t, env.server.Handler(), http.MethodGet, "/history", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []struct {
			ProblemSlug  string `json:"problem_slug"`
			ProblemTitle string `json:"problem_title"`
			Language     string `json:"language"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "simple-array-sum", resp.Data[0].ProblemSlug)
	assert.Equal(t, "Simple Array Sum", resp.Data[0].ProblemTitle)
	assert.Equal(t, "python3", resp.Data[0].Language)
}

func TestManualSyncRejectsEmptyCode(t *testing.T) {
	env := setupEnv(t, "http://unused.invalid", nil)
	w := doJSON(t, env.server.Handler(), http.MethodPost, "/sync", map[string]any{
		"problem_slug": "simple-array-sum",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLanguagesList(t *testing.T) {
	env := setupEnv(t, "http://unused.invalid", nil)
	w := doJSON(t, env.server.Handler(), http.MethodGet, "/languages", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data)
}

func TestSubmitEventEndToEnd(t *testing.T) {
	hrServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/contests/master/challenges/simple-array-sum/submissions/":
			json.NewEncoder(w).Encode(map[string]any{
				"models": []map[string]any{{"id": 7, "status": "Accepted", "status_code": 2}},
			})
		case "/rest/contests/master/challenges/simple-array-sum/submissions/7":
			json.NewEncoder(w).Encode(map[string]any{
				"model": map[string]any{
					"id": 7, "status": "Accepted", "status_code": 2,
					"code": "print(1)", "language": "python3",
					"name":  "Simple Array Sum",
					"track": map[string]any{"slug": "algorithms"},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer hrServer.Close()

	env := setupEnv(t, hrServer.URL, nil)

	w := doJSON(t, env.server.Handler(), http.MethodPost, "/events/submit", map[string]any{
		"source_url": "https://www.hackerrank.com/challenges/simple-array-sum/problem",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Armed bool `json:"armed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Armed)

	require.Eventually(t, func() bool {
		_, ok := env.fakeStore.Content("hackerrank/algorithms/simple-array-sum.py", "main")
		return ok
	}, 2*time.Second, 10*time.Millisecond, "accepted submission should be synced")
}

func TestMutationEventRequiresRegion(t *testing.T) {
	env := setupEnv(t, "http://unused.invalid", nil)
	w := doJSON(t, env.server.Handler(), http.MethodPost, "/events/mutation", map[string]any{
		"text": "Accepted",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
