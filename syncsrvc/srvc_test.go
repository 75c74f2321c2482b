package syncsrvc_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hrsync/backend/conf"
	"github.com/hrsync/backend/extract"
	"github.com/hrsync/backend/gitstore"
	"github.com/hrsync/backend/ledger"
	"github.com/hrsync/backend/srvcerror"
	"github.com/hrsync/backend/syncsrvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSrvc(t *testing.T, fake *gitstore.FakeStore) (*syncsrvc.SyncSrvc, *ledger.Ledger, *conf.Store) {
	t.Helper()
	confStore := conf.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, confStore.Save(conf.Config{
		Credential: "test-token",
		Repository: "alice/solutions",
	}))
	hist := ledger.New(ledger.NewInMemRepo(), nil)
	srvc := syncsrvc.New(confStore, hist, nil,
		func(cfg conf.Config) gitstore.Store { return fake }, nil)
	return srvc, hist, confStore
}

func extracted(at time.Time) extract.ExtractedSubmission {
	return extract.ExtractedSubmission{
		Code:         "print(sum(map(int, input().split())))",
		Language:     "python3",
		ProblemTitle: "Simple Array Sum",
		ProblemSlug:  "simple-array-sum",
		Category:     "algorithms",
		Timestamp:    at,
		SourceURL:    "https://www.hackerrank.com/challenges/simple-array-sum/problem",
	}
}

func TestSyncEndToEndScenario(t *testing.T) {
	fake := gitstore.NewFakeStore()
	srvc, hist, _ := newTestSrvc(t, fake)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	// first sync creates the file, no prior revision
	ref, err := srvc.Sync(ctx, extracted(base))
	require.NoError(t, err)
	require.NotNil(t, ref)

	content, ok := fake.Content("hackerrank/algorithms/simple-array-sum.py", "main")
	require.True(t, ok, "file must land at the templated path")
	assert.True(t, strings.Contains(string(content), "Problem: Simple Array Sum"))

	// second sync updates using the revision from the first, no conflict
	_, err = srvc.Sync(ctx, extracted(base.Add(2*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, 2, fake.WriteCount)

	// third sync inside the dedup window: remote write may repeat but
	// no new history record is stored
	_, err = srvc.Sync(ctx, extracted(base.Add(2*time.Minute+30*time.Second)))
	require.NoError(t, err)

	recs, err := hist.List(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSyncConfigMissing(t *testing.T) {
	fake := gitstore.NewFakeStore()
	confStore := conf.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	hist := ledger.New(ledger.NewInMemRepo(), nil)
	srvc := syncsrvc.New(confStore, hist, nil,
		func(cfg conf.Config) gitstore.Store { return fake }, nil)

	_, err := srvc.Sync(context.Background(), extracted(time.Now()))
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, srvcerror.ErrCodeConfigMissing, srvcErr.ErrorCode())
	assert.Zero(t, fake.WriteCount, "no write may happen without config")
}

func TestSyncCredentialInvalid(t *testing.T) {
	fake := gitstore.NewFakeStore()
	fake.CredentialOK = false
	srvc, hist, _ := newTestSrvc(t, fake)

	_, err := srvc.Sync(context.Background(), extracted(time.Now()))
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, srvcerror.ErrCodeCredentialInvalid, srvcErr.ErrorCode())
	assert.Zero(t, fake.WriteCount, "credential is validated before any write")

	recs, err := hist.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSyncHistoryRecordFields(t *testing.T) {
	fake := gitstore.NewFakeStore()
	srvc, hist, _ := newTestSrvc(t, fake)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	ref, err := srvc.Sync(context.Background(), extracted(at))
	require.NoError(t, err)

	recs, err := hist.List(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, "simple-array-sum", rec.ProblemSlug)
	assert.Equal(t, "python3", rec.Language)
	assert.Equal(t, "hackerrank/algorithms/simple-array-sum.py", rec.Path)
	assert.Equal(t, ref.HTMLURL, rec.RemoteURL)
	assert.Equal(t, at, rec.SubmittedAt)
}

type slowStore struct {
	*gitstore.FakeStore
	block chan struct{}
}

func (s *slowStore) ValidateCredential(ctx context.Context) (bool, error) {
	<-s.block
	return s.FakeStore.ValidateCredential(ctx)
}

func TestSyncAtMostOneInFlight(t *testing.T) {
	slow := &slowStore{FakeStore: gitstore.NewFakeStore(), block: make(chan struct{})}
	confStore := conf.NewStore(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, confStore.Save(conf.Config{
		Credential: "test-token",
		Repository: "alice/solutions",
	}))
	hist := ledger.New(ledger.NewInMemRepo(), nil)
	srvc := syncsrvc.New(confStore, hist, nil,
		func(cfg conf.Config) gitstore.Store { return slow }, nil)

	firstDone := make(chan error, 1)
	go func() {
		_, err := srvc.Sync(context.Background(), extracted(time.Now()))
		firstDone <- err
	}()

	// wait until the first request occupies the loop
	require.Eventually(t, func() bool {
		_, err := srvc.Sync(context.Background(), extracted(time.Now()))
		srvcErr := &srvcerror.Error{}
		return errors.As(err, &srvcErr) &&
			srvcErr.ErrorCode() == srvcerror.ErrCodeSyncInFlight
	}, time.Second, 5*time.Millisecond)

	close(slow.block)
	require.NoError(t, <-firstDone)
}
