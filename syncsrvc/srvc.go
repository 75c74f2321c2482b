// Package syncsrvc turns an extracted submission into a
// compare-and-swap write against the remote versioned store, records
// it in the history ledger and mirrors an audit snapshot. At most one
// synchronization is in flight at a time; overlapping requests are
// rejected, not queued.
package syncsrvc

import (
	"context"
	"log/slog"

	"github.com/hrsync/backend/conf"
	"github.com/hrsync/backend/extract"
	"github.com/hrsync/backend/gitstore"
	"github.com/hrsync/backend/ledger"
	"github.com/hrsync/backend/srvcerror"
)

// StoreFactory builds a remote store from the current configuration.
// The store is rebuilt per sync so configuration edits take effect
// without a restart.
type StoreFactory func(cfg conf.Config) gitstore.Store

// GithubStoreFactory is the production StoreFactory.
func GithubStoreFactory(cfg conf.Config) gitstore.Store {
	return gitstore.NewGithubStore(cfg.Credential, cfg.Owner(), cfg.RepoName())
}

// Snapshotter mirrors raw code to audit storage. Optional.
type Snapshotter interface {
	Save(ctx context.Context, sub extract.ExtractedSubmission) (string, error)
}

type syncRequest struct {
	ctx  context.Context
	sub  extract.ExtractedSubmission
	resp chan syncResult
}

type syncResult struct {
	ref *gitstore.RemoteRef
	err error
}

type SyncSrvc struct {
	confStore *conf.Store
	ledger    *ledger.Ledger
	snapshots Snapshotter
	newStore  StoreFactory
	logger    *slog.Logger

	requests chan syncRequest
}

func New(confStore *conf.Store, hist *ledger.Ledger, snapshots Snapshotter, newStore StoreFactory, logger *slog.Logger) *SyncSrvc {
	if logger == nil {
		logger = slog.Default()
	}
	if newStore == nil {
		newStore = GithubStoreFactory
	}
	srvc := &SyncSrvc{
		confStore: confStore,
		ledger:    hist,
		snapshots: snapshots,
		newStore:  newStore,
		logger:    logger,
		requests:  make(chan syncRequest),
	}
	go srvc.run()
	return srvc
}

// run serves sync requests one at a time. The unbuffered request
// channel is the busy flag: a send succeeds only while the loop is
// waiting for work.
func (s *SyncSrvc) run() {
	for req := range s.requests {
		ref, err := s.doSync(req.ctx, req.sub)
		req.resp <- syncResult{ref: ref, err: err}
	}
}

// Sync synchronizes one extracted submission and returns its remote
// reference. A concurrent call while another sync is in flight fails
// immediately instead of queueing.
func (s *SyncSrvc) Sync(ctx context.Context, sub extract.ExtractedSubmission) (*gitstore.RemoteRef, error) {
	req := syncRequest{ctx: ctx, sub: sub, resp: make(chan syncResult, 1)}
	select {
	case s.requests <- req:
	default:
		s.logger.Info("sync request dropped, another sync in flight",
			"slug", sub.ProblemSlug, "language", sub.Language)
		return nil, srvcerror.ErrSyncInFlight()
	}

	select {
	case res := <-req.resp:
		return res.ref, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *SyncSrvc) doSync(ctx context.Context, sub extract.ExtractedSubmission) (*gitstore.RemoteRef, error) {
	cfg, err := s.confStore.Current()
	if err != nil {
		return nil, srvcerror.ErrConfigMissing().SetDebug(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store := s.newStore(cfg)

	ok, err := store.ValidateCredential(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, srvcerror.ErrCredentialInvalid()
	}

	path := GeneratePath(cfg.PathTemplate, sub)
	content := FormatContent(sub)

	revision, err := store.GetCurrentRevision(ctx, path, cfg.Branch)
	if err != nil {
		return nil, err
	}

	ref, err := store.CreateOrUpdate(ctx, path,
		[]byte(content), CommitMessage(sub), cfg.Branch, revision)
	if err != nil {
		return nil, err
	}

	stored, err := s.ledger.Append(ctx, ledger.HistoryRecord{
		ProblemSlug:  sub.ProblemSlug,
		ProblemTitle: sub.ProblemTitle,
		Language:     sub.Language,
		Category:     sub.Category,
		Path:         path,
		RemoteURL:    ref.HTMLURL,
		SourceURL:    sub.SourceURL,
		SubmittedAt:  sub.Timestamp,
	})
	if err != nil {
		// the remote write already happened; the missing audit record
		// is logged, not surfaced as a failed sync
		s.logger.Error("failed to append history record",
			"slug", sub.ProblemSlug, "error", err)
	} else if stored {
		s.logger.Info("history record appended",
			"slug", sub.ProblemSlug, "language", sub.Language, "path", path)
	}

	if s.snapshots != nil {
		key, err := s.snapshots.Save(ctx, sub)
		if err != nil {
			s.logger.Warn("snapshot mirror failed",
				"slug", sub.ProblemSlug, "error", err)
		} else {
			s.logger.Debug("snapshot mirrored", "key", key)
		}
	}

	return ref, nil
}
