package ledger

import (
	"context"
	"sync"
)

type inMemRepo struct {
	mu   sync.RWMutex
	recs []HistoryRecord
}

// NewInMemRepo returns a Repo backed by process memory. Used in tests
// and when no DynamoDB table is configured.
func NewInMemRepo() Repo {
	return &inMemRepo{}
}

// Insert implements Repo
func (r *inMemRepo) Insert(ctx context.Context, rec HistoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
	return nil
}

// List implements Repo
func (r *inMemRepo) List(ctx context.Context) ([]HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]HistoryRecord, len(r.recs))
	copy(out, r.recs)
	return out, nil
}

// LastForKey implements Repo
func (r *inMemRepo) LastForKey(ctx context.Context, key string) (*HistoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := len(r.recs) - 1; i >= 0; i-- {
		if r.recs[i].DedupKey() == key {
			rec := r.recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}
