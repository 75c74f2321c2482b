// Package ledger keeps the append-only record of synchronized
// submissions. It is both the audit trail and the durable idempotence
// boundary: two records with the same (slug, language) inside the
// dedup window are the same logical submission.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// DedupWindow is the span within which two records with the same key
// are considered one logical submission.
const DedupWindow = 60 * time.Second

// HistoryRecord is one synchronized submission.
type HistoryRecord struct {
	ID           uuid.UUID `json:"id"`
	ProblemSlug  string    `json:"problem_slug"`
	ProblemTitle string    `json:"problem_title"`
	Language     string    `json:"language"`
	Category     string    `json:"category"`
	Path         string    `json:"path"`
	RemoteURL    string    `json:"remote_url"`
	SourceURL    string    `json:"source_url"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// DedupKey identifies the logical submission.
func (r HistoryRecord) DedupKey() string {
	return r.ProblemSlug + "#" + r.Language
}

// Repo is the persistence behind the ledger.
type Repo interface {
	Insert(ctx context.Context, rec HistoryRecord) error
	List(ctx context.Context) ([]HistoryRecord, error)
	// LastForKey returns the most recent record with the given dedup
	// key, or nil when none exists.
	LastForKey(ctx context.Context, key string) (*HistoryRecord, error)
}

// Ledger wraps a Repo with the dedup rule.
type Ledger struct {
	repo   Repo
	logger *slog.Logger
}

func New(repo Repo, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{repo: repo, logger: logger}
}

// Append stores the record unless an existing record shares its dedup
// key within the dedup window. Returns true when the record was
// actually stored.
func (l *Ledger) Append(ctx context.Context, rec HistoryRecord) (bool, error) {
	if rec.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return false, fmt.Errorf("failed to generate record id: %w", err)
		}
		rec.ID = id
	}

	last, err := l.repo.LastForKey(ctx, rec.DedupKey())
	if err != nil {
		return false, fmt.Errorf("failed to look up previous record: %w", err)
	}
	if last != nil {
		gap := rec.SubmittedAt.Sub(last.SubmittedAt)
		if gap < 0 {
			gap = -gap
		}
		if gap <= DedupWindow {
			l.logger.Info("duplicate submission within dedup window, not recorded",
				"slug", rec.ProblemSlug, "language", rec.Language, "gap", gap)
			return false, nil
		}
	}

	if err := l.repo.Insert(ctx, rec); err != nil {
		return false, fmt.Errorf("failed to insert history record: %w", err)
	}
	return true, nil
}

// List returns all records in arrival order.
func (l *Ledger) List(ctx context.Context) ([]HistoryRecord, error) {
	return l.repo.List(ctx)
}
