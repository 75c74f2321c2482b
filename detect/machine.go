package detect

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hrsync/backend/extract"
	"github.com/hrsync/backend/gitstore"
	"github.com/hrsync/backend/hackerrank"
)

// SubmissionSource polls the per-challenge submission-status endpoint.
type SubmissionSource interface {
	LatestSubmission(ctx context.Context, slug string) (*hackerrank.Submission, error)
}

// Syncer is the synchronization surface. The machine issues one
// request per accepted verdict and waits for the response; it is the
// request/response boundary between the two surfaces.
type Syncer interface {
	Sync(ctx context.Context, sub extract.ExtractedSubmission) (*gitstore.RemoteRef, error)
}

// Timings holds cycle timing constants. Production values come from
// DefaultTimings; tests shrink them.
type Timings struct {
	PollDelay    time.Duration // wait after arming before the first poll
	SettleDelay  time.Duration // wait before re-polling a pending record
	Coalesce     time.Duration // mutation debounce window
	CycleTimeout time.Duration // hard bound on a whole cycle
}

func DefaultTimings() Timings {
	return Timings{
		PollDelay:    3 * time.Second,
		SettleDelay:  1 * time.Second,
		Coalesce:     2 * time.Second,
		CycleTimeout: 25 * time.Second,
	}
}

// ArmSignal is the fact that a submit interaction occurred. The
// snapshot is taken by the shell before the page can mutate or hide
// the editor; any field may be empty.
type ArmSignal struct {
	SourceURL string               `json:"source_url"`
	Snapshot  extract.PageSnapshot `json:"snapshot"`
}

// Machine owns the lifecycle from "user submitted" to "terminal
// verdict obtained". At most one cycle is active; overlapping submit
// signals are dropped, never queued.
type Machine struct {
	mu    sync.Mutex
	state State

	source   SubmissionSource
	syncer   Syncer
	notifier Notifier
	timings  Timings
	logger   *slog.Logger

	// guards re-entrancy of the same physical accepted event; keyed by
	// event time, not problem identity
	seen *expirable.LRU[string, struct{}]
}

func NewMachine(source SubmissionSource, syncer Syncer, notifier Notifier, timings Timings, logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		state:    StateIdle,
		source:   source,
		syncer:   syncer,
		notifier: notifier,
		timings:  timings,
		logger:   logger,
		seen:     expirable.NewLRU[string, struct{}](128, nil, 2*time.Minute),
	}
}

// CurrentState returns the machine state, for observability.
func (m *Machine) CurrentState() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// Arm starts a detection cycle. Returns false when a cycle is already
// in flight; the signal is logged and dropped.
func (m *Machine) Arm(signal ArmSignal) bool {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		m.logger.Info("submit signal ignored, cycle already in flight",
			"state", m.state.String(), "url", signal.SourceURL)
		return false
	}
	m.state = StateArmed
	m.mu.Unlock()

	go m.runCycle(signal)
	return true
}

func (m *Machine) runCycle(signal ArmSignal) {
	ctx, cancel := context.WithTimeout(context.Background(), m.timings.CycleTimeout)
	defer cancel()
	defer m.setState(StateIdle)

	if signal.Snapshot.URL == "" {
		signal.Snapshot.URL = signal.SourceURL
	}
	slug := hackerrank.SlugFromURL(signal.SourceURL)
	if slug == "" {
		m.logger.Warn("submit signal without a challenge slug, dropping",
			"url", signal.SourceURL)
		return
	}

	m.setState(StateAwaitingVerdict)

	// the mutation feed is a fallback signal source; the poll is
	// canonical
	verdictText := make(chan string, 1)
	cancelSub := m.notifier.Subscribe(slug, func(text string) {
		select {
		case verdictText <- text:
		default:
		}
	})
	defer cancelSub()

	record, err := m.pollVerdict(ctx, slug)
	if err != nil {
		if ctx.Err() != nil {
			m.logger.Info("detection cycle timed out", "slug", slug)
			return
		}
		m.logger.Warn("submission poll failed, falling back to mutation feed",
			"slug", slug, "error", err)
		record = nil
	}

	m.setState(StateEvaluating)

	verdict := VerdictUnknown
	if record != nil {
		verdict = ClassifyRecord(record.Status, record.StatusCode)
	}
	if verdict == VerdictUnknown {
		select {
		case text := <-verdictText:
			verdict = ClassifyText(text)
		case <-ctx.Done():
			m.logger.Info("detection cycle timed out", "slug", slug)
			return
		}
	}

	switch verdict {
	case VerdictAccepted:
		m.accepted(ctx, slug, record, signal)
	case VerdictRejected:
		m.logger.Info("submission rejected", "slug", slug)
	default:
		m.logger.Info("verdict inconclusive, returning to idle", "slug", slug)
	}
}

// pollVerdict waits the fixed poll delay, polls once, and re-polls
// once after the settle delay if the record is still pending.
func (m *Machine) pollVerdict(ctx context.Context, slug string) (*hackerrank.Submission, error) {
	if err := sleepCtx(ctx, m.timings.PollDelay); err != nil {
		return nil, err
	}
	record, err := m.source.LatestSubmission(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !IsPending(record.Status) {
		return record, nil
	}
	if err := sleepCtx(ctx, m.timings.SettleDelay); err != nil {
		return nil, err
	}
	return m.source.LatestSubmission(ctx, slug)
}

func (m *Machine) accepted(ctx context.Context, slug string, record *hackerrank.Submission, signal ArmSignal) {
	m.setState(StateAccepted)

	key := m.eventKey(record)
	if _, dup := m.seen.Get(key); dup {
		m.logger.Info("accepted event already handled, ignoring",
			"slug", slug, "event_key", key)
		return
	}

	now := time.Now()
	var sub *extract.ExtractedSubmission
	var err error
	if record != nil {
		sub, err = extract.FromAPIRecord(record, signal.Snapshot, now)
	} else {
		sub, err = extract.FromSnapshot(signal.Snapshot, now)
	}
	if err != nil {
		// extraction failure leaves the dedup slot free so a manual
		// retry can succeed
		m.logger.Error("extraction failed for accepted submission",
			"slug", slug, "error", err)
		return
	}

	m.seen.Add(key, struct{}{})

	ref, err := m.syncer.Sync(ctx, *sub)
	if err != nil {
		m.logger.Error("sync failed for accepted submission",
			"slug", slug, "language", sub.Language, "error", err)
		return
	}
	m.logger.Info("submission synchronized",
		"slug", slug, "language", sub.Language, "remote_url", ref.HTMLURL)
}

// eventKey derives the re-entrancy dedup key from the event time of
// the physical submission, not from problem identity.
func (m *Machine) eventKey(record *hackerrank.Submission) string {
	if record != nil && record.CreatedAt != 0 {
		return fmt.Sprintf("t-%d", record.CreatedAt)
	}
	if record != nil && record.ID != 0 {
		return fmt.Sprintf("id-%d", record.ID)
	}
	return fmt.Sprintf("t-%d", time.Now().Unix())
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
