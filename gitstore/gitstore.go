// Package gitstore is a stateless facade over a remote, revisioned
// file API. Writes are compare-and-swap: the caller asserts either
// "create" (no revision) or "update at exactly this revision", and a
// mismatch fails as a conflict instead of silently overwriting.
package gitstore

import "context"

// RemoteRef identifies the written object in the remote store.
type RemoteRef struct {
	HTMLURL    string `json:"html_url"`
	ContentSHA string `json:"content_sha"`
	CommitSHA  string `json:"commit_sha"`
}

// RepoInfo is the result of a read-only reachability probe.
type RepoInfo struct {
	Reachable     bool   `json:"reachable"`
	CanonicalName string `json:"canonical_name"`
	DefaultBranch string `json:"default_branch"`
}

// Store abstracts the remote versioned file API.
type Store interface {
	// ValidateCredential reports whether the remote accepts the
	// credential for an identity lookup.
	ValidateCredential(ctx context.Context) (bool, error)

	// GetCurrentRevision returns the current revision id of path on
	// branch, or nil when the path does not exist. Non-existence is
	// not an error.
	GetCurrentRevision(ctx context.Context, path string, branch string) (*string, error)

	// CreateOrUpdate performs a compare-and-swap write. A nil revision
	// asserts create; a non-nil revision asserts update at exactly
	// that revision. A mismatch fails with a write-conflict error.
	CreateOrUpdate(ctx context.Context, path string, content []byte, message string, branch string, revision *string) (*RemoteRef, error)

	// TestRepository probes the repository without writing anything.
	TestRepository(ctx context.Context) (*RepoInfo, error)
}
