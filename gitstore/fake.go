package gitstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/hrsync/backend/srvcerror"
)

// FakeStore is an in-memory Store with real compare-and-swap
// semantics, used in tests and local development.
type FakeStore struct {
	mu         sync.Mutex
	files      map[string]fakeFile // key: branch + "\x00" + path
	revCounter int

	CredentialOK bool
	Info         RepoInfo
	WriteCount   int
}

type fakeFile struct {
	content  []byte
	revision string
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		files:        make(map[string]fakeFile),
		CredentialOK: true,
		Info: RepoInfo{
			Reachable:     true,
			CanonicalName: "fake/repo",
			DefaultBranch: "main",
		},
	}
}

func (f *FakeStore) key(path, branch string) string {
	return branch + "\x00" + path
}

// ValidateCredential implements Store.
func (f *FakeStore) ValidateCredential(ctx context.Context) (bool, error) {
	return f.CredentialOK, nil
}

// TestRepository implements Store.
func (f *FakeStore) TestRepository(ctx context.Context) (*RepoInfo, error) {
	if !f.CredentialOK {
		return nil, srvcerror.ErrCredentialInvalid()
	}
	info := f.Info
	return &info, nil
}

// GetCurrentRevision implements Store.
func (f *FakeStore) GetCurrentRevision(ctx context.Context, path string, branch string) (*string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[f.key(path, branch)]
	if !ok {
		return nil, nil
	}
	rev := file.revision
	return &rev, nil
}

// CreateOrUpdate implements Store.
func (f *FakeStore) CreateOrUpdate(ctx context.Context, path string, content []byte, message string, branch string, revision *string) (*RemoteRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := f.key(path, branch)
	existing, exists := f.files[key]

	if exists && revision == nil {
		return nil, srvcerror.ErrWriteConflict().
			SetDebug(fmt.Errorf("create asserted but %s exists at revision %s", path, existing.revision))
	}
	if revision != nil {
		if !exists {
			return nil, srvcerror.ErrWriteConflict().
				SetDebug(fmt.Errorf("update asserted but %s does not exist", path))
		}
		if existing.revision != *revision {
			return nil, srvcerror.ErrWriteConflict().
				SetDebug(fmt.Errorf("revision mismatch on %s: have %s, asserted %s",
					path, existing.revision, *revision))
		}
	}

	f.revCounter++
	newRev := fmt.Sprintf("rev-%d", f.revCounter)
	f.files[key] = fakeFile{content: content, revision: newRev}
	f.WriteCount++

	return &RemoteRef{
		HTMLURL:    fmt.Sprintf("https://example.com/%s/blob/%s/%s", f.Info.CanonicalName, branch, path),
		ContentSHA: newRev,
		CommitSHA:  fmt.Sprintf("commit-%d", f.revCounter),
	}, nil
}

// Content returns the stored bytes for path on branch, for assertions.
func (f *FakeStore) Content(path, branch string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	file, ok := f.files[f.key(path, branch)]
	return file.content, ok
}
