package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/hrsync/backend/srvcerror"
)

const (
	DefaultBranch       = "main"
	DefaultPathTemplate = "hackerrank/{category}/{filename}"
)

// Config is the persisted synchronization configuration.
type Config struct {
	Credential   string `toml:"credential"`
	Repository   string `toml:"repository"` // "owner/name"
	Branch       string `toml:"branch"`
	PathTemplate string `toml:"path_template"`
}

// Owner returns the owner half of the "owner/name" repository field.
func (c Config) Owner() string {
	owner, _, _ := strings.Cut(c.Repository, "/")
	return owner
}

// RepoName returns the name half of the "owner/name" repository field.
func (c Config) RepoName() string {
	_, name, _ := strings.Cut(c.Repository, "/")
	return name
}

// Validate checks that the configuration is complete enough to attempt
// a synchronization.
func (c Config) Validate() error {
	if c.Credential == "" || c.Repository == "" {
		return srvcerror.ErrConfigMissing()
	}
	if c.Owner() == "" || c.RepoName() == "" {
		return srvcerror.ErrConfigMissing().
			SetDebug(fmt.Errorf("repository %q is not of the form owner/name", c.Repository))
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Branch == "" {
		c.Branch = DefaultBranch
	}
	if c.PathTemplate == "" {
		c.PathTemplate = DefaultPathTemplate
	}
	return c
}

// Store persists the configuration as a TOML file. The GITHUB_TOKEN
// environment variable, when set, overrides the stored credential so
// the secret never has to touch disk.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Current reads the configuration from disk. A missing file is not an
// error; it yields the defaults with empty credential and repository.
func (s *Store) Current() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg Config
	data, err := os.ReadFile(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.Credential = token
	}
	return cfg.withDefaults(), nil
}

// Save writes the configuration to disk, creating parent directories as
// needed. Last write wins; callers are serialized by the store mutex.
func (s *Store) Save(cfg Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg = cfg.withDefaults()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
