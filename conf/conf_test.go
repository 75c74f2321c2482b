package conf_test

import (
	"path/filepath"
	"testing"

	"github.com/hrsync/backend/conf"
	"github.com/hrsync/backend/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := conf.NewStore(path)

	cfg, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, conf.DefaultBranch, cfg.Branch)
	assert.Equal(t, conf.DefaultPathTemplate, cfg.PathTemplate)
	assert.Empty(t, cfg.Repository)

	err = store.Save(conf.Config{
		Credential: "ghp_token",
		Repository: "alice/solutions",
	})
	require.NoError(t, err)

	cfg, err = store.Current()
	require.NoError(t, err)
	assert.Equal(t, "ghp_token", cfg.Credential)
	assert.Equal(t, "alice", cfg.Owner())
	assert.Equal(t, "solutions", cfg.RepoName())
	assert.Equal(t, conf.DefaultBranch, cfg.Branch)
}

func TestEnvOverridesCredential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	store := conf.NewStore(path)
	require.NoError(t, store.Save(conf.Config{
		Credential: "stored",
		Repository: "alice/solutions",
	}))

	t.Setenv("GITHUB_TOKEN", "from-env")
	cfg, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Credential)
}

func TestValidate(t *testing.T) {
	err := conf.Config{}.Validate()
	require.Error(t, err)
	srvcErr := &srvcerror.Error{}
	require.ErrorAs(t, err, &srvcErr)
	assert.Equal(t, srvcerror.ErrCodeConfigMissing, srvcErr.ErrorCode())

	err = conf.Config{Credential: "tok", Repository: "missing-slash"}.Validate()
	assert.Error(t, err)

	err = conf.Config{Credential: "tok", Repository: "alice/solutions"}.Validate()
	assert.NoError(t, err)
}
