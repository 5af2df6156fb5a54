package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default(0)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 720, cfg.Height)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, "output/published", cfg.PublishDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene2video.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 1920\nheight: 1080\ncacheDb: plans.db\nstrict: true\n"), 0644))

	cfg, err := Load(path, Default(4))
	require.NoError(t, err)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, 4, cfg.Workers, "unset keys keep the default")
	assert.Equal(t, "plans.db", cfg.CacheDB)
	assert.True(t, cfg.Strict)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"), Default(2))
	require.NoError(t, err)
	assert.Equal(t, Default(2), cfg)

	cfg, err = Load("", Default(2))
	require.NoError(t, err)
	assert.Equal(t, Default(2), cfg)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1"), 0644))
	_, err := Load(path, Default(2))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvWidth, "640")
	t.Setenv(EnvHeight, "360")
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvCacheDB, "/tmp/plans.db")
	t.Setenv(EnvPublishDir, "/srv/videos")
	t.Setenv(EnvPublicBaseURL, "https://cdn.example.com")

	cfg := Default(8)
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 360, cfg.Height)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "/tmp/plans.db", cfg.CacheDB)
	assert.Equal(t, "/srv/videos", cfg.PublishDir)
	assert.Equal(t, "https://cdn.example.com", cfg.PublicBaseURL)
}

func TestApplyEnvRejectsNonNumbers(t *testing.T) {
	t.Setenv(EnvWidth, "wide")
	cfg := Default(1)
	assert.Error(t, cfg.ApplyEnv())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SCENE2VIDEO_WORKERS=5\n"), 0644))

	// Register the variable with t.Setenv so it is restored, then clear it
	// so the file value applies.
	t.Setenv(EnvWorkers, "")
	require.NoError(t, os.Unsetenv(EnvWorkers))

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path))
	assert.Equal(t, "5", os.Getenv(EnvWorkers))

	cfg := Default(1)
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 5, cfg.Workers)
}

func TestValidate(t *testing.T) {
	cfg := Default(1)
	cfg.Width = 0
	assert.Error(t, cfg.Validate())

	cfg = Default(1)
	cfg.Workers = -1
	assert.Error(t, cfg.Validate())
}
