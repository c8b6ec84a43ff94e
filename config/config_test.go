package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.App.Port)
	require.Equal(t, "development", cfg.App.Env)
	require.False(t, cfg.Production())
	require.NotEmpty(t, cfg.Content.Topics)
	require.Equal(t, []string{"10:00", "15:00", "20:00"}, cfg.Schedule.Times)
	require.Equal(t, "data/publish_history.json", cfg.Schedule.HistoryPath)
	require.Equal(t, 5, cfg.TextGen.IdeaCount)
	require.Equal(t, 1080, cfg.Visuals.Width)
	require.Equal(t, 1920, cfg.Visuals.Height)
	require.Equal(t, "1080x1920", cfg.Render.Resolution)
	require.False(t, cfg.Research.Enabled)
}

func TestLoadOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
app:
  env: production
content:
  topics:
    - gardening
schedule:
  times: ["08:30"]
textgen:
  idea_count: 3
research:
  enabled: true
  subreddits:
    gardening: gardening
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.True(t, cfg.Production())
	require.Equal(t, []string{"gardening"}, cfg.Content.Topics)
	require.Equal(t, []string{"08:30"}, cfg.Schedule.Times)
	require.Equal(t, 3, cfg.TextGen.IdeaCount)
	require.True(t, cfg.Research.Enabled)
	require.Equal(t, "gardening", cfg.Research.Subreddits["gardening"])

	// Sections absent from the file still get defaults.
	require.Equal(t, "llama-3.3-70b-versatile", cfg.TextGen.Model)
	require.Equal(t, 10, cfg.Research.MaxPosts)
	require.Equal(t, "public", cfg.Publish.Visibility)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [not a mapping"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("INFLUENCER_TEST_VAR", "set")
	require.Equal(t, "set", GetEnv("INFLUENCER_TEST_VAR", "fallback"))
	require.Equal(t, "fallback", GetEnv("INFLUENCER_TEST_VAR_MISSING", "fallback"))
}
