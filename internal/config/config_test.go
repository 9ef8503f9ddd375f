package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, def.TMDB.BaseURL, cfg.TMDB.BaseURL)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 30*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, def.Storage.DataDir, cfg.Storage.DataDir)
	assert.Equal(t, "popular", cfg.UI.StartSource)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.False(t, cfg.IsConfigured())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
tmdb:
  token: file-token
  language: pt-BR
  timeout: 5s
storage:
  data_dir: /tmp/marquee-test
ui:
  start_source: top-rated
  posters_only: true
logging:
  level: DEBUG
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.TMDB.Token)
	assert.Equal(t, "pt-BR", cfg.TMDB.Language)
	assert.Equal(t, 5*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "/tmp/marquee-test", cfg.Storage.DataDir)
	assert.Equal(t, domain.SourceTopRated, cfg.StartSource())
	assert.True(t, cfg.UI.PostersOnly)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	// Keys missing from the file keep their defaults
	assert.Equal(t, DefaultConfig().TMDB.BaseURL, cfg.TMDB.BaseURL)
	assert.True(t, cfg.IsConfigured())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb:\n  token: file-token\n"), 0600))

	t.Setenv("MARQUEE_TMDB_TOKEN", "env-token")
	t.Setenv("MARQUEE_TMDB_TIMEOUT", "12s")
	t.Setenv("MARQUEE_UI_POSTERS_ONLY", "true")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.TMDB.Token)
	assert.Equal(t, 12*time.Second, cfg.TMDB.Timeout)
	assert.True(t, cfg.UI.PostersOnly)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("tmdb: [unclosed"), 0600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.TMDB.Token = "saved-token"
	cfg.TMDB.Timeout = 45 * time.Second
	cfg.UI.StartSource = "watchlist"
	cfg.Player.Command = "mpv"
	cfg.Player.Args = []string{"--fs"}
	require.NoError(t, Save(cfg, dir))

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "saved-token", loaded.TMDB.Token)
	assert.Equal(t, 45*time.Second, loaded.TMDB.Timeout)
	assert.Equal(t, domain.SourceWatchlist, loaded.StartSource())
	assert.Equal(t, "mpv", loaded.Player.Command)
	assert.Equal(t, []string{"--fs"}, loaded.Player.Args)
}

func TestNormalize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TMDB.Language = "pt-br"
	assert.Empty(t, cfg.Normalize())
	assert.Equal(t, "pt-BR", cfg.TMDB.Language)

	cfg = DefaultConfig()
	cfg.TMDB.Language = "!!bogus"
	cfg.UI.StartSource = "cinema"
	cfg.TMDB.Timeout = 0
	cfg.Logging.MaxSizeMB = -1

	warnings := cfg.Normalize()
	assert.Len(t, warnings, 2)
	assert.Equal(t, DefaultLanguage, cfg.TMDB.Language)
	assert.Equal(t, "popular", cfg.UI.StartSource)
	assert.Equal(t, 30*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
}

func TestCanonicalLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", DefaultLanguage, false},
		{"en-US", "en-US", false},
		{"de", "de", false},
		{"pt-br", "pt-BR", false},
		{" fr-CA ", "fr-CA", false},
		{"!!bogus", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := CanonicalLanguage(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
