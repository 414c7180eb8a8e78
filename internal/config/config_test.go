package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"OPENAI_API_KEY", "PEXELS_API_KEY", "LOG_LEVEL",
		"ASTROPOST_CONTENT_API_KEY", "ASTROPOST_IMAGES_API_KEY", "ASTROPOST_LOG_LEVEL",
		"ASTROPOST_PUBLISH_MODE", "ASTROPOST_SCHEDULE_TIME",
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(Options{EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Content.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Content.Model)
	assert.InDelta(t, 0.8, cfg.Content.Temperature, 1e-9)
	assert.Equal(t, "https://api.pexels.com/v1", cfg.Images.APIURL)
	assert.Equal(t, "instagram_session.json", cfg.Session.Path)
	assert.Equal(t, domain.TimeOfDay{Hour: 10, Minute: 30}, cfg.Schedule.Time)
	assert.Equal(t, domain.PublishModeCarousel, cfg.Publish.Mode)
	assert.Equal(t, 30*time.Second, cfg.Publish.PacingMin)
	assert.Equal(t, 90*time.Second, cfg.Publish.PacingMax)
	assert.Equal(t, 60, cfg.History.Keep)
	assert.NotNil(t, cfg.Viper())
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "PEXELS_API_KEY")
}

func TestLoadMissingContentKeyIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := Load(Options{EnvFiles: []string{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingContentKey)
}

func TestLoadReadsConfigFileAndPrefixedEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ASTROPOST_PUBLISH_MODE", "sequential")

	path := writeConfig(t, `
[schedule]
time = "07:45"
timezone = "UTC"

[publish]
mode = "carousel"
pacing_min = "1s"
pacing_max = "2s"

[images]
api_key = "px-test"
`)

	cfg, err := Load(Options{ConfigFile: path, EnvFiles: []string{}})
	require.NoError(t, err)

	assert.Equal(t, domain.TimeOfDay{Hour: 7, Minute: 45}, cfg.Schedule.Time)
	assert.Equal(t, time.UTC, cfg.Schedule.Location)
	assert.Equal(t, domain.PublishModeSequential, cfg.Publish.Mode)
	assert.Equal(t, time.Second, cfg.Publish.PacingMin)
	assert.Equal(t, "px-test", cfg.Images.APIKey)
	assert.Empty(t, cfg.Warnings)
}

func TestLoadAppliesDotEnvFiles(t *testing.T) {
	clearEnv(t)

	envPath := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("OPENAI_API_KEY=sk-from-dotenv\nPEXELS_API_KEY=px-from-dotenv\n"), 0o600))

	cfg, err := Load(Options{EnvFiles: []string{envPath, filepath.Join(t.TempDir(), "missing.env")}})
	require.NoError(t, err)

	assert.Equal(t, "sk-from-dotenv", cfg.Content.APIKey)
	assert.Equal(t, "px-from-dotenv", cfg.Images.APIKey)
	assert.Equal(t, []string{envPath}, cfg.EnvFiles)
}

func TestLoadCollectsValidationErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := writeConfig(t, `
[schedule]
time = "25:99"
timezone = "Mars/Olympus"

[publish]
mode = "broadcast"
pacing_min = "90s"
pacing_max = "30s"
`)

	_, err := Load(Options{ConfigFile: path, EnvFiles: []string{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
	assert.ErrorContains(t, err, "schedule.timezone")
	assert.ErrorContains(t, err, "unsupported mode")
	assert.ErrorContains(t, err, "exceeds publish.pacing_max")
}

func TestLoadExplicitMissingConfigFileFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	_, err := Load(Options{ConfigFile: filepath.Join(t.TempDir(), "absent.toml"), EnvFiles: []string{}})
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}
