package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
}

func TestLoadEnvDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Config{}.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "tg-token", cfg.Token)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, []string{"gpt-3.5-turbo", "gpt-4", "gpt-4o"}, cfg.AllowedModels)
	assert.Equal(t, []string{"RUB", "USD"}, cfg.RateTargets)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5, cfg.NewsPageSize)
	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
	assert.Equal(t, "https://open.er-api.com/v6", cfg.FiatBaseURL)
	assert.Empty(t, cfg.NewsAPIKey)
	assert.Empty(t, cfg.StatusAddr)
}

func TestLoadEnvMissingCredential(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	os.Unsetenv("TELEGRAM_TOKEN")

	_, err := Config{}.LoadEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("OPENAI_MODEL", "gpt-4")
	t.Setenv("ALLOWED_MODELS", "gpt-4,gpt-4o-mini")
	t.Setenv("RATE_TARGETS", "EUR")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")

	cfg, err := Config{}.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4", cfg.Model)
	assert.Equal(t, []string{"gpt-4", "gpt-4o-mini"}, cfg.AllowedModels)
	assert.Equal(t, []string{"EUR"}, cfg.RateTargets)
	assert.Equal(t, 3*time.Second, cfg.UpstreamTimeout)
}

func TestNewConfigRejectsEmptyModel(t *testing.T) {
	setRequired(t)
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "none.toml"))

	_, err := NewConfig()
	assert.ErrorContains(t, err, "OPENAI_MODEL")
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg := Config{ConfigFile: filepath.Join(t.TempDir(), "absent.toml")}

	require.NoError(t, cfg.LoadFile())
	assert.Equal(t, DefaultTriggers, cfg.Routing.Triggers)
	assert.Empty(t, cfg.Routing.Aliases.Fiat)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[triggers]
news = ["новост"]
match = "prefix"

[aliases.fiat]
"форинт" = "HUF"

[aliases.crypto]
"пепе" = "pepe"
`), 0o644))

	cfg := Config{ConfigFile: path}
	require.NoError(t, cfg.LoadFile())

	assert.Equal(t, DefaultTriggers.Currency, cfg.Routing.Triggers.Currency)
	assert.Equal(t, []string{"новост"}, cfg.Routing.Triggers.News)
	assert.Equal(t, "prefix", cfg.Routing.Triggers.Match)
	assert.Equal(t, "HUF", cfg.Routing.Aliases.Fiat["форинт"])
	assert.Equal(t, "pepe", cfg.Routing.Aliases.Crypto["пепе"])
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`[triggers`), 0o644))

	cfg := Config{ConfigFile: path}
	assert.Error(t, cfg.LoadFile())
}

func TestValidate(t *testing.T) {
	valid := Config{Model: "gpt-4o", RateTargets: []string{"RUB", "USD"}, UpstreamTimeout: time.Second, NewsPageSize: 5}
	assert.NoError(t, valid.Validate())

	tooMany := valid
	tooMany.RateTargets = []string{"RUB", "USD", "EUR"}
	assert.Error(t, tooMany.Validate())

	noTimeout := valid
	noTimeout.UpstreamTimeout = 0
	assert.Error(t, noTimeout.Validate())

	noModel := valid
	noModel.Model = " "
	assert.ErrorContains(t, noModel.Validate(), "OPENAI_MODEL")

	noPage := valid
	noPage.NewsPageSize = 0
	assert.Error(t, noPage.Validate())
}

func TestNewConfig(t *testing.T) {
	setRequired(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "none.toml"))

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, DefaultTriggers, cfg.Routing.Triggers)
}
