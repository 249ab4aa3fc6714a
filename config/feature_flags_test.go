package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureFlags_DefaultOn(t *testing.T) {
	f := LoadFeatureFlags()

	assert.True(t, f.Enabled(FeatureMovieChain))
	assert.True(t, f.Enabled("some_future_feature"))
}

func TestFeatureFlags_DisabledList(t *testing.T) {
	t.Setenv("FEATURES_DISABLED", "movie_chain, Random_Movie")

	f := LoadFeatureFlags()

	assert.False(t, f.Enabled(FeatureMovieChain))
	assert.False(t, f.Enabled(FeatureRandomMovie))
	assert.True(t, f.Enabled(FeatureWatchParties))
}

func TestFeatureFlags_PerFlagOverride(t *testing.T) {
	t.Setenv("FEATURE_WATCH_PARTIES", "false")
	t.Setenv("FEATURE_MOVIE_CHAIN", "true")

	f := LoadFeatureFlags()

	assert.False(t, f.Enabled(FeatureWatchParties))
	assert.True(t, f.Enabled(FeatureMovieChain))
}

func TestFeatureFlags_RuntimeToggle(t *testing.T) {
	f := LoadFeatureFlags()

	f.Disable(FeatureMovieChain)
	assert.False(t, f.Enabled(FeatureMovieChain))

	f.Enable(FeatureMovieChain)
	assert.True(t, f.Enabled(FeatureMovieChain))
}

func TestConfigValidate(t *testing.T) {
	cfg := &Config{
		Discord: DiscordConfig{Token: "token"},
		Storage: StorageConfig{Driver: StorageSQLite, SQLitePath: "cinema.db"},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Discord.Token = ""
	assert.Error(t, cfg.Validate())

	cfg.Discord.Token = "token"
	cfg.Discord.UseWebhook = true
	assert.Error(t, cfg.Validate())
	cfg.Discord.PublicKey = "abcd"
	assert.NoError(t, cfg.Validate())

	cfg.Storage = StorageConfig{Driver: StoragePostgres}
	assert.Error(t, cfg.Validate())
	cfg.Storage.PostgresURL = "postgres://localhost/cinema"
	assert.NoError(t, cfg.Validate())

	cfg.Storage.Driver = "mongodb"
	assert.Error(t, cfg.Validate())
}
