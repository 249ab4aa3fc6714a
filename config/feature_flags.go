package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// Predefined feature flag names.
const (
	// FeatureWelcomeMessages greets new members in the welcome channel.
	FeatureWelcomeMessages = "welcome_messages"

	// FeatureMovieChain enables the !moviechain game.
	FeatureMovieChain = "movie_chain"

	// FeatureWatchParties enables scheduling and reminders.
	FeatureWatchParties = "watch_parties"

	// FeatureRandomMovie enables the TMDB-backed !randommovie command.
	FeatureRandomMovie = "random_movie"

	// FeatureLeaderboardCache enables the Redis leaderboard cache.
	FeatureLeaderboardCache = "leaderboard_cache"
)

// FeatureFlags manages runtime feature toggles. Flags default to enabled and
// are switched off via FEATURES_DISABLED, a comma-separated list of names.
type FeatureFlags struct {
	mu       sync.RWMutex
	disabled map[string]bool
}

// LoadFeatureFlags reads flag state from the environment.
//
// FEATURES_DISABLED=movie_chain,random_movie turns those two off; a
// FEATURE_<NAME>=false entry does the same for a single flag.
func LoadFeatureFlags() *FeatureFlags {
	f := &FeatureFlags{disabled: make(map[string]bool)}

	for _, name := range strings.Split(os.Getenv("FEATURES_DISABLED"), ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name != "" {
			f.disabled[name] = true
		}
	}

	for _, name := range []string{
		FeatureWelcomeMessages,
		FeatureMovieChain,
		FeatureWatchParties,
		FeatureRandomMovie,
		FeatureLeaderboardCache,
	} {
		envKey := "FEATURE_" + strings.ToUpper(name)
		if val := os.Getenv(envKey); val != "" {
			if enabled, err := strconv.ParseBool(val); err == nil {
				f.disabled[name] = !enabled
			}
		}
	}

	return f
}

// Enabled reports whether a feature is on. Unknown names are on by default so
// new features never need a config change to ship.
func (f *FeatureFlags) Enabled(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return !f.disabled[strings.ToLower(name)]
}

// Disable turns a feature off at runtime.
func (f *FeatureFlags) Disable(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled[strings.ToLower(name)] = true
}

// Enable turns a feature on at runtime.
func (f *FeatureFlags) Enable(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.disabled, strings.ToLower(name))
}
