package config

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrConfiguration is matched by every ConfigurationError.
var ErrConfiguration = errors.New("configuration error")

// ConfigurationError reports a missing third-party credential. The feature
// named by Feature falls back to mock or no-op output.
type ConfigurationError struct {
	Key     string
	Feature string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s not set: %s disabled, using fallback output", e.Key, e.Feature)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MissingCredentials lists one ConfigurationError per unset credential.
func (c *Config) MissingCredentials() []*ConfigurationError {
	checks := []struct {
		key, value, feature string
	}{
		{"GEMINI_API_KEY", c.GeminiAPIKey, "article and translation generation"},
		{"MEDIUM_TOKEN", c.MediumToken, "Medium publishing"},
		{"PINTEREST_TOKEN", c.PinterestToken, "Pinterest publishing"},
		{"SPOTIFY_CLIENT_ID", c.SpotifyClientID, "Spotify podcast upload"},
		{"SPOTIFY_CLIENT_SECRET", c.SpotifyClientSecret, "Spotify podcast upload"},
		{"GSC_CREDENTIALS_FILE", c.GSCCredentialsFile, "Search Console sitemap submission"},
	}

	var missing []*ConfigurationError
	for _, chk := range checks {
		if chk.value == "" {
			missing = append(missing, &ConfigurationError{Key: chk.key, Feature: chk.feature})
		}
	}
	return missing
}

// WarnMissingCredentials logs every missing credential. It never fails.
func (c *Config) WarnMissingCredentials() int {
	missing := c.MissingCredentials()
	for _, e := range missing {
		slog.Warn("credential missing", "key", e.Key, "feature", e.Feature, "error", e)
	}
	return len(missing)
}
