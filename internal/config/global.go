// SPDX-License-Identifier: MPL-2.0

package config

import "context"

var (
	// globalConfig caches the loaded configuration for the process lifetime.
	globalConfig *Config
	// configPath records which file globalConfig was loaded from.
	configPath string
	// errLastLoad retains the most recent load failure for LastLoadError.
	errLastLoad error

	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
	// configFilePathOverride forces loading from a specific config file.
	// Set from the --config flag before any Load call.
	configFilePathOverride string
)

// Load returns the cached configuration, reading it from disk on first use.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFilePathOverride,
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = path
	errLastLoad = nil

	return cfg, nil
}

// Get returns the configuration, falling back to defaults when loading fails.
// The load error is retained for LastLoadError so the command layer can
// surface it without aborting startup.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		errLastLoad = err
		return DefaultConfig()
	}
	return cfg
}

// LastLoadError returns the error from the most recent failed load, or nil
// when the last load succeeded.
func LastLoadError() error {
	return errLastLoad
}

// ConfigFilePath returns the path of the loaded config file ("" when only
// defaults and environment variables applied, or nothing is loaded yet).
//
//nolint:revive // config.ConfigFilePath reads better than config.FilePath at call sites
func ConfigFilePath() string {
	return configPath
}

// Reset clears the cache and all overrides. Call from test cleanup to
// restore defaults.
func Reset() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
	configDirOverride = ""
	configFilePathOverride = ""
}

// ResetCache clears the cached configuration while preserving overrides,
// forcing the next Load to re-read from disk.
func ResetCache() {
	globalConfig = nil
	configPath = ""
	errLastLoad = nil
}

// SetConfigDirOverride sets a custom config directory path and clears the
// cache. This is primarily intended for testing to bypass os.UserHomeDir()
// which doesn't reliably respect the HOME env var on all platforms (e.g.,
// macOS in CI).
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
	ResetCache()
}

// SetConfigFilePathOverride forces subsequent loads to read the given config
// file exclusively and clears the cache. The command layer sets this from
// the --config flag.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
	ResetCache()
}
