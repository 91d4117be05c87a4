// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/barskern/frost/internal/diagnose"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "frost"
	// ConfigFileName is the name of the global config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// LocalConfigFileName is the project metadata file in the working
	// directory. Besides the release version it may carry any of the
	// configuration tables, which overlay the global config file.
	LocalConfigFileName = "frost.toml"

	// maxConfigFileSize caps config files at 1 MiB to avoid accidental
	// parsing of huge files.
	maxConfigFileSize = 1 << 20
)

// ConfigDir returns the frost configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // config.ConfigDir reads better than config.Dir at call sites
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// LoadOptions pins the sources a single load reads from. The zero value
// follows the normal lookup order.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It reports the file the configuration came from, ""
// when only defaults and environment variables applied. Callers that want
// caching wrap this function.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("container_engine", defaults.ContainerEngine)
	v.SetDefault("release.metadata_path", defaults.Release.MetadataPath)
	v.SetDefault("release.context_dir", defaults.Release.ContextDir)
	v.SetDefault("release.dockerfile", defaults.Release.Dockerfile)
	v.SetDefault("metno.base_url", defaults.MetNo.BaseURL)
	v.SetDefault("metno.sensor_id", defaults.MetNo.SensorID)
	v.SetDefault("metno.client_id", defaults.MetNo.ClientID)
	v.SetDefault("metno.client_secret", defaults.MetNo.ClientSecret)
	v.SetDefault("metno.cache_ttl", defaults.MetNo.CacheTTL)
	v.SetDefault("promscale.write_url", defaults.Promscale.WriteURL)
	v.SetDefault("promscale.query_url", defaults.Promscale.QueryURL)
	v.SetDefault("promscale.cert_path", defaults.Promscale.CertPath)
	v.SetDefault("sync.location", defaults.Sync.Location)
	v.SetDefault("sync.elements", defaults.Sync.Elements)
	v.SetDefault("telemetry.enabled", defaults.Telemetry.Enabled)
	v.SetDefault("telemetry.exporter", defaults.Telemetry.Exporter)
	v.SetDefault("telemetry.otlp_endpoint", defaults.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.sample_rate", defaults.Telemetry.SampleRate)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	// Environment variables take precedence over file values, matching the
	// deployment convention where credentials arrive via the environment.
	if err := bindEnvVars(v); err != nil {
		return nil, "", fmt.Errorf("failed to bind environment variables: %w", err)
	}

	resolvedPath := ""

	// If a custom config file path is set via --config flag, use it exclusively.
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", diagnose.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				WithSuggestion("Use 'frost config show' to see the effective configuration").
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		if err := loadTOMLIntoViper(v, opts.ConfigFilePath); err != nil {
			return nil, "", diagnose.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Check that the file contains valid TOML syntax").
				WithSuggestion("Verify the configuration values match the expected types").
				WithSuggestion("See 'frost config --help' for configuration options").
				Wrap(err).
				BuildError()
		}
		resolvedPath = opts.ConfigFilePath
	} else {
		// Get config directory
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
		if err != nil {
			return nil, "", err
		}

		// Load the global config file first when present.
		globalPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(globalPath) {
			if err := loadTOMLIntoViper(v, globalPath); err != nil {
				return nil, "", diagnose.NewErrorContext().
					WithOperation("load configuration").
					WithResource(globalPath).
					WithSuggestion("Check that the file contains valid TOML syntax").
					WithSuggestion("Verify the configuration values match the expected types").
					WithSuggestion("See 'frost config --help' for configuration options").
					Wrap(err).
					BuildError()
			}
			resolvedPath = globalPath
		}

		// Then overlay the project metadata file from the working directory.
		// A frost.toml holding only the version line must not mask global
		// settings, so this is a merge rather than an either-or lookup.
		if fileExists(LocalConfigFileName) {
			if err := loadTOMLIntoViper(v, LocalConfigFileName); err != nil {
				return nil, "", diagnose.NewErrorContext().
					WithOperation("load configuration").
					WithResource(LocalConfigFileName).
					WithSuggestion("Check that the file contains valid TOML syntax").
					WithSuggestion("Verify the configuration values match the expected types").
					WithSuggestion("See 'frost config --help' for configuration options").
					Wrap(err).
					BuildError()
			}
			resolvedPath = LocalConfigFileName
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate element mapping constraints that per-field checks cannot
	// express: element id uniqueness and metric name uniqueness.
	if err := validateElements("sync.elements", cfg.Sync.Elements); err != nil {
		return nil, "", diagnose.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Ensure each element id appears at most once").
			WithSuggestion("Ensure each metric name is used by at most one element").
			Wrap(err).
			BuildError()
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", diagnose.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Compare the values against 'frost config show'").
			WithSuggestion("See 'frost config --help' for configuration options").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// bindEnvVars wires the environment variables the deployment relies on to
// their config keys. Viper gives bound variables precedence over file values.
func bindEnvVars(v *viper.Viper) error {
	bindings := [][2]string{
		{"metno.client_id", "CLIENT_ID"},
		{"metno.client_secret", "CLIENT_SECRET"},
		{"metno.sensor_id", "FROST_SENSOR_ID"},
		{"metno.cache_ttl", "FROST_CACHE_TTL"},
		{"promscale.write_url", "PROMSCALE_WRITE_URL"},
		{"promscale.query_url", "PROMSCALE_QUERY_URL"},
		{"promscale.cert_path", "PROMSCALE_CERT_PATH"},
	}
	for _, binding := range bindings {
		if err := v.BindEnv(binding[0], binding[1]); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", binding[1], binding[0], err)
		}
	}
	return nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadTOMLIntoViper parses a TOML file and merges its contents into Viper.
//
// Note: This decodes to map[string]any (not a struct) so Viper can layer the
// file between defaults and environment overrides. Unknown keys are accepted;
// in particular the project metadata file's top-level "version" key passes
// through here without being consumed by any config field.
func loadTOMLIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > maxConfigFileSize {
		return fmt.Errorf("config file %s exceeds maximum size of %d bytes", path, maxConfigFileSize)
	}

	var configMap map[string]any
	if err := toml.Unmarshal(data, &configMap); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("%s:%d:%d: %s", path, row, col, decodeErr.String())
		}
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// validateElements checks element mappings for constraints that per-field
// validation cannot express:
//   - all element ids must be unique
//   - all metric names must be unique (two elements writing the same metric
//     would silently interleave their samples)
//
// The fieldName parameter is used in error messages to identify which config
// section failed validation.
func validateElements(fieldName string, elements []ElementMapping) error {
	seenIDs := make(map[ElementID]int)      // element id -> index of first occurrence
	seenMetrics := make(map[MetricName]int) // metric name -> index of first occurrence

	for i, entry := range elements {
		if firstIdx, exists := seenIDs[entry.ID]; exists {
			return fmt.Errorf("%s[%d]: duplicate element id %q (same as %s[%d])", fieldName, i, entry.ID, fieldName, firstIdx)
		}
		seenIDs[entry.ID] = i

		if firstIdx, exists := seenMetrics[entry.Metric]; exists {
			return fmt.Errorf("%s[%d]: metric %q already used by %s[%d]", fieldName, i, entry.Metric, fieldName, firstIdx)
		}
		seenMetrics[entry.Metric] = i
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	defaults := DefaultConfig()
	tomlContent := GenerateTOML(defaults)

	if err := os.WriteFile(cfgPath, []byte(tomlContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	tomlContent := GenerateTOML(cfg)

	if err := os.WriteFile(cfgPath, []byte(tomlContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateTOML generates a TOML representation of the configuration
func GenerateTOML(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("# Frost configuration file.\n")
	sb.WriteString("# See https://github.com/barskern/frost for documentation.\n\n")

	// Container engine
	sb.WriteString(fmt.Sprintf("container_engine = %q\n", cfg.ContainerEngine))

	// Release config
	sb.WriteString("\n[release]\n")
	sb.WriteString(fmt.Sprintf("metadata_path = %q\n", cfg.Release.MetadataPath))
	sb.WriteString(fmt.Sprintf("context_dir = %q\n", cfg.Release.ContextDir))
	if cfg.Release.Dockerfile != "" {
		sb.WriteString(fmt.Sprintf("dockerfile = %q\n", cfg.Release.Dockerfile))
	}

	// MET Norway config
	sb.WriteString("\n[metno]\n")
	sb.WriteString(fmt.Sprintf("base_url = %q\n", cfg.MetNo.BaseURL))
	sb.WriteString(fmt.Sprintf("sensor_id = %q\n", cfg.MetNo.SensorID))
	if cfg.MetNo.ClientID != "" {
		sb.WriteString(fmt.Sprintf("client_id = %q\n", cfg.MetNo.ClientID))
	}
	if cfg.MetNo.ClientSecret != "" {
		sb.WriteString(fmt.Sprintf("client_secret = %q\n", cfg.MetNo.ClientSecret))
	}
	sb.WriteString(fmt.Sprintf("cache_ttl = %q\n", cfg.MetNo.CacheTTL))

	// Promscale config
	sb.WriteString("\n[promscale]\n")
	sb.WriteString(fmt.Sprintf("write_url = %q\n", cfg.Promscale.WriteURL))
	sb.WriteString(fmt.Sprintf("query_url = %q\n", cfg.Promscale.QueryURL))
	if cfg.Promscale.CertPath != "" {
		sb.WriteString(fmt.Sprintf("cert_path = %q\n", cfg.Promscale.CertPath))
	}

	// Sync config
	sb.WriteString("\n[sync]\n")
	sb.WriteString(fmt.Sprintf("location = %q\n", cfg.Sync.Location))
	for _, entry := range cfg.Sync.Elements {
		sb.WriteString("\n[[sync.elements]]\n")
		sb.WriteString(fmt.Sprintf("id = %q\n", entry.ID))
		sb.WriteString(fmt.Sprintf("metric = %q\n", entry.Metric))
	}

	// Telemetry config
	sb.WriteString("\n[telemetry]\n")
	sb.WriteString(fmt.Sprintf("enabled = %v\n", cfg.Telemetry.Enabled))
	sb.WriteString(fmt.Sprintf("exporter = %q\n", cfg.Telemetry.Exporter))
	if cfg.Telemetry.OTLPEndpoint != "" {
		sb.WriteString(fmt.Sprintf("otlp_endpoint = %q\n", cfg.Telemetry.OTLPEndpoint))
	}
	sb.WriteString(fmt.Sprintf("sample_rate = %s\n", formatTOMLFloat(cfg.Telemetry.SampleRate)))

	// UI config
	sb.WriteString("\n[ui]\n")
	sb.WriteString(fmt.Sprintf("color_scheme = %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("verbose = %v\n", cfg.UI.Verbose))

	return sb.String()
}

// formatTOMLFloat renders a float with an explicit decimal point so the value
// round-trips as a TOML float rather than an integer.
func formatTOMLFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
