// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// ContainerEngineAuto picks whichever container engine is available,
	// preferring Docker.
	ContainerEngineAuto ContainerEngine = "auto"
	// ContainerEngineDocker uses Docker as the container toolchain.
	ContainerEngineDocker ContainerEngine = "docker"
	// ContainerEnginePodman uses Podman as the container toolchain.
	ContainerEnginePodman ContainerEngine = "podman"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// ExporterNone disables span export.
	ExporterNone ExporterKind = "none"
	// ExporterStdout writes spans to stdout for local inspection.
	ExporterStdout ExporterKind = "stdout"
	// ExporterOTLP ships spans to an OTLP collector over gRPC.
	ExporterOTLP ExporterKind = "otlp"
)

var (
	// ErrInvalidContainerEngine is returned when a ContainerEngine value is not recognized.
	ErrInvalidContainerEngine = errors.New("invalid container engine")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidExporterKind is returned when an ExporterKind value is not recognized.
	ErrInvalidExporterKind = errors.New("invalid exporter kind")
	// ErrInvalidSensorID is returned when a SensorID value is malformed.
	ErrInvalidSensorID = errors.New("invalid sensor id")
	// ErrInvalidElementID is returned when an ElementID value is malformed.
	ErrInvalidElementID = errors.New("invalid element id")
	// ErrInvalidMetricName is returned when a MetricName value is malformed.
	ErrInvalidMetricName = errors.New("invalid metric name")
	// ErrInvalidEndpointURL is returned when an EndpointURL value is not an http(s) URL.
	ErrInvalidEndpointURL = errors.New("invalid endpoint url")
	// ErrInvalidCertFilePath is returned when a CertFilePath value is whitespace-only.
	ErrInvalidCertFilePath = errors.New("invalid certificate file path")
	// ErrInvalidMetadataFilePath is returned when a MetadataFilePath value is empty or whitespace-only.
	ErrInvalidMetadataFilePath = errors.New("invalid metadata file path")
	// ErrInvalidBuildContextDir is returned when a BuildContextDir value is empty or whitespace-only.
	ErrInvalidBuildContextDir = errors.New("invalid build context dir")
	// ErrInvalidDockerfilePath is returned when a DockerfilePath value is whitespace-only.
	ErrInvalidDockerfilePath = errors.New("invalid dockerfile path")
	// ErrInvalidElementMapping is the sentinel error wrapped by InvalidElementMappingError.
	ErrInvalidElementMapping = errors.New("invalid element mapping")
	// ErrInvalidReleaseConfig is the sentinel error wrapped by InvalidReleaseConfigError.
	ErrInvalidReleaseConfig = errors.New("invalid release config")
	// ErrInvalidMetNoConfig is the sentinel error wrapped by InvalidMetNoConfigError.
	ErrInvalidMetNoConfig = errors.New("invalid metno config")
	// ErrInvalidPromscaleConfig is the sentinel error wrapped by InvalidPromscaleConfigError.
	ErrInvalidPromscaleConfig = errors.New("invalid promscale config")
	// ErrInvalidSyncConfig is the sentinel error wrapped by InvalidSyncConfigError.
	ErrInvalidSyncConfig = errors.New("invalid sync config")
	// ErrInvalidTelemetryConfig is the sentinel error wrapped by InvalidTelemetryConfigError.
	ErrInvalidTelemetryConfig = errors.New("invalid telemetry config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ContainerEngine specifies which container toolchain to use for
	// image build and publish operations.
	ContainerEngine string

	// InvalidContainerEngineError is returned when a ContainerEngine value is not recognized.
	// It wraps ErrInvalidContainerEngine for errors.Is() compatibility.
	InvalidContainerEngineError struct {
		Value ContainerEngine
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// ExporterKind specifies the trace span exporter.
	// Defined locally to avoid coupling config to internal/telemetry;
	// the command layer casts at the boundary.
	ExporterKind string

	// InvalidExporterKindError is returned when an ExporterKind value is not recognized.
	// It wraps ErrInvalidExporterKind for errors.Is() compatibility.
	InvalidExporterKindError struct {
		Value ExporterKind
	}

	// SensorID identifies an observation source in the MET Norway sensor
	// registry (e.g., "SN19780"). A valid ID is "SN" followed by digits.
	SensorID string

	// InvalidSensorIDError is returned when a SensorID value is malformed.
	// It wraps ErrInvalidSensorID for errors.Is() compatibility.
	InvalidSensorIDError struct {
		Value SensorID
	}

	// ElementID names an observation element in the MET Norway API
	// (e.g., "air_temperature"). A valid ID is non-empty lowercase
	// snake_case.
	ElementID string

	// InvalidElementIDError is returned when an ElementID value is malformed.
	// It wraps ErrInvalidElementID for errors.Is() compatibility.
	InvalidElementIDError struct {
		Value ElementID
	}

	// MetricName names the Prometheus-style metric an element is stored
	// under (e.g., "temperature_met"). Valid names match the Prometheus
	// metric name charset.
	MetricName string

	// InvalidMetricNameError is returned when a MetricName value is malformed.
	// It wraps ErrInvalidMetricName for errors.Is() compatibility.
	InvalidMetricNameError struct {
		Value MetricName
	}

	// EndpointURL is an http(s) URL of a remote service endpoint.
	// A valid value parses as a URL with an http or https scheme and a host.
	EndpointURL string

	// InvalidEndpointURLError is returned when an EndpointURL value does not
	// parse as an http(s) URL. It wraps ErrInvalidEndpointURL for errors.Is().
	InvalidEndpointURLError struct {
		Value EndpointURL
	}

	// CertFilePath is a filesystem path to a CA certificate bundle.
	// The zero value ("") is valid and means "skip server certificate
	// verification". Non-zero values must not be whitespace-only.
	CertFilePath string

	// InvalidCertFilePathError is returned when a CertFilePath value is
	// non-empty but whitespace-only.
	InvalidCertFilePathError struct {
		Value CertFilePath
	}

	// MetadataFilePath is the path to the project metadata file the release
	// version is resolved from. A valid path must be non-empty and not
	// whitespace-only.
	MetadataFilePath string

	// InvalidMetadataFilePathError is returned when a MetadataFilePath value
	// is empty or whitespace-only. It wraps ErrInvalidMetadataFilePath.
	InvalidMetadataFilePathError struct {
		Value MetadataFilePath
	}

	// BuildContextDir is the container build context directory.
	// A valid value must be non-empty and not whitespace-only.
	BuildContextDir string

	// InvalidBuildContextDirError is returned when a BuildContextDir value
	// is empty or whitespace-only. It wraps ErrInvalidBuildContextDir.
	InvalidBuildContextDirError struct {
		Value BuildContextDir
	}

	// DockerfilePath is the Dockerfile path relative to the build context.
	// The zero value ("") is valid and means "use the toolchain's default
	// lookup". Non-zero values must not be whitespace-only.
	DockerfilePath string

	// InvalidDockerfilePathError is returned when a DockerfilePath value is
	// non-empty but whitespace-only.
	InvalidDockerfilePathError struct {
		Value DockerfilePath
	}

	// InvalidElementMappingError is returned when an ElementMapping has invalid fields.
	// It wraps ErrInvalidElementMapping for errors.Is() compatibility and collects
	// field-level validation errors from ID and Metric.
	InvalidElementMappingError struct {
		FieldErrors []error
	}

	// InvalidReleaseConfigError is returned when a ReleaseConfig has invalid fields.
	// It wraps ErrInvalidReleaseConfig for errors.Is() compatibility.
	InvalidReleaseConfigError struct {
		FieldErrors []error
	}

	// InvalidMetNoConfigError is returned when a MetNoConfig has invalid fields.
	// It wraps ErrInvalidMetNoConfig for errors.Is() compatibility.
	InvalidMetNoConfigError struct {
		FieldErrors []error
	}

	// InvalidPromscaleConfigError is returned when a PromscaleConfig has invalid fields.
	// It wraps ErrInvalidPromscaleConfig for errors.Is() compatibility.
	InvalidPromscaleConfigError struct {
		FieldErrors []error
	}

	// InvalidSyncConfigError is returned when a SyncConfig has invalid fields.
	// It wraps ErrInvalidSyncConfig for errors.Is() compatibility.
	InvalidSyncConfigError struct {
		FieldErrors []error
	}

	// InvalidTelemetryConfigError is returned when a TelemetryConfig has invalid fields.
	// It wraps ErrInvalidTelemetryConfig for errors.Is() compatibility.
	InvalidTelemetryConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// ElementMapping binds a MET Norway observation element to the metric
	// name it is stored under.
	ElementMapping struct {
		// ID is the MET Norway element identifier.
		ID ElementID `json:"id" mapstructure:"id"`
		// Metric is the metric name the element's observations are stored under.
		Metric MetricName `json:"metric" mapstructure:"metric"`
	}

	// Config holds the application configuration.
	Config struct {
		// ContainerEngine specifies "auto", "docker" or "podman"
		ContainerEngine ContainerEngine `json:"container_engine" mapstructure:"container_engine"`
		// Release configures image build and publish
		Release ReleaseConfig `json:"release" mapstructure:"release"`
		// MetNo configures the MET Norway observation client
		MetNo MetNoConfig `json:"metno" mapstructure:"metno"`
		// Promscale configures the metric store client
		Promscale PromscaleConfig `json:"promscale" mapstructure:"promscale"`
		// Sync configures the observation sync run
		Sync SyncConfig `json:"sync" mapstructure:"sync"`
		// Telemetry configures trace export
		Telemetry TelemetryConfig `json:"telemetry" mapstructure:"telemetry"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ReleaseConfig configures image build and publish behavior.
	ReleaseConfig struct {
		// MetadataPath is the project metadata file the version is resolved from
		MetadataPath MetadataFilePath `json:"metadata_path" mapstructure:"metadata_path"`
		// ContextDir is the container build context directory
		ContextDir BuildContextDir `json:"context_dir" mapstructure:"context_dir"`
		// Dockerfile overrides the Dockerfile path relative to the context
		Dockerfile DockerfilePath `json:"dockerfile" mapstructure:"dockerfile"`
	}

	// MetNoConfig configures the MET Norway observation client.
	MetNoConfig struct {
		// BaseURL is the API root
		BaseURL EndpointURL `json:"base_url" mapstructure:"base_url"`
		// SensorID is the observation source to read from
		SensorID SensorID `json:"sensor_id" mapstructure:"sensor_id"`
		// ClientID is the API credential (basic auth user)
		ClientID string `json:"client_id" mapstructure:"client_id"`
		// ClientSecret is the API credential (basic auth password)
		ClientSecret string `json:"client_secret" mapstructure:"client_secret"`
		// CacheTTL enables response caching when positive (0 disables)
		CacheTTL time.Duration `json:"cache_ttl" mapstructure:"cache_ttl"`
	}

	// PromscaleConfig configures the metric store client.
	PromscaleConfig struct {
		// WriteURL is the remote-write endpoint
		WriteURL EndpointURL `json:"write_url" mapstructure:"write_url"`
		// QueryURL is the PromQL query endpoint
		QueryURL EndpointURL `json:"query_url" mapstructure:"query_url"`
		// CertPath is the CA bundle used to verify the server; empty skips verification
		CertPath CertFilePath `json:"cert_path" mapstructure:"cert_path"`
	}

	// SyncConfig configures the observation sync run.
	SyncConfig struct {
		// Location is the value of the "location" label on stored series
		Location string `json:"location" mapstructure:"location"`
		// Elements lists the element-to-metric mappings to sync
		Elements []ElementMapping `json:"elements" mapstructure:"elements"`
	}

	// TelemetryConfig configures trace export.
	TelemetryConfig struct {
		// Enabled turns tracing on
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// Exporter selects the span exporter ("none", "stdout", "otlp")
		Exporter ExporterKind `json:"exporter" mapstructure:"exporter"`
		// OTLPEndpoint is the collector host:port for the otlp exporter
		OTLPEndpoint string `json:"otlp_endpoint" mapstructure:"otlp_endpoint"`
		// SampleRate is the trace sampling ratio in [0, 1]
		SampleRate float64 `json:"sample_rate" mapstructure:"sample_rate"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// Error implements the error interface for InvalidContainerEngineError.
func (e *InvalidContainerEngineError) Error() string {
	return fmt.Sprintf("invalid container engine %q (valid: auto, docker, podman)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidContainerEngineError) Unwrap() error { return ErrInvalidContainerEngine }

// String returns the string representation of the ContainerEngine.
func (ce ContainerEngine) String() string { return string(ce) }

// IsValid returns whether the ContainerEngine is one of the defined engine types,
// and a list of validation errors if it is not.
func (ce ContainerEngine) IsValid() (bool, []error) {
	switch ce {
	case ContainerEngineAuto, ContainerEngineDocker, ContainerEnginePodman:
		return true, nil
	default:
		return false, []error{&InvalidContainerEngineError{Value: ce}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidExporterKindError.
func (e *InvalidExporterKindError) Error() string {
	return fmt.Sprintf("invalid exporter kind %q (valid: none, stdout, otlp)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidExporterKindError) Unwrap() error { return ErrInvalidExporterKind }

// String returns the string representation of the ExporterKind.
func (k ExporterKind) String() string { return string(k) }

// IsValid returns whether the ExporterKind is one of the defined exporters,
// and a list of validation errors if it is not.
func (k ExporterKind) IsValid() (bool, []error) {
	switch k {
	case ExporterNone, ExporterStdout, ExporterOTLP:
		return true, nil
	default:
		return false, []error{&InvalidExporterKindError{Value: k}}
	}
}

// Error implements the error interface for InvalidSensorIDError.
func (e *InvalidSensorIDError) Error() string {
	return fmt.Sprintf("invalid sensor id %q (expected \"SN\" followed by digits, e.g. \"SN19780\")", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidSensorIDError) Unwrap() error { return ErrInvalidSensorID }

// String returns the string representation of the SensorID.
func (s SensorID) String() string { return string(s) }

// IsValid returns whether the SensorID is "SN" followed by at least one digit,
// and a list of validation errors if it is not.
func (s SensorID) IsValid() (bool, []error) {
	rest, ok := strings.CutPrefix(string(s), "SN")
	if !ok || rest == "" {
		return false, []error{&InvalidSensorIDError{Value: s}}
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false, []error{&InvalidSensorIDError{Value: s}}
		}
	}
	return true, nil
}

// Error implements the error interface for InvalidElementIDError.
func (e *InvalidElementIDError) Error() string {
	return fmt.Sprintf("invalid element id %q (expected lowercase snake_case, e.g. \"air_temperature\")", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidElementIDError) Unwrap() error { return ErrInvalidElementID }

// String returns the string representation of the ElementID.
func (id ElementID) String() string { return string(id) }

// IsValid returns whether the ElementID is non-empty lowercase snake_case,
// and a list of validation errors if it is not.
func (id ElementID) IsValid() (bool, []error) {
	if id == "" {
		return false, []error{&InvalidElementIDError{Value: id}}
	}
	for _, r := range id {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
			return false, []error{&InvalidElementIDError{Value: id}}
		}
	}
	return true, nil
}

// Error implements the error interface for InvalidMetricNameError.
func (e *InvalidMetricNameError) Error() string {
	return fmt.Sprintf("invalid metric name %q (must match the Prometheus metric name charset)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidMetricNameError) Unwrap() error { return ErrInvalidMetricName }

// String returns the string representation of the MetricName.
func (m MetricName) String() string { return string(m) }

// IsValid returns whether the MetricName matches the Prometheus metric name
// charset ([a-zA-Z_:][a-zA-Z0-9_:]*), and a list of validation errors if not.
func (m MetricName) IsValid() (bool, []error) {
	if m == "" {
		return false, []error{&InvalidMetricNameError{Value: m}}
	}
	for i, r := range m {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || r == ':'
		digit := r >= '0' && r <= '9'
		if i == 0 && !letter {
			return false, []error{&InvalidMetricNameError{Value: m}}
		}
		if !letter && !digit {
			return false, []error{&InvalidMetricNameError{Value: m}}
		}
	}
	return true, nil
}

// Error implements the error interface for InvalidEndpointURLError.
func (e *InvalidEndpointURLError) Error() string {
	return fmt.Sprintf("invalid endpoint url %q (must be an http or https URL)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidEndpointURLError) Unwrap() error { return ErrInvalidEndpointURL }

// String returns the string representation of the EndpointURL.
func (u EndpointURL) String() string { return string(u) }

// IsValid returns whether the EndpointURL parses as an http(s) URL with a
// host, and a list of validation errors if it does not.
func (u EndpointURL) IsValid() (bool, []error) {
	parsed, err := url.Parse(string(u))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return false, []error{&InvalidEndpointURLError{Value: u}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCertFilePathError.
func (e *InvalidCertFilePathError) Error() string {
	return fmt.Sprintf("invalid certificate file path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidCertFilePathError) Unwrap() error { return ErrInvalidCertFilePath }

// String returns the string representation of the CertFilePath.
func (p CertFilePath) String() string { return string(p) }

// IsValid returns whether the CertFilePath is valid.
// The zero value ("") is valid (means "skip server certificate verification").
// Non-zero values must not be whitespace-only.
func (p CertFilePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidCertFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidMetadataFilePathError.
func (e *InvalidMetadataFilePathError) Error() string {
	return fmt.Sprintf("invalid metadata file path %q: must be non-empty", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidMetadataFilePathError) Unwrap() error { return ErrInvalidMetadataFilePath }

// String returns the string representation of the MetadataFilePath.
func (p MetadataFilePath) String() string { return string(p) }

// IsValid returns whether the MetadataFilePath is non-empty and not
// whitespace-only, and a list of validation errors if it is not.
func (p MetadataFilePath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidMetadataFilePathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidBuildContextDirError.
func (e *InvalidBuildContextDirError) Error() string {
	return fmt.Sprintf("invalid build context dir %q: must be non-empty", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidBuildContextDirError) Unwrap() error { return ErrInvalidBuildContextDir }

// String returns the string representation of the BuildContextDir.
func (d BuildContextDir) String() string { return string(d) }

// IsValid returns whether the BuildContextDir is non-empty and not
// whitespace-only, and a list of validation errors if it is not.
func (d BuildContextDir) IsValid() (bool, []error) {
	if strings.TrimSpace(string(d)) == "" {
		return false, []error{&InvalidBuildContextDirError{Value: d}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDockerfilePathError.
func (e *InvalidDockerfilePathError) Error() string {
	return fmt.Sprintf("invalid dockerfile path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidDockerfilePathError) Unwrap() error { return ErrInvalidDockerfilePath }

// String returns the string representation of the DockerfilePath.
func (p DockerfilePath) String() string { return string(p) }

// IsValid returns whether the DockerfilePath is valid.
// The zero value ("") is valid (means "use the toolchain's default lookup").
// Non-zero values must not be whitespace-only.
func (p DockerfilePath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidDockerfilePathError{Value: p}}
	}
	return true, nil
}

// IsValid returns whether the ElementMapping has valid fields.
// It delegates to ID.IsValid() and Metric.IsValid().
func (m ElementMapping) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := m.ID.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := m.Metric.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidElementMappingError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidElementMappingError.
func (e *InvalidElementMappingError) Error() string {
	return fmt.Sprintf("invalid element mapping: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidElementMapping for errors.Is() compatibility.
func (e *InvalidElementMappingError) Unwrap() error { return ErrInvalidElementMapping }

// IsValid returns whether the ReleaseConfig has valid fields.
// It delegates to MetadataPath.IsValid(), ContextDir.IsValid() and
// Dockerfile.IsValid().
func (c ReleaseConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.MetadataPath.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ContextDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Dockerfile.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidReleaseConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidReleaseConfigError.
func (e *InvalidReleaseConfigError) Error() string {
	return fmt.Sprintf("invalid release config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidReleaseConfig for errors.Is() compatibility.
func (e *InvalidReleaseConfigError) Unwrap() error { return ErrInvalidReleaseConfig }

// IsValid returns whether the MetNoConfig has valid fields.
// It delegates to BaseURL.IsValid() and SensorID.IsValid(); credentials are
// not validated here since the API itself rejects bad ones, and CacheTTL
// must not be negative.
func (c MetNoConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.BaseURL.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.SensorID.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("cache_ttl must not be negative, got %s", c.CacheTTL))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidMetNoConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidMetNoConfigError.
func (e *InvalidMetNoConfigError) Error() string {
	return fmt.Sprintf("invalid metno config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidMetNoConfig for errors.Is() compatibility.
func (e *InvalidMetNoConfigError) Unwrap() error { return ErrInvalidMetNoConfig }

// IsValid returns whether the PromscaleConfig has valid fields.
// It delegates to WriteURL.IsValid(), QueryURL.IsValid() and CertPath.IsValid().
func (c PromscaleConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.WriteURL.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.QueryURL.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.CertPath.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPromscaleConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPromscaleConfigError.
func (e *InvalidPromscaleConfigError) Error() string {
	return fmt.Sprintf("invalid promscale config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidPromscaleConfig for errors.Is() compatibility.
func (e *InvalidPromscaleConfigError) Unwrap() error { return ErrInvalidPromscaleConfig }

// IsValid returns whether the SyncConfig has valid fields.
// It delegates to each element mapping's IsValid(); Location needs no
// validation (any label value is accepted).
func (c SyncConfig) IsValid() (bool, []error) {
	var errs []error
	for _, mapping := range c.Elements {
		if valid, fieldErrs := mapping.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidSyncConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSyncConfigError.
func (e *InvalidSyncConfigError) Error() string {
	return fmt.Sprintf("invalid sync config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidSyncConfig for errors.Is() compatibility.
func (e *InvalidSyncConfigError) Unwrap() error { return ErrInvalidSyncConfig }

// IsValid returns whether the TelemetryConfig has valid fields.
// It delegates to Exporter.IsValid(), requires SampleRate in [0, 1], and
// requires OTLPEndpoint when the otlp exporter is selected and enabled.
func (c TelemetryConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Exporter.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("sample_rate must be in [0, 1], got %v", c.SampleRate))
	}
	if c.Enabled && c.Exporter == ExporterOTLP && strings.TrimSpace(c.OTLPEndpoint) == "" {
		errs = append(errs, fmt.Errorf("otlp_endpoint is required when the otlp exporter is enabled"))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidTelemetryConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidTelemetryConfigError.
func (e *InvalidTelemetryConfigError) Error() string {
	return fmt.Sprintf("invalid telemetry config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidTelemetryConfig for errors.Is() compatibility.
func (e *InvalidTelemetryConfigError) Unwrap() error { return ErrInvalidTelemetryConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to ContainerEngine.IsValid() and each section's IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ContainerEngine.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Release.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.MetNo.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Promscale.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Sync.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Telemetry.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ContainerEngine: ContainerEngineAuto,
		Release: ReleaseConfig{
			MetadataPath: "frost.toml",
			ContextDir:   ".",
			Dockerfile:   "", // Toolchain default lookup
		},
		MetNo: MetNoConfig{
			BaseURL:  "https://frost.met.no",
			SensorID: "SN19780", // Vollen
			CacheTTL: 0,         // Caching is opt-in
		},
		Promscale: PromscaleConfig{
			WriteURL: "https://promscale.service.ruud.cloud/write",
			QueryURL: "https://promscale.service.ruud.cloud/api/v1/query",
			CertPath: "", // Skip server certificate verification
		},
		Sync: SyncConfig{
			Location: "outside",
			Elements: []ElementMapping{
				{ID: "air_temperature", Metric: "temperature_met"},
				{ID: "relative_humidity", Metric: "humidity_met"},
			},
		},
		Telemetry: TelemetryConfig{
			Enabled:    false,
			Exporter:   ExporterNone,
			SampleRate: 1.0,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
