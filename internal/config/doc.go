// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with TOML as the file format.
//
// Configuration is loaded from ~/.config/frost/config.toml (or XDG equivalent on Linux,
// ~/Library/Application Support/frost/config.toml on macOS, %APPDATA%\frost\config.toml
// on Windows), then overlaid with the project metadata file frost.toml from the working
// directory when one exists. Environment variables (CLIENT_ID, CLIENT_SECRET,
// FROST_SENSOR_ID, PROMSCALE_* and friends) take precedence over both files.
//
// The package provides type-safe configuration access covering container engine
// selection, release settings, the MET Norway client, the Promscale client, sync
// element mappings, telemetry and UI settings. Values are validated after loading
// via the typed fields' IsValid methods.
package config
