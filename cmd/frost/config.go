// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/barskern/frost/internal/config"
	"github.com/barskern/frost/internal/diagnose"

	"github.com/spf13/cobra"
)

// configCmd is the `frost config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage frost configuration",
	Long: `Manage frost configuration.

Configuration is stored in:
  - Linux: ~/.config/frost/config.toml
  - macOS: ~/Library/Application Support/frost/config.toml
  - Windows: %APPDATA%\frost\config.toml

A frost.toml in the working directory takes precedence, and API
credentials can be kept in a .env file next to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(config.GenerateTOML(config.Get()))
			return nil
		},
	})
}

func showConfig() error {
	if err := config.LastLoadError(); err != nil {
		renderDiagnostic(os.Stderr, diagnose.ConfigLoadFailedId)
		return err
	}
	cfg := config.Get()

	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path := config.ConfigFilePath(); path != "" {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", keyStyle.Render("container_engine"), valueStyle.Render(string(cfg.ContainerEngine)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("release"))
	fmt.Printf("  metadata_path: %s\n", valueStyle.Render(string(cfg.Release.MetadataPath)))
	fmt.Printf("  context_dir: %s\n", valueStyle.Render(string(cfg.Release.ContextDir)))
	if cfg.Release.Dockerfile != "" {
		fmt.Printf("  dockerfile: %s\n", valueStyle.Render(string(cfg.Release.Dockerfile)))
	} else {
		fmt.Printf("  dockerfile: %s\n", SubtitleStyle.Render("(toolchain default)"))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("metno"))
	fmt.Printf("  base_url: %s\n", valueStyle.Render(string(cfg.MetNo.BaseURL)))
	fmt.Printf("  sensor_id: %s\n", valueStyle.Render(string(cfg.MetNo.SensorID)))
	fmt.Printf("  client_id: %s\n", maskedCredential(cfg.MetNo.ClientID))
	fmt.Printf("  client_secret: %s\n", maskedCredential(cfg.MetNo.ClientSecret))
	fmt.Printf("  cache_ttl: %s\n", valueStyle.Render(cfg.MetNo.CacheTTL.String()))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("promscale"))
	fmt.Printf("  write_url: %s\n", valueStyle.Render(string(cfg.Promscale.WriteURL)))
	fmt.Printf("  query_url: %s\n", valueStyle.Render(string(cfg.Promscale.QueryURL)))
	if cfg.Promscale.CertPath != "" {
		fmt.Printf("  cert_path: %s\n", valueStyle.Render(string(cfg.Promscale.CertPath)))
	} else {
		fmt.Printf("  cert_path: %s\n", WarningStyle.Render("(certificate verification disabled)"))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("sync"))
	fmt.Printf("  location: %s\n", valueStyle.Render(cfg.Sync.Location))
	fmt.Printf("  elements:\n")
	if len(cfg.Sync.Elements) == 0 {
		fmt.Printf("    %s\n", SubtitleStyle.Render("(using defaults)"))
	} else {
		for _, m := range cfg.Sync.Elements {
			fmt.Printf("    - %s as %s\n", valueStyle.Render(string(m.ID)), valueStyle.Render(string(m.Metric)))
		}
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("telemetry"))
	fmt.Printf("  enabled: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Telemetry.Enabled)))
	fmt.Printf("  exporter: %s\n", valueStyle.Render(string(cfg.Telemetry.Exporter)))
	fmt.Printf("  otlp_endpoint: %s\n", valueStyle.Render(cfg.Telemetry.OTLPEndpoint))
	fmt.Printf("  sample_rate: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Telemetry.SampleRate)))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// maskedCredential renders whether a secret is configured without leaking it.
func maskedCredential(value string) string {
	if value == "" {
		return WarningStyle.Render("(not set)")
	}
	return SuccessStyle.Render("(set)")
}

func initConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Configuration already exists at %s\n", cfgPath)
		return nil
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s\n", SuccessStyle.Render("✓"), cfgPath)
	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s\n", filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
	fmt.Printf("Project file: %s (when present in the working directory)\n", config.LocalConfigFileName)
	fmt.Printf("Dotenv file: %s (when present in the working directory)\n", config.DotenvFileName)

	return nil
}
