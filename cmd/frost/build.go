// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/barskern/frost/internal/release"

	"github.com/spf13/cobra"
)

var (
	// buildNoCache disables the toolchain's build cache
	buildNoCache bool

	// buildCmd builds the release image tagged from the project metadata.
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build the release image",
		Long: `Build the release image with the configured container engine.

The image tag is derived from the version declared in the project
metadata file, so bumping the version there is all a new release
needs. The toolchain's output is streamed through unchanged; on
failure the process exits with the toolchain's exit code.`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().BoolVar(&buildNoCache, "no-cache", false, "build without the toolchain's layer cache")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	provider, err := newTelemetryProvider(cmd.Context())
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer shutdownTelemetry(provider)

	releaser, err := newReleaser(
		release.WithNoCache(buildNoCache),
		release.WithTracer(provider.Tracer()),
	)
	if err != nil {
		return releaseFailure(os.Stderr, err)
	}

	tag, err := releaser.Build(cmd.Context())
	if err != nil {
		return releaseFailure(os.Stderr, err)
	}

	fmt.Printf("%s Built %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(tag.String()))
	return nil
}
