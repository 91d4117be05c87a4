// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/barskern/frost/internal/container"
	"github.com/barskern/frost/internal/release"

	"github.com/spf13/cobra"
)

// deployCmd pushes the release image to the registry.
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Push the release image to the registry",
	Long: `Push the release image with the configured container engine.

The tag to push is derived from the version declared in the project
metadata file. A single push attempt is made; on failure the process
exits with the toolchain's exit code.`,
	Args: cobra.NoArgs,
	RunE: runDeploy,
}

func runDeploy(cmd *cobra.Command, _ []string) error {
	provider, err := newTelemetryProvider(cmd.Context())
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer shutdownTelemetry(provider)

	releaser, err := newReleaser(release.WithTracer(provider.Tracer()))
	if err != nil {
		return releaseFailure(os.Stderr, err)
	}

	tag, err := releaser.Publish(cmd.Context())
	if err != nil {
		var publishErr *release.PublishError
		if errors.As(err, &publishErr) {
			hintPublishFailure(cmd.Context(), releaser, publishErr)
		}
		return releaseFailure(os.Stderr, err)
	}

	fmt.Printf("%s Published %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(tag.String()))
	return nil
}

// hintPublishFailure prints targeted hints for the two most common publish
// failures: pushing a tag that was never built on this machine, and flaky
// network or registry conditions worth a plain retry.
func hintPublishFailure(ctx context.Context, releaser *release.Releaser, publishErr *release.PublishError) {
	exists, err := releaser.Engine().ImageExists(ctx, container.ImageTag(publishErr.Tag.String()))
	if err == nil && !exists {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+
			fmt.Sprintf("image %s not found locally, run %s first", publishErr.Tag, CmdStyle.Render("frost build")))
		return
	}

	if container.IsTransientError(publishErr.Err) {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+"the failure looks transient, retrying may succeed")
	}
}
