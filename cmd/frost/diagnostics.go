// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/barskern/frost/internal/config"
	"github.com/barskern/frost/internal/diagnose"
)

// glamourScheme maps the configured color scheme to a glamour style name.
// "auto" lets glamour probe the terminal background.
func glamourScheme() string {
	switch config.Get().UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}

// renderDiagnostic renders the catalog entry for id to w. Render failures
// only degrade the output, they never fail the command.
func renderDiagnostic(w io.Writer, id diagnose.Id) {
	entry := diagnose.Get(id)
	if entry == nil {
		return
	}

	rendered, err := entry.Render(glamourScheme())
	if err != nil {
		slog.Warn("failed to render diagnostic entry", "id", id, "error", err)
		return
	}
	fmt.Fprint(w, rendered)
}
