// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/barskern/frost/internal/config"
	"github.com/barskern/frost/internal/diagnose"
	"github.com/barskern/frost/internal/metno"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// elementsCmd lists the observation series the API offers for the sensor.
var elementsCmd = &cobra.Command{
	Use:   "elements",
	Short: "List observation series available for the configured sensor",
	Long: `List the observation time series the MET Norway Frost API offers for
the configured sensor. Useful when deciding which elements to map to
metrics in the sync configuration.`,
	Args: cobra.NoArgs,
	RunE: runElements,
}

func runElements(cmd *cobra.Command, _ []string) error {
	cfg := config.Get()
	if cfg.MetNo.ClientID == "" {
		renderDiagnostic(os.Stderr, diagnose.CredentialsMissingId)
		return errors.New("no MET Norway API credentials configured")
	}

	client := newObservationClient(cfg)
	series, err := client.AvailableTimeSeries(cmd.Context(), string(cfg.MetNo.SensorID))
	if err != nil {
		renderDiagnostic(os.Stderr, diagnose.ObservationFetchFailedId)
		return err
	}

	if len(series) == 0 {
		fmt.Printf("No time series available for %s\n", cfg.MetNo.SensorID)
		return nil
	}

	fmt.Println(TitleStyle.Render(fmt.Sprintf("Time series for %s", cfg.MetNo.SensorID)))
	fmt.Println(renderSeriesTable(series))
	return nil
}

// renderSeriesTable lays the series out as a bordered table.
func renderSeriesTable(series []metno.TimeSeries) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorMuted)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		}).
		Headers("ELEMENT", "UNIT", "RESOLUTION", "OFFSET", "VALID FROM")

	for _, s := range series {
		t.Row(s.ElementID, s.Unit, s.TimeResolution, s.TimeOffset, s.ValidFrom)
	}
	return t.Render()
}
