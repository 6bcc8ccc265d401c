package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/battery"
	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/models"
)

// newProvider builds the battery provider used by the status command.
var newProvider = func() battery.Provider { return battery.NewSystem() }

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current battery level",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := config.DefaultSettingsStore()
	if err != nil {
		return fmt.Errorf("failed to locate settings: %w", err)
	}
	settings, err := store.ReadOrDefault()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	reading, err := newProvider().Read(ctx)
	if err != nil {
		return fmt.Errorf("failed to read battery: %w", err)
	}

	out := cmd.OutOrStdout()
	pct := reading.Percent()
	level := fmt.Sprintf("%d%%", pct)
	if settings.EnableHighlighter {
		level = severityStyle(models.SeverityFor(pct)).Render(level)
	} else {
		level = styleValue.Render(level)
	}

	fmt.Fprintf(out, "%s  %s\n", styleLabel.Render("Battery"), level)
	fmt.Fprintf(out, "%s    %s\n", styleLabel.Render("State"), styleValue.Render(reading.StateLabel()))
	if !settings.EnableNotifications {
		fmt.Fprintln(out, styleHint.Render("\nNotifications are off. Turn them on with: ")+
			styleCommand.Render("chargewatch settings set notifications on"))
	}
	return nil
}
