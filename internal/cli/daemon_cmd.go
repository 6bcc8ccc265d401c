package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/models"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Manage the chargewatch daemon",
	Long:  `Manage the chargewatchd process that watches the battery.`,
}

var daemonStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status",
	RunE:  runDaemonStatus,
}

var daemonStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the daemon",
	RunE:  runDaemonStart,
}

var daemonStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the daemon",
	RunE:  runDaemonStop,
}

func init() {
	daemonCmd.AddCommand(daemonStartCmd)
	daemonCmd.AddCommand(daemonStatusCmd)
	daemonCmd.AddCommand(daemonStopCmd)
}

func runDaemonStart(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if running && info != nil {
		fmt.Fprintf(out, "Daemon is already running (PID %d).\n", info.PID)
		return nil
	}

	if info != nil {
		_ = config.RemoveDaemonInfo()
	}

	fmt.Fprint(out, "Starting daemon...")
	if startErr := startDaemon(); startErr != nil {
		fmt.Fprintln(out)
		return startErr
	}

	_, freshInfo, err := GetDaemonStatus()
	if err != nil || freshInfo == nil {
		fmt.Fprintln(out, " started.")
		return nil
	}

	fmt.Fprintf(out, " started (PID %d).\n", freshInfo.PID)
	return nil
}

func runDaemonStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := GetDaemonStatus()
	if err != nil {
		return err
	}

	if !running || info == nil {
		fmt.Fprintln(out, "Daemon is not running.")
		fmt.Fprintln(out, styleHint.Render("Start it with: ")+styleCommand.Render("chargewatch daemon start"))
		return nil
	}

	printDaemonInfo(cmd, info, time.Now())

	store, err := config.DefaultSettingsStore()
	if err != nil {
		return nil
	}
	logs, err := config.ListErrorLogs(store.LogDir())
	if err != nil || len(logs) == 0 {
		return nil
	}
	fmt.Fprintf(out, "\n%s %d (latest: %s)\n", styleWarning.Render("Error logs:"), len(logs), logs[0])
	return nil
}

func printDaemonInfo(cmd *cobra.Command, info *models.DaemonInfo, now time.Time) {
	out := cmd.OutOrStdout()

	mode := "foreground"
	if info.Tray {
		mode = "tray"
	}
	uptime := now.Sub(info.StartedAt).Truncate(time.Second)

	fmt.Fprintln(out, "Daemon is running.")
	fmt.Fprintf(out, "  PID:        %d\n", info.PID)
	fmt.Fprintf(out, "  Mode:       %s\n", mode)
	fmt.Fprintf(out, "  Interval:   %s\n", info.Interval)
	fmt.Fprintf(out, "  Uptime:     %s\n", uptime)
}

func runDaemonStop(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}

	if !running || info == nil {
		fmt.Fprintln(out, "Daemon is not running.")
		return nil
	}

	if err := config.StopProcess(info.PID); err != nil {
		return fmt.Errorf("failed to send stop signal: %w", err)
	}

	// Poll for shutdown (max 5 seconds)
	for i := 0; i < 50; i++ {
		time.Sleep(100 * time.Millisecond)
		stillRunning, _, err := config.IsDaemonRunning()
		if err == nil && !stillRunning {
			fmt.Fprintln(out, "Daemon stopped.")
			return nil
		}
	}

	return fmt.Errorf("daemon did not stop within timeout")
}
