// Package cmd implements the chargewatchd command line.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/daemon/monitor"
	"github.com/chargewatch/chargewatch/internal/daemon/service"
	"github.com/chargewatch/chargewatch/internal/daemon/tray"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
)

var (
	foreground bool
	interval   time.Duration
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "chargewatchd",
	Short: "Battery notification daemon",
	Long: `chargewatchd watches the battery and raises desktop notifications
at the levels configured with 'chargewatch settings'.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDaemon,
}

func init() {
	rootCmd.Flags().BoolVar(&foreground, "foreground", false, "Run in foreground without a system tray")
	rootCmd.Flags().DurationVar(&interval, "interval", monitor.DefaultInterval, "Battery polling interval")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log notifications instead of showing them")
}

// Execute runs the daemon command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		log.Printf("%v", err)
	}
	return err
}

func runDaemon(cmd *cobra.Command, args []string) error {
	if err := config.EnsureAppDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	running, info, err := config.IsDaemonRunning()
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("daemon already running (PID %d)", info.PID)
	}

	store, err := config.DefaultSettingsStore()
	if err != nil {
		return fmt.Errorf("failed to locate settings: %w", err)
	}

	if foreground {
		log.Println("Running in foreground mode (no system tray)")
		return runForeground(store)
	}
	log.Println("Running in background mode (with system tray)")
	return runWithTray(store)
}

func newNotifier() notify.Notifier {
	if dryRun {
		return logNotifier{}
	}
	return notify.NewDesktop("")
}

// logNotifier writes notifications to the log.
type logNotifier struct{}

func (logNotifier) Notify(_ context.Context, msg notify.Message) error {
	log.Printf("[notify] %s: %s", msg.Title, msg.Body)
	return nil
}

// runForeground runs the daemon without a system tray, blocking on signals.
func runForeground(store *config.SettingsStore) error {
	svc := service.New(store, service.Options{
		Interval: interval,
		Notifier: newNotifier(),
		OnReading: func(r models.Reading, _ bool) {
			log.Printf("[monitor] Battery at %d%% (%s)", r.Percent(), r.StateLabel())
		},
	})

	if err := config.SaveDaemonInfo(models.NewDaemonInfo(os.Getpid(), interval, false)); err != nil {
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	defer removeDaemonInfo()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Daemon started (PID %d)", os.Getpid())
	err := svc.Run(ctx)
	fmt.Println("Daemon stopped")
	return err
}

// runWithTray runs the daemon with a system tray icon on the main goroutine.
// systray.Run must occupy the main goroutine on macOS (Cocoa requirement).
func runWithTray(store *config.SettingsStore) error {
	svc := service.New(store, service.Options{
		Interval:      interval,
		Notifier:      newNotifier(),
		OnReading:     tray.UpdateReading,
		OnStateChange: tray.SetMonitoring,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	onStart := func() {
		if err := config.SaveDaemonInfo(models.NewDaemonInfo(os.Getpid(), interval, true)); err != nil {
			log.Printf("Failed to write daemon info: %v", err)
			tray.Quit()
			return
		}

		log.Printf("Daemon started (PID %d)", os.Getpid())

		go func() {
			err := svc.Run(ctx)
			if err != nil {
				log.Printf("Service error: %v", err)
			}
			done <- err
			tray.Quit()
		}()

		// Handle OS signals — quit tray on SIGINT/SIGTERM
		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			log.Printf("Received signal %v, shutting down...", sig)
			tray.Quit()
		}()
	}

	var runErr error
	onExit := func() {
		cancel()
		select {
		case runErr = <-done:
		case <-time.After(5 * time.Second):
			log.Println("Service did not stop within timeout")
		}
		removeDaemonInfo()
		fmt.Println("Daemon stopped")
	}

	// This blocks the main goroutine until tray exits.
	tray.Run(svc, onStart, onExit)
	return runErr
}

func removeDaemonInfo() {
	if err := config.RemoveDaemonInfo(); err != nil {
		log.Printf("Failed to remove daemon info: %v", err)
	}
}
