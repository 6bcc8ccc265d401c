package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chargewatch/chargewatch/internal/config"
	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/tui"
)

var (
	showJSON         bool
	resetYes         bool
	levelCharging    bool
	levelDischarging bool
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Edit notification settings",
	Long: `Edit notification settings.

On a terminal this opens an interactive editor. Otherwise the settings
document is printed as JSON.`,
	Args: cobra.NoArgs,
	RunE: runSettings,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file path",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <notifications|highlighter> <on|off>",
	Short: "Turn notifications or the highlighter on or off",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

var settingsLevelCmd = &cobra.Command{
	Use:   "level",
	Short: "Manage notification levels",
}

var settingsLevelAddCmd = &cobra.Command{
	Use:   "add <percent>",
	Short: "Add or update a notification level",
	Long: `Add or update a notification level.

Without --charging or --discharging the level applies to both.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsLevelAdd,
}

var settingsLevelRemoveCmd = &cobra.Command{
	Use:     "remove <percent>",
	Aliases: []string{"rm"},
	Short:   "Remove a notification level",
	Args:    cobra.ExactArgs(1),
	RunE:    runSettingsLevelRemove,
}

func init() {
	settingsShowCmd.Flags().BoolVar(&showJSON, "json", false, "Print the raw JSON document")
	settingsResetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Don't ask for confirmation")
	settingsLevelAddCmd.Flags().BoolVar(&levelCharging, "charging", false, "Notify when reached while charging")
	settingsLevelAddCmd.Flags().BoolVar(&levelDischarging, "discharging", false, "Notify when reached while discharging")

	settingsLevelCmd.AddCommand(settingsLevelAddCmd)
	settingsLevelCmd.AddCommand(settingsLevelRemoveCmd)

	settingsCmd.AddCommand(settingsLevelCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
}

// openStore returns the settings store, creating defaults on first run.
func openStore() (*config.SettingsStore, error) {
	store, err := config.DefaultSettingsStore()
	if err != nil {
		return nil, fmt.Errorf("failed to locate settings: %w", err)
	}
	if err := store.EnsureDefaults(); err != nil {
		return nil, err
	}
	return store, nil
}

func loadSettings() (*config.SettingsStore, *models.Settings, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	settings, err := store.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return store, settings, nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func runSettings(cmd *cobra.Command, args []string) error {
	store, _, err := loadSettings()
	if err != nil {
		return err
	}

	if isTerminal() {
		return tui.Run(store)
	}
	return printSettingsJSON(cmd.OutOrStdout(), store)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, settings, err := loadSettings()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if showJSON {
		return printSettingsJSON(out, store)
	}

	fmt.Fprintf(out, "%s  %s\n", styleLabel.Render("Notifications"), onOff(settings.EnableNotifications))
	fmt.Fprintf(out, "%s    %s\n", styleLabel.Render("Highlighter"), onOff(settings.EnableHighlighter))

	if len(settings.NotifyOnBatteryLevels) == 0 {
		fmt.Fprintln(out, styleHint.Render("\nNo notification levels."))
		return nil
	}

	fmt.Fprintf(out, "\n%s\n", styleLabel.Render("Levels"))
	for _, l := range settings.NotifyOnBatteryLevels {
		fmt.Fprintf(out, "  %s  %s\n", formatLevel(l.Level, settings.EnableHighlighter), describeScope(l))
	}
	return nil
}

func printSettingsJSON(out io.Writer, store *config.SettingsStore) error {
	settings, err := store.Read()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}

func runSettingsPath(cmd *cobra.Command, args []string) error {
	path, err := config.SettingsFile()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !resetYes {
		reader := bufio.NewReader(cmd.InOrStdin())
		if !promptYesNoWithCurrent(out, reader, "Restore default settings?", false) {
			fmt.Fprintln(out, "No changes made.")
			return nil
		}
	}

	store.Save(models.NewSettings())
	fmt.Fprintln(out, styleSuccess.Render("Settings restored to defaults."))
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	value, err := parseOnOff(args[1])
	if err != nil {
		return err
	}

	store, settings, err := loadSettings()
	if err != nil {
		return err
	}

	switch strings.ToLower(args[0]) {
	case "notifications", "notify":
		settings.EnableNotifications = value
	case "highlighter", "highlight":
		settings.EnableHighlighter = value
	default:
		return fmt.Errorf("unknown setting %q (expected notifications or highlighter)", args[0])
	}

	store.Save(settings)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styleValue.Render(strings.ToLower(args[0])), onOff(value))
	return nil
}

func runSettingsLevelAdd(cmd *cobra.Command, args []string) error {
	pct, err := parsePercent(args[0])
	if err != nil {
		return err
	}

	store, settings, err := loadSettings()
	if err != nil {
		return err
	}

	level := models.BatteryLevel{
		Level:           pct,
		WhenCharging:    levelCharging,
		WhenDischarging: levelDischarging,
	}
	if !levelCharging && !levelDischarging {
		level.WhenCharging = true
		level.WhenDischarging = true
	}

	settings.AddLevel(level)
	if err := settings.Validate(); err != nil {
		return err
	}

	store.Save(settings)
	fmt.Fprintf(cmd.OutOrStdout(), "Level %d%% %s.\n", pct, describeScope(level))
	return nil
}

func runSettingsLevelRemove(cmd *cobra.Command, args []string) error {
	pct, err := parsePercent(args[0])
	if err != nil {
		return err
	}

	store, settings, err := loadSettings()
	if err != nil {
		return err
	}

	if !settings.RemoveLevel(pct) {
		return fmt.Errorf("no notification level at %d%%", pct)
	}

	store.Save(settings)
	fmt.Fprintf(cmd.OutOrStdout(), "Level %d%% removed.\n", pct)
	return nil
}

// promptYesNoWithCurrent prompts for a yes/no value showing the current value.
func promptYesNoWithCurrent(out io.Writer, reader *bufio.Reader, prompt string, current bool) bool {
	currentStr := "no"
	if current {
		currentStr = "yes"
	}

	fmt.Fprintf(out, "%s [%s]: ", prompt, currentStr)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	if response == "" {
		return current
	}
	return response == "y" || response == "yes"
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q (expected on or off)", s)
}

func parsePercent(s string) (int, error) {
	pct, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil || pct < 1 || pct > 100 {
		return 0, fmt.Errorf("invalid battery level %q (expected 1-100)", s)
	}
	return pct, nil
}

func describeScope(l models.BatteryLevel) string {
	switch {
	case l.WhenCharging && l.WhenDischarging:
		return "when charging or discharging"
	case l.WhenCharging:
		return "when charging"
	case l.WhenDischarging:
		return "when discharging"
	default:
		return styleWarning.Render("never (no scope)")
	}
}

func formatLevel(pct int, highlight bool) string {
	text := fmt.Sprintf("%3d%%", pct)
	if !highlight {
		return styleValue.Render(text)
	}
	return severityStyle(models.SeverityFor(pct)).Render(text)
}
