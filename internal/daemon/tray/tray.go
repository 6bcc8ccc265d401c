package tray

import (
	"fmt"
	"log"
	"sync"

	"github.com/getlantern/systray"

	"github.com/chargewatch/chargewatch/internal/models"
	"github.com/chargewatch/chargewatch/internal/notify"
)

var (
	state   DaemonState
	onStart func()
	onExit  func()

	// Menu items exist only after onReady
	itemsMu      sync.Mutex
	ready        bool
	statusItem   *systray.MenuItem
	pauseItem    *systray.MenuItem
	settingsItem *systray.MenuItem
	quitItem     *systray.MenuItem

	// Replaced in tests
	quitTray = systray.Quit
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (start the service here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s DaemonState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit. onExit runs once the tray has closed.
func Quit() {
	quitTray()
}

func onReady() {
	setIcon(iconData, true)
	systray.SetTooltip("chargewatch")

	header := systray.AddMenuItem("chargewatch", "")
	header.Disable()

	itemsMu.Lock()
	statusItem = systray.AddMenuItem("Reading battery...", "")
	statusItem.Disable()

	systray.AddSeparator()

	pauseItem = systray.AddMenuItemCheckbox("Pause notifications", "Stop watching the battery", false)
	settingsItem = systray.AddMenuItem("Settings...", "Show how to edit settings")

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("Quit", "Shut down chargewatch")
	ready = true
	itemsMu.Unlock()

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-pauseItem.ClickedCh:
			onPauseClicked()
		case <-settingsItem.ClickedCh:
			onSettingsClicked()
		case <-quitItem.ClickedCh:
			onQuitClicked()
		}
	}
}

func onPauseClicked() {
	if state == nil {
		return
	}
	paused := !state.Paused()
	state.SetPaused(paused)
	SetPaused(paused)
}

func onSettingsClicked() {
	if state == nil {
		return
	}
	msg := notify.SettingsHint(state.SettingsPath(), state.Monitoring())
	if err := state.Announce(msg); err != nil {
		log.Printf("[tray] Failed to show settings hint: %v", err)
		log.Printf("[tray] %s", msg.Body)
	}
}

func onQuitClicked() {
	log.Println("[tray] Quit requested")
	Quit()
}

// UpdateReading refreshes the status line, tooltip and icon.
func UpdateReading(r models.Reading, highlight bool) {
	itemsMu.Lock()
	defer itemsMu.Unlock()
	if !ready {
		return
	}

	statusItem.SetTitle(formatStatus(r))
	systray.SetTooltip(formatTooltip(r))
	setIcon(iconFor(r.Percent(), highlight))
}

// SetPaused reflects the pause state in the menu.
func SetPaused(paused bool) {
	itemsMu.Lock()
	defer itemsMu.Unlock()
	if !ready {
		return
	}

	if paused {
		pauseItem.Check()
	} else {
		pauseItem.Uncheck()
	}
}

// SetMonitoring updates the status line when polling starts or stops.
func SetMonitoring(monitoring bool) {
	itemsMu.Lock()
	defer itemsMu.Unlock()
	if !ready || monitoring {
		return
	}

	statusItem.SetTitle("Notifications off")
	systray.SetTooltip("chargewatch — notifications off")
	setIcon(iconData, true)
}

func formatStatus(r models.Reading) string {
	return fmt.Sprintf("%d%% — %s", r.Percent(), r.StateLabel())
}

func formatTooltip(r models.Reading) string {
	if r.Charging {
		return fmt.Sprintf("chargewatch — %d%%, charging", r.Percent())
	}
	return fmt.Sprintf("chargewatch — %d%%", r.Percent())
}
