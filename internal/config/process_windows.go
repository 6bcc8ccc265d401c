//go:build windows

package config

import "os"

// ProcessAlive reports whether a process with the given PID exists.
// FindProcess opens a handle on Windows and fails for exited processes.
func ProcessAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	_ = process.Release()
	return true
}

// StopProcess terminates the process. Windows has no SIGTERM, so the
// daemon exits without removing daemon.yaml; the next liveness check
// clears it.
func StopProcess(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Kill()
}
