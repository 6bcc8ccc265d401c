package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WriteErrorLog records err in a new file named YYYY-MM-DD-<uuid>.log under dir.
// Returns the path of the written file.
func WriteErrorLog(dir string, err error) (string, error) {
	if mkErr := os.MkdirAll(dir, 0o755); mkErr != nil {
		return "", fmt.Errorf("failed to create logs dir: %w", mkErr)
	}

	name := fmt.Sprintf("%s-%s.log", time.Now().Format("2006-01-02"), uuid.NewString())
	path := filepath.Join(dir, name)
	if writeErr := os.WriteFile(path, []byte(fmt.Sprintf("[ERROR] %s \n", err.Error())), 0o644); writeErr != nil {
		return "", fmt.Errorf("failed to write log file: %w", writeErr)
	}
	return path, nil
}

// ListErrorLogs returns the error log files in dir, newest first.
func ListErrorLogs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{path: filepath.Join(dir, e.Name()), modTime: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.After(files[j].modTime)
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}
