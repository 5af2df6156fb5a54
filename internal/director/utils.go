package director

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// GenerateTimelinePath creates a timestamped timeline filename inside dir
func GenerateTimelinePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("timeline_%s.yaml", timestamp))
}

// FindLatestTimeline finds the most recent timeline file in dir
func FindLatestTimeline(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read timelines directory: %w", err)
	}

	var timelines []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			timelines = append(timelines, filepath.Join(dir, entry.Name()))
		}
	}

	if len(timelines) == 0 {
		return "", fmt.Errorf("no timeline files found in %s", dir)
	}

	// Sort by modification time (newest first)
	sort.Slice(timelines, func(i, j int) bool {
		infoI, _ := os.Stat(timelines[i])
		infoJ, _ := os.Stat(timelines[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})

	return timelines[0], nil
}
