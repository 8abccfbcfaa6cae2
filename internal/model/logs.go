// internal/model/logs.go
package model

import "strings"

// LogTail is the body returned for a log request
type LogTail struct {
	Logs string `json:"logs"`
}

// LogEntry represents a single log line rendered by the dashboard
type LogEntry struct {
	Message string
}

// SplitLogs breaks a log tail into entries. A trailing newline does not
// produce an empty entry.
func SplitLogs(text string) []LogEntry {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	entries := make([]LogEntry, len(lines))
	for i, line := range lines {
		entries[i] = LogEntry{Message: strings.TrimSuffix(line, "\r")}
	}
	return entries
}
