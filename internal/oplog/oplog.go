// Package oplog keeps the deploy history of a project.
// Entries are stored in JSONL format (one JSON object per line) under
// <project>/.luna2d/logs/.
package oplog

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/go-json-experiment/json"

	"luna2d-deploy/internal/config"
)

// OpsFile holds one entry per deploy run.
const OpsFile = "operations.log"

// Entry represents one log line in JSONL format.
type Entry struct {
	Timestamp string         `json:"ts"`
	Command   string         `json:"cmd"`
	Args      map[string]any `json:"args,omitempty"`
	Status    string         `json:"status"`
	Message   string         `json:"msg,omitempty"`
	Duration  int64          `json:"ms,omitzero"`
}

// LogDir returns the logs directory of a project.
func LogDir(projectPath string) string {
	return config.LogsDir(projectPath)
}

// Write appends a single JSONL entry to the named log file.
// The logs directory is created on first use together with a .gitignore so
// the history never ends up in the project's repository.
func Write(projectPath, filename string, e Entry) error {
	dir := LogDir(projectPath)
	dirInfo, statErr := os.Stat(dir)
	logsDirMissing := os.IsNotExist(statErr)
	if statErr != nil && !logsDirMissing {
		return statErr
	}
	if statErr == nil && !dirInfo.IsDir() {
		return &os.PathError{Op: "mkdir", Path: dir, Err: os.ErrInvalid}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if logsDirMissing {
		_ = os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*\n"), 0644)
	}

	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, filename), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// WriteWithLimit appends an entry and truncates the file if it exceeds maxEntries.
// maxEntries <= 0 means unlimited (same as Write).
func WriteWithLimit(projectPath, filename string, e Entry, maxEntries int) error {
	if err := Write(projectPath, filename, e); err != nil {
		return err
	}

	if maxEntries <= 0 {
		return nil
	}

	// Only truncate once 20% over the limit to avoid rewriting on every run
	threshold := maxEntries + maxEntries/5
	path := filepath.Join(LogDir(projectPath), filename)
	entries, err := readAllEntries(path)
	if err != nil || len(entries) <= threshold {
		return nil
	}

	// Keep newest maxEntries (file order is oldest first)
	return rewriteEntries(path, entries[len(entries)-maxEntries:])
}

// readAllEntries reads all entries from the log file in file order (oldest first).
// Malformed lines are skipped.
func readAllEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var all []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		all = append(all, e)
	}
	return all, scanner.Err()
}

// rewriteEntries atomically replaces the log file with the given entries.
func rewriteEntries(path string, entries []Entry) error {
	var buf bytes.Buffer
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return err
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// Read returns the last `limit` entries from the named log file (newest first).
// If limit <= 0, all entries are returned.
func Read(projectPath, filename string, limit int) ([]Entry, error) {
	all, err := readAllEntries(filepath.Join(LogDir(projectPath), filename))
	if err != nil || all == nil {
		return nil, err
	}

	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// Clear truncates the named log file.
func Clear(projectPath, filename string) error {
	path := filepath.Join(LogDir(projectPath), filename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Truncate(path, 0)
}

// NewEntry creates an Entry with the current timestamp.
func NewEntry(cmd, status string, duration time.Duration) Entry {
	return Entry{
		Timestamp: time.Now().Format(time.RFC3339),
		Command:   cmd,
		Status:    status,
		Duration:  duration.Milliseconds(),
	}
}

// StatusFromErr maps a command error to the entry status.
func StatusFromErr(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
