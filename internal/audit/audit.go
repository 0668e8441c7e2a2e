package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Operations recorded in the audit log.
const (
	OpInit    = "init"
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
)

// Entry represents a single audit log entry. It never holds message content.
type Entry struct {
	ID        string `json:"id"`    // Random UUID.
	Timestamp string `json:"ts"`    // RFC3339 with microseconds.
	Operation string `json:"op"`    // Operation name.
	Key       string `json:"key"`   // Fingerprint of the key pair used.
	Bytes     int    `json:"bytes"` // Plaintext or input length.
	OK        bool   `json:"ok"`    // Whether the operation succeeded.

	Created bool `json:"created,omitempty"` // For init: the key pair was generated.
}

// Logger appends entries to a JSON Lines file. A Logger with an empty Path
// discards everything.
type Logger struct {
	Path string
}

// Log appends entry to the audit log. Failures are ignored: an operation
// never fails because its audit entry could not be written.
func (l Logger) Log(entry Entry) {
	if l.Path == "" {
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(l.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (l Logger) ReadEntries() ([]Entry, error) {
	if l.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(l.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data), nil
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) []Entry {
	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// Filter keeps entries whose operation is in ops (all when ops is empty) and
// returns at most the last limit of them (all when limit <= 0).
func Filter(entries []Entry, ops []string, limit int) []Entry {
	var kept []Entry
	for _, e := range entries {
		if len(ops) == 0 || contains(ops, e.Operation) {
			kept = append(kept, e)
		}
	}
	if limit > 0 && len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}
	return kept
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if strings.EqualFold(strings.TrimSpace(candidate), v) {
			return true
		}
	}
	return false
}
