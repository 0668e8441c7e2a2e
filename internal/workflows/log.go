package workflows

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/sealbox/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation types (comma-separated).
	Operations string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int

	// Enabled is false when auditing is turned off in config.toml.
	Enabled bool
}

// Log reads and filters the audit log. A missing log yields no entries.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	env, err := loadEnvironment()
	if err != nil {
		return nil, err
	}

	result := &LogResult{Enabled: env.audit.Path != ""}

	entries, err := env.audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	result.TotalEntriesBeforeFilter = len(entries)

	var ops []string
	if opts.Operations != "" {
		ops = strings.Split(opts.Operations, ",")
	}
	filtered := audit.Filter(entries, ops, opts.Limit)

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	result.Entries = filtered
	return result, nil
}
