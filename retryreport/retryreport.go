package retryreport

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bitrise-io/flaky-test-retry/harness"
	"github.com/bitrise-io/flaky-test-retry/reliability"
)

// ReportFileName is the name of the retry report artifact inside the result
// bundle. Downstream reporting tooling relies on it.
const ReportFileName = "test_retries.json"

// Entry is one persisted record of a retried test.
type Entry struct {
	Name              string `json:"name"`
	Fixable           bool   `json:"fixable"`
	Reason            string `json:"reason"`
	AttemptedRetries  int    `json:"attemptedRetries"`
	MaxRetriesAllowed int    `json:"maxRetriesAllowed"`
}

// Report is the schema of the persisted artifact.
type Report struct {
	Retries []Entry `json:"retries"`
}

// Parse decodes a persisted report.
func Parse(data []byte) (Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return Report{}, fmt.Errorf("failed to parse retry report: %w", err)
	}
	return report, nil
}

// EntriesForPending converts queued test snapshots to report entries. The
// snapshot's retry count is the number of retries already consumed; queueing
// consumes one more, so that is what the entry reports.
func EntriesForPending(pending []harness.PendingTest) []Entry {
	var entries []Entry
	for _, pendingTest := range pending {
		entries = append(entries, Entry{
			Name:              pendingTest.Identity.String(),
			Fixable:           pendingTest.Policy.Kind() == reliability.PolicyFixable,
			Reason:            pendingTest.Policy.Reason(),
			AttemptedRetries:  pendingTest.RetryCount + 1,
			MaxRetriesAllowed: pendingTest.Policy.MaxRetryCount(),
		})
	}
	return entries
}

// Merge combines existing entries with new ones by test identity: a new
// entry replaces the existing one with the same name, entries not touched
// this run are preserved. The result is sorted by name.
func Merge(existing, updates []Entry) []Entry {
	byName := map[string]Entry{}
	for _, entry := range existing {
		byName[entry.Name] = entry
	}
	for _, entry := range updates {
		byName[entry.Name] = entry
	}

	merged := make([]Entry, 0, len(byName))
	for _, entry := range byName {
		merged = append(merged, entry)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Name < merged[j].Name
	})

	return merged
}
