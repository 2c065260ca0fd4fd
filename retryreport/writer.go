package retryreport

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/bitrise-io/flaky-test-retry/resultbundle"
	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/rboyer/safeio"
)

// Writer persists retry report entries into the active result bundle.
// Persistence is best-effort: a missing bundle is a silent no-op and write
// failures must never block test execution (callers log and move on).
type Writer interface {
	Write(entries []Entry) error
}

type writer struct {
	logger      log.Logger
	bundle      resultbundle.Locator
	fileManager fileutil.FileManager
}

// NewWriter ...
func NewWriter(logger log.Logger, bundle resultbundle.Locator, fileManager fileutil.FileManager) Writer {
	return &writer{
		logger:      logger,
		bundle:      bundle,
		fileManager: fileManager,
	}
}

// Write merges entries into the shared report artifact and replaces it
// atomically, so a concurrent reader never observes a partial report and a
// crashed run leaves the previous content intact.
func (w writer) Write(entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dir, found := w.bundle.Locate()
	if !found {
		return nil
	}
	if err := w.bundle.Prepare(dir); err != nil {
		return fmt.Errorf("failed to prepare result bundle: %w", err)
	}

	pth := filepath.Join(dir, ReportFileName)
	merged := Merge(w.readExisting(pth), entries)

	data, err := json.MarshalIndent(Report{Retries: merged}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode retry report: %w", err)
	}

	if err := retry.Times(2).Wait(100 * time.Millisecond).Try(func(attempt uint) error {
		if attempt > 0 {
			w.logger.Debugf("Retrying retry report write, attempt %d", attempt)
		}
		return writeAtomically(pth, data)
	}); err != nil {
		return fmt.Errorf("failed to write retry report (%s): %w", pth, err)
	}

	w.logger.Debugf("Retry report written: %s", pth)
	return nil
}

func (w writer) readExisting(pth string) []Entry {
	reader, err := w.fileManager.OpenReaderIfExists(pth)
	if err != nil {
		w.logger.Warnf("Failed to read existing retry report (%s), starting with an empty one: %s", pth, err)
		return nil
	}
	if reader == nil {
		return nil
	}
	if closer, ok := reader.(io.Closer); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		w.logger.Warnf("Failed to read existing retry report (%s), starting with an empty one: %s", pth, err)
		return nil
	}

	report, err := Parse(data)
	if err != nil {
		w.logger.Warnf("Existing retry report (%s) is malformed, starting with an empty one: %s", pth, err)
		return nil
	}

	return report.Retries
}

func writeAtomically(pth string, data []byte) error {
	file, err := safeio.OpenFile(pth, 0600)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	if _, err := file.Write(data); err != nil {
		return err
	}

	return file.Commit()
}
