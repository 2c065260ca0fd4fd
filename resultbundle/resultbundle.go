package resultbundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

// BundleName identifies this layer's artifacts inside the per-run test
// result directory.
const BundleName = "flaky-test-retries"

const metadataFileName = "test-info.json"

// Locator resolves and prepares the directory of the active result bundle,
// where retry artifacts are persisted. The directory is exposed by the
// harness through the build environment; its absence is not an error,
// persistence is simply skipped.
type Locator interface {
	Locate() (string, bool)
	Prepare(dir string) error
}

type locator struct {
	envRepository env.Repository
	logger        log.Logger
}

// NewLocator ...
func NewLocator(envRepository env.Repository, logger log.Logger) Locator {
	return &locator{
		envRepository: envRepository,
		logger:        logger,
	}
}

// Locate returns the bundle directory for this layer's artifacts and whether
// a result bundle is available at all.
func (l locator) Locate() (string, bool) {
	resultDir := l.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if resultDir == "" {
		l.logger.Debugf("No test result dir (%s) exported, skipping retry report persistence", configs.BitrisePerStepTestResultDirEnvKey)
		return "", false
	}

	return filepath.Join(resultDir, BundleName), true
}

// Prepare creates the bundle directory and saves its metadata so downstream
// reporting tooling can pick the bundle up.
func (l locator) Prepare(dir string) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create result bundle directory (%s): %w", dir, err)
	}

	type bundleMetadata struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(bundleMetadata{BundleName: BundleName})
	if err != nil {
		return fmt.Errorf("could not encode bundle metadata: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, metadataFileName), bytes, 0600); err != nil {
		return fmt.Errorf("failed to write bundle metadata: %w", err)
	}

	return nil
}
