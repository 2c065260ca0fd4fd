package resultbundle

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/flaky-test-retry/mocks"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenExportedResultDir_WhenLocated_ThenReturnsBundleDir(t *testing.T) {
	// Given
	envRepository := mocks.NewRepository(t)
	envRepository.On("Get", configs.BitrisePerStepTestResultDirEnvKey).Return("/var/test-results/step-1")

	locator := NewLocator(envRepository, log.NewLogger())

	// When
	dir, found := locator.Locate()

	// Then
	require.True(t, found)
	assert.Equal(t, filepath.Join("/var/test-results/step-1", BundleName), dir)
}

func Test_GivenNoResultDirExported_WhenLocated_ThenNotFound(t *testing.T) {
	// Given
	envRepository := mocks.NewRepository(t)
	envRepository.On("Get", configs.BitrisePerStepTestResultDirEnvKey).Return("")

	locator := NewLocator(envRepository, log.NewLogger())

	// When
	_, found := locator.Locate()

	// Then
	require.False(t, found)
}

func Test_GivenBundleDir_WhenPrepared_ThenWritesMetadata(t *testing.T) {
	// Given
	envRepository := mocks.NewRepository(t)
	locator := NewLocator(envRepository, log.NewLogger())
	dir := filepath.Join(t.TempDir(), BundleName)

	// When
	err := locator.Prepare(dir)

	// Then
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, metadataFileName))
	require.NoError(t, err)

	var metadata map[string]string
	require.NoError(t, json.Unmarshal(content, &metadata))
	assert.Equal(t, BundleName, metadata["test-name"])
}

func Test_GivenExistingBundleDir_WhenPreparedAgain_ThenIdempotent(t *testing.T) {
	// Given
	envRepository := mocks.NewRepository(t)
	locator := NewLocator(envRepository, log.NewLogger())
	dir := filepath.Join(t.TempDir(), BundleName)

	require.NoError(t, locator.Prepare(dir))

	// When
	err := locator.Prepare(dir)

	// Then
	require.NoError(t, err)
}
