package output

import (
	"strings"
	"testing"

	"github.com/bitrise-io/flaky-test-retry/mocks"
	"github.com/bitrise-io/flaky-test-retry/retryreport"
	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	retryRunResultKey   = "BITRISE_FLAKY_TEST_RETRY_RESULT"
	retriedTestCasesKey = "BITRISE_RETRIED_TEST_CASES"
)

type testingMocks struct {
	envRepository *mocks.Repository
}

func Test_GivenSuccessfulRun_WhenExportingRetryRunResult_ThenSetsEnvVariableToSuccess(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks()

	// When
	exporter.ExportRetryRunResult(false)

	// Then
	mocks.envRepository.AssertCalled(t, "Set", retryRunResultKey, "succeeded")
}

func Test_GivenFailedRun_WhenExportingRetryRunResult_ThenSetsEnvVariableToFailure(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks()

	// When
	exporter.ExportRetryRunResult(true)

	// Then
	mocks.envRepository.AssertCalled(t, "Set", retryRunResultKey, "failed")
}

func Test_GivenRetriedTests_WhenExporting_ThenSetsDeduplicatedList(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks()

	entries := []retryreport.Entry{
		{Name: "LoginTests.testPassword", AttemptedRetries: 1},
		{Name: "SettingsTests.testReset", AttemptedRetries: 1},
		{Name: "LoginTests.testPassword", AttemptedRetries: 2},
	}

	// When
	err := exporter.ExportRetriedTestCases(entries)

	// Then
	require.NoError(t, err)
	mocks.envRepository.AssertCalled(t, "Set", retriedTestCasesKey, "- LoginTests.testPassword\n- SettingsTests.testReset\n")
}

func Test_GivenNoRetriedTests_WhenExporting_ThenSetsNothing(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks()

	// When
	err := exporter.ExportRetriedTestCases(nil)

	// Then
	require.NoError(t, err)
	mocks.envRepository.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func Test_GivenTooManyRetriedTests_WhenExporting_ThenTruncatesToSizeLimit(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks()

	var entries []retryreport.Entry
	for i := 0; i < 100; i++ {
		entries = append(entries, retryreport.Entry{Name: strings.Repeat("x", 50) + string(rune('a'+i%26))})
	}

	// When
	err := exporter.ExportRetriedTestCases(entries)

	// Then
	require.NoError(t, err)
	require.Len(t, mocks.envRepository.Calls, 1)
	exported, ok := mocks.envRepository.Calls[0].Arguments.Get(1).(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(exported), 1024)
}

// Helpers

func createSutAndMocks() (Exporter, testingMocks) {
	envRepository := new(mocks.Repository)
	envRepository.On("Set", mock.Anything, mock.Anything).Return(nil)

	exporter := NewExporter(envRepository, log.NewLogger(), export.Exporter{})

	return exporter, testingMocks{
		envRepository: envRepository,
	}
}
