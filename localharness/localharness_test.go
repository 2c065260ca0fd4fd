package localharness

import (
	"testing"

	"github.com/bitrise-io/flaky-test-retry/coordinator"
	"github.com/bitrise-io/flaky-test-retry/harness"
	"github.com/bitrise-io/flaky-test-retry/reliability"
	reportMocks "github.com/bitrise-io/flaky-test-retry/retryreport/mocks"
	"github.com/bitrise-io/flaky-test-retry/retrysuite"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_GivenFlakyTestPassingOnRetry_WhenSuiteRuns_ThenNoHardFailure(t *testing.T) {
	// Given
	h, _ := createRetryingHarness(t)

	executions := 0
	h.Register("LoginTests", "testPassword", func(tt *T) {
		executions++
		tt.Flaky(reliability.NotFixablePolicy("backend sandbox is unstable", 2), func() {
			if tt.RetryCount() == 0 {
				tt.Fail("login request timed out")
			}
		})
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then
	assert.Equal(t, 2, executions)
	assert.Zero(t, h.FailureCount())
}

func Test_GivenFixableTestFailingTwice_WhenSuiteRuns_ThenFailsHardAfterOneRetry(t *testing.T) {
	// Given
	h, _ := createRetryingHarness(t)

	executions := 0
	h.Register("LoginTests", "testPassword", func(tt *T) {
		executions++
		tt.Flaky(reliability.FixablePolicy("tracked in an issue"), func() {
			tt.Fail("login request timed out")
		})
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then: a fixable flake gets exactly one retry before failing for real.
	assert.Equal(t, 2, executions)
	assert.Equal(t, 1, h.FailureCount())
}

func Test_GivenFailureOutsideFlakySection_WhenSuiteRuns_ThenFailsHardWithoutRetry(t *testing.T) {
	// Given
	h, reportWriter := createRetryingHarness(t)

	executions := 0
	h.Register("LoginTests", "testPassword", func(tt *T) {
		executions++
		tt.Fail("unexpected state")
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then
	assert.Equal(t, 1, executions)
	assert.Equal(t, 1, h.FailureCount())
	reportWriter.AssertNotCalled(t, "Write", mock.Anything)
}

func Test_GivenAlwaysFailingFlakyTest_WhenSuiteRuns_ThenBudgetBoundsExecutions(t *testing.T) {
	// Given
	h, _ := createRetryingHarness(t)

	executions := 0
	h.Register("LoginTests", "testPassword", func(tt *T) {
		executions++
		tt.Flaky(reliability.NotFixablePolicy("backend sandbox is unstable", 2), func() {
			tt.Fail("login request timed out")
		})
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then: original run plus maxRetryCount retries, then a hard failure.
	assert.Equal(t, 3, executions)
	assert.Equal(t, 1, h.FailureCount())
}

func Test_GivenPassingSuite_WhenSuiteRuns_ThenNoRetrySuiteAndNoReport(t *testing.T) {
	// Given
	h, reportWriter := createRetryingHarness(t)

	executions := 0
	h.Register("LoginTests", "testPassword", func(tt *T) {
		executions++
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then
	assert.Equal(t, 1, executions)
	assert.Zero(t, h.FailureCount())
	reportWriter.AssertNotCalled(t, "Write", mock.Anything)
}

func Test_GivenSuppressedFailure_WhenSuiteRuns_ThenDiagnosticAttached(t *testing.T) {
	// Given
	h, _ := createRetryingHarness(t)

	identity := harness.TestIdentity{CaseName: "LoginTests", FunctionName: "testPassword"}
	h.Register(identity.CaseName, identity.FunctionName, func(tt *T) {
		tt.Flaky(reliability.FixablePolicy("tracked in an issue"), func() {
			if tt.RetryCount() == 0 {
				tt.Fail("login request timed out")
			}
		})
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then
	attachments := h.Attachments(identity)
	require.Len(t, attachments, 1)
	assert.Equal(t, "flaky-failure-attempt-0", attachments[0].Name)
	assert.Contains(t, attachments[0].Content, "login request timed out")
}

func Test_GivenPanickingTest_WhenSuiteRuns_ThenCountedAsHardFailure(t *testing.T) {
	// Given
	h, _ := createRetryingHarness(t)

	h.Register("LoginTests", "testPassword", func(tt *T) {
		tt.Flaky(reliability.FixablePolicy("tracked in an issue"), func() {
			panic("nil dereference")
		})
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then: a panic is not an assertion, flakiness does not cover it.
	assert.Equal(t, 1, h.FailureCount())
}

func Test_GivenUnregisteredIdentity_WhenTestCreated_ThenFails(t *testing.T) {
	// Given
	h := NewHarness(log.NewLogger())

	// When
	_, err := h.CreateTest(harness.TestIdentity{CaseName: "GhostTests", FunctionName: "testNothing"}, 0)

	// Then
	require.Error(t, err)
}

func Test_GivenNoRetryQueue_WhenFlakyTestFails_ThenFailureSuppressedButNeverRetried(t *testing.T) {
	// Given
	h := NewHarness(log.NewLogger())

	executions := 0
	h.Register("LoginTests", "testPassword", func(tt *T) {
		executions++
		tt.Flaky(reliability.FixablePolicy("tracked in an issue"), func() {
			tt.Fail("login request timed out")
		})
	})

	// When
	require.NoError(t, h.RunSuite(createSuite(t, h, "AppTests")))

	// Then
	assert.Equal(t, 1, executions)
	assert.Zero(t, h.FailureCount())
}

// Helpers

func createRetryingHarness(t *testing.T) (*Harness, *reportMocks.Writer) {
	logger := log.NewLogger()
	reportWriter := new(reportMocks.Writer)
	reportWriter.On("Write", mock.Anything).Return(nil).Maybe()

	h := NewHarness(logger)
	retryCoordinator := coordinator.NewCoordinator(logger, retrysuite.NewBuilder(logger, h), h, reportWriter)
	h.SetFailureQueue(retryCoordinator)
	h.AddSuiteObserver(retryCoordinator)

	return h, reportWriter
}

func createSuite(t *testing.T, h *Harness, name string) harness.Suite {
	suite := harness.Suite{Name: name}
	for _, identity := range h.RegisteredIdentities() {
		test, err := h.CreateTest(identity, 0)
		require.NoError(t, err)
		suite.Tests = append(suite.Tests, test)
	}

	return suite
}
