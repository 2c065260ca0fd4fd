package main

import (
	"os"

	"github.com/bitrise-io/flaky-test-retry/coordinator"
	"github.com/bitrise-io/flaky-test-retry/localharness"
	"github.com/bitrise-io/flaky-test-retry/output"
	"github.com/bitrise-io/flaky-test-retry/reliability"
	"github.com/bitrise-io/flaky-test-retry/resultbundle"
	"github.com/bitrise-io/flaky-test-retry/retryreport"
	"github.com/bitrise-io/flaky-test-retry/retrysuite"
	"github.com/bitrise-io/flaky-test-retry/runner"
	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	retryRunner := createRetryRunner(logger)

	config, err := retryRunner.ProcessConfig()
	if err != nil {
		logger.Errorf("Process config: %s", err)
		return 1
	}

	result, err := retryRunner.Run(config)
	if err != nil {
		logger.Errorf("Run: %s", err)
		return 1
	}

	if err := retryRunner.Export(result); err != nil {
		logger.Errorf("Export outputs: %s", err)
		return 1
	}

	if result.Failed {
		return 1
	}
	return 0
}

func createRetryRunner(logger log.Logger) runner.RetryRunner {
	envRepository := env.NewRepository()
	inputParser := stepconf.NewInputParser(envRepository)
	commandFactory := command.NewFactory(envRepository)
	fileManager := fileutil.NewFileManager()

	testHarness := localharness.NewHarness(logger)
	registerSampleTests(testHarness)

	bundle := resultbundle.NewLocator(envRepository, logger)
	reportWriter := retryreport.NewWriter(logger, bundle, fileManager)
	suiteBuilder := retrysuite.NewBuilder(logger, testHarness)
	retryCoordinator := coordinator.NewCoordinator(logger, suiteBuilder, testHarness, reportWriter)
	testHarness.SetFailureQueue(retryCoordinator)

	exporter := output.NewExporter(envRepository, logger, export.NewExporter(commandFactory, fileManager))

	return runner.NewRetryRunner(inputParser, logger, testHarness, retryCoordinator, exporter, bundle, fileManager)
}

// registerSampleTests fills the in-process harness with a small suite that
// exercises the retry paths: a stable test, a flake that recovers on its
// first retry and a genuinely broken test that exhausts its budget.
func registerSampleTests(h *localharness.Harness) {
	h.Register("LoginTests", "testPassword", func(t *localharness.T) {})

	h.Register("LoginTests", "testBiometricFallback", func(t *localharness.T) {
		t.Flaky(reliability.NotFixablePolicy("backend sandbox is unstable", 2), func() {
			if t.RetryCount() == 0 {
				t.Fail("login request timed out")
			}
		})
	})

	h.Register("SettingsTests", "testReset", func(t *localharness.T) {
		t.Flaky(reliability.FixablePolicy("tracked in an issue"), func() {
			t.Fail("stale settings cache")
		})
	})
}
