package runner

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/flaky-test-retry/harness"
	"github.com/bitrise-io/flaky-test-retry/output"
	"github.com/bitrise-io/flaky-test-retry/resultbundle"
	"github.com/bitrise-io/flaky-test-retry/retryreport"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/hashicorp/go-version"
	"github.com/kballard/go-shellquote"
)

const minSupportedHarnessVersion = "1.2.0"

// Input ...
type Input struct {
	TestIdentifiers string `env:"test_identifiers,required"`
	SuiteName       string `env:"suite_name,required"`

	// Debug
	VerboseLog bool `env:"verbose_log,opt[yes,no]"`

	// Output export
	ExportRetryReport bool   `env:"export_retry_report,opt[yes,no]"`
	DeployDir         string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	SuiteName string
	Tests     []harness.TestIdentity

	ExportRetryReport bool
	DeployDir         string
}

// Result ...
type Result struct {
	SuiteName string
	Failed    bool

	ExportRetryReport bool
	DeployDir         string
}

// RetryRunner drives one run of a test suite on the host harness with retry
// coordination attached, and exports the outcome.
type RetryRunner struct {
	inputParser stepconf.InputParser
	logger      log.Logger
	testHarness harness.Harness
	observer    harness.SuiteObserver

	exporter    output.Exporter
	bundle      resultbundle.Locator
	fileManager fileutil.FileManager
}

// NewRetryRunner ...
func NewRetryRunner(
	inputParser stepconf.InputParser,
	logger log.Logger,
	testHarness harness.Harness,
	observer harness.SuiteObserver,
	exporter output.Exporter,
	bundle resultbundle.Locator,
	fileManager fileutil.FileManager,
) RetryRunner {
	return RetryRunner{
		inputParser: inputParser,
		logger:      logger,
		testHarness: testHarness,
		observer:    observer,
		exporter:    exporter,
		bundle:      bundle,
		fileManager: fileManager,
	}
}

// ProcessConfig ...
func (r RetryRunner) ProcessConfig() (Config, error) {
	var input Input
	err := r.inputParser.Parse(&input)
	if err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	r.logger.Println()

	r.logger.EnableDebugLog(input.VerboseLog)

	if err := r.validateHarnessVersion(); err != nil {
		return Config{}, err
	}

	tests, err := parseTestIdentifiers(input.TestIdentifiers)
	if err != nil {
		return Config{}, err
	}

	return Config{
		SuiteName:         input.SuiteName,
		Tests:             tests,
		ExportRetryReport: input.ExportRetryReport,
		DeployDir:         input.DeployDir,
	}, nil
}

// Run builds the root suite from the configured test identifiers, attaches
// the retry coordinator and executes the suite. Retry suites run as part of
// this call, driven by the suite-finished notification.
func (r RetryRunner) Run(config Config) (Result, error) {
	suite := harness.Suite{Name: config.SuiteName}
	for _, identity := range config.Tests {
		test, err := r.testHarness.CreateTest(identity, 0)
		if err != nil {
			return Result{}, fmt.Errorf("failed to create test (%s): %w", identity, err)
		}
		suite.Tests = append(suite.Tests, test)
	}

	r.testHarness.AddSuiteObserver(r.observer)

	if err := r.testHarness.RunSuite(suite); err != nil {
		return Result{}, fmt.Errorf("failed to run suite (%s): %w", suite.Name, err)
	}

	failureCount := r.testHarness.FailureCount()
	if failureCount > 0 {
		r.logger.Errorf("%d test(s) failed", failureCount)
	} else {
		r.logger.Donef("All tests passed")
	}

	return Result{
		SuiteName:         config.SuiteName,
		Failed:            failureCount > 0,
		ExportRetryReport: config.ExportRetryReport,
		DeployDir:         config.DeployDir,
	}, nil
}

// Export publishes the run outcome and, when a retry report was produced,
// the retried test case list and the report artifact.
func (r RetryRunner) Export(result Result) error {
	r.exporter.ExportRetryRunResult(result.Failed)

	reportPth, entries := r.loadReport()
	if len(entries) == 0 {
		return nil
	}

	if err := r.exporter.ExportRetriedTestCases(entries); err != nil {
		return fmt.Errorf("failed to export retried test cases: %w", err)
	}

	if result.ExportRetryReport {
		if result.DeployDir == "" {
			r.logger.Warnf("No BITRISE_DEPLOY_DIR found, skipping retry report export")
			return nil
		}
		if err := r.exporter.ExportRetryReport(result.DeployDir, reportPth); err != nil {
			return fmt.Errorf("failed to export retry report: %w", err)
		}
	}

	return nil
}

func (r RetryRunner) validateHarnessVersion() error {
	harnessVersion, err := version.NewVersion(r.testHarness.Version())
	if err != nil {
		return fmt.Errorf("failed to parse harness version (%s): %w", r.testHarness.Version(), err)
	}
	r.logger.Printf("- harness version: %s", harnessVersion)

	minVersion := version.Must(version.NewVersion(minSupportedHarnessVersion))
	if harnessVersion.LessThan(minVersion) {
		return fmt.Errorf("unsupported harness version (%s), at least %s required", harnessVersion, minVersion)
	}

	return nil
}

func (r RetryRunner) loadReport() (string, []retryreport.Entry) {
	dir, found := r.bundle.Locate()
	if !found {
		return "", nil
	}
	pth := filepath.Join(dir, retryreport.ReportFileName)

	reader, err := r.fileManager.OpenReaderIfExists(pth)
	if err != nil || reader == nil {
		return "", nil
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		r.logger.Warnf("Failed to read retry report (%s): %s", pth, err)
		return "", nil
	}

	report, err := retryreport.Parse(data)
	if err != nil {
		r.logger.Warnf("Retry report (%s) is malformed: %s", pth, err)
		return "", nil
	}

	return pth, report.Retries
}

func parseTestIdentifiers(raw string) ([]harness.TestIdentity, error) {
	items, err := shellquote.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse test identifiers (%s): %w", raw, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no test identifiers provided")
	}

	var identities []harness.TestIdentity
	for _, item := range items {
		separator := strings.LastIndex(item, ".")
		if separator <= 0 || separator == len(item)-1 {
			return nil, fmt.Errorf("invalid test identifier (%s), expected format: CaseName.functionName", item)
		}

		identities = append(identities, harness.TestIdentity{
			CaseName:     item[:separator],
			FunctionName: item[separator+1:],
		})
	}

	return identities, nil
}
