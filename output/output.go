package output

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/flaky-test-retry/retryreport"
	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

const (
	retryRunResultEnvVarKey  = "BITRISE_FLAKY_TEST_RETRY_RESULT"
	retryReportPathEnvVarKey = "BITRISE_FLAKY_RETRY_REPORT_PATH"

	retriedTestCasesEnvVarKey              = "BITRISE_RETRIED_TEST_CASES"
	retriedTestCasesEnvVarSizeLimitInBytes = 1024
)

// Exporter ...
type Exporter interface {
	ExportRetryRunResult(failed bool)
	ExportRetryReport(deployDir, reportPth string) error
	ExportRetriedTestCases(entries []retryreport.Entry) error
}

type exporter struct {
	envRepository  env.Repository
	logger         log.Logger
	outputExporter export.Exporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, outputExporter export.Exporter) Exporter {
	return &exporter{
		envRepository:  envRepository,
		logger:         logger,
		outputExporter: outputExporter,
	}
}

func (e exporter) ExportRetryRunResult(failed bool) {
	status := "succeeded"
	if failed {
		status = "failed"
	}
	if err := e.envRepository.Set(retryRunResultEnvVarKey, status); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", retryRunResultEnvVarKey, err)
	}
}

func (e exporter) ExportRetryReport(deployDir, reportPth string) error {
	deployPth := filepath.Join(deployDir, retryreport.ReportFileName)
	if err := e.outputExporter.ExportOutputFile(retryReportPathEnvVarKey, reportPth, deployPth); err != nil {
		return fmt.Errorf("failed to export %s: %w", retryReportPathEnvVarKey, err)
	}

	return nil
}

func (e exporter) ExportRetriedTestCases(entries []retryreport.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	storedTestCases := map[string]bool{}
	var testCases []string

	for _, entry := range entries {
		if _, stored := storedTestCases[entry.Name]; !stored {
			storedTestCases[entry.Name] = true
			testCases = append(testCases, entry.Name)
		}
	}

	var message string
	for i, testCase := range testCases {
		messageLine := fmt.Sprintf("- %s\n", testCase)

		if len(message)+len(messageLine) > retriedTestCasesEnvVarSizeLimitInBytes {
			e.logger.Warnf("%s env var size limit (%d characters) exceeded. Skipping %d test cases.", retriedTestCasesEnvVarKey, retriedTestCasesEnvVarSizeLimitInBytes, len(testCases)-i)
			break
		}

		message += messageLine
	}

	if err := e.envRepository.Set(retriedTestCasesEnvVarKey, message); err != nil {
		return fmt.Errorf("failed to export %s: %w", retriedTestCasesEnvVarKey, err)
	}

	return nil
}
