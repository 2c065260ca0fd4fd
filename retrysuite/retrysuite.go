package retrysuite

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bitrise-io/flaky-test-retry/harness"
	"github.com/bitrise-io/go-utils/v2/log"
)

// Builder constructs the follow-up suite for a set of suppressed tests.
type Builder interface {
	BuildSuite(pending []harness.PendingTest) (harness.Suite, error)
}

type builder struct {
	logger  log.Logger
	factory harness.TestFactory
}

// NewBuilder ...
func NewBuilder(logger log.Logger, factory harness.TestFactory) Builder {
	return &builder{
		logger:  logger,
		factory: factory,
	}
}

// BuildSuite creates a suite containing one fresh instance per pending test,
// sorted by identity, each primed with an incremented retry count. An error
// means a pending entry could not be re-targeted to its original test
// function, which is a harness invariant violation, not a test failure.
func (b builder) BuildSuite(pending []harness.PendingTest) (harness.Suite, error) {
	sorted := make([]harness.PendingTest, len(pending))
	copy(sorted, pending)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Identity.Less(sorted[j].Identity)
	})

	var tests []harness.Test
	for _, pendingTest := range sorted {
		test, err := b.factory.CreateTest(pendingTest.Identity, pendingTest.RetryCount+1)
		if err != nil {
			return harness.Suite{}, fmt.Errorf("failed to re-create test (%s) for retry: %w", pendingTest.Identity, err)
		}

		b.logger.Debugf("Scheduling %s for retry %d", pendingTest.Identity, pendingTest.RetryCount+1)
		tests = append(tests, test)
	}

	return harness.Suite{
		Name:  suiteName(sorted),
		Tests: tests,
	}, nil
}

// suiteName embeds the distinct originating case names; this only shapes
// logs and reports.
func suiteName(pending []harness.PendingTest) string {
	var caseNames []string
	seen := map[string]bool{}
	for _, pendingTest := range pending {
		if !seen[pendingTest.Identity.CaseName] {
			seen[pendingTest.Identity.CaseName] = true
			caseNames = append(caseNames, pendingTest.Identity.CaseName)
		}
	}

	return fmt.Sprintf("Retry of %s", strings.Join(caseNames, ", "))
}
