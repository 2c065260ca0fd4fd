package coordinator

import (
	"fmt"
	"sort"

	"github.com/bitrise-io/flaky-test-retry/harness"
	"github.com/bitrise-io/flaky-test-retry/retryreport"
	"github.com/bitrise-io/flaky-test-retry/retrysuite"
	"github.com/bitrise-io/go-utils/v2/log"
)

// Coordinator collects the tests whose failures were suppressed during a
// suite run and re-executes exactly those tests once the suite finishes,
// with their retry counters incremented. One coordinator lives for the
// duration of one suite run; it is driven entirely by the harness's test
// execution thread, so no locking is needed.
//
// It implements interceptor.FailureQueue and harness.SuiteObserver.
type Coordinator struct {
	logger       log.Logger
	builder      retrysuite.Builder
	suiteRunner  harness.SuiteRunner
	reportWriter retryreport.Writer

	pending map[harness.TestIdentity]harness.PendingTest
}

// NewCoordinator ...
func NewCoordinator(logger log.Logger, builder retrysuite.Builder, suiteRunner harness.SuiteRunner, reportWriter retryreport.Writer) *Coordinator {
	return &Coordinator{
		logger:       logger,
		builder:      builder,
		suiteRunner:  suiteRunner,
		reportWriter: reportWriter,
		pending:      map[harness.TestIdentity]harness.PendingTest{},
	}
}

// Enqueue registers a suppressed test for re-execution. Insert-or-replace
// by identity: if the same test is queued twice within one run, the latest
// snapshot wins.
func (c *Coordinator) Enqueue(test harness.PendingTest) {
	c.pending[test.Identity] = test
}

// PendingCount ...
func (c *Coordinator) PendingCount() int {
	return len(c.pending)
}

// SuiteDidFinish drains the pending set: it persists the retry report,
// builds a suite containing fresh instances of the queued tests and runs it
// synchronously. Tests failing again within their budget re-enqueue
// themselves, so the drain loops; it terminates because every generation's
// retry counters strictly increase and the interceptor refuses to suppress
// once a budget is exhausted.
//
// The harness may notify this observer for the retry suites themselves; the
// pending set is cleared before each round, so re-entrant notifications
// only ever see failures of the round they belong to.
func (c *Coordinator) SuiteDidFinish(suite harness.Suite) {
	for len(c.pending) > 0 {
		pending := c.sortedPending()

		if err := c.reportWriter.Write(retryreport.EntriesForPending(pending)); err != nil {
			c.logger.Warnf("Failed to persist retry report: %s", err)
		}

		retrySuite, err := c.builder.BuildSuite(pending)
		if err != nil {
			// A queued test that cannot be re-targeted to its test function
			// means the harness broke the re-instantiation contract; carrying
			// on would produce a silently wrong run.
			panic(fmt.Sprintf("retry coordination: %s", err))
		}

		c.pending = map[harness.TestIdentity]harness.PendingTest{}

		c.logger.Warnf("%d flaky test(s) failed in %s, running %s", len(pending), suite.Name, retrySuite.Name)
		if err := c.suiteRunner.RunSuite(retrySuite); err != nil {
			c.logger.Errorf("Retry suite execution failed: %s", err)
			return
		}
	}
}

func (c *Coordinator) sortedPending() []harness.PendingTest {
	pending := make([]harness.PendingTest, 0, len(c.pending))
	for _, test := range c.pending {
		pending = append(pending, test)
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].Identity.Less(pending[j].Identity)
	})

	return pending
}
