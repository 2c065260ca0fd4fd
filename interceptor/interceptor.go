package interceptor

import (
	"fmt"

	"github.com/bitrise-io/flaky-test-retry/harness"
	"github.com/bitrise-io/flaky-test-retry/reliability"
	"github.com/bitrise-io/go-utils/v2/log"
)

// FailureQueue collects tests whose failure was suppressed so they can be
// re-run after the current suite finishes. The retry coordinator implements
// it.
type FailureQueue interface {
	Enqueue(test harness.PendingTest)
}

// FailureInterceptor wraps the failure recording path of a single test
// instance. It tracks the instance's reliability state and decides whether
// a raised failure is suppressed and queued for retry, or forwarded as a
// hard failure.
//
// Instances are created fresh for every test function invocation and must
// only be used from the harness's test execution thread.
type FailureInterceptor struct {
	logger      log.Logger
	recorder    harness.Recorder
	queue       FailureQueue
	attachments harness.AttachmentSink

	identity    harness.TestIdentity
	retryCount  int
	reliability reliability.Reliability
}

// NewFailureInterceptor ...
func NewFailureInterceptor(
	logger log.Logger,
	recorder harness.Recorder,
	queue FailureQueue,
	attachments harness.AttachmentSink,
	identity harness.TestIdentity,
	retryCount int,
) *FailureInterceptor {
	return &FailureInterceptor{
		logger:      logger,
		recorder:    recorder,
		queue:       queue,
		attachments: attachments,
		identity:    identity,
		retryCount:  retryCount,
		reliability: reliability.Reliable,
	}
}

// Identity ...
func (i *FailureInterceptor) Identity() harness.TestIdentity {
	return i.identity
}

// RetryCount is the number of retries this instance has already consumed.
func (i *FailureInterceptor) RetryCount() int {
	return i.retryCount
}

// RunFlaky marks the test flaky under the given policy for the duration of
// block, then restores the reliable state. Nested sections overwrite the
// enclosing policy; the previous policy is not restored (last write wins).
func (i *FailureInterceptor) RunFlaky(policy reliability.Policy, block func()) {
	i.reliability = reliability.Flaky(policy)
	// The restore is deferred so it also holds when the harness halts the
	// test function by unwinding out of the block.
	defer func() {
		i.reliability = reliability.Reliable
	}()
	block()
}

// OnFailureRaised routes a failure signalled by the running test. Outside a
// flaky section, or once the retry budget is exhausted, the failure is
// forwarded to the harness unchanged. Inside a flaky section with retries
// remaining, the test is queued for re-execution and the failure is
// forwarded with the suite-level tally suppressed: the harness still halts
// the test function, but the run is not counted as failed.
func (i *FailureInterceptor) OnFailureRaised(failure harness.Failure) {
	policy, flaky := i.reliability.FlakinessPolicy()
	if !flaky {
		i.recorder.RecordFailure(failure)
		return
	}

	if i.retryCount >= policy.MaxRetryCount() {
		i.logger.Warnf("%s: retry budget (%d) exhausted, failing", i.identity, policy.MaxRetryCount())
		i.recorder.RecordFailure(failure)
		return
	}

	i.logger.Warnf("%s: flaky failure suppressed (%s), queueing retry %d of %d",
		i.identity, policy.Reason(), i.retryCount+1, policy.MaxRetryCount())
	i.attachDiagnostic(policy, failure)

	i.queue.Enqueue(harness.PendingTest{
		Identity:   i.identity,
		RetryCount: i.retryCount,
		Policy:     policy,
	})

	i.recorder.SetTallySuppressed(true)
	// Restored in a defer: a harness may halt the test function by unwinding
	// out of RecordFailure, and the gate must not stay closed for the rest of
	// the run.
	defer i.recorder.SetTallySuppressed(false)
	i.recorder.RecordFailure(failure)
}

func (i *FailureInterceptor) attachDiagnostic(policy reliability.Policy, failure harness.Failure) {
	if i.attachments == nil {
		return
	}

	name := fmt.Sprintf("flaky-failure-attempt-%d", i.retryCount)
	content := fmt.Sprintf(
		"test: %s\npolicy: %s\nreason: %s\nretry count: %d\nmax retries: %d\nfailure: %s\nlocation: %s:%d\n",
		i.identity,
		policy.Kind(),
		policy.Reason(),
		i.retryCount,
		policy.MaxRetryCount(),
		failure.Description,
		failure.FilePath, failure.Line,
	)

	if err := i.attachments.Attach(i.identity, name, content); err != nil {
		i.logger.Warnf("Failed to attach flake diagnostic for %s: %s", i.identity, err)
	}
}
