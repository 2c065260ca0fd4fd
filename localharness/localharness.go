package localharness

import (
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/bitrise-io/flaky-test-retry/harness"
	"github.com/bitrise-io/flaky-test-retry/interceptor"
	"github.com/bitrise-io/flaky-test-retry/reliability"
	"github.com/bitrise-io/go-utils/v2/log"
)

const harnessVersion = "1.6.0"

// TestFunc is the body of one registered test function.
type TestFunc func(t *T)

// Attachment is a diagnostic artifact collected for a test instance.
type Attachment struct {
	Name    string
	Content string
}

// Harness is an in-process test harness. It registers test functions,
// runs suites synchronously and exposes the recording, instantiation and
// observation hooks the retry layer builds on.
//
// It implements harness.Harness, harness.Recorder and
// harness.AttachmentSink.
type Harness struct {
	logger log.Logger
	queue  interceptor.FailureQueue

	registry  map[harness.TestIdentity]TestFunc
	observers []harness.SuiteObserver

	mu              sync.Mutex
	failureCount    int
	tallySuppressed bool
	attachments     map[string][]Attachment
}

// NewHarness ...
func NewHarness(logger log.Logger) *Harness {
	return &Harness{
		logger:      logger,
		registry:    map[harness.TestIdentity]TestFunc{},
		attachments: map[string][]Attachment{},
	}
}

// SetFailureQueue wires the retry queue suppressed failures are reported
// to. It has to be set before the first suite runs; without a queue every
// failure is recorded as a hard failure.
func (h *Harness) SetFailureQueue(queue interceptor.FailureQueue) {
	h.queue = queue
}

// Register adds a test function under its case and function name.
// Re-registering an identity replaces the previous body.
func (h *Harness) Register(caseName, functionName string, fn TestFunc) {
	h.registry[harness.TestIdentity{CaseName: caseName, FunctionName: functionName}] = fn
}

// RegisteredIdentities returns every registered test identity in qualified
// name order.
func (h *Harness) RegisteredIdentities() []harness.TestIdentity {
	identities := make([]harness.TestIdentity, 0, len(h.registry))
	for identity := range h.registry {
		identities = append(identities, identity)
	}
	sort.Slice(identities, func(i, j int) bool {
		return identities[i].Less(identities[j])
	})

	return identities
}

// CreateTest ...
func (h *Harness) CreateTest(identity harness.TestIdentity, retryCount int) (harness.Test, error) {
	fn, ok := h.registry[identity]
	if !ok {
		return nil, fmt.Errorf("no test function registered for %s", identity)
	}

	return &localTest{identity: identity, retryCount: retryCount, fn: fn}, nil
}

// AddSuiteObserver ...
func (h *Harness) AddSuiteObserver(observer harness.SuiteObserver) {
	h.observers = append(h.observers, observer)
}

// Version ...
func (h *Harness) Version() string {
	return harnessVersion
}

// FailureCount is the number of hard (non-suppressed) failures recorded so
// far across all suites.
func (h *Harness) FailureCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.failureCount
}

// RunSuite executes every test of the suite in order on the calling
// goroutine, then notifies the registered observers. Observers may start
// further suites from their callback; those runs complete, including their
// own notifications, before this call returns.
func (h *Harness) RunSuite(suite harness.Suite) error {
	h.logger.Printf("Running suite %s (%d tests)", suite.Name, len(suite.Tests))

	for _, test := range suite.Tests {
		localTest, ok := test.(*localTest)
		if !ok {
			return fmt.Errorf("suite %s contains a test not created by this harness: %s", suite.Name, test.Identity())
		}
		h.runTest(localTest)
	}

	for _, observer := range h.observers {
		observer.SuiteDidFinish(suite)
	}

	return nil
}

// RecordFailure counts a hard failure unless the tally is suppressed.
// Halting the failed test function is the caller's business, not the
// recorder's.
func (h *Harness) RecordFailure(failure harness.Failure) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tallySuppressed {
		return
	}
	h.failureCount++
	h.logger.Errorf("Failure: %s (%s:%d)", failure.Description, failure.FilePath, failure.Line)
}

// SetTallySuppressed ...
func (h *Harness) SetTallySuppressed(suppressed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.tallySuppressed = suppressed
}

// Attach stores a diagnostic in memory, keyed by the test's qualified name.
func (h *Harness) Attach(identity harness.TestIdentity, name string, content string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	key := identity.String()
	h.attachments[key] = append(h.attachments[key], Attachment{Name: name, Content: content})

	return nil
}

// Attachments returns the diagnostics collected for a test across all of
// its instances, in the order they were attached.
func (h *Harness) Attachments(identity harness.TestIdentity) []Attachment {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.attachments[identity.String()]
}

func (h *Harness) runTest(test *localTest) {
	fi := interceptor.NewFailureInterceptor(h.logger, h, h.failureQueue(), h, test.identity, test.retryCount)
	t := &T{interceptor: fi}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, halted := r.(testHalted); halted {
			return
		}
		// A panic escaping the test body is an unexpected failure; by the
		// time it reaches us any flaky section has already been unwound, so
		// it always counts as hard.
		fi.OnFailureRaised(harness.Failure{
			Description: fmt.Sprintf("uncaught error: %v", r),
			Expected:    false,
		})
	}()

	test.fn(t)
}

func (h *Harness) failureQueue() interceptor.FailureQueue {
	if h.queue != nil {
		return h.queue
	}
	return dropQueue{logger: h.logger}
}

type localTest struct {
	identity   harness.TestIdentity
	retryCount int
	fn         TestFunc
}

func (t *localTest) Identity() harness.TestIdentity {
	return t.identity
}

func (t *localTest) RetryCount() int {
	return t.retryCount
}

// dropQueue stands in when no retry queue is wired: suppression still asked
// for a retry that nobody will run, so the loss is logged.
type dropQueue struct {
	logger log.Logger
}

func (q dropQueue) Enqueue(test harness.PendingTest) {
	q.logger.Warnf("No retry queue attached, dropping queued retry for %s", test.Identity)
}

// T is the handle passed to a running test function.
type T struct {
	interceptor *interceptor.FailureInterceptor
}

// Identity ...
func (t *T) Identity() harness.TestIdentity {
	return t.interceptor.Identity()
}

// RetryCount is the number of retries this instance has already consumed;
// 0 for the original run.
func (t *T) RetryCount() int {
	return t.interceptor.RetryCount()
}

// Flaky marks the enclosed block as a known-flaky section: an assertion
// failure inside it is suppressed and the test is queued for a retry, as
// long as the policy's budget allows.
func (t *T) Flaky(policy reliability.Policy, block func()) {
	t.interceptor.RunFlaky(policy, block)
}

// Fail signals an assertion failure and halts the test function.
func (t *T) Fail(description string) {
	t.fail(description)
}

// Failf ...
func (t *T) Failf(format string, args ...interface{}) {
	t.fail(fmt.Sprintf(format, args...))
}

type testHalted struct{}

func (t *T) fail(description string) {
	failure := harness.Failure{Description: description, Expected: true}
	if _, file, line, ok := runtime.Caller(2); ok {
		failure.FilePath = file
		failure.Line = line
	}

	t.interceptor.OnFailureRaised(failure)
	panic(testHalted{})
}
