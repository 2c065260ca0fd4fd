package harness

import (
	"fmt"

	"github.com/bitrise-io/flaky-test-retry/reliability"
)

// TestIdentity is the stable identifier of one test function: the owning
// test case type's name plus the function's name. Its qualified name is the
// key used for deduplication and ordering.
type TestIdentity struct {
	CaseName     string
	FunctionName string
}

func (id TestIdentity) String() string {
	return fmt.Sprintf("%s.%s", id.CaseName, id.FunctionName)
}

// Less orders identities by qualified name.
func (id TestIdentity) Less(other TestIdentity) bool {
	return id.String() < other.String()
}

// Failure is a single failure signalled by a running test.
type Failure struct {
	Description string
	FilePath    string
	Line        int
	// Expected tells whether the failure came from an assertion (true) or
	// from an uncaught error in the test body (false).
	Expected bool
}

// PendingTest is the snapshot of a suppressed test the coordinator keeps to
// rebuild the next retry generation. It does not own the test instance.
type PendingTest struct {
	Identity   TestIdentity
	RetryCount int
	Policy     reliability.Policy
}

// Test is one runnable test function instance. Instances are created fresh
// by the harness for every invocation; a retry is a brand new instance with
// an incremented retry count.
type Test interface {
	Identity() TestIdentity
	RetryCount() int
}

// Suite is an ordered collection of runnable tests.
type Suite struct {
	Name  string
	Tests []Test
}

// Recorder is the harness's failure recording path. SetTallySuppressed
// gates the suite-level failure tally: while suppressed, a recorded failure
// still halts the running test function but is not counted.
type Recorder interface {
	RecordFailure(failure Failure)
	SetTallySuppressed(suppressed bool)
}

// TestFactory constructs a fresh runnable instance of the test function
// identified by identity, primed with the given retry count.
type TestFactory interface {
	CreateTest(identity TestIdentity, retryCount int) (Test, error)
}

// SuiteRunner executes a suite synchronously on the harness's test
// execution thread.
type SuiteRunner interface {
	RunSuite(suite Suite) error
}

// SuiteObserver receives exactly one synchronous callback per finished
// suite, before the harness proceeds.
type SuiteObserver interface {
	SuiteDidFinish(suite Suite)
}

// AttachmentSink receives developer-facing diagnostics. It is used for
// observability only; implementations may drop attachments.
type AttachmentSink interface {
	Attach(identity TestIdentity, name string, content string) error
}

// Harness is the full capability set the retry layer needs from a host test
// harness.
type Harness interface {
	TestFactory
	SuiteRunner
	AddSuiteObserver(observer SuiteObserver)
	Version() string
	FailureCount() int
}
