package reliability

// PolicyKind tells how a flaky section is expected to be dealt with.
type PolicyKind int

const (
	// PolicyFixable marks a flake somebody is expected to fix. The retry
	// ceiling is hardwired to 1 to keep the pressure on remediation.
	PolicyFixable PolicyKind = iota + 1
	// PolicyNotFixable marks a flake outside the team's control, with a
	// caller-chosen retry ceiling.
	PolicyNotFixable
)

func (k PolicyKind) String() string {
	switch k {
	case PolicyFixable:
		return "fixable"
	case PolicyNotFixable:
		return "not-fixable"
	default:
		return "unknown"
	}
}

// Policy describes how failures raised inside a flaky section are retried.
// Construct it with FixablePolicy or NotFixablePolicy; the reason is
// documentation-as-code and should name the tracked cause of the flake.
type Policy struct {
	kind          PolicyKind
	reason        string
	maxRetryCount int
}

const fixableMaxRetryCount = 1

// FixablePolicy returns a policy for a flake that is expected to be fixed.
// It always allows exactly one retry.
func FixablePolicy(reason string) Policy {
	return Policy{
		kind:          PolicyFixable,
		reason:        reason,
		maxRetryCount: fixableMaxRetryCount,
	}
}

// NotFixablePolicy returns a policy for a flake that cannot be fixed on the
// test's side. A ceiling of 0 makes the flaky section behave as if unmarked.
func NotFixablePolicy(reason string, maxRetryCount int) Policy {
	if maxRetryCount < 0 {
		maxRetryCount = 0
	}
	return Policy{
		kind:          PolicyNotFixable,
		reason:        reason,
		maxRetryCount: maxRetryCount,
	}
}

// Kind ...
func (p Policy) Kind() PolicyKind {
	return p.kind
}

// Reason ...
func (p Policy) Reason() string {
	return p.reason
}

// MaxRetryCount is the number of retries a test may consume under this
// policy before a failure is surfaced as final.
func (p Policy) MaxRetryCount() int {
	return p.maxRetryCount
}

// Reliability is the state of a running test: Reliable, or Flaky under a
// given policy. It changes only at flaky section boundaries.
type Reliability struct {
	flaky  bool
	policy Policy
}

// Reliable is the zero state: every failure is final.
var Reliable = Reliability{}

// Flaky returns the reliability state of a test inside a flaky section.
func Flaky(policy Policy) Reliability {
	return Reliability{flaky: true, policy: policy}
}

// IsFlaky ...
func (r Reliability) IsFlaky() bool {
	return r.flaky
}

// FlakinessPolicy returns the active policy and whether the state is flaky.
func (r Reliability) FlakinessPolicy() (Policy, bool) {
	return r.policy, r.flaky
}
