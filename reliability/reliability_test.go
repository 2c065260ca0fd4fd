package reliability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenFixablePolicy_WhenCreated_ThenAllowsExactlyOneRetry(t *testing.T) {
	policy := FixablePolicy("login endpoint is rate limited on CI")

	assert.Equal(t, PolicyFixable, policy.Kind())
	assert.Equal(t, 1, policy.MaxRetryCount())
	assert.Equal(t, "login endpoint is rate limited on CI", policy.Reason())
}

func Test_GivenNotFixablePolicy_WhenCreated_ThenKeepsCallerCeiling(t *testing.T) {
	tests := []struct {
		name            string
		maxRetryCount   int
		expectedCeiling int
	}{
		{
			name:            "positive ceiling is kept",
			maxRetryCount:   3,
			expectedCeiling: 3,
		},
		{
			name:            "zero ceiling behaves as unmarked",
			maxRetryCount:   0,
			expectedCeiling: 0,
		},
		{
			name:            "negative ceiling is clamped to zero",
			maxRetryCount:   -2,
			expectedCeiling: 0,
		},
	}

	for _, test := range tests {
		t.Log(test.name)

		policy := NotFixablePolicy("third party sandbox is unstable", test.maxRetryCount)

		assert.Equal(t, PolicyNotFixable, policy.Kind())
		assert.Equal(t, test.expectedCeiling, policy.MaxRetryCount())
	}
}

func Test_GivenReliableState_WhenInspected_ThenHasNoPolicy(t *testing.T) {
	require.False(t, Reliable.IsFlaky())

	_, flaky := Reliable.FlakinessPolicy()
	require.False(t, flaky)
}

func Test_GivenFlakyState_WhenInspected_ThenReturnsActivePolicy(t *testing.T) {
	policy := NotFixablePolicy("simulator clock drift", 2)

	state := Flaky(policy)

	require.True(t, state.IsFlaky())
	activePolicy, flaky := state.FlakinessPolicy()
	require.True(t, flaky)
	assert.Equal(t, policy, activePolicy)
}

func Test_GivenPolicyKinds_WhenPrinted_ThenHumanReadable(t *testing.T) {
	assert.Equal(t, "fixable", PolicyFixable.String())
	assert.Equal(t, "not-fixable", PolicyNotFixable.String())
	assert.Equal(t, "unknown", PolicyKind(0).String())
}
