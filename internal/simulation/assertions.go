package simulation

import "testing"

// AssertCountsConserved asserts that every period's counts sum to the
// chain length.
func AssertCountsConserved(t *testing.T, result *Result) {
	t.Helper()
	for _, pr := range append([]PeriodResult{result.Initial}, result.Periods...) {
		if got := pr.Counts.Total(); got != result.ChainLength {
			t.Errorf("AssertCountsConserved: period %d: counts %v sum to %d, want %d", pr.Period, pr.Counts, got, result.ChainLength)
		}
	}
}

// AssertNeverIdentity asserts that a non-identity starting operator stays
// non-identity in every period.
func AssertNeverIdentity(t *testing.T, result *Result) {
	t.Helper()
	if result.Initial.Weight == 0 {
		t.Errorf("AssertNeverIdentity: starting operator is the identity")
		return
	}
	for _, pr := range result.Periods {
		if pr.Weight == 0 {
			t.Errorf("AssertNeverIdentity: period %d: operator collapsed to identity", pr.Period)
		}
	}
}

// AssertSupportWithin asserts that the support of every period lies inside
// [left, right].
func AssertSupportWithin(t *testing.T, result *Result, left, right int) {
	t.Helper()
	for _, pr := range result.Periods {
		if pr.Weight == 0 {
			continue
		}
		if pr.Left < left || pr.Right > right {
			t.Errorf("AssertSupportWithin: period %d: support [%d, %d] outside [%d, %d]", pr.Period, pr.Left, pr.Right, left, right)
		}
	}
}

// AssertPeriodsComplete asserts that the result holds n periods numbered 1..n.
func AssertPeriodsComplete(t *testing.T, result *Result, n int) {
	t.Helper()
	if len(result.Periods) != n {
		t.Errorf("AssertPeriodsComplete: got %d periods, want %d", len(result.Periods), n)
		return
	}
	for i, pr := range result.Periods {
		if pr.Period != i+1 {
			t.Errorf("AssertPeriodsComplete: entry %d has period %d", i, pr.Period)
		}
	}
}
