package statement

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

// TestReconcile_ExactMatch verifies identical figures reconcile with a
// zero discrepancy.
func TestReconcile_ExactMatch(t *testing.T) {
	result := Reconcile(dec("25650"), dec("25650"), DefaultTolerance)

	assert.True(t, result.Discrepancy.IsZero())
	assert.True(t, result.WithinTolerance)
}

// TestReconcile_DiscrepancyIsReportedMinusComputed verifies the sign
// convention: a reported figure above the computed one yields a
// positive discrepancy.
func TestReconcile_DiscrepancyIsReportedMinusComputed(t *testing.T) {
	result := Reconcile(dec("1000"), dec("1250"), DefaultTolerance)
	assert.True(t, result.Discrepancy.Equal(dec("250")))
	assert.False(t, result.WithinTolerance)

	result = Reconcile(dec("1250"), dec("1000"), DefaultTolerance)
	assert.True(t, result.Discrepancy.Equal(dec("-250")))
	assert.False(t, result.WithinTolerance)
}

// TestReconcile_ToleranceBoundary verifies a discrepancy of exactly
// the epsilon still counts as reconciled.
func TestReconcile_ToleranceBoundary(t *testing.T) {
	assert.True(t, Reconcile(dec("1000"), dec("1000.01"), DefaultTolerance).WithinTolerance)
	assert.False(t, Reconcile(dec("1000"), dec("1000.02"), DefaultTolerance).WithinTolerance)
}

// TestAmountEqual verifies the shared epsilon comparison is symmetric
// and inclusive at the boundary.
func TestAmountEqual(t *testing.T) {
	assert.True(t, AmountEqual(dec("1.00"), dec("1.01"), DefaultTolerance))
	assert.True(t, AmountEqual(dec("1.01"), dec("1.00"), DefaultTolerance))
	assert.False(t, AmountEqual(dec("1.00"), dec("1.02"), DefaultTolerance))
}
