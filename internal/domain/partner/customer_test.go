package partner

import (
	"testing"
	"time"

	"github.com/scart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates pending customer successfully", func(t *testing.T) {
		customer, err := NewCustomer("Acme Industries", 7)

		require.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, "Acme Industries", customer.Name)
		assert.Equal(t, CustomerStatusPending, customer.Status)
		require.NotNil(t, customer.RequestedByUserID)
		assert.Equal(t, uint(7), *customer.RequestedByUserID)
		assert.Nil(t, customer.ApprovedAt)
		assert.Nil(t, customer.RejectedAt)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		customer, err := NewCustomer("  Acme Industries  ", 7)

		require.NoError(t, err)
		assert.Equal(t, "Acme Industries", customer.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		customer, err := NewCustomer("   ", 7)

		assert.Error(t, err)
		assert.Nil(t, customer)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})
}

func TestCustomer_Approve(t *testing.T) {
	now := time.Now().UTC()

	t.Run("transitions pending to approved", func(t *testing.T) {
		customer, err := NewCustomer("Acme Industries", 7)
		require.NoError(t, err)

		err = customer.Approve(2, now)

		require.NoError(t, err)
		assert.Equal(t, CustomerStatusApproved, customer.Status)
		require.NotNil(t, customer.ApprovedByUserID)
		assert.Equal(t, uint(2), *customer.ApprovedByUserID)
		require.NotNil(t, customer.ApprovedAt)
		assert.Equal(t, now, *customer.ApprovedAt)
		assert.Nil(t, customer.RejectedAt)
		assert.Nil(t, customer.ApprovalComment)
		assert.True(t, customer.IsApproved())
	})

	t.Run("fails on already approved customer", func(t *testing.T) {
		customer, _ := NewCustomer("Acme Industries", 7)
		require.NoError(t, customer.Approve(2, now))

		err := customer.Approve(3, now)

		assert.Equal(t, shared.ErrAlreadyProcessed, err)
		assert.Equal(t, uint(2), *customer.ApprovedByUserID)
	})

	t.Run("fails on rejected customer", func(t *testing.T) {
		customer, _ := NewCustomer("Acme Industries", 7)
		require.NoError(t, customer.Reject("insufficient credit data", now))

		err := customer.Approve(2, now)

		assert.Equal(t, shared.ErrAlreadyProcessed, err)
		assert.True(t, customer.IsRejected())
	})
}

func TestCustomer_Reject(t *testing.T) {
	now := time.Now().UTC()

	t.Run("transitions pending to rejected with comment", func(t *testing.T) {
		customer, err := NewCustomer("Acme Industries", 7)
		require.NoError(t, err)

		err = customer.Reject("duplicate of existing account", now)

		require.NoError(t, err)
		assert.Equal(t, CustomerStatusRejected, customer.Status)
		require.NotNil(t, customer.RejectedAt)
		assert.Equal(t, now, *customer.RejectedAt)
		require.NotNil(t, customer.ApprovalComment)
		assert.Equal(t, "duplicate of existing account", *customer.ApprovalComment)
		assert.Nil(t, customer.ApprovedAt)
		assert.Nil(t, customer.ApprovedByUserID)
	})

	t.Run("fails on already rejected customer", func(t *testing.T) {
		customer, _ := NewCustomer("Acme Industries", 7)
		require.NoError(t, customer.Reject("first", now))

		err := customer.Reject("second", now)

		assert.Equal(t, shared.ErrAlreadyProcessed, err)
		assert.Equal(t, "first", *customer.ApprovalComment)
	})
}

func TestCustomer_StatusPredicates(t *testing.T) {
	customer, err := NewCustomer("Acme Industries", 7)
	require.NoError(t, err)

	assert.True(t, customer.IsPending())
	assert.False(t, customer.IsApproved())
	assert.False(t, customer.IsRejected())
}

func TestCustomer_ApprovalTimestampInvariant(t *testing.T) {
	// Exactly one of ApprovedAt/RejectedAt is set after a transition,
	// matching the status.
	now := time.Now().UTC()

	approved, _ := NewCustomer("A", 1)
	require.NoError(t, approved.Approve(2, now))
	assert.NotNil(t, approved.ApprovedAt)
	assert.Nil(t, approved.RejectedAt)

	rejected, _ := NewCustomer("B", 1)
	require.NoError(t, rejected.Reject("", now))
	assert.Nil(t, rejected.ApprovedAt)
	assert.NotNil(t, rejected.RejectedAt)
}
