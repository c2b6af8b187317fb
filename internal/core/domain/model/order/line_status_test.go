package order

import (
	"testing"
	"time"

	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allLineStatusValues() []LineStatusValue {
	return []LineStatusValue{
		LineCreated,
		LineAllocated,
		LineReleased,
		LineShipped,
		LineShippedAndInvoiced,
		LineDelivered,
		LineReturnInitiated,
		LineReturnCompleted,
		LineCancelled,
	}
}

func Test_LineStatusValue_TransitionTo_FollowsTransitionTable(t *testing.T) {
	allowed := map[LineStatusValue]map[LineStatusValue]bool{
		LineCreated:            {LineAllocated: true, LineCancelled: true},
		LineAllocated:          {LineReleased: true, LineCancelled: true},
		LineReleased:           {LineShipped: true, LineCancelled: true},
		LineShipped:            {LineShippedAndInvoiced: true, LineDelivered: true, LineReturnInitiated: true},
		LineShippedAndInvoiced: {LineDelivered: true, LineReturnInitiated: true},
		LineDelivered:          {LineReturnInitiated: true},
		LineReturnInitiated:    {LineReturnCompleted: true},
		LineReturnCompleted:    {},
		LineCancelled:          {},
	}

	for _, from := range allLineStatusValues() {
		for _, to := range allLineStatusValues() {
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				result, err := from.TransitionTo(to)

				if allowed[from][to] {
					require.NoError(t, err)
					assert.Equal(t, to, result)
				} else {
					require.Error(t, err)
					assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
					assert.Equal(t, LineStatusUnknown, result)
				}
			})
		}
	}
}

func Test_LineStatusValue_CodesAndDescriptions(t *testing.T) {
	codes := map[LineStatusValue]int{
		LineCreated:            1000,
		LineAllocated:          1100,
		LineReleased:           1200,
		LineShipped:            1300,
		LineShippedAndInvoiced: 1310,
		LineDelivered:          1400,
		LineReturnInitiated:    1500,
		LineReturnCompleted:    1510,
		LineCancelled:          1900,
	}

	for _, v := range allLineStatusValues() {
		assert.Equal(t, codes[v], v.Code(), v.String())
		assert.NotEmpty(t, v.Description(), v.String())
	}
}

func Test_LineStatusValue_IsShipped(t *testing.T) {
	shipped := map[LineStatusValue]bool{
		LineShipped:            true,
		LineShippedAndInvoiced: true,
		LineDelivered:          true,
	}

	for _, v := range allLineStatusValues() {
		assert.Equal(t, shipped[v], v.IsShipped(), v.String())
	}
}

func Test_LineStatusValue_IsTerminal(t *testing.T) {
	terminal := map[LineStatusValue]bool{LineReturnCompleted: true, LineCancelled: true}

	for _, v := range allLineStatusValues() {
		assert.Equal(t, terminal[v], v.IsTerminal(), v.String())
	}
}

func Test_LineStatusValue_FromString(t *testing.T) {
	t.Run("should round-trip every defined value", func(t *testing.T) {
		for _, v := range allLineStatusValues() {
			parsed, err := LineStatusFromString(v.String())
			require.NoError(t, err)
			assert.Equal(t, v, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := LineStatusFromString("BACKORDERED")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func Test_NewLineStatus(t *testing.T) {
	t.Run("should start in created state", func(t *testing.T) {
		ls, err := NewLineStatus(3)

		require.NoError(t, err)
		assert.Equal(t, LineCreated, ls.Status())
		assert.Equal(t, 3, ls.Quantity())
		assert.Equal(t, 1000, ls.StatusCode())
		assert.Empty(t, ls.Notes())
		assert.False(t, ls.UpdatedAt().IsZero())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := NewLineStatus(0)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func Test_RestoreLineStatus(t *testing.T) {
	updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ls, err := RestoreLineStatus(2, LineShipped, "left warehouse", updatedAt)

	require.NoError(t, err)
	assert.Equal(t, LineShipped, ls.Status())
	assert.Equal(t, 1300, ls.StatusCode())
	assert.Equal(t, "left warehouse", ls.Notes())
	assert.Equal(t, updatedAt, ls.UpdatedAt())
}

func Test_LineStatus_UpdateStatus(t *testing.T) {
	t.Run("should return a new record and keep the receiver unchanged", func(t *testing.T) {
		original, err := NewLineStatus(1)
		require.NoError(t, err)

		updated, err := original.UpdateStatus(LineAllocated, "picked")

		require.NoError(t, err)
		assert.Equal(t, LineAllocated, updated.Status())
		assert.Equal(t, "picked", updated.Notes())
		assert.Equal(t, LineCreated, original.Status())
		assert.Empty(t, original.Notes())
	})

	t.Run("should fail on a transition the table forbids", func(t *testing.T) {
		ls, err := NewLineStatus(1)
		require.NoError(t, err)

		_, err = ls.UpdateStatus(LineDelivered, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})

	t.Run("should fail on a non-constructed record", func(t *testing.T) {
		var ls LineStatus

		_, err := ls.UpdateStatus(LineAllocated, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLineStatusIsNotConstructed)
	})
}
