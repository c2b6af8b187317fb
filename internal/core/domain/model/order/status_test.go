package order

import (
	"testing"

	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allStatuses() []Status {
	return []Status{
		StatusCreated,
		StatusInRelease,
		StatusReleased,
		StatusInShipment,
		StatusShipped,
		StatusDelivered,
		StatusCancelled,
	}
}

func Test_Status_TransitionTo_FollowsTransitionTable(t *testing.T) {
	// Transitions permitted by the lifecycle; everything else must fail.
	allowed := map[Status]map[Status]bool{
		StatusCreated:    {StatusInRelease: true, StatusReleased: true, StatusCancelled: true},
		StatusInRelease:  {StatusReleased: true, StatusInShipment: true, StatusCancelled: true},
		StatusReleased:   {StatusInShipment: true, StatusShipped: true, StatusCancelled: true},
		StatusInShipment: {StatusShipped: true, StatusCancelled: true},
		StatusShipped:    {StatusDelivered: true},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			t.Run(from.String()+"_to_"+to.String(), func(t *testing.T) {
				result, err := from.TransitionTo(to)

				if allowed[from][to] {
					require.NoError(t, err)
					assert.Equal(t, to, result)
				} else {
					require.Error(t, err)
					assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
					assert.Equal(t, StatusUnknown, result)
				}
			})
		}
	}
}

func Test_Status_TransitionTo_ErrorNamesStates(t *testing.T) {
	_, err := StatusDelivered.TransitionTo(StatusCreated)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DELIVERED")
	assert.Contains(t, err.Error(), "CREATED")
	assert.Contains(t, err.Error(), "none")
}

func Test_Status_TransitionTo_RejectsInvalidValues(t *testing.T) {
	t.Run("should fail on invalid source", func(t *testing.T) {
		_, err := StatusUnknown.TransitionTo(StatusCreated)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail on invalid target", func(t *testing.T) {
		_, err := StatusCreated.TransitionTo(Status(42))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func Test_Status_IsTerminal(t *testing.T) {
	terminal := map[Status]bool{StatusDelivered: true, StatusCancelled: true}

	for _, s := range allStatuses() {
		assert.Equal(t, terminal[s], s.IsTerminal(), s.String())
	}
	assert.False(t, StatusUnknown.IsTerminal())
}

func Test_Status_IsModifiable(t *testing.T) {
	for _, s := range allStatuses() {
		assert.Equal(t, s == StatusCreated, s.IsModifiable(), s.String())
	}
}

func Test_Status_CanCancel(t *testing.T) {
	cancellable := map[Status]bool{
		StatusCreated:    true,
		StatusInRelease:  true,
		StatusReleased:   true,
		StatusInShipment: true,
	}

	for _, s := range allStatuses() {
		assert.Equal(t, cancellable[s], s.CanCancel(), s.String())
	}
}

func Test_Status_FromString(t *testing.T) {
	t.Run("should round-trip every defined status", func(t *testing.T) {
		for _, s := range allStatuses() {
			parsed, err := StatusFromString(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := StatusFromString("PENDING")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject the UNKNOWN name", func(t *testing.T) {
		_, err := StatusFromString("UNKNOWN")
		require.Error(t, err)
	})
}

func Test_Status_String_IsSafeOnInvalidValues(t *testing.T) {
	assert.Equal(t, "UNKNOWN", Status(99).String())
	assert.Equal(t, "UNKNOWN", StatusUnknown.String())
}
