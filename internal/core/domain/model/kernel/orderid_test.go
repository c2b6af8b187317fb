package kernel_test

import (
	"testing"
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	t.Run("should expose the fixed prefix mapping", func(t *testing.T) {
		expected := map[kernel.Channel]string{
			kernel.ChannelWeb:        "10",
			kernel.ChannelMobile:     "20",
			kernel.ChannelAPI:        "30",
			kernel.ChannelPOS:        "40",
			kernel.ChannelCallCenter: "50",
		}
		for ch, prefix := range expected {
			assert.Equal(t, prefix, ch.Prefix())
		}
	})

	t.Run("should parse upstream wire names", func(t *testing.T) {
		ch, err := kernel.ChannelFromString("CALL_CENTER")

		require.NoError(t, err)
		assert.Equal(t, kernel.ChannelCallCenter, ch)
	})

	t.Run("should reject unknown wire names", func(t *testing.T) {
		_, err := kernel.ChannelFromString("CARRIER_PIGEON")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail validation for the zero value", func(t *testing.T) {
		require.Error(t, kernel.ChannelUnknown.Validate())
		assert.Equal(t, "UNKNOWN", kernel.ChannelUnknown.String())
	})
}

func TestNewOrderID(t *testing.T) {
	date := time.Date(2025, 12, 25, 14, 30, 0, 0, time.UTC)

	t.Run("should format as CC-YYYYMMDD-NNNNNNN", func(t *testing.T) {
		id, err := kernel.NewOrderID(kernel.ChannelWeb, date, 1)

		require.NoError(t, err)
		require.NoError(t, id.Validate())
		assert.Equal(t, "10-20251225-0000001", id.String())
		assert.Equal(t, kernel.ChannelWeb, id.Channel())
		assert.Equal(t, 1, id.Sequence())
	})

	t.Run("should truncate the date to a UTC day", func(t *testing.T) {
		id, err := kernel.NewOrderID(kernel.ChannelMobile, date, 42)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), id.Date())
	})

	t.Run("should reject sequence out of range", func(t *testing.T) {
		for _, seq := range []int{0, -1, 10000000} {
			_, err := kernel.NewOrderID(kernel.ChannelWeb, date, seq)
			require.Error(t, err, "sequence %d should be rejected", seq)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject unknown channel and zero date", func(t *testing.T) {
		_, err := kernel.NewOrderID(kernel.ChannelUnknown, date, 1)
		require.Error(t, err)

		_, err = kernel.NewOrderID(kernel.ChannelWeb, time.Time{}, 1)
		require.Error(t, err)
	})
}

func TestOrderIDFromString(t *testing.T) {
	t.Run("should round-trip a formatted identifier", func(t *testing.T) {
		id, err := kernel.OrderIDFromString("50-20251225-0012345")

		require.NoError(t, err)
		assert.Equal(t, kernel.ChannelCallCenter, id.Channel())
		assert.Equal(t, 12345, id.Sequence())
		assert.Equal(t, "50-20251225-0012345", id.String())
	})

	t.Run("should reject malformed identifiers", func(t *testing.T) {
		for _, s := range []string{
			"",
			"10-20251225-1",
			"10/20251225/0000001",
			"99-20251225-0000001", // unknown channel prefix
			"10-20251340-0000001", // impossible date
			"10-20251225-0000000", // sequence below minimum
		} {
			_, err := kernel.OrderIDFromString(s)
			require.Error(t, err, "order id %q should be rejected", s)
		}
	})

	t.Run("should compare identifiers by value", func(t *testing.T) {
		a, _ := kernel.OrderIDFromString("10-20251225-0000001")
		b, _ := kernel.OrderIDFromString("10-20251225-0000001")
		c, _ := kernel.OrderIDFromString("10-20251225-0000002")

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})

	t.Run("should fail validation for the zero value", func(t *testing.T) {
		var id kernel.OrderID

		assert.Equal(t, kernel.ErrOrderIDIsNotConstructed, id.Validate())
	})
}
