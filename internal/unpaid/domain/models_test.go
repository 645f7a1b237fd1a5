package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnpaidAmount_Validation(t *testing.T) {
	_, err := NewUnpaidAmount(-1, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewUnpaidAmount(100, -1, 0)
	assert.ErrorIs(t, err, ErrInvalidOverdueDays)

	_, err = NewUnpaidAmount(100, 0, -0.1)
	assert.ErrorIs(t, err, ErrInvalidOverdueRate)

	_, err = NewUnpaidAmount(100, 0, 1.5)
	assert.ErrorIs(t, err, ErrInvalidOverdueRate)
}

func TestOverdueCharge_Rounding(t *testing.T) {
	unpaid, err := NewUnpaidAmount(1050, 10, 0.05)
	require.NoError(t, err)

	// 1050 * 0.05 = 52.5 rounds half-up to 53.
	assert.Equal(t, int64(53), unpaid.OverdueChargeCents())
	assert.Equal(t, int64(1103), unpaid.TotalWithCharges())
}
