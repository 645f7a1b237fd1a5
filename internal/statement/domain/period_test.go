package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillingPeriod(t *testing.T) {
	period, err := ParseBillingPeriod("2026-07")
	require.NoError(t, err)
	assert.Equal(t, 2026, period.Year)
	assert.Equal(t, time.July, period.Month)
	assert.Equal(t, "2026-07", period.String())

	for _, bad := range []string{"", "2026", "2026-13", "07-2026", "2026/07", "garbage"} {
		_, err := ParseBillingPeriod(bad)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "input %q", bad)
	}
}

func TestPeriodBounds(t *testing.T) {
	period, err := NewBillingPeriod(2026, time.February)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), period.Start())
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), period.End())
}

func TestValidateCalculable(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	current, _ := NewBillingPeriod(2026, time.July)
	assert.NoError(t, ValidateCalculable(current, now))

	previous, _ := NewBillingPeriod(2026, time.June)
	assert.NoError(t, ValidateCalculable(previous, now))

	future, _ := NewBillingPeriod(2026, time.August)
	assert.ErrorIs(t, ValidateCalculable(future, now), ErrPeriodInFuture)

	ancient, _ := NewBillingPeriod(2024, time.May)
	assert.ErrorIs(t, ValidateCalculable(ancient, now), ErrPeriodTooOld)

	// Exactly two years back is still calculable.
	boundary, _ := NewBillingPeriod(2024, time.July)
	assert.NoError(t, ValidateCalculable(boundary, now))
}
