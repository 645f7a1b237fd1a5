package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	periodStart = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
)

func record(counter string, kind CounterKind, volume float64, at time.Time) MeteringRecord {
	return MeteringRecord{
		CounterName: counter,
		CounterKind: kind,
		Volume:      volume,
		RecordedAt:  at,
	}
}

func TestNewUsageAggregation_InvalidBounds(t *testing.T) {
	_, err := NewUsageAggregation(periodEnd, periodStart)
	assert.ErrorIs(t, err, ErrInvalidPeriodBounds)
}

func TestAdd_RejectsOutOfPeriod(t *testing.T) {
	agg, err := NewUsageAggregation(periodStart, periodEnd)
	require.NoError(t, err)

	err = agg.Add(record("compute", CounterKindDelta, 1, periodStart.Add(-time.Second)))
	assert.ErrorIs(t, err, ErrMeteringOutOfPeriod)

	err = agg.Add(record("compute", CounterKindDelta, 1, periodEnd.Add(time.Second)))
	assert.ErrorIs(t, err, ErrMeteringOutOfPeriod)

	err = agg.Add(record("compute", CounterKindDelta, 1, periodStart))
	assert.NoError(t, err)
}

func TestAdd_RejectsInvalidRecord(t *testing.T) {
	agg, err := NewUsageAggregation(periodStart, periodEnd)
	require.NoError(t, err)

	err = agg.Add(record("compute", CounterKindDelta, -1, periodStart))
	assert.ErrorIs(t, err, ErrInvalidVolume)

	err = agg.Add(record("compute", CounterKind("WRONG"), 1, periodStart))
	assert.ErrorIs(t, err, ErrInvalidCounterKind)
}

func TestTotalsByCounter_DeltaSums(t *testing.T) {
	agg, _ := NewUsageAggregation(periodStart, periodEnd)
	require.NoError(t, agg.Add(record("compute.hours", CounterKindDelta, 8, periodStart.Add(time.Hour))))
	require.NoError(t, agg.Add(record("compute.hours", CounterKindDelta, 7, periodStart.Add(2*time.Hour))))

	assert.Equal(t, 15.0, agg.UsageFor("compute.hours"))
}

func TestTotalsByCounter_GaugeTakesLatest(t *testing.T) {
	agg, _ := NewUsageAggregation(periodStart, periodEnd)
	require.NoError(t, agg.Add(record("storage.size", CounterKindGauge, 100, periodStart.Add(48*time.Hour))))
	require.NoError(t, agg.Add(record("storage.size", CounterKindGauge, 80, periodStart.Add(time.Hour))))
	require.NoError(t, agg.Add(record("storage.size", CounterKindGauge, 120, periodStart.Add(24*time.Hour))))

	// 100 has the latest timestamp even though added first.
	assert.Equal(t, 100.0, agg.UsageFor("storage.size"))
}

func TestTotalsByCounter_CumulativeTakesMax(t *testing.T) {
	agg, _ := NewUsageAggregation(periodStart, periodEnd)
	require.NoError(t, agg.Add(record("network.bytes", CounterKindCumulative, 500, periodStart.Add(time.Hour))))
	require.NoError(t, agg.Add(record("network.bytes", CounterKindCumulative, 900, periodStart.Add(2*time.Hour))))
	require.NoError(t, agg.Add(record("network.bytes", CounterKindCumulative, 700, periodStart.Add(3*time.Hour))))

	assert.Equal(t, 900.0, agg.UsageFor("network.bytes"))
}

func TestUsageFor_UnknownCounterIsZero(t *testing.T) {
	agg, _ := NewUsageAggregation(periodStart, periodEnd)
	assert.Equal(t, 0.0, agg.UsageFor("never.seen"))
}

func TestRecords_ReturnsCopy(t *testing.T) {
	agg, _ := NewUsageAggregation(periodStart, periodEnd)
	require.NoError(t, agg.Add(record("compute", CounterKindDelta, 1, periodStart)))

	records := agg.Records()
	records[0].Volume = 999

	assert.Equal(t, 1.0, agg.UsageFor("compute"))
}
