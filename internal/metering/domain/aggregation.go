package domain

import "time"

// UsageAggregation reduces metering records for one (user, period)
// into per-counter totals. Records outside the period bounds are
// rejected at Add time, so totals never see foreign readings.
type UsageAggregation struct {
	periodStart time.Time
	periodEnd   time.Time
	records     []MeteringRecord
}

func NewUsageAggregation(periodStart, periodEnd time.Time) (*UsageAggregation, error) {
	if !periodEnd.After(periodStart) {
		return nil, ErrInvalidPeriodBounds
	}
	return &UsageAggregation{
		periodStart: periodStart,
		periodEnd:   periodEnd,
	}, nil
}

func (a *UsageAggregation) PeriodStart() time.Time { return a.periodStart }
func (a *UsageAggregation) PeriodEnd() time.Time   { return a.periodEnd }

// Add validates and appends one record.
func (a *UsageAggregation) Add(record MeteringRecord) error {
	if record.Volume < 0 {
		return ErrInvalidVolume
	}
	if !record.CounterKind.Valid() {
		return ErrInvalidCounterKind
	}
	if record.RecordedAt.Before(a.periodStart) || record.RecordedAt.After(a.periodEnd) {
		return ErrMeteringOutOfPeriod
	}
	a.records = append(a.records, record)
	return nil
}

// Records returns a copy of the aggregated records in insertion order.
func (a *UsageAggregation) Records() []MeteringRecord {
	out := make([]MeteringRecord, len(a.records))
	copy(out, a.records)
	return out
}

// TotalsByCounter reduces the records to one total per counter name.
// DELTA counters sum, GAUGE counters take the latest reading,
// CUMULATIVE counters take the maximum reading.
func (a *UsageAggregation) TotalsByCounter() map[string]float64 {
	totals := make(map[string]float64)
	latest := make(map[string]time.Time)

	for _, record := range a.records {
		switch record.CounterKind {
		case CounterKindDelta:
			totals[record.CounterName] += record.Volume
		case CounterKindGauge:
			at, seen := latest[record.CounterName]
			if !seen || !record.RecordedAt.Before(at) {
				totals[record.CounterName] = record.Volume
				latest[record.CounterName] = record.RecordedAt
			}
		case CounterKindCumulative:
			if current, seen := totals[record.CounterName]; !seen || record.Volume > current {
				totals[record.CounterName] = record.Volume
			}
		}
	}

	return totals
}

// UsageFor returns the reduced total for one counter, 0 when the
// counter has no readings.
func (a *UsageAggregation) UsageFor(counterName string) float64 {
	return a.TotalsByCounter()[counterName]
}
