package service

import (
	"context"
	"testing"
	"time"

	"github.com/smallbiznis/tally/internal/config"
	"github.com/smallbiznis/tally/internal/contract/domain"
	meteringdomain "github.com/smallbiznis/tally/internal/metering/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPricing(t *testing.T) domain.Service {
	t.Helper()
	return NewService(ServiceParam{
		Log:    zap.NewNop(),
		Policy: config.NewStaticBillingConfigHolder(config.DefaultBillingConfig()),
	})
}

func usageWith(t *testing.T, counters map[string]float64) *meteringdomain.UsageAggregation {
	t.Helper()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

	agg, err := meteringdomain.NewUsageAggregation(start, end)
	require.NoError(t, err)
	for name, volume := range counters {
		require.NoError(t, agg.Add(meteringdomain.MeteringRecord{
			CounterName: name,
			CounterKind: meteringdomain.CounterKindDelta,
			Volume:      volume,
			RecordedAt:  start.Add(time.Hour),
		}))
	}
	return agg
}

func ptrFloat(v float64) *float64 { return &v }

func computeTiers() *domain.Contract {
	c := &domain.Contract{ValidFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.Tiers = []domain.PricingTier{
		{CounterName: "compute.hours", MinVolume: 0, MaxVolume: ptrFloat(10), UnitPriceCents: 10},
		{CounterName: "compute.hours", MinVolume: 10, MaxVolume: ptrFloat(20), UnitPriceCents: 8},
		{CounterName: "compute.hours", MinVolume: 20, MaxVolume: nil, UnitPriceCents: 6},
	}
	return c
}

func TestPriceUsage_TieredBands(t *testing.T) {
	svc := newPricing(t)

	// 15 units: 11 in the first band, 4 in the second.
	amount, err := svc.PriceUsage(context.Background(),
		usageWith(t, map[string]float64{"compute.hours": 15}), computeTiers())
	require.NoError(t, err)
	assert.Equal(t, int64(11*10+4*8), amount)
}

func TestPriceUsage_UnboundedBandTakesRemainder(t *testing.T) {
	svc := newPricing(t)

	// 30 units: 11 + 11 + 8.
	amount, err := svc.PriceUsage(context.Background(),
		usageWith(t, map[string]float64{"compute.hours": 30}), computeTiers())
	require.NoError(t, err)
	assert.Equal(t, int64(11*10+11*8+8*6), amount)
}

func TestPriceUsage_VolumeInsideFirstBand(t *testing.T) {
	svc := newPricing(t)

	amount, err := svc.PriceUsage(context.Background(),
		usageWith(t, map[string]float64{"compute.hours": 5}), computeTiers())
	require.NoError(t, err)
	assert.Equal(t, int64(50), amount)
}

func TestPriceUsage_DefaultRateFallback(t *testing.T) {
	svc := newPricing(t)

	// storage prefix rate 0.1, unknown counter uses the fallback rate 1.0.
	amount, err := svc.PriceUsage(context.Background(),
		usageWith(t, map[string]float64{"storage.size": 120, "gpu.hours": 3}), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12+3), amount)
}

func TestPriceUsage_DiscountThenMinimumCharge(t *testing.T) {
	svc := newPricing(t)

	contract := computeTiers()
	contract.DiscountRate = 50

	// 15 units -> 142, half off -> 71.
	amount, err := svc.PriceUsage(context.Background(),
		usageWith(t, map[string]float64{"compute.hours": 15}), contract)
	require.NoError(t, err)
	assert.Equal(t, int64(71), amount)

	// The minimum charge floors the discounted amount.
	contract.MinimumChargeCents = 100
	amount, err = svc.PriceUsage(context.Background(),
		usageWith(t, map[string]float64{"compute.hours": 15}), contract)
	require.NoError(t, err)
	assert.Equal(t, int64(100), amount)
}

func TestPriceUsage_NilUsage(t *testing.T) {
	svc := newPricing(t)
	_, err := svc.PriceUsage(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrMissingUsage)
}

func TestPriceUsage_EmptyUsageIsZero(t *testing.T) {
	svc := newPricing(t)
	amount, err := svc.PriceUsage(context.Background(),
		usageWith(t, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)
}
