package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/tally/internal/metering/domain"
	"github.com/smallbiznis/tally/internal/metering/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.MeteringRecord{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.NewRepository(),
	})
}

func ingestRequest(userID string, volume float64, at time.Time) domain.CreateIngestRequest {
	return domain.CreateIngestRequest{
		UserID:         userID,
		BillingGroupID: "2001",
		CounterName:    "compute.hours",
		CounterKind:    domain.CounterKindDelta,
		Volume:         volume,
		RecordedAt:     at,
	}
}

func TestIngest_PersistsRecord(t *testing.T) {
	svc := setupService(t)
	at := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)

	record, err := svc.Ingest(context.Background(), ingestRequest("1001", 8, at))
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.NotZero(t, record.ID)
	assert.Equal(t, "compute.hours", record.CounterName)
	assert.Equal(t, 8.0, record.Volume)
	require.NotNil(t, record.IdempotencyKey)
	assert.NotEmpty(t, *record.IdempotencyKey)
}

func TestIngest_ValidatesRequest(t *testing.T) {
	svc := setupService(t)
	at := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	req := ingestRequest("not-a-number", 8, at)
	_, err := svc.Ingest(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidUser)

	req = ingestRequest("1001", -1, at)
	_, err = svc.Ingest(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidVolume)

	req = ingestRequest("1001", 8, at)
	req.CounterName = "  "
	_, err = svc.Ingest(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidCounterName)

	req = ingestRequest("1001", 8, at)
	req.CounterKind = "BOGUS"
	_, err = svc.Ingest(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidCounterKind)

	req = ingestRequest("1001", 8, time.Time{})
	_, err = svc.Ingest(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidRecordedAt)
}

func TestIngest_DuplicateKeyReturnsOriginal(t *testing.T) {
	svc := setupService(t)
	at := time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)
	key := "ingest-dedupe-1"

	req := ingestRequest("1001", 8, at)
	req.IdempotencyKey = &key

	first, err := svc.Ingest(context.Background(), req)
	require.NoError(t, err)

	replay := ingestRequest("1001", 8, at)
	replay.IdempotencyKey = &key

	second, err := svc.Ingest(context.Background(), replay)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// Only one row made it to storage.
	agg, err := svc.AggregateForPeriod(context.Background(), "1001",
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 8.0, agg.UsageFor("compute.hours"))
}

func TestAggregateForPeriod_ReducesByKind(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	ingest := func(counter string, kind domain.CounterKind, volume float64, day int) {
		req := ingestRequest("1001", volume, time.Date(2026, 7, day, 0, 0, 0, 0, time.UTC))
		req.CounterName = counter
		req.CounterKind = kind
		_, err := svc.Ingest(ctx, req)
		require.NoError(t, err)
	}

	ingest("compute.hours", domain.CounterKindDelta, 8, 5)
	ingest("compute.hours", domain.CounterKindDelta, 7, 10)
	ingest("storage.size", domain.CounterKindGauge, 120, 5)
	ingest("storage.size", domain.CounterKindGauge, 100, 20)
	ingest("network.bytes", domain.CounterKindCumulative, 900, 5)
	ingest("network.bytes", domain.CounterKindCumulative, 700, 20)

	// A reading outside the window must not leak into the totals.
	ingest("compute.hours", domain.CounterKindDelta, 50, 1)

	agg, err := svc.AggregateForPeriod(ctx, "1001",
		time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 15.0, agg.UsageFor("compute.hours"))
	assert.Equal(t, 100.0, agg.UsageFor("storage.size"))
	assert.Equal(t, 900.0, agg.UsageFor("network.bytes"))
}

func TestAggregateForPeriod_InvalidUser(t *testing.T) {
	svc := setupService(t)
	_, err := svc.AggregateForPeriod(context.Background(), "",
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrInvalidUser)
}
