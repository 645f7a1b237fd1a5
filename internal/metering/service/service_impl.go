package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/smallbiznis/tally/internal/metering/domain"
	pkgdb "github.com/smallbiznis/tally/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("metering.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

// Ingest validates and persists one usage reading. A repeated
// idempotency key is tolerated: the original record is returned.
func (s *Service) Ingest(ctx context.Context, req domain.CreateIngestRequest) (*domain.MeteringRecord, error) {
	userID, err := parseID(req.UserID, domain.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	groupID, err := parseID(req.BillingGroupID, domain.ErrInvalidBillingGroup)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.CounterName) == "" {
		return nil, domain.ErrInvalidCounterName
	}
	if !req.CounterKind.Valid() {
		return nil, domain.ErrInvalidCounterKind
	}
	if req.Volume < 0 {
		return nil, domain.ErrInvalidVolume
	}
	if req.RecordedAt.IsZero() {
		return nil, domain.ErrInvalidRecordedAt
	}

	key := req.IdempotencyKey
	if key == nil {
		generated := uuid.NewString()
		key = &generated
	}

	record := &domain.MeteringRecord{
		ID:             s.genID.Generate(),
		UserID:         userID,
		BillingGroupID: groupID,
		CounterName:    strings.TrimSpace(req.CounterName),
		CounterKind:    req.CounterKind,
		Volume:         req.Volume,
		ResourceID:     strings.TrimSpace(req.ResourceID),
		RecordedAt:     req.RecordedAt.UTC(),
		IdempotencyKey: key,
		Metadata:       req.Metadata,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, record); err != nil {
		if pkgdb.IsDuplicateKeyErr(err) {
			existing, findErr := s.findByIdempotencyKey(ctx, *key)
			if findErr != nil {
				return nil, findErr
			}
			if existing != nil {
				s.log.Debug("duplicate metering ingest",
					zap.String("idempotency_key", *key),
					zap.String("counter", record.CounterName),
				)
				return existing, nil
			}
		}
		return nil, err
	}

	return record, nil
}

// AggregateForPeriod loads the user's readings for the window and
// builds the per-counter aggregation.
func (s *Service) AggregateForPeriod(ctx context.Context, userID string, periodStart, periodEnd time.Time) (*domain.UsageAggregation, error) {
	id, err := parseID(userID, domain.ErrInvalidUser)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindByUserAndPeriod(ctx, s.db, id, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	aggregation, err := domain.NewUsageAggregation(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	for _, record := range records {
		if err := aggregation.Add(record); err != nil {
			return nil, err
		}
	}
	return aggregation, nil
}

func (s *Service) findByIdempotencyKey(ctx context.Context, key string) (*domain.MeteringRecord, error) {
	var record domain.MeteringRecord
	err := s.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
