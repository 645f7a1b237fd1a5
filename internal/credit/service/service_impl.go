package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tally/internal/config"
	"github.com/smallbiznis/tally/internal/credit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	policy *config.BillingConfigHolder
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Policy *config.BillingConfigHolder
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("credit.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		policy: p.Policy,
	}
}

// Grant creates a credit from a validated request. Request fields are
// explicit; nothing outside the DTO influences the grant.
func (s *Service) Grant(ctx context.Context, req domain.GrantRequest) (*domain.Credit, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := snowflake.ParseString(req.UserID)
	if err != nil || userID == 0 {
		return nil, domain.ErrInvalidUser
	}

	now := time.Now().UTC()
	if req.ExpiresAt != nil && !req.ExpiresAt.After(now) {
		return nil, domain.ErrInvalidCreditExpiry
	}

	credit := &domain.Credit{
		ID:           s.genID.Generate(),
		UserID:       userID,
		Type:         req.Type,
		AmountCents:  req.AmountCents,
		BalanceCents: req.AmountCents,
		CreatedAt:    now,
		ExpiresAt:    req.ExpiresAt,
		Metadata:     req.Metadata,
	}

	if err := s.repo.Insert(ctx, s.db, credit); err != nil {
		return nil, err
	}

	s.log.Info("credit granted",
		zap.String("credit_id", credit.ID.String()),
		zap.String("type", string(credit.Type)),
		zap.Int64("amount_cents", credit.AmountCents),
	)
	return credit, nil
}

func (s *Service) Allocate(ctx context.Context, amountCents int64, credits []domain.Credit, periodStart, periodEnd time.Time) (domain.Application, error) {
	_ = ctx
	window := s.policy.Get().ExpiringSoonDays
	application, err := domain.Allocate(amountCents, credits, periodStart, periodEnd, window)
	if err != nil {
		return domain.Application{}, err
	}

	s.log.Debug("credits allocated",
		zap.Int64("original", application.OriginalAmount),
		zap.Int64("used", application.TotalUsed()),
		zap.Int64("remaining", application.RemainingAmount()),
	)
	return application, nil
}
