package service

import (
	"context"

	"github.com/smallbiznis/tally/internal/adjustment/domain"
	"github.com/smallbiznis/tally/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	policy *config.BillingConfigHolder
}

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Policy *config.BillingConfigHolder
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:    p.Log.Named("adjustment.service"),
		policy: p.Policy,
	}
}

func (s *Service) Apply(ctx context.Context, amountCents int64, adjustments []domain.Adjustment) (domain.Application, error) {
	_ = ctx
	for _, adjustment := range adjustments {
		if err := adjustment.Validate(); err != nil {
			return domain.Application{}, err
		}
	}

	application := domain.Apply(amountCents, adjustments)
	s.log.Debug("adjustments applied",
		zap.Int64("original", application.OriginalAmount),
		zap.Int64("final", application.FinalAmount),
		zap.Int("rules", len(adjustments)),
	)
	return application, nil
}

func (s *Service) ValidateTotalDiscount(adjustments []domain.Adjustment) error {
	cap := s.policy.Get().MaxTotalDiscountRate
	return domain.ValidateTotalDiscountRate(adjustments, cap)
}
