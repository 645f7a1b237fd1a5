package service

import (
	"context"
	"time"

	"github.com/smallbiznis/tally/internal/config"
	paymentdomain "github.com/smallbiznis/tally/internal/payment/domain"
	"github.com/smallbiznis/tally/internal/unpaid/domain"
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
		log:    p.Log.Named("unpaid.service"),
		policy: p.Policy,
	}
}

// Calculate sums the unpaid balances and derives the overdue
// surcharge. Overdue days count from the oldest unpaid payment, minus
// the grace period; the surcharge rate only kicks in once the raw
// (pre-grace) overdue days exceed the grace period.
func (s *Service) Calculate(ctx context.Context, payments []paymentdomain.Payment, periodStart time.Time) (*domain.UnpaidAmount, error) {
	_ = ctx
	if len(payments) == 0 {
		return nil, nil
	}

	policy := s.policy.Get()

	var total int64
	oldest := payments[0].CreatedAt
	for _, payment := range payments {
		total += payment.AmountCents
		if payment.CreatedAt.Before(oldest) {
			oldest = payment.CreatedAt
		}
	}

	rawDays := int(periodStart.Sub(oldest).Hours() / 24)
	overdueDays := rawDays - policy.GraceDays
	if overdueDays < 0 {
		overdueDays = 0
	}

	rate := 0.0
	if rawDays > policy.GraceDays {
		rate = policy.OverdueRate
	}

	unpaid, err := domain.NewUnpaidAmount(total, overdueDays, rate)
	if err != nil {
		return nil, err
	}

	s.log.Debug("unpaid balance computed",
		zap.Int64("amount_cents", unpaid.AmountCents),
		zap.Int("overdue_days", unpaid.OverdueDays),
		zap.Float64("overdue_rate", unpaid.OverdueRate),
	)
	return &unpaid, nil
}
