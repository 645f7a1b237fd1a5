package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	adjustmentdomain "github.com/smallbiznis/tally/internal/adjustment/domain"
	"github.com/smallbiznis/tally/internal/clock"
	"github.com/smallbiznis/tally/internal/config"
	contractdomain "github.com/smallbiznis/tally/internal/contract/domain"
	creditdomain "github.com/smallbiznis/tally/internal/credit/domain"
	meteringdomain "github.com/smallbiznis/tally/internal/metering/domain"
	paymentdomain "github.com/smallbiznis/tally/internal/payment/domain"
	"github.com/smallbiznis/tally/internal/statement/domain"
	unpaiddomain "github.com/smallbiznis/tally/internal/unpaid/domain"
	"github.com/smallbiznis/tally/pkg/db/option"
	"github.com/smallbiznis/tally/pkg/repository"
	"github.com/smallbiznis/tally/pkg/retry"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	policy   *config.BillingConfigHolder
	retryCfg retry.Config

	recordRepo repository.Repository[domain.StatementRecord]

	meteringRepo   meteringdomain.Repository
	contractRepo   contractdomain.Repository
	adjustmentRepo adjustmentdomain.Repository
	creditRepo     creditdomain.Repository
	paymentRepo    paymentdomain.Repository

	pricing       contractdomain.Service
	adjustmentSvc adjustmentdomain.Service
	unpaidCalc    unpaiddomain.Service
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Policy *config.BillingConfigHolder

	MeteringRepo   meteringdomain.Repository
	ContractRepo   contractdomain.Repository
	AdjustmentRepo adjustmentdomain.Repository
	CreditRepo     creditdomain.Repository
	PaymentRepo    paymentdomain.Repository

	Pricing       contractdomain.Service
	AdjustmentSvc adjustmentdomain.Service
	UnpaidCalc    unpaiddomain.Service
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:             p.DB,
		log:            p.Log.Named("statement.service"),
		genID:          p.GenID,
		clock:          p.Clock,
		policy:         p.Policy,
		retryCfg:       retry.DefaultConfig(),
		recordRepo:     repository.ProvideStore[domain.StatementRecord](p.DB),
		meteringRepo:   p.MeteringRepo,
		contractRepo:   p.ContractRepo,
		adjustmentRepo: p.AdjustmentRepo,
		creditRepo:     p.CreditRepo,
		paymentRepo:    p.PaymentRepo,
		pricing:        p.Pricing,
		adjustmentSvc:  p.AdjustmentSvc,
		unpaidCalc:     p.UnpaidCalc,
	}
}

// CalculateStatement gathers all inputs up front, then runs the pure
// calculation: base charge from priced usage, carried unpaid balance,
// the ordered adjustment chain, and finally credit allocation.
func (s *Service) CalculateStatement(ctx context.Context, req domain.CalculateRequest) (*domain.BillingStatement, error) {
	userID, err := parseID(req.UserID, domain.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	groupID, err := parseID(req.BillingGroupID, domain.ErrInvalidBillingGroup)
	if err != nil {
		return nil, err
	}

	period, err := domain.ParseBillingPeriod(req.Period)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateCalculable(period, s.clock.Now()); err != nil {
		return nil, err
	}

	inputs, err := s.gatherInputs(ctx, userID, groupID, req.ProjectID, period)
	if err != nil {
		return nil, err
	}

	usage, err := meteringdomain.NewUsageAggregation(period.Start(), period.End())
	if err != nil {
		return nil, err
	}
	for _, record := range inputs.records {
		if err := usage.Add(record); err != nil {
			return nil, err
		}
	}

	baseAmount, err := s.pricing.PriceUsage(ctx, usage, inputs.contract)
	if err != nil {
		return nil, err
	}

	statement := domain.NewBillingStatement(
		s.genID.Generate(),
		userID,
		groupID,
		period,
		s.policy.Get().ExpiringSoonDays,
	)
	if err := statement.SetUsage(usage); err != nil {
		return nil, err
	}
	if err := statement.SetBaseAmount(baseAmount); err != nil {
		return nil, err
	}

	unpaid, err := s.unpaidCalc.Calculate(ctx, inputs.unpaidPayments, period.Start())
	if err != nil {
		return nil, err
	}
	if unpaid != nil {
		if err := statement.SetUnpaid(*unpaid); err != nil {
			return nil, err
		}
	}

	if err := s.adjustmentSvc.ValidateTotalDiscount(inputs.adjustments); err != nil {
		return nil, err
	}
	for _, adjustment := range inputs.adjustments {
		if err := statement.AddAdjustment(adjustment); err != nil {
			return nil, err
		}
	}

	for _, credit := range inputs.credits {
		if err := statement.AddCredit(credit); err != nil {
			return nil, err
		}
	}

	if err := s.persistSnapshot(ctx, statement); err != nil {
		return nil, err
	}

	s.log.Info("statement calculated",
		zap.String("statement_id", statement.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("period", period.String()),
		zap.Int64("base_amount", statement.BaseAmountCents),
		zap.Int64("final_amount", statement.FinalAmountCents),
	)
	return statement, nil
}

// persistSnapshot replaces any earlier snapshot for the same
// (user, period) so recalculation never appends duplicates.
func (s *Service) persistSnapshot(ctx context.Context, statement *domain.BillingStatement) error {
	record := domain.NewStatementRecord(s.genID.Generate(), statement, s.clock.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("checksum = ?", record.Checksum).Delete(&domain.StatementRecord{}).Error; err != nil {
			return err
		}
		return s.recordRepo.WithTrx(tx).Create(ctx, &record)
	})
}

func (s *Service) History(ctx context.Context, userID string, limit int) ([]domain.StatementRecord, error) {
	id, err := parseID(userID, domain.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 12
	}

	rows, err := s.recordRepo.Find(ctx, &domain.StatementRecord{},
		option.WithCondition("user_id = ?", id),
		option.WithOrder("period DESC"),
		option.WithLimit(limit),
	)
	if err != nil {
		return nil, err
	}

	records := make([]domain.StatementRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, *row)
	}
	return records, nil
}

type calculationInputs struct {
	records        []meteringdomain.MeteringRecord
	contract       *contractdomain.Contract
	adjustments    []adjustmentdomain.Adjustment
	credits        []creditdomain.Credit
	unpaidPayments []paymentdomain.Payment
}

// gatherInputs performs every repository read before calculation
// starts. Reads are retried a bounded number of times; the engine
// itself never retries.
func (s *Service) gatherInputs(ctx context.Context, userID, groupID snowflake.ID, projectID string, period domain.BillingPeriod) (*calculationInputs, error) {
	inputs := &calculationInputs{}

	err := retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		records, err := s.meteringRepo.FindByUserAndPeriod(ctx, s.db, userID, period.Start(), period.End())
		if err != nil {
			return err
		}
		inputs.records = records
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		contract, err := s.contractRepo.FindActiveContract(ctx, s.db, groupID, period.Start())
		if err != nil {
			return err
		}
		inputs.contract = contract
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		adjustments, err := s.adjustmentRepo.FindByBillingGroup(ctx, s.db, groupID, period.Start())
		if err != nil {
			return err
		}
		inputs.adjustments = adjustments
		return nil
	})
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(projectID) != "" {
		projID, err := parseID(projectID, domain.ErrInvalidProject)
		if err != nil {
			return nil, err
		}
		err = retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
			adjustments, err := s.adjustmentRepo.FindByProject(ctx, s.db, projID, period.Start())
			if err != nil {
				return err
			}
			inputs.adjustments = append(inputs.adjustments, adjustments...)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	err = retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		credits, err := s.creditRepo.FindByUser(ctx, s.db, userID)
		if err != nil {
			return err
		}
		inputs.credits = credits
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = retry.Do(ctx, s.retryCfg, func(ctx context.Context) error {
		payments, err := s.paymentRepo.FindUnpaidByUser(ctx, s.db, userID, period.Start())
		if err != nil {
			return err
		}
		inputs.unpaidPayments = payments
		return nil
	})
	if err != nil {
		return nil, err
	}

	return inputs, nil
}

func parseID(value string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, invalid
	}
	return id, nil
}
