// Package domain contains the billing statement aggregate. The
// statement composes base usage charges, carried-over unpaid balances,
// adjustments, and credits into one final amount, recomputed from
// scratch on every mutation.
package domain

import (
	"github.com/bwmarrin/snowflake"
	adjustmentdomain "github.com/smallbiznis/tally/internal/adjustment/domain"
	creditdomain "github.com/smallbiznis/tally/internal/credit/domain"
	meteringdomain "github.com/smallbiznis/tally/internal/metering/domain"
	paymentdomain "github.com/smallbiznis/tally/internal/payment/domain"
	unpaiddomain "github.com/smallbiznis/tally/internal/unpaid/domain"
)

// BillingStatement is the aggregate root for one (user, period)
// calculation. A single instance is not safe for concurrent mutation;
// independent instances share nothing and may calculate in parallel.
type BillingStatement struct {
	ID             snowflake.ID
	UserID         snowflake.ID
	BillingGroupID snowflake.ID
	Period         BillingPeriod

	Usage           *meteringdomain.UsageAggregation
	BaseAmountCents int64

	Unpaid           *unpaiddomain.UnpaidAmount
	AdjustmentResult *adjustmentdomain.Application
	CreditResult     *creditdomain.Application

	FinalAmountCents int64
	Status           paymentdomain.PaymentStatus

	adjustments      []adjustmentdomain.Adjustment
	credits          []creditdomain.Credit
	expiringSoonDays int
}

func NewBillingStatement(id, userID, billingGroupID snowflake.ID, period BillingPeriod, expiringSoonDays int) *BillingStatement {
	return &BillingStatement{
		ID:               id,
		UserID:           userID,
		BillingGroupID:   billingGroupID,
		Period:           period,
		Status:           paymentdomain.StatusPending,
		expiringSoonDays: expiringSoonDays,
	}
}

// SetUsage attaches the aggregated usage and recalculates.
func (s *BillingStatement) SetUsage(usage *meteringdomain.UsageAggregation) error {
	s.Usage = usage
	return s.Calculate()
}

// SetBaseAmount sets the priced usage charge and recalculates.
func (s *BillingStatement) SetBaseAmount(amountCents int64) error {
	if amountCents < 0 {
		return ErrInvalidBaseAmount
	}
	s.BaseAmountCents = amountCents
	return s.Calculate()
}

// SetUnpaid attaches the carried-over balance and recalculates.
func (s *BillingStatement) SetUnpaid(unpaid unpaiddomain.UnpaidAmount) error {
	s.Unpaid = &unpaid
	return s.Calculate()
}

// AddAdjustment validates and appends one rule, then recalculates.
func (s *BillingStatement) AddAdjustment(adjustment adjustmentdomain.Adjustment) error {
	if err := adjustment.Validate(); err != nil {
		return err
	}
	s.adjustments = append(s.adjustments, adjustment)
	return s.Calculate()
}

// AddCredit validates and appends one credit, then recalculates.
func (s *BillingStatement) AddCredit(credit creditdomain.Credit) error {
	if err := credit.Validate(); err != nil {
		return err
	}
	s.credits = append(s.credits, credit)
	return s.Calculate()
}

func (s *BillingStatement) Adjustments() []adjustmentdomain.Adjustment {
	out := make([]adjustmentdomain.Adjustment, len(s.adjustments))
	copy(out, s.adjustments)
	return out
}

func (s *BillingStatement) Credits() []creditdomain.Credit {
	out := make([]creditdomain.Credit, len(s.credits))
	copy(out, s.credits)
	return out
}

// Calculate recomputes the final amount from current fields, in fixed
// order: base, plus unpaid with charges, through the adjustment chain,
// minus allocated credits. It is pure over the statement's fields and
// idempotent; there is no partial recompute.
func (s *BillingStatement) Calculate() error {
	amount := s.BaseAmountCents

	if s.Unpaid != nil {
		amount += s.Unpaid.TotalWithCharges()
	}

	s.AdjustmentResult = nil
	if len(s.adjustments) > 0 {
		application := adjustmentdomain.Apply(amount, s.adjustments)
		s.AdjustmentResult = &application
		amount = application.FinalAmount
	}

	s.CreditResult = nil
	if len(s.credits) > 0 && amount > 0 {
		available := make([]creditdomain.Credit, 0, len(s.credits))
		for _, credit := range s.credits {
			if credit.IsAvailable(s.Period.End()) {
				available = append(available, credit)
			}
		}
		application, err := creditdomain.Allocate(amount, available, s.Period.Start(), s.Period.End(), s.expiringSoonDays)
		if err != nil {
			return err
		}
		s.CreditResult = &application
		amount = application.RemainingAmount()
	}

	s.FinalAmountCents = amount
	return nil
}

// Summary is a serialization-ready snapshot for reporting layers.
func (s *BillingStatement) Summary() map[string]any {
	var unpaidAmount, overdueCharges int64
	if s.Unpaid != nil {
		unpaidAmount = s.Unpaid.AmountCents
		overdueCharges = s.Unpaid.OverdueChargeCents()
	}

	var totalAdjustments int64
	if s.AdjustmentResult != nil {
		totalAdjustments = s.AdjustmentResult.FinalAmount - s.AdjustmentResult.OriginalAmount
	}

	var totalCredits int64
	if s.CreditResult != nil {
		totalCredits = s.CreditResult.TotalUsed()
	}

	return map[string]any{
		"period":            s.Period.String(),
		"user_id":           s.UserID.String(),
		"base_amount":       s.BaseAmountCents,
		"unpaid_amount":     unpaidAmount,
		"overdue_charges":   overdueCharges,
		"total_adjustments": totalAdjustments,
		"total_credits":     totalCredits,
		"final_amount":      s.FinalAmountCents,
		"status":            string(s.Status),
	}
}
