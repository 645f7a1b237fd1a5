package domain

import (
	"sort"

	"github.com/smallbiznis/tally/pkg/money"
)

// AppliedStep records one rule's effect on the running amount.
type AppliedStep struct {
	Adjustment  Adjustment
	AmountAfter int64
}

// Application is the result of applying an ordered adjustment list to
// one amount. FinalAmount is derived once, in order; it is never
// recomputed out of order.
type Application struct {
	OriginalAmount int64
	Steps          []AppliedStep
	FinalAmount    int64
}

// Apply composes the rules sequentially in ascending priority order;
// rules with equal priority keep their slice order. Each rule operates
// on the amount the previous rule produced.
func Apply(originalAmount int64, adjustments []Adjustment) Application {
	ordered := make([]Adjustment, len(adjustments))
	copy(ordered, adjustments)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Priority < ordered[j].Priority })

	amount := originalAmount
	steps := make([]AppliedStep, 0, len(ordered))
	for _, adjustment := range ordered {
		amount = applyOne(amount, adjustment)
		steps = append(steps, AppliedStep{Adjustment: adjustment, AmountAfter: amount})
	}

	return Application{
		OriginalAmount: originalAmount,
		Steps:          steps,
		FinalAmount:    amount,
	}
}

func applyOne(amount int64, adjustment Adjustment) int64 {
	switch adjustment.Type {
	case TypeFixedDiscount:
		next := amount - money.Round(adjustment.Amount)
		if next < 0 {
			return 0
		}
		return next
	case TypeRateDiscount:
		next := amount - money.ApplyRate(amount, adjustment.Amount)
		if next < 0 {
			return 0
		}
		return next
	case TypeFixedSurcharge:
		return amount + money.Round(adjustment.Amount)
	case TypeRateSurcharge:
		return amount + money.ApplyRate(amount, adjustment.Amount)
	}
	return amount
}

// TotalDiscount is how far below the original amount the chain ended,
// 0 when the chain ended at or above it.
func (a Application) TotalDiscount() int64 {
	if a.FinalAmount < a.OriginalAmount {
		return a.OriginalAmount - a.FinalAmount
	}
	return 0
}

// TotalSurcharge is how far above the original amount the chain ended.
func (a Application) TotalSurcharge() int64 {
	if a.FinalAmount > a.OriginalAmount {
		return a.FinalAmount - a.OriginalAmount
	}
	return 0
}

// DiscountRate is the effective discount percentage relative to the
// original amount, 0 when the original amount is 0.
func (a Application) DiscountRate() float64 {
	if a.OriginalAmount == 0 {
		return 0
	}
	return float64(a.TotalDiscount()) / float64(a.OriginalAmount) * 100
}

// SurchargeRate is the effective surcharge percentage relative to the
// original amount, 0 when the original amount is 0.
func (a Application) SurchargeRate() float64 {
	if a.OriginalAmount == 0 {
		return 0
	}
	return float64(a.TotalSurcharge()) / float64(a.OriginalAmount) * 100
}

// ValidateTotalDiscountRate rejects an adjustment list whose summed
// rate discounts exceed capPercent. Callers run this before Apply;
// Apply itself never enforces business policy.
func ValidateTotalDiscountRate(adjustments []Adjustment, capPercent float64) error {
	var total float64
	for _, adjustment := range adjustments {
		if adjustment.Type == TypeRateDiscount {
			total += adjustment.Amount
		}
	}
	if total > capPercent {
		return ErrDiscountCapExceeded
	}
	return nil
}
