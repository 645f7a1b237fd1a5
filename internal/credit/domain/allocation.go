package domain

import (
	"sort"
	"time"
)

// CreditUsage records one credit's contribution to an allocation.
type CreditUsage struct {
	Credit     Credit
	AmountUsed int64
}

// Application is the result of consuming credits against one amount.
type Application struct {
	OriginalAmount int64
	Usages         []CreditUsage
}

// AddCreditUsage appends a usage after checking the structural
// invariants: a credit never contributes more than its balance, and
// the summed usage never exceeds the original amount.
func (a *Application) AddCreditUsage(credit Credit, amountUsed int64) error {
	if amountUsed <= 0 {
		return ErrInvalidUseAmount
	}
	if amountUsed > credit.BalanceCents {
		return ErrCreditOverconsumed
	}
	if a.TotalUsed()+amountUsed > a.OriginalAmount {
		return ErrOverApplied
	}
	used, err := credit.Use(amountUsed)
	if err != nil {
		return err
	}
	a.Usages = append(a.Usages, CreditUsage{Credit: used, AmountUsed: amountUsed})
	return nil
}

func (a Application) TotalUsed() int64 {
	var total int64
	for _, usage := range a.Usages {
		total += usage.AmountUsed
	}
	return total
}

func (a Application) RemainingAmount() int64 {
	remaining := a.OriginalAmount - a.TotalUsed()
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (a Application) IsFullyCovered() bool {
	return a.RemainingAmount() == 0
}

// Allocate greedily consumes eligible credits against amountCents.
//
// Eligibility is evaluated against the billing period being
// calculated, not wall-clock now, so historical periods compute
// correctly: the credit must hold balance, have been created on or
// before the period end, and not have expired before the period start.
//
// Consumption order is (priority, id) ascending; the id tie-break
// keeps the order reproducible regardless of input order.
func Allocate(amountCents int64, credits []Credit, periodStart, periodEnd time.Time, expiringSoonDays int) (Application, error) {
	application := Application{OriginalAmount: amountCents}

	eligible := make([]Credit, 0, len(credits))
	for _, credit := range credits {
		if credit.BalanceCents <= 0 {
			continue
		}
		if credit.CreatedAt.After(periodEnd) {
			continue
		}
		if credit.ExpiresAt != nil && credit.ExpiresAt.Before(periodStart) {
			continue
		}
		eligible = append(eligible, credit)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		pi := eligible[i].ConsumptionPriority(periodEnd, expiringSoonDays)
		pj := eligible[j].ConsumptionPriority(periodEnd, expiringSoonDays)
		if pi != pj {
			return pi < pj
		}
		return eligible[i].ID < eligible[j].ID
	})

	remaining := amountCents
	for _, credit := range eligible {
		if remaining <= 0 {
			break
		}
		use := credit.BalanceCents
		if use > remaining {
			use = remaining
		}
		if err := application.AddCreditUsage(credit, use); err != nil {
			return Application{}, err
		}
		remaining -= use
	}

	return application, nil
}
