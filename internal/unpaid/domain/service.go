package domain

import (
	"context"
	"time"

	paymentdomain "github.com/smallbiznis/tally/internal/payment/domain"
)

type Service interface {
	// Calculate reduces the user's unpaid payments from before
	// periodStart into one carried-over balance. Nil means there is
	// nothing unpaid, which is distinct from a zero balance.
	Calculate(ctx context.Context, payments []paymentdomain.Payment, periodStart time.Time) (*UnpaidAmount, error)
}
