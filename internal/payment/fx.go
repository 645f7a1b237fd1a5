package payment

import (
	"github.com/smallbiznis/tally/internal/payment/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.repository",
	fx.Provide(
		repository.NewRepository,
	),
)
