package unpaid

import (
	"github.com/smallbiznis/tally/internal/unpaid/service"
	"go.uber.org/fx"
)

var Module = fx.Module("unpaid.service",
	fx.Provide(
		service.NewService,
	),
)
