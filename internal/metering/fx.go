package metering

import (
	"github.com/smallbiznis/tally/internal/metering/repository"
	"github.com/smallbiznis/tally/internal/metering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("metering.service",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)
