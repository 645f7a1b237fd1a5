package contract

import (
	"github.com/smallbiznis/tally/internal/contract/repository"
	"github.com/smallbiznis/tally/internal/contract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contract.service",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)
