package credit

import (
	"github.com/smallbiznis/tally/internal/credit/repository"
	"github.com/smallbiznis/tally/internal/credit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("credit.service",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)
