package adjustment

import (
	"github.com/smallbiznis/tally/internal/adjustment/repository"
	"github.com/smallbiznis/tally/internal/adjustment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("adjustment.service",
	fx.Provide(
		repository.NewRepository,
		service.NewService,
	),
)
