package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/tally/internal/adjustment"
	adjustmentdomain "github.com/smallbiznis/tally/internal/adjustment/domain"
	"github.com/smallbiznis/tally/internal/clock"
	"github.com/smallbiznis/tally/internal/config"
	"github.com/smallbiznis/tally/internal/contract"
	contractdomain "github.com/smallbiznis/tally/internal/contract/domain"
	"github.com/smallbiznis/tally/internal/credit"
	creditdomain "github.com/smallbiznis/tally/internal/credit/domain"
	"github.com/smallbiznis/tally/internal/logger"
	"github.com/smallbiznis/tally/internal/metering"
	meteringdomain "github.com/smallbiznis/tally/internal/metering/domain"
	"github.com/smallbiznis/tally/internal/payment"
	paymentdomain "github.com/smallbiznis/tally/internal/payment/domain"
	"github.com/smallbiznis/tally/internal/seed"
	"github.com/smallbiznis/tally/internal/statement"
	statementdomain "github.com/smallbiznis/tally/internal/statement/domain"
	"github.com/smallbiznis/tally/internal/unpaid"
	"github.com/smallbiznis/tally/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		db.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),

		// Billing domains
		metering.Module,
		contract.Module,
		adjustment.Module,
		credit.Module,
		payment.Module,
		unpaid.Module,
		statement.Module,

		fx.Invoke(run),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

type runParam struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	DB         *gorm.DB
	Log        *zap.Logger
	Node       *snowflake.Node
	Config     config.Config
	Statements statementdomain.Service
}

// run migrates the schema, optionally seeds demo data, calculates one
// statement, and shuts the app down.
func run(p runParam) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrate(p.DB); err != nil {
				return err
			}

			go func() {
				defer func() { _ = p.Shutdowner.Shutdown() }()

				if !p.Config.SeedDemoData {
					p.Log.Info("demo seeding disabled, nothing to calculate")
					return
				}

				demo, err := seed.EnsureDemoData(p.DB, p.Node)
				if err != nil {
					p.Log.Error("seeding demo data failed", zap.Error(err))
					return
				}

				result, err := p.Statements.CalculateStatement(context.Background(), statementdomain.CalculateRequest{
					UserID:         demo.UserID.String(),
					BillingGroupID: demo.BillingGroupID.String(),
					Period:         demo.Period,
				})
				if err != nil {
					p.Log.Error("statement calculation failed", zap.Error(err))
					return
				}

				p.Log.Info("statement summary", zap.Any("summary", result.Summary()))
			}()

			return nil
		},
	})
}

func migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&meteringdomain.MeteringRecord{},
		&contractdomain.Contract{},
		&contractdomain.PricingTier{},
		&adjustmentdomain.Adjustment{},
		&creditdomain.Credit{},
		&paymentdomain.Payment{},
		&statementdomain.StatementRecord{},
	)
}
