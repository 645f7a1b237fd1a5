package service

import (
	"context"
	"math"
	"sort"

	"github.com/smallbiznis/tally/internal/config"
	"github.com/smallbiznis/tally/internal/contract/domain"
	meteringdomain "github.com/smallbiznis/tally/internal/metering/domain"
	"github.com/smallbiznis/tally/pkg/money"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log    *zap.Logger
	policy *config.BillingConfigHolder
}

type ServiceParam struct {
	fx.In

	Log    *zap.Logger
	Policy *config.BillingConfigHolder
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		log:    p.Log.Named("contract.pricing"),
		policy: p.Policy,
	}
}

// PriceUsage walks every counter present in the aggregation. Counters
// with contract tiers are priced by band; the rest fall back to the
// configured default rate for their name prefix. The contract's flat
// discount applies to the tier-summed subtotal and the result is
// floored at the contract minimum charge.
func (s *Service) PriceUsage(ctx context.Context, usage *meteringdomain.UsageAggregation, contract *domain.Contract) (int64, error) {
	_ = ctx
	if usage == nil {
		return 0, domain.ErrMissingUsage
	}

	totals := usage.TotalsByCounter()
	counters := make([]string, 0, len(totals))
	for name := range totals {
		counters = append(counters, name)
	}
	sort.Strings(counters)

	policy := s.policy.Get()

	var subtotal float64
	for _, counter := range counters {
		volume := totals[counter]

		var tiers []domain.PricingTier
		if contract != nil {
			tiers = contract.TiersFor(counter)
		}
		if len(tiers) > 0 {
			subtotal += tieredCost(tiers, volume)
			continue
		}

		rate, matched := policy.DefaultRateFor(counter)
		if !matched {
			s.log.Warn("rate miss, using fallback rate",
				zap.String("counter", counter),
				zap.Float64("rate", rate),
			)
		} else {
			s.log.Debug("no contract tiers, using default rate",
				zap.String("counter", counter),
				zap.Float64("rate", rate),
			)
		}
		subtotal += volume * rate
	}

	if contract == nil {
		return money.Round(subtotal), nil
	}

	if contract.DiscountRate > 0 {
		subtotal -= subtotal * contract.DiscountRate / 100
	}

	amount := money.Round(subtotal)
	if amount < contract.MinimumChargeCents {
		amount = contract.MinimumChargeCents
	}
	return amount, nil
}

// tieredCost consumes the volume across ascending bands. A band whose
// MinVolume the total volume never reached is skipped; a bounded band
// holds MaxVolume−MinVolume+1 units; an unbounded band takes all
// remaining volume.
func tieredCost(tiers []domain.PricingTier, volume float64) float64 {
	remaining := volume
	var cost float64

	for _, tier := range tiers {
		if remaining <= 0 {
			break
		}
		if volume < tier.MinVolume {
			continue
		}

		quantity := remaining
		if tier.MaxVolume != nil {
			capacity := *tier.MaxVolume - tier.MinVolume + 1
			quantity = math.Min(remaining, capacity)
		}

		cost += quantity * float64(tier.UnitPriceCents)
		remaining -= quantity
	}

	return cost
}
