// Package domain contains contract pricing models. A contract owns
// ordered, non-overlapping tier lists per counter plus a flat discount
// and a minimum charge.
package domain

import (
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// PricingTier is one volume band of a contract. MaxVolume nil means
// the band is unbounded above.
type PricingTier struct {
	ID             snowflake.ID `gorm:"primaryKey"`
	ContractID     snowflake.ID `gorm:"not null;index"`
	CounterName    string       `gorm:"type:text;not null"`
	MinVolume      float64      `gorm:"type:numeric;not null"`
	MaxVolume      *float64     `gorm:"type:numeric"`
	UnitPriceCents int64        `gorm:"not null"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (PricingTier) TableName() string { return "pricing_tiers" }

func (t PricingTier) validate() error {
	if t.MinVolume < 0 {
		return ErrInvalidTierBounds
	}
	if t.MaxVolume != nil && *t.MaxVolume <= t.MinVolume {
		return ErrInvalidTierBounds
	}
	if t.UnitPriceCents < 0 {
		return ErrInvalidUnitPrice
	}
	return nil
}

// overlaps treats bands as half-open on the upper bound, so adjacent
// tiers sharing a boundary volume do not conflict.
func (t PricingTier) overlaps(other PricingTier) bool {
	tUnbounded := t.MaxVolume == nil
	oUnbounded := other.MaxVolume == nil

	if tUnbounded && oUnbounded {
		return true
	}
	if tUnbounded {
		return t.MinVolume < *other.MaxVolume
	}
	if oUnbounded {
		return other.MinVolume < *t.MaxVolume
	}
	return t.MinVolume < *other.MaxVolume && other.MinVolume < *t.MaxVolume
}

// Contract is the pricing agreement for a billing group.
type Contract struct {
	ID                 snowflake.ID      `gorm:"primaryKey"`
	BillingGroupID     snowflake.ID      `gorm:"not null;index"`
	Name               string            `gorm:"type:text;not null"`
	DiscountRate       float64           `gorm:"type:numeric;not null;default:0"`
	MinimumChargeCents int64             `gorm:"not null;default:0"`
	ValidFrom          time.Time         `gorm:"not null"`
	ValidTo            *time.Time        `gorm:""`
	Tiers              []PricingTier     `gorm:"foreignKey:ContractID"`
	Metadata           datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt          time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Contract) TableName() string { return "contracts" }

// Validate checks construction invariants.
func (c Contract) Validate() error {
	if c.DiscountRate < 0 || c.DiscountRate > 100 {
		return ErrInvalidDiscountRate
	}
	if c.MinimumChargeCents < 0 {
		return ErrInvalidMinimumCharge
	}
	if c.ValidTo != nil && !c.ValidTo.After(c.ValidFrom) {
		return ErrInvalidValidityWindow
	}
	return nil
}

// AddTier validates the tier against every existing tier for the same
// counter and inserts it keeping that counter's list sorted by
// MinVolume.
func (c *Contract) AddTier(tier PricingTier) error {
	if err := tier.validate(); err != nil {
		return err
	}
	for _, existing := range c.Tiers {
		if existing.CounterName != tier.CounterName {
			continue
		}
		if existing.overlaps(tier) {
			return ErrTierOverlap
		}
	}
	tier.ContractID = c.ID
	c.Tiers = append(c.Tiers, tier)
	sort.SliceStable(c.Tiers, func(i, j int) bool {
		if c.Tiers[i].CounterName != c.Tiers[j].CounterName {
			return c.Tiers[i].CounterName < c.Tiers[j].CounterName
		}
		return c.Tiers[i].MinVolume < c.Tiers[j].MinVolume
	})
	return nil
}

// TiersFor returns the contract's tiers for one counter, sorted by
// MinVolume ascending.
func (c Contract) TiersFor(counterName string) []PricingTier {
	var tiers []PricingTier
	for _, tier := range c.Tiers {
		if tier.CounterName == counterName {
			tiers = append(tiers, tier)
		}
	}
	sort.SliceStable(tiers, func(i, j int) bool { return tiers[i].MinVolume < tiers[j].MinVolume })
	return tiers
}

// ActiveAt reports whether the contract validity window covers t.
func (c Contract) ActiveAt(t time.Time) bool {
	if t.Before(c.ValidFrom) {
		return false
	}
	return c.ValidTo == nil || t.Before(*c.ValidTo)
}
