package config

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// BillingConfig carries the billing policy knobs the calculation
// engine reads at runtime. Values are hot-reloadable; calculations in
// flight keep the snapshot they started with.
type BillingConfig struct {
	// DefaultRates maps counter-name prefixes to a fallback unit rate
	// (cents per unit) used when a contract has no tiers for a counter.
	DefaultRates map[string]float64 `mapstructure:"defaultRates"`

	// FallbackRate applies when no prefix matches.
	FallbackRate float64 `mapstructure:"fallbackRate"`

	// GraceDays is the overdue grace period for unpaid balances.
	GraceDays int `mapstructure:"graceDays"`

	// OverdueRate is the surcharge rate applied once the grace period
	// is exceeded, as a fraction (0.05 = 5%).
	OverdueRate float64 `mapstructure:"overdueRate"`

	// ExpiringSoonDays is the window in which a credit is consumed
	// ahead of its type priority.
	ExpiringSoonDays int `mapstructure:"expiringSoonDays"`

	// MaxTotalDiscountRate caps the summed rate discounts applied to a
	// single amount, in percent.
	MaxTotalDiscountRate float64 `mapstructure:"maxTotalDiscountRate"`
}

func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		DefaultRates: map[string]float64{
			"compute": 1.0,
			"storage": 0.1,
			"network": 0.01,
		},
		FallbackRate:         1.0,
		GraceDays:            30,
		OverdueRate:          0.05,
		ExpiringSoonDays:     7,
		MaxTotalDiscountRate: 90,
	}
}

// DefaultRateFor resolves the fallback unit rate for a counter name by
// longest matching prefix.
func (c BillingConfig) DefaultRateFor(counterName string) (float64, bool) {
	prefixes := make([]string, 0, len(c.DefaultRates))
	for prefix := range c.DefaultRates {
		prefixes = append(prefixes, prefix)
	}
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })

	for _, prefix := range prefixes {
		if strings.HasPrefix(counterName, prefix) {
			return c.DefaultRates[prefix], true
		}
	}
	return c.FallbackRate, false
}

type BillingConfigHolder struct {
	current atomic.Value // holds BillingConfig
}

func NewBillingConfigHolder() (*BillingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("billing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/tally")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := DefaultBillingConfig()
	if err := v.UnmarshalKey("billing", &cfg); err != nil {
		return nil, err
	}
	if err := validateBillingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated := DefaultBillingConfig()
		if err := v.UnmarshalKey("billing", &updated); err != nil {
			log.Printf("[billing-config] reload failed: %v", err)
			return
		}
		if err := validateBillingConfig(updated); err != nil {
			log.Printf("[billing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

// NewStaticBillingConfigHolder wraps a fixed config, for tests.
func NewStaticBillingConfigHolder(cfg BillingConfig) *BillingConfigHolder {
	holder := &BillingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *BillingConfigHolder) Get() BillingConfig {
	return h.current.Load().(BillingConfig)
}

func validateBillingConfig(cfg BillingConfig) error {
	if cfg.GraceDays < 0 {
		return errors.New("billing config: graceDays must not be negative")
	}
	if cfg.OverdueRate < 0 || cfg.OverdueRate > 1 {
		return errors.New("billing config: overdueRate must be between 0 and 1")
	}
	if cfg.ExpiringSoonDays < 0 {
		return errors.New("billing config: expiringSoonDays must not be negative")
	}
	if cfg.MaxTotalDiscountRate < 0 || cfg.MaxTotalDiscountRate > 100 {
		return errors.New("billing config: maxTotalDiscountRate must be between 0 and 100")
	}
	if cfg.FallbackRate < 0 {
		return errors.New("billing config: fallbackRate must not be negative")
	}
	for prefix, rate := range cfg.DefaultRates {
		if rate < 0 {
			return errors.New("billing config: defaultRates." + prefix + " must not be negative")
		}
	}
	return nil
}
