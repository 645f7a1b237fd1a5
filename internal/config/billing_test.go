package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRateFor_LongestPrefixWins(t *testing.T) {
	cfg := DefaultBillingConfig()
	cfg.DefaultRates["compute.gpu"] = 5.0

	rate, matched := cfg.DefaultRateFor("compute.hours")
	assert.True(t, matched)
	assert.Equal(t, 1.0, rate)

	rate, matched = cfg.DefaultRateFor("compute.gpu.hours")
	assert.True(t, matched)
	assert.Equal(t, 5.0, rate)

	rate, matched = cfg.DefaultRateFor("storage.size")
	assert.True(t, matched)
	assert.Equal(t, 0.1, rate)
}

func TestDefaultRateFor_FallbackOnMiss(t *testing.T) {
	cfg := DefaultBillingConfig()

	rate, matched := cfg.DefaultRateFor("gpu.hours")
	assert.False(t, matched)
	assert.Equal(t, cfg.FallbackRate, rate)
}

func TestValidateBillingConfig(t *testing.T) {
	assert.NoError(t, validateBillingConfig(DefaultBillingConfig()))

	bad := DefaultBillingConfig()
	bad.GraceDays = -1
	assert.Error(t, validateBillingConfig(bad))

	bad = DefaultBillingConfig()
	bad.OverdueRate = 1.5
	assert.Error(t, validateBillingConfig(bad))

	bad = DefaultBillingConfig()
	bad.MaxTotalDiscountRate = 150
	assert.Error(t, validateBillingConfig(bad))

	bad = DefaultBillingConfig()
	bad.DefaultRates = map[string]float64{"compute": -1}
	assert.Error(t, validateBillingConfig(bad))
}

func TestStaticHolder(t *testing.T) {
	cfg := DefaultBillingConfig()
	cfg.GraceDays = 10

	holder := NewStaticBillingConfigHolder(cfg)
	assert.Equal(t, 10, holder.Get().GraceDays)
}
