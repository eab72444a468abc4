package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melv-core/domain"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()

	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 1.0, cfg.CriticalThreshold)
	assert.Equal(t, 0.03, cfg.CriticalEpsilon)
	assert.Equal(t, 1000, cfg.BootstrapN)
	assert.Equal(t, 0.95, cfg.ConfidenceLevel)
}

func TestConfigValidate_Rejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero threshold":          func(c *Config) { c.CriticalThreshold = 0 },
		"negative epsilon":        func(c *Config) { c.CriticalEpsilon = -0.01 },
		"epsilon above threshold": func(c *Config) { c.CriticalEpsilon = 1.5 },
		"high beta above one":     func(c *Config) { c.HighBetaThreshold = 1.1 },
		"high perpetuity":         func(c *Config) { c.HighPerpetuityThreshold = -0.2 },
		"strong inside band":      func(c *Config) { c.StrongCompetitionThreshold = 1.01 },
		"bootstrap zero":          func(c *Config) { c.BootstrapN = 0 },
		"max below default":       func(c *Config) { c.MaxBootstrapN = 10 },
		"confidence one":          func(c *Config) { c.ConfidenceLevel = 1 },
		"floor zero":              func(c *Config) { c.DifferentiationFloor = 0 },
		"no workers":              func(c *Config) { c.Workers = 0 },
		"weights":                 func(c *Config) { c.BetaWeights = [3]float64{1, 1, 1} },
		"nan epsilon":             func(c *Config) { c.CriticalEpsilon = math.NaN() },
		"nan strong competition":  func(c *Config) { c.StrongCompetitionThreshold = math.NaN() },
		"inf strong competition":  func(c *Config) { c.StrongCompetitionThreshold = math.Inf(1) },
		"nan confidence":          func(c *Config) { c.ConfidenceLevel = math.NaN() },
		"nan floor":               func(c *Config) { c.DifferentiationFloor = math.NaN() },
		"inf threshold":           func(c *Config) { c.CriticalThreshold = math.Inf(1) },
		"nan high beta":           func(c *Config) { c.HighBetaThreshold = math.NaN() },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigValidate_NonFiniteNeverReachesBootstrap(t *testing.T) {
	input := domain.InteractionInput{Overlap: 0.3, Differentiation: 0.85, Uncertainty: 0.05, RandomSeed: seedPtr(1)}

	for name, mutate := range map[string]func(*Config){
		"confidence": func(c *Config) { c.ConfidenceLevel = math.NaN() },
		"floor":      func(c *Config) { c.DifferentiationFloor = math.NaN() },
		"epsilon":    func(c *Config) { c.CriticalEpsilon = math.NaN() },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)

			_, err := NewAnalyzer(cfg, nil, quietLogger())
			assert.Error(t, err)
		})
	}

	result, err := NewInteractionService(DefaultConfig()).CalculateIFactor(input)
	require.NoError(t, err)
	assert.Equal(t, domain.RegimeCooperative, result.Regime)
	assert.False(t, math.IsNaN(result.ConfidenceInterval.Lower))
}
