package service

import (
	"fmt"
	"math"
)

// Config binds every threshold and default the calculators use.
type Config struct {
	CriticalThreshold          float64
	CriticalEpsilon            float64
	HighBetaThreshold          float64
	HighPerpetuityThreshold    float64
	StrongCompetitionThreshold float64

	BootstrapN           int
	MaxBootstrapN        int
	ConfidenceLevel      float64
	DifferentiationFloor float64

	BetaWeights [3]float64

	// Workers bounds the concurrency of batch comparisons.
	Workers int
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		CriticalThreshold:          CriticalThreshold,
		CriticalEpsilon:            CriticalEpsilon,
		HighBetaThreshold:          HighBetaThreshold,
		HighPerpetuityThreshold:    HighPerpetuityThreshold,
		StrongCompetitionThreshold: StrongCompetitionThreshold,
		BootstrapN:                 DefaultBootstrapN,
		MaxBootstrapN:              MaxBootstrapN,
		ConfidenceLevel:            DefaultConfidenceLevel,
		DifferentiationFloor:       DifferentiationFloor,
		BetaWeights:                DefaultBetaWeights,
		Workers:                    DefaultWorkers,
	}
}

// Validate checks that the configuration describes a consistent rule set.
func (c Config) Validate() error {
	if c.CriticalThreshold <= 0 || !finite(c.CriticalThreshold) {
		return fmt.Errorf("critical threshold must be positive, got %g", c.CriticalThreshold)
	}
	if !finite(c.CriticalEpsilon) || c.CriticalEpsilon < 0 || c.CriticalEpsilon >= c.CriticalThreshold {
		return fmt.Errorf("critical epsilon must be in [0, %g), got %g", c.CriticalThreshold, c.CriticalEpsilon)
	}
	if !unit(c.HighBetaThreshold) {
		return fmt.Errorf("high beta threshold must be in [0, 1], got %g", c.HighBetaThreshold)
	}
	if !unit(c.HighPerpetuityThreshold) {
		return fmt.Errorf("high perpetuity threshold must be in [0, 1], got %g", c.HighPerpetuityThreshold)
	}
	if !finite(c.StrongCompetitionThreshold) || c.StrongCompetitionThreshold < c.CriticalThreshold+c.CriticalEpsilon {
		return fmt.Errorf("strong competition threshold must be >= %g, got %g",
			c.CriticalThreshold+c.CriticalEpsilon, c.StrongCompetitionThreshold)
	}
	if c.BootstrapN < 1 {
		return fmt.Errorf("default bootstrap_n must be >= 1, got %d", c.BootstrapN)
	}
	if c.MaxBootstrapN < c.BootstrapN {
		return fmt.Errorf("max bootstrap_n %d is below the default %d", c.MaxBootstrapN, c.BootstrapN)
	}
	if !finite(c.ConfidenceLevel) || c.ConfidenceLevel <= 0 || c.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidence level must be in (0, 1), got %g", c.ConfidenceLevel)
	}
	if !finite(c.DifferentiationFloor) || c.DifferentiationFloor <= 0 || c.DifferentiationFloor > 1 {
		return fmt.Errorf("differentiation floor must be in (0, 1], got %g", c.DifferentiationFloor)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	if _, err := normalizeWeights(c.BetaWeights); err != nil {
		return err
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func unit(v float64) bool {
	return finite(v) && v >= 0 && v <= 1
}
