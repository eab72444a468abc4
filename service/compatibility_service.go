package service

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"melv-core/domain"
)

// CompatibilityService computes the β-factor.
//
//	beta = w_p*physical + w_s*service + w_t*temporal
//
// with weights normalised to sum to 1, so beta stays in [0, 1] and never
// decreases when a sub-score grows. Perpetuity carries no weight in beta; it
// enters through cooperation_potential = perpetuity * beta.
type CompatibilityService struct {
	weights [3]float64
}

// NewCompatibilityService creates a new CompatibilityService using cfg.BetaWeights.
func NewCompatibilityService(cfg Config) (*CompatibilityService, error) {
	weights, err := normalizeWeights(cfg.BetaWeights)
	if err != nil {
		return nil, err
	}
	return &CompatibilityService{weights: weights}, nil
}

// CalculateBeta combines the four sub-scores into beta and the cooperation potential.
func (s *CompatibilityService) CalculateBeta(
	input domain.CompatibilityInput,
) (domain.CompatibilityResult, error) {

	scores := []struct {
		name  string
		value float64
	}{
		{"physical", input.Physical},
		{"service", input.Service},
		{"temporal", input.Temporal},
		{"perpetuity", input.Perpetuity},
	}
	for _, sc := range scores {
		if !unit(sc.value) {
			return domain.CompatibilityResult{}, domain.NewDomainError(sc.name, sc.value, "must be in [0, 1]")
		}
	}

	beta := floats.Dot(s.weights[:], []float64{input.Physical, input.Service, input.Temporal})
	// el redondeo puede dejar beta en 1.0000000000000002
	beta = clamp(beta, 0, 1)

	return domain.CompatibilityResult{
		Beta:                 beta,
		CooperationPotential: input.Perpetuity * beta,
		Physical:             input.Physical,
		Service:              input.Service,
		Temporal:             input.Temporal,
		Perpetuity:           input.Perpetuity,
	}, nil
}

// Weights returns the normalised physical, service and temporal weights.
func (s *CompatibilityService) Weights() [3]float64 {
	return s.weights
}

func normalizeWeights(w [3]float64) ([3]float64, error) {
	for i, v := range w {
		if !finite(v) || v < 0 {
			return [3]float64{}, fmt.Errorf("beta weight %d must be a non-negative finite value, got %g", i, v)
		}
	}
	sum := floats.Sum(w[:])
	if math.Abs(sum-1) > WeightSumTolerance {
		return [3]float64{}, fmt.Errorf("beta weights must sum to 1.0 (±%g), got %g", WeightSumTolerance, sum)
	}
	floats.Scale(1/sum, w[:])
	return w, nil
}
