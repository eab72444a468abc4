package service

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"melv-core/domain"
)

// InteractionService computes the i-factor and its bootstrap interval.
// It holds no mutable state and is safe for concurrent use.
type InteractionService struct {
	cfg Config
}

// NewInteractionService creates a new InteractionService with the given thresholds.
func NewInteractionService(cfg Config) *InteractionService {
	return &InteractionService{cfg: cfg}
}

// CalculateIFactor computes overlap / differentiation and classifies the regime.
// When input.Uncertainty > 0 it also bootstraps a confidence interval, drawing
// from a generator seeded with input.RandomSeed, or from a fresh per-call
// generator when no seed is given.
func (s *InteractionService) CalculateIFactor(
	input domain.InteractionInput,
) (domain.InteractionResult, error) {
	var src rand.Source
	if input.UncertaintyRequested() {
		src = newSource(input.RandomSeed)
	}
	return s.CalculateIFactorWithSource(input, src)
}

// CalculateIFactorWithSource is CalculateIFactor with an injected random source.
// RandomSeed is ignored; src must not be shared between goroutines.
func (s *InteractionService) CalculateIFactorWithSource(
	input domain.InteractionInput,
	src rand.Source,
) (domain.InteractionResult, error) {

	if err := validateInteraction(input); err != nil {
		return domain.InteractionResult{}, err
	}

	iFactor := input.Overlap / input.Differentiation

	result := domain.InteractionResult{
		IFactor:         iFactor,
		Regime:          classifyRegime(iFactor, s.cfg),
		Overlap:         input.Overlap,
		Differentiation: input.Differentiation,
	}

	if !input.UncertaintyRequested() {
		return result, nil
	}

	n, err := s.bootstrapSize(input)
	if err != nil {
		return domain.InteractionResult{}, err
	}
	if src == nil {
		src = newSource(nil)
	}

	interval, stdErr, err := s.bootstrap(input.Overlap, input.Differentiation, input.Uncertainty, n, src)
	if err != nil {
		return domain.InteractionResult{}, fmt.Errorf("bootstrap: %w", err)
	}

	result.ConfidenceInterval = &interval
	result.BootstrapSamples = n
	result.StandardError = stdErr

	return result, nil
}

func validateInteraction(input domain.InteractionInput) error {
	if !finite(input.Overlap) {
		return domain.NewDomainError("overlap", input.Overlap, "must be finite")
	}
	if !finite(input.Differentiation) {
		return domain.NewDomainError("differentiation", input.Differentiation, "must be finite")
	}
	if input.Differentiation == 0 {
		return domain.NewDomainError("differentiation", input.Differentiation, "must not be zero")
	}
	if input.Overlap < 0 || input.Overlap > 1 {
		return domain.NewDomainError("overlap", input.Overlap, "must be in [0, 1]")
	}
	if input.Differentiation < 0 || input.Differentiation > 1 {
		return domain.NewDomainError("differentiation", input.Differentiation, "must be in (0, 1]")
	}
	if !finite(input.Uncertainty) || input.Uncertainty < 0 {
		return domain.NewDomainError("uncertainty", input.Uncertainty, "must be a non-negative finite value")
	}
	return nil
}

func (s *InteractionService) bootstrapSize(input domain.InteractionInput) (int, error) {
	if input.BootstrapN == nil {
		return s.cfg.BootstrapN, nil
	}
	n := *input.BootstrapN
	if n < 1 {
		return 0, domain.NewDomainError("bootstrap_n", float64(n), "must be >= 1 when uncertainty is requested")
	}
	if n > s.cfg.MaxBootstrapN {
		return 0, domain.NewDomainError("bootstrap_n", float64(n), fmt.Sprintf("must not exceed %d", s.cfg.MaxBootstrapN))
	}
	return n, nil
}

// bootstrap perturbs both inputs with N(0, sigma) noise n times and returns the
// percentile interval at the configured confidence level plus the sample
// standard deviation of the resampled i-factors.
func (s *InteractionService) bootstrap(
	overlap, differentiation, sigma float64,
	n int,
	src rand.Source,
) (domain.Interval, float64, error) {
	noise := distuv.Normal{Mu: 0, Sigma: sigma, Src: src}

	samples := make([]float64, n)
	for i := range samples {
		// orden fijo: primero overlap, luego differentiation
		o := clamp(overlap+noise.Rand(), 0, 1)
		d := clamp(differentiation+noise.Rand(), s.cfg.DifferentiationFloor, 1)
		samples[i] = o / d
	}
	sort.Float64s(samples)

	tail := (1 - s.cfg.ConfidenceLevel) / 2
	interval := domain.Interval{
		Lower: percentile(samples, tail),
		Upper: percentile(samples, 1-tail),
	}

	if n < 2 {
		return interval, 0, nil
	}
	stdErr, err := stats.StandardDeviationSample(samples)
	if err != nil {
		return domain.Interval{}, 0, err
	}
	return interval, stdErr, nil
}

// percentile interpolates linearly between the closest ranks of the sorted
// sample (Hyndman-Fan type 7), so q(0.025) of 1..1000 is 25.975.
func percentile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// classifyRegime applies the critical band shared by every calculator.
func classifyRegime(iFactor float64, cfg Config) domain.Regime {
	switch {
	case iFactor < cfg.CriticalThreshold-cfg.CriticalEpsilon:
		return domain.RegimeCooperative
	case iFactor > cfg.CriticalThreshold+cfg.CriticalEpsilon:
		return domain.RegimeCompetitive
	default:
		return domain.RegimeCritical
	}
}

func newSource(seed *uint64) rand.Source {
	if seed == nil {
		return rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return rand.NewPCG(*seed, *seed)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
