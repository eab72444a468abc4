package service

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melv-core/domain"
)

func intPtr(v int) *int        { return &v }
func seedPtr(v uint64) *uint64 { return &v }

func newTestInteraction() *InteractionService {
	return NewInteractionService(DefaultConfig())
}

func TestCalculateIFactor_Cooperative(t *testing.T) {
	service := newTestInteraction()

	result, err := service.CalculateIFactor(domain.InteractionInput{
		Overlap:         0.2,
		Differentiation: 0.85,
	})

	require.NoError(t, err)
	assert.InDelta(t, 0.235, result.IFactor, 0.001)
	assert.Equal(t, domain.RegimeCooperative, result.Regime)
	assert.Nil(t, result.ConfidenceInterval)
	assert.Zero(t, result.BootstrapSamples)
}

func TestCalculateIFactor_Competitive(t *testing.T) {
	service := newTestInteraction()

	result, err := service.CalculateIFactor(domain.InteractionInput{
		Overlap:         0.8,
		Differentiation: 0.5,
	})

	require.NoError(t, err)
	assert.InDelta(t, 1.60, result.IFactor, 1e-12)
	assert.Equal(t, domain.RegimeCompetitive, result.Regime)
}

func TestCalculateIFactor_Critical(t *testing.T) {
	service := newTestInteraction()

	result, err := service.CalculateIFactor(domain.InteractionInput{
		Overlap:         1.0,
		Differentiation: 1.0,
	})

	require.NoError(t, err)
	assert.Equal(t, 1.0, result.IFactor)
	assert.Equal(t, domain.RegimeCritical, result.Regime)
}

func TestCalculateIFactor_ThresholdNeighbourhood(t *testing.T) {
	service := newTestInteraction()

	cases := []struct {
		name          string
		overlap, diff float64
		expected      domain.Regime
	}{
		{"just below band", 0.45, 0.50, domain.RegimeCooperative},
		{"just above band", 0.55, 0.50, domain.RegimeCompetitive},
		{"inside band low", 0.49, 0.50, domain.RegimeCritical},
		{"inside band high", 0.51, 0.50, domain.RegimeCritical},
		{"far competitive", 0.9, 0.1, domain.RegimeCompetitive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := service.CalculateIFactor(domain.InteractionInput{
				Overlap:         tc.overlap,
				Differentiation: tc.diff,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result.Regime)
		})
	}
}

func TestCalculateIFactor_ExactRatio(t *testing.T) {
	service := newTestInteraction()

	for _, o := range []float64{0, 0.1, 0.33, 0.5, 0.77, 1} {
		for _, d := range []float64{0.01, 0.2, 0.5, 0.85, 1} {
			result, err := service.CalculateIFactor(domain.InteractionInput{Overlap: o, Differentiation: d})
			require.NoError(t, err)
			assert.InDelta(t, o/d, result.IFactor, 1e-12)
		}
	}
}

func TestCalculateIFactor_ZeroOverlap(t *testing.T) {
	service := newTestInteraction()

	for _, d := range []float64{0.05, 0.5, 1} {
		result, err := service.CalculateIFactor(domain.InteractionInput{Overlap: 0, Differentiation: d})
		require.NoError(t, err)
		assert.Zero(t, result.IFactor)
		assert.Equal(t, domain.RegimeCooperative, result.Regime)
	}
}

func TestCalculateIFactor_ZeroDifferentiation(t *testing.T) {
	service := newTestInteraction()

	_, err := service.CalculateIFactor(domain.InteractionInput{Overlap: 0.3, Differentiation: 0})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomain)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "differentiation", domainErr.Field)
}

func TestCalculateIFactor_InvalidInputs(t *testing.T) {
	service := newTestInteraction()

	cases := []struct {
		name  string
		input domain.InteractionInput
	}{
		{"negative overlap", domain.InteractionInput{Overlap: -0.1, Differentiation: 0.5}},
		{"overlap above one", domain.InteractionInput{Overlap: 1.2, Differentiation: 0.5}},
		{"negative differentiation", domain.InteractionInput{Overlap: 0.3, Differentiation: -0.5}},
		{"differentiation above one", domain.InteractionInput{Overlap: 0.3, Differentiation: 1.5}},
		{"nan overlap", domain.InteractionInput{Overlap: math.NaN(), Differentiation: 0.5}},
		{"infinite differentiation", domain.InteractionInput{Overlap: 0.3, Differentiation: math.Inf(1)}},
		{"negative uncertainty", domain.InteractionInput{Overlap: 0.3, Differentiation: 0.5, Uncertainty: -0.1}},
		{"zero bootstrap", domain.InteractionInput{Overlap: 0.3, Differentiation: 0.5, Uncertainty: 0.05, BootstrapN: intPtr(0)}},
		{"negative bootstrap", domain.InteractionInput{Overlap: 0.3, Differentiation: 0.5, Uncertainty: 0.05, BootstrapN: intPtr(-3)}},
		{"too many trials", domain.InteractionInput{Overlap: 0.3, Differentiation: 0.5, Uncertainty: 0.05, BootstrapN: intPtr(MaxBootstrapN + 1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CalculateIFactor(tc.input)
			assert.ErrorIs(t, err, domain.ErrDomain)
		})
	}
}

func TestCalculateIFactor_BootstrapNIgnoredWithoutUncertainty(t *testing.T) {
	service := newTestInteraction()

	result, err := service.CalculateIFactor(domain.InteractionInput{
		Overlap:         0.3,
		Differentiation: 0.85,
		BootstrapN:      intPtr(0),
	})

	require.NoError(t, err)
	assert.Nil(t, result.ConfidenceInterval)
}

func TestCalculateIFactor_BootstrapDeterministic(t *testing.T) {
	service := newTestInteraction()
	input := domain.InteractionInput{
		Overlap:         0.3,
		Differentiation: 0.85,
		Uncertainty:     0.05,
		BootstrapN:      intPtr(1000),
		RandomSeed:      seedPtr(42),
	}

	first, err := service.CalculateIFactor(input)
	require.NoError(t, err)
	second, err := service.CalculateIFactor(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.NotNil(t, first.ConfidenceInterval)
	assert.Equal(t, 1000, first.BootstrapSamples)
	assert.Positive(t, first.StandardError)

	// el estimador central nunca es la media bootstrap
	overlap, differentiation := 0.3, 0.85
	assert.Equal(t, overlap/differentiation, first.IFactor)
	assert.LessOrEqual(t, first.ConfidenceInterval.Lower, first.IFactor)
	assert.GreaterOrEqual(t, first.ConfidenceInterval.Upper, first.IFactor)
}

func TestCalculateIFactor_DefaultBootstrapN(t *testing.T) {
	service := newTestInteraction()

	result, err := service.CalculateIFactor(domain.InteractionInput{
		Overlap:         0.3,
		Differentiation: 0.85,
		Uncertainty:     0.05,
		RandomSeed:      seedPtr(7),
	})

	require.NoError(t, err)
	assert.Equal(t, DefaultBootstrapN, result.BootstrapSamples)
}

func TestCalculateIFactor_DifferentSeedsDiffer(t *testing.T) {
	service := newTestInteraction()
	input := domain.InteractionInput{Overlap: 0.3, Differentiation: 0.85, Uncertainty: 0.05}

	input.RandomSeed = seedPtr(1)
	a, err := service.CalculateIFactor(input)
	require.NoError(t, err)
	input.RandomSeed = seedPtr(2)
	b, err := service.CalculateIFactor(input)
	require.NoError(t, err)

	assert.NotEqual(t, *a.ConfidenceInterval, *b.ConfidenceInterval)
}

func TestCalculateIFactor_WidthGrowsWithUncertainty(t *testing.T) {
	service := newTestInteraction()

	previous := 0.0
	for _, u := range []float64{0.01, 0.05, 0.1} {
		result, err := service.CalculateIFactor(domain.InteractionInput{
			Overlap:         0.3,
			Differentiation: 0.85,
			Uncertainty:     u,
			BootstrapN:      intPtr(1000),
			RandomSeed:      seedPtr(42),
		})
		require.NoError(t, err)
		require.NotNil(t, result.ConfidenceInterval)

		width := result.ConfidenceInterval.Width()
		assert.GreaterOrEqual(t, width, previous, "uncertainty %.2f", u)
		assert.True(t, result.ConfidenceInterval.Contains(result.IFactor), "uncertainty %.2f", u)
		previous = width
	}
}

func TestCalculateIFactorWithSource_InjectedSource(t *testing.T) {
	service := newTestInteraction()
	input := domain.InteractionInput{Overlap: 0.5, Differentiation: 0.6, Uncertainty: 0.1, BootstrapN: intPtr(500)}

	a, err := service.CalculateIFactorWithSource(input, rand.NewPCG(3, 4))
	require.NoError(t, err)
	b, err := service.CalculateIFactorWithSource(input, rand.NewPCG(3, 4))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, 500, a.BootstrapSamples)
}

func TestCalculateIFactor_BootstrapSamplesStayFinite(t *testing.T) {
	service := newTestInteraction()

	// differentiation cerca de cero: el piso evita divisiones explosivas
	result, err := service.CalculateIFactor(domain.InteractionInput{
		Overlap:         1,
		Differentiation: 0.02,
		Uncertainty:     0.5,
		RandomSeed:      seedPtr(11),
	})

	require.NoError(t, err)
	require.NotNil(t, result.ConfidenceInterval)
	assert.LessOrEqual(t, result.ConfidenceInterval.Upper, 1/DifferentiationFloor)
	assert.GreaterOrEqual(t, result.ConfidenceInterval.Lower, 0.0)
}

func TestCalculateIFactor_SingleTrial(t *testing.T) {
	service := newTestInteraction()

	result, err := service.CalculateIFactor(domain.InteractionInput{
		Overlap:         0.3,
		Differentiation: 0.85,
		Uncertainty:     0.05,
		BootstrapN:      intPtr(1),
		RandomSeed:      seedPtr(5),
	})

	require.NoError(t, err)
	require.NotNil(t, result.ConfidenceInterval)
	assert.Equal(t, result.ConfidenceInterval.Lower, result.ConfidenceInterval.Upper)
	assert.Zero(t, result.StandardError)
}

func TestCalculateIFactor_CustomEpsilon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CriticalEpsilon = 0.15
	service := NewInteractionService(cfg)

	result, err := service.CalculateIFactor(domain.InteractionInput{Overlap: 0.45, Differentiation: 0.5})

	require.NoError(t, err)
	assert.Equal(t, domain.RegimeCritical, result.Regime)
}

func TestPercentile_LinearBetweenClosestRanks(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = float64(i + 1)
	}

	assert.InDelta(t, 25.975, percentile(samples, 0.025), 1e-9)
	assert.InDelta(t, 975.025, percentile(samples, 0.975), 1e-9)
	assert.Equal(t, 1.0, percentile(samples, 0))
	assert.Equal(t, 1000.0, percentile(samples, 1))
	assert.Equal(t, 7.0, percentile([]float64{7}, 0.975))
}
