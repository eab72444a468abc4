package service

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"melv-core/domain"
)

// Estimator derives overlap and differentiation from raw usage patterns.
type Estimator struct{}

// NewEstimator creates a new coefficient estimator
func NewEstimator() *Estimator {
	return &Estimator{}
}

// FromResources estimates coefficients from two resource-usage vectors.
// Overlap is the cosine similarity of the vectors; differentiation is
// 1 - |pearson correlation|.
func (e *Estimator) FromResources(a, b []float64) (domain.Coefficients, error) {
	if err := checkPair("resource vectors", a, b); err != nil {
		return domain.Coefficients{}, err
	}

	an := floats.Norm(a, 2) + normEpsilon
	bn := floats.Norm(b, 2) + normEpsilon
	overlap := clamp(floats.Dot(a, b)/(an*bn), 0, 1)

	differentiation := NeutralCoefficient
	if varies(a) && varies(b) {
		differentiation = 1 - math.Abs(stat.Correlation(a, b, nil))
	}

	return domain.Coefficients{
		Overlap:         overlap,
		Differentiation: clamp(differentiation, EstimatedDifferentiationFloor, 1),
		Method:          domain.MethodResourceVectors,
	}, nil
}

// FromTemporal estimates coefficients from two activity time series.
// Overlap is the absolute correlation of the min-max normalised series;
// differentiation is the distance between their peaks relative to the length.
func (e *Estimator) FromTemporal(a, b []float64) (domain.Coefficients, error) {
	if err := checkPair("temporal patterns", a, b); err != nil {
		return domain.Coefficients{}, err
	}

	an := minMaxNormalize(a)
	bn := minMaxNormalize(b)

	overlap := NeutralCoefficient
	if varies(an) && varies(bn) {
		overlap = math.Abs(stat.Correlation(an, bn, nil))
	}

	separation := math.Abs(float64(floats.MaxIdx(an)-floats.MaxIdx(bn))) / float64(len(a))

	return domain.Coefficients{
		Overlap:         clamp(overlap, 0, 1),
		Differentiation: clamp(separation, EstimatedDifferentiationFloor, 1),
		Method:          domain.MethodTemporal,
	}, nil
}

// FromSpatial estimates coefficients from two spatial density grids of the
// same shape. Overlap is the shared mass of the normalised grids;
// differentiation is the distance between their centres of mass over the
// flattened cell index, relative to the cell count.
func (e *Estimator) FromSpatial(a, b mat.Matrix) (domain.Coefficients, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return domain.Coefficients{}, &domain.DomainError{Reason: "spatial patterns must have the same shape"}
	}

	af := flatten(a)
	bf := flatten(b)
	if err := checkPair("spatial patterns", af, bf); err != nil {
		return domain.Coefficients{}, err
	}
	for i := range af {
		if af[i] < 0 || bf[i] < 0 {
			return domain.Coefficients{}, &domain.DomainError{Reason: "spatial patterns must be non-negative densities"}
		}
	}

	floats.Scale(1/(floats.Sum(af)+normEpsilon), af)
	floats.Scale(1/(floats.Sum(bf)+normEpsilon), bf)

	overlap := 0.0
	var centerA, centerB float64
	for i := range af {
		overlap += math.Min(af[i], bf[i])
		centerA += float64(i) * af[i]
		centerB += float64(i) * bf[i]
	}
	separation := math.Abs(centerA-centerB) / float64(len(af))

	return domain.Coefficients{
		Overlap:         clamp(overlap, 0, 1),
		Differentiation: clamp(separation, EstimatedDifferentiationFloor, 1),
		Method:          domain.MethodSpatial,
	}, nil
}

func checkPair(what string, a, b []float64) error {
	if len(a) == 0 || len(b) == 0 {
		return &domain.DomainError{Reason: what + " must not be empty"}
	}
	if len(a) != len(b) {
		return &domain.DomainError{Reason: what + " must have the same length"}
	}
	for i := range a {
		if !finite(a[i]) || !finite(b[i]) {
			return &domain.DomainError{Reason: what + " must contain only finite values"}
		}
	}
	return nil
}

// varies reports whether the sample has a non-zero spread.
func varies(x []float64) bool {
	return len(x) > 1 && stat.StdDev(x, nil) > 0
}

func minMaxNormalize(x []float64) []float64 {
	lo, hi := floats.Min(x), floats.Max(x)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = (v - lo) / (hi - lo + normEpsilon)
	}
	return out
}

func flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, m.At(i, j))
		}
	}
	return out
}
