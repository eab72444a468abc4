package service

const (
	CriticalThreshold          = 1.0  // i = 1.0 separa cooperación de competencia
	CriticalEpsilon            = 0.03 // banda |i - 1| <= ε se reporta como Critical
	HighBetaThreshold          = 0.7
	HighPerpetuityThreshold    = 0.7
	StrongCompetitionThreshold = 1.3 // competencia fuerte: confianza High

	DefaultBootstrapN      = 1000
	MaxBootstrapN          = 100_000 // evita llamadas demasiado costosas
	DefaultConfidenceLevel = 0.95
	DifferentiationFloor   = 0.01 // piso para differentiation' en cada muestra

	// Límites de coeficientes estimados a partir de patrones
	EstimatedDifferentiationFloor = 0.1
	NeutralCoefficient            = 0.5 // valor cuando una serie no varía
	normEpsilon                   = 1e-10

	// Tolerancia para la suma de pesos de β
	WeightSumTolerance = 0.01

	DefaultWorkers = 4
)

// DefaultBetaWeights weights physical, service and temporal compatibility.
var DefaultBetaWeights = [3]float64{0.33, 0.33, 0.34}
