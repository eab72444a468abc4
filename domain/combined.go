package domain

type Prediction string

const (
	PredictionStableCooperation    Prediction = "Stable cooperation"
	PredictionFragileCooperation   Prediction = "Fragile cooperation"
	PredictionUnstable             Prediction = "Unstable / transitional"
	PredictionCompetitiveDominance Prediction = "Competitive dominance"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

type CombinedInput struct {
	IFactor    float64 `json:"i_factor"`
	Beta       float64 `json:"beta"`
	Perpetuity float64 `json:"perpetuity"`
}

type CombinedResult struct {
	Prediction           Prediction `json:"prediction"`
	Confidence           Confidence `json:"confidence"`
	Regime               Regime     `json:"regime"`
	CooperationPotential float64    `json:"cooperation_potential"`
}

// Assessment is the output of the full interaction + compatibility pipeline.
type Assessment struct {
	Interaction    InteractionResult   `json:"interaction"`
	Compatibility  CompatibilityResult `json:"compatibility"`
	Combined       CombinedResult      `json:"combined"`
	Interpretation string              `json:"interpretation"`
}
