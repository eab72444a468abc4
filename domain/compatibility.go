package domain

type CompatibilityInput struct {
	Physical   float64 `json:"physical"`
	Service    float64 `json:"service"`
	Temporal   float64 `json:"temporal"`
	Perpetuity float64 `json:"perpetuity"`
}

type CompatibilityResult struct {
	Beta                 float64 `json:"beta"`
	CooperationPotential float64 `json:"cooperation_potential"`
	Physical             float64 `json:"physical"`
	Service              float64 `json:"service"`
	Temporal             float64 `json:"temporal"`
	Perpetuity           float64 `json:"perpetuity"`
}
