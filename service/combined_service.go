package service

import (
	"melv-core/domain"
)

// CombinedService maps an i-factor, beta and perpetuity to a prediction.
type CombinedService struct {
	cfg Config
}

func NewCombinedService(cfg Config) *CombinedService {
	return &CombinedService{cfg: cfg}
}

// CombinedAnalysis evaluates the decision table. The regime splits the i-factor
// axis into three disjoint bands, so exactly one rule fires:
//
//	Cooperative, beta >= high and perpetuity >= high  -> Stable cooperation, High
//	Cooperative otherwise                             -> Fragile cooperation, Medium
//	Critical                                          -> Unstable / transitional, Low
//	Competitive, i >= strong competition              -> Competitive dominance, High
//	Competitive otherwise                             -> Competitive dominance, Medium
func (s *CombinedService) CombinedAnalysis(
	input domain.CombinedInput,
) (domain.CombinedResult, error) {

	if !finite(input.IFactor) || input.IFactor < 0 {
		return domain.CombinedResult{}, domain.NewDomainError("i_factor", input.IFactor, "must be a non-negative finite value")
	}
	if !unit(input.Beta) {
		return domain.CombinedResult{}, domain.NewDomainError("beta", input.Beta, "must be in [0, 1]")
	}
	if !unit(input.Perpetuity) {
		return domain.CombinedResult{}, domain.NewDomainError("perpetuity", input.Perpetuity, "must be in [0, 1]")
	}

	regime := classifyRegime(input.IFactor, s.cfg)
	prediction, confidence := s.predict(input, regime)

	return domain.CombinedResult{
		Prediction:           prediction,
		Confidence:           confidence,
		Regime:               regime,
		CooperationPotential: input.Perpetuity * input.Beta,
	}, nil
}

func (s *CombinedService) predict(
	input domain.CombinedInput,
	regime domain.Regime,
) (domain.Prediction, domain.Confidence) {
	switch regime {
	case domain.RegimeCooperative:
		if input.Beta >= s.cfg.HighBetaThreshold && input.Perpetuity >= s.cfg.HighPerpetuityThreshold {
			return domain.PredictionStableCooperation, domain.ConfidenceHigh
		}
		return domain.PredictionFragileCooperation, domain.ConfidenceMedium
	case domain.RegimeCompetitive:
		if input.IFactor >= s.cfg.StrongCompetitionThreshold {
			return domain.PredictionCompetitiveDominance, domain.ConfidenceHigh
		}
		return domain.PredictionCompetitiveDominance, domain.ConfidenceMedium
	default:
		return domain.PredictionUnstable, domain.ConfidenceLow
	}
}
