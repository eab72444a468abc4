package service

import (
	"fmt"
	"strings"

	"melv-core/domain"
)

const (
	strongCooperationBelow = 0.5
	strongCompetitionFrom  = 1.5
)

// Interpreter renders calculation results as plain-language explanations.
type Interpreter struct {
	cfg Config
}

func NewInterpreter(cfg Config) *Interpreter {
	return &Interpreter{cfg: cfg}
}

// Interaction explains an i-factor result.
func (it *Interpreter) Interaction(result domain.InteractionResult, method domain.Method) string {
	if method == "" {
		method = domain.MethodDirect
	}

	var b strings.Builder
	fmt.Fprintf(&b, "i-factor = %.2f (calculated from %s)\n\n", result.IFactor, method)

	o, d := result.Overlap, result.Differentiation
	switch {
	case result.Regime == domain.RegimeCritical:
		fmt.Fprintf(&b, "CRITICAL THRESHOLD: resource overlap (%.2f) approximately equals service "+
			"differentiation (%.2f). Small changes could shift the regime.", o, d)
	case result.IFactor < strongCooperationBelow:
		fmt.Fprintf(&b, "STRONG COOPERATION regime: high service differentiation (%.2f) combined with "+
			"low resource overlap (%.2f) creates strong synergy.", d, o)
	case result.Regime == domain.RegimeCooperative:
		fmt.Fprintf(&b, "COOPERATIVE regime: service differentiation (%.2f) exceeds resource overlap "+
			"(%.2f), so mutual benefit exceeds interaction costs.", d, o)
	case result.IFactor < strongCompetitionFrom:
		fmt.Fprintf(&b, "COMPETITIVE regime: resource overlap (%.2f) exceeds service differentiation "+
			"(%.2f); entities compete for limited resources.", o, d)
	default:
		fmt.Fprintf(&b, "STRONG COMPETITION regime: high resource overlap (%.2f) with low service "+
			"differentiation (%.2f); zero-sum dynamics dominate.", o, d)
	}

	if ci := result.ConfidenceInterval; ci != nil {
		fmt.Fprintf(&b, "\n%.0f%% CI: [%.2f, %.2f] from %d bootstrap samples.",
			it.cfg.ConfidenceLevel*100, ci.Lower, ci.Upper, result.BootstrapSamples)
		if ci.Contains(it.cfg.CriticalThreshold) {
			b.WriteString(" The interval crosses the critical threshold.")
		}
	}
	return b.String()
}

// Compatibility explains a beta result dimension by dimension.
func (it *Interpreter) Compatibility(result domain.CompatibilityResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "β (compatibility) = %.2f: %s compatibility\n\n", result.Beta, band(result.Beta,
		"EXCELLENT", "GOOD", "MODERATE", "LIMITED"))

	b.WriteString("Dimension analysis:\n")
	fmt.Fprintf(&b, "• Physical: %.2f - %s\n", result.Physical, dimension(result.Physical,
		"Strong physical compatibility", "Good physical match", "Physical constraints present"))
	fmt.Fprintf(&b, "• Service: %.2f - %s\n", result.Service, dimension(result.Service,
		"Excellent service-need matching", "Services align reasonably well", "Service-need mismatch detected"))
	fmt.Fprintf(&b, "• Temporal: %.2f - %s\n", result.Temporal, dimension(result.Temporal,
		"Strong temporal synchronization", "Adequate timing coordination", "Temporal coordination challenges"))
	fmt.Fprintf(&b, "\nPerpetuity (φ) = %.2f - %s\n", result.Perpetuity, dimension(result.Perpetuity,
		"Highly sustainable relationship", "Reasonably sustainable", "Sustainability concerns"))

	fmt.Fprintf(&b, "Cooperation potential (φ × β) = %.2f: ", result.CooperationPotential)
	switch {
	case result.CooperationPotential > 0.7:
		b.WriteString("strong potential for lasting cooperation")
	case result.CooperationPotential > 0.5:
		b.WriteString("moderate cooperation potential")
	default:
		b.WriteString("limited cooperation potential")
	}
	return b.String()
}

// Combined explains the joint prediction.
func (it *Interpreter) Combined(input domain.CombinedInput, result domain.CombinedResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "i-factor = %.2f -> %s regime\n", input.IFactor, result.Regime)
	fmt.Fprintf(&b, "β = %.2f, φ = %.2f, φ × β = %.2f\n", input.Beta, input.Perpetuity, result.CooperationPotential)
	fmt.Fprintf(&b, "Prediction: %s (confidence: %s)\n", result.Prediction, result.Confidence)

	switch result.Prediction {
	case domain.PredictionStableCooperation:
		b.WriteString("Low interaction costs and good compatibility both favor cooperation.")
	case domain.PredictionFragileCooperation:
		b.WriteString("Low interaction costs favor cooperation, but compatibility or sustainability " +
			"limits how well it functions.")
	case domain.PredictionCompetitiveDominance:
		b.WriteString("Interaction costs exceed benefits; cooperation is unlikely to emerge " +
			"even with good compatibility.")
	default:
		b.WriteString("The system sits near the critical threshold; outcomes are highly sensitive " +
			"to small parameter changes.")
	}
	return b.String()
}

func band(v float64, excellent, good, moderate, limited string) string {
	switch {
	case v > 0.8:
		return excellent
	case v > 0.6:
		return good
	case v > 0.4:
		return moderate
	default:
		return limited
	}
}

func dimension(v float64, high, mid, low string) string {
	switch {
	case v > 0.8:
		return high
	case v > 0.6:
		return mid
	default:
		return low
	}
}
