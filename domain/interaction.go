package domain

// Regime is the qualitative classification of an i-factor.
type Regime string

const (
	RegimeCooperative Regime = "Cooperative"
	RegimeCompetitive Regime = "Competitive"
	RegimeCritical    Regime = "Critical"
)

// Method records how overlap and differentiation were obtained.
type Method string

const (
	MethodDirect          Method = "direct"
	MethodResourceVectors Method = "resource_vectors"
	MethodTemporal        Method = "temporal"
	MethodSpatial         Method = "spatial"
)

type InteractionInput struct {
	Overlap         float64 `json:"overlap" yaml:"overlap"`
	Differentiation float64 `json:"differentiation" yaml:"differentiation"`
	// Uncertainty es la desviación estándar absoluta del ruido; 0 = sin bootstrap
	Uncertainty float64 `json:"uncertainty,omitempty" yaml:"uncertainty,omitempty"`
	// BootstrapN nil means the configured default.
	BootstrapN *int    `json:"bootstrap_n,omitempty" yaml:"bootstrap_n,omitempty"`
	RandomSeed *uint64 `json:"random_seed,omitempty" yaml:"random_seed,omitempty"`
}

// UncertaintyRequested reports whether the input asks for a bootstrap interval.
func (in InteractionInput) UncertaintyRequested() bool {
	return in.Uncertainty > 0
}

// Interval is a closed [Lower, Upper] range.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Width returns Upper - Lower.
func (i Interval) Width() float64 {
	return i.Upper - i.Lower
}

// Contains reports whether v lies inside the interval.
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

type InteractionResult struct {
	IFactor            float64   `json:"i_factor"`
	Regime             Regime    `json:"regime"`
	Overlap            float64   `json:"overlap"`
	Differentiation    float64   `json:"differentiation"`
	ConfidenceInterval *Interval `json:"confidence_interval,omitempty"`
	BootstrapSamples   int       `json:"bootstrap_samples,omitempty"`
	StandardError      float64   `json:"standard_error,omitempty"`
}

// Coefficients are an overlap/differentiation pair derived from raw patterns.
type Coefficients struct {
	Overlap         float64 `json:"overlap"`
	Differentiation float64 `json:"differentiation"`
	Method          Method  `json:"method"`
}

// Input converts the coefficients into a point-estimate interaction input.
func (c Coefficients) Input() InteractionInput {
	return InteractionInput{
		Overlap:         c.Overlap,
		Differentiation: c.Differentiation,
	}
}

// InteractionPair names the two entities of an interaction.
type InteractionPair struct {
	Entity1 string           `json:"entity1" yaml:"entity1"`
	Entity2 string           `json:"entity2" yaml:"entity2"`
	Method  Method           `json:"method,omitempty" yaml:"method,omitempty"`
	Input   InteractionInput `json:"input" yaml:",inline"`
}

type InteractionReport struct {
	Entity1        string            `json:"entity1"`
	Entity2        string            `json:"entity2"`
	Method         Method            `json:"method"`
	Result         InteractionResult `json:"result"`
	Interpretation string            `json:"interpretation"`
}
