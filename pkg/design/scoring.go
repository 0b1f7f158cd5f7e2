package design

// Scorer maps a candidate to a deterministic, non-negative base score.
// Implementations must be stateless: equal candidates score identically on
// every call. The weighted heuristic below stands in for a real predictive
// model; swapping one in means providing another Scorer.
type Scorer interface {
	Score(c Candidate) float64
}

// Weights are the tunable terms of the heuristic scorer.
type Weights struct {
	AnchorBonus     float64 `json:"anchor_bonus" yaml:"anchor_bonus"`
	PrimaryBonus    float64 `json:"primary_bonus" yaml:"primary_bonus"`
	SecondaryBonus  float64 `json:"secondary_bonus" yaml:"secondary_bonus"`
	SizePenaltyRate float64 `json:"size_penalty_rate" yaml:"size_penalty_rate"`
	ReferenceSize   int     `json:"reference_size" yaml:"reference_size"`
}

// WeightedScorer rewards the anchor mutation, any favorable variant at the
// primary site, and each configured secondary mutation, then penalizes
// candidates larger than the reference size. The total is floored at zero.
type WeightedScorer struct {
	weights         Weights
	anchor          Mutation
	primarySite     int
	primaryVariants map[byte]bool
	secondary       map[Mutation]bool
}

// NewWeightedScorer builds the heuristic scorer. The rule tables (favorable
// primary-site variants, secondary mutation list) are data, not code.
func NewWeightedScorer(w Weights, anchor Mutation, primarySite int, primaryVariants []byte, secondary []Mutation) *WeightedScorer {
	pv := make(map[byte]bool, len(primaryVariants))
	for _, v := range primaryVariants {
		pv[v] = true
	}
	sec := make(map[Mutation]bool, len(secondary))
	for _, m := range secondary {
		sec[m] = true
	}
	return &WeightedScorer{
		weights:         w,
		anchor:          anchor,
		primarySite:     primarySite,
		primaryVariants: pv,
		secondary:       sec,
	}
}

// Score implements Scorer.
func (s *WeightedScorer) Score(c Candidate) float64 {
	score := 0.0

	if c.Contains(s.anchor) {
		score += s.weights.AnchorBonus
	}

	if v := c.VariantAt(s.primarySite); v != 0 && s.primaryVariants[v] {
		score += s.weights.PrimaryBonus
	}

	for _, m := range c.Mutations {
		if s.secondary[m] {
			score += s.weights.SecondaryBonus
		}
	}

	if over := c.Size() - s.weights.ReferenceSize; over > 0 {
		score -= s.weights.SizePenaltyRate * float64(over)
	}

	if score < 0 {
		return 0
	}
	return score
}
