package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testWeights() Weights {
	return Weights{
		AnchorBonus:     5.0,
		PrimaryBonus:    3.0,
		SecondaryBonus:  0.5,
		SizePenaltyRate: 0.2,
		ReferenceSize:   6,
	}
}

func testScorer() *WeightedScorer {
	anchor := Mutation{Site: 215, WildType: 'V', Variant: 'G'}
	secondary := []Mutation{
		{Site: 193, WildType: 'A', Variant: 'G'},
		{Site: 193, WildType: 'A', Variant: 'L'},
		{Site: 217, WildType: 'M', Variant: 'I'},
		{Site: 213, WildType: 'T', Variant: 'A'},
		{Site: 249, WildType: 'T', Variant: 'F'},
	}
	return NewWeightedScorer(testWeights(), anchor, 192, []byte("HFYL"), secondary)
}

func candidateOf(muts ...Mutation) Candidate {
	return Candidate{ID: "test", Mutations: muts}
}

func TestScoreAnchorOnly(t *testing.T) {
	s := testScorer()
	c := candidateOf(Mutation{Site: 215, WildType: 'V', Variant: 'G'})
	assert.Equal(t, 5.0, s.Score(c))
}

func TestScoreAtReferenceSize(t *testing.T) {
	// size 6 with only the anchor contributing: no penalty at reference size
	s := testScorer()
	c := candidateOf(
		Mutation{Site: 100, WildType: 'K', Variant: 'R'},
		Mutation{Site: 101, WildType: 'K', Variant: 'R'},
		Mutation{Site: 102, WildType: 'K', Variant: 'R'},
		Mutation{Site: 103, WildType: 'K', Variant: 'R'},
		Mutation{Site: 104, WildType: 'K', Variant: 'R'},
		Mutation{Site: 215, WildType: 'V', Variant: 'G'},
	)
	assert.Equal(t, 5.0, s.Score(c))
}

func TestScoreSizePenalty(t *testing.T) {
	// size 8, anchor only: 5.0 - 0.2*2 = 4.6
	s := testScorer()
	c := candidateOf(
		Mutation{Site: 100, WildType: 'K', Variant: 'R'},
		Mutation{Site: 101, WildType: 'K', Variant: 'R'},
		Mutation{Site: 102, WildType: 'K', Variant: 'R'},
		Mutation{Site: 103, WildType: 'K', Variant: 'R'},
		Mutation{Site: 104, WildType: 'K', Variant: 'R'},
		Mutation{Site: 105, WildType: 'K', Variant: 'R'},
		Mutation{Site: 106, WildType: 'K', Variant: 'R'},
		Mutation{Site: 215, WildType: 'V', Variant: 'G'},
	)
	assert.InDelta(t, 4.6, s.Score(c), 1e-12)
}

func TestScorePrimaryAndSecondary(t *testing.T) {
	s := testScorer()
	c := candidateOf(
		Mutation{Site: 192, WildType: 'W', Variant: 'H'},
		Mutation{Site: 193, WildType: 'A', Variant: 'G'},
		Mutation{Site: 215, WildType: 'V', Variant: 'G'},
		Mutation{Site: 217, WildType: 'M', Variant: 'I'},
	)
	// anchor 5.0 + primary 3.0 + two secondary 1.0, size below reference
	assert.InDelta(t, 9.0, s.Score(c), 1e-12)
}

func TestScorePrimaryUnfavorableVariant(t *testing.T) {
	s := testScorer()
	c := candidateOf(
		Mutation{Site: 192, WildType: 'W', Variant: 'D'},
		Mutation{Site: 215, WildType: 'V', Variant: 'G'},
	)
	assert.Equal(t, 5.0, s.Score(c))
}

func TestScoreFloorsAtZero(t *testing.T) {
	w := testWeights()
	w.AnchorBonus = 0.1
	w.ReferenceSize = 1
	w.SizePenaltyRate = 10.0
	s := NewWeightedScorer(w, Mutation{Site: 215, WildType: 'V', Variant: 'G'}, 192, nil, nil)

	c := candidateOf(
		Mutation{Site: 100, WildType: 'K', Variant: 'R'},
		Mutation{Site: 215, WildType: 'V', Variant: 'G'},
	)
	assert.Equal(t, 0.0, s.Score(c))
}

func TestScorePurity(t *testing.T) {
	s := testScorer()
	c := candidateOf(
		Mutation{Site: 192, WildType: 'W', Variant: 'F'},
		Mutation{Site: 215, WildType: 'V', Variant: 'G'},
	)
	first := s.Score(c)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(c))
	}
}
