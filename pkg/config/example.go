package config

// Example returns a complete run configuration for the P. horikoshii AlaRS
// active site, the system this tool was originally tuned on. The sequence
// itself is expected in a local file; everything else is ready to run.
func Example() *Config {
	anchorBonus := 5.0
	primaryBonus := 3.0
	secondaryBonus := 0.5
	sizePenaltyRate := 0.2
	referenceSize := 6

	return &Config{
		SequenceFile: "sequences/wild_type.txt",
		Numbering: map[int]int{
			192: 190,
			193: 191,
			213: 211,
			215: 213,
			217: 215,
			249: 232,
		},
		ActiveSites: []int{192, 193, 213, 215, 217, 249},
		Anchor:      "V215G",
		// Proline excluded for structural reasons, Cysteine for stability.
		Alphabet:   "ADEFGHIKLMNQRSTVWY",
		Candidates: 5000,
		SizeRange:  SizeRange{Min: 5, Max: 8},
		Folds:      5,
		Seed:       42,
		Top:        10,
		Weights: &Weights{
			AnchorBonus:     &anchorBonus,
			PrimaryBonus:    &primaryBonus,
			SecondaryBonus:  &secondaryBonus,
			SizePenaltyRate: &sizePenaltyRate,
			ReferenceSize:   &referenceSize,
		},
		PrimarySite:     192,
		PrimaryVariants: "HFYL",
		Secondary:       []string{"A193G", "A193L", "M217I", "T213A", "T249F"},
	}
}
