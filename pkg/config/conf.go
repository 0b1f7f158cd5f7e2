package config

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/variantsmith/mutscan/pkg/design"
)

const fileMode = 0600

// SizeRange is the inclusive candidate-size range.
type SizeRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Weights mirrors design.Weights with pointer fields so a key missing from
// the YAML is distinguishable from an explicit zero.
type Weights struct {
	AnchorBonus     *float64 `yaml:"anchor_bonus" json:"anchor_bonus"`
	PrimaryBonus    *float64 `yaml:"primary_bonus" json:"primary_bonus"`
	SecondaryBonus  *float64 `yaml:"secondary_bonus" json:"secondary_bonus"`
	SizePenaltyRate *float64 `yaml:"size_penalty_rate" json:"size_penalty_rate"`
	ReferenceSize   *int     `yaml:"reference_size" json:"reference_size"`
}

// Config is the full run configuration.
type Config struct {
	// Sequence is the wild-type residue sequence, inline. SequenceFile is
	// read instead when Sequence is empty.
	Sequence     string `yaml:"sequence,omitempty" json:"sequence,omitempty"`
	SequenceFile string `yaml:"sequence_file,omitempty" json:"sequence_file,omitempty"`

	// Numbering maps domain site numbers to 0-based sequence indexes.
	Numbering map[int]int `yaml:"numbering" json:"numbering"`

	// ActiveSites is the catalog of mutable site numbers.
	ActiveSites []int `yaml:"active_sites" json:"active_sites"`

	// Anchor is the mandatory mutation token, e.g. "V215G".
	Anchor string `yaml:"anchor" json:"anchor"`

	// Alphabet is the allowed variant residue set.
	Alphabet string `yaml:"alphabet" json:"alphabet"`

	Candidates int       `yaml:"candidates" json:"candidates"`
	SizeRange  SizeRange `yaml:"size_range" json:"size_range"`
	Folds      int       `yaml:"folds" json:"folds"`
	Seed       int64     `yaml:"seed" json:"seed"`
	Top        int       `yaml:"top" json:"top"`

	// Noise is the fold perturbation half-width; 0 uses the default.
	Noise float64 `yaml:"noise,omitempty" json:"noise,omitempty"`

	Weights *Weights `yaml:"weights" json:"weights"`

	// PrimarySite plus its favorable variants, e.g. site 192 with "HFYL".
	PrimarySite     int    `yaml:"primary_site" json:"primary_site"`
	PrimaryVariants string `yaml:"primary_variants" json:"primary_variants"`

	// Secondary lists mutation tokens that each earn the secondary bonus.
	Secondary []string `yaml:"secondary" json:"secondary"`
}

// Read loads a run configuration from a YAML file. It does not validate;
// call Validate before using the result.
func Read(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}
	return &c, nil
}

// Save writes the configuration as YAML.
func Save(path string, c *Config) error {
	if path == "" {
		return errors.New("config path required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", path)
	}
	return nil
}

// Validate checks configuration shape once, before any candidate work.
// Catalog-dependent checks (anchor site membership, per-site alphabet
// feasibility) happen when the generator is constructed.
func (c *Config) Validate() error {
	if c.Candidates < 1 {
		return errors.New("candidates must be >= 1")
	}
	if c.Top < 1 {
		return errors.New("top must be >= 1")
	}
	if c.SizeRange.Min < 1 || c.SizeRange.Min > c.SizeRange.Max {
		return errors.Wrapf(design.ErrSizeRangeInvalid, "got [%d,%d]", c.SizeRange.Min, c.SizeRange.Max)
	}
	if c.Folds < 1 {
		return design.ErrFoldCount
	}
	if len(c.ActiveSites) == 0 {
		return design.ErrEmptyCatalog
	}
	if strings.TrimSpace(c.Alphabet) == "" {
		return design.ErrEmptyAlphabet
	}
	if strings.TrimSpace(c.Sequence) == "" && strings.TrimSpace(c.SequenceFile) == "" {
		return errors.New("either sequence or sequence_file is required")
	}

	if c.Weights == nil {
		return errors.Wrap(design.ErrMissingWeights, "weights block missing")
	}
	switch {
	case c.Weights.AnchorBonus == nil:
		return errors.Wrap(design.ErrMissingWeights, "anchor_bonus")
	case c.Weights.PrimaryBonus == nil:
		return errors.Wrap(design.ErrMissingWeights, "primary_bonus")
	case c.Weights.SecondaryBonus == nil:
		return errors.Wrap(design.ErrMissingWeights, "secondary_bonus")
	case c.Weights.SizePenaltyRate == nil:
		return errors.Wrap(design.ErrMissingWeights, "size_penalty_rate")
	case c.Weights.ReferenceSize == nil:
		return errors.Wrap(design.ErrMissingWeights, "reference_size")
	}

	if _, err := design.ParseMutation(c.Anchor); err != nil {
		return errors.Wrap(err, "invalid anchor")
	}
	for _, t := range c.Secondary {
		if _, err := design.ParseMutation(t); err != nil {
			return errors.Wrap(err, "invalid secondary mutation")
		}
	}

	return nil
}

// LoadSequence returns the inline sequence, or reads SequenceFile.
func (c *Config) LoadSequence() (string, error) {
	if s := strings.TrimSpace(c.Sequence); s != "" {
		return s, nil
	}
	b, err := os.ReadFile(c.SequenceFile)
	if err != nil {
		return "", errors.Wrapf(err, "error reading sequence file: %s", c.SequenceFile)
	}
	return strings.TrimSpace(string(b)), nil
}

// AnchorMutation parses the anchor token.
func (c *Config) AnchorMutation() (design.Mutation, error) {
	return design.ParseMutation(c.Anchor)
}

// SecondaryMutations parses the secondary bonus tokens.
func (c *Config) SecondaryMutations() ([]design.Mutation, error) {
	out := make([]design.Mutation, 0, len(c.Secondary))
	for _, t := range c.Secondary {
		m, err := design.ParseMutation(t)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// DesignWeights converts the validated weight block.
func (c *Config) DesignWeights() design.Weights {
	return design.Weights{
		AnchorBonus:     *c.Weights.AnchorBonus,
		PrimaryBonus:    *c.Weights.PrimaryBonus,
		SecondaryBonus:  *c.Weights.SecondaryBonus,
		SizePenaltyRate: *c.Weights.SizePenaltyRate,
		ReferenceSize:   *c.Weights.ReferenceSize,
	}
}
