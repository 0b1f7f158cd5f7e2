package design

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// Configuration errors, surfaced before any candidate work begins.
	ErrSizeRangeInvalid   = errors.New("candidate size range invalid: min must be >= 1 and <= max")
	ErrEmptyCatalog       = errors.New("site catalog is empty")
	ErrAnchorNotInCatalog = errors.New("anchor mutation site not in catalog")
	ErrEmptyAlphabet      = errors.New("allowed alphabet empty after excluding wild type")

	// Scoring and ensemble errors.
	ErrMissingWeights = errors.New("scoring weights missing required keys")
	ErrFoldCount      = errors.New("fold count must be >= 1")
)

// Mutation is a single substitution: wild-type residue at a numbered site
// replaced by a variant residue.
type Mutation struct {
	Site     int  `json:"site"`
	WildType byte `json:"wild_type"`
	Variant  byte `json:"variant"`
}

// Token renders the mutation in the conventional WT-position-variant form,
// e.g. "W192H".
func (m Mutation) Token() string {
	return fmt.Sprintf("%c%d%c", m.WildType, m.Site, m.Variant)
}

// Valid reports whether the variant actually differs from the wild type.
func (m Mutation) Valid() bool {
	return m.Variant != m.WildType && m.Site > 0
}

// ParseMutation parses a token like "W192H" into a Mutation.
func ParseMutation(token string) (Mutation, error) {
	t := strings.TrimSpace(token)
	if len(t) < 3 {
		return Mutation{}, errors.Errorf("invalid mutation token: %q", token)
	}

	site, err := strconv.Atoi(t[1 : len(t)-1])
	if err != nil {
		return Mutation{}, errors.Wrapf(err, "invalid site number in mutation token: %q", token)
	}

	m := Mutation{
		Site:     site,
		WildType: t[0],
		Variant:  t[len(t)-1],
	}
	if !m.Valid() {
		return Mutation{}, errors.Errorf("invalid mutation token: %q", token)
	}
	return m, nil
}

// Candidate is a site-collision-free set of mutations representing one
// design hypothesis. Mutations are kept sorted by site so that equal sets
// serialize and hash identically. Candidates are immutable once generated.
type Candidate struct {
	// ID is the generation identifier, e.g. "mutant_42".
	ID string `json:"mutant_id"`

	// Mutations are ordered by site. At most one mutation per site.
	Mutations []Mutation `json:"mutations"`

	// Undersized marks a candidate finalized below the requested size
	// because the catalog ran out of eligible sites.
	Undersized bool `json:"undersized,omitempty"`
}

// Size returns the number of mutations in the candidate.
func (c Candidate) Size() int {
	return len(c.Mutations)
}

// Contains reports whether the candidate includes the exact mutation.
func (c Candidate) Contains(m Mutation) bool {
	for _, cm := range c.Mutations {
		if cm == m {
			return true
		}
	}
	return false
}

// VariantAt returns the variant residue the candidate assigns to a site,
// or 0 if the site is untouched.
func (c Candidate) VariantAt(site int) byte {
	for _, cm := range c.Mutations {
		if cm.Site == site {
			return cm.Variant
		}
	}
	return 0
}

// Tokens returns the candidate's mutations as WT-position-variant tokens,
// in site order.
func (c Candidate) Tokens() []string {
	list := make([]string, 0, len(c.Mutations))
	for _, m := range c.Mutations {
		list = append(list, m.Token())
	}
	return list
}

// Key is the canonical identity of the mutation set, independent of the
// generation order and of the ID. Used for fold-seed derivation.
func (c Candidate) Key() string {
	return strings.Join(c.Tokens(), "+")
}
