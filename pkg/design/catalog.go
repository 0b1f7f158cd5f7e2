package design

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Site is a fixed, addressable position eligible for substitution. Number is
// the domain numbering (e.g. PDB residue number), Index the 0-based position
// in the reference sequence, WildType the residue recorded there.
type Site struct {
	Number   int  `json:"number"`
	Index    int  `json:"index"`
	WildType byte `json:"wild_type"`
}

// Catalog is the immutable set of mutable sites for a run. Loaded once,
// read-only thereafter.
type Catalog struct {
	sites  []Site
	bySite map[int]Site
}

// NewCatalog builds a catalog from the wild-type sequence, the mapping from
// domain numbering to sequence index, and the ordered list of active site
// numbers. Every active site must resolve to a position inside the sequence.
func NewCatalog(sequence string, numbering map[int]int, active []int) (*Catalog, error) {
	seq := strings.TrimSpace(sequence)
	if seq == "" {
		return nil, errors.New("wild-type sequence is empty")
	}
	if len(active) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		sites:  make([]Site, 0, len(active)),
		bySite: make(map[int]Site, len(active)),
	}

	for _, num := range active {
		idx, ok := numbering[num]
		if !ok {
			return nil, errors.Errorf("site %d has no sequence index mapping", num)
		}
		if idx < 0 || idx >= len(seq) {
			return nil, errors.Errorf("site %d maps to index %d, outside sequence of length %d", num, idx, len(seq))
		}
		if _, dup := c.bySite[num]; dup {
			return nil, errors.Errorf("site %d listed more than once", num)
		}
		s := Site{Number: num, Index: idx, WildType: seq[idx]}
		c.sites = append(c.sites, s)
		c.bySite[num] = s
	}

	sort.Slice(c.sites, func(i, j int) bool {
		return c.sites[i].Number < c.sites[j].Number
	})

	return c, nil
}

// Len returns the number of catalog sites.
func (c *Catalog) Len() int {
	return len(c.sites)
}

// Sites returns the catalog sites in ascending site-number order.
func (c *Catalog) Sites() []Site {
	out := make([]Site, len(c.sites))
	copy(out, c.sites)
	return out
}

// WildTypeAt returns the recorded wild-type residue for a site number.
func (c *Catalog) WildTypeAt(num int) (byte, bool) {
	s, ok := c.bySite[num]
	if !ok {
		return 0, false
	}
	return s.WildType, true
}
