package design

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// Generator produces candidate mutation sets over a site catalog. Every
// candidate contains the anchor mutation, assigns at most one substitution
// per site, and draws variants from the allowed alphabet. All validation
// happens at construction so Generate itself cannot fail.
type Generator struct {
	catalog  *Catalog
	anchor   Mutation
	minSize  int
	maxSize  int
	variants map[int][]byte
}

// NewGenerator validates the configuration and returns a ready generator.
// The alphabet is the set of allowed variant residues; a site's own wild
// type is excluded from its draw at generation time.
func NewGenerator(catalog *Catalog, alphabet string, anchor Mutation, minSize, maxSize int) (*Generator, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if minSize < 1 || minSize > maxSize {
		return nil, errors.Wrapf(ErrSizeRangeInvalid, "got [%d,%d]", minSize, maxSize)
	}

	wt, ok := catalog.WildTypeAt(anchor.Site)
	if !ok {
		return nil, errors.Wrapf(ErrAnchorNotInCatalog, "site %d", anchor.Site)
	}
	if wt != anchor.WildType {
		return nil, errors.Errorf("anchor %s: catalog records wild type %c at site %d", anchor.Token(), wt, anchor.Site)
	}
	if !anchor.Valid() {
		return nil, errors.Errorf("anchor %s: variant equals wild type", anchor.Token())
	}

	alpha := dedupeResidues(alphabet)
	variants := make(map[int][]byte, catalog.Len())
	for _, s := range catalog.Sites() {
		if s.Number == anchor.Site {
			continue
		}
		eligible := make([]byte, 0, len(alpha))
		for _, a := range alpha {
			if a != s.WildType {
				eligible = append(eligible, a)
			}
		}
		if len(eligible) == 0 {
			return nil, errors.Wrapf(ErrEmptyAlphabet, "site %d", s.Number)
		}
		variants[s.Number] = eligible
	}

	return &Generator{
		catalog:  catalog,
		anchor:   anchor,
		minSize:  minSize,
		maxSize:  maxSize,
		variants: variants,
	}, nil
}

// Generate returns n candidates. Content depends only on the seed and the
// candidate index: each candidate draws from its own derived stream, so the
// collection is reproducible regardless of how calls are scheduled.
func (g *Generator) Generate(n int, seed int64) []Candidate {
	out := make([]Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.generateOne(i, rand.New(rand.NewSource(deriveSeed(seed, uint64(i))))))
	}
	return out
}

func (g *Generator) generateOne(index int, rng *rand.Rand) Candidate {
	target := g.minSize + rng.Intn(g.maxSize-g.minSize+1)

	muts := []Mutation{g.anchor}

	// Unused eligible sites, anchor's excluded. Drawing directly from the
	// shrinking pool keeps each draw uniform and strictly bounded; the pool
	// running dry before the target is the exhaustion case.
	pool := make([]int, 0, g.catalog.Len()-1)
	for _, s := range g.catalog.Sites() {
		if s.Number != g.anchor.Site {
			pool = append(pool, s.Number)
		}
	}

	for len(muts) < target && len(pool) > 0 {
		j := rng.Intn(len(pool))
		site := pool[j]
		pool[j] = pool[len(pool)-1]
		pool = pool[:len(pool)-1]

		wt, _ := g.catalog.WildTypeAt(site)
		eligible := g.variants[site]
		muts = append(muts, Mutation{
			Site:     site,
			WildType: wt,
			Variant:  eligible[rng.Intn(len(eligible))],
		})
	}

	sort.Slice(muts, func(a, b int) bool {
		return muts[a].Site < muts[b].Site
	})

	return Candidate{
		ID:         fmt.Sprintf("mutant_%d", index+1),
		Mutations:  muts,
		Undersized: len(muts) < target,
	}
}

func dedupeResidues(alphabet string) []byte {
	seen := make(map[byte]bool, len(alphabet))
	out := make([]byte, 0, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		if !seen[alphabet[i]] {
			seen[alphabet[i]] = true
			out = append(out, alphabet[i])
		}
	}
	return out
}
